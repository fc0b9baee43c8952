package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"text/tabwriter"

	"carousel/api"
	"carousel/client"
)

var errUsage = errors.New("用法错误")

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "carouselctl - 轮播服务命令行工具")
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  carouselctl [-server url] <command> [args]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  list                              列出所有轮播")
	fmt.Fprintln(w, "  create [-name n] [-duration ms] id:WxH...  创建轮播")
	fmt.Fprintln(w, "  goto <id> <index> [button]        点击指示器")
	fmt.Fprintln(w, "  prev <id> [button]                点击左侧按钮")
	fmt.Fprintln(w, "  next <id> [button]                点击右侧按钮")
	fmt.Fprintln(w, "  status [id]                       查看轮播或系统状态")
	fmt.Fprintln(w, "  delete <id>                       删除轮播")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Environment Variables:")
	fmt.Fprintln(w, "  CAROUSEL_URL      服务地址 (default: http://127.0.0.1:9099)")
	fmt.Fprintln(w, "  CAROUSEL_TIMEOUT  请求超时 (default: 5s)")
}

func run(ctx context.Context, cfg ctlConfig, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("carouselctl", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "服务地址")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errUsage
	}

	c := client.New(cfg.ServerURL).WithHTTPClient(&http.Client{Timeout: cfg.Timeout})
	cmd, rest := fs.Arg(0), fs.Args()[1:]

	switch cmd {
	case "list":
		return listSliders(ctx, c, out)
	case "create":
		return createSlider(ctx, c, rest, out)
	case "goto":
		if len(rest) < 2 {
			return errUsage
		}
		index, err := strconv.Atoi(rest[1])
		if err != nil {
			return fmt.Errorf("无效的索引 %q：%w", rest[1], err)
		}
		button, err := optionalButton(rest[2:])
		if err != nil {
			return err
		}
		res, err := c.GoTo(ctx, rest[0], index, button)
		return printNavigate(out, res, err)
	case "prev", "next":
		if len(rest) < 1 {
			return errUsage
		}
		button, err := optionalButton(rest[1:])
		if err != nil {
			return err
		}
		click := c.Next
		if cmd == "prev" {
			click = c.Prev
		}
		res, err := click(ctx, rest[0], button)
		return printNavigate(out, res, err)
	case "status":
		if len(rest) == 0 {
			st, err := c.SystemStatus(ctx)
			if err != nil {
				return err
			}
			return printJSON(out, st)
		}
		info, err := c.Get(ctx, rest[0])
		if err != nil {
			return err
		}
		return printJSON(out, info)
	case "delete":
		if len(rest) < 1 {
			return errUsage
		}
		if err := c.Delete(ctx, rest[0]); err != nil {
			return err
		}
		fmt.Fprintf(out, "✅ 轮播 %s 已删除\n", rest[0])
		return nil
	default:
		return fmt.Errorf("%w: 未知命令 %q", errUsage, cmd)
	}
}

func listSliders(ctx context.Context, c *client.Client, out io.Writer) error {
	list, err := c.List(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tITEMS\tSELECTED\tANIMATING")
	for _, s := range list.Sliders {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%t\n", s.ID, s.Name, len(s.Items), s.Status.Selected, s.Status.Animating)
	}
	return tw.Flush()
}

func createSlider(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	name := fs.String("name", "", "轮播名称")
	duration := fs.Int("duration", 0, "切换总时长（毫秒）")
	if err := fs.Parse(args); err != nil {
		return err
	}

	items := make([]api.BlockRequest, 0, fs.NArg())
	for _, arg := range fs.Args() {
		item, err := parseItem(arg)
		if err != nil {
			return err
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return fmt.Errorf("%w: 至少需要一个内容", errUsage)
	}

	info, err := c.Create(ctx, api.SliderCreateRequest{Name: *name, Items: items, DurationMs: *duration})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "✅ 轮播 %s 创建成功: %s\n", info.Name, info.ID)
	return nil
}

// parseItem 解析 id:WxH，省略尺寸时为 0x0
func parseItem(s string) (api.BlockRequest, error) {
	id, size, hasSize := strings.Cut(s, ":")
	if id == "" {
		return api.BlockRequest{}, fmt.Errorf("无效的内容 %q", s)
	}
	item := api.BlockRequest{ID: id}
	if !hasSize {
		return item, nil
	}

	w, h, ok := strings.Cut(size, "x")
	if !ok {
		return api.BlockRequest{}, fmt.Errorf("无效的尺寸 %q，应为 WxH", size)
	}
	var err error
	if item.Width, err = strconv.ParseFloat(w, 64); err != nil {
		return api.BlockRequest{}, fmt.Errorf("无效的宽度 %q：%w", w, err)
	}
	if item.Height, err = strconv.ParseFloat(h, 64); err != nil {
		return api.BlockRequest{}, fmt.Errorf("无效的高度 %q：%w", h, err)
	}
	return item, nil
}

func optionalButton(args []string) (int, error) {
	if len(args) == 0 {
		return 0, nil
	}
	b, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("无效的按键 %q：%w", args[0], err)
	}
	return b, nil
}

func printNavigate(out io.Writer, res api.NavigateResponse, err error) error {
	if err != nil {
		return err
	}
	if !res.Started {
		fmt.Fprintf(out, "⏸ 请求已忽略 (selected=%d, animating=%t)\n", res.Status.Selected, res.Status.Animating)
		return nil
	}
	fmt.Fprintf(out, "▶️ 过渡已开始: %s %d 步 -> %d\n", res.Status.Direction, res.Status.Pending, res.Status.Selected)
	return nil
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
