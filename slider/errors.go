package slider

import "errors"

var (
	// ErrNoItems 内容列表为空
	ErrNoItems = errors.New("轮播内容列表为空")

	// ErrInvalidMount 挂载点无效
	ErrInvalidMount = errors.New("轮播挂载点无效")

	// ErrInvalidItem 内容项不可渲染
	ErrInvalidItem = errors.New("轮播内容项不可渲染")
)
