package api

import (
	"io"

	"github.com/gin-gonic/gin"
)

// streamBuffer 每个订阅者的快照缓冲，消费过慢时丢帧
const streamBuffer = 16

// handleStream 以 SSE 推送场景快照，每个快照一个 frame 事件
func (s *Server) handleStream(c *gin.Context) {
	inst, err := s.manager.Get(c.Param("sliderId"))
	if err != nil {
		s.fail(c, err)
		return
	}

	frames, cancel := inst.Scene().Subscribe(streamBuffer)
	defer cancel()

	s.logger.Debug("📡 帧推送已连接", "id", inst.ID, "remote", c.ClientIP())

	first := true
	c.Stream(func(w io.Writer) bool {
		if first {
			first = false
			c.SSEvent("frame", inst.Scene().Snapshot())
			return true
		}
		select {
		case <-c.Request.Context().Done():
			return false
		case snap, ok := <-frames:
			if !ok {
				return false
			}
			c.SSEvent("frame", snap)
			return true
		}
	})

	s.logger.Debug("📡 帧推送已断开", "id", inst.ID)
}
