package lifecycle

import (
	"context"
	"time"
)

// Handle 是分发给每个后台服务（提醒巡查器、快照器等）的生命周期控制器。
// 它由 Manager 创建，服务通过它感知停机信号并上报自己的退出。
type Handle struct {
	ctx context.Context
	// Close 通知Manager其所属的服务已经完成关闭。
	// 服务的Goroutine应在退出前通过 defer 调用它。
	Close func()
}

// Ctx 返回Handle内部的context，用于传递给需要取消语义的下游调用。
func (h *Handle) Ctx() context.Context {
	return h.ctx
}

// Done 返回一个channel，当Manager广播停机信号时该channel会关闭。
func (h *Handle) Done() <-chan struct{} {
	return h.ctx.Done()
}

// Err 在Done()关闭后返回上下文被取消的原因。
func (h *Handle) Err() error {
	return h.ctx.Err()
}

// Sleep 暂停指定时长；若期间收到停机信号则提前返回错误。
// 所有后台轮询循环都应该使用它而不是 time.Sleep。
func (h *Handle) Sleep(duration time.Duration) error {
	timer := time.NewTimer(duration)

	select {
	case <-h.Done():
		if !timer.Stop() {
			<-timer.C
		}
		return h.Err()
	case <-timer.C:
		return nil
	}
}
