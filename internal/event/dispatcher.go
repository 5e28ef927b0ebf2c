// Package event 把账本事件分发到三个出口：事件日志（数据库）、
// 进程内事件总线、结构化日志。
package event

import (
	"fmt"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/blues/escrow/internal/ledger"
	"github.com/blues/escrow/internal/logger"
	"github.com/panjf2000/ants/v2"
)

// TopicPrefix 事件总线主题前缀，完整主题为 escrow:<事件类型>
const TopicPrefix = "escrow:"

// Journal 事件日志出口，由 store.EventJournal 实现
type Journal interface {
	Append(ledger.Event) error
}

// Dispatcher 事件分发器，实现 ledger.EventSink。
//
// 落库和广播在单个工作协程里按提交顺序执行，保证日志顺序与账本
// 提交顺序一致；工作协程忙时 Emit 阻塞等待，形成天然的背压。
type Dispatcher struct {
	journal Journal
	bus     EventBus.Bus
	pool    *ants.Pool
}

// NewDispatcher 创建事件分发器
func NewDispatcher(journal Journal, bus EventBus.Bus) (*Dispatcher, error) {
	// 单协程，保证事件按提交顺序处理
	pool, err := ants.NewPool(1, ants.WithPreAlloc(true))
	if err != nil {
		return nil, fmt.Errorf("创建事件协程池失败: %w", err)
	}
	return &Dispatcher{
		journal: journal,
		bus:     bus,
		pool:    pool,
	}, nil
}

// Emit 接收账本事件并异步分发
func (d *Dispatcher) Emit(ev ledger.Event) {
	if err := d.pool.Submit(func() { d.dispatch(ev) }); err != nil {
		// 协程池已关闭时同步处理，避免丢事件
		logger.Warn("事件入队失败，转同步处理: %v", err)
		d.dispatch(ev)
	}
}

// dispatch 单条事件的落库、广播和日志
func (d *Dispatcher) dispatch(ev ledger.Event) {
	if d.journal != nil {
		if err := d.journal.Append(ev); err != nil {
			logger.Error("事件落库失败: type=%s project=%d err=%v", ev.Type, ev.ProjectID, err)
		}
	}

	if d.bus != nil {
		d.bus.Publish(TopicPrefix+string(ev.Type), ev)
	}

	logger.Info("账本事件: type=%s project=%d amount=%d", ev.Type, ev.ProjectID, ev.Amount)
}

// Subscribe 订阅某类事件
func (d *Dispatcher) Subscribe(eventType ledger.EventType, fn func(ledger.Event)) error {
	return d.bus.Subscribe(TopicPrefix+string(eventType), fn)
}

// Unsubscribe 取消订阅
func (d *Dispatcher) Unsubscribe(eventType ledger.EventType, fn func(ledger.Event)) error {
	return d.bus.Unsubscribe(TopicPrefix+string(eventType), fn)
}

// Close 等待在途事件处理完成后关闭协程池
func (d *Dispatcher) Close() {
	if err := d.pool.ReleaseTimeout(5 * time.Second); err != nil {
		logger.Warn("关闭事件协程池超时: %v", err)
	}
}
