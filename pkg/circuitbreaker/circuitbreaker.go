// Package circuitbreaker 熔断器
//
// 用于保护对外部依赖(消息代理)的调用:连续失败达到阈值后快速失败,
// 冷却时间过后放行一个探测请求,成功则恢复
//
//	CLOSED --连续失败>=阈值--> OPEN --冷却结束--> HALF_OPEN --成功--> CLOSED
//	                                               \--失败--> OPEN
package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// State 熔断器状态
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

// ErrOpenState 熔断器打开,请求未执行
var ErrOpenState = errors.New("circuit breaker is open")

// Settings 熔断器配置
type Settings struct {
	Name string
	// MaxFailures 连续失败多少次后熔断,<=0时取5
	MaxFailures uint32
	// Timeout OPEN状态持续时间,<=0时取30s
	Timeout time.Duration
	// OnStateChange 状态变化回调(持锁调用,不要在回调中访问熔断器)
	OnStateChange func(name string, from, to State)
}

// Breaker 熔断器
type Breaker struct {
	name          string
	maxFailures   uint32
	timeout       time.Duration
	onStateChange func(name string, from, to State)
	now           func() time.Time

	mu       sync.Mutex
	state    State
	failures uint32    // 连续失败次数
	openedAt time.Time // 进入OPEN的时间
	probing  bool      // HALF_OPEN下是否已有探测请求在执行
}

// New 创建熔断器
func New(s Settings) *Breaker {
	b := &Breaker{
		name:          s.Name,
		maxFailures:   s.MaxFailures,
		timeout:       s.Timeout,
		onStateChange: s.OnStateChange,
		now:           time.Now,
	}
	if b.maxFailures == 0 {
		b.maxFailures = 5
	}
	if b.timeout <= 0 {
		b.timeout = 30 * time.Second
	}
	return b
}

// Execute 在熔断器保护下执行fn
// 熔断时不调用fn,直接返回ErrOpenState
func (b *Breaker) Execute(fn func() error) error {
	if err := b.before(); err != nil {
		return err
	}

	err := fn()
	b.after(err == nil)
	return err
}

// State 当前状态(OPEN冷却结束时返回HALF_OPEN)
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current()
}

func (b *Breaker) before() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.current() {
	case StateOpen:
		return ErrOpenState
	case StateHalfOpen:
		// 半开状态只放行一个探测请求
		if b.probing {
			return ErrOpenState
		}
		b.probing = true
	}
	return nil
}

func (b *Breaker) after(success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	state := b.current()
	if state == StateHalfOpen {
		b.probing = false
	}

	if success {
		b.failures = 0
		if state == StateHalfOpen {
			b.setState(StateClosed)
		}
		return
	}

	b.failures++
	switch state {
	case StateClosed:
		if b.failures >= b.maxFailures {
			b.setState(StateOpen)
		}
	case StateHalfOpen:
		b.setState(StateOpen)
	}
}

// current 必须持锁调用
func (b *Breaker) current() State {
	if b.state == StateOpen && !b.now().Before(b.openedAt.Add(b.timeout)) {
		b.setState(StateHalfOpen)
	}
	return b.state
}

func (b *Breaker) setState(to State) {
	from := b.state
	if from == to {
		return
	}

	b.state = to
	b.probing = false
	switch to {
	case StateOpen:
		b.openedAt = b.now()
	case StateClosed:
		b.failures = 0
	}

	if b.onStateChange != nil {
		b.onStateChange(b.name, from, to)
	}
}
