package messaging

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xiebiao/book-inventory/internal/domain/book"
	"github.com/xiebiao/book-inventory/internal/infrastructure/config"
	"github.com/xiebiao/book-inventory/pkg/circuitbreaker"
	"github.com/xiebiao/book-inventory/pkg/metrics"
	"github.com/xiebiao/book-inventory/pkg/mq"
)

// publishTimeout 单条事件的发布超时
const publishTimeout = 3 * time.Second

// messagePublisher 消息发布接口,由*mq.Publisher实现
type messagePublisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// EventPublisher 把图书事件发布到RabbitMQ
// routing key即事件类型(book.created/book.updated/book.deleted)
// 熔断器打开时不再访问代理,避免每次变更都等待发布超时
type EventPublisher struct {
	pub     messagePublisher
	breaker *circuitbreaker.Breaker
}

var _ book.EventPublisher = (*EventPublisher)(nil)

// NewEventPublisher 创建事件发布者,breaker为nil时不熔断
func NewEventPublisher(pub messagePublisher, breaker *circuitbreaker.Breaker) *EventPublisher {
	return &EventPublisher{pub: pub, breaker: breaker}
}

// Publish 发布事件
// 请求context被取消时仍然尝试发布(变更已经提交)
func (p *EventPublisher) Publish(ctx context.Context, event book.Event) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	routingKey := string(event.Type)
	publish := func() error {
		return p.pub.Publish(ctx, routingKey, event)
	}

	var err error
	if p.breaker != nil {
		err = p.breaker.Execute(publish)
	} else {
		err = publish()
	}

	result := metrics.ResultLabel(err)
	if errors.Is(err, circuitbreaker.ErrOpenState) {
		result = "rejected"
	}
	metrics.IncCounterVec(metrics.BookEventsPublishedTotal, map[string]string{
		"routing_key": routingKey,
		"result":      result,
	})

	if err != nil {
		return fmt.Errorf("发布图书事件失败: %w", err)
	}
	return nil
}

// newBreaker 创建事件发布熔断器,状态变化写日志并更新指标
func newBreaker(cfg config.EventsConfig) *circuitbreaker.Breaker {
	return circuitbreaker.New(circuitbreaker.Settings{
		Name:        "book-events",
		MaxFailures: cfg.BreakerMaxFailures,
		Timeout:     cfg.BreakerTimeout,
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("事件发布熔断器状态变化")
			metrics.SetGauge(metrics.BookEventsBreakerState, float64(to))
		},
	})
}

// NewFromConfig 根据配置创建事件发布者
// events.enabled=false时返回NopPublisher;返回的cleanup关闭MQ连接
func NewFromConfig(cfg *config.Config) (book.EventPublisher, func(), error) {
	if !cfg.Events.Enabled {
		log.Info().Msg("图书事件发布未启用")
		return book.NopPublisher{}, func() {}, nil
	}

	pub, err := mq.NewPublisher(cfg.Events.URL, cfg.Events.Exchange, cfg.Events.ExchangeType)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if err := pub.Close(); err != nil {
			log.Error().Err(err).Msg("关闭消息发布者失败")
		}
	}
	return NewEventPublisher(pub, newBreaker(cfg.Events)), cleanup, nil
}
