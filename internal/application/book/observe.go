package book

import (
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/xiebiao/book-inventory/pkg/metrics"
)

// tracerName 应用层Span使用的Tracer名称
const tracerName = "book-inventory/application/book"

// 变更类型(metrics标签)
const (
	actionCreate = "create"
	actionUpdate = "update"
	actionDelete = "delete"
)

// finishSpan 记录错误并设置Span状态
func finishSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// recordMutation 记录图书变更结果
func recordMutation(action string, err error) {
	metrics.IncCounterVec(metrics.BookMutationsTotal, map[string]string{
		"action": action,
		"result": metrics.ResultLabel(err),
	})
}
