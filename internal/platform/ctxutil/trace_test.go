package ctxutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTraceDataRoundTrip(t *testing.T) {
	ctx := WithTraceData(context.Background(), &TraceData{TraceID: "t-1", RequestID: "r-1"})

	td := GetTraceData(ctx)
	if assert.NotNil(t, td) {
		assert.Equal(t, "t-1", td.TraceID)
	}
	assert.Equal(t, "r-1", RequestID(ctx))
	assert.Nil(t, GetTraceData(context.Background()))
	assert.Empty(t, RequestID(context.Background()))
}

func TestLogFields(t *testing.T) {
	bare := LogFields(context.Background(), "place_id", "p1")
	assert.Equal(t, []any{"place_id", "p1"}, bare)

	ctx := WithTraceData(context.Background(), &TraceData{RequestID: "r-9"})
	assert.Equal(t, []any{"place_id", "p1", "request_id", "r-9"}, LogFields(ctx, "place_id", "p1"))

	ctx = WithTraceData(context.Background(), &TraceData{RequestID: "r-9", TraceID: "t-9"})
	assert.Equal(t, []any{"request_id", "r-9", "trace_id", "t-9"}, LogFields(ctx))
}
