// Package ctxutil carries request correlation ids through context.Context so
// services can tag their log lines without depending on the HTTP layer.
package ctxutil

import "context"

type traceDataKey struct{}

type TraceData struct {
	TraceID   string
	RequestID string
}

func WithTraceData(ctx context.Context, td *TraceData) context.Context {
	return context.WithValue(ctx, traceDataKey{}, td)
}

// GetTraceData returns nil when ctx is nil or was never tagged.
func GetTraceData(ctx context.Context) *TraceData {
	if ctx == nil {
		return nil
	}
	td, _ := ctx.Value(traceDataKey{}).(*TraceData)
	return td
}

// RequestID returns the request id attached by the trace middleware, or "".
func RequestID(ctx context.Context) string {
	if td := GetTraceData(ctx); td != nil {
		return td.RequestID
	}
	return ""
}

// LogFields appends request_id and trace_id to kv when ctx carries them.
// CLI commands run without trace data and get kv back unchanged.
func LogFields(ctx context.Context, kv ...any) []any {
	td := GetTraceData(ctx)
	if td == nil {
		return kv
	}
	if td.RequestID != "" {
		kv = append(kv, "request_id", td.RequestID)
	}
	if td.TraceID != "" {
		kv = append(kv, "trace_id", td.TraceID)
	}
	return kv
}
