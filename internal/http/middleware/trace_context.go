package middleware

import (
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Gyu-bot/myspot/internal/platform/ctxutil"
)

const (
	HeaderTraceID   = "X-Trace-Id"
	HeaderRequestID = "X-Request-Id"

	maxCorrelationIDLen = 128
)

// AttachTraceContext gives every request a request id and a trace id and
// echoes both back. A client request id is kept when it is printable and
// short. The trace id comes from the active span when otelgin started one,
// then from the client header, then falls back to the request id.
func AttachTraceContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		reqID := cleanCorrelationID(c.GetHeader(HeaderRequestID))
		if reqID == "" {
			reqID = uuid.NewString()
		}

		span := trace.SpanFromContext(ctx)
		var traceID string
		if sc := span.SpanContext(); sc.HasTraceID() {
			traceID = sc.TraceID().String()
		} else if fromHeader := cleanCorrelationID(c.GetHeader(HeaderTraceID)); fromHeader != "" {
			traceID = fromHeader
		} else {
			traceID = reqID
		}
		if span.IsRecording() {
			span.SetAttributes(attribute.String("myspot.request_id", reqID))
		}

		c.Request = c.Request.WithContext(ctxutil.WithTraceData(ctx, &ctxutil.TraceData{
			TraceID:   traceID,
			RequestID: reqID,
		}))
		c.Header(HeaderTraceID, traceID)
		c.Header(HeaderRequestID, reqID)
		c.Next()
	}
}

func cleanCorrelationID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(raw) > maxCorrelationIDLen {
		return ""
	}
	for _, r := range raw {
		if r > unicode.MaxASCII || !unicode.IsPrint(r) || unicode.IsSpace(r) {
			return ""
		}
	}
	return raw
}
