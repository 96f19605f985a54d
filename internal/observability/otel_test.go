package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHeaders(t *testing.T) {
	assert.Nil(t, ParseHeaders(""))
	assert.Nil(t, ParseHeaders("novalue, =x"))
	assert.Equal(t,
		map[string]string{"authorization": "Bearer abc", "x-team": "spots"},
		ParseHeaders(" authorization=Bearer abc ,x-team=spots,broken"),
	)
}

func TestExporterKind(t *testing.T) {
	assert.Equal(t, "stdout", exporterKind(OtelConfig{}))
	assert.Equal(t, "otlp", exporterKind(OtelConfig{Endpoint: "collector:4318"}))
	assert.Equal(t, "stdout", exporterKind(OtelConfig{Exporter: "STDOUT", Endpoint: "collector:4318"}))
}

func TestClampRatio(t *testing.T) {
	assert.Equal(t, 0.1, clampRatio(0))
	assert.Equal(t, 1.0, clampRatio(3))
	assert.Equal(t, 0.25, clampRatio(0.25))
}
