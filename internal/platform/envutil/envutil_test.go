package envutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvHelpers(t *testing.T) {
	t.Setenv("MYSPOT_TEST_STR", "  hello ")
	t.Setenv("MYSPOT_TEST_INT", "42")
	t.Setenv("MYSPOT_TEST_BADINT", "forty")
	t.Setenv("MYSPOT_TEST_BOOL", "on")
	t.Setenv("MYSPOT_TEST_DUR", "90s")
	t.Setenv("MYSPOT_TEST_SECS", "15")
	t.Setenv("MYSPOT_TEST_LIST", "a, b,,c ")
	t.Setenv("MYSPOT_TEST_BLANK", "   ")
	t.Setenv("MYSPOT_TEST_FLOAT", "0.25")

	assert.Equal(t, "hello", String("MYSPOT_TEST_STR", "x", nil))
	assert.Equal(t, "x", String("MYSPOT_TEST_BLANK", "x", nil))
	assert.Equal(t, 42, Int("MYSPOT_TEST_INT", 1, nil))
	assert.Equal(t, 1, Int("MYSPOT_TEST_BADINT", 1, nil))
	assert.True(t, Bool("MYSPOT_TEST_BOOL", false, nil))
	assert.True(t, Bool("MYSPOT_TEST_MISSING", true, nil))
	assert.Equal(t, 0.25, Float("MYSPOT_TEST_FLOAT", 1, nil))
	assert.Equal(t, 1.0, Float("MYSPOT_TEST_STR", 1, nil))
	assert.Equal(t, 90*time.Second, Duration("MYSPOT_TEST_DUR", time.Second, nil))
	assert.Equal(t, 15*time.Second, Duration("MYSPOT_TEST_SECS", time.Second, nil))
	assert.Equal(t, []string{"a", "b", "c"}, List("MYSPOT_TEST_LIST", nil, nil))
	assert.Equal(t, []string{"*"}, List("MYSPOT_TEST_MISSING", []string{"*"}, nil))
}
