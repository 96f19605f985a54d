package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

const redacted = "[REDACTED]"

var (
	redactOnce sync.Once
	redactOn   bool
)

// redactionEnabled is read once; LOG_REDACTION_ENABLED=false turns masking
// off for local debugging.
func redactionEnabled() bool {
	redactOnce.Do(func() {
		switch strings.ToLower(strings.TrimSpace(os.Getenv("LOG_REDACTION_ENABLED"))) {
		case "0", "false", "no", "off":
			redactOn = false
		default:
			redactOn = true
		}
	})
	return redactOn
}

// IsSecretKey reports whether values logged under key (a field name or an
// environment variable name) must never be written out.
func IsSecretKey(key string) bool {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, needle := range []string{"token", "authorization", "password", "secret", "api_key", "apikey", "x-api-key", "dsn", "database_url", "headers"} {
		if strings.Contains(key, needle) {
			return true
		}
	}
	return false
}

func isPhoneKey(key string) bool {
	return strings.Contains(key, "phone")
}

// MaskPhone keeps only the last four digits of a phone number.
func MaskPhone(s string) string {
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits <= 4 {
		return strings.Repeat("*", digits)
	}
	var b strings.Builder
	seen := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			continue
		}
		seen++
		if seen <= digits-4 {
			b.WriteByte('*')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func sanitizeKVs(kv []interface{}) []interface{} {
	if len(kv) == 0 || !redactionEnabled() {
		return kv
	}
	out := make([]interface{}, 0, len(kv))
	for i := 0; i < len(kv); i += 2 {
		if i+1 >= len(kv) {
			out = append(out, kv[i])
			break
		}
		key := toString(kv[i])
		out = append(out, key, sanitizeValue(strings.ToLower(key), kv[i+1]))
	}
	return out
}

func sanitizeValue(key string, val interface{}) interface{} {
	switch {
	case key == "":
		return val
	case IsSecretKey(key):
		return redacted
	case isPhoneKey(key):
		switch v := val.(type) {
		case string:
			return MaskPhone(v)
		case *string:
			if v == nil {
				return val
			}
			return MaskPhone(*v)
		}
	}
	if m, ok := val.(map[string]interface{}); ok {
		out := make(map[string]interface{}, len(m))
		for k, v := range m {
			out[k] = sanitizeValue(strings.ToLower(strings.TrimSpace(k)), v)
		}
		return out
	}
	return val
}

func toString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
