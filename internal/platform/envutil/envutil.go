package envutil

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Gyu-bot/myspot/internal/platform/logger"
)

// String returns the trimmed value of name, or def when unset or blank.
func String(name string, def string, log *logger.Logger) string {
	v, ok := lookup(name)
	if !ok {
		debugDefault(log, name, def)
		return def
	}
	debugFound(log, name, v)
	return v
}

func Int(name string, def int, log *logger.Logger) int {
	v, ok := lookup(name)
	if !ok {
		debugDefault(log, name, def)
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		debugUnparsable(log, name, v, def, err)
		return def
	}
	debugFound(log, name, i)
	return i
}

func Bool(name string, def bool, log *logger.Logger) bool {
	v, ok := lookup(name)
	if !ok {
		debugDefault(log, name, def)
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		debugFound(log, name, true)
		return true
	case "0", "false", "no", "off":
		debugFound(log, name, false)
		return false
	default:
		debugUnparsable(log, name, v, def, nil)
		return def
	}
}

func Float(name string, def float64, log *logger.Logger) float64 {
	v, ok := lookup(name)
	if !ok {
		debugDefault(log, name, def)
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		debugUnparsable(log, name, v, def, err)
		return def
	}
	debugFound(log, name, f)
	return f
}

// Duration accepts Go duration strings ("30s") or a bare number of seconds.
func Duration(name string, def time.Duration, log *logger.Logger) time.Duration {
	v, ok := lookup(name)
	if !ok {
		debugDefault(log, name, def)
		return def
	}
	if secs, err := strconv.Atoi(v); err == nil {
		d := time.Duration(secs) * time.Second
		debugFound(log, name, d)
		return d
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		debugUnparsable(log, name, v, def, err)
		return def
	}
	debugFound(log, name, d)
	return d
}

// List splits a comma separated value, dropping blanks.
func List(name string, def []string, log *logger.Logger) []string {
	v, ok := lookup(name)
	if !ok {
		debugDefault(log, name, def)
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	debugFound(log, name, out)
	return out
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	return v, true
}

func debugDefault(log *logger.Logger, name string, def interface{}) {
	if log != nil {
		log.Debug("Environment variable not found, using default", "env_var", name, "default", def)
	}
}

func debugFound(log *logger.Logger, name string, val interface{}) {
	if log == nil {
		return
	}
	if logger.IsSecretKey(name) {
		val = "[REDACTED]"
	}
	log.Debug("Environment variable found, using it", "env_var", name, "value", val)
}

func debugUnparsable(log *logger.Logger, name, raw string, def interface{}, err error) {
	if log != nil {
		log.Warn("Environment variable could not be parsed, using default", "env_var", name, "providedVal", raw, "defaultVal", def, "error", err)
	}
}
