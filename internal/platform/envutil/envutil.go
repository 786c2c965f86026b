package envutil

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Source resolves configuration keys. Process env wins over Fallback.
type Source struct {
	Fallback map[string]string
}

func (s Source) Lookup(name string) (string, bool) {
	if v, ok := os.LookupEnv(name); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v), true
	}
	if s.Fallback != nil {
		if v, ok := s.Fallback[name]; ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}

func (s Source) String(name, def string) string {
	if v, ok := s.Lookup(name); ok {
		return v
	}
	return def
}

func (s Source) Int(name string, def int) int {
	v, ok := s.Lookup(name)
	if !ok {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func (s Source) Bool(name string, def bool) bool {
	v, ok := s.Lookup(name)
	if !ok {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}

func (s Source) Float(name string, def float64) float64 {
	v, ok := s.Lookup(name)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

// Duration accepts Go duration strings ("15m") or a bare number of seconds.
func (s Source) Duration(name string, def time.Duration) time.Duration {
	v, ok := s.Lookup(name)
	if !ok {
		return def
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

// List splits a comma separated value, dropping blanks.
func (s Source) List(name string, def []string) []string {
	v, ok := s.Lookup(name)
	if !ok {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func Int(name string, def int) int { return Source{}.Int(name, def) }

func String(name, def string) string { return Source{}.String(name, def) }

func Bool(name string, def bool) bool { return Source{}.Bool(name, def) }
