package entity

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Parameters is the open key-value bag a plan step carries. Tools read
// known keys through the typed getters, which absorb the loose typing of
// model-generated JSON (numbers arrive as float64, sometimes as strings).
type Parameters map[string]any

func (p Parameters) String(key, fallback string) string {
	if v, ok := p[key]; ok {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return fallback
}

func (p Parameters) Int(key string, fallback int) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return fallback
}

// With returns a copy extended by one key. The receiver is not modified,
// so plan steps stay intact when the executor enriches parameters.
func (p Parameters) With(key string, value any) Parameters {
	out := make(Parameters, len(p)+1)
	for k, v := range p {
		out[k] = v
	}
	out[key] = value
	return out
}
