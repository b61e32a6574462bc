package models

import (
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// Float reads a numeric document field, whatever numeric type the decoder produced
func Float(fields map[string]any, key string) (float64, bool) {
	v, ok := fields[key]
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

// Int reads a whole number field, fractional values are rejected
func Int(fields map[string]any, key string) (int, bool) {
	f, ok := Float(fields, key)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// Time reads a timestamp field stored as RFC3339 text or unix milliseconds
func Time(fields map[string]any, key string) (time.Time, bool) {
	v, ok := fields[key]
	if !ok || v == nil {
		return time.Time{}, false
	}
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		return parsed, err == nil
	}
	ms, ok := Int(fields, key)
	if !ok {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(ms)), true
}
