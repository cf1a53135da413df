// Package envelope strips transport wrapping from stage results and repairs
// partially populated payloads into typed entities. Every cross-component
// result passes through here exactly once.
package envelope

import (
	"bytes"
	"encoding/json"
)

const DefaultMaxDepth = 5

// payloadKeys are probed in order when descending into an envelope.
var payloadKeys = []string{"result", "output", "data", "body"}

// IsEnvelope reports whether m carries execution metadata around a payload:
// an execution or run id, or both a status and a result.
func IsEnvelope(m map[string]any) bool {
	if m == nil {
		return false
	}
	if _, ok := m["execution_id"]; ok {
		return true
	}
	if _, ok := m["run_id"]; ok {
		return true
	}
	_, hasStatus := m["status"]
	_, hasResult := m["result"]
	return hasStatus && hasResult
}

// Unwrap returns the innermost payload mapping of raw. Non-mapping input,
// JSON text included, yields an empty map. Recursion stops after maxDepth
// envelopes or at the first mapping that is not an envelope. An envelope
// without a mapping under any payload key is returned as is.
//
// Unwrap is idempotent only for inputs nested at most maxDepth envelopes
// deep. A deeper input comes back still wrapped, and unwrapping that result
// again descends further.
func Unwrap(raw any, maxDepth int) map[string]any {
	m, ok := AsMap(raw, false)
	if !ok {
		return map[string]any{}
	}
	return unwrap(m, maxDepth)
}

func UnwrapDefault(raw any) map[string]any {
	return Unwrap(raw, DefaultMaxDepth)
}

func unwrap(m map[string]any, maxDepth int) map[string]any {
	if maxDepth <= 0 || !IsEnvelope(m) {
		return m
	}
	for _, key := range payloadKeys {
		v, ok := m[key]
		if !ok {
			continue
		}
		if inner, ok := AsMap(v, false); ok {
			return unwrap(inner, maxDepth-1)
		}
	}
	return m
}

// AsMap converts v into a JSON-like mapping. Maps and structs qualify through
// their JSON form. When decodeText is set, strings, byte slices and raw
// messages holding a JSON object qualify too.
func AsMap(v any, decodeText bool) (map[string]any, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case map[string]any:
		return t, true
	case json.RawMessage:
		if !decodeText {
			return nil, false
		}
		return decodeObject(t)
	case []byte:
		if !decodeText {
			return nil, false
		}
		return decodeObject(t)
	case string:
		if !decodeText {
			return nil, false
		}
		return decodeObject([]byte(t))
	case bool, float64, float32, int, int64, int32, uint, uint64, uint32, json.Number, []any:
		return nil, false
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}
	return decodeObject(data)
}

func decodeObject(data []byte) (map[string]any, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil, false
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, false
	}
	if m == nil {
		return nil, false
	}
	return m, true
}
