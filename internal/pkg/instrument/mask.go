package instrument

import (
	"encoding/json"
	"strings"
)

// Redacted replaces every masked value.
const Redacted = "***"

// Masker redacts values whose key matches one of the configured field names.
// Matching ignores case. The zero value masks nothing.
type Masker struct {
	keys map[string]struct{}
}

func NewMasker(fields []string) Masker {
	keys := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			keys[f] = struct{}{}
		}
	}
	return Masker{keys: keys}
}

// Empty reports whether no field is configured.
func (m Masker) Empty() bool {
	return len(m.keys) == 0
}

// Match reports whether key names a masked field.
func (m Masker) Match(key string) bool {
	_, ok := m.keys[strings.ToLower(key)]
	return ok
}

// Data walks decoded JSON (maps and slices) and redacts matching keys.
func (m Masker) Data(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			if m.Match(k) {
				out[k] = Redacted
				continue
			}
			out[k] = m.Data(inner)
		}
		return out
	case map[string]string:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[k] = inner
		}
		return m.Data(out)
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = m.Data(inner)
		}
		return out
	default:
		return v
	}
}

// JSON masks a raw JSON object or array. ok is false when raw is not JSON.
func (m Masker) JSON(raw []byte) (out []byte, ok bool) {
	if len(raw) == 0 || (raw[0] != '{' && raw[0] != '[') {
		return nil, false
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, false
	}

	out, err := json.Marshal(m.Data(decoded))
	if err != nil {
		return nil, false
	}
	return out, true
}
