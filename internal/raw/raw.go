// Package raw holds the loosely-typed record shape handed over by API clients
// before anything has been validated.
package raw

// Record is one upstream entity as decoded from JSON: keys are field names,
// values are whatever the upstream sent (string, float64, json.Number, nested maps, nil).
type Record map[string]any

// Lookup walks nested maps along path (e.g. "home_team", "id") and reports whether a non-nil value was found.
func (r Record) Lookup(path ...string) (any, bool) {
	var cur any = map[string]any(r)
	for _, key := range path {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok || cur == nil {
			return nil, false
		}
	}
	return cur, true
}

// Copy returns a shallow copy of the record.
func (r Record) Copy() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Record:
		return m, true
	default:
		return nil, false
	}
}
