package store

// Field accessors for raw documents. Firestore hands slices back as []any,
// so StrSlice accepts both that and []string.

func Str(data map[string]any, field string) string {
	if v, ok := data[field].(string); ok {
		return v
	}
	return ""
}

func Int(data map[string]any, field string) int {
	switch v := data[field].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func StrSlice(data map[string]any, field string) []string {
	switch v := data[field].(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
