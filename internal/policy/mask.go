package policy

import "strings"

const maskedValue = "****"

// MaskFields returns a copy of fields with every value whose key contains
// "token" (case-insensitive) replaced by a fixed mask, recursing into nested
// objects. Request diagnostics must pass through this before logging so the
// shared secret never reaches the logs, even partially.
func MaskFields(fields map[string]any) map[string]any {
	if fields == nil {
		return nil
	}

	masked := make(map[string]any, len(fields))
	for key, value := range fields {
		if strings.Contains(strings.ToLower(key), "token") {
			masked[key] = maskedValue
			continue
		}
		if nested, ok := value.(map[string]any); ok {
			masked[key] = MaskFields(nested)
			continue
		}
		masked[key] = value
	}
	return masked
}
