package logging

import "strings"

// sensitiveKeys are log field keys whose values are never written verbatim.
var sensitiveKeys = map[string]bool{
	"token":         true,
	"push_token":    true,
	"authorization": true,
	"bearer":        true,
}

// redactArgs walks key-value log arguments and masks the values of
// sensitive keys so bearer and push tokens never land in log files.
func redactArgs(args []any) []any {
	if len(args) < 2 {
		return args
	}
	out := make([]any, len(args))
	copy(out, args)
	for i := 0; i+1 < len(out); i += 2 {
		key, ok := out[i].(string)
		if !ok {
			continue
		}
		if sensitiveKeys[strings.ToLower(key)] {
			out[i+1] = mask(out[i+1])
		}
	}
	return out
}

func mask(v any) string {
	s, ok := v.(string)
	if !ok || len(s) <= 6 {
		return "[redacted]"
	}
	return s[:3] + "..." + s[len(s)-3:]
}
