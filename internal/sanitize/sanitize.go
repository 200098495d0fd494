// Package sanitize strips executable content from submitted record values
// before they are persisted or rendered. Sanitization is idempotent, so
// records may safely be re-sanitized on resubmission.
package sanitize

import (
	"regexp"

	"github.com/mitchellh/copystructure"
)

// MaxDepth bounds how deeply nested containers are walked. Values nested
// beyond the bound are truncated to nil rather than rejected, keeping
// sanitization total on adversarial payloads.
const MaxDepth = 10

var (
	scriptPattern = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)
	iframePattern = regexp.MustCompile(`(?is)<iframe\b[^>]*>.*?</iframe>`)
	tagPattern    = regexp.MustCompile(`(?s)<[^>]*>`)
	onAttrPattern = regexp.MustCompile(`(?i)\bon\w+\s*=`)
	jsURIPattern  = regexp.MustCompile(`(?i)javascript\s*:`)
)

// Data returns a sanitized deep copy of a submission record. The input is
// never mutated. String leaves have HTML tags, script and iframe blocks,
// on*= attribute fragments, and javascript: URIs stripped; numbers,
// booleans, and nulls pass through unchanged; nested maps and lists are
// sanitized element-wise.
func Data(data map[string]any) map[string]any {
	return DataWithDepth(data, MaxDepth)
}

// DataWithDepth sanitizes like Data but with a caller-chosen nesting bound.
func DataWithDepth(data map[string]any, maxDepth int) map[string]any {
	if data == nil {
		return nil
	}
	if maxDepth < 1 {
		maxDepth = MaxDepth
	}

	cloned, err := copystructure.Copy(data)
	if err != nil {
		// Values that cannot be cloned (channels, funcs) have no business in
		// a submission record; drop them by rebuilding from scratch.
		cloned = map[string]any{}
		for k, v := range data {
			if c, cerr := copystructure.Copy(v); cerr == nil {
				cloned.(map[string]any)[k] = c
			}
		}
	}

	out := cloned.(map[string]any)
	for k, v := range out {
		out[k] = sanitizeValue(v, 1, maxDepth)
	}
	return out
}

// String sanitizes a single string value. Removal runs to a fixpoint: each
// pass only deletes characters, so the loop terminates, and the result is
// unchanged by further sanitization.
func String(s string) string {
	for {
		next := stripOnce(s)
		if next == s {
			return next
		}
		s = next
	}
}

func stripOnce(s string) string {
	s = scriptPattern.ReplaceAllString(s, "")
	s = iframePattern.ReplaceAllString(s, "")
	s = tagPattern.ReplaceAllString(s, "")
	s = onAttrPattern.ReplaceAllString(s, "")
	s = jsURIPattern.ReplaceAllString(s, "")
	return s
}

// sanitizeValue walks an already-cloned value in place. depth counts
// container nesting from the record root.
func sanitizeValue(v any, depth, maxDepth int) any {
	switch val := v.(type) {
	case string:
		return String(val)
	case map[string]any:
		if depth >= maxDepth {
			return nil
		}
		for k, item := range val {
			val[k] = sanitizeValue(item, depth+1, maxDepth)
		}
		return val
	case []any:
		if depth >= maxDepth {
			return nil
		}
		for i, item := range val {
			val[i] = sanitizeValue(item, depth+1, maxDepth)
		}
		return val
	default:
		// Numbers, booleans, and nil pass through unchanged.
		return v
	}
}
