// Package repair normalizes free-form reasoning replies into the JSON
// object each operation expects. Providers wrap JSON in markdown fences,
// prepend prose, or truncate long replies mid-object; normalization runs
// a fixed sequence of recovery stages and always yields well-formed JSON,
// falling back to an empty skeleton tagged with the failure rather than
// returning an error the pipeline would have to branch on.
package repair

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind identifies which operation's response schema is expected. The
// caller that issued the request selects the kind; nothing is inferred
// from the reply text itself.
type Kind string

const (
	// KindPageExtraction is the reply to extracting claims from one
	// presentation page.
	KindPageExtraction Kind = "page_extraction"
	// KindBatchAnalysis is the reply to analyzing a batch of table
	// regions.
	KindBatchAnalysis Kind = "batch_analysis"
	// KindMapping is the reply to suggesting claim-to-cell mappings.
	KindMapping Kind = "mapping"
	// KindAudit is the reply to adjudicating one batch of claims.
	KindAudit Kind = "audit"
)

// ArrayKey returns the top-level array field the kind's schema carries.
// Targeted recovery extracts exactly this array when the enclosing
// object cannot be parsed.
func (k Kind) ArrayKey() string {
	switch k {
	case KindPageExtraction:
		return "extracted_values"
	case KindBatchAnalysis:
		return "batch_analysis"
	case KindMapping:
		return "suggested_mappings"
	case KindAudit:
		return "batch_results"
	default:
		return ""
	}
}

// Result holds the normalized reply. Object is always valid JSON: the
// recovered object when any stage succeeded, the kind's empty skeleton
// when none did. Err records what went wrong in the latter case.
type Result struct {
	Kind   Kind
	Object json.RawMessage
	Err    string
}

// Failed reports whether normalization fell through to the skeleton.
func (r Result) Failed() bool { return r.Err != "" }

// Decode unmarshals the normalized object into v.
func (r Result) Decode(v any) error {
	return json.Unmarshal(r.Object, v)
}

// Normalize runs the staged recovery over one raw reply.
//
// Stages, in order: strip markdown fences, cut the first balanced
// {...} span (brace counting that ignores braces inside JSON strings),
// and if the span is missing or unparseable, recover the kind's
// top-level array from the raw text and rewrap it. A reply that defeats
// every stage produces the skeleton {"<array-key>": [], "error": ...}.
func Normalize(kind Kind, text string) Result {
	cleaned := stripFences(text)

	if span, ok := balancedObject(cleaned); ok && json.Valid(span) {
		return Result{Kind: kind, Object: span}
	}

	if key := kind.ArrayKey(); key != "" {
		if arr, ok := recoverArray(text, key); ok {
			obj, err := json.Marshal(map[string]json.RawMessage{key: arr})
			if err == nil {
				return Result{Kind: kind, Object: obj}
			}
		}
	}

	detail := fmt.Sprintf("response contained no parseable JSON for %s", kind)
	return Result{Kind: kind, Object: skeleton(kind, detail), Err: detail}
}

// stripFences removes a leading ```json or ``` fence and the matching
// trailing fence.
func stripFences(text string) string {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(s[:len(s)-len("```")])
	}
	return s
}

// balancedObject cuts the first balanced {...} span from s. Braces
// inside JSON strings do not count toward the balance, and an escaped
// quote does not end a string. Returns false when no object opens or
// the reply truncates before the braces balance.
func balancedObject(s string) ([]byte, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if start == -1 {
			if c == '{' {
				start = i
				depth = 1
			}
			continue
		}
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return []byte(s[start : i+1]), true
			}
		}
	}
	return nil, false
}

// recoverArray locates `"key": [...]` in the raw text and cuts the
// balanced array span. The span must itself be valid JSON; a truncated
// array is not recovered.
func recoverArray(text, key string) (json.RawMessage, bool) {
	marker := `"` + key + `"`
	at := strings.Index(text, marker)
	if at == -1 {
		return nil, false
	}
	rest := text[at+len(marker):]

	i := 0
	for i < len(rest) && (rest[i] == ':' || rest[i] == ' ' || rest[i] == '\t' || rest[i] == '\n' || rest[i] == '\r') {
		i++
	}
	if i >= len(rest) || rest[i] != '[' {
		return nil, false
	}

	depth := 0
	inString := false
	escaped := false
	for j := i; j < len(rest); j++ {
		c := rest[j]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				span := json.RawMessage(rest[i : j+1])
				if json.Valid(span) {
					return span, true
				}
				return nil, false
			}
		}
	}
	return nil, false
}

// skeleton builds the kind's empty result object with the failure
// recorded in its error field. Downstream decoding treats it like any
// other reply with zero entries.
func skeleton(kind Kind, detail string) json.RawMessage {
	obj := map[string]any{"error": detail}
	if key := kind.ArrayKey(); key != "" {
		obj[key] = []any{}
	}
	data, _ := json.Marshal(obj)
	return data
}
