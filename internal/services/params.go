package services

import (
	"fmt"
	"strconv"
)

// Params is the slot-parameter bag extracted by the NLU platform. Values are
// untyped JSON (strings, numbers, lists); these helpers normalize access
// without validating presence, matching the platform's loose contract.
type Params map[string]interface{}

// String returns the parameter as a string, or "" when absent. Non-string
// scalars are formatted, so numeric slots still read back as text.
func (p Params) String(key string) string {
	v, ok := p[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", s)
	}
}

// Float returns the parameter as a number and whether it was numeric.
// Dialogflow sends numbers as JSON numbers but string-typed entities may
// still carry digits.
func (p Params) Float(key string) (float64, bool) {
	v, ok := p[key]
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// StringList returns a list-valued parameter. A scalar value becomes a
// one-element list; absent or empty values return nil.
func (p Params) StringList(key string) []string {
	v, ok := p[key]
	if !ok || v == nil {
		return nil
	}
	switch list := v.(type) {
	case []interface{}:
		if len(list) == 0 {
			return nil
		}
		out := make([]string, 0, len(list))
		for _, item := range list {
			out = append(out, fmt.Sprintf("%v", item))
		}
		return out
	case string:
		if list == "" {
			return nil
		}
		return []string{list}
	default:
		return []string{fmt.Sprintf("%v", v)}
	}
}

// Raw returns the untyped parameter value, nil when absent.
func (p Params) Raw(key string) interface{} {
	return p[key]
}
