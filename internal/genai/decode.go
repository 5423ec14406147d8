// internal/genai/decode.go
package genai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// decodeJSON unmarshals model output into a fresh T. Model text is
// untrusted: code fences and surrounding prose are stripped, and malformed
// JSON gets one repair attempt before failing.
func decodeJSON[T any](text string) (*T, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyResponse
	}

	candidate := stripFences(text)
	if v, err := unmarshalFresh[T](candidate); err == nil {
		return v, nil
	}

	// Extract JSON object from the text
	if start := strings.Index(candidate, "{"); start != -1 {
		if end := strings.LastIndex(candidate, "}"); end > start {
			candidate = candidate[start : end+1]
			if v, err := unmarshalFresh[T](candidate); err == nil {
				return v, nil
			}
		}
	}

	repaired, err := jsonrepair.JSONRepair(candidate)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON in response: %w", err)
	}
	v, err := unmarshalFresh[T](repaired)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON in response: %w", err)
	}
	return v, nil
}

func unmarshalFresh[T any](data string) (*T, error) {
	v := new(T)
	if err := json.Unmarshal([]byte(data), v); err != nil {
		return nil, err
	}
	return v, nil
}

func stripFences(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if nl := strings.Index(text, "\n"); nl != -1 {
		text = text[nl+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "```"))
}

var leadingNumber = regexp.MustCompile(`^-?\d+(\.\d+)?`)

// flexNumber accepts a JSON number or a numeric string such as "350" or "25g".
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = flexNumber(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("expected number, got %s", string(data))
	}
	match := leadingNumber.FindString(strings.TrimSpace(s))
	if match == "" {
		return fmt.Errorf("expected number, got %q", s)
	}
	f, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return fmt.Errorf("expected number, got %q: %w", s, err)
	}
	*n = flexNumber(f)
	return nil
}

// flexStrings accepts a JSON array of scalars, a single string, or null.
type flexStrings []string

func (l *flexStrings) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := flexStrings{}
	switch v := raw.(type) {
	case nil:
	case string:
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	case []interface{}:
		for _, item := range v {
			switch s := item.(type) {
			case string:
				if strings.TrimSpace(s) != "" {
					out = append(out, s)
				}
			case float64:
				out = append(out, strconv.FormatFloat(s, 'f', -1, 64))
			case bool:
				out = append(out, strconv.FormatBool(s))
			}
		}
	default:
		return fmt.Errorf("expected list of strings, got %s", string(data))
	}
	*l = out
	return nil
}

func (l flexStrings) orEmpty() []string {
	if l == nil {
		return []string{}
	}
	return []string(l)
}

func requireNumber(field string, n *flexNumber) (float64, error) {
	if n == nil {
		return 0, fmt.Errorf("%w: %s", ErrMissingField, field)
	}
	return float64(*n), nil
}
