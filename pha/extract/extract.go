// Package extract pulls structured JSON out of free-form model output.
//
// Model replies rarely arrive as bare JSON: they come wrapped in markdown
// fences, prefixed with prose, or both. JSON applies a three-tier strategy:
// fenced ```json block first, then the widest {...} span, then the whole
// text. Callers own the fallback when every tier fails.
package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrNoJSON is returned when no parseable JSON object is found in the text.
var ErrNoJSON = fmt.Errorf("no JSON object found in text")

// JSON extracts the first parseable JSON object from text.
func JSON(text string) (json.RawMessage, error) {
	candidate := carve(text)
	if candidate == "" {
		return nil, ErrNoJSON
	}

	if !json.Valid([]byte(candidate)) {
		return nil, fmt.Errorf("%w: candidate span is not valid JSON", ErrNoJSON)
	}

	return json.RawMessage(candidate), nil
}

// Decode extracts JSON from text and unmarshals it into v.
func Decode(text string, v any) error {
	raw, err := JSON(text)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode extracted JSON: %w", err)
	}
	return nil
}

// ValidateSchema checks raw against a JSON schema document.
func ValidateSchema(raw json.RawMessage, schema []byte) error {
	if len(schema) == 0 {
		return nil
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			errs = append(errs, e.String())
		}
		return fmt.Errorf("JSON does not match schema: %s", strings.Join(errs, "; "))
	}

	return nil
}

// carve locates the most likely JSON span in text.
func carve(text string) string {
	// Tier 1: fenced code block, ```json preferred over bare ```.
	for _, fence := range []string{"```json", "```"} {
		if start := strings.Index(text, fence); start != -1 {
			body := text[start+len(fence):]
			if end := strings.Index(body, "```"); end != -1 {
				return strings.TrimSpace(body[:end])
			}
		}
	}

	// Tier 2: widest {...} span.
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		return text[start : end+1]
	}

	// Tier 3: the whole reply.
	return strings.TrimSpace(text)
}
