package generation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// RawCard is one untrusted card object as returned by a provider.
type RawCard map[string]any

// fencePattern matches the first markdown code fence, optionally tagged json.
var fencePattern = regexp.MustCompile("(?is)```[ \t]*(?:json)?[ \t]*\r?\n?(.*?)```")

// Normalize parses raw provider text into card objects.
//
// The full text is parsed as JSON first. If that fails, the first fenced code
// block is extracted and parsed. When neither parses, ErrMalformedResponse is
// returned. A parsed document without a "flashcards" array yields
// ErrUnexpectedResponseShape. Array elements that are not objects are skipped.
func Normalize(raw string) ([]RawCard, error) {
	doc, err := parseDocument(raw)
	if err != nil {
		return nil, err
	}

	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: top-level value is %s, not an object", ErrUnexpectedResponseShape, jsonKind(doc))
	}

	list, ok := obj[EnvelopeKey].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: missing %q array", ErrUnexpectedResponseShape, EnvelopeKey)
	}

	cards := make([]RawCard, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			cards = append(cards, RawCard(m))
		}
	}
	return cards, nil
}

func parseDocument(raw string) (any, error) {
	text := strings.TrimSpace(raw)

	var doc any
	if err := json.Unmarshal([]byte(text), &doc); err == nil {
		return doc, nil
	}

	block, ok := extractFencedBlock(text)
	if !ok {
		return nil, fmt.Errorf("%w: not JSON and no fenced block found", ErrMalformedResponse)
	}
	if err := json.Unmarshal([]byte(block), &doc); err != nil {
		return nil, fmt.Errorf("%w: fenced block is not valid JSON: %v", ErrMalformedResponse, err)
	}
	return doc, nil
}

// extractFencedBlock returns the trimmed body of the first fenced block in s.
func extractFencedBlock(s string) (string, bool) {
	m := fencePattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "an array"
	case string:
		return "a string"
	case float64:
		return "a number"
	case bool:
		return "a boolean"
	}
	return "unknown"
}
