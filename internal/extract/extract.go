// Package extract locates and parses the JSON payload inside a raw model
// completion. Models sometimes wrap their JSON in prose or code fences despite
// instructions, so the span is located tolerantly before strict parsing.
//
// The span is taken greedily from the first opening bracket to the last
// closing bracket in the whole text. A completion containing two separate
// JSON blocks, or stray braces in surrounding prose, mis-parses and surfaces
// as ErrInvalidJSON.
package extract

import (
	"encoding/json"
	"regexp"

	"github.com/dhealy/applytrack/internal/apperror"
)

var (
	objectRe = regexp.MustCompile(`\{[\s\S]*\}`)
	arrayRe  = regexp.MustCompile(`\[[\s\S]*\]`)
)

// Object finds the {...} span in text and unmarshals it into out.
// Returns apperror.ErrNoJSONFound when no span exists and
// apperror.ErrInvalidJSON when the span is not strict JSON.
func Object(text string, out any) error {
	return parse(objectRe, text, out)
}

// Array finds the [...] span in text and unmarshals it into out.
func Array(text string, out any) error {
	return parse(arrayRe, text, out)
}

func parse(re *regexp.Regexp, text string, out any) error {
	span := re.FindString(text)
	if span == "" {
		return apperror.ErrNoJSONFound
	}
	if err := json.Unmarshal([]byte(span), out); err != nil {
		return apperror.ErrInvalidJSON
	}
	return nil
}
