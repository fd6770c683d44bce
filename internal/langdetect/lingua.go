// Package langdetect guesses the source language of text passed to the CLI.
package langdetect

import (
	"strings"
	"sync"
	"unicode"

	lingua "github.com/pemistahl/lingua-go"
)

// minLetters is the shortest sample worth detecting. Shorter strings such
// as button labels are too ambiguous.
const minLetters = 6

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// Result is a detected language as the API expects it: a display name and
// an ISO 639-1 code.
type Result struct {
	Name string
	Code string
}

// Detect returns the language of text, or false when it cannot tell.
func Detect(text string) (Result, bool) {
	sample := strings.TrimSpace(text)
	if sample == "" {
		return Result{}, false
	}

	letterCount := 0
	for _, r := range sample {
		if unicode.IsLetter(r) {
			letterCount++
		}
	}
	if letterCount < minLetters {
		return Result{}, false
	}

	language, exists := getDetector().DetectLanguageOf(sample)
	if !exists {
		return Result{}, false
	}

	code := strings.ToLower(language.IsoCode639_1().String())
	if len(code) != 2 {
		return Result{}, false
	}
	return Result{Name: displayName(language.String()), Code: code}, true
}

// displayName turns an enum name such as "ENGLISH" or "English" into "English".
func displayName(name string) string {
	if name == "" {
		return name
	}
	lower := strings.ToLower(name)
	return strings.ToUpper(lower[:1]) + lower[1:]
}

func getDetector() lingua.LanguageDetector {
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			WithLowAccuracyMode().
			Build()
	})
	return detector
}
