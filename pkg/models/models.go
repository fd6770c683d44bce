// Package models provides the typed results returned by the Nativ API.
// Values are snapshots of server state at fetch time and are never mutated
// after they are decoded.
package models

import (
	"encoding/base64"
)

// VerdictSafe is the inspection verdict assumed when the server omits one.
const VerdictSafe = "SAFE"

// DefaultPriority is the TM entry priority assumed when the server omits one.
const DefaultPriority = 50

// Formality levels accepted by translate and language settings.
const (
	FormalityVeryInformal = "very_informal"
	FormalityInformal     = "informal"
	FormalityNeutral      = "neutral"
	FormalityFormal       = "formal"
	FormalityVeryFormal   = "very_formal"
)

// Formalities lists the accepted formality levels in ascending order.
var Formalities = []string{
	FormalityVeryInformal,
	FormalityInformal,
	FormalityNeutral,
	FormalityFormal,
	FormalityVeryFormal,
}

// Image generation output formats and models.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatWEBP = "webp"

	ModelGPT    = "gpt"
	ModelGemini = "gemini"
)

// TranslationMetadata is the cost and word count attached to every translation.
type TranslationMetadata struct {
	WordCount int `json:"word_count" yaml:"word_count"`
	Cost      int `json:"cost" yaml:"cost"`
}

// TMMatchDetail is one candidate translation-memory match.
type TMMatchDetail struct {
	TMID              string  `json:"tm_id" yaml:"tm_id"`
	Score             float64 `json:"score" yaml:"score"`
	MatchType         string  `json:"match_type" yaml:"match_type"`
	SourceText        string  `json:"source_text" yaml:"source_text"`
	TargetText        string  `json:"target_text" yaml:"target_text"`
	InformationSource string  `json:"information_source" yaml:"information_source"`
	SourceName        string  `json:"source_name" yaml:"source_name"`
}

// TMMatch is the best translation-memory match for a translation.
// TopMatches keeps the server's rank order.
type TMMatch struct {
	Score        float64         `json:"score" yaml:"score"`
	MatchType    string          `json:"match_type" yaml:"match_type"`
	SourceText   *string         `json:"source_text" yaml:"source_text"`
	TargetText   *string         `json:"target_text" yaml:"target_text"`
	TMSource     *string         `json:"tm_source" yaml:"tm_source"`
	TMSourceName *string         `json:"tm_source_name" yaml:"tm_source_name"`
	TMID         *string         `json:"tm_id" yaml:"tm_id"`
	TopMatches   []TMMatchDetail `json:"top_matches" yaml:"top_matches"`
}

// Translation is the result of a translate call.
type Translation struct {
	TranslatedText  string              `json:"translated_text" yaml:"translated_text"`
	Metadata        TranslationMetadata `json:"metadata" yaml:"metadata"`
	TMMatch         *TMMatch            `json:"tm_match" yaml:"tm_match"`
	Rationale       *string             `json:"rationale" yaml:"rationale"`
	Backtranslation *string             `json:"backtranslation" yaml:"backtranslation"`
}

// OCRResult is the text extracted from one image.
type OCRResult struct {
	ExtractedText string `json:"extracted_text" yaml:"extracted_text"`
}

// GeneratedImage is a single base64-encoded generated image.
type GeneratedImage struct {
	ImageBase64 string `json:"image_base64" yaml:"image_base64"`
}

// Decode returns the raw image bytes.
func (g GeneratedImage) Decode() ([]byte, error) {
	return base64.StdEncoding.DecodeString(g.ImageBase64)
}

// ImageMetadata is the cost of an image generation call.
type ImageMetadata struct {
	Cost      int `json:"cost" yaml:"cost"`
	NumImages int `json:"num_images" yaml:"num_images"`
}

// ImageResult is the result of an image culturalization call.
type ImageResult struct {
	Images   []GeneratedImage `json:"images" yaml:"images"`
	Metadata ImageMetadata    `json:"metadata" yaml:"metadata"`
}

// AffectedCountry is a country flagged during a cultural inspection.
type AffectedCountry struct {
	Country    string `json:"country" yaml:"country"`
	Issue      string `json:"issue" yaml:"issue"`
	Suggestion string `json:"suggestion" yaml:"suggestion"`
}

// CulturalInspection is the result of a cultural sensitivity check.
type CulturalInspection struct {
	Verdict           string            `json:"verdict" yaml:"verdict"`
	AffectedCountries []AffectedCountry `json:"affected_countries" yaml:"affected_countries"`
}

// IsSafe reports whether no sensitivity issue was found.
func (c CulturalInspection) IsSafe() bool {
	return c.Verdict == VerdictSafe && len(c.AffectedCountries) == 0
}

// Language is a language configured in the workspace.
// ID is the key used for formality and custom style updates.
type Language struct {
	ID           int     `json:"id" yaml:"id"`
	Language     string  `json:"language" yaml:"language"`
	LanguageCode string  `json:"language_code" yaml:"language_code"`
	Formality    *string `json:"formality" yaml:"formality"`
	CustomStyle  *string `json:"custom_style" yaml:"custom_style"`
}

// TMEntry is a stored translation-memory record.
type TMEntry struct {
	ID                 string   `json:"id" yaml:"id"`
	UserID             int      `json:"user_id" yaml:"user_id"`
	EndUserID          *string  `json:"end_user_id" yaml:"end_user_id"`
	SourceLanguageCode string   `json:"source_language_code" yaml:"source_language_code"`
	SourceText         string   `json:"source_text" yaml:"source_text"`
	TargetLanguageCode string   `json:"target_language_code" yaml:"target_language_code"`
	TargetText         string   `json:"target_text" yaml:"target_text"`
	InformationSource  string   `json:"information_source" yaml:"information_source"`
	SourceName         *string  `json:"source_name" yaml:"source_name"`
	Enabled            bool     `json:"enabled" yaml:"enabled"`
	Priority           int      `json:"priority" yaml:"priority"`
	CreatedAt          *string  `json:"created_at" yaml:"created_at"`
	UpdatedAt          *string  `json:"updated_at" yaml:"updated_at"`
	MatchScore         *float64 `json:"match_score" yaml:"match_score"`
}

// TMEntryList is one page of TM entries. Total may exceed len(Entries).
type TMEntryList struct {
	Entries []TMEntry `json:"entries" yaml:"entries"`
	Total   int       `json:"total" yaml:"total"`
	Offset  int       `json:"offset" yaml:"offset"`
	Limit   int       `json:"limit" yaml:"limit"`
}

// HasMore reports whether entries exist past this page.
func (l TMEntryList) HasMore() bool {
	return l.Offset+len(l.Entries) < l.Total
}

// TMSearchMatch is one fuzzy-search hit, in server rank order.
type TMSearchMatch struct {
	TMID              string  `json:"tm_id" yaml:"tm_id"`
	Score             float64 `json:"score" yaml:"score"`
	MatchType         string  `json:"match_type" yaml:"match_type"`
	SourceText        string  `json:"source_text" yaml:"source_text"`
	TargetText        string  `json:"target_text" yaml:"target_text"`
	InformationSource string  `json:"information_source" yaml:"information_source"`
	SourceName        *string `json:"source_name" yaml:"source_name"`
}

// TMStats holds aggregate translation-memory counters.
// BySource maps a provenance identifier to an open-ended count breakdown.
type TMStats struct {
	Total    int                       `json:"total" yaml:"total"`
	Enabled  int                       `json:"enabled" yaml:"enabled"`
	Disabled int                       `json:"disabled" yaml:"disabled"`
	BySource map[string]map[string]int `json:"by_source" yaml:"by_source"`
}

// StyleGuide is a user-authored style directive.
type StyleGuide struct {
	ID           string `json:"id" yaml:"id"`
	Title        string `json:"title" yaml:"title"`
	Content      string `json:"content" yaml:"content"`
	IsEnabled    bool   `json:"is_enabled" yaml:"is_enabled"`
	DisplayOrder int    `json:"display_order" yaml:"display_order"`
	UserID       *int   `json:"user_id" yaml:"user_id"`
}

// BrandVoice is the workspace-level voice prompt.
type BrandVoice struct {
	Prompt *string `json:"prompt" yaml:"prompt"`
	Exists bool    `json:"exists" yaml:"exists"`
	Cached bool    `json:"cached" yaml:"cached"`
}

// EffectivePrompt returns the prompt text, or "" when no brand voice exists.
func (b BrandVoice) EffectivePrompt() string {
	if !b.Exists || b.Prompt == nil {
		return ""
	}
	return *b.Prompt
}

// CombinedPrompt is the brand voice merged with enabled style guides.
// The server shape is not fixed, so it is returned as-is.
type CombinedPrompt map[string]any

// FeedbackResult is the server acknowledgement of submitted feedback.
type FeedbackResult map[string]any
