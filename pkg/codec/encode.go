package codec

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/usenativ/nativ-go/pkg/api"
	"github.com/usenativ/nativ-go/pkg/errors"
	"github.com/usenativ/nativ-go/pkg/models"
)

// Default source language for translate and TM search calls.
const (
	DefaultSourceLanguage     = "English"
	DefaultSourceLanguageCode = "en"
)

// TranslateRequest holds the arguments of a translate call.
// Empty strings and a nil MaxCharacters mean "not supplied".
type TranslateRequest struct {
	Text               string
	TargetLanguage     string
	TargetLanguageCode string
	SourceLanguage     string
	SourceLanguageCode string
	Context            string
	Glossary           string
	Formality          string
	MaxCharacters      *int
	IncludeTMInfo      bool
	Backtranslate      bool
	IncludeRationale   bool
}

// TranslateOption customizes a TranslateRequest.
type TranslateOption func(*TranslateRequest)

// NewTranslateRequest builds a request with the wire defaults applied.
func NewTranslateRequest(text, targetLanguage string, opts ...TranslateOption) TranslateRequest {
	r := TranslateRequest{
		Text:               text,
		TargetLanguage:     targetLanguage,
		SourceLanguage:     DefaultSourceLanguage,
		SourceLanguageCode: DefaultSourceLanguageCode,
		IncludeTMInfo:      true,
		Backtranslate:      false,
		IncludeRationale:   true,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// WithTargetLanguageCode sets the ISO code of the target language.
func WithTargetLanguageCode(code string) TranslateOption {
	return func(r *TranslateRequest) { r.TargetLanguageCode = code }
}

// WithSourceLanguage sets the source language name and code. Empty values
// keep the defaults.
func WithSourceLanguage(name, code string) TranslateOption {
	return func(r *TranslateRequest) {
		if name != "" {
			r.SourceLanguage = name
		}
		if code != "" {
			r.SourceLanguageCode = code
		}
	}
}

// WithContext sets a context hint such as "mobile app button".
func WithContext(context string) TranslateOption {
	return func(r *TranslateRequest) { r.Context = context }
}

// WithGlossary sets an inline CSV glossary ("term,translation" per line).
func WithGlossary(glossary string) TranslateOption {
	return func(r *TranslateRequest) { r.Glossary = glossary }
}

// WithFormality sets the formality level.
func WithFormality(formality string) TranslateOption {
	return func(r *TranslateRequest) { r.Formality = formality }
}

// WithMaxCharacters sets a strict output character limit.
func WithMaxCharacters(n int) TranslateOption {
	return func(r *TranslateRequest) { r.MaxCharacters = &n }
}

// WithTMInfo toggles TM match details in the response.
func WithTMInfo(include bool) TranslateOption {
	return func(r *TranslateRequest) { r.IncludeTMInfo = include }
}

// WithBacktranslation toggles a back-translation in the response.
func WithBacktranslation(include bool) TranslateOption {
	return func(r *TranslateRequest) { r.Backtranslate = include }
}

// WithRationale toggles the rationale in the response.
func WithRationale(include bool) TranslateOption {
	return func(r *TranslateRequest) { r.IncludeRationale = include }
}

// Body returns the JSON body. Optional keys are omitted, never sent as null.
func (r TranslateRequest) Body() map[string]any {
	body := map[string]any{
		"text":                 r.Text,
		"language":             r.TargetLanguage,
		"source_language":      r.SourceLanguage,
		"source_language_code": r.SourceLanguageCode,
		"tool":                 api.Tool,
		"include_tm_info":      r.IncludeTMInfo,
		"backtranslate":        r.Backtranslate,
		"include_rationale":    r.IncludeRationale,
	}
	if r.TargetLanguageCode != "" {
		body["language_code"] = r.TargetLanguageCode
	}
	if r.Context != "" {
		body["context"] = r.Context
	}
	if r.Glossary != "" {
		body["glossary"] = r.Glossary
	}
	if r.Formality != "" {
		body["formality"] = r.Formality
	}
	if r.MaxCharacters != nil {
		body["max_characters"] = *r.MaxCharacters
	}
	return body
}

// BatchRequest derives the per-item request used by batch translation:
// TM info on, back-translation and rationale off.
func BatchRequest(text, targetLanguage string, opts ...TranslateOption) TranslateRequest {
	r := NewTranslateRequest(text, targetLanguage, opts...)
	r.IncludeTMInfo = true
	r.Backtranslate = false
	r.IncludeRationale = false
	return r
}

// InformationSourceManual tags TM entries added through the client.
const InformationSourceManual = "manual"

// TMEntryInput holds a new translation-memory entry.
type TMEntryInput struct {
	SourceText         string
	TargetText         string
	SourceLanguageCode string
	TargetLanguageCode string

	// Name is an optional label such as "homepage hero".
	Name string
}

// Body returns the POST body. The entry is always tagged as manual.
func (in TMEntryInput) Body() map[string]any {
	body := map[string]any{
		"source_text":          in.SourceText,
		"target_text":          in.TargetText,
		"source_language_code": in.SourceLanguageCode,
		"target_language_code": in.TargetLanguageCode,
		"information_source":   InformationSourceManual,
	}
	if in.Name != "" {
		body["source_name"] = in.Name
	}
	return body
}

// TMEntryUpdate lists the TM entry fields to change. Nil fields are kept.
type TMEntryUpdate struct {
	TargetText *string
	Enabled    *bool
}

// Body returns the PATCH body, or a ValidationError when no field is set.
func (u TMEntryUpdate) Body() (map[string]any, error) {
	body := map[string]any{}
	if u.TargetText != nil {
		body["target_text"] = *u.TargetText
	}
	if u.Enabled != nil {
		body["enabled"] = *u.Enabled
	}
	if len(body) == 0 {
		return nil, errors.NewValidation("provide at least one of target_text or enabled")
	}
	return body, nil
}

// CreateStyleGuideBody builds the body for a new style guide.
func CreateStyleGuideBody(title, content string, isEnabled bool) map[string]any {
	return map[string]any{
		"title":      title,
		"content":    content,
		"is_enabled": isEnabled,
	}
}

// StyleGuideUpdate lists the style guide fields to change. Nil fields are kept.
type StyleGuideUpdate struct {
	Title     *string
	Content   *string
	IsEnabled *bool
}

// Body returns the PUT body, or a ValidationError when no field is set.
func (u StyleGuideUpdate) Body() (map[string]any, error) {
	body := map[string]any{}
	if u.Title != nil {
		body["title"] = *u.Title
	}
	if u.Content != nil {
		body["content"] = *u.Content
	}
	if u.IsEnabled != nil {
		body["is_enabled"] = *u.IsEnabled
	}
	if len(body) == 0 {
		return nil, errors.NewValidation("provide at least one of title, content or is_enabled")
	}
	return body, nil
}

// Feedback is translation feedback. Every field is optional.
type Feedback struct {
	Source   *string
	Result   *string
	Language *string
	Feedback *string
	Approved *bool
}

// Body returns the feedback body with unset fields omitted.
func (f Feedback) Body() map[string]any {
	body := map[string]any{}
	if f.Source != nil {
		body["source"] = *f.Source
	}
	if f.Result != nil {
		body["result"] = *f.Result
	}
	if f.Language != nil {
		body["language"] = *f.Language
	}
	if f.Feedback != nil {
		body["feedback"] = *f.Feedback
	}
	if f.Approved != nil {
		body["approved"] = *f.Approved
	}
	return body
}

// FormalityBody builds the body for a language formality update.
func FormalityBody(formality string) map[string]any {
	return map[string]any{"formality": formality}
}

// CustomStyleBody builds the body for a custom style update. A nil style
// is sent as null and clears the setting.
func CustomStyleBody(customStyle *string) map[string]any {
	if customStyle == nil {
		return map[string]any{"custom_style": nil}
	}
	return map[string]any{"custom_style": *customStyle}
}

// TMSearch holds the arguments of a fuzzy TM search.
type TMSearch struct {
	Query              string
	SourceLanguageCode string
	TargetLanguageCode string
	MinScore           float64
	Limit              int
}

// DefaultTMSearchLimit is the number of hits requested when none is given.
const DefaultTMSearchLimit = 10

// NewTMSearch returns a search with source "en", no score cutoff and limit 10.
func NewTMSearch(query string) TMSearch {
	return TMSearch{
		Query:              query,
		SourceLanguageCode: DefaultSourceLanguageCode,
		Limit:              DefaultTMSearchLimit,
	}
}

// Values returns the query parameters. An empty source language means "en"
// and a non-positive limit means DefaultTMSearchLimit.
func (s TMSearch) Values() url.Values {
	source := s.SourceLanguageCode
	if source == "" {
		source = DefaultSourceLanguageCode
	}
	limit := s.Limit
	if limit <= 0 {
		limit = DefaultTMSearchLimit
	}

	v := url.Values{}
	v.Set("query", s.Query)
	v.Set("source_lang", source)
	v.Set("score_cutoff", strconv.FormatFloat(s.MinScore, 'f', -1, 64))
	v.Set("limit", strconv.Itoa(limit))
	if s.TargetLanguageCode != "" {
		v.Set("target_lang", s.TargetLanguageCode)
	}
	return v
}

// TMListFilter holds the filters and page of a TM entry listing.
type TMListFilter struct {
	SourceLanguageCode string
	TargetLanguageCode string
	InformationSource  string
	Search             string
	EnabledOnly        bool
	Limit              int
	Offset             int
}

// DefaultTMListLimit is the page size used when none is given.
const DefaultTMListLimit = 100

// Values returns the query parameters. Unset filters are omitted.
func (f TMListFilter) Values() url.Values {
	_, limit := f.Page()

	v := url.Values{}
	v.Set("limit", strconv.Itoa(limit))
	v.Set("offset", strconv.Itoa(f.Offset))
	if f.SourceLanguageCode != "" {
		v.Set("source_lang", f.SourceLanguageCode)
	}
	if f.TargetLanguageCode != "" {
		v.Set("target_lang", f.TargetLanguageCode)
	}
	if f.InformationSource != "" {
		v.Set("information_source", f.InformationSource)
	}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.EnabledOnly {
		v.Set("enabled_only", "true")
	}
	return v
}

// Page returns the effective offset and limit sent with the listing.
func (f TMListFilter) Page() (offset, limit int) {
	limit = f.Limit
	if limit <= 0 {
		limit = DefaultTMListLimit
	}
	return f.Offset, limit
}

// ImageCulturalize holds the form arguments of an image generation call.
type ImageCulturalize struct {
	Text         string
	LanguageCode string
	OutputFormat string
	Model        string
	NumImages    int
}

// NewImageCulturalize returns a request for one PNG made with the gpt model.
func NewImageCulturalize(text, languageCode string) ImageCulturalize {
	return ImageCulturalize{
		Text:         text,
		LanguageCode: languageCode,
		OutputFormat: models.FormatPNG,
		Model:        models.ModelGPT,
		NumImages:    1,
	}
}

// Form validates the arguments and returns the stringified form fields.
// Empty OutputFormat and Model and a zero NumImages take the defaults.
func (c ImageCulturalize) Form() (map[string]string, error) {
	if c.OutputFormat == "" {
		c.OutputFormat = models.FormatPNG
	}
	if c.Model == "" {
		c.Model = models.ModelGPT
	}
	if c.NumImages == 0 {
		c.NumImages = 1
	}

	if !slices.Contains([]string{models.FormatPNG, models.FormatJPEG, models.FormatWEBP}, c.OutputFormat) {
		return nil, errors.NewValidation(fmt.Sprintf("output_format must be one of png, jpeg, webp; got %q", c.OutputFormat))
	}
	if !slices.Contains([]string{models.ModelGPT, models.ModelGemini}, c.Model) {
		return nil, errors.NewValidation(fmt.Sprintf("model must be gpt or gemini; got %q", c.Model))
	}
	if c.NumImages < 1 || c.NumImages > 5 {
		return nil, errors.NewValidation(fmt.Sprintf("num_images must be between 1 and 5; got %d", c.NumImages))
	}

	return map[string]string{
		"text":          c.Text,
		"language_code": c.LanguageCode,
		"output_format": c.OutputFormat,
		"model":         c.Model,
		"num_images":    strconv.Itoa(c.NumImages),
		"tool":          api.Tool,
	}, nil
}

// InspectForm returns the inspection form fields, or nil when no
// countries are given and the server default applies.
func InspectForm(countries []string) map[string]string {
	if len(countries) == 0 {
		return nil
	}
	return map[string]string{"countries": strings.Join(countries, ",")}
}
