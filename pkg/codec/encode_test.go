package codec

import (
	stderrors "errors"
	"testing"

	"github.com/usenativ/nativ-go/pkg/errors"
)

func TestTranslateBodyDefaults(t *testing.T) {
	body := NewTranslateRequest("Hello", "French").Body()

	want := map[string]any{
		"text":                 "Hello",
		"language":             "French",
		"source_language":      "English",
		"source_language_code": "en",
		"tool":                 "api",
		"include_tm_info":      true,
		"backtranslate":        false,
		"include_rationale":    true,
	}
	for k, v := range want {
		if body[k] != v {
			t.Errorf("body[%q] = %v, want %v", k, body[k], v)
		}
	}
	for _, k := range []string{"language_code", "context", "glossary", "formality", "max_characters"} {
		if _, ok := body[k]; ok {
			t.Errorf("unset optional %q must be omitted, body = %v", k, body)
		}
	}
}

func TestTranslateBodyOptions(t *testing.T) {
	body := NewTranslateRequest("Hello", "German",
		WithTargetLanguageCode("de"),
		WithSourceLanguage("Spanish", "es"),
		WithContext("button"),
		WithGlossary("Hello,Hallo"),
		WithFormality("formal"),
		WithMaxCharacters(0),
		WithBacktranslation(true),
		WithRationale(false),
	).Body()

	if body["language_code"] != "de" || body["source_language"] != "Spanish" || body["source_language_code"] != "es" {
		t.Errorf("language fields wrong: %v", body)
	}
	if body["context"] != "button" || body["glossary"] != "Hello,Hallo" || body["formality"] != "formal" {
		t.Errorf("optional fields wrong: %v", body)
	}
	if v, ok := body["max_characters"]; !ok || v != 0 {
		t.Errorf("max_characters 0 is an explicit value and must be sent, got %v", v)
	}
	if body["backtranslate"] != true || body["include_rationale"] != false {
		t.Errorf("flags wrong: %v", body)
	}
}

func TestBatchRequestForcesFlags(t *testing.T) {
	body := BatchRequest("Sign up", "German", WithBacktranslation(true), WithRationale(true), WithTMInfo(false)).Body()
	if body["include_tm_info"] != true || body["backtranslate"] != false || body["include_rationale"] != false {
		t.Errorf("batch flags not forced: %v", body)
	}
}

func TestTMEntryInputBody(t *testing.T) {
	body := TMEntryInput{SourceText: "Hi", TargetText: "Salut", SourceLanguageCode: "en", TargetLanguageCode: "fr"}.Body()
	if body["information_source"] != InformationSourceManual {
		t.Errorf("information_source = %v", body["information_source"])
	}
	if _, ok := body["source_name"]; ok {
		t.Error("source_name must be omitted when Name is empty")
	}

	body = TMEntryInput{SourceText: "Hi", Name: "hero"}.Body()
	if body["source_name"] != "hero" {
		t.Errorf("source_name = %v", body["source_name"])
	}
}

func TestEmptyUpdatesAreRejected(t *testing.T) {
	if _, err := (TMEntryUpdate{}).Body(); !stderrors.Is(err, errors.ErrValidation) {
		t.Errorf("empty TM update error = %v, want validation", err)
	}
	if _, err := (StyleGuideUpdate{}).Body(); !stderrors.Is(err, errors.ErrValidation) {
		t.Errorf("empty style guide update error = %v, want validation", err)
	}

	enabled := false
	body, err := TMEntryUpdate{Enabled: &enabled}.Body()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok := body["enabled"]; !ok || v != false {
		t.Errorf("explicit false must be sent, body = %v", body)
	}
	if _, ok := body["target_text"]; ok {
		t.Error("unset target_text must be omitted")
	}
}

func TestCustomStyleBodySendsNull(t *testing.T) {
	body := CustomStyleBody(nil)
	v, ok := body["custom_style"]
	if !ok || v != nil {
		t.Errorf("nil style must be sent as null, got %v", body)
	}
}

func TestFeedbackBodyOmitsUnset(t *testing.T) {
	approved := true
	body := Feedback{Approved: &approved}.Body()
	if len(body) != 1 || body["approved"] != true {
		t.Errorf("feedback body = %v", body)
	}
}

func TestTMSearchValues(t *testing.T) {
	v := NewTMSearch("hello").Values()
	if v.Get("query") != "hello" || v.Get("source_lang") != "en" || v.Get("score_cutoff") != "0" || v.Get("limit") != "10" {
		t.Errorf("defaults wrong: %v", v)
	}
	if v.Has("target_lang") {
		t.Error("target_lang must be omitted when unset")
	}

	v = TMSearch{Query: "x", TargetLanguageCode: "fr", MinScore: 72.5}.Values()
	if v.Get("source_lang") != "en" || v.Get("limit") != "10" {
		t.Errorf("zero value should take defaults: %v", v)
	}
	if v.Get("target_lang") != "fr" || v.Get("score_cutoff") != "72.5" {
		t.Errorf("explicit values wrong: %v", v)
	}
}

func TestTMListFilterValues(t *testing.T) {
	v := TMListFilter{}.Values()
	if v.Get("limit") != "100" || v.Get("offset") != "0" {
		t.Errorf("defaults wrong: %v", v)
	}
	for _, k := range []string{"source_lang", "target_lang", "information_source", "search", "enabled_only"} {
		if v.Has(k) {
			t.Errorf("unset filter %q must be omitted", k)
		}
	}

	v = TMListFilter{EnabledOnly: true, Search: "hi", Limit: 5, Offset: 10}.Values()
	if v.Get("enabled_only") != "true" || v.Get("search") != "hi" || v.Get("limit") != "5" || v.Get("offset") != "10" {
		t.Errorf("filters wrong: %v", v)
	}
}

func TestImageCulturalizeForm(t *testing.T) {
	form, err := NewImageCulturalize("Hola", "es").Form()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]string{
		"text": "Hola", "language_code": "es", "output_format": "png",
		"model": "gpt", "num_images": "1", "tool": "api",
	}
	for k, v := range want {
		if form[k] != v {
			t.Errorf("form[%q] = %q, want %q", k, form[k], v)
		}
	}

	bad := []ImageCulturalize{
		{Text: "x", NumImages: 6},
		{Text: "x", NumImages: -1},
		{Text: "x", OutputFormat: "gif"},
		{Text: "x", Model: "dall-e"},
	}
	for _, c := range bad {
		if _, err := c.Form(); !stderrors.Is(err, errors.ErrValidation) {
			t.Errorf("Form(%+v) error = %v, want validation", c, err)
		}
	}
}

func TestInspectForm(t *testing.T) {
	if InspectForm(nil) != nil {
		t.Error("no countries should produce no form")
	}
	if got := InspectForm([]string{"JP", "DE"})["countries"]; got != "JP,DE" {
		t.Errorf("countries = %q", got)
	}
}
