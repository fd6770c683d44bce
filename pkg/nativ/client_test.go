package nativ

import (
	"context"
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/usenativ/nativ-go/internal/apitest"
	"github.com/usenativ/nativ-go/pkg/api"
	"github.com/usenativ/nativ-go/pkg/errors"
)

// clearEnv keeps the developer's own NATIV_* settings out of the tests.
func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(api.EnvAPIKey, "")
	t.Setenv(api.EnvAPIURL, "")
}

func newTestClient(t *testing.T, srv *apitest.Server, rt http.RoundTripper) *Client {
	t.Helper()
	clearEnv(t)
	c, err := New(Options{APIKey: apitest.APIKey, BaseURL: srv.URL, HTTPTransport: rt})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func translation(text string) map[string]any {
	return map[string]any{"translated_text": text, "metadata": map[string]any{"word_count": 2, "cost": 2}}
}

func TestNewWithoutAPIKey(t *testing.T) {
	clearEnv(t)

	_, err := New(Options{})
	var authErr *errors.AuthenticationError
	if !stderrors.As(err, &authErr) {
		t.Fatalf("error = %v, want *AuthenticationError", err)
	}
	if authErr.HasStatus() {
		t.Error("missing key is a local failure and carries no status")
	}

	if _, err := NewAsync(Options{}); !stderrors.Is(err, errors.ErrAuthentication) {
		t.Errorf("NewAsync error = %v, want authentication", err)
	}
}

func TestNewResolvesEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv(api.EnvAPIKey, "env-key")
	t.Setenv(api.EnvAPIURL, "https://staging.example.com/")

	c, err := New(Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()
	if c.BaseURL() != "https://staging.example.com" {
		t.Errorf("BaseURL = %q", c.BaseURL())
	}

	c2, err := New(Options{BaseURL: "https://override.example.com//"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c2.Close()
	if c2.BaseURL() != "https://override.example.com" {
		t.Errorf("option should win over env, BaseURL = %q", c2.BaseURL())
	}
}

func TestNewDefaultBaseURL(t *testing.T) {
	clearEnv(t)
	c, err := New(Options{APIKey: "k"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()
	if c.BaseURL() != api.DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", c.BaseURL(), api.DefaultBaseURL)
	}
}

func TestTranslate(t *testing.T) {
	srv := apitest.NewServer(t)
	srv.Handle(http.MethodPost, "/text/culturalize", http.StatusOK, map[string]any{
		"translated_text": "Bonjour le monde",
		"metadata":        map[string]any{"word_count": 2, "cost": 2},
		"rationale":       "Direct equivalent",
		"tm_match":        map[string]any{"score": 0},
	})
	c := newTestClient(t, srv, nil)

	tr, err := c.Translate(context.Background(), "Hello world", "French", WithFormality("formal"))
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if tr.TranslatedText != "Bonjour le monde" || tr.TMMatch != nil {
		t.Errorf("unexpected translation: %+v", tr)
	}

	body := srv.Last(t).JSON
	if body["text"] != "Hello world" || body["language"] != "French" || body["formality"] != "formal" || body["tool"] != "api" {
		t.Errorf("request body = %v", body)
	}
	if _, ok := body["context"]; ok {
		t.Error("unset context must not be sent")
	}
}

func TestTranslateBatchPreservesOrder(t *testing.T) {
	srv := apitest.NewServer(t)
	srv.HandleFunc(http.MethodPost, "/text/culturalize", func(r apitest.Request) (int, any) {
		switch r.JSON["text"] {
		case "Sign up":
			return http.StatusOK, translation("Registrieren")
		default:
			return http.StatusOK, translation("Anmelden")
		}
	})
	c := newTestClient(t, srv, nil)

	results, err := c.TranslateBatch(context.Background(), []string{"Sign up", "Log in"}, "German", WithBacktranslation(true))
	if err != nil {
		t.Fatalf("TranslateBatch: %v", err)
	}
	if len(results) != 2 || results[0].TranslatedText != "Registrieren" || results[1].TranslatedText != "Anmelden" {
		t.Errorf("results out of order: %+v %+v", results[0], results[1])
	}

	reqs := srv.Requests()
	if len(reqs) != 2 || reqs[0].JSON["text"] != "Sign up" || reqs[1].JSON["text"] != "Log in" {
		t.Fatalf("requests = %+v", reqs)
	}
	for _, r := range reqs {
		if r.JSON["include_tm_info"] != true || r.JSON["backtranslate"] != false || r.JSON["include_rationale"] != false {
			t.Errorf("batch flags not forced: %v", r.JSON)
		}
	}
}

func TestTranslateBatchAbortsOnFirstFailure(t *testing.T) {
	srv := apitest.NewServer(t)
	srv.Handle(http.MethodPost, "/text/culturalize", http.StatusPaymentRequired, map[string]any{"detail": "Out of credits"})
	c := newTestClient(t, srv, nil)

	results, err := c.TranslateBatch(context.Background(), []string{"Sign up", "Log in"}, "German")
	if !stderrors.Is(err, errors.ErrInsufficientCredits) {
		t.Fatalf("error = %v, want insufficient credits", err)
	}
	if results != nil {
		t.Errorf("partial results must not be returned: %v", results)
	}
	if n := len(srv.Requests()); n != 1 {
		t.Errorf("requests = %d, the batch should stop after the first failure", n)
	}
}

func TestTranslateBatchEmpty(t *testing.T) {
	srv := apitest.NewServer(t)
	c := newTestClient(t, srv, nil)

	results, err := c.TranslateBatch(context.Background(), nil, "German")
	if err != nil || len(results) != 0 {
		t.Errorf("empty batch = %v, %v", results, err)
	}
	if len(srv.Requests()) != 0 {
		t.Error("empty batch must not call the API")
	}
}

func TestEmptyUpdatesMakeNoRequest(t *testing.T) {
	srv := apitest.NewServer(t)
	spy := &apitest.CountingTransport{}
	c := newTestClient(t, srv, spy)
	ctx := context.Background()

	if _, err := c.UpdateTMEntry(ctx, "entry-1", TMEntryUpdate{}); !stderrors.Is(err, errors.ErrValidation) {
		t.Errorf("UpdateTMEntry error = %v, want validation", err)
	}
	if _, err := c.UpdateStyleGuide(ctx, "7", StyleGuideUpdate{}); !stderrors.Is(err, errors.ErrValidation) {
		t.Errorf("UpdateStyleGuide error = %v, want validation", err)
	}
	if spy.Calls() != 0 {
		t.Errorf("transport saw %d calls, want 0", spy.Calls())
	}
}

func TestMissingImageMakesNoRequest(t *testing.T) {
	srv := apitest.NewServer(t)
	spy := &apitest.CountingTransport{}
	c := newTestClient(t, srv, spy)
	ctx := context.Background()

	if _, err := c.ExtractText(ctx, nil); !stderrors.Is(err, errors.ErrValidation) {
		t.Errorf("ExtractText error = %v", err)
	}
	if _, err := c.InspectImage(ctx, nil); !stderrors.Is(err, errors.ErrValidation) {
		t.Errorf("InspectImage error = %v", err)
	}
	if _, err := c.CulturalizeImage(ctx, FileFromBytes([]byte("x")), ImageCulturalize{Text: "x", NumImages: 9}); !stderrors.Is(err, errors.ErrValidation) {
		t.Errorf("CulturalizeImage error = %v", err)
	}
	if spy.Calls() != 0 {
		t.Errorf("transport saw %d calls, want 0", spy.Calls())
	}
}

func TestTMEntryLifecycle(t *testing.T) {
	srv := apitest.NewServer(t)
	srv.Handle(http.MethodPost, "/master-tm/entries", http.StatusOK, map[string]any{
		"id": "3f2a9c1e-0000", "source_text": "Hi", "target_text": "Salut",
		"source_language_code": "en", "target_language_code": "fr", "information_source": "manual",
	})
	srv.Handle(http.MethodPatch, "/master-tm/entries/3f2a9c1e-0000", http.StatusOK, map[string]any{"success": true})
	srv.Handle(http.MethodDelete, "/master-tm/entries/3f2a9c1e-0000", http.StatusOK, map[string]any{"success": true})
	srv.Handle(http.MethodGet, "/master-tm/entries", http.StatusOK, map[string]any{
		"entries": []any{map[string]any{"id": "3f2a9c1e-0000"}},
	})
	c := newTestClient(t, srv, nil)
	ctx := context.Background()

	entry, err := c.AddTMEntry(ctx, TMEntryInput{SourceText: "Hi", TargetText: "Salut", SourceLanguageCode: "en", TargetLanguageCode: "fr", Name: "greeting"})
	if err != nil {
		t.Fatalf("AddTMEntry: %v", err)
	}
	if !entry.Enabled || entry.Priority != 50 {
		t.Errorf("defaults not applied: %+v", entry)
	}
	if body := srv.Last(t).JSON; body["information_source"] != "manual" || body["source_name"] != "greeting" {
		t.Errorf("add body = %v", body)
	}

	ok, err := c.UpdateTMEntry(ctx, entry.ID, TMEntryUpdate{Enabled: Bool(false)})
	if err != nil || !ok {
		t.Fatalf("UpdateTMEntry = %v, %v", ok, err)
	}
	if body := srv.Last(t).JSON; len(body) != 1 || body["enabled"] != false {
		t.Errorf("update body = %v", body)
	}

	list, err := c.ListTMEntries(ctx, TMListFilter{Offset: 20, Limit: 10, EnabledOnly: true})
	if err != nil {
		t.Fatalf("ListTMEntries: %v", err)
	}
	if list.Total != 1 || list.Offset != 20 || list.Limit != 10 {
		t.Errorf("request page should be echoed back: %+v", list)
	}
	if q := srv.Last(t).Query; q.Get("enabled_only") != "true" || q.Get("offset") != "20" {
		t.Errorf("list query = %v", q)
	}

	ok, err = c.DeleteTMEntry(ctx, entry.ID)
	if err != nil || !ok {
		t.Fatalf("DeleteTMEntry = %v, %v", ok, err)
	}
}

func TestDeleteUnknownEntry(t *testing.T) {
	srv := apitest.NewServer(t)
	c := newTestClient(t, srv, nil)

	_, err := c.DeleteTMEntry(context.Background(), "missing")
	var notFound *errors.NotFoundError
	if !stderrors.As(err, &notFound) {
		t.Fatalf("error = %v, want *NotFoundError", err)
	}
	if notFound.StatusCode != 404 {
		t.Errorf("StatusCode = %d", notFound.StatusCode)
	}
}

func TestSearchTM(t *testing.T) {
	srv := apitest.NewServer(t)
	srv.Handle(http.MethodGet, "/master-tm/fuzzy-search", http.StatusOK, map[string]any{
		"matches": []any{
			map[string]any{"tm_id": "a", "score": 97, "source_text": "hello", "target_text": "bonjour"},
			map[string]any{"tm_id": "b", "score": 81, "source_text": "hello there", "target_text": "salut"},
		},
	})
	c := newTestClient(t, srv, nil)

	search := NewTMSearch("hello")
	search.TargetLanguageCode = "fr"
	matches, err := c.SearchTM(context.Background(), search)
	if err != nil {
		t.Fatalf("SearchTM: %v", err)
	}
	if len(matches) != 2 || matches[0].TMID != "a" || matches[1].TMID != "b" {
		t.Errorf("matches = %+v", matches)
	}
	if q := srv.Last(t).Query; q.Get("source_lang") != "en" || q.Get("target_lang") != "fr" || q.Get("limit") != "10" {
		t.Errorf("query = %v", q)
	}
}

func TestLanguageSettings(t *testing.T) {
	srv := apitest.NewServer(t)
	srv.Handle(http.MethodPatch, "/user/languages/12/formality", http.StatusOK, map[string]any{"success": true})
	srv.Handle(http.MethodPatch, "/user/languages/12/custom-style", http.StatusOK, map[string]any{"success": true})
	c := newTestClient(t, srv, nil)
	ctx := context.Background()

	if ok, err := c.UpdateLanguageFormality(ctx, 12, "informal"); err != nil || !ok {
		t.Fatalf("UpdateLanguageFormality = %v, %v", ok, err)
	}
	if srv.Last(t).JSON["formality"] != "informal" {
		t.Errorf("body = %v", srv.Last(t).JSON)
	}

	if ok, err := c.UpdateLanguageCustomStyle(ctx, 12, nil); err != nil || !ok {
		t.Fatalf("UpdateLanguageCustomStyle = %v, %v", ok, err)
	}
	body := srv.Last(t).JSON
	if v, present := body["custom_style"]; !present || v != nil {
		t.Errorf("clearing the style must send null, body = %v", body)
	}
}

func TestStyleGuides(t *testing.T) {
	srv := apitest.NewServer(t)
	srv.Handle(http.MethodGet, "/style-guide", http.StatusOK, map[string]any{
		"guides": []any{map[string]any{"id": 7, "title": "Tone", "content": "Be brief"}},
	})
	srv.Handle(http.MethodPost, "/style-guide", http.StatusOK, map[string]any{"id": 8, "title": "New", "content": "c", "is_enabled": false})
	srv.Handle(http.MethodPut, "/style-guide/7", http.StatusOK, map[string]any{"id": 7, "title": "Voice", "content": "Be brief"})
	srv.Handle(http.MethodDelete, "/style-guide/7", http.StatusOK, map[string]any{"success": true})
	c := newTestClient(t, srv, nil)
	ctx := context.Background()

	guides, err := c.GetStyleGuides(ctx)
	if err != nil || len(guides) != 1 || guides[0].ID != "7" {
		t.Fatalf("GetStyleGuides = %+v, %v", guides, err)
	}

	created, err := c.CreateStyleGuide(ctx, "New", "c", false)
	if err != nil || created.ID != "8" || created.IsEnabled {
		t.Fatalf("CreateStyleGuide = %+v, %v", created, err)
	}
	if body := srv.Last(t).JSON; body["title"] != "New" || body["is_enabled"] != false {
		t.Errorf("create body = %v", body)
	}

	updated, err := c.UpdateStyleGuide(ctx, "7", StyleGuideUpdate{Title: String("Voice")})
	if err != nil || updated.Title != "Voice" {
		t.Fatalf("UpdateStyleGuide = %+v, %v", updated, err)
	}
	if body := srv.Last(t).JSON; len(body) != 1 || body["title"] != "Voice" {
		t.Errorf("update body = %v", body)
	}

	if ok, err := c.DeleteStyleGuide(ctx, "7"); err != nil || !ok {
		t.Errorf("DeleteStyleGuide = %v, %v", ok, err)
	}
}

func TestPromptsAndFeedback(t *testing.T) {
	srv := apitest.NewServer(t)
	srv.Handle(http.MethodGet, "/style-guide/prompt", http.StatusOK, map[string]any{"prompt": "Warm and direct", "exists": true})
	srv.Handle(http.MethodGet, "/style-guide/combined", http.StatusOK, map[string]any{"prompt": "all", "guides": 2})
	srv.Handle(http.MethodPost, "/text/feedback", http.StatusOK, map[string]any{"status": "ok"})
	c := newTestClient(t, srv, nil)
	ctx := context.Background()

	bv, err := c.GetBrandVoice(ctx)
	if err != nil || bv.EffectivePrompt() != "Warm and direct" {
		t.Fatalf("GetBrandVoice = %+v, %v", bv, err)
	}

	combined, err := c.GetCombinedPrompt(ctx)
	if err != nil || combined["prompt"] != "all" || combined["guides"] != int64(2) {
		t.Fatalf("GetCombinedPrompt = %v, %v", combined, err)
	}

	ack, err := c.SubmitFeedback(ctx, Feedback{Result: String("Registrieren"), Approved: Bool(true)})
	if err != nil || ack["status"] != "ok" {
		t.Fatalf("SubmitFeedback = %v, %v", ack, err)
	}
	if body := srv.Last(t).JSON; len(body) != 2 || body["approved"] != true {
		t.Errorf("feedback body = %v", body)
	}
}

func TestImageOperations(t *testing.T) {
	srv := apitest.NewServer(t)
	srv.Handle(http.MethodPost, "/text/extract", http.StatusOK, map[string]any{"extracted_text": "SALE 50%"})
	srv.Handle(http.MethodPost, "/image/inspect", http.StatusOK, map[string]any{
		"verdict":            "NOT SAFE",
		"affected_countries": []any{map[string]any{"country": "JP", "issue": "gesture", "suggestion": "remove it"}},
	})
	srv.Handle(http.MethodPost, "/image/culturalize", http.StatusOK, map[string]any{
		"images":   []any{map[string]any{"image_base64": "aGk="}},
		"metadata": map[string]any{"cost": 5, "num_images": 1},
	})
	c := newTestClient(t, srv, nil)
	ctx := context.Background()
	img := FileFromBytes([]byte("\x89PNG\r\n\x1a\n"))

	ocr, err := c.ExtractText(ctx, img)
	if err != nil || ocr.ExtractedText != "SALE 50%" {
		t.Fatalf("ExtractText = %+v, %v", ocr, err)
	}
	if r := srv.Last(t); r.FileName != "image.png" || r.FileContentType != "image/png" {
		t.Errorf("file part = %q %q", r.FileName, r.FileContentType)
	}

	inspection, err := c.InspectImage(ctx, img, "JP", "DE")
	if err != nil || inspection.IsSafe() || inspection.AffectedCountries[0].Country != "JP" {
		t.Fatalf("InspectImage = %+v, %v", inspection, err)
	}
	if form := srv.Last(t).Form; form["countries"] != "JP,DE" {
		t.Errorf("inspect form = %v", form)
	}

	result, err := c.CulturalizeImage(ctx, img, NewImageCulturalize("Hola", "es"))
	if err != nil || len(result.Images) != 1 || result.Metadata.Cost != 5 {
		t.Fatalf("CulturalizeImage = %+v, %v", result, err)
	}
	data, err := result.Images[0].Decode()
	if err != nil || string(data) != "hi" {
		t.Errorf("Decode = %q, %v", data, err)
	}
	form := srv.Last(t).Form
	if form["text"] != "Hola" || form["language_code"] != "es" || form["num_images"] != "1" || form["tool"] != "api" {
		t.Errorf("culturalize form = %v", form)
	}
}
