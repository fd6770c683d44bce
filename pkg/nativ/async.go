package nativ

import (
	"context"
	"sync"

	"github.com/usenativ/nativ-go/pkg/codec"
	"github.com/usenativ/nativ-go/pkg/models"
	"github.com/usenativ/nativ-go/pkg/transport"
)

// Future is the pending result of an AsyncClient call.
type Future[T any] struct {
	done   <-chan struct{}
	result func() (T, error)
}

// Done is closed once the result is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await suspends the calling goroutine until the result is available or
// ctx is done.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.result()
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func resolved[T any](v T, err error) *Future[T] {
	done := make(chan struct{})
	close(done)
	return &Future[T]{done: done, result: func() (T, error) { return v, err }}
}

// spawn starts o on a and decodes the response once, on first Await.
func spawn[T any](ctx context.Context, a *transport.Async, o op[T]) *Future[T] {
	if o.err != nil {
		var zero T
		return resolved(zero, o.err)
	}

	call := a.Go(ctx, o.req)
	return &Future[T]{
		done: call.Done(),
		result: sync.OnceValues(func() (T, error) {
			var zero T
			obj, err := call.Result()
			if err != nil {
				return zero, err
			}
			return o.decode(obj), nil
		}),
	}
}

// AsyncClient is the non-blocking Nativ client. Each method starts its
// request and returns at once; many requests may be in flight on one client.
type AsyncClient struct {
	a *transport.Async
}

// NewAsync creates an AsyncClient. It fails with an AuthenticationError
// when no API key is configured.
func NewAsync(opts Options) (*AsyncClient, error) {
	cfg, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	return &AsyncClient{a: transport.NewAsync(cfg)}, nil
}

// BaseURL returns the resolved API root.
func (c *AsyncClient) BaseURL() string {
	return c.a.BaseURL()
}

// Close releases the client's connection pool.
func (c *AsyncClient) Close() error {
	return c.a.Close()
}

// Translate starts a translation. See Client.Translate.
func (c *AsyncClient) Translate(ctx context.Context, text, targetLanguage string, opts ...TranslateOption) *Future[*models.Translation] {
	return spawn(ctx, c.a, translateOp(codec.NewTranslateRequest(text, targetLanguage, opts...)))
}

// TranslateBatch translates texts one at a time, each request issued only
// after the previous one completed. The first failure aborts the batch.
func (c *AsyncClient) TranslateBatch(ctx context.Context, texts []string, targetLanguage string, opts ...TranslateOption) *Future[[]*models.Translation] {
	done := make(chan struct{})
	var (
		results []*models.Translation
		err     error
	)

	go func() {
		defer close(done)
		out := make([]*models.Translation, 0, len(texts))
		for _, text := range texts {
			t, e := spawn(ctx, c.a, translateOp(codec.BatchRequest(text, targetLanguage, opts...))).Await(ctx)
			if e != nil {
				err = e
				return
			}
			out = append(out, t)
		}
		results = out
	}()

	return &Future[[]*models.Translation]{
		done:   done,
		result: func() ([]*models.Translation, error) { return results, err },
	}
}

// ExtractText starts an OCR call. See Client.ExtractText.
func (c *AsyncClient) ExtractText(ctx context.Context, image *File) *Future[*models.OCRResult] {
	return spawn(ctx, c.a, extractTextOp(image))
}

// CulturalizeImage starts an image generation call.
func (c *AsyncClient) CulturalizeImage(ctx context.Context, image *File, params ImageCulturalize) *Future[*models.ImageResult] {
	return spawn(ctx, c.a, culturalizeImageOp(image, params))
}

// InspectImage starts a cultural inspection.
func (c *AsyncClient) InspectImage(ctx context.Context, image *File, countries ...string) *Future[*models.CulturalInspection] {
	return spawn(ctx, c.a, inspectImageOp(image, countries))
}

// GetLanguages lists the workspace languages.
func (c *AsyncClient) GetLanguages(ctx context.Context) *Future[[]models.Language] {
	return spawn(ctx, c.a, getLanguagesOp())
}

// UpdateLanguageFormality sets the formality of a workspace language.
func (c *AsyncClient) UpdateLanguageFormality(ctx context.Context, languageID int, formality string) *Future[bool] {
	return spawn(ctx, c.a, updateFormalityOp(languageID, formality))
}

// UpdateLanguageCustomStyle sets or clears the custom style of a language.
func (c *AsyncClient) UpdateLanguageCustomStyle(ctx context.Context, languageID int, customStyle *string) *Future[bool] {
	return spawn(ctx, c.a, updateCustomStyleOp(languageID, customStyle))
}

// SearchTM fuzzy-searches the translation memory.
func (c *AsyncClient) SearchTM(ctx context.Context, search TMSearch) *Future[[]models.TMSearchMatch] {
	return spawn(ctx, c.a, searchTMOp(search))
}

// ListTMEntries returns one page of translation-memory entries.
func (c *AsyncClient) ListTMEntries(ctx context.Context, filter TMListFilter) *Future[*models.TMEntryList] {
	return spawn(ctx, c.a, listTMEntriesOp(filter))
}

// AddTMEntry stores a manual translation-memory entry.
func (c *AsyncClient) AddTMEntry(ctx context.Context, entry TMEntryInput) *Future[*models.TMEntry] {
	return spawn(ctx, c.a, addTMEntryOp(entry))
}

// UpdateTMEntry changes a translation-memory entry. An empty update
// resolves at once with a ValidationError.
func (c *AsyncClient) UpdateTMEntry(ctx context.Context, entryID string, update TMEntryUpdate) *Future[bool] {
	return spawn(ctx, c.a, updateTMEntryOp(entryID, update))
}

// DeleteTMEntry deletes a translation-memory entry.
func (c *AsyncClient) DeleteTMEntry(ctx context.Context, entryID string) *Future[bool] {
	return spawn(ctx, c.a, deleteTMEntryOp(entryID))
}

// GetTMStats returns translation-memory counters.
func (c *AsyncClient) GetTMStats(ctx context.Context) *Future[*models.TMStats] {
	return spawn(ctx, c.a, getTMStatsOp())
}

// GetStyleGuides lists the workspace style guides.
func (c *AsyncClient) GetStyleGuides(ctx context.Context) *Future[[]models.StyleGuide] {
	return spawn(ctx, c.a, getStyleGuidesOp())
}

// CreateStyleGuide creates a style guide.
func (c *AsyncClient) CreateStyleGuide(ctx context.Context, title, content string, isEnabled bool) *Future[*models.StyleGuide] {
	return spawn(ctx, c.a, createStyleGuideOp(title, content, isEnabled))
}

// UpdateStyleGuide changes a style guide. An empty update resolves at
// once with a ValidationError.
func (c *AsyncClient) UpdateStyleGuide(ctx context.Context, guideID string, update StyleGuideUpdate) *Future[*models.StyleGuide] {
	return spawn(ctx, c.a, updateStyleGuideOp(guideID, update))
}

// DeleteStyleGuide deletes a style guide.
func (c *AsyncClient) DeleteStyleGuide(ctx context.Context, guideID string) *Future[bool] {
	return spawn(ctx, c.a, deleteStyleGuideOp(guideID))
}

// GetBrandVoice returns the workspace brand voice prompt.
func (c *AsyncClient) GetBrandVoice(ctx context.Context) *Future[*models.BrandVoice] {
	return spawn(ctx, c.a, getBrandVoiceOp())
}

// GetCombinedPrompt returns the brand voice merged with enabled style guides.
func (c *AsyncClient) GetCombinedPrompt(ctx context.Context) *Future[models.CombinedPrompt] {
	return spawn(ctx, c.a, getCombinedPromptOp())
}

// SubmitFeedback sends feedback about a translation.
func (c *AsyncClient) SubmitFeedback(ctx context.Context, feedback Feedback) *Future[models.FeedbackResult] {
	return spawn(ctx, c.a, submitFeedbackOp(feedback))
}
