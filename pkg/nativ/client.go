// Package nativ is the Go client for the Nativ localization API.
//
// Two clients expose the same operations. Client blocks the calling
// goroutine for the duration of each request. AsyncClient returns a Future
// immediately and lets many requests share one connection pool.
//
//	client, err := nativ.New(nativ.Options{})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	t, err := client.Translate(ctx, "Hello world", "French")
//
// Every API failure is one of the kinds in package errors. Network
// failures and timeouts are *transport.Error.
package nativ

import (
	"context"

	"github.com/usenativ/nativ-go/pkg/api"
	"github.com/usenativ/nativ-go/pkg/codec"
	"github.com/usenativ/nativ-go/pkg/models"
	"github.com/usenativ/nativ-go/pkg/transport"
)

// Version is the client library version.
const Version = api.Version

// Client is the blocking Nativ client. It is safe for concurrent use.
type Client struct {
	t *transport.Transport
}

// New creates a Client. It fails with an AuthenticationError when no API
// key is configured.
func New(opts Options) (*Client, error) {
	cfg, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	return &Client{t: transport.New(cfg)}, nil
}

// BaseURL returns the resolved API root.
func (c *Client) BaseURL() string {
	return c.t.BaseURL()
}

// Close releases the client's connection pool.
func (c *Client) Close() error {
	return c.t.Close()
}

func run[T any](ctx context.Context, t *transport.Transport, o op[T]) (T, error) {
	var zero T
	if o.err != nil {
		return zero, o.err
	}
	obj, err := t.Do(ctx, o.req)
	if err != nil {
		return zero, err
	}
	return o.decode(obj), nil
}

// Translate translates text into targetLanguage (a display name such as
// "French") with cultural adaptation. The workspace translation memory,
// brand voice and style guides apply automatically.
func (c *Client) Translate(ctx context.Context, text, targetLanguage string, opts ...TranslateOption) (*models.Translation, error) {
	return run(ctx, c.t, translateOp(codec.NewTranslateRequest(text, targetLanguage, opts...)))
}

// TranslateBatch translates texts one at a time, in order. Results match
// the input order. The first failure aborts the remaining calls and is
// returned without partial results.
func (c *Client) TranslateBatch(ctx context.Context, texts []string, targetLanguage string, opts ...TranslateOption) ([]*models.Translation, error) {
	results := make([]*models.Translation, 0, len(texts))
	for _, text := range texts {
		t, err := run(ctx, c.t, translateOp(codec.BatchRequest(text, targetLanguage, opts...)))
		if err != nil {
			return nil, err
		}
		results = append(results, t)
	}
	return results, nil
}

// ExtractText runs OCR on a JPEG, PNG or WebP image.
func (c *Client) ExtractText(ctx context.Context, image *File) (*models.OCRResult, error) {
	return run(ctx, c.t, extractTextOp(image))
}

// CulturalizeImage generates styled text images from a reference image.
func (c *Client) CulturalizeImage(ctx context.Context, image *File, params ImageCulturalize) (*models.ImageResult, error) {
	return run(ctx, c.t, culturalizeImageOp(image, params))
}

// InspectImage checks an image for cultural sensitivity issues. With no
// countries the server checks its default set.
func (c *Client) InspectImage(ctx context.Context, image *File, countries ...string) (*models.CulturalInspection, error) {
	return run(ctx, c.t, inspectImageOp(image, countries))
}

// GetLanguages lists the languages configured in the workspace.
func (c *Client) GetLanguages(ctx context.Context) ([]models.Language, error) {
	return run(ctx, c.t, getLanguagesOp())
}

// UpdateLanguageFormality sets the formality of a workspace language.
func (c *Client) UpdateLanguageFormality(ctx context.Context, languageID int, formality string) (bool, error) {
	return run(ctx, c.t, updateFormalityOp(languageID, formality))
}

// UpdateLanguageCustomStyle sets the custom style of a workspace language.
// A nil style clears it.
func (c *Client) UpdateLanguageCustomStyle(ctx context.Context, languageID int, customStyle *string) (bool, error) {
	return run(ctx, c.t, updateCustomStyleOp(languageID, customStyle))
}

// SearchTM fuzzy-searches the translation memory.
func (c *Client) SearchTM(ctx context.Context, search TMSearch) ([]models.TMSearchMatch, error) {
	return run(ctx, c.t, searchTMOp(search))
}

// ListTMEntries returns one page of translation-memory entries.
func (c *Client) ListTMEntries(ctx context.Context, filter TMListFilter) (*models.TMEntryList, error) {
	return run(ctx, c.t, listTMEntriesOp(filter))
}

// AddTMEntry stores a manual translation-memory entry.
func (c *Client) AddTMEntry(ctx context.Context, entry TMEntryInput) (*models.TMEntry, error) {
	return run(ctx, c.t, addTMEntryOp(entry))
}

// UpdateTMEntry changes the target text or enabled flag of an entry. An
// update with no fields fails with a ValidationError without a request.
func (c *Client) UpdateTMEntry(ctx context.Context, entryID string, update TMEntryUpdate) (bool, error) {
	return run(ctx, c.t, updateTMEntryOp(entryID, update))
}

// DeleteTMEntry deletes a translation-memory entry.
func (c *Client) DeleteTMEntry(ctx context.Context, entryID string) (bool, error) {
	return run(ctx, c.t, deleteTMEntryOp(entryID))
}

// GetTMStats returns translation-memory counters.
func (c *Client) GetTMStats(ctx context.Context) (*models.TMStats, error) {
	return run(ctx, c.t, getTMStatsOp())
}

// GetStyleGuides lists the workspace style guides.
func (c *Client) GetStyleGuides(ctx context.Context) ([]models.StyleGuide, error) {
	return run(ctx, c.t, getStyleGuidesOp())
}

// CreateStyleGuide creates a style guide.
func (c *Client) CreateStyleGuide(ctx context.Context, title, content string, isEnabled bool) (*models.StyleGuide, error) {
	return run(ctx, c.t, createStyleGuideOp(title, content, isEnabled))
}

// UpdateStyleGuide changes a style guide. An update with no fields fails
// with a ValidationError without a request.
func (c *Client) UpdateStyleGuide(ctx context.Context, guideID string, update StyleGuideUpdate) (*models.StyleGuide, error) {
	return run(ctx, c.t, updateStyleGuideOp(guideID, update))
}

// DeleteStyleGuide deletes a style guide.
func (c *Client) DeleteStyleGuide(ctx context.Context, guideID string) (bool, error) {
	return run(ctx, c.t, deleteStyleGuideOp(guideID))
}

// GetBrandVoice returns the workspace brand voice prompt.
func (c *Client) GetBrandVoice(ctx context.Context) (*models.BrandVoice, error) {
	return run(ctx, c.t, getBrandVoiceOp())
}

// GetCombinedPrompt returns the brand voice merged with enabled style guides.
func (c *Client) GetCombinedPrompt(ctx context.Context) (models.CombinedPrompt, error) {
	return run(ctx, c.t, getCombinedPromptOp())
}

// SubmitFeedback sends feedback about a translation.
func (c *Client) SubmitFeedback(ctx context.Context, feedback Feedback) (models.FeedbackResult, error) {
	return run(ctx, c.t, submitFeedbackOp(feedback))
}
