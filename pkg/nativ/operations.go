package nativ

import (
	"net/http"

	"github.com/usenativ/nativ-go/pkg/api"
	"github.com/usenativ/nativ-go/pkg/codec"
	"github.com/usenativ/nativ-go/pkg/errors"
	"github.com/usenativ/nativ-go/pkg/models"
	"github.com/usenativ/nativ-go/pkg/transport"
)

// Request argument types, shared with the codec package.
type (
	TranslateOption  = codec.TranslateOption
	File             = codec.File
	ImageCulturalize = codec.ImageCulturalize
	TMSearch         = codec.TMSearch
	TMListFilter     = codec.TMListFilter
	TMEntryInput     = codec.TMEntryInput
	TMEntryUpdate    = codec.TMEntryUpdate
	StyleGuideUpdate = codec.StyleGuideUpdate
	Feedback         = codec.Feedback
)

// Translate options.
var (
	WithTargetLanguageCode = codec.WithTargetLanguageCode
	WithSourceLanguage     = codec.WithSourceLanguage
	WithContext            = codec.WithContext
	WithGlossary           = codec.WithGlossary
	WithFormality          = codec.WithFormality
	WithMaxCharacters      = codec.WithMaxCharacters
	WithTMInfo             = codec.WithTMInfo
	WithBacktranslation    = codec.WithBacktranslation
	WithRationale          = codec.WithRationale
)

// File constructors.
var (
	FileFromPath   = codec.FileFromPath
	FileFromBytes  = codec.FileFromBytes
	FileFromReader = codec.FileFromReader
)

// Request constructors with the wire defaults applied.
var (
	NewTMSearch         = codec.NewTMSearch
	NewImageCulturalize = codec.NewImageCulturalize
)

// String returns a pointer to s, for optional request fields.
func String(s string) *string { return &s }

// Bool returns a pointer to b, for optional request fields.
func Bool(b bool) *bool { return &b }

// op is one API call: the request to send and how to decode its response.
// A non-nil err is a pre-flight failure and the request is never sent.
// Both clients run the same ops.
type op[T any] struct {
	req    transport.Request
	decode func(codec.Object) T
	err    error
}

func failed[T any](err error) op[T] {
	return op[T]{err: err}
}

func translateOp(req codec.TranslateRequest) op[*models.Translation] {
	return op[*models.Translation]{
		req:    transport.Request{Method: http.MethodPost, Path: api.EndpointTranslate, JSON: req.Body()},
		decode: codec.DecodeTranslation,
	}
}

func extractTextOp(image *codec.File) op[*models.OCRResult] {
	if image == nil {
		return failed[*models.OCRResult](errors.NewValidation("an image file is required"))
	}
	return op[*models.OCRResult]{
		req:    transport.Request{Method: http.MethodPost, Path: api.EndpointExtract, File: image},
		decode: codec.DecodeOCR,
	}
}

func culturalizeImageOp(image *codec.File, params codec.ImageCulturalize) op[*models.ImageResult] {
	if image == nil {
		return failed[*models.ImageResult](errors.NewValidation("a reference image file is required"))
	}
	form, err := params.Form()
	if err != nil {
		return failed[*models.ImageResult](err)
	}
	return op[*models.ImageResult]{
		req:    transport.Request{Method: http.MethodPost, Path: api.EndpointImageCulturalize, File: image, Form: form},
		decode: codec.DecodeImageResult,
	}
}

func inspectImageOp(image *codec.File, countries []string) op[*models.CulturalInspection] {
	if image == nil {
		return failed[*models.CulturalInspection](errors.NewValidation("an image file is required"))
	}
	return op[*models.CulturalInspection]{
		req:    transport.Request{Method: http.MethodPost, Path: api.EndpointImageInspect, File: image, Form: codec.InspectForm(countries)},
		decode: codec.DecodeInspection,
	}
}

func getLanguagesOp() op[[]models.Language] {
	return op[[]models.Language]{
		req:    transport.Request{Method: http.MethodGet, Path: api.EndpointLanguages},
		decode: codec.DecodeLanguages,
	}
}

func updateFormalityOp(id int, formality string) op[bool] {
	return op[bool]{
		req:    transport.Request{Method: http.MethodPatch, Path: api.LanguageFormalityPath(id), JSON: codec.FormalityBody(formality)},
		decode: codec.DecodeSuccess,
	}
}

func updateCustomStyleOp(id int, customStyle *string) op[bool] {
	return op[bool]{
		req:    transport.Request{Method: http.MethodPatch, Path: api.LanguageCustomStylePath(id), JSON: codec.CustomStyleBody(customStyle)},
		decode: codec.DecodeSuccess,
	}
}

func searchTMOp(search codec.TMSearch) op[[]models.TMSearchMatch] {
	return op[[]models.TMSearchMatch]{
		req:    transport.Request{Method: http.MethodGet, Path: api.EndpointTMFuzzySearch, Query: search.Values()},
		decode: codec.DecodeTMSearch,
	}
}

func listTMEntriesOp(filter codec.TMListFilter) op[*models.TMEntryList] {
	offset, limit := filter.Page()
	return op[*models.TMEntryList]{
		req: transport.Request{Method: http.MethodGet, Path: api.EndpointTMEntries, Query: filter.Values()},
		decode: func(o codec.Object) *models.TMEntryList {
			return codec.DecodeTMEntryList(o, offset, limit)
		},
	}
}

func addTMEntryOp(in codec.TMEntryInput) op[*models.TMEntry] {
	return op[*models.TMEntry]{
		req:    transport.Request{Method: http.MethodPost, Path: api.EndpointTMEntries, JSON: in.Body()},
		decode: codec.DecodeTMEntry,
	}
}

func updateTMEntryOp(id string, update codec.TMEntryUpdate) op[bool] {
	body, err := update.Body()
	if err != nil {
		return failed[bool](err)
	}
	return op[bool]{
		req:    transport.Request{Method: http.MethodPatch, Path: api.TMEntryPath(id), JSON: body},
		decode: codec.DecodeSuccess,
	}
}

func deleteTMEntryOp(id string) op[bool] {
	return op[bool]{
		req:    transport.Request{Method: http.MethodDelete, Path: api.TMEntryPath(id)},
		decode: codec.DecodeSuccess,
	}
}

func getTMStatsOp() op[*models.TMStats] {
	return op[*models.TMStats]{
		req:    transport.Request{Method: http.MethodGet, Path: api.EndpointTMStats},
		decode: codec.DecodeTMStats,
	}
}

func getStyleGuidesOp() op[[]models.StyleGuide] {
	return op[[]models.StyleGuide]{
		req:    transport.Request{Method: http.MethodGet, Path: api.EndpointStyleGuides},
		decode: codec.DecodeStyleGuides,
	}
}

func createStyleGuideOp(title, content string, isEnabled bool) op[*models.StyleGuide] {
	return op[*models.StyleGuide]{
		req:    transport.Request{Method: http.MethodPost, Path: api.EndpointStyleGuides, JSON: codec.CreateStyleGuideBody(title, content, isEnabled)},
		decode: codec.DecodeStyleGuide,
	}
}

func updateStyleGuideOp(id string, update codec.StyleGuideUpdate) op[*models.StyleGuide] {
	body, err := update.Body()
	if err != nil {
		return failed[*models.StyleGuide](err)
	}
	return op[*models.StyleGuide]{
		req:    transport.Request{Method: http.MethodPut, Path: api.StyleGuidePath(id), JSON: body},
		decode: codec.DecodeStyleGuide,
	}
}

func deleteStyleGuideOp(id string) op[bool] {
	return op[bool]{
		req:    transport.Request{Method: http.MethodDelete, Path: api.StyleGuidePath(id)},
		decode: codec.DecodeSuccess,
	}
}

func getBrandVoiceOp() op[*models.BrandVoice] {
	return op[*models.BrandVoice]{
		req:    transport.Request{Method: http.MethodGet, Path: api.EndpointBrandVoice},
		decode: codec.DecodeBrandVoice,
	}
}

func getCombinedPromptOp() op[models.CombinedPrompt] {
	return op[models.CombinedPrompt]{
		req: transport.Request{Method: http.MethodGet, Path: api.EndpointCombinedPrompt},
		decode: func(o codec.Object) models.CombinedPrompt {
			return models.CombinedPrompt(o.Raw())
		},
	}
}

func submitFeedbackOp(f codec.Feedback) op[models.FeedbackResult] {
	return op[models.FeedbackResult]{
		req: transport.Request{Method: http.MethodPost, Path: api.EndpointFeedback, JSON: f.Body()},
		decode: func(o codec.Object) models.FeedbackResult {
			return models.FeedbackResult(o.Raw())
		},
	}
}
