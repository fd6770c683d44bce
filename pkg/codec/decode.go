package codec

import (
	"github.com/usenativ/nativ-go/pkg/models"
)

// DecodeTranslation decodes a translate response.
// A tm_match is kept only when its score is strictly positive.
func DecodeTranslation(o Object) *models.Translation {
	meta := o.Obj("metadata")

	t := &models.Translation{
		TranslatedText: o.Str("translated_text", ""),
		Metadata: models.TranslationMetadata{
			WordCount: meta.Int("word_count", 0),
			Cost:      meta.Int("cost", 0),
		},
		Rationale:       o.OptStr("rationale"),
		Backtranslation: o.OptStr("backtranslation"),
	}

	if tm := o.Obj("tm_match"); tm != nil && tm.Float("score", 0) > 0 {
		t.TMMatch = decodeTMMatch(tm)
	}
	return t
}

func decodeTMMatch(o Object) *models.TMMatch {
	top := o.List("top_matches")
	details := make([]models.TMMatchDetail, 0, len(top))
	for _, m := range top {
		details = append(details, models.TMMatchDetail{
			TMID:              m.Str("tm_id", ""),
			Score:             m.Float("score", 0),
			MatchType:         m.Str("match_type", ""),
			SourceText:        m.Str("source_text", ""),
			TargetText:        m.Str("target_text", ""),
			InformationSource: m.Str("information_source", ""),
			SourceName:        m.Str("source_name", ""),
		})
	}

	return &models.TMMatch{
		Score:        o.Float("score", 0),
		MatchType:    o.Str("match_type", ""),
		SourceText:   o.OptStr("source_text"),
		TargetText:   o.OptStr("target_text"),
		TMSource:     o.OptStr("tm_source"),
		TMSourceName: o.OptStr("tm_source_name"),
		TMID:         o.OptStr("tm_id"),
		TopMatches:   details,
	}
}

// DecodeOCR decodes a text extraction response.
func DecodeOCR(o Object) *models.OCRResult {
	return &models.OCRResult{ExtractedText: o.Str("extracted_text", "")}
}

// DecodeImageResult decodes an image culturalization response.
func DecodeImageResult(o Object) *models.ImageResult {
	raw := o.List("images")
	images := make([]models.GeneratedImage, 0, len(raw))
	for _, img := range raw {
		images = append(images, models.GeneratedImage{ImageBase64: img.Str("image_base64", "")})
	}

	meta := o.Obj("metadata")
	return &models.ImageResult{
		Images: images,
		Metadata: models.ImageMetadata{
			Cost:      meta.Int("cost", 0),
			NumImages: meta.Int("num_images", 0),
		},
	}
}

// DecodeInspection decodes a cultural inspection response.
func DecodeInspection(o Object) *models.CulturalInspection {
	raw := o.List("affected_countries")
	affected := make([]models.AffectedCountry, 0, len(raw))
	for _, c := range raw {
		affected = append(affected, models.AffectedCountry{
			Country:    c.Str("country", ""),
			Issue:      c.Str("issue", ""),
			Suggestion: c.Str("suggestion", ""),
		})
	}

	return &models.CulturalInspection{
		Verdict:           o.Str("verdict", models.VerdictSafe),
		AffectedCountries: affected,
	}
}

// DecodeLanguages decodes the workspace language list.
func DecodeLanguages(o Object) []models.Language {
	raw := o.List("languages")
	langs := make([]models.Language, 0, len(raw))
	for _, l := range raw {
		langs = append(langs, models.Language{
			ID:           l.Int("id", 0),
			Language:     l.Str("language", ""),
			LanguageCode: l.Str("language_code", ""),
			Formality:    l.OptStr("formality"),
			CustomStyle:  l.OptStr("custom_style"),
		})
	}
	return langs
}

// DecodeTMEntry decodes one TM entry. Enabled defaults to true and
// Priority to models.DefaultPriority.
func DecodeTMEntry(o Object) *models.TMEntry {
	return &models.TMEntry{
		ID:                 o.Str("id", ""),
		UserID:             o.Int("user_id", 0),
		EndUserID:          o.OptStr("end_user_id"),
		SourceLanguageCode: o.Str("source_language_code", ""),
		SourceText:         o.Str("source_text", ""),
		TargetLanguageCode: o.Str("target_language_code", ""),
		TargetText:         o.Str("target_text", ""),
		InformationSource:  o.Str("information_source", ""),
		SourceName:         o.OptStr("source_name"),
		Enabled:            o.Bool("enabled", true),
		Priority:           o.Int("priority", models.DefaultPriority),
		CreatedAt:          o.OptStr("created_at"),
		UpdatedAt:          o.OptStr("updated_at"),
		MatchScore:         o.OptFloat("match_score"),
	}
}

// DecodeTMEntryList decodes one page of TM entries. offset and limit are
// the request values, echoed back when the server omits them.
func DecodeTMEntryList(o Object, offset, limit int) *models.TMEntryList {
	raw := o.List("entries")
	entries := make([]models.TMEntry, 0, len(raw))
	for _, e := range raw {
		entries = append(entries, *DecodeTMEntry(e))
	}

	return &models.TMEntryList{
		Entries: entries,
		Total:   o.Int("total", len(entries)),
		Offset:  o.Int("offset", offset),
		Limit:   o.Int("limit", limit),
	}
}

// DecodeTMSearch decodes fuzzy-search hits in server rank order.
func DecodeTMSearch(o Object) []models.TMSearchMatch {
	raw := o.List("matches")
	matches := make([]models.TMSearchMatch, 0, len(raw))
	for _, m := range raw {
		matches = append(matches, models.TMSearchMatch{
			TMID:              m.Str("tm_id", ""),
			Score:             m.Float("score", 0),
			MatchType:         m.Str("match_type", ""),
			SourceText:        m.Str("source_text", ""),
			TargetText:        m.Str("target_text", ""),
			InformationSource: m.Str("information_source", ""),
			SourceName:        m.OptStr("source_name"),
		})
	}
	return matches
}

// DecodeTMStats decodes translation-memory statistics.
func DecodeTMStats(o Object) *models.TMStats {
	bySource := map[string]map[string]int{}
	for name, v := range o.Obj("by_source") {
		counts, ok := v.(map[string]any)
		if !ok {
			continue
		}
		breakdown := make(map[string]int, len(counts))
		for k, c := range counts {
			if n, ok := toInt(c); ok {
				breakdown[k] = n
			}
		}
		bySource[name] = breakdown
	}

	return &models.TMStats{
		Total:    o.Int("total", 0),
		Enabled:  o.Int("enabled", 0),
		Disabled: o.Int("disabled", 0),
		BySource: bySource,
	}
}

// DecodeStyleGuide decodes one style guide. The id is always rendered as a
// string, whatever its wire type.
func DecodeStyleGuide(o Object) *models.StyleGuide {
	return &models.StyleGuide{
		ID:           o.Str("id", ""),
		Title:        o.Str("title", ""),
		Content:      o.Str("content", ""),
		IsEnabled:    o.Bool("is_enabled", true),
		DisplayOrder: o.Int("display_order", 0),
		UserID:       o.OptInt("user_id"),
	}
}

// DecodeStyleGuides decodes the style guide list.
func DecodeStyleGuides(o Object) []models.StyleGuide {
	raw := o.List("guides")
	guides := make([]models.StyleGuide, 0, len(raw))
	for _, g := range raw {
		guides = append(guides, *DecodeStyleGuide(g))
	}
	return guides
}

// DecodeBrandVoice decodes the brand voice prompt.
func DecodeBrandVoice(o Object) *models.BrandVoice {
	return &models.BrandVoice{
		Prompt: o.OptStr("prompt"),
		Exists: o.Bool("exists", false),
		Cached: o.Bool("cached", false),
	}
}

// DecodeSuccess reads the "success" acknowledgement of a mutation.
func DecodeSuccess(o Object) bool {
	return o.Bool("success", false)
}
