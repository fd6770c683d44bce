// Package api defines the Nativ API wire surface: paths, headers and defaults.
package api

import (
	"fmt"
	"net/url"
)

// Version is the client version embedded in the User-Agent header.
const Version = "0.1.0"

// ClientName is the client identifier embedded in the User-Agent header.
const ClientName = "nativ-go"

// DefaultBaseURL is used when neither an option nor NATIV_API_URL is set.
const DefaultBaseURL = "https://api.usenativ.com"

// Environment variables read at client construction.
const (
	EnvAPIKey = "NATIV_API_KEY"
	EnvAPIURL = "NATIV_API_URL"
)

// Tool is the literal tag identifying the calling tool in request bodies.
const Tool = "api"

// API endpoints
const (
	EndpointTranslate        = "/text/culturalize"
	EndpointExtract          = "/text/extract"
	EndpointFeedback         = "/text/feedback"
	EndpointImageCulturalize = "/image/culturalize"
	EndpointImageInspect     = "/image/inspect"
	EndpointLanguages        = "/user/languages"
	EndpointTMFuzzySearch    = "/master-tm/fuzzy-search"
	EndpointTMEntries        = "/master-tm/entries"
	EndpointTMStats          = "/master-tm/stats"
	EndpointStyleGuides      = "/style-guide"
	EndpointBrandVoice       = "/style-guide/prompt"
	EndpointCombinedPrompt   = "/style-guide/combined"
)

// HTTP headers
const (
	HeaderAPIKey      = "X-API-Key"
	HeaderUserAgent   = "User-Agent"
	HeaderContentType = "Content-Type"
)

// Content types
const (
	ContentTypeJSON        = "application/json"
	ContentTypeOctetStream = "application/octet-stream"
)

// UserAgent returns the User-Agent header value.
func UserAgent() string {
	return ClientName + "/" + Version
}

// LanguageFormalityPath is PATCH /user/languages/{id}/formality.
func LanguageFormalityPath(id int) string {
	return fmt.Sprintf("%s/%d/formality", EndpointLanguages, id)
}

// LanguageCustomStylePath is PATCH /user/languages/{id}/custom-style.
func LanguageCustomStylePath(id int) string {
	return fmt.Sprintf("%s/%d/custom-style", EndpointLanguages, id)
}

// TMEntryPath is /master-tm/entries/{id}.
func TMEntryPath(id string) string {
	return EndpointTMEntries + "/" + url.PathEscape(id)
}

// StyleGuidePath is /style-guide/{id}.
func StyleGuidePath(id string) string {
	return EndpointStyleGuides + "/" + url.PathEscape(id)
}
