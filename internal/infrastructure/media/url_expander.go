package media

import (
	"fmt"
	"net/url"
	"strings"
)

// URLExpander turns the relative URLs stored for local thumbnails into
// absolute URLs against the configured media base.
type URLExpander struct {
	base *url.URL
}

// NewURLExpander parses the media base URL once at construction.
func NewURLExpander(baseURL string) (*URLExpander, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid media base URL %q: %w", baseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("media base URL %q must be absolute", baseURL)
	}
	return &URLExpander{base: base}, nil
}

// Expand resolves a relative URL against the media base.
func (e *URLExpander) Expand(relativeURL string) (string, error) {
	if strings.TrimSpace(relativeURL) == "" {
		return "", fmt.Errorf("empty relative URL")
	}
	rel, err := url.Parse(relativeURL)
	if err != nil {
		return "", fmt.Errorf("invalid relative URL %q: %w", relativeURL, err)
	}
	return e.base.ResolveReference(rel).String(), nil
}
