package embeds

// DefaultClass is the container class applied when the caller supplies none.
const DefaultClass = "embedvideo"

// RenderOptions carries the per-call rendering configuration. All fields are
// scalars; zero values fall back to the defaults via WithDefaults.
type RenderOptions struct {
	Class       string `json:"class,omitempty"`
	Style       string `json:"style,omitempty"`
	Service     string `json:"service,omitempty"`
	WithConsent bool   `json:"withConsent,omitempty"`
	Autoresize  bool   `json:"autoresize,omitempty"`
	Description string `json:"description,omitempty"`
}

// DefaultRenderOptions returns the baseline configuration.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{Class: DefaultClass}
}

// WithDefaults merges the options over the defaults; caller values win per key.
func (o RenderOptions) WithDefaults() RenderOptions {
	merged := DefaultRenderOptions()
	if o.Class != "" {
		merged.Class = o.Class
	}
	merged.Style = o.Style
	merged.Service = o.Service
	merged.WithConsent = o.WithConsent
	merged.Autoresize = o.Autoresize
	merged.Description = o.Description
	return merged
}
