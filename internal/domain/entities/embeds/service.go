// Package embeds defines the domain entities for embeddable media services.
package embeds

// Kind distinguishes how a service's markup is produced. The set is closed:
// every call site branches on exactly these two variants.
type Kind int

const (
	// KindDirect services render their own iframe from a resolved embed URL.
	KindDirect Kind = iota
	// KindOEmbed services are resolved through an oEmbed endpoint and emit
	// the provider-supplied markup verbatim.
	KindOEmbed
)

// Thumbnail references a locally stored preview image by its relative URL.
// The relative URL is expanded to an absolute one at render time.
type Thumbnail struct {
	RelativeURL string `json:"relativeUrl"`
}

// Service is a fully resolved embeddable media resource. It is immutable for
// the duration of a render call; ownership stays with the caller.
type Service struct {
	Kind             Kind
	Key              string // stable identifier, also used for localization lookups
	URL              string
	Width            int
	Height           int
	DefaultWidth     int
	DefaultHeight    int
	Title            string
	Thumbnail        *Thumbnail
	PrivacyPolicyURL string
	ContentType      string // "video" or "audio"
	Attributes       *Attributes
}

// ResolvedWidth returns the explicit width, falling back to the default.
func (s *Service) ResolvedWidth() int {
	if s.Width > 0 {
		return s.Width
	}
	return s.DefaultWidth
}

// ResolvedHeight returns the explicit height, falling back to the default.
func (s *Service) ResolvedHeight() int {
	if s.Height > 0 {
		return s.Height
	}
	return s.DefaultHeight
}
