// Package providers defines the registry entities for embed providers.
package providers

import (
	"github.com/embedworks/embedvideo-go/internal/domain/entities/embeds"
)

// Provider kinds as persisted in the registry.
const (
	KindDirect = "direct"
	KindOEmbed = "oembed"
)

// Definition describes a single embed provider: how to turn a media URL into
// an embeddable service and which capabilities it carries.
type Definition struct {
	Name             string             `json:"name"`
	Kind             string             `json:"kind"`        // "direct" or "oembed"
	ContentType      string             `json:"contentType"` // "video" or "audio"
	EmbedTemplate    string             `json:"embedTemplate,omitempty"` // %ID% is replaced with the extracted media id
	URLPatterns      []string           `json:"urlPatterns,omitempty"`   // regexes whose first capture group is the media id
	Hosts            []string           `json:"hosts,omitempty"`         // hosts served by the provider, used for oEmbed endpoint matching
	DefaultWidth     int                `json:"defaultWidth"`
	DefaultHeight    int                `json:"defaultHeight"`
	PrivacyPolicyURL string             `json:"privacyPolicyUrl,omitempty"`
	OEmbedEndpoint   string             `json:"oembedEndpoint,omitempty"`
	Attributes       []embeds.Attribute `json:"attributes,omitempty"` // extra iframe attributes, insertion-ordered
	ThumbnailURL     string             `json:"thumbnailUrl,omitempty"` // relative URL of a locally stored thumbnail
}

// EmbedKind maps the persisted kind string onto the closed rendering variant.
// Unknown kinds fall back to direct rendering.
func (d *Definition) EmbedKind() embeds.Kind {
	if d.Kind == KindOEmbed {
		return embeds.KindOEmbed
	}
	return embeds.KindDirect
}
