// Package templates assembles the server-rendered embed markup: the outer
// container, the optional consent overlay and the frame element itself.
package templates

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/embedworks/embedvideo-go/internal/domain/entities/embeds"
)

// Consent policy keys looked up through ConfigSource. The values mirror the
// keys config.Source answers for.
const (
	keyRequireConsent    = "requireConsent"
	keyShowPrivacyNotice = "showPrivacyNotice"
)

// ConfigSource answers boolean policy lookups. A failed lookup is treated as
// false everywhere in this package.
type ConfigSource interface {
	GetBool(key string) (bool, error)
}

// Resolver turns a media URL into provider-supplied embed markup.
type Resolver interface {
	Resolve(mediaURL string) (string, error)
}

// URLExpander resolves relative thumbnail URLs into absolute ones.
type URLExpander interface {
	Expand(relativeURL string) (string, error)
}

// Messages resolves localized text by message id with positional parameters.
type Messages interface {
	Text(id string, params ...string) string
}

// Formatter renders the complete embed markup for a service. It is stateless
// and safe for concurrent use.
type Formatter struct {
	config   ConfigSource
	resolver Resolver
	consent  *ConsentPresenter
}

// NewFormatter creates a formatter with its collaborators.
func NewFormatter(config ConfigSource, resolver Resolver, consent *ConsentPresenter) *Formatter {
	return &Formatter{
		config:   config,
		resolver: resolver,
		consent:  consent,
	}
}

// Render returns the full outer markup for a service. It never fails; every
// error path degrades to omitting the affected fragment.
func (f *Formatter) Render(svc *embeds.Service, opts embeds.RenderOptions) string {
	// oEmbed output is emitted verbatim with no wrapper, caption or consent
	// container around it.
	if svc.Kind == embeds.KindOEmbed {
		return f.MakeFrame(svc)
	}

	merged := opts.WithDefaults()
	width := svc.ResolvedWidth()
	height := svc.ResolvedHeight()

	class := merged.Class
	containerStyle := merged.Style
	wrapperStyle := ""
	if merged.Autoresize {
		class += " autoresize"
	} else {
		containerStyle += fmt.Sprintf("width: %dpx;", width)
		wrapperStyle = fmt.Sprintf("height: %dpx;", height)
	}

	caption := ""
	if merged.Description != "" {
		caption = fmt.Sprintf("<figcaption>%s</figcaption>", merged.Description)
	}

	consentHTML := ""
	if merged.WithConsent {
		consentHTML = f.consent.Render(svc)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<figure class="%s" data-service="%s"%s%s>`,
		class, svc.Key, f.makeIframeConfigAttr(svc, width, height), styleAttr(containerStyle)))
	sb.WriteString(fmt.Sprintf(`<div class="embedvideo-wrapper"%s>`, styleAttr(wrapperStyle)))
	sb.WriteString(consentHTML)
	sb.WriteString(f.MakeFrame(svc))
	sb.WriteString(caption)
	sb.WriteString("</div>")
	sb.WriteString("</figure>")
	return sb.String()
}

// MakeFrame returns the frame element for a service, or an empty string when
// consent gating withholds it. oEmbed resolution failures become the visible
// output in place of the frame.
func (f *Formatter) MakeFrame(svc *embeds.Service) string {
	if svc.Kind == embeds.KindOEmbed {
		html, err := f.resolver.Resolve(svc.URL)
		if err != nil {
			return err.Error()
		}
		return html
	}

	attrs := svc.Attributes.Clone()
	attrs.Set("width", strconv.Itoa(svc.ResolvedWidth()))
	attrs.Set("height", strconv.Itoa(svc.ResolvedHeight()))

	if f.consentRequired() {
		// The live frame is built client-side from data-iframeconfig once
		// consent is granted.
		return ""
	}

	attrs.Set("src", svc.URL)
	return fmt.Sprintf("<iframe %s></iframe>", SerializeAttributes(attrs))
}

// makeIframeConfigAttr emits the data-iframeconfig fragment used for deferred
// client-side frame construction. Width and height are carried only when they
// differ from the service defaults; src is always present.
func (f *Formatter) makeIframeConfigAttr(svc *embeds.Service, width, height int) string {
	if !f.consentRequired() {
		return ""
	}

	cfg := struct {
		Width  int    `json:"width,omitempty"`
		Height int    `json:"height,omitempty"`
		Src    string `json:"src"`
	}{Src: svc.URL}
	if width != svc.DefaultWidth {
		cfg.Width = width
	}
	if height != svc.DefaultHeight {
		cfg.Height = height
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(cfg); err != nil {
		return ""
	}

	payload := strings.TrimRight(buf.String(), "\n")
	payload = strings.ReplaceAll(payload, "'", "&#39;")
	return fmt.Sprintf(" data-iframeconfig='%s'", payload)
}

func (f *Formatter) consentRequired() bool {
	required, err := f.config.GetBool(keyRequireConsent)
	if err != nil {
		return false
	}
	return required
}

// styleAttr wraps a non-empty inline style string as a style attribute
// fragment with a leading space.
func styleAttr(style string) string {
	if style == "" {
		return ""
	}
	return fmt.Sprintf(` style="%s"`, style)
}
