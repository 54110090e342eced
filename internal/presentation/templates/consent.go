package templates

import (
	"fmt"
	"html"
	"strings"

	"github.com/embedworks/embedvideo-go/internal/domain/entities/embeds"
)

// ConsentPresenter builds the click-to-load overlay shown in place of a live
// frame while consent is pending.
type ConsentPresenter struct {
	config   ConfigSource
	expander URLExpander
	messages Messages
}

// NewConsentPresenter creates a consent presenter with its collaborators.
func NewConsentPresenter(config ConfigSource, expander URLExpander, messages Messages) *ConsentPresenter {
	return &ConsentPresenter{
		config:   config,
		expander: expander,
		messages: messages,
	}
}

// Render returns the full consent overlay for a service.
func (p *ConsentPresenter) Render(svc *embeds.Service) string {
	showNotice, err := p.config.GetBool(keyShowPrivacyNotice)
	if err != nil {
		showNotice = false
	}

	serviceName := p.messages.Text("embedvideo-service-" + svc.Key)
	loadPrompt := p.messages.Text("embedvideo-consent-load", svc.ContentType)
	noticeText := p.messages.Text("embedvideo-consent-privacy-notice", serviceName)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<div class="embedvideo-consent" data-show-privacy-notice="%t">`, showNotice))
	sb.WriteString(p.makeThumbHTML(svc))
	sb.WriteString(`<div class="embedvideo-consent__overlay">`)

	sb.WriteString(`<div class="embedvideo-loader">`)
	sb.WriteString(p.makeTitleHTML(svc))
	sb.WriteString(fmt.Sprintf(`<div class="embedvideo-loader__action">%s</div>`, loadPrompt))
	sb.WriteString(fmt.Sprintf(`<div class="embedvideo-loader__service">%s</div>`, serviceName))
	sb.WriteString(`</div>`)

	sb.WriteString(`<div class="embedvideo-privacy-notice">`)
	sb.WriteString(fmt.Sprintf(`<div class="embedvideo-privacy-notice__text">%s %s</div>`,
		noticeText, p.makePrivacyPolicyLink(svc)))
	sb.WriteString(fmt.Sprintf(`<button class="embedvideo-privacy-notice__continue">%s</button>`,
		p.messages.Text("embedvideo-consent-continue")))
	sb.WriteString(fmt.Sprintf(`<button class="embedvideo-privacy-notice__dismiss">%s</button>`,
		p.messages.Text("embedvideo-consent-dismiss")))
	sb.WriteString(`</div>`)

	sb.WriteString(`</div>`)
	sb.WriteString(`</div>`)
	return sb.String()
}

// makeThumbHTML emits the lazy-loaded preview image. Services without a local
// thumbnail, and expansion failures, yield an empty string.
func (p *ConsentPresenter) makeThumbHTML(svc *embeds.Service) string {
	if svc.Thumbnail == nil {
		return ""
	}
	absolute, err := p.expander.Expand(svc.Thumbnail.RelativeURL)
	if err != nil {
		return ""
	}
	return fmt.Sprintf(
		`<picture class="embedvideo-thumbnail"><img src="%s" loading="lazy" alt="%s" class="embedvideo-thumbnail__image"/></picture>`,
		html.EscapeString(absolute), html.EscapeString(svc.Title))
}

// makeTitleHTML wraps the service title in its labeled block, or returns an
// empty string for untitled services.
func (p *ConsentPresenter) makeTitleHTML(svc *embeds.Service) string {
	if svc.Title == "" {
		return ""
	}
	return fmt.Sprintf(`<div class="embedvideo-loader__title">%s</div>`, html.EscapeString(svc.Title))
}

// makePrivacyPolicyLink emits the provider's privacy policy anchor, marked
// non-followable and opening in a new browsing context.
func (p *ConsentPresenter) makePrivacyPolicyLink(svc *embeds.Service) string {
	if svc.PrivacyPolicyURL == "" {
		return ""
	}
	return fmt.Sprintf(`<a href="%s" rel="nofollow noopener" target="_blank" class="embedvideo-privacy-notice__link">%s</a>`,
		html.EscapeString(svc.PrivacyPolicyURL), p.messages.Text("embedvideo-consent-privacy-policy"))
}
