package templates

import (
	"html"
	"strings"

	"github.com/embedworks/embedvideo-go/internal/domain/entities/embeds"
)

// SerializeAttributes renders an ordered attribute list as `key="value"`
// pairs joined by single spaces. Values are HTML-escaped so callers can pass
// raw strings without risking markup injection.
func SerializeAttributes(attrs *embeds.Attributes) string {
	if attrs.Len() == 0 {
		return ""
	}

	var sb strings.Builder
	for i, pair := range attrs.Pairs() {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(pair.Key)
		sb.WriteString(`="`)
		sb.WriteString(html.EscapeString(pair.Value))
		sb.WriteString(`"`)
	}
	return sb.String()
}
