package config

import "fmt"

// Consent policy keys exposed through Source.
const (
	KeyRequireConsent    = "requireConsent"
	KeyShowPrivacyNotice = "showPrivacyNotice"
)

// Source adapts the process-wide configuration into the narrow boolean lookup
// the rendering core consumes. Lookups of unknown keys fail; the core treats
// any failure as false.
type Source struct{}

// GetBool returns the boolean value for a known configuration key.
func (Source) GetBool(key string) (bool, error) {
	switch key {
	case KeyRequireConsent:
		return RequireConsent, nil
	case KeyShowPrivacyNotice:
		return ShowPrivacyNotice, nil
	}
	return false, fmt.Errorf("unknown config key %q", key)
}
