package cli

import (
	"fmt"
	"strings"

	"kontaktvault/internal/models"
)

// parsePhone parses "number[:type]". The type defaults to mobile.
func parsePhone(s string) models.PhoneNumber {
	number, ptype := splitValueType(s, "mobile")
	return models.PhoneNumber{Number: number, Type: ptype}
}

// parseEmail parses "address[:type]". The type defaults to personal.
func parseEmail(s string) models.EmailAddress {
	addr, etype := splitValueType(s, "personal")
	return models.EmailAddress{Address: addr, Type: etype}
}

// parseSocial parses "platform:username". Usernames may themselves
// contain colons (profile URLs), so only the first colon splits.
func parseSocial(s string) (models.SocialMedia, error) {
	platform, username, ok := strings.Cut(s, ":")
	if !ok || strings.TrimSpace(username) == "" {
		return models.SocialMedia{}, fmt.Errorf("invalid --social value %q, want platform:username", s)
	}
	return models.SocialMedia{
		Platform: strings.ToLower(strings.TrimSpace(platform)),
		Username: strings.TrimSpace(username),
	}, nil
}

// splitValueType splits "value[:type]" on the last colon so values with
// embedded colons survive. An empty or missing type gets the default.
func splitValueType(s, defaultType string) (string, string) {
	if i := strings.LastIndex(s, ":"); i >= 0 {
		value := strings.TrimSpace(s[:i])
		t := strings.ToLower(strings.TrimSpace(s[i+1:]))
		if value != "" && t != "" {
			return value, t
		}
	}
	return strings.TrimSpace(s), defaultType
}

// shortID abbreviates a uuid for display. Lookups accept the prefix.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
