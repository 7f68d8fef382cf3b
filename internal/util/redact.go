package util

import (
	"regexp"
	"strings"
)

var reToken = regexp.MustCompile(`(?i)((?:api|secret|token|key)[=:]\s*)([A-Za-z0-9-_]{8,})`)

// RedactSecrets hides token-looking values and any of the given secrets.
func RedactSecrets(s string, secrets ...string) string {
	for _, sec := range secrets {
		if len(sec) >= 4 {
			s = strings.ReplaceAll(s, sec, "[redacted]")
		}
	}
	return reToken.ReplaceAllString(s, "${1}[redacted]")
}
