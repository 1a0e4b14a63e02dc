// Package redact strips sensitive fragments from error messages before
// they are logged. Errors from the broker and store clients routinely
// embed connection addresses and credentials; logs should carry the
// failure, not the secrets.
package redact

import "regexp"

var (
	// Connection strings with inline credentials, e.g. redis://user:pw@host.
	connURLRegex = regexp.MustCompile(`(?i)\b(redis|rediss|kafka)://[^@\s]+@`)

	// Bare host:port pairs for broker/store endpoints.
	hostPortRegex = regexp.MustCompile(`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}:\d{1,5}\b`)

	// Password-like key=value fragments.
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|secret)([=:\s]['"]?)\S{3,}`)
)

// String redacts sensitive fragments from s.
func String(s string) string {
	s = connURLRegex.ReplaceAllString(s, "$1://[REDACTED_CREDENTIAL]@")
	s = hostPortRegex.ReplaceAllString(s, "[REDACTED_HOST]")
	s = passwordRegex.ReplaceAllString(s, "$1$2[REDACTED]")
	return s
}

// Error redacts the message of err, returning "" for nil.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
