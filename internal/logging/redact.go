package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// endpointCredentialPattern matches user:password@ in URLs such as OTLP
// endpoints or DSNs.
var endpointCredentialPattern = regexp.MustCompile(`://[^/\s:@]+:[^/\s@]+@`)

var apiKeyInlinePattern = regexp.MustCompile(`(?i)(api[_\-]?key|apikey)\s*[:=]\s*\S+`)

// newRedactAttr returns a masq ReplaceAttr hook that hides credentials by
// field name and by value pattern.
func newRedactAttr() func([]string, slog.Attr) slog.Attr {
	return masq.New(
		masq.WithFieldName("password"),
		masq.WithFieldName("secret"),
		masq.WithFieldName("token"),
		masq.WithFieldName("authorization"),
		masq.WithFieldPrefix("secret_"),
		masq.WithFieldPrefix("api_key"),
		masq.WithRegex(endpointCredentialPattern),
		masq.WithRegex(apiKeyInlinePattern),
	)
}
