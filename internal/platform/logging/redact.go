package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// SensitiveHeaders lists lowercase HTTP header names that carry credentials.
// Both the masking rules below and middleware.RedactHeaders read it.
var SensitiveHeaders = map[string]bool{
	"authorization": true,
	"x-api-key":     true,
	"cookie":        true,
}

// redaction is the set of masking rules applied to every log attribute.
type redaction struct {
	fields   []string
	prefixes []string
	values   []*regexp.Regexp
}

var rules = redaction{
	fields:   []string{"password", "secret", "token"},
	prefixes: []string{"secret_", "api_key"},
	values: []*regexp.Regexp{
		// Authorization values logged outside a header attribute.
		regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-._~+/]+=*`),
		// JWTs. Segments shorter than 10 characters are version strings, not tokens.
		regexp.MustCompile(`[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}`),
		// api_key=..., apikey: ...
		regexp.MustCompile(`(?i)(api[_\-]?key|apikey)\s*[:=]\s*\S+`),
		// user:password@ in a time source base URL.
		regexp.MustCompile(`[a-zA-Z][a-zA-Z0-9+.\-]*://[^/\s:@]+:[^/\s@]+@`),
	},
}

func (r redaction) options() []masq.Option {
	opts := make([]masq.Option, 0, len(SensitiveHeaders)+len(r.fields)+len(r.prefixes)+len(r.values))
	for name := range SensitiveHeaders {
		opts = append(opts, masq.WithFieldName(name))
	}
	for _, name := range r.fields {
		opts = append(opts, masq.WithFieldName(name))
	}
	for _, prefix := range r.prefixes {
		opts = append(opts, masq.WithFieldPrefix(prefix))
	}
	for _, re := range r.values {
		opts = append(opts, masq.WithRegex(re))
	}
	return opts
}

// newRedactAttr returns the ReplaceAttr hook installed by New.
func newRedactAttr() func([]string, slog.Attr) slog.Attr {
	return masq.New(rules.options()...)
}
