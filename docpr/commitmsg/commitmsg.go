package commitmsg

import (
	"errors"
	"fmt"
	"strings"
)

// DocsType is the commit type expected for
// documentation contributions.
const DocsType = "docs"

// ErrNotConventional is returned when a message header
// is not of the form "type(scope): subject".
var ErrNotConventional = errors.New(
	"commit message is not conventional",
)

// Header is the parsed first line of a commit message.
type Header struct {
	Type    string
	Scope   string
	Subject string
}

// Parse extracts the conventional header from the first
// line of msg.
func Parse(msg string) (Header, error) {
	const errCtx = "parsing commit message"

	line, _, _ := strings.Cut(strings.TrimSpace(msg), "\n")

	prefix, subject, ok := strings.Cut(line, ":")
	if !ok {
		return Header{}, fmt.Errorf(
			"%s: missing type separator: %w",
			errCtx, ErrNotConventional,
		)
	}

	subject = strings.TrimSpace(subject)
	if subject == "" {
		return Header{}, fmt.Errorf(
			"%s: empty subject: %w",
			errCtx, ErrNotConventional,
		)
	}

	prefix = strings.TrimSuffix(prefix, "!")

	typ, scope, hasScope := strings.Cut(prefix, "(")
	if hasScope {
		if !strings.HasSuffix(scope, ")") {
			return Header{}, fmt.Errorf(
				"%s: unterminated scope: %w",
				errCtx, ErrNotConventional,
			)
		}

		scope = strings.TrimSuffix(scope, ")")
	}

	if typ == "" || strings.ContainsAny(typ, " \t") {
		return Header{}, fmt.Errorf(
			"%s: invalid type %q: %w",
			errCtx, typ, ErrNotConventional,
		)
	}

	return Header{
		Type:    strings.ToLower(typ),
		Scope:   scope,
		Subject: subject,
	}, nil
}

// IsDocs reports whether msg is a conventional commit
// of type "docs".
func IsDocs(msg string) bool {
	hd, err := Parse(msg)
	if err != nil {
		return false
	}

	return hd.Type == DocsType
}
