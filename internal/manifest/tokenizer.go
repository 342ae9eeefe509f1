package manifest

import (
	"strings"

	kiterrors "github.com/threatflux/statekit/internal/errors"
	"github.com/threatflux/statekit/internal/record"
)

// rawToken is a template token before pool interning: a literal span or
// a `${...}` placeholder's inner text, not yet qualified against a
// field-key chain.
type rawToken struct {
	isPath bool
	text   string
}

// tokenize splits s on `${...}` placeholders. A literal span becomes a
// non-path token; each placeholder's inner text becomes a path token. An
// unterminated `${` (no matching `}`) is treated as a literal token
// covering the remainder of the string — a documented edge case the
// parser must not reject (§4.C). More than record.MaxTemplateTokens
// tokens is a parse error.
func tokenize(s string) ([]rawToken, error) {
	var tokens []rawToken

	for len(s) > 0 {
		start := strings.Index(s, "${")
		if start == -1 {
			tokens = append(tokens, rawToken{isPath: false, text: s})
			break
		}

		if start > 0 {
			tokens = append(tokens, rawToken{isPath: false, text: s[:start]})
			if len(tokens) > record.MaxTemplateTokens {
				return nil, kiterrors.ErrTooManyTemplateTokens
			}
		}

		rest := s[start+2:]
		end := strings.Index(rest, "}")
		if end == -1 {
			// Unterminated placeholder: the remainder, literal "${" included,
			// is one literal token.
			tokens = append(tokens, rawToken{isPath: false, text: s[start:]})
			break
		}

		tokens = append(tokens, rawToken{isPath: true, text: rest[:end]})
		if len(tokens) > record.MaxTemplateTokens {
			return nil, kiterrors.ErrTooManyTemplateTokens
		}

		s = rest[end+1:]
	}

	if len(tokens) > record.MaxTemplateTokens {
		return nil, kiterrors.ErrTooManyTemplateTokens
	}
	return tokens, nil
}

// qualifyPlaceholder resolves a placeholder's inner text against the
// dotted field-key chain that contains it. A placeholder already
// containing a dot is an absolute path and is returned unchanged. A bare
// name is qualified by dropping the chain's leaf segment (the field
// whose template this is) and appending the placeholder name — so
// `${org_id}` inside `cache.user.tenant_id` (chain
// ["cache","user","tenant_id"]) becomes `cache.user.org_id`. A
// file-root-scoped chain (length 1, no ancestors) has nothing to qualify
// against and the placeholder is left as-is.
func qualifyPlaceholder(placeholder string, fieldPath []string) string {
	if strings.Contains(placeholder, ".") {
		return placeholder
	}
	if len(fieldPath) <= 1 {
		return placeholder
	}
	parent := fieldPath[:len(fieldPath)-1]
	segments := make([]string, 0, len(parent)+1)
	segments = append(segments, parent...)
	segments = append(segments, placeholder)
	return strings.Join(segments, ".")
}
