package match

import (
	"strings"

	"github.com/hal9000y/gapps-mcp/internal/mail"
)

// Response is one extracted value for one rule from one message.
type Response struct {
	Name      string `json:"name"`
	Kind      Kind   `json:"type"`
	From      string `json:"from"`
	MessageID string `json:"message_id"`
	Value     any    `json:"response"`
}

// Matches reports whether every non-optional rule phrase occurs in text.
// Optional rules never gate the check.
func Matches(text string, rules []Rule) bool {
	for _, r := range rules {
		if !r.Optional && !strings.Contains(text, r.Phrase) {
			return false
		}
	}
	return true
}

// Extract pulls the rule's value out of text.
//
// String rules scan forward from the phrase for a double-quoted span and
// return it, falling back to the rule default when the phrase is absent or
// no non-empty quoted span follows. Bool rules report phrase presence.
// UUID rules echo the configured phrase verbatim.
func Extract(text string, r Rule) (any, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	switch r.Kind {
	case KindString:
		if !strings.Contains(text, r.Phrase) {
			return r.Default, nil
		}
		return extractQuoted(text, r), nil
	case KindBool:
		return strings.Contains(text, r.Phrase), nil
	default: // KindUUID
		return r.Phrase, nil
	}
}

// extractQuoted collects the characters between the first pair of double
// quotes following the phrase. A missing closing quote collects to end of
// text; an empty or absent span falls back to the rule default.
func extractQuoted(text string, r Rule) string {
	i := strings.Index(text, r.Phrase)

	var b strings.Builder
	for ; i < len(text); i++ {
		if text[i] != '"' {
			continue
		}
		for i++; i < len(text) && text[i] != '"'; i++ {
			b.WriteByte(text[i])
		}
		break
	}

	if b.Len() == 0 {
		return r.Default
	}
	return b.String()
}

// ExtractAll runs every rule against every record whose combined
// "{subject} {body}" text satisfies Matches. Matching records contribute one
// Response per rule, optional rules included, in rule order; non-matching
// records contribute nothing.
func ExtractAll(records []mail.Record, rules []Rule) ([]Response, error) {
	var out []Response

	for _, rec := range records {
		text := rec.Subject + " " + rec.Body
		if !Matches(text, rules) {
			continue
		}

		for _, r := range rules {
			v, err := Extract(text, r)
			if err != nil {
				return nil, err
			}

			out = append(out, Response{
				Name:      r.Name,
				Kind:      r.Kind,
				From:      rec.From,
				MessageID: rec.MessageID,
				Value:     v,
			})
		}
	}

	return out, nil
}
