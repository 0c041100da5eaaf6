// Package match extracts typed values from free-text email content using
// declarative rules.
package match

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Kind is the extraction type of a rule.
type Kind string

// Allowed rule kinds.
const (
	KindString Kind = "string"
	KindUUID   Kind = "uuid"
	KindBool   Kind = "bool"
)

// ErrInvalidRule indicates a rule with an unknown or missing kind.
var ErrInvalidRule = errors.New("invalid match rule")

// Rule describes one value to look for in a message. Phrase is the anchor
// keyword; Default is returned by string extraction when no quoted value
// follows the phrase. Non-optional rules gate whether a message matches at
// all.
type Rule struct {
	Name     string `json:"name"`
	Kind     Kind   `json:"type"`
	Phrase   string `json:"phrase"`
	Default  string `json:"default,omitempty"`
	Optional bool   `json:"optional"`
}

// NewRule creates a validated Rule.
func NewRule(name string, kind Kind, phrase, def string, optional bool) (Rule, error) {
	switch kind {
	case KindString, KindUUID, KindBool:
	default:
		return Rule{}, fmt.Errorf("%w: unknown kind %q for rule %q", ErrInvalidRule, kind, name)
	}

	return Rule{
		Name:     name,
		Kind:     kind,
		Phrase:   phrase,
		Default:  def,
		Optional: optional,
	}, nil
}

// NewUUIDRule creates a non-optional uuid rule with a freshly generated
// phrase. The phrase doubles as a correlation token: include it in an
// outbound message and the reply is only matched when it echoes the token.
func NewUUIDRule(name string) Rule {
	return Rule{
		Name:   name,
		Kind:   KindUUID,
		Phrase: uuid.NewString(),
	}
}

// Validate checks the rule kind. Rules built through NewRule are always valid;
// rules decoded from JSON may not be.
func (r Rule) Validate() error {
	switch r.Kind {
	case KindString, KindUUID, KindBool:
		return nil
	case "":
		return fmt.Errorf("%w: no kind provided for rule %q", ErrInvalidRule, r.Name)
	default:
		return fmt.Errorf("%w: unknown kind %q for rule %q", ErrInvalidRule, r.Kind, r.Name)
	}
}
