package match_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hal9000y/gapps-mcp/internal/match"
)

func TestNewRule(t *testing.T) {
	r, err := match.NewRule("env", match.KindString, "env=", "prod", true)
	require.NoError(t, err)
	assert.Equal(t, match.Rule{
		Name:     "env",
		Kind:     match.KindString,
		Phrase:   "env=",
		Default:  "prod",
		Optional: true,
	}, r)

	_, err = match.NewRule("env", "float", "env=", "", false)
	require.ErrorIs(t, err, match.ErrInvalidRule)
}

func TestNewUUIDRule(t *testing.T) {
	r := match.NewUUIDRule("token")

	require.NoError(t, r.Validate())
	assert.Equal(t, match.KindUUID, r.Kind)
	assert.False(t, r.Optional)

	_, err := uuid.Parse(r.Phrase)
	assert.NoError(t, err, "phrase should be a generated uuid")

	other := match.NewUUIDRule("token")
	assert.NotEqual(t, r.Phrase, other.Phrase)
}
