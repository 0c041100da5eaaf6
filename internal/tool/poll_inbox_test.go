package tool_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hal9000y/gapps-mcp/internal/match"
	"github.com/hal9000y/gapps-mcp/internal/poll"
	"github.com/hal9000y/gapps-mcp/internal/tool"
)

func TestPollInboxTool(t *testing.T) {
	var gotCfg poll.Config
	deps := tool.Deps{
		Poller: &pollSvcMock{
			PollFunc: func(_ context.Context, cfg poll.Config) ([]match.Response, error) {
				gotCfg = cfg
				return []match.Response{
					{Name: "approved", Kind: match.KindBool, From: "boss@example.com", MessageID: "m-1", Value: true},
				}, nil
			},
		},
	}

	session := newTestSession(t, deps)
	defer session.Close()

	resp := callTool[tool.PollInboxResponse](t, session, "poll_inbox", tool.PollInboxRequest{
		Rules: []match.Rule{
			{Name: "approved", Kind: match.KindBool, Phrase: "APPROVED"},
		},
		Senders:         []string{"boss@example.com"},
		RetryCount:      5,
		IntervalSeconds: 2,
	})

	require.Len(t, resp.Responses, 1)
	assert.Equal(t, "approved", resp.Responses[0].Name)
	assert.Equal(t, true, resp.Responses[0].Value)
	assert.False(t, resp.Exhausted)

	assert.Equal(t, []string{"boss@example.com"}, gotCfg.Senders)
	assert.Equal(t, 5, gotCfg.RetryCount)
	assert.Equal(t, 2*time.Second, gotCfg.Interval)
}

func TestPollInboxToolExhausted(t *testing.T) {
	deps := tool.Deps{
		Poller: &pollSvcMock{
			PollFunc: func(_ context.Context, _ poll.Config) ([]match.Response, error) {
				return nil, nil
			},
		},
	}

	session := newTestSession(t, deps)
	defer session.Close()

	resp := callTool[tool.PollInboxResponse](t, session, "poll_inbox", tool.PollInboxRequest{
		Rules: []match.Rule{
			{Name: "status", Kind: match.KindString, Phrase: "status is"},
		},
	})
	assert.Empty(t, resp.Responses)
	assert.True(t, resp.Exhausted)
}

func TestPollInboxToolInvalidRule(t *testing.T) {
	deps := tool.Deps{
		Poller: &pollSvcMock{
			PollFunc: func(_ context.Context, _ poll.Config) ([]match.Response, error) {
				t.Fatal("Poll must not be called for invalid rules")
				return nil, nil
			},
		},
	}

	session := newTestSession(t, deps)
	defer session.Close()

	errText := callToolExpectError(t, session, "poll_inbox", tool.PollInboxRequest{
		Rules: []match.Rule{
			{Name: "broken", Kind: "regex", Phrase: "x"},
		},
	})
	assert.Contains(t, errText, "regex")
}
