package tool

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hal9000y/gapps-mcp/internal/match"
	"github.com/hal9000y/gapps-mcp/internal/poll"
)

// PollInboxRequest configures one polling run.
type PollInboxRequest struct {
	Rules           []match.Rule `json:"rules" jsonschema:"match rules: name, type (string|uuid|bool), phrase, default, optional"`
	InboxLabel      string       `json:"inbox_label,omitempty" jsonschema:"label the message must carry, default INBOX"`
	Senders         []string     `json:"senders,omitempty" jsonschema:"allowlist of From-header substrings"`
	RetryCount      int          `json:"retry_count,omitempty" jsonschema:"polling attempts, default 20"`
	IntervalSeconds int          `json:"interval_seconds,omitempty" jsonschema:"fixed seconds between attempts, default 10"`
	MaxResults      int64        `json:"max_results,omitempty" jsonschema:"recent messages checked per attempt, default 1"`
}

// PollInboxResponse carries the extracted values, one per matched rule.
type PollInboxResponse struct {
	Responses []match.Response `json:"responses" jsonschema:"extracted values; empty when the retry budget ran out"`
	Exhausted bool             `json:"exhausted" jsonschema:"true when no matching message arrived in time"`
}

type pollSvc interface {
	Poll(ctx context.Context, cfg poll.Config) ([]match.Response, error)
}

// NewPollInbox creates a new PollInbox tool.
func NewPollInbox(svc pollSvc) *PollInbox {
	return &PollInbox{svc: svc}
}

// PollInbox waits for an inbound email matching a rule set.
type PollInbox struct {
	svc pollSvc
}

// PollInbox runs the polling loop and returns the extracted values.
func (t *PollInbox) PollInbox(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PollInboxRequest,
) (*mcp.CallToolResult, PollInboxResponse, error) {
	for _, r := range input.Rules {
		if err := r.Validate(); err != nil {
			return nil, PollInboxResponse{}, err
		}
	}

	responses, err := t.svc.Poll(ctx, poll.Config{
		Rules:      input.Rules,
		InboxLabel: input.InboxLabel,
		Senders:    input.Senders,
		RetryCount: input.RetryCount,
		Interval:   time.Duration(input.IntervalSeconds) * time.Second,
		MaxResults: input.MaxResults,
	})
	if err != nil {
		return nil, PollInboxResponse{}, fmt.Errorf("svc.Poll failed: %w", err)
	}

	return nil, PollInboxResponse{
		Responses: responses,
		Exhausted: len(responses) == 0,
	}, nil
}
