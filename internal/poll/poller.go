// Package poll repeatedly reads the inbox until a rule set matches or the
// retry budget runs out.
package poll

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hal9000y/gapps-mcp/internal/mail"
	"github.com/hal9000y/gapps-mcp/internal/match"
)

type inbox interface {
	ListRecentIDs(ctx context.Context, maxResults int64) ([]string, error)
	FetchRecords(ctx context.Context, ids []string, inboxLabel string, senders []string) ([]mail.Record, error)
}

// Config controls one polling run. Zero values take the defaults below.
type Config struct {
	Rules      []match.Rule
	InboxLabel string        // default "INBOX"
	Senders    []string      // optional From-header allowlist substrings
	RetryCount int           // default 20
	Interval   time.Duration // fixed sleep between attempts, default 10s
	MaxResults int64         // ids listed per attempt, default 1
}

func (c Config) withDefaults() Config {
	if c.InboxLabel == "" {
		c.InboxLabel = mail.DefaultInboxLabel
	}
	if c.RetryCount == 0 {
		c.RetryCount = 20
	}
	if c.Interval == 0 {
		c.Interval = 10 * time.Second
	}
	if c.MaxResults == 0 {
		c.MaxResults = 1
	}
	return c
}

// New creates a Poller over an inbox reader.
func New(in inbox) *Poller {
	return &Poller{
		in:    in,
		sleep: sleepCtx,
	}
}

// Poller runs the list-fetch-extract cycle on a fixed interval. No jitter,
// no backoff growth.
type Poller struct {
	in    inbox
	sleep func(context.Context, time.Duration) error
}

// Poll attempts up to cfg.RetryCount cycles and returns the first non-empty
// extraction result. An exhausted budget returns a nil slice and nil error.
// Cancelling ctx interrupts the inter-attempt sleep.
func (p *Poller) Poll(ctx context.Context, cfg Config) ([]match.Response, error) {
	cfg = cfg.withDefaults()

	for try := 0; try < cfg.RetryCount; try++ {
		log.Printf("Polling email, attempt %d/%d", try+1, cfg.RetryCount)

		ids, err := p.in.ListRecentIDs(ctx, cfg.MaxResults)
		if err != nil {
			return nil, fmt.Errorf("in.ListRecentIDs failed: %w", err)
		}

		records, err := p.in.FetchRecords(ctx, ids, cfg.InboxLabel, cfg.Senders)
		if err != nil {
			return nil, fmt.Errorf("in.FetchRecords failed: %w", err)
		}

		responses, err := match.ExtractAll(records, cfg.Rules)
		if err != nil {
			return nil, fmt.Errorf("match.ExtractAll failed: %w", err)
		}
		if len(responses) > 0 {
			return responses, nil
		}

		if err := p.sleep(ctx, cfg.Interval); err != nil {
			return nil, err
		}
	}

	return nil, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
