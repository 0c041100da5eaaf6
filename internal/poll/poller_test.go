package poll

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hal9000y/gapps-mcp/internal/mail"
	"github.com/hal9000y/gapps-mcp/internal/match"
)

type inboxMock struct {
	ListRecentIDsFunc func(ctx context.Context, maxResults int64) ([]string, error)
	FetchRecordsFunc  func(ctx context.Context, ids []string, inboxLabel string, senders []string) ([]mail.Record, error)
}

func (m *inboxMock) ListRecentIDs(ctx context.Context, maxResults int64) ([]string, error) {
	return m.ListRecentIDsFunc(ctx, maxResults)
}

func (m *inboxMock) FetchRecords(ctx context.Context, ids []string, inboxLabel string, senders []string) ([]mail.Record, error) {
	return m.FetchRecordsFunc(ctx, ids, inboxLabel, senders)
}

func countingSleep(sleeps *int) func(context.Context, time.Duration) error {
	return func(_ context.Context, _ time.Duration) error {
		*sleeps++
		return nil
	}
}

func TestPollExhaustsRetryBudget(t *testing.T) {
	attempts := 0
	in := &inboxMock{
		ListRecentIDsFunc: func(_ context.Context, maxResults int64) ([]string, error) {
			assert.Equal(t, int64(1), maxResults)
			attempts++
			return []string{"m-1"}, nil
		},
		FetchRecordsFunc: func(_ context.Context, ids []string, inboxLabel string, _ []string) ([]mail.Record, error) {
			assert.Equal(t, "INBOX", inboxLabel)
			return []mail.Record{{MessageID: "m-1", Subject: "nothing", Body: "relevant"}}, nil
		},
	}

	sleeps := 0
	p := New(in)
	p.sleep = countingSleep(&sleeps)

	responses, err := p.Poll(context.Background(), Config{
		Rules:      []match.Rule{{Name: "token", Kind: match.KindUUID, Phrase: "tok-42"}},
		RetryCount: 3,
	})
	require.NoError(t, err)

	assert.Nil(t, responses)
	assert.Equal(t, 3, attempts, "one list call per attempt")
	assert.Equal(t, 3, sleeps, "one interval sleep per failed attempt")
}

func TestPollReturnsOnFirstMatch(t *testing.T) {
	attempts := 0
	in := &inboxMock{
		ListRecentIDsFunc: func(_ context.Context, _ int64) ([]string, error) {
			attempts++
			return []string{"m-1"}, nil
		},
		FetchRecordsFunc: func(_ context.Context, _ []string, _ string, _ []string) ([]mail.Record, error) {
			if attempts < 2 {
				return []mail.Record{{}}, nil
			}
			return []mail.Record{{
				MessageID: "m-1",
				From:      "alice@example.com",
				Subject:   "Re: request",
				Body:      "tok-42 CONFIRM=YES",
			}}, nil
		},
	}

	sleeps := 0
	p := New(in)
	p.sleep = countingSleep(&sleeps)

	responses, err := p.Poll(context.Background(), Config{
		Rules: []match.Rule{
			{Name: "token", Kind: match.KindUUID, Phrase: "tok-42"},
			{Name: "confirm", Kind: match.KindBool, Phrase: "CONFIRM=YES", Optional: true},
		},
		RetryCount: 5,
	})
	require.NoError(t, err)

	require.Len(t, responses, 2)
	assert.Equal(t, "tok-42", responses[0].Value)
	assert.Equal(t, true, responses[1].Value)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, 1, sleeps, "only the failed attempt slept")
}

func TestPollCancelledDuringSleep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	in := &inboxMock{
		ListRecentIDsFunc: func(_ context.Context, _ int64) ([]string, error) {
			return nil, nil
		},
		FetchRecordsFunc: func(_ context.Context, _ []string, _ string, _ []string) ([]mail.Record, error) {
			return nil, nil
		},
	}

	p := New(in)
	p.sleep = func(ctx context.Context, d time.Duration) error {
		cancel()
		return sleepCtx(ctx, d)
	}

	_, err := p.Poll(ctx, Config{
		Rules:      []match.Rule{{Name: "token", Kind: match.KindUUID, Phrase: "tok-42"}},
		RetryCount: 3,
		Interval:   time.Hour,
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()

	assert.Equal(t, "INBOX", cfg.InboxLabel)
	assert.Equal(t, 20, cfg.RetryCount)
	assert.Equal(t, 10*time.Second, cfg.Interval)
	assert.Equal(t, int64(1), cfg.MaxResults)
}
