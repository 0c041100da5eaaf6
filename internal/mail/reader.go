package mail

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"google.golang.org/api/gmail/v1"

	"github.com/hal9000y/gapps-mcp/internal/format"
)

// Reader errors.
var (
	// ErrFetch indicates the mail API failed to return a message.
	ErrFetch = errors.New("message fetch failure")
	// ErrUnparsable indicates a message carried no recognizable body.
	ErrUnparsable = errors.New("message not parsable")
	// ErrAttachment indicates attachment bytes could not be resolved.
	ErrAttachment = errors.New("attachment fetch failure")
)

// DefaultInboxLabel is the label inbound messages must carry to be read.
const DefaultInboxLabel = "INBOX"

// Record is the flat view of one inbound message. A filtered-out message
// yields the zero Record so positional correspondence with the requested ids
// is preserved.
type Record struct {
	MessageID string `json:"message_id"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	From      string `json:"from"`
	To        string `json:"to"`
}

// Empty reports whether the record was filtered out.
func (r Record) Empty() bool {
	return r == Record{}
}

type readSvc interface {
	ListMessages(ctx context.Context, Q, pageToken string, maxResults int64) (*gmail.ListMessagesResponse, error)
	GetMessage(ctx context.Context, msgID string) (*gmail.Message, error)
	GetAttachment(ctx context.Context, msgID, attachmentID string) (*gmail.MessagePartBody, error)
}

// NewReader creates a Reader over a Gmail service wrapper.
func NewReader(svc readSvc) *Reader {
	return &Reader{svc: svc}
}

// Reader fetches inbound messages and decodes them into Records.
type Reader struct {
	svc readSvc
}

// ListRecentIDs returns up to maxResults most recent message ids in
// provider order.
func (r *Reader) ListRecentIDs(ctx context.Context, maxResults int64) ([]string, error) {
	result, err := r.svc.ListMessages(ctx, "", "", maxResults)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	ids := make([]string, 0, len(result.Messages))
	for _, m := range result.Messages {
		if m.Id != "" {
			ids = append(ids, m.Id)
		}
	}

	return ids, nil
}

// FetchRecord fetches one message and flattens it. The zero Record is
// returned when the message lacks inboxLabel or, with a non-empty senders
// allowlist, its From header contains none of the allowlisted substrings.
// The sender filter wins over any fields already captured.
func (r *Reader) FetchRecord(ctx context.Context, msgID, inboxLabel string, senders []string) (Record, error) {
	msg, err := r.svc.GetMessage(ctx, msgID)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	if msg.Payload == nil || !slices.Contains(msg.LabelIds, inboxLabel) {
		return Record{}, nil
	}

	rec := Record{MessageID: msgID}

	for _, h := range msg.Payload.Headers {
		switch h.Name {
		case "Subject":
			rec.Subject = format.Normalize(h.Value)
		case "From":
			if len(senders) > 0 && !fromAllowed(h.Value, senders) {
				return Record{}, nil
			}
			rec.From = h.Value
		case "To":
			rec.To = h.Value
		}
	}

	body, err := extractBody(msg.Payload)
	if err != nil {
		return Record{}, fmt.Errorf("message %s: %w", msgID, err)
	}
	rec.Body = body

	return rec, nil
}

// FetchRecords fetches every id in order. Filtered-out messages still occupy
// their slot as empty Records.
func (r *Reader) FetchRecords(ctx context.Context, ids []string, inboxLabel string, senders []string) ([]Record, error) {
	records := make([]Record, 0, len(ids))

	for _, id := range ids {
		rec, err := r.FetchRecord(ctx, id, inboxLabel, senders)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

// SaveAttachments writes every filename-bearing attachment of a message into
// destDir and returns the written paths.
func (r *Reader) SaveAttachments(ctx context.Context, msgID, destDir string) ([]string, error) {
	msg, err := r.svc.GetMessage(ctx, msgID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	if msg.Payload == nil {
		return nil, nil
	}

	var written []string
	for _, part := range msg.Payload.Parts {
		if part.Filename == "" {
			continue
		}

		data, err := r.attachmentData(ctx, msgID, part)
		if err != nil {
			return written, err
		}

		raw, err := decodeBase64URL(data)
		if err != nil {
			return written, fmt.Errorf("%w: decode %s failed: %v", ErrAttachment, part.Filename, err)
		}

		path := filepath.Join(destDir, part.Filename)
		if err := os.WriteFile(path, raw, 0644); err != nil {
			return written, fmt.Errorf("%w: write %s failed: %v", ErrAttachment, path, err)
		}
		written = append(written, path)
	}

	return written, nil
}

func (r *Reader) attachmentData(ctx context.Context, msgID string, part *gmail.MessagePart) (string, error) {
	if part.Body == nil {
		return "", fmt.Errorf("%w: part %s has no body", ErrAttachment, part.Filename)
	}
	if part.Body.Data != "" {
		return part.Body.Data, nil
	}

	att, err := r.svc.GetAttachment(ctx, msgID, part.Body.AttachmentId)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAttachment, err)
	}
	if att.Data == "" {
		return "", fmt.Errorf("%w: no data for attachment %s", ErrAttachment, part.Filename)
	}

	return att.Data, nil
}

func fromAllowed(from string, senders []string) bool {
	for _, s := range senders {
		if strings.Contains(from, s) {
			return true
		}
	}
	return false
}

// extractBody applies the body precedence rules: inline top-level data
// first, then a scan of the parts where a multipart/alternative part is
// descended into for its text/plain sub-part and a direct text/plain part is
// taken as-is. The last matching part wins.
func extractBody(payload *gmail.MessagePart) (string, error) {
	if payload.Body != nil && payload.Body.Data != "" {
		return decodeNormalized(payload.Body.Data)
	}

	if len(payload.Parts) == 0 {
		return "", ErrUnparsable
	}

	var body string
	for _, part := range payload.Parts {
		switch part.MimeType {
		case "multipart/alternative":
			for _, inner := range part.Parts {
				if inner.MimeType == "text/plain" && inner.Body != nil && inner.Body.Data != "" {
					if decoded, err := decodeNormalized(inner.Body.Data); err == nil {
						body = decoded
					}
				}
			}
		case "text/plain":
			if part.Body != nil && part.Body.Data != "" {
				if decoded, err := decodeNormalized(part.Body.Data); err == nil {
					body = decoded
				}
			}
		}
	}

	return body, nil
}

func decodeNormalized(data string) (string, error) {
	raw, err := decodeBase64URL(data)
	if err != nil {
		return "", fmt.Errorf("base64 decode failed: %w", err)
	}
	return format.Normalize(string(raw)), nil
}

func decodeBase64URL(data string) ([]byte, error) {
	decoded, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		decoded, err = base64.RawURLEncoding.DecodeString(data)
		if err != nil {
			return nil, err
		}
	}
	return decoded, nil
}
