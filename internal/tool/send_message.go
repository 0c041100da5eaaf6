package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hal9000y/gapps-mcp/internal/mail"
)

// SendMessageRequest describes the outbound email.
type SendMessageRequest struct {
	To             string `json:"to" jsonschema:"recipient email address"`
	Subject        string `json:"subject" jsonschema:"email subject"`
	Body           string `json:"body" jsonschema:"plain text body"`
	AttachmentPath string `json:"attachment_path,omitempty" jsonschema:"optional local file to attach"`
}

// SendMessageResponse carries the provider-assigned message id.
type SendMessageResponse struct {
	MessageID string `json:"message_id" jsonschema:"id of the sent message"`
}

type sendSvc interface {
	Send(ctx context.Context, msg mail.Outbound) (string, error)
}

// NewSendMessage creates a new SendMessage tool.
func NewSendMessage(svc sendSvc) *SendMessage {
	return &SendMessage{svc: svc}
}

// SendMessage composes and transmits one email.
type SendMessage struct {
	svc sendSvc
}

// SendMessage sends the described email.
func (t *SendMessage) SendMessage(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SendMessageRequest,
) (*mcp.CallToolResult, SendMessageResponse, error) {
	var msg mail.Outbound
	var err error

	if input.AttachmentPath != "" {
		msg, err = mail.NewMessageWithAttachment(input.To, input.Subject, input.Body, input.AttachmentPath)
		if err != nil {
			return nil, SendMessageResponse{}, fmt.Errorf("mail.NewMessageWithAttachment failed: %w", err)
		}
	} else {
		msg = mail.NewMessage(input.To, input.Subject, input.Body)
	}

	id, err := t.svc.Send(ctx, msg)
	if err != nil {
		return nil, SendMessageResponse{}, fmt.Errorf("svc.Send failed: %w", err)
	}

	return nil, SendMessageResponse{MessageID: id}, nil
}
