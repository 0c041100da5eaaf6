package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SaveAttachmentsRequest identifies the message whose attachments to save.
type SaveAttachmentsRequest struct {
	MessageID string `json:"message_id" jsonschema:"message whose attachments will be saved"`
	DestDir   string `json:"dest_dir,omitempty" jsonschema:"destination directory, default current directory"`
}

// SaveAttachmentsResponse lists the written files.
type SaveAttachmentsResponse struct {
	Saved []string `json:"saved" jsonschema:"paths of the written attachment files"`
}

type attachmentsSvc interface {
	SaveAttachments(ctx context.Context, msgID, destDir string) ([]string, error)
}

// NewSaveAttachments creates a new SaveAttachments tool.
func NewSaveAttachments(svc attachmentsSvc) *SaveAttachments {
	return &SaveAttachments{svc: svc}
}

// SaveAttachments writes a message's attachments to local disk.
type SaveAttachments struct {
	svc attachmentsSvc
}

// SaveAttachments saves every filename-bearing attachment of the message.
func (t *SaveAttachments) SaveAttachments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SaveAttachmentsRequest,
) (*mcp.CallToolResult, SaveAttachmentsResponse, error) {
	destDir := input.DestDir
	if destDir == "" {
		destDir = "."
	}

	saved, err := t.svc.SaveAttachments(ctx, input.MessageID, destDir)
	if err != nil {
		return nil, SaveAttachmentsResponse{}, fmt.Errorf("svc.SaveAttachments failed: %w", err)
	}

	return nil, SaveAttachmentsResponse{Saved: saved}, nil
}
