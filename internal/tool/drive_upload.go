package tool

import (
	"context"
	"fmt"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hal9000y/gapps-mcp/internal/gdrive"
)

type driveSvc interface {
	uploadFileSvc
	downloadFileSvc
	findFilesSvc
	mirrorFolderSvc
}

// UploadFileRequest describes the file to upload and who to share it with.
type UploadFileRequest struct {
	Path           string   `json:"path" jsonschema:"local file to upload"`
	ParentFolderID string   `json:"parent_folder_id,omitempty" jsonschema:"optional Drive folder to upload into"`
	ShareWith      []string `json:"share_with,omitempty" jsonschema:"email addresses to grant reader access"`
}

// UploadFileResponse carries the new file id and granted permissions.
type UploadFileResponse struct {
	FileID      string   `json:"file_id" jsonschema:"id of the uploaded file"`
	Permissions []string `json:"permissions,omitempty" jsonschema:"ids of the created reader permissions"`
}

type uploadFileSvc interface {
	Upload(ctx context.Context, path, parentID string) (string, error)
	Share(ctx context.Context, fileID, email string, cb gdrive.ShareCallback) error
}

// NewUploadFile creates a new UploadFile tool.
func NewUploadFile(svc uploadFileSvc) *UploadFile {
	return &UploadFile{svc: svc}
}

// UploadFile uploads one local file to Drive.
type UploadFile struct {
	svc uploadFileSvc
}

// UploadFile uploads the file and optionally shares it.
func (t *UploadFile) UploadFile(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UploadFileRequest,
) (*mcp.CallToolResult, UploadFileResponse, error) {
	fileID, err := t.svc.Upload(ctx, input.Path, input.ParentFolderID)
	if err != nil {
		return nil, UploadFileResponse{}, fmt.Errorf("svc.Upload failed: %w", err)
	}

	resp := UploadFileResponse{FileID: fileID}

	for _, email := range input.ShareWith {
		err := t.svc.Share(ctx, fileID, email, func(permID string, err error) {
			if err != nil {
				log.Printf("Share with %s failed: %v", email, err)
				return
			}
			resp.Permissions = append(resp.Permissions, permID)
		})
		if err != nil {
			return nil, UploadFileResponse{}, fmt.Errorf("svc.Share failed: %w", err)
		}
	}

	return nil, resp, nil
}
