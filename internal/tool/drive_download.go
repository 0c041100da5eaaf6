package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// DownloadFileRequest identifies the Drive file to download.
type DownloadFileRequest struct {
	FileID  string `json:"file_id" jsonschema:"Drive file id to download"`
	DestDir string `json:"dest_dir,omitempty" jsonschema:"destination directory, default current directory"`
}

// DownloadFileResponse carries the written path.
type DownloadFileResponse struct {
	Path string `json:"path" jsonschema:"local path the file was written to"`
}

type downloadFileSvc interface {
	Download(ctx context.Context, fileID, destDir string) (string, error)
}

// NewDownloadFile creates a new DownloadFile tool.
func NewDownloadFile(svc downloadFileSvc) *DownloadFile {
	return &DownloadFile{svc: svc}
}

// DownloadFile fetches one Drive file to local disk.
type DownloadFile struct {
	svc downloadFileSvc
}

// DownloadFile downloads the file under its remote name.
func (t *DownloadFile) DownloadFile(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DownloadFileRequest,
) (*mcp.CallToolResult, DownloadFileResponse, error) {
	destDir := input.DestDir
	if destDir == "" {
		destDir = "."
	}

	path, err := t.svc.Download(ctx, input.FileID, destDir)
	if err != nil {
		return nil, DownloadFileResponse{}, fmt.Errorf("svc.Download failed: %w", err)
	}

	return nil, DownloadFileResponse{Path: path}, nil
}
