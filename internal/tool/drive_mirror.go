package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// MirrorFolderRequest names the local directory tree to replicate.
type MirrorFolderRequest struct {
	LocalRoot string `json:"local_root" jsonschema:"local directory tree to replicate on Drive"`
}

// MirrorFolderResponse maps local directories to their remote folder ids.
type MirrorFolderResponse struct {
	Folders map[string]string `json:"folders" jsonschema:"local directory path to created Drive folder id"`
}

type mirrorFolderSvc interface {
	CreateFolderTree(ctx context.Context, localRoot string) (map[string]string, error)
}

// NewMirrorFolder creates a new MirrorFolder tool.
func NewMirrorFolder(svc mirrorFolderSvc) *MirrorFolder {
	return &MirrorFolder{svc: svc}
}

// MirrorFolder replicates a local directory tree on Drive.
type MirrorFolder struct {
	svc mirrorFolderSvc
}

// MirrorFolder creates the remote folders and uploads the contained files.
func (t *MirrorFolder) MirrorFolder(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MirrorFolderRequest,
) (*mcp.CallToolResult, MirrorFolderResponse, error) {
	folders, err := t.svc.CreateFolderTree(ctx, input.LocalRoot)
	if err != nil {
		return nil, MirrorFolderResponse{}, fmt.Errorf("svc.CreateFolderTree failed: %w", err)
	}

	return nil, MirrorFolderResponse{Folders: folders}, nil
}
