package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// FindFilesRequest carries the exact remote name to look for.
type FindFilesRequest struct {
	Name string `json:"name" jsonschema:"exact remote file name"`
}

// FindFilesResponse lists all matching ids; remote names are not unique.
type FindFilesResponse struct {
	FileIDs []string `json:"file_ids" jsonschema:"ids of all files with that name"`
}

type findFilesSvc interface {
	FindIDsByName(ctx context.Context, name string) ([]string, error)
}

// NewFindFiles creates a new FindFiles tool.
func NewFindFiles(svc findFilesSvc) *FindFiles {
	return &FindFiles{svc: svc}
}

// FindFiles resolves Drive file ids by name.
type FindFiles struct {
	svc findFilesSvc
}

// FindFiles returns every file id matching the name exactly.
func (t *FindFiles) FindFiles(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindFilesRequest,
) (*mcp.CallToolResult, FindFilesResponse, error) {
	ids, err := t.svc.FindIDsByName(ctx, input.Name)
	if err != nil {
		return nil, FindFilesResponse{}, fmt.Errorf("svc.FindIDsByName failed: %w", err)
	}

	return nil, FindFilesResponse{FileIDs: ids}, nil
}
