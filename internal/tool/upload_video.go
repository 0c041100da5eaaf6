package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hal9000y/gapps-mcp/internal/video"
)

// UploadVideoRequest describes the video file and its metadata.
type UploadVideoRequest struct {
	Path     string         `json:"path" jsonschema:"local video file to upload"`
	Metadata video.Metadata `json:"metadata" jsonschema:"title, description, comma-separated keywords, category id, privacy status"`
}

// UploadVideoResponse carries the provider-assigned video id.
type UploadVideoResponse struct {
	VideoID string `json:"video_id" jsonschema:"id of the uploaded video"`
}

type videoSvc interface {
	Upload(ctx context.Context, filePath string, meta video.Metadata) (string, error)
}

// NewUploadVideo creates a new UploadVideo tool.
func NewUploadVideo(svc videoSvc) *UploadVideo {
	return &UploadVideo{svc: svc}
}

// UploadVideo uploads one video to YouTube.
type UploadVideo struct {
	svc videoSvc
}

// UploadVideo uploads the file and returns the video id.
func (t *UploadVideo) UploadVideo(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UploadVideoRequest,
) (*mcp.CallToolResult, UploadVideoResponse, error) {
	id, err := t.svc.Upload(ctx, input.Path, input.Metadata)
	if err != nil {
		return nil, UploadVideoResponse{}, fmt.Errorf("svc.Upload failed: %w", err)
	}

	return nil, UploadVideoResponse{VideoID: id}, nil
}
