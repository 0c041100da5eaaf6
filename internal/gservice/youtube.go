package gservice

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/hal9000y/gapps-mcp/internal/auth"
)

// NewYouTube creates a YouTube wrapper bound to an OAuth config and token.
func NewYouTube(cfg *oauth2.Config, tok *auth.Token) *YouTube {
	return &YouTube{
		cfg: cfg,
		tok: tok,
	}
}

// YouTube wraps the YouTube Data API for the authorized user.
type YouTube struct {
	cfg *oauth2.Config
	tok *auth.Token
}

// InsertVideo uploads a video with resumable chunked media and returns the
// stored video resource.
func (y *YouTube) InsertVideo(ctx context.Context, video *youtube.Video, media io.Reader, opts ...googleapi.MediaOption) (*youtube.Video, error) {
	svc, err := y.newSvc(ctx)
	if err != nil {
		return nil, fmt.Errorf("newSvc failed: %w", err)
	}

	call := svc.Videos.Insert([]string{"snippet", "status"}, video).
		Media(media, opts...)

	result, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("videos.Insert failed: %w", err)
	}

	return result, nil
}

func (y *YouTube) newSvc(ctx context.Context) (*youtube.Service, error) {
	t, err := y.tok.OAuthToken()
	if err != nil {
		return nil, fmt.Errorf("tok.OAuthToken failed: %w", err)
	}

	clt := y.cfg.Client(ctx, t)

	svc, err := youtube.NewService(ctx, option.WithHTTPClient(clt))
	if err != nil {
		return nil, fmt.Errorf("youtube.NewService failed: %w", err)
	}

	return svc, nil
}

func googleapiContentType(mime string) []googleapi.MediaOption {
	if mime == "" {
		return nil
	}
	return []googleapi.MediaOption{googleapi.ContentType(mime)}
}
