// Package video uploads videos with retry on transient upload failures.
package video

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"net"
	"os"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/youtube/v3"

	"github.com/hal9000y/gapps-mcp/internal/gservice"
)

// ErrUnexpectedResponse indicates the upload finished but the response
// carried no video id.
var ErrUnexpectedResponse = errors.New("upload response carried no video id")

// Retries beyond this count abort the upload.
const maxRetries = 10

const defaultPrivacyStatus = "unlisted"

// Metadata describes the video being uploaded. Keywords is a comma-separated
// tag list. An empty PrivacyStatus defaults to unlisted.
type Metadata struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Keywords      string `json:"keywords,omitempty"`
	CategoryID    string `json:"category_id,omitempty"`
	PrivacyStatus string `json:"privacy_status,omitempty"`
}

type insertSvc interface {
	InsertVideo(ctx context.Context, video *youtube.Video, media io.Reader, opts ...googleapi.MediaOption) (*youtube.Video, error)
}

// NewUploader creates an Uploader over a YouTube service wrapper.
func NewUploader(svc insertSvc) *Uploader {
	return &Uploader{
		svc:       svc,
		sleep:     sleepCtx,
		randFloat: rand.Float64,
	}
}

// Uploader performs chunked resumable uploads, retrying transient failures
// with randomized exponential backoff.
type Uploader struct {
	svc       insertSvc
	sleep     func(context.Context, time.Duration) error
	randFloat func() float64
}

// Upload sends the file with its metadata and returns the provider-assigned
// video id. Retriable HTTP statuses (500, 502, 503, 504) and transient
// transport errors are retried up to maxRetries times, sleeping
// rand() * 2^retry seconds between attempts; other errors propagate
// immediately.
func (u *Uploader) Upload(ctx context.Context, filePath string, meta Metadata) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("os.Open(%s) failed: %w", filePath, err)
	}
	defer func() { _ = f.Close() }()

	video := buildVideo(meta)

	retry := 0
	for {
		log.Println("Uploading file...")

		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return "", fmt.Errorf("f.Seek failed: %w", err)
		}

		resp, err := u.svc.InsertVideo(ctx, video, f)
		if err == nil {
			if resp.Id == "" {
				return "", ErrUnexpectedResponse
			}
			log.Printf("Video id %q was successfully uploaded", resp.Id)
			return resp.Id, nil
		}

		if !retriable(err) {
			return "", fmt.Errorf("svc.InsertVideo failed: %w", err)
		}

		retry++
		if retry > maxRetries {
			return "", fmt.Errorf("no longer attempting to retry: %w", err)
		}

		backoff := time.Duration(u.randFloat() * math.Pow(2, float64(retry)) * float64(time.Second))
		log.Printf("Retriable upload error: %v; sleeping %s before retry %d/%d", err, backoff, retry, maxRetries)

		if err := u.sleep(ctx, backoff); err != nil {
			return "", err
		}
	}
}

func buildVideo(meta Metadata) *youtube.Video {
	var tags []string
	if meta.Keywords != "" {
		for _, kw := range strings.Split(meta.Keywords, ",") {
			tags = append(tags, strings.TrimSpace(kw))
		}
	}

	status := meta.PrivacyStatus
	if status == "" {
		status = defaultPrivacyStatus
	}

	return &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       meta.Title,
			Description: meta.Description,
			Tags:        tags,
			CategoryId:  meta.CategoryID,
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus: status,
		},
	}
}

func retriable(err error) bool {
	if gservice.IsRetriableStatus(err) {
		return true
	}

	var nerr net.Error
	if errors.As(err, &nerr) {
		return true
	}

	return errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
