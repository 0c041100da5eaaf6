package gservice

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/hal9000y/gapps-mcp/internal/auth"
)

const fileFields = "id, name, mimeType"

// NewDrive creates a Drive wrapper bound to an OAuth config and token.
func NewDrive(cfg *oauth2.Config, tok *auth.Token) *Drive {
	return &Drive{
		cfg: cfg,
		tok: tok,
	}
}

// Drive wraps the Drive API for the authorized user.
type Drive struct {
	cfg *oauth2.Config
	tok *auth.Token
}

// CreateFile creates a file (or folder when media is nil) and returns its id.
func (d *Drive) CreateFile(ctx context.Context, meta *drive.File, media io.Reader, mediaMime string) (*drive.File, error) {
	svc, err := d.newSvc(ctx)
	if err != nil {
		return nil, fmt.Errorf("newSvc failed: %w", err)
	}

	call := svc.Files.Create(meta).Fields("id")
	if media != nil {
		call = call.Media(media, googleapiContentType(mediaMime)...)
	}

	file, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("files.Create failed: %w", err)
	}

	return file, nil
}

// ListFiles returns the file listing of the account with id, name and MIME type.
func (d *Drive) ListFiles(ctx context.Context) (*drive.FileList, error) {
	svc, err := d.newSvc(ctx)
	if err != nil {
		return nil, fmt.Errorf("newSvc failed: %w", err)
	}

	result, err := svc.Files.List().
		Fields("nextPageToken", "files("+fileFields+")").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("files.List failed: %w", err)
	}

	return result, nil
}

// ListChildren returns one page of a folder's children.
func (d *Drive) ListChildren(ctx context.Context, folderID, pageToken string) (*drive.FileList, error) {
	svc, err := d.newSvc(ctx)
	if err != nil {
		return nil, fmt.Errorf("newSvc failed: %w", err)
	}

	call := svc.Files.List().
		Q(fmt.Sprintf("'%s' in parents", folderID)).
		Fields("nextPageToken", "files(id)")
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	result, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("files.List children failed: %w", err)
	}

	return result, nil
}

// GetFile fetches file metadata by id.
func (d *Drive) GetFile(ctx context.Context, fileID string) (*drive.File, error) {
	svc, err := d.newSvc(ctx)
	if err != nil {
		return nil, fmt.Errorf("newSvc failed: %w", err)
	}

	file, err := svc.Files.Get(fileID).Fields(fileFields).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("files.Get failed: %w", err)
	}

	return file, nil
}

// Download streams the file content and returns it fully buffered.
func (d *Drive) Download(ctx context.Context, fileID string) ([]byte, error) {
	svc, err := d.newSvc(ctx)
	if err != nil {
		return nil, fmt.Errorf("newSvc failed: %w", err)
	}

	resp, err := svc.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("files.Get download failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read download body failed: %w", err)
	}

	return data, nil
}

// Delete removes a file by id.
func (d *Drive) Delete(ctx context.Context, fileID string) error {
	svc, err := d.newSvc(ctx)
	if err != nil {
		return fmt.Errorf("newSvc failed: %w", err)
	}

	if err := svc.Files.Delete(fileID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("files.Delete failed: %w", err)
	}

	return nil
}

// CreatePermission grants a user reader access to a file.
func (d *Drive) CreatePermission(ctx context.Context, fileID, email string) (*drive.Permission, error) {
	svc, err := d.newSvc(ctx)
	if err != nil {
		return nil, fmt.Errorf("newSvc failed: %w", err)
	}

	perm := &drive.Permission{
		Type:         "user",
		Role:         "reader",
		EmailAddress: email,
	}

	created, err := svc.Permissions.Create(fileID, perm).Fields("id").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("permissions.Create failed: %w", err)
	}

	return created, nil
}

func (d *Drive) newSvc(ctx context.Context) (*drive.Service, error) {
	t, err := d.tok.OAuthToken()
	if err != nil {
		return nil, fmt.Errorf("tok.OAuthToken failed: %w", err)
	}

	clt := d.cfg.Client(ctx, t)

	svc, err := drive.NewService(ctx, option.WithHTTPClient(clt))
	if err != nil {
		return nil, fmt.Errorf("drive.NewService failed: %w", err)
	}

	return svc, nil
}
