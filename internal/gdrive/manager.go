// Package gdrive manages files, folders and permissions in a Drive account.
package gdrive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"os"
	"path/filepath"

	"google.golang.org/api/drive/v3"
)

// ErrUpload indicates a file could not be uploaded.
var ErrUpload = errors.New("drive upload failure")

const folderMimeType = "application/vnd.google-apps.folder"

// Policy selects how best-effort operations (Upload, FolderContents) treat
// API failures.
type Policy int

const (
	// PolicyPropagate surfaces API failures to the caller.
	PolicyPropagate Policy = iota
	// PolicyBestEffort logs API failures and returns whatever was collected.
	PolicyBestEffort
)

// FileRef mirrors remote file metadata.
type FileRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MimeType string `json:"mime_type"`
}

type api interface {
	CreateFile(ctx context.Context, meta *drive.File, media io.Reader, mediaMime string) (*drive.File, error)
	ListFiles(ctx context.Context) (*drive.FileList, error)
	ListChildren(ctx context.Context, folderID, pageToken string) (*drive.FileList, error)
	GetFile(ctx context.Context, fileID string) (*drive.File, error)
	Download(ctx context.Context, fileID string) ([]byte, error)
	Delete(ctx context.Context, fileID string) error
	CreatePermission(ctx context.Context, fileID, email string) (*drive.Permission, error)
}

// NewManager creates a Manager over a Drive service wrapper.
func NewManager(svc api, policy Policy) *Manager {
	return &Manager{svc: svc, policy: policy}
}

// Manager exposes the file-storage operations. Listings are returned to the
// caller instead of being cached on the instance.
type Manager struct {
	svc    api
	policy Policy
}

// Upload sends a local file, optionally into parentID, and returns the new
// file id. Under PolicyBestEffort an API failure is logged and an empty id
// returned.
func (m *Manager) Upload(ctx context.Context, path, parentID string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: os.Open(%s) failed: %v", ErrUpload, path, err)
	}
	defer func() { _ = f.Close() }()

	meta := &drive.File{Name: filepath.Base(path)}
	if parentID != "" {
		meta.Parents = []string{parentID}
	}

	created, err := m.svc.CreateFile(ctx, meta, f, mime.TypeByExtension(filepath.Ext(path)))
	if err != nil {
		if m.policy == PolicyBestEffort {
			log.Printf("Upload of %s failed, continuing: %v", path, err)
			return "", nil
		}
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}

	return created.Id, nil
}

// ListFiles returns the full file listing.
func (m *Manager) ListFiles(ctx context.Context) ([]FileRef, error) {
	result, err := m.svc.ListFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("svc.ListFiles failed: %w", err)
	}

	refs := make([]FileRef, 0, len(result.Files))
	for _, f := range result.Files {
		refs = append(refs, FileRef{ID: f.Id, Name: f.Name, MimeType: f.MimeType})
	}

	return refs, nil
}

// FindIDsByName returns every file id whose remote name equals name. Remote
// names are not unique, so multiple ids are possible.
func (m *Manager) FindIDsByName(ctx context.Context, name string) ([]string, error) {
	refs, err := m.ListFiles(ctx)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, ref := range refs {
		if ref.Name == name {
			ids = append(ids, ref.ID)
		}
	}

	return ids, nil
}

// Delete removes a file by id.
func (m *Manager) Delete(ctx context.Context, fileID string) error {
	if err := m.svc.Delete(ctx, fileID); err != nil {
		return fmt.Errorf("svc.Delete failed: %w", err)
	}
	return nil
}

// Download fetches a file fully into memory, writes it once into destDir
// under its remote name and returns the written path.
func (m *Manager) Download(ctx context.Context, fileID, destDir string) (string, error) {
	meta, err := m.svc.GetFile(ctx, fileID)
	if err != nil {
		return "", fmt.Errorf("svc.GetFile failed: %w", err)
	}

	data, err := m.svc.Download(ctx, fileID)
	if err != nil {
		return "", fmt.Errorf("svc.Download failed: %w", err)
	}

	path := filepath.Join(destDir, meta.Name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("os.WriteFile(%s) failed: %w", path, err)
	}

	return path, nil
}

// CreateFolder creates a single remote folder and returns its id.
func (m *Manager) CreateFolder(ctx context.Context, name string) (string, error) {
	return m.createFolder(ctx, name, "")
}

func (m *Manager) createFolder(ctx context.Context, name, parentID string) (string, error) {
	meta := &drive.File{
		Name:     name,
		MimeType: folderMimeType,
	}
	if parentID != "" {
		meta.Parents = []string{parentID}
	}

	created, err := m.svc.CreateFile(ctx, meta, nil, "")
	if err != nil {
		return "", fmt.Errorf("svc.CreateFile failed: %w", err)
	}

	return created.Id, nil
}

// CreateFolderTree replicates a local directory tree remotely: each local
// directory becomes a folder parented under its local parent's folder (the
// root folder has no parent), and each file is uploaded into its directory's
// folder. Folders are created before their files and before descendant
// directories. Returns local directory path -> remote folder id.
func (m *Manager) CreateFolderTree(ctx context.Context, localRoot string) (map[string]string, error) {
	localRoot = filepath.Clean(localRoot)
	folderIDs := make(map[string]string)

	err := filepath.WalkDir(localRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		dir := filepath.Dir(path)

		if d.IsDir() {
			id, err := m.createFolder(ctx, d.Name(), folderIDs[dir])
			if err != nil {
				return fmt.Errorf("create folder for %s failed: %w", path, err)
			}
			folderIDs[path] = id
			return nil
		}

		if _, err := m.Upload(ctx, path, folderIDs[dir]); err != nil {
			return fmt.Errorf("upload %s failed: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s failed: %w", localRoot, err)
	}

	return folderIDs, nil
}

// FolderContents pages through a folder's children and returns their ids.
// Under PolicyBestEffort a page failure is logged and the ids collected so
// far returned; otherwise the partial result comes back with the error.
func (m *Manager) FolderContents(ctx context.Context, folderID string) ([]string, error) {
	var ids []string
	pageToken := ""

	for {
		page, err := m.svc.ListChildren(ctx, folderID, pageToken)
		if err != nil {
			if m.policy == PolicyBestEffort {
				log.Printf("Listing children of %s failed, returning partial result: %v", folderID, err)
				return ids, nil
			}
			return ids, fmt.Errorf("svc.ListChildren failed: %w", err)
		}

		for _, f := range page.Files {
			ids = append(ids, f.Id)
		}

		pageToken = page.NextPageToken
		if pageToken == "" {
			return ids, nil
		}
	}
}

// ShareCallback receives the created permission id or the error that
// prevented it. It is invoked synchronously before Share returns.
type ShareCallback func(permissionID string, err error)

// Share grants reader permission on a file to email. The per-item outcome is
// reported through cb when provided; the error is also returned.
func (m *Manager) Share(ctx context.Context, fileID, email string, cb ShareCallback) error {
	perm, err := m.svc.CreatePermission(ctx, fileID, email)
	if err != nil {
		if cb != nil {
			cb("", err)
		}
		return fmt.Errorf("svc.CreatePermission failed: %w", err)
	}

	if cb != nil {
		cb(perm.Id, nil)
	}
	return nil
}
