package tool_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hal9000y/gapps-mcp/internal/gdrive"
	"github.com/hal9000y/gapps-mcp/internal/tool"
)

func TestUploadFileTool(t *testing.T) {
	var sharedWith []string
	deps := tool.Deps{
		Drive: &driveSvcMock{
			UploadFunc: func(_ context.Context, path, parentID string) (string, error) {
				assert.Equal(t, "/tmp/report.pdf", path)
				assert.Equal(t, "folder-1", parentID)
				return "file-1", nil
			},
			ShareFunc: func(_ context.Context, fileID, email string, cb gdrive.ShareCallback) error {
				assert.Equal(t, "file-1", fileID)
				sharedWith = append(sharedWith, email)
				cb("perm-"+email, nil)
				return nil
			},
		},
	}

	session := newTestSession(t, deps)
	defer session.Close()

	resp := callTool[tool.UploadFileResponse](t, session, "upload_file", tool.UploadFileRequest{
		Path:           "/tmp/report.pdf",
		ParentFolderID: "folder-1",
		ShareWith:      []string{"a@example.com", "b@example.com"},
	})

	assert.Equal(t, "file-1", resp.FileID)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, sharedWith)
	assert.Equal(t, []string{"perm-a@example.com", "perm-b@example.com"}, resp.Permissions)
}

func TestUploadFileToolShareFailureSkipsPermission(t *testing.T) {
	deps := tool.Deps{
		Drive: &driveSvcMock{
			UploadFunc: func(_ context.Context, _, _ string) (string, error) {
				return "file-1", nil
			},
			ShareFunc: func(_ context.Context, _, email string, cb gdrive.ShareCallback) error {
				if email == "bad@example.com" {
					cb("", fmt.Errorf("simulated permission error"))
					return nil
				}
				cb("perm-ok", nil)
				return nil
			},
		},
	}

	session := newTestSession(t, deps)
	defer session.Close()

	resp := callTool[tool.UploadFileResponse](t, session, "upload_file", tool.UploadFileRequest{
		Path:      "/tmp/report.pdf",
		ShareWith: []string{"bad@example.com", "ok@example.com"},
	})
	assert.Equal(t, []string{"perm-ok"}, resp.Permissions)
}

func TestDownloadFileTool(t *testing.T) {
	deps := tool.Deps{
		Drive: &driveSvcMock{
			DownloadFunc: func(_ context.Context, fileID, destDir string) (string, error) {
				assert.Equal(t, "file-1", fileID)
				assert.Equal(t, ".", destDir, "dest dir defaults to the current directory")
				return "./report.pdf", nil
			},
		},
	}

	session := newTestSession(t, deps)
	defer session.Close()

	resp := callTool[tool.DownloadFileResponse](t, session, "download_file", tool.DownloadFileRequest{
		FileID: "file-1",
	})
	assert.Equal(t, "./report.pdf", resp.Path)
}

func TestFindFilesTool(t *testing.T) {
	deps := tool.Deps{
		Drive: &driveSvcMock{
			FindIDsByNameFunc: func(_ context.Context, name string) ([]string, error) {
				require.Equal(t, "report.pdf", name)
				return []string{"file-1", "file-2"}, nil
			},
		},
	}

	session := newTestSession(t, deps)
	defer session.Close()

	resp := callTool[tool.FindFilesResponse](t, session, "find_files", tool.FindFilesRequest{Name: "report.pdf"})
	assert.Equal(t, []string{"file-1", "file-2"}, resp.FileIDs)
}

func TestMirrorFolderTool(t *testing.T) {
	deps := tool.Deps{
		Drive: &driveSvcMock{
			CreateFolderTreeFunc: func(_ context.Context, localRoot string) (map[string]string, error) {
				require.Equal(t, "/data/project", localRoot)
				return map[string]string{
					"/data/project":     "folder-root",
					"/data/project/sub": "folder-sub",
				}, nil
			},
		},
	}

	session := newTestSession(t, deps)
	defer session.Close()

	resp := callTool[tool.MirrorFolderResponse](t, session, "mirror_folder", tool.MirrorFolderRequest{
		LocalRoot: "/data/project",
	})
	assert.Equal(t, map[string]string{
		"/data/project":     "folder-root",
		"/data/project/sub": "folder-sub",
	}, resp.Folders)
}

func TestDownloadFileToolError(t *testing.T) {
	deps := tool.Deps{
		Drive: &driveSvcMock{
			DownloadFunc: func(_ context.Context, _, _ string) (string, error) {
				return "", errors.New("simulated download error")
			},
		},
	}

	session := newTestSession(t, deps)
	defer session.Close()

	errText := callToolExpectError(t, session, "download_file", tool.DownloadFileRequest{FileID: "file-x"})
	assert.Contains(t, errText, "simulated download error")
}
