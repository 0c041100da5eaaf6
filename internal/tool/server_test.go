package tool_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/hal9000y/gapps-mcp/internal/gdrive"
	"github.com/hal9000y/gapps-mcp/internal/mail"
	"github.com/hal9000y/gapps-mcp/internal/match"
	"github.com/hal9000y/gapps-mcp/internal/poll"
	"github.com/hal9000y/gapps-mcp/internal/tool"
	"github.com/hal9000y/gapps-mcp/internal/video"
)

type sendSvcMock struct {
	SendFunc func(ctx context.Context, msg mail.Outbound) (string, error)
}

func (m *sendSvcMock) Send(ctx context.Context, msg mail.Outbound) (string, error) {
	return m.SendFunc(ctx, msg)
}

type pollSvcMock struct {
	PollFunc func(ctx context.Context, cfg poll.Config) ([]match.Response, error)
}

func (m *pollSvcMock) Poll(ctx context.Context, cfg poll.Config) ([]match.Response, error) {
	return m.PollFunc(ctx, cfg)
}

type attachmentsSvcMock struct {
	SaveAttachmentsFunc func(ctx context.Context, msgID, destDir string) ([]string, error)
}

func (m *attachmentsSvcMock) SaveAttachments(ctx context.Context, msgID, destDir string) ([]string, error) {
	return m.SaveAttachmentsFunc(ctx, msgID, destDir)
}

type driveSvcMock struct {
	UploadFunc           func(ctx context.Context, path, parentID string) (string, error)
	ShareFunc            func(ctx context.Context, fileID, email string, cb gdrive.ShareCallback) error
	DownloadFunc         func(ctx context.Context, fileID, destDir string) (string, error)
	FindIDsByNameFunc    func(ctx context.Context, name string) ([]string, error)
	CreateFolderTreeFunc func(ctx context.Context, localRoot string) (map[string]string, error)
}

func (m *driveSvcMock) Upload(ctx context.Context, path, parentID string) (string, error) {
	return m.UploadFunc(ctx, path, parentID)
}

func (m *driveSvcMock) Share(ctx context.Context, fileID, email string, cb gdrive.ShareCallback) error {
	return m.ShareFunc(ctx, fileID, email, cb)
}

func (m *driveSvcMock) Download(ctx context.Context, fileID, destDir string) (string, error) {
	return m.DownloadFunc(ctx, fileID, destDir)
}

func (m *driveSvcMock) FindIDsByName(ctx context.Context, name string) ([]string, error) {
	return m.FindIDsByNameFunc(ctx, name)
}

func (m *driveSvcMock) CreateFolderTree(ctx context.Context, localRoot string) (map[string]string, error) {
	return m.CreateFolderTreeFunc(ctx, localRoot)
}

type videoSvcMock struct {
	UploadFunc func(ctx context.Context, filePath string, meta video.Metadata) (string, error)
}

func (m *videoSvcMock) Upload(ctx context.Context, filePath string, meta video.Metadata) (string, error) {
	return m.UploadFunc(ctx, filePath, meta)
}

type testSession struct {
	ctx    context.Context
	client *mcp.ClientSession
	server *mcp.ServerSession
}

func (s *testSession) Close() {
	s.client.Close()
	s.server.Close()
}

func newTestSession(t *testing.T, deps tool.Deps) *testSession {
	t.Helper()

	server := tool.NewServer(deps)
	client := mcp.NewClient(&mcp.Implementation{Name: "test-client"}, nil)
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	ctx := context.Background()

	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	clientSession, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	return &testSession{ctx: ctx, client: clientSession, server: serverSession}
}

func callTool[T any](t *testing.T, s *testSession, name string, args any) T {
	t.Helper()

	result, err := s.client.CallTool(s.ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.NotNil(t, result)
	require.False(t, result.IsError, "tool call failed: %v", result.Content)
	require.NotEmpty(t, result.Content)

	var response T
	require.NoError(t, json.Unmarshal(
		[]byte(result.Content[0].(*mcp.TextContent).Text),
		&response,
	))

	return response
}

func callToolExpectError(t *testing.T, s *testSession, name string, args any) string {
	t.Helper()

	result, err := s.client.CallTool(s.ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.NotNil(t, result)
	require.True(t, result.IsError, "tool call should have failed")
	require.NotEmpty(t, result.Content)

	return result.Content[0].(*mcp.TextContent).Text
}
