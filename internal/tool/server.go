// Package tool exposes the Gmail, Drive and YouTube wrappers as MCP tools.
package tool

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Deps bundles the wrapper implementations the tools run on.
type Deps struct {
	Sender  sendSvc
	Poller  pollSvc
	Reader  attachmentsSvc
	Drive   driveSvc
	Uploads videoSvc
}

// NewServer creates an MCP server with Gmail, Drive and YouTube tools.
func NewServer(deps Deps) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "gapps-helper", Version: "v1.0.0"}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "send_message",
		Description: "Send an email, optionally with one file attachment",
	}, NewSendMessage(deps.Sender).SendMessage)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "poll_inbox",
		Description: "Poll the inbox until a reply matching the given rules arrives",
	}, NewPollInbox(deps.Poller).PollInbox)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "save_attachments",
		Description: "Download all attachments of a message to a local directory",
	}, NewSaveAttachments(deps.Reader).SaveAttachments)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "upload_file",
		Description: "Upload a local file to Drive, optionally sharing it with readers",
	}, NewUploadFile(deps.Drive).UploadFile)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "download_file",
		Description: "Download a Drive file into a local directory",
	}, NewDownloadFile(deps.Drive).DownloadFile)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_files",
		Description: "Find Drive file ids by exact name",
	}, NewFindFiles(deps.Drive).FindFiles)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "mirror_folder",
		Description: "Replicate a local directory tree as Drive folders and upload its files",
	}, NewMirrorFolder(deps.Drive).MirrorFolder)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "upload_video",
		Description: "Upload a video file to YouTube with metadata",
	}, NewUploadVideo(deps.Uploads).UploadVideo)

	return server
}
