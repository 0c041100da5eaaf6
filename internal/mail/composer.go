// Package mail composes transport-ready Gmail payloads and decodes inbound
// messages into flat records.
package mail

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
)

// ErrFileRead indicates an attachment source could not be read.
var ErrFileRead = errors.New("attachment file unreadable")

const fallbackMime = "application/octet-stream"

// Outbound is a transport-ready message: the base64url-encoded RFC 2822
// payload the Gmail API expects in the "raw" field.
type Outbound struct {
	Raw string
}

// NewMessage builds a plain-text message.
func NewMessage(to, subject, body string) Outbound {
	var b bytes.Buffer
	writeHeader(&b, "To", to)
	writeHeader(&b, "Subject", subject)
	writeHeader(&b, "MIME-Version", "1.0")
	writeHeader(&b, "Content-Type", `text/plain; charset="utf-8"`)
	b.WriteString("\r\n")
	b.WriteString(body)

	return Outbound{Raw: base64.URLEncoding.EncodeToString(b.Bytes())}
}

// NewMessageWithAttachment builds a multipart message carrying body text and
// one file attachment. The attachment MIME type is guessed from the file
// extension, falling back to application/octet-stream.
func NewMessageWithAttachment(to, subject, body, filePath string) (Outbound, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Outbound{}, fmt.Errorf("%w: os.ReadFile(%s) failed: %v", ErrFileRead, filePath, err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(filePath))
	if contentType == "" {
		contentType = fallbackMime
	}
	filename := filepath.Base(filePath)

	var b bytes.Buffer
	mw := multipart.NewWriter(&b)

	writeHeader(&b, "To", to)
	writeHeader(&b, "Subject", subject)
	writeHeader(&b, "MIME-Version", "1.0")
	writeHeader(&b, "Content-Type", fmt.Sprintf(`multipart/mixed; boundary="%s"`, mw.Boundary()))
	b.WriteString("\r\n")

	textHdr := textproto.MIMEHeader{}
	textHdr.Set("Content-Type", `text/plain; charset="utf-8"`)
	pw, err := mw.CreatePart(textHdr)
	if err != nil {
		return Outbound{}, fmt.Errorf("mw.CreatePart failed: %w", err)
	}
	if _, err := pw.Write([]byte(body)); err != nil {
		return Outbound{}, fmt.Errorf("body write failed: %w", err)
	}

	attHdr := textproto.MIMEHeader{}
	attHdr.Set("Content-Type", contentType)
	attHdr.Set("Content-Transfer-Encoding", "base64")
	attHdr.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	pw, err = mw.CreatePart(attHdr)
	if err != nil {
		return Outbound{}, fmt.Errorf("mw.CreatePart failed: %w", err)
	}
	if _, err := pw.Write([]byte(base64.StdEncoding.EncodeToString(data))); err != nil {
		return Outbound{}, fmt.Errorf("attachment write failed: %w", err)
	}

	if err := mw.Close(); err != nil {
		return Outbound{}, fmt.Errorf("mw.Close failed: %w", err)
	}

	return Outbound{Raw: base64.URLEncoding.EncodeToString(b.Bytes())}, nil
}

func writeHeader(b *bytes.Buffer, name, value string) {
	b.WriteString(name)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\r\n")
}
