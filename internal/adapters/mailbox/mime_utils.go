package mailbox

import (
	"bytes"
	"io"
	"strings"

	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
)

// noTextContent replaces the body of messages without any text part
const noTextContent = "[No text content found in message]"

// extractText returns the text/plain content of a raw RFC 5322 message,
// falling back to text/html and then to the raw bytes when MIME parsing fails
func extractText(raw []byte) string {
	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		return string(raw)
	}
	defer mr.Close()

	var text, html strings.Builder
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}

		h, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			// attachments are not triaged
			continue
		}
		contentType, _, _ := h.ContentType()
		body, err := io.ReadAll(part.Body)
		if err != nil {
			continue
		}

		switch {
		case strings.HasPrefix(contentType, "text/plain"), contentType == "":
			text.Write(body)
		case strings.HasPrefix(contentType, "text/html"):
			html.Write(body)
		}
	}

	switch {
	case text.Len() > 0:
		return strings.TrimSpace(text.String())
	case html.Len() > 0:
		return strings.TrimSpace(html.String())
	default:
		return noTextContent
	}
}
