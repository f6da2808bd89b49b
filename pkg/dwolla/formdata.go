package dwolla

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"strings"
)

// FormData is a multipart body. Passing one to Post sends it with its own
// multipart Content-Type instead of JSON.
type FormData struct {
	parts []formPart
}

type formPart struct {
	name        string
	value       string
	filename    string
	contentType string
	file        io.Reader
}

// NewFormData returns an empty multipart body.
func NewFormData() *FormData {
	return &FormData{}
}

// Set adds a plain field.
func (f *FormData) Set(name, value string) *FormData {
	f.parts = append(f.parts, formPart{name: name, value: value})
	return f
}

// File adds a file part. The content type is derived from the filename
// extension when it is known.
func (f *FormData) File(name, filename string, r io.Reader) *FormData {
	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	f.parts = append(f.parts, formPart{name: name, filename: filename, contentType: contentType, file: r})
	return f
}

// encode renders the body and returns it with its Content-Type.
func (f *FormData) encode() (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for _, p := range f.parts {
		if p.file == nil {
			if err := w.WriteField(p.name, p.value); err != nil {
				return nil, "", fmt.Errorf("failed to write form field %s: %w", p.name, err)
			}
			continue
		}

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			escapeQuotes(p.name), escapeQuotes(p.filename)))
		h.Set("Content-Type", p.contentType)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create form file %s: %w", p.name, err)
		}
		if _, err := io.Copy(part, p.file); err != nil {
			return nil, "", fmt.Errorf("failed to write form file %s: %w", p.name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close form: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
