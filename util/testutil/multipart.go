package testutil

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
)

// UploadForm describes a multipart upload request body.
type UploadForm struct {
	Fields      map[string]string
	Filename    string
	ContentType string
	Data        []byte
}

// FloodForm returns the form for a 10-byte JPEG of a flood in Seoul.
func FloodForm() *UploadForm {
	return &UploadForm{
		Fields: map[string]string{
			"type":      "FLOOD",
			"latitude":  "37.5665",
			"longitude": "126.978",
			"address":   Address,
		},
		Filename:    "flood.jpeg",
		ContentType: "image/jpeg",
		Data:        []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46, 0x49, 0x46},
	}
}

// Encode returns the multipart body and its Content-Type header. If
// Filename is empty, the body has no file part.
func (f *UploadForm) Encode() (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, value := range f.Fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}
	if f.Filename != "" {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="file"; filename="%s"`, f.Filename))
		if f.ContentType != "" {
			header.Set("Content-Type", f.ContentType)
		}
		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", err
		}
		if _, err = part.Write(f.Data); err != nil {
			return nil, "", err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}
