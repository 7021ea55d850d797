package petfriends

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

// PhotoField is the multipart field carrying the image.
const PhotoField = "pet_photo"

// Photo references a binary image attachment. The zero value means "no photo".
type Photo struct {
	path string
	name string
	data []byte
}

// PhotoFile references an image on local storage. The file is read when a
// request is built and closed before the call returns.
func PhotoFile(path string) Photo {
	return Photo{path: path, name: filepath.Base(path)}
}

// PhotoBytes attaches in-memory image data under the given file name.
func PhotoBytes(name string, data []byte) Photo {
	return Photo{name: name, data: data}
}

// IsZero reports whether no photo is attached.
func (p Photo) IsZero() bool {
	return p.path == "" && p.data == nil
}

// Name is the file name sent in the multipart part.
func (p Photo) Name() string { return p.name }

func (p Photo) read() ([]byte, error) {
	if p.path == "" {
		return p.data, nil
	}
	f, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("opening photo: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading photo %s: %w", p.path, err)
	}
	return data, nil
}

// multipartForm encodes fields (in order) and an optional photo part.
func multipartForm(fields [][2]string, photo Photo) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("writing field %s: %w", f[0], err)
		}
	}

	if !photo.IsZero() {
		data, err := photo.read()
		if err != nil {
			return nil, "", err
		}

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, PhotoField, photo.Name()))
		h.Set("Content-Type", mimetype.Detect(data).String())
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("creating photo part: %w", err)
		}
		if _, err := part.Write(data); err != nil {
			return nil, "", fmt.Errorf("writing photo part: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart writer: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}
