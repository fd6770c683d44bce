package codec

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/usenativ/nativ-go/pkg/api"
)

// FileField is the multipart field name carrying file payloads.
const FileField = "file"

// defaultFileName is used for payloads that arrive without a name.
const defaultFileName = "image.png"

// File is a binary payload sent as a multipart upload.
type File struct {
	Name        string
	Data        []byte
	ContentType string
}

// FileFromPath reads the file at path.
func FileFromPath(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	name := filepath.Base(path)
	return &File{Name: name, Data: data, ContentType: guessContentType(name, data)}, nil
}

// FileFromBytes wraps raw bytes under the name "image.png".
func FileFromBytes(data []byte) *File {
	return &File{Name: defaultFileName, Data: data, ContentType: guessContentType(defaultFileName, data)}
}

// FileFromReader reads r to the end. An empty name defaults to "image.png".
func FileFromReader(name string, r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read file payload: %w", err)
	}
	if name == "" {
		name = defaultFileName
	}
	name = filepath.Base(name)
	return &File{Name: name, Data: data, ContentType: guessContentType(name, data)}, nil
}

// guessContentType tries the extension first, then sniffs the payload.
func guessContentType(name string, data []byte) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); ct != "" {
		if mt, _, err := mime.ParseMediaType(ct); err == nil {
			return mt
		}
		return ct
	}
	if len(data) > 0 {
		if mt := mimetype.Detect(data); mt != nil {
			return mt.String()
		}
	}
	return api.ContentTypeOctetStream
}
