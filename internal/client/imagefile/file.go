// Package imagefile validates upload candidates and encodes them for JSON
// transport. Validation looks only at the declared MIME type and size; the
// content is never sniffed.
package imagefile

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// File is an upload candidate.
type File interface {
	// Name is the base file name sent to the backend.
	Name() string
	// Type is the declared MIME type.
	Type() string
	// Size is the declared size in bytes.
	Size() int64
	// Open returns a reader over the full contents.
	Open() (io.ReadCloser, error)
}

type localFile struct {
	path     string
	name     string
	mimeType string
	size     int64
}

// FromPath describes a file on disk. The declared type is derived from the
// file extension, the way a browser file picker labels files.
func FromPath(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	mimeType, _, _ = strings.Cut(mimeType, ";")

	return &localFile{
		path:     path,
		name:     filepath.Base(path),
		mimeType: strings.TrimSpace(mimeType),
		size:     info.Size(),
	}, nil
}

func (f *localFile) Name() string { return f.name }
func (f *localFile) Type() string { return f.mimeType }
func (f *localFile) Size() int64  { return f.size }

func (f *localFile) Open() (io.ReadCloser, error) {
	return os.Open(f.path)
}

type memFile struct {
	name     string
	mimeType string
	data     []byte
}

// FromBytes describes an in-memory file with an explicit declared type.
func FromBytes(name, mimeType string, data []byte) File {
	return &memFile{name: name, mimeType: mimeType, data: data}
}

func (f *memFile) Name() string { return f.name }
func (f *memFile) Type() string { return f.mimeType }
func (f *memFile) Size() int64  { return int64(len(f.data)) }

func (f *memFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

// TitleFromFileName strips the extension from name; it is the default
// title offered for a new upload.
func TitleFromFileName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
