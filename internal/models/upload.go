package models

import (
	"bytes"
	"io"
)

// ImageFile is a file the user selected for upload.
type ImageFile interface {
	Name() string
	Open() (io.ReadCloser, error)
}

// Payload is an image ready to be inlined into a model request.
type Payload struct {
	Base64   string
	MIMEType string
}

// MemoryFile is an ImageFile whose content was fully received with the form.
type MemoryFile struct {
	name string
	data []byte
}

func NewMemoryFile(name string, data []byte) *MemoryFile {
	return &MemoryFile{name: name, data: data}
}

func (f *MemoryFile) Name() string { return f.name }

func (f *MemoryFile) Size() int { return len(f.data) }

func (f *MemoryFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.data)), nil
}
