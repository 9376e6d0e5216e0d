// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"os"
	"sync"

	"github.com/spf13/afero"
)

// FileReader lazily opens a file on the first call to Read.
type FileReader struct {
	fs   afero.Fs
	path string

	openOnce sync.Once
	openErr  error
	file     afero.File
}

// NewFileReader returns an io.ReadCloser for the file at path in fs.
// Errors opening the file are reported by Read.
func NewFileReader(fs afero.Fs, path string) *FileReader {
	return &FileReader{
		fs:   fs,
		path: path,
	}
}

// Read implements the io.Reader interface.
func (r *FileReader) Read(b []byte) (int, error) {
	r.openOnce.Do(func() {
		r.file, r.openErr = r.fs.Open(r.path)
	})
	if r.openErr != nil {
		return 0, r.openErr
	}
	if r.file == nil {
		return 0, os.ErrClosed
	}
	return r.file.Read(b)
}

// Close implements the io.Closer interface. Closing a reader which
// was never opened is a no-op.
func (r *FileReader) Close() error {
	if r.file == nil {
		return nil
	}

	err := r.file.Close()
	r.file = nil
	return err
}
