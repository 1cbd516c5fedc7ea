// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notation

import (
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"
)

// OutFile is a write handle for one output artifact. Writers receive it
// instead of a bare file so they can read logical metadata (the resolved
// "file_path", the template "dir_path") tagged by the dispatcher. Handles
// are opened and closed within a single write operation, never kept across
// job boundaries.
type OutFile struct {
	f    *os.File
	meta map[string]string
}

// MetaFilePath and MetaDirPath are the metadata keys the dispatcher tags.
const (
	MetaFilePath = "file_path"
	MetaDirPath  = "dir_path"
)

// CreateOutFile opens path for writing, creating parent directories as
// needed and truncating any existing file.
func CreateOutFile(path string) (*OutFile, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Errorf("creating output directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Errorf("creating output file %s: %w", path, err)
	}
	return &OutFile{f: f, meta: map[string]string{MetaFilePath: path}}, nil
}

// SetMeta associates a logical key with the handle for downstream writers.
func (o *OutFile) SetMeta(key, value string) {
	o.meta[key] = value
}

// Meta returns the value tagged for key, or "".
func (o *OutFile) Meta(key string) string {
	return o.meta[key]
}

// Name returns the path the handle was opened with.
func (o *OutFile) Name() string {
	return o.f.Name()
}

// Write implements io.Writer.
func (o *OutFile) Write(p []byte) (int, error) {
	return o.f.Write(p)
}

// Close flushes and releases the handle.
func (o *OutFile) Close() error {
	return o.f.Close()
}
