package model

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const DefaultMaxUploadBytes int64 = 50 * 1024 * 1024 // 50MB

// PendingFile is a local file picked to replace a slot, not yet uploaded.
type PendingFile struct {
	Path    string    `json:"path"`
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"modTime"`
}

// StatFile validates path as an uploadable file and describes it.
func StatFile(path string, maxBytes int64) (PendingFile, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return PendingFile{}, errors.New("file: missing path")
	}
	path = filepath.Clean(path)
	st, err := os.Stat(path)
	if err != nil {
		return PendingFile{}, err
	}
	if st.IsDir() {
		return PendingFile{}, fmt.Errorf("file: %s is a directory", path)
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	if st.Size() > maxBytes {
		return PendingFile{}, fmt.Errorf("file: too large (%d bytes > %d bytes)", st.Size(), maxBytes)
	}

	name := filepath.Base(path)
	if strings.TrimSpace(name) == "" || name == "." || name == string(filepath.Separator) {
		name = "upload"
	}
	return PendingFile{
		Path:    path,
		Name:    name,
		Size:    st.Size(),
		ModTime: st.ModTime(),
	}, nil
}

// ContentType guesses from the file extension.
func (f PendingFile) ContentType() string {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(f.Name)))
	if ext != "" {
		if t := mime.TypeByExtension(ext); t != "" {
			return t
		}
	}
	return "application/octet-stream"
}
