// Package publish writes project briefs as markdown files.
package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"interior-cli/internal/model"
)

type WriteOptions struct {
	Overwrite bool
}

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteProject writes <toDir>/projects/<id>.md.
func WriteProject(p model.Project, toDir string, opt WriteOptions) (WriteResult, error) {
	id := strings.TrimSpace(p.ID)
	if id == "" {
		return WriteResult{}, errors.New("missing project id")
	}
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return WriteResult{}, errors.New("invalid project id: " + id)
	}
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)

	outDir := filepath.Join(toDir, "projects")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return WriteResult{}, err
	}
	path := filepath.Join(outDir, id+".md")
	if err := writeFile(path, []byte(RenderProjectMarkdown(p)), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: []string{path}}, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
