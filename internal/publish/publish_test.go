package publish

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"interior-cli/internal/model"
)

func villa() model.Project {
	return model.Project{
		ID: "65a1f0c2e4b0a1b2c3d4e5f6",
		Fields: map[string]string{
			model.FieldTitle:       "Villa A",
			model.FieldDescription: "Open plan **living**.",
			model.FieldClientName:  "Nora",
			model.FieldDate:        "",
			"budget":               "120000",
		},
		Slots: map[model.Slot]string{
			model.FloorPlan1: "https://cdn.example/fp1.png",
			model.Section1:   "",
		},
	}
}

func TestRenderProjectMarkdown_Sections(t *testing.T) {
	t.Parallel()

	md := RenderProjectMarkdown(villa())
	for _, want := range []string{
		"# Villa A\n",
		"- ID: 65a1f0c2e4b0a1b2c3d4e5f6",
		"- Client: Nora",
		"- budget: 120000",
		"## Description\n\nOpen plan **living**.",
		"- [Floor Plan 1](https://cdn.example/fp1.png)",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("expected %q in:\n%s", want, md)
		}
	}
	if strings.Contains(md, "Section 1") || strings.Contains(md, "- Date:") {
		t.Fatalf("empty values should be omitted:\n%s", md)
	}
}

func TestRenderProjectMarkdown_NoFilesNoDescription(t *testing.T) {
	t.Parallel()

	md := RenderProjectMarkdown(model.Project{ID: "p1"})
	if !strings.HasPrefix(md, "# Untitled project\n") {
		t.Fatalf("unexpected header:\n%s", md)
	}
	if strings.Contains(md, "## Files") || strings.Contains(md, "## Description") {
		t.Fatalf("unexpected sections:\n%s", md)
	}
}

func TestWriteProject_WritesAndRefusesOverwrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	res, err := WriteProject(villa(), dir, WriteOptions{})
	if err != nil {
		t.Fatalf("WriteProject: %v", err)
	}
	want := filepath.Join(dir, "projects", "65a1f0c2e4b0a1b2c3d4e5f6.md")
	if len(res.Written) != 1 || res.Written[0] != want {
		t.Fatalf("unexpected result: %#v", res)
	}
	b, err := os.ReadFile(want)
	if err != nil || !strings.HasPrefix(string(b), "# Villa A") {
		t.Fatalf("read %s: %v %q", want, err, b)
	}

	if _, err := WriteProject(villa(), dir, WriteOptions{}); err == nil {
		t.Fatalf("expected exists error")
	}
	if _, err := WriteProject(villa(), dir, WriteOptions{Overwrite: true}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
}

func TestWriteProject_Rejects(t *testing.T) {
	t.Parallel()

	if _, err := WriteProject(model.Project{}, t.TempDir(), WriteOptions{}); err == nil {
		t.Fatalf("expected missing id error")
	}
	if _, err := WriteProject(model.Project{ID: "../x"}, t.TempDir(), WriteOptions{}); err == nil {
		t.Fatalf("expected invalid id error")
	}
	if _, err := WriteProject(villa(), " ", WriteOptions{}); err == nil {
		t.Fatalf("expected missing --to error")
	}
}
