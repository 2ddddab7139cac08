package publish

import (
	"bytes"
	"sort"
	"strings"

	"interior-cli/internal/model"
)

// RenderProjectMarkdown renders a project brief: meta, description and file links.
func RenderProjectMarkdown(p model.Project) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	title := strings.TrimSpace(p.Title())
	if title == "" {
		title = "Untitled project"
	}
	writeLn("# " + title)
	writeLn("")

	writeLn("## Meta")
	writeLn("")
	writeLn("- ID: " + p.ID)
	for _, f := range model.FieldDefs() {
		if f.Name == model.FieldTitle || f.Name == model.FieldDescription {
			continue
		}
		if v := strings.TrimSpace(p.Get(f.Name)); v != "" {
			writeLn("- " + f.Label + ": " + oneLine(v))
		}
	}
	for _, k := range extraFieldNames(p) {
		if v := strings.TrimSpace(p.Fields[k]); v != "" {
			writeLn("- " + k + ": " + oneLine(v))
		}
	}
	writeLn("")

	if desc := strings.TrimSpace(p.Get(model.FieldDescription)); desc != "" {
		writeLn("## Description")
		writeLn("")
		writeLn(desc)
		writeLn("")
	}

	var files []string
	for _, d := range model.SlotDefs() {
		if u := strings.TrimSpace(p.SlotURL(d.Slot)); u != "" {
			files = append(files, "- ["+d.Label+"]("+u+")")
		}
	}
	if len(files) > 0 {
		writeLn("## Files")
		writeLn("")
		for _, ln := range files {
			writeLn(ln)
		}
		writeLn("")
	}

	return strings.TrimRight(buf.String(), "\n") + "\n"
}

// extraFieldNames lists scalar fields the server sent that have no display label.
func extraFieldNames(p model.Project) []string {
	known := map[string]bool{}
	for _, f := range model.FieldDefs() {
		known[f.Name] = true
	}
	var out []string
	for k := range p.Fields {
		if !known[k] {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
