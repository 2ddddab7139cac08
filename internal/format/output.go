package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"interior-cli/internal/model"
)

// Write writes output in the requested format.
//
// Supported formats:
// - json (default): {"data": v}
// - text: aligned key/value lines for projects and slot lists
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "json":
		return WriteJSON(w, envelope{Data: v}, pretty)
	case "text":
		return WriteText(w, v)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

type envelope struct {
	Data any `json:"data"`
}

// WriteJSON writes strict JSON output for CLI commands.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

// WriteText renders v for a human. Types without a text layout fall back to indented
// JSON.
func WriteText(w io.Writer, v any) error {
	switch x := v.(type) {
	case model.Project:
		return writeProject(w, x)
	case *model.Project:
		if x == nil {
			return nil
		}
		return writeProject(w, *x)
	case []model.SlotDef:
		return writeSlots(w, x)
	case string:
		_, err := fmt.Fprintln(w, x)
		return err
	default:
		return WriteJSON(w, v, true)
	}
}

func writeProject(w io.Writer, p model.Project) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", dash(p.ID))

	known := map[string]bool{}
	for _, f := range model.FieldDefs() {
		known[f.Name] = true
		fmt.Fprintf(tw, "%s:\t%s\n", f.Label, dash(oneLine(p.Get(f.Name))))
	}
	for _, k := range p.FieldNames() {
		if known[k] {
			continue
		}
		fmt.Fprintf(tw, "%s:\t%s\n", k, dash(oneLine(p.Get(k))))
	}

	fmt.Fprintln(tw, "\t")
	for _, d := range model.SlotDefs() {
		fmt.Fprintf(tw, "%s:\t%s\n", d.Label, dash(p.SlotURL(d.Slot)))
	}
	return tw.Flush()
}

func writeSlots(w io.Writer, defs []model.SlotDef) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, d := range defs {
		fmt.Fprintf(tw, "%s\t%s\n", d.Slot, d.Label)
	}
	return tw.Flush()
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// oneLine folds multi-line values (descriptions) so columns stay aligned.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
