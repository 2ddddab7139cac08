package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"sort"
	"strings"

	"interior-cli/internal/model"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// EncodeUpdate writes the update form to w and returns its content type.
//
// Text parts: the project id, every scalar field, every non-empty slot URL. File parts:
// one per replaced slot, named after the slot. A slot with a replacement file is sent as
// the file only, never as its old URL. Parts are ordered by key, files last.
func EncodeUpdate(w io.Writer, draft model.Project, files map[model.Slot]model.PendingFile) (string, error) {
	text := make(map[string]string, len(draft.Fields)+len(draft.Slots)+1)
	for k, v := range draft.Fields {
		text[k] = v
	}
	for s, u := range draft.Slots {
		if strings.TrimSpace(u) == "" {
			continue
		}
		text[string(s)] = u
	}
	if draft.ID != "" {
		text[model.IDKey] = draft.ID
	}

	slots := make([]model.Slot, 0, len(files))
	for s := range files {
		delete(text, string(s))
		slots = append(slots, s)
	}
	model.SortSlots(slots)

	keys := make([]string, 0, len(text))
	for k := range text {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	mw := multipart.NewWriter(w)
	for _, k := range keys {
		if err := mw.WriteField(k, text[k]); err != nil {
			return "", err
		}
	}
	for _, s := range slots {
		if err := writeFilePart(mw, s, files[s]); err != nil {
			return "", err
		}
	}
	if err := mw.Close(); err != nil {
		return "", err
	}
	return mw.FormDataContentType(), nil
}

func writeFilePart(mw *multipart.Writer, s model.Slot, f model.PendingFile) error {
	in, err := os.Open(f.Path)
	if err != nil {
		return fmt.Errorf("%s: %w", s, err)
	}
	defer in.Close()

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(string(s)), quoteEscaper.Replace(f.Name)))
	h.Set("Content-Type", f.ContentType())
	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, in); err != nil {
		return fmt.Errorf("%s: %w", s, err)
	}
	return nil
}
