package archive

import (
	"encoding/json"
	"strconv"
	"strings"
)

// File is one entry of an item's file listing. Every field besides Name is
// optional and the values come from an untrusted third party.
type File struct {
	Name   string `json:"name"`
	Format string `json:"format,omitempty"`
	// Size is nil when the service omitted it or sent something that is not
	// a non-negative integer.
	Size *int64 `json:"size,omitempty"`
}

// UnmarshalJSON accepts size as a JSON number or as a decimal string, which
// is how archive.org actually encodes it.
func (f *File) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name   json.RawMessage `json:"name"`
		Format json.RawMessage `json:"format"`
		Size   json.RawMessage `json:"size"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*f = File{
		Name:   looseString(raw.Name),
		Format: looseString(raw.Format),
		Size:   looseSize(raw.Size),
	}
	return nil
}

// looseString returns the value of a JSON string, or "" for anything else.
func looseString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

func looseSize(raw json.RawMessage) *int64 {
	if len(raw) == 0 {
		return nil
	}

	text := strings.TrimSpace(string(raw))
	if strings.HasPrefix(text, `"`) {
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return nil
		}
		text = strings.TrimSpace(s)
	}

	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

// Metadata is the subset of the metadata endpoint's response the viewer uses.
type Metadata struct {
	Files []File `json:"files"`
	// Dir and Server locate the item on archive.org's storage nodes; they
	// are informational only.
	Dir    string `json:"dir,omitempty"`
	Server string `json:"server,omitempty"`
}
