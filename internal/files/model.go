package files

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Type is the kind of a file record.
type Type string

const (
	TypeFolder Type = "folder"
	TypeFile   Type = "file"
	TypeImage  Type = "image"
)

// Valid reports whether t is one of the known types.
func (t Type) Valid() bool {
	switch t {
	case TypeFolder, TypeFile, TypeImage:
		return true
	}
	return false
}

// ParentRef is the id of a parent folder. The zero value is the root.
//
// In JSON the root is the number 0; any other parent is its id string.
// Decoding accepts 0, "0", "" and null as the root.
type ParentRef string

// Root is the parent of top-level files.
const Root ParentRef = ""

func (p ParentRef) IsRoot() bool {
	return p == Root || p == "0"
}

func (p ParentRef) String() string {
	if p.IsRoot() {
		return "0"
	}
	return string(p)
}

func (p ParentRef) MarshalJSON() ([]byte, error) {
	if p.IsRoot() {
		return []byte("0"), nil
	}
	return json.Marshal(string(p))
}

func (p *ParentRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*p = Root
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = ParentRef(s)
	default:
		n, err := strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			return fmt.Errorf("files: parentId must be a string or 0: %w", err)
		}
		*p = ParentRef(strconv.FormatInt(n, 10))
	}
	if p.IsRoot() {
		*p = Root
	}
	return nil
}

// File is a metadata record.
type File struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Type      Type      `json:"type"`
	IsPublic  bool      `json:"isPublic"`
	ParentID  ParentRef `json:"parentId"`
	LocalPath *string   `json:"localPath"`
}

// HasContent reports whether the record points at stored bytes.
func (f *File) HasContent() bool {
	return f.Type != TypeFolder && f.LocalPath != nil
}
