package projectdata

import (
	"bytes"
	"encoding/json"
)

// decode unmarshals raw into a new T. Empty input and JSON null both yield nil.
func decode[T any](raw []byte) (*T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// encode marshals v. A nil v yields nil so the column is stored as SQL NULL.
func encode[T any](v *T) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func DecodeSpecifications(raw []byte) (*Specifications, error) { return decode[Specifications](raw) }
func DecodeImages(raw []byte) (*Images, error)                 { return decode[Images](raw) }
func DecodeDocuments(raw []byte) (*Documents, error)           { return decode[Documents](raw) }
func DecodeNotes(raw []byte) (*Notes, error)                   { return decode[Notes](raw) }
func DecodeContactNotes(raw []byte) (*ContactNotes, error)     { return decode[ContactNotes](raw) }

func EncodeSpecifications(v *Specifications) ([]byte, error) { return encode(v) }
func EncodeImages(v *Images) ([]byte, error)                 { return encode(v) }
func EncodeDocuments(v *Documents) ([]byte, error)           { return encode(v) }
func EncodeNotes(v *Notes) ([]byte, error)                   { return encode(v) }
func EncodeContactNotes(v *ContactNotes) ([]byte, error)     { return encode(v) }
