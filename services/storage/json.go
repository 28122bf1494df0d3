package storage

import (
	"bytes"
	"encoding/json"
	"os"

	"sjsage522/flyerworker/internal/flyer"
	"sjsage522/flyerworker/pkg/errors"
)

// JSONFileStore writes a parsed flyer collection to a JSON file
type JSONFileStore struct {
	path string
}

// NewJSONFileStore creates a store writing to the given file path
func NewJSONFileStore(path string) *JSONFileStore {
	return &JSONFileStore{path: path}
}

// Write writes the records as a UTF-8 JSON array, replacing any
// previous file content. An empty run produces "[]", not "null".
func (s *JSONFileStore) Write(records []flyer.FlyerRecord) error {
	if records == nil {
		records = []flyer.FlyerRecord{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(records); err != nil {
		return errors.NewPersistence("failed to encode records", err)
	}

	if err := os.WriteFile(s.path, buf.Bytes(), 0644); err != nil {
		return errors.NewPersistence("failed to write "+s.path, err)
	}

	return nil
}

// Path returns the output file path
func (s *JSONFileStore) Path() string {
	return s.path
}
