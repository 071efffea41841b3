package store

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/jonathan/website-cloner/internal/schemas"
)

// JSONStore persists the full record map as one JSON document. Every read
// loads the whole file; every write rewrites it. The file is created on the
// first Put if absent.
type JSONStore struct {
	path string
	mu   sync.Mutex
}

// NewJSON returns a JSONStore backed by the document at path.
func NewJSON(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Get(_ context.Context, id string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.load()
	rec, ok := records[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *JSONStore) Put(_ context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.load()
	records[rec.ID] = *rec
	return s.save(records)
}

func (s *JSONStore) List(_ context.Context) (map[string]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(), nil
}

func (s *JSONStore) Close() error {
	return nil
}

// load reads the whole document. A missing file or unparseable content yields
// an empty map; a document that parses but fails schema validation is used
// anyway with a warning.
func (s *JSONStore) load() map[string]Record {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			zap.L().Warn("failed to read store file", zap.String("path", s.path), zap.Error(err))
		}
		return map[string]Record{}
	}

	var records map[string]Record
	if err := json.Unmarshal(data, &records); err != nil {
		zap.L().Warn("store file is not valid JSON, starting empty",
			zap.String("path", s.path),
			zap.Error(err),
		)
		return map[string]Record{}
	}

	if err := schemas.ValidateJSONString(schemas.StoreDocument, string(data)); err != nil {
		zap.L().Warn("store file does not match the expected schema",
			zap.String("path", s.path),
			zap.Error(err),
		)
	}

	if records == nil {
		records = map[string]Record{}
	}
	return records
}

func (s *JSONStore) save(records map[string]Record) error {
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return eris.Wrap(err, "store: marshal records")
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return eris.Wrapf(err, "store: write %s", s.path)
	}
	return nil
}
