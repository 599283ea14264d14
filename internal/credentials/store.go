package credentials

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Record is the persisted agent identity.
type Record struct {
	APIKey  string `json:"apiKey"`
	AgentID string `json:"agentId"`
}

// Store reads and writes the credential file at a fixed path.
type Store struct {
	path   string
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used to report ignored credential files.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// NewStore returns a Store backed by the file at path.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the credential file location.
func (s *Store) Path() string {
	return s.path
}

// Load returns the stored record. A missing, unreadable, malformed, or
// keyless file is reported as absent rather than as an error.
func (s *Store) Load() (Record, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Debug("ignoring unreadable credential file", "path", s.path, "error", err)
		}
		return Record{}, false
	}

	if problems := validate(data); len(problems) > 0 {
		s.logger.Debug("ignoring invalid credential file", "path", s.path, "problems", problems)
		return Record{}, false
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		s.logger.Debug("ignoring invalid credential file", "path", s.path, "error", err)
		return Record{}, false
	}
	return rec, true
}

// Save creates the containing directory if needed and overwrites the file
// with the indented record.
func (s *Store) Save(rec Record) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling credentials: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("writing credential file %s: %w", s.path, err)
	}
	return nil
}
