package messagelog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Record is one captured inbound message plus the metadata assigned on append.
type Record struct {
	ID         int    `json:"id"`
	ReceivedAt string `json:"received_at"`
	Data       any    `json:"data"`
}

// State names how the log document was found when it was read.
type State int

const (
	// StateLoaded means the document existed and decoded.
	StateLoaded State = iota
	// StateAbsent means no document exists yet.
	StateAbsent
	// StateCorrupt means a document exists but is not a JSON array of records.
	StateCorrupt
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateAbsent:
		return "absent"
	case StateCorrupt:
		return "corrupt"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Snapshot is the result of reading the log document.
// Records is never nil; absent and corrupt documents both yield an empty slice.
type Snapshot struct {
	Records []Record
	State   State
}

// Store keeps the ordered message log in a single JSON document.
// Every mutation rewrites the whole document. Operations are serialized
// within the process; separate processes sharing a file are last writer wins.
type Store struct {
	mu           sync.Mutex
	path         string
	retentionCap int
	now          func() time.Time
	logger       *zerolog.Logger
}

// NewStore creates a store backed by the document at path.
// A retentionCap greater than zero keeps only the most recent retentionCap records.
func NewStore(path string, retentionCap int, logger *zerolog.Logger) *Store {
	return &Store{
		path:         path,
		retentionCap: retentionCap,
		now:          time.Now,
		logger:       logger,
	}
}

// Path returns the location of the log document.
func (s *Store) Path() string {
	return s.path
}

// Load returns every record in append order.
func (s *Store) Load() ([]Record, error) {
	snap, err := s.Inspect()
	if err != nil {
		return nil, err
	}
	return snap.Records, nil
}

// Inspect reads the document and reports which recovery outcome applied.
func (s *Store) Inspect() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Append stores payload as a new record and returns it.
// The id is one more than the number of records already present; with a
// retention cap it is also kept above the newest surviving id so that ids
// stay unique once old records have been dropped.
func (s *Store) Append(payload any) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.read()
	if err != nil {
		return Record{}, err
	}
	records := snap.Records

	rec := Record{
		ID:         s.nextID(records),
		ReceivedAt: s.now().UTC().Format(time.RFC3339Nano),
		Data:       payload,
	}
	records = append(records, rec)
	if s.retentionCap > 0 && len(records) > s.retentionCap {
		records = records[len(records)-s.retentionCap:]
	}

	if err := s.write(records); err != nil {
		s.logger.Error().Err(err).Int("message_id", rec.ID).Str("path", s.path).Msg("Failed to persist message")
		return Record{}, err
	}
	return rec, nil
}

// Clear discards all history.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.write([]Record{}); err != nil {
		s.logger.Error().Err(err).Str("path", s.path).Msg("Failed to clear message log")
		return err
	}
	return nil
}

func (s *Store) nextID(records []Record) int {
	id := len(records) + 1
	if s.retentionCap > 0 && len(records) > 0 {
		if last := records[len(records)-1].ID; last >= id {
			id = last + 1
		}
	}
	return id
}

func (s *Store) read() (Snapshot, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Snapshot{Records: []Record{}, State: StateAbsent}, nil
		}
		return Snapshot{}, fmt.Errorf("%w %s: %w", ReadError, s.path, err)
	}

	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("Message log is not valid JSON, starting from an empty log")
		return Snapshot{Records: []Record{}, State: StateCorrupt}, nil
	}
	if records == nil {
		records = []Record{}
	}
	return Snapshot{Records: records, State: StateLoaded}, nil
}

// write replaces the document through a temp file in the same directory.
func (s *Store) write(records []Record) error {
	body, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding records: %w", WriteError, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w %s: %w", WriteError, s.path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // nolint:errcheck

	if _, err := tmp.Write(body); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w %s: %w", WriteError, s.path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w %s: %w", WriteError, s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w %s: %w", WriteError, s.path, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("%w %s: %w", WriteError, s.path, err)
	}
	return nil
}
