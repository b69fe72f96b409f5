package store

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/goccy/go-json"
	"golang.org/x/sys/unix"

	"moviestats/internal/logging"
	"moviestats/internal/stats"
)

var (
	// ErrNotFound is returned by Load when no aggregate file exists yet.
	ErrNotFound = errors.New("statistics file not found")
	// ErrLocked is returned when another process holds the file lock.
	ErrLocked = errors.New("statistics file is locked by another process")
)

// ParseError reports an aggregate file that exists but cannot be used.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Store persists the aggregate statistics record at a fixed path.
type Store struct {
	path   string
	logger *slog.Logger
}

// New creates a store for path. The file is not touched until Save or Load.
func New(path string, logger *slog.Logger) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("statistics path required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Store{
		path:   path,
		logger: logging.NewComponentLogger(logger, "store"),
	}, nil
}

// Path returns the aggregate file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) lockPath() string {
	return s.path + ".lock"
}

// Save writes agg atomically, replacing any previous file. An exclusive lock
// on the sibling .lock file is held for the duration of the write.
func (s *Store) Save(agg *stats.Aggregate) error {
	if agg == nil {
		return errors.New("nil aggregate")
	}
	data, err := json.MarshalIndent(agg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal statistics: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create statistics directory: %w", err)
	}

	lock := flock.New(s.lockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return ErrLocked
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			s.logger.Warn("failed to release statistics lock", logging.Error(err))
		}
	}()

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	s.logger.Debug("saved statistics",
		logging.String("path", s.path),
		logging.Int("total_movies", agg.TotalMovies),
		logging.Int("bytes", len(data)))
	return nil
}

// Load reads and validates the aggregate file under a shared lock.
func (s *Store) Load() (*stats.Aggregate, error) {
	if _, err := os.Stat(s.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("stat statistics file: %w", err)
	}

	lock := flock.New(s.lockPath())
	ok, err := lock.TryRLock()
	switch {
	case err != nil && lockUnavailable(err):
		logging.WarnWithContext(s.logger, "reading statistics without shared lock", "store_lock_unavailable",
			logging.String("path", s.path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "make the statistics directory writable to enable locking"),
			logging.String(logging.FieldImpact, "a concurrent collect may replace the file while it is read"))
	case err != nil:
		return nil, fmt.Errorf("acquire shared lock: %w", err)
	case !ok:
		return nil, ErrLocked
	default:
		defer func() {
			if err := lock.Unlock(); err != nil {
				s.logger.Warn("failed to release statistics lock", logging.Error(err))
			}
		}()
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read statistics file: %w", err)
	}

	if trimmed := strings.TrimSpace(string(data)); trimmed == "" || trimmed == "null" {
		return nil, &ParseError{Path: s.path, Err: errors.New("file holds no statistics record")}
	}
	agg := stats.New()
	if err := json.Unmarshal(data, agg); err != nil {
		return nil, &ParseError{Path: s.path, Err: err}
	}
	if err := agg.Validate(); err != nil {
		return nil, &ParseError{Path: s.path, Err: err}
	}

	s.logger.Debug("loaded statistics",
		logging.String("path", s.path),
		logging.Int("total_movies", agg.TotalMovies))
	return agg, nil
}

// lockUnavailable reports whether the lock file cannot be created because the
// directory is not writable. Readers fall back to an unlocked read then; Save
// replaces the file by rename, so a reader never sees a partial write.
func lockUnavailable(err error) bool {
	return errors.Is(err, fs.ErrPermission) || errors.Is(err, unix.EROFS)
}
