package longbox

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/matthewjhunter/longbox/internal/errs"
	"github.com/matthewjhunter/longbox/internal/filter"
	"github.com/matthewjhunter/longbox/internal/interchange"
	"github.com/matthewjhunter/longbox/internal/storage"
)

var errNotOpen = errors.New("no database is open")

// Collection is the public API for a comic collection. It owns the single
// open store and wires the interchange layer to it.
//
// A Collection is not safe for concurrent use.
type Collection struct {
	store  *storage.Store
	config *Config
}

// Open opens the collection database named by cfg, creating it if needed.
// A nil cfg uses DefaultConfig.
func Open(cfg *Config) (*Collection, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	store, err := storage.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &Collection{store: store, config: cfg}, nil
}

// Close closes the underlying store. Closing twice is harmless.
func (c *Collection) Close() error {
	if c.store == nil {
		return nil
	}
	err := c.store.Close()
	c.store = nil
	return err
}

// Path returns the absolute path of the open database, or "" if none is open.
func (c *Collection) Path() string {
	if c.store == nil {
		return ""
	}
	return c.store.Path()
}

// Rebind closes the current database and opens the one at path. If opening
// fails the collection is left without a store and every operation returns
// a StorageError until a later Rebind succeeds.
func (c *Collection) Rebind(path string) error {
	old := c.Path()
	if err := c.Close(); err != nil {
		return errs.Storage("failed to close database", err)
	}
	store, err := storage.Open(path)
	if err != nil {
		log.Printf("longbox: rebind %s failed: %v", path, err)
		return err
	}
	c.store = store
	c.config.Database.Path = store.Path()
	log.Printf("longbox: rebound %s -> %s", old, store.Path())
	return nil
}

// Reset deletes the database file and recreates it empty at the same path.
func (c *Collection) Reset() error {
	path := c.Path()
	if path == "" {
		path = c.config.Database.Path
	}
	if err := c.Close(); err != nil {
		return errs.Storage("failed to close database", err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errs.Storage("failed to remove database", err)
	}
	store, err := storage.Open(path)
	if err != nil {
		return err
	}
	c.store = store
	log.Printf("longbox: reset %s", store.Path())
	return nil
}

// Backup writes a copy of the open database to dest and returns the path
// written. An empty dest picks a timestamped name in the configured backup
// directory, or next to the database when none is configured.
func (c *Collection) Backup(dest string) (string, error) {
	s, err := c.db()
	if err != nil {
		return "", err
	}
	if dest == "" {
		dir := c.config.Database.BackupDir
		if dir == "" {
			dir = filepath.Dir(s.Path())
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", errs.Storage("failed to create backup directory", err)
		}
		dest = filepath.Join(dir, "longbox-"+time.Now().Format("20060102-150405")+".db")
	}
	if err := s.Backup(dest); err != nil {
		return "", err
	}
	log.Printf("longbox: backed up %s to %s", s.Path(), dest)
	return dest, nil
}

// Import reads an interchange file into the collection. The record kind is
// taken from the file's header. Rows that fail are skipped and listed in
// the result.
func (c *Collection) Import(path string) (*ImportResult, error) {
	s, err := c.db()
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	res, err := interchange.NewImporter(s, c.config.Import.Sanitize).Import(f)
	if err != nil {
		return nil, err
	}
	log.Printf("longbox: imported %d %s record(s) from %s (%d skipped)",
		res.Imported, res.Kind, path, len(res.Failed))
	return res, nil
}

// Export writes every record of the given kind to path, replacing the file
// if it exists. It returns the number of records written.
func (c *Collection) Export(kind Kind, path string) (int, error) {
	s, err := c.db()
	if err != nil {
		return 0, err
	}

	var (
		n     int
		write func(*os.File) error
	)
	switch kind {
	case KindSequenced:
		items, err := s.SearchSequenced(filter.SequencedFields{})
		if err != nil {
			return 0, err
		}
		n = len(items)
		write = func(f *os.File) error { return interchange.ExportSequenced(f, items) }
	case KindCategorized:
		items, err := s.SearchCategorized(filter.CategorizedFields{})
		if err != nil {
			return 0, err
		}
		n = len(items)
		write = func(f *os.File) error { return interchange.ExportCategorized(f, items) }
	case KindNarrative:
		items, err := s.SearchNarrative(filter.NarrativeFields{})
		if err != nil {
			return 0, err
		}
		n = len(items)
		write = func(f *os.File) error { return interchange.ExportNarrative(f, items) }
	default:
		return 0, errs.Invalid("kind", string(kind), "must be sequenced, categorized or narrative")
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create export file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return 0, fmt.Errorf("write export file: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("write export file: %w", err)
	}
	return n, nil
}

// db returns the open store, or a StorageError after a failed Rebind.
func (c *Collection) db() (*storage.Store, error) {
	if c.store == nil {
		return nil, errs.Storage("collection", errNotOpen)
	}
	return c.store, nil
}

// Stats returns the number of records of each kind.
func (c *Collection) Stats() (Stats, error) {
	s, err := c.db()
	if err != nil {
		return Stats{}, err
	}
	return s.Stats()
}

// RawQuery runs an arbitrary SQL statement against the open database.
func (c *Collection) RawQuery(query string, args ...any) (*QueryResult, error) {
	s, err := c.db()
	if err != nil {
		return nil, err
	}
	return s.RawQuery(query, args...)
}

// Sequenced items.

// AddSequenced inserts item. A duplicate (issue, volume) pair is a StorageError.
func (c *Collection) AddSequenced(item SequencedItem) error {
	s, err := c.db()
	if err != nil {
		return err
	}
	return s.AddSequenced(item)
}

// DeleteSequenced removes the issue with the given key, if present.
func (c *Collection) DeleteSequenced(issueNum, volNum int) error {
	s, err := c.db()
	if err != nil {
		return err
	}
	return s.DeleteSequenced(issueNum, volNum)
}

// UpdateSequenced overwrites the story and year of the issue keyed by item.
func (c *Collection) UpdateSequenced(item SequencedItem) error {
	s, err := c.db()
	if err != nil {
		return err
	}
	return s.UpdateSequenced(item)
}

// SearchSequenced returns the issues exactly matching every set field.
func (c *Collection) SearchSequenced(f SequencedFields) ([]SequencedItem, error) {
	s, err := c.db()
	if err != nil {
		return nil, err
	}
	return s.SearchSequenced(f)
}

// AdvancedSearchSequenced returns the issues matching crit.
func (c *Collection) AdvancedSearchSequenced(crit SequencedCriteria) ([]SequencedItem, error) {
	s, err := c.db()
	if err != nil {
		return nil, err
	}
	return s.AdvancedSearchSequenced(crit)
}

// FindMissingInRange lists the issue numbers in [start, end] with no
// matching sequenced item.
func (c *Collection) FindMissingInRange(start, end int, crit SequencedCriteria) ([]int, error) {
	s, err := c.db()
	if err != nil {
		return nil, err
	}
	return s.FindMissingInRange(start, end, crit)
}

// Categorized items.

// AddCategorized inserts item and returns its new id.
func (c *Collection) AddCategorized(item CategorizedItem) (int64, error) {
	s, err := c.db()
	if err != nil {
		return 0, err
	}
	return s.AddCategorized(item)
}

// DeleteCategorized removes the edition with the given id, if any.
func (c *Collection) DeleteCategorized(id int64) error {
	s, err := c.db()
	if err != nil {
		return err
	}
	return s.DeleteCategorized(id)
}

// UpdateCategorized overwrites every attribute of the edition with item.ID.
func (c *Collection) UpdateCategorized(item CategorizedItem) error {
	s, err := c.db()
	if err != nil {
		return err
	}
	return s.UpdateCategorized(item)
}

// SearchCategorized returns the editions exactly matching every set field.
func (c *Collection) SearchCategorized(f CategorizedFields) ([]CategorizedItem, error) {
	s, err := c.db()
	if err != nil {
		return nil, err
	}
	return s.SearchCategorized(f)
}

// AdvancedSearchCategorized returns the editions matching crit.
func (c *Collection) AdvancedSearchCategorized(crit CategorizedCriteria) ([]CategorizedItem, error) {
	s, err := c.db()
	if err != nil {
		return nil, err
	}
	return s.AdvancedSearchCategorized(crit)
}

// DistinctCategories lists every category in use, sorted.
func (c *Collection) DistinctCategories() ([]string, error) {
	s, err := c.db()
	if err != nil {
		return nil, err
	}
	return s.DistinctCategories()
}

// Narrative log items.

// AddNarrative inserts item and returns its new id.
func (c *Collection) AddNarrative(item NarrativeLogItem) (int64, error) {
	s, err := c.db()
	if err != nil {
		return 0, err
	}
	return s.AddNarrative(item)
}

// DeleteNarrative removes the story with the given id, if any.
func (c *Collection) DeleteNarrative(id int64) error {
	s, err := c.db()
	if err != nil {
		return err
	}
	return s.DeleteNarrative(id)
}

// UpdateNarrative overwrites every attribute of the story with item.ID.
func (c *Collection) UpdateNarrative(item NarrativeLogItem) error {
	s, err := c.db()
	if err != nil {
		return err
	}
	return s.UpdateNarrative(item)
}

// SearchNarrative returns the stories exactly matching every set field.
func (c *Collection) SearchNarrative(f NarrativeFields) ([]NarrativeLogItem, error) {
	s, err := c.db()
	if err != nil {
		return nil, err
	}
	return s.SearchNarrative(f)
}

// AdvancedSearchNarrative returns the stories matching crit.
func (c *Collection) AdvancedSearchNarrative(crit NarrativeCriteria) ([]NarrativeLogItem, error) {
	s, err := c.db()
	if err != nil {
		return nil, err
	}
	return s.AdvancedSearchNarrative(crit)
}
