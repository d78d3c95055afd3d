package longbox

import (
	"github.com/matthewjhunter/longbox/internal/errs"
	"github.com/matthewjhunter/longbox/internal/filter"
	"github.com/matthewjhunter/longbox/internal/interchange"
	"github.com/matthewjhunter/longbox/internal/storage"
)

// Config configures a Collection. See storage.Config for the file format.
type Config = storage.Config

// Records.
type (
	SequencedItem    = storage.SequencedItem
	CategorizedItem  = storage.CategorizedItem
	NarrativeLogItem = storage.NarrativeLogItem
	Stats            = storage.Stats
	QueryResult      = storage.QueryResult
)

// Search criteria. Unset (nil) fields do not constrain the result.
type (
	Range               = filter.Range
	SequencedFields     = filter.SequencedFields
	SequencedCriteria   = filter.SequencedCriteria
	CategorizedFields   = filter.CategorizedFields
	CategorizedCriteria = filter.CategorizedCriteria
	NarrativeFields     = filter.NarrativeFields
	NarrativeCriteria   = filter.NarrativeCriteria
)

// Interchange.
type (
	Kind         = interchange.Kind
	ImportResult = interchange.Result
)

const (
	KindSequenced   = interchange.KindSequenced
	KindCategorized = interchange.KindCategorized
	KindNarrative   = interchange.KindNarrative
)

// Errors, matched with errors.As.
type (
	ValidationError = errs.ValidationError
	StorageError    = errs.StorageError
	FormatError     = errs.FormatError
	ImportRowError  = errs.ImportRowError
)

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return storage.DefaultConfig()
}

// LoadConfig reads a YAML or TOML config file over the defaults.
func LoadConfig(path string) (*Config, error) {
	return storage.LoadConfig(path)
}

// ParseRange parses "start-end" into a Range.
func ParseRange(field, s string) (Range, error) {
	return filter.ParseRange(field, s)
}

// ParseKind maps "sequenced", "categorized" or "narrative" to a Kind.
func ParseKind(s string) (Kind, error) {
	return interchange.ParseKind(s)
}
