// Package interchange reads and writes the CSV files used to move a
// collection in and out of the store. The record kind of a file is decided
// by its header row alone.
package interchange

import (
	"slices"
	"strings"

	"github.com/matthewjhunter/longbox/internal/errs"
)

// Kind identifies which record kind a file holds.
type Kind string

const (
	KindSequenced   Kind = "sequenced"
	KindCategorized Kind = "categorized"
	KindNarrative   Kind = "narrative"
)

// Canonical header rows. Matching is exact, case- and order-sensitive.
var (
	SequencedHeader   = []string{"Issue num", "Vol num", "Main Story", "Year"}
	CategorizedHeader = []string{"Title", "Writer", "Artist", "Collection", "Publisher", "Issues", "Main Character", "Event", "Story Year", "Category"}
	NarrativeHeader   = []string{"Story Name", "Series Name", "Year"}
)

// ParseKind maps a user-supplied name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindSequenced:
		return KindSequenced, nil
	case KindCategorized:
		return KindCategorized, nil
	case KindNarrative:
		return KindNarrative, nil
	}
	return "", errs.Invalid("kind", s, "must be sequenced, categorized or narrative")
}

// Header returns the canonical header for k.
func (k Kind) Header() []string {
	switch k {
	case KindSequenced:
		return SequencedHeader
	case KindCategorized:
		return CategorizedHeader
	case KindNarrative:
		return NarrativeHeader
	}
	return nil
}

// Detect returns the kind whose canonical header equals header. A leading
// UTF-8 byte order mark is ignored.
func Detect(header []string) (Kind, error) {
	h := slices.Clone(header)
	if len(h) > 0 {
		h[0] = strings.TrimPrefix(h[0], "\ufeff")
	}
	for _, k := range []Kind{KindSequenced, KindCategorized, KindNarrative} {
		if slices.Equal(h, k.Header()) {
			return k, nil
		}
	}
	return "", &errs.FormatError{Header: header}
}
