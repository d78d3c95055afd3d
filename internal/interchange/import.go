package interchange

import (
	"encoding/csv"
	"errors"
	"fmt"
	"html"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/unicode/norm"

	"github.com/matthewjhunter/longbox/internal/errs"
	"github.com/matthewjhunter/longbox/internal/storage"
)

// Sink receives imported records one at a time. *storage.Store satisfies it.
type Sink interface {
	AddSequenced(item storage.SequencedItem) error
	AddCategorized(item storage.CategorizedItem) (int64, error)
	AddNarrative(item storage.NarrativeLogItem) (int64, error)
}

// Result summarizes an import. Row failures are collected here rather than
// returned as the import error.
type Result struct {
	Kind     Kind                   `json:"kind"`
	Imported int                    `json:"imported"`
	Failed   []*errs.ImportRowError `json:"-"`
}

// Importer parses interchange files into a Sink.
type Importer struct {
	sink   Sink
	policy *bluemonday.Policy
}

// NewImporter creates an importer writing to sink. When sanitize is set,
// markup is stripped from free-text cells.
func NewImporter(sink Sink, sanitize bool) *Importer {
	im := &Importer{sink: sink}
	if sanitize {
		im.policy = bluemonday.StrictPolicy()
	}
	return im
}

// Import reads a whole file from r. It fails only if the header cannot be
// read or is not recognized; each data row is inserted independently and a
// bad row is skipped and recorded in Result.Failed.
func (im *Importer) Import(r io.Reader) (*Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &errs.FormatError{}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	kind, err := Detect(header)
	if err != nil {
		return nil, err
	}

	insert := im.rowFunc(kind)
	result := &Result{Kind: kind}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if !errors.As(err, &perr) {
				return result, fmt.Errorf("failed to read rows: %w", err)
			}
			im.fail(result, perr.StartLine, perr.Err)
			continue
		}
		line, _ := cr.FieldPos(0)

		if len(record) != len(kind.Header()) {
			im.fail(result, line, fmt.Errorf("expected %d fields, got %d", len(kind.Header()), len(record)))
			continue
		}
		if err := insert(record); err != nil {
			im.fail(result, line, err)
			continue
		}
		result.Imported++
	}
	return result, nil
}

func (im *Importer) fail(result *Result, line int, err error) {
	rowErr := &errs.ImportRowError{Line: line, Err: err}
	log.Printf("longbox: import %s: skipped %v", result.Kind, rowErr)
	result.Failed = append(result.Failed, rowErr)
}

func (im *Importer) rowFunc(kind Kind) func([]string) error {
	switch kind {
	case KindSequenced:
		return im.sequenced
	case KindCategorized:
		return im.categorized
	default:
		return im.narrative
	}
}

func (im *Importer) sequenced(rec []string) error {
	issue, err := requiredInt("Issue num", rec[0])
	if err != nil {
		return err
	}
	vol, err := requiredInt("Vol num", rec[1])
	if err != nil {
		return err
	}
	item := storage.SequencedItem{IssueNum: issue, VolNum: vol}
	if story := im.text(rec[2]); story != "" {
		item.MainStory = &story
	}
	if strings.TrimSpace(rec[3]) != "" {
		year, err := requiredInt("Year", rec[3])
		if err != nil {
			return err
		}
		item.Year = &year
	}
	return im.sink.AddSequenced(item)
}

func (im *Importer) categorized(rec []string) error {
	year, err := requiredInt("Story Year", rec[8])
	if err != nil {
		return err
	}
	_, err = im.sink.AddCategorized(storage.CategorizedItem{
		Title:         im.text(rec[0]),
		Writer:        im.text(rec[1]),
		Artist:        im.text(rec[2]),
		Collection:    im.text(rec[3]),
		Publisher:     im.text(rec[4]),
		Issues:        im.text(rec[5]),
		MainCharacter: im.text(rec[6]),
		IsEvent:       strings.EqualFold(strings.TrimSpace(rec[7]), "true"),
		StoryYear:     year,
		Category:      im.text(rec[9]),
	})
	return err
}

func (im *Importer) narrative(rec []string) error {
	year, err := requiredInt("Year", rec[2])
	if err != nil {
		return err
	}
	_, err = im.sink.AddNarrative(storage.NarrativeLogItem{
		StoryName:  im.text(rec[0]),
		SeriesName: im.text(rec[1]),
		Year:       year,
	})
	return err
}

// text cleans a free-text cell: trimmed, NFC-normalized and, if enabled,
// stripped of markup. StrictPolicy escapes entities, so they are unescaped
// again afterwards.
func (im *Importer) text(s string) string {
	s = norm.NFC.String(strings.TrimSpace(s))
	if im.policy != nil {
		s = html.UnescapeString(im.policy.Sanitize(s))
	}
	return s
}

func requiredInt(field, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errs.Invalid(field, s, "not a number")
	}
	return n, nil
}
