package interchange

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/matthewjhunter/longbox/internal/storage"
)

// ExportSequenced writes items with the sequenced header. Missing optional
// values are written as empty cells.
func ExportSequenced(w io.Writer, items []storage.SequencedItem) error {
	return write(w, SequencedHeader, len(items), func(i int) []string {
		it := items[i]
		story, year := "", ""
		if it.MainStory != nil {
			story = *it.MainStory
		}
		if it.Year != nil {
			year = strconv.Itoa(*it.Year)
		}
		return []string{strconv.Itoa(it.IssueNum), strconv.Itoa(it.VolNum), story, year}
	})
}

// ExportCategorized writes items with the categorized header. Event is
// written as "true" or "false"; the generated id is not exported.
func ExportCategorized(w io.Writer, items []storage.CategorizedItem) error {
	return write(w, CategorizedHeader, len(items), func(i int) []string {
		it := items[i]
		return []string{
			it.Title, it.Writer, it.Artist, it.Collection, it.Publisher,
			it.Issues, it.MainCharacter, strconv.FormatBool(it.IsEvent),
			strconv.Itoa(it.StoryYear), it.Category,
		}
	})
}

// ExportNarrative writes items with the narrative header.
func ExportNarrative(w io.Writer, items []storage.NarrativeLogItem) error {
	return write(w, NarrativeHeader, len(items), func(i int) []string {
		it := items[i]
		return []string{it.StoryName, it.SeriesName, strconv.Itoa(it.Year)}
	})
}

func write(w io.Writer, header []string, n int, row func(int) []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := cw.Write(row(i)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
