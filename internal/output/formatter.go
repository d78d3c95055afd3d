package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matthewjhunter/longbox/internal/filter"
	"github.com/matthewjhunter/longbox/internal/interchange"
	"github.com/matthewjhunter/longbox/internal/storage"
)

type Format string

const (
	FormatJSON  Format = "json"
	FormatText  Format = "text"
	FormatHuman Format = "human"
)

// ParseFormat validates a format name from a flag or config file.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatText, FormatHuman:
		return f, nil
	}
	return "", fmt.Errorf("unknown format: %s (want json, text or human)", s)
}

type Formatter struct {
	format Format
	out    io.Writer
	err    io.Writer
}

// NewFormatter creates a new output formatter
func NewFormatter(format Format) *Formatter {
	return &Formatter{
		format: format,
		out:    os.Stdout,
		err:    os.Stderr,
	}
}

// NewFormatterWithWriters creates a formatter with custom output writers for testability
func NewFormatterWithWriters(format Format, out, errW io.Writer) *Formatter {
	return &Formatter{
		format: format,
		out:    out,
		err:    errW,
	}
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
)

// renderTable draws a bordered table for human output.
func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.String()
}

// OutputSequenced outputs a list of sequenced issues
func (f *Formatter) OutputSequenced(items []storage.SequencedItem) error {
	switch f.format {
	case FormatJSON:
		return json.NewEncoder(f.out).Encode(items)
	case FormatText:
		for _, it := range items {
			fmt.Fprintf(f.out, "issue=%d\tvol=%d\tmain_story=%s\tyear=%s\n",
				it.IssueNum, it.VolNum, optString(it.MainStory), optInt(it.Year))
		}
		return nil
	case FormatHuman:
		if len(items) == 0 {
			fmt.Fprintln(f.out, "No issues found")
			return nil
		}
		rows := make([][]string, 0, len(items))
		for _, it := range items {
			rows = append(rows, []string{
				strconv.Itoa(it.IssueNum), strconv.Itoa(it.VolNum),
				optString(it.MainStory), optInt(it.Year),
			})
		}
		fmt.Fprintln(f.out, renderTable(interchange.SequencedHeader, rows))
		fmt.Fprintln(f.out, mutedStyle.Render(fmt.Sprintf("%d issue(s)", len(items))))
		return nil
	}
	return fmt.Errorf("unknown format: %s", f.format)
}

// OutputCategorized outputs a list of categorized editions
func (f *Formatter) OutputCategorized(items []storage.CategorizedItem) error {
	switch f.format {
	case FormatJSON:
		return json.NewEncoder(f.out).Encode(items)
	case FormatText:
		for _, it := range items {
			fmt.Fprintf(f.out, "id=%d\ttitle=%s\twriter=%s\tartist=%s\tcollection=%s\tpublisher=%s\tissues=%s\tmain_character=%s\tevent=%t\tstory_year=%d\tcategory=%s\n",
				it.ID, it.Title, it.Writer, it.Artist, it.Collection, it.Publisher,
				it.Issues, it.MainCharacter, it.IsEvent, it.StoryYear, it.Category)
		}
		return nil
	case FormatHuman:
		if len(items) == 0 {
			fmt.Fprintln(f.out, "No entries found")
			return nil
		}
		rows := make([][]string, 0, len(items))
		for _, it := range items {
			event := ""
			if it.IsEvent {
				event = "✓"
			}
			rows = append(rows, []string{
				strconv.FormatInt(it.ID, 10), it.Title, it.Writer, it.Artist,
				it.Collection, it.Publisher, it.Issues, it.MainCharacter,
				event, strconv.Itoa(it.StoryYear), it.Category,
			})
		}
		headers := append([]string{"ID"}, interchange.CategorizedHeader...)
		fmt.Fprintln(f.out, renderTable(headers, rows))
		fmt.Fprintln(f.out, mutedStyle.Render(fmt.Sprintf("%d entr%s", len(items), plural(len(items), "y", "ies"))))
		return nil
	}
	return fmt.Errorf("unknown format: %s", f.format)
}

// OutputNarrative outputs a list of narrative log entries
func (f *Formatter) OutputNarrative(items []storage.NarrativeLogItem) error {
	switch f.format {
	case FormatJSON:
		return json.NewEncoder(f.out).Encode(items)
	case FormatText:
		for _, it := range items {
			fmt.Fprintf(f.out, "id=%d\tstory_name=%s\tseries_name=%s\tyear=%d\n",
				it.ID, it.StoryName, it.SeriesName, it.Year)
		}
		return nil
	case FormatHuman:
		if len(items) == 0 {
			fmt.Fprintln(f.out, "No stories found")
			return nil
		}
		rows := make([][]string, 0, len(items))
		for _, it := range items {
			rows = append(rows, []string{
				strconv.FormatInt(it.ID, 10), it.StoryName, it.SeriesName, strconv.Itoa(it.Year),
			})
		}
		headers := append([]string{"ID"}, interchange.NarrativeHeader...)
		fmt.Fprintln(f.out, renderTable(headers, rows))
		fmt.Fprintln(f.out, mutedStyle.Render(fmt.Sprintf("%d stor%s", len(items), plural(len(items), "y", "ies"))))
		return nil
	}
	return fmt.Errorf("unknown format: %s", f.format)
}

// MissingReport is the JSON shape of a gap search.
type MissingReport struct {
	Start   int   `json:"start"`
	End     int   `json:"end"`
	Missing []int `json:"missing"`
}

// OutputMissing outputs the issue numbers absent from r
func (f *Formatter) OutputMissing(r filter.Range, missing []int) error {
	switch f.format {
	case FormatJSON:
		if missing == nil {
			missing = []int{}
		}
		return json.NewEncoder(f.out).Encode(MissingReport{Start: r.Start, End: r.End, Missing: missing})
	case FormatText:
		for _, n := range missing {
			fmt.Fprintf(f.out, "missing=%d\n", n)
		}
		return nil
	case FormatHuman:
		if len(missing) == 0 {
			fmt.Fprintf(f.out, "No issues missing between %d and %d\n", r.Start, r.End)
			return nil
		}
		fmt.Fprintf(f.out, "Missing between %d and %d (%d):\n", r.Start, r.End, len(missing))
		fmt.Fprintln(f.out, compactRuns(missing))
		return nil
	}
	return fmt.Errorf("unknown format: %s", f.format)
}

// OutputCategories outputs the distinct category names
func (f *Formatter) OutputCategories(categories []string) error {
	switch f.format {
	case FormatJSON:
		if categories == nil {
			categories = []string{}
		}
		return json.NewEncoder(f.out).Encode(categories)
	case FormatText:
		for _, c := range categories {
			fmt.Fprintf(f.out, "category=%s\n", c)
		}
		return nil
	case FormatHuman:
		if len(categories) == 0 {
			fmt.Fprintln(f.out, "No categories")
			return nil
		}
		for _, c := range categories {
			fmt.Fprintf(f.out, "  • %s\n", c)
		}
		return nil
	}
	return fmt.Errorf("unknown format: %s", f.format)
}

// OutputStats outputs row counts per record kind
func (f *Formatter) OutputStats(path string, st storage.Stats) error {
	switch f.format {
	case FormatJSON:
		return json.NewEncoder(f.out).Encode(map[string]any{
			"database":    path,
			"sequenced":   st.Sequenced,
			"categorized": st.Categorized,
			"narrative":   st.Narrative,
			"total":       st.Total(),
		})
	case FormatText:
		fmt.Fprintf(f.out, "database=%s\n", path)
		fmt.Fprintf(f.out, "sequenced=%d\n", st.Sequenced)
		fmt.Fprintf(f.out, "categorized=%d\n", st.Categorized)
		fmt.Fprintf(f.out, "narrative=%d\n", st.Narrative)
		fmt.Fprintf(f.out, "total=%d\n", st.Total())
		return nil
	case FormatHuman:
		fmt.Fprintf(f.out, "Database: %s\n", path)
		fmt.Fprintln(f.out, renderTable([]string{"Kind", "Records"}, [][]string{
			{"Sequenced", strconv.Itoa(st.Sequenced)},
			{"Categorized", strconv.Itoa(st.Categorized)},
			{"Narrative", strconv.Itoa(st.Narrative)},
			{"Total", strconv.Itoa(st.Total())},
		}))
		return nil
	}
	return fmt.Errorf("unknown format: %s", f.format)
}

// ImportReport is the JSON shape of an import.
type ImportReport struct {
	File     string   `json:"file"`
	Kind     string   `json:"kind"`
	Imported int      `json:"imported"`
	Errors   []string `json:"errors,omitempty"`
}

// OutputImportResult outputs the outcome of an import. Skipped rows are
// reported as warnings in text and human formats.
func (f *Formatter) OutputImportResult(file string, res *interchange.Result) error {
	skipped := make([]string, 0, len(res.Failed))
	for _, e := range res.Failed {
		skipped = append(skipped, e.Error())
	}

	switch f.format {
	case FormatJSON:
		return json.NewEncoder(f.out).Encode(ImportReport{
			File: file, Kind: string(res.Kind), Imported: res.Imported, Errors: skipped,
		})
	case FormatText:
		fmt.Fprintf(f.out, "file=%s\tkind=%s\timported=%d\tskipped=%d\n",
			file, res.Kind, res.Imported, len(skipped))
		for _, e := range skipped {
			f.Warning("%s", e)
		}
		return nil
	case FormatHuman:
		for _, e := range skipped {
			f.Warning("skipped %s", e)
		}
		fmt.Fprintf(f.out, "Imported %d %s record(s) from %s\n", res.Imported, res.Kind, file)
		if len(skipped) > 0 {
			fmt.Fprintf(f.out, "Skipped %d row(s)\n", len(skipped))
		}
		return nil
	}
	return fmt.Errorf("unknown format: %s", f.format)
}

// OutputQueryResult outputs the rows of an ad-hoc query
func (f *Formatter) OutputQueryResult(res *storage.QueryResult) error {
	switch f.format {
	case FormatJSON:
		return json.NewEncoder(f.out).Encode(res)
	case FormatText:
		if len(res.Columns) > 0 {
			fmt.Fprintln(f.out, strings.Join(res.Columns, "\t"))
		}
		for _, row := range res.Rows {
			fmt.Fprintln(f.out, strings.Join(row, "\t"))
		}
		return nil
	case FormatHuman:
		if len(res.Columns) == 0 {
			fmt.Fprintln(f.out, "Statement executed")
			return nil
		}
		if len(res.Rows) == 0 {
			fmt.Fprintln(f.out, "No rows")
			return nil
		}
		fmt.Fprintln(f.out, renderTable(res.Columns, res.Rows))
		fmt.Fprintln(f.out, mutedStyle.Render(fmt.Sprintf("%d row(s)", len(res.Rows))))
		return nil
	}
	return fmt.Errorf("unknown format: %s", f.format)
}

// OutputEvent reports a completed mutation such as an add or a backup.
// Fields are emitted as-is in JSON and as sorted key=value pairs in text.
func (f *Formatter) OutputEvent(event, message string, fields map[string]any) {
	switch f.format {
	case FormatJSON:
		payload := map[string]any{"event": event}
		for k, v := range fields {
			payload[k] = v
		}
		json.NewEncoder(f.out).Encode(payload)
	case FormatText:
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		var b strings.Builder
		b.WriteString("event=" + event)
		for _, k := range keys {
			fmt.Fprintf(&b, "\t%s=%v", k, fields[k])
		}
		fmt.Fprintln(f.out, b.String())
	default:
		fmt.Fprintf(f.out, "✓ %s\n", message)
	}
}

// Error outputs an error message to stderr
func (f *Formatter) Error(format string, args ...interface{}) {
	fmt.Fprintf(f.err, format+"\n", args...)
}

// Warning outputs a warning message to stderr
func (f *Formatter) Warning(format string, args ...interface{}) {
	fmt.Fprintf(f.err, "Warning: "+format+"\n", args...)
}

func optString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optInt(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// compactRuns collapses consecutive numbers, e.g. [1 2 3 7 9 10] -> "1-3, 7, 9-10".
// nums must be ascending.
func compactRuns(nums []int) string {
	var parts []string
	for i := 0; i < len(nums); {
		j := i
		for j+1 < len(nums) && nums[j+1] == nums[j]+1 {
			j++
		}
		if i == j {
			parts = append(parts, strconv.Itoa(nums[i]))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", nums[i], nums[j]))
		}
		i = j + 1
	}
	return strings.Join(parts, ", ")
}
