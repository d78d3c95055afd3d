package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/matthewjhunter/longbox/internal/errs"
	"github.com/matthewjhunter/longbox/internal/filter"
	"github.com/matthewjhunter/longbox/internal/interchange"
	"github.com/matthewjhunter/longbox/internal/storage"
)

func sampleSequenced() []storage.SequencedItem {
	return []storage.SequencedItem{
		{IssueNum: 300, VolNum: 1, MainStory: filter.String("Gang War"), Year: filter.Int(1988)},
		{IssueNum: 301, VolNum: 1},
	}
}

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"json", "TEXT", "Human"} {
		if _, err := ParseFormat(in); err != nil {
			t.Errorf("ParseFormat(%q) failed: %v", in, err)
		}
	}
	if _, err := ParseFormat("yaml"); err == nil {
		t.Error("ParseFormat(yaml) should fail")
	}
}

func TestOutputSequenced_JSON(t *testing.T) {
	var out, errBuf bytes.Buffer
	f := NewFormatterWithWriters(FormatJSON, &out, &errBuf)

	if err := f.OutputSequenced(sampleSequenced()); err != nil {
		t.Fatalf("OutputSequenced failed: %v", err)
	}

	var decoded []storage.SequencedItem
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("got %d items, want 2", len(decoded))
	}
	if decoded[0].MainStory == nil || *decoded[0].MainStory != "Gang War" {
		t.Errorf("MainStory = %v, want Gang War", decoded[0].MainStory)
	}
	if decoded[1].Year != nil {
		t.Errorf("Year = %d, want nil", *decoded[1].Year)
	}
}

func TestOutputSequenced_Text(t *testing.T) {
	var out, errBuf bytes.Buffer
	f := NewFormatterWithWriters(FormatText, &out, &errBuf)

	if err := f.OutputSequenced(sampleSequenced()); err != nil {
		t.Fatalf("OutputSequenced failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), out.String())
	}
	want := "issue=300\tvol=1\tmain_story=Gang War\tyear=1988"
	if lines[0] != want {
		t.Errorf("line 0 = %q, want %q", lines[0], want)
	}
	if !strings.HasSuffix(lines[1], "year=") {
		t.Errorf("missing year should be empty: %q", lines[1])
	}
}

func TestOutputSequenced_Human(t *testing.T) {
	var out, errBuf bytes.Buffer
	f := NewFormatterWithWriters(FormatHuman, &out, &errBuf)

	if err := f.OutputSequenced(sampleSequenced()); err != nil {
		t.Fatalf("OutputSequenced failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{"Issue num", "Main Story", "Gang War", "1988", "2 issue(s)"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in output: %s", want, got)
		}
	}
}

func TestOutputEmptyLists_Human(t *testing.T) {
	var out, errBuf bytes.Buffer
	f := NewFormatterWithWriters(FormatHuman, &out, &errBuf)

	f.OutputSequenced(nil)
	f.OutputCategorized(nil)
	f.OutputNarrative(nil)

	got := out.String()
	for _, want := range []string{"No issues found", "No entries found", "No stories found"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in output: %s", want, got)
		}
	}
}

func TestOutputCategorized_Text(t *testing.T) {
	var out, errBuf bytes.Buffer
	f := NewFormatterWithWriters(FormatText, &out, &errBuf)

	items := []storage.CategorizedItem{{
		ID: 4, Title: "Secret Wars", Writer: "Jim Shooter", IsEvent: true, StoryYear: 1984, Category: "Event",
	}}
	if err := f.OutputCategorized(items); err != nil {
		t.Fatalf("OutputCategorized failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{"id=4", "title=Secret Wars", "event=true", "story_year=1984", "category=Event"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in output: %s", want, got)
		}
	}
}

func TestOutputNarrative_JSON(t *testing.T) {
	var out, errBuf bytes.Buffer
	f := NewFormatterWithWriters(FormatJSON, &out, &errBuf)

	items := []storage.NarrativeLogItem{{ID: 1, StoryName: "Η Αρχή", SeriesName: "Χρονικά", Year: 1990}}
	if err := f.OutputNarrative(items); err != nil {
		t.Fatalf("OutputNarrative failed: %v", err)
	}

	var decoded []storage.NarrativeLogItem
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}
	if len(decoded) != 1 || decoded[0].StoryName != "Η Αρχή" {
		t.Errorf("decoded = %+v, want one story named Η Αρχή", decoded)
	}
}

func TestOutputMissing(t *testing.T) {
	r := filter.Range{Start: 1, End: 12}
	missing := []int{1, 2, 3, 7, 9, 10}

	t.Run("json", func(t *testing.T) {
		var out, errBuf bytes.Buffer
		f := NewFormatterWithWriters(FormatJSON, &out, &errBuf)
		if err := f.OutputMissing(r, nil); err != nil {
			t.Fatalf("OutputMissing failed: %v", err)
		}
		var decoded MissingReport
		if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
			t.Fatalf("failed to decode JSON: %v", err)
		}
		if decoded.Missing == nil || len(decoded.Missing) != 0 {
			t.Errorf("Missing = %v, want []", decoded.Missing)
		}
		if !strings.Contains(out.String(), `"missing":[]`) {
			t.Errorf("empty result should encode as []: %s", out.String())
		}
	})

	t.Run("human", func(t *testing.T) {
		var out, errBuf bytes.Buffer
		f := NewFormatterWithWriters(FormatHuman, &out, &errBuf)
		if err := f.OutputMissing(r, missing); err != nil {
			t.Fatalf("OutputMissing failed: %v", err)
		}
		if !strings.Contains(out.String(), "1-3, 7, 9-10") {
			t.Errorf("runs not collapsed: %s", out.String())
		}
	})

	t.Run("text", func(t *testing.T) {
		var out, errBuf bytes.Buffer
		f := NewFormatterWithWriters(FormatText, &out, &errBuf)
		if err := f.OutputMissing(r, missing); err != nil {
			t.Fatalf("OutputMissing failed: %v", err)
		}
		if n := strings.Count(out.String(), "missing="); n != len(missing) {
			t.Errorf("got %d lines, want %d", n, len(missing))
		}
	})
}

func TestCompactRuns(t *testing.T) {
	tests := []struct {
		in   []int
		want string
	}{
		{nil, ""},
		{[]int{5}, "5"},
		{[]int{1, 2}, "1-2"},
		{[]int{1, 3, 5}, "1, 3, 5"},
		{[]int{300, 301, 302, 305}, "300-302, 305"},
	}
	for _, tt := range tests {
		if got := compactRuns(tt.in); got != tt.want {
			t.Errorf("compactRuns(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOutputStats_Text(t *testing.T) {
	var out, errBuf bytes.Buffer
	f := NewFormatterWithWriters(FormatText, &out, &errBuf)

	st := storage.Stats{Sequenced: 3, Categorized: 2, Narrative: 1}
	if err := f.OutputStats("/tmp/longbox.db", st); err != nil {
		t.Fatalf("OutputStats failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{"database=/tmp/longbox.db", "sequenced=3", "categorized=2", "narrative=1", "total=6"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in output: %s", want, got)
		}
	}
}

func TestOutputImportResult(t *testing.T) {
	res := &interchange.Result{
		Kind:     interchange.KindNarrative,
		Imported: 2,
		Failed: []*errs.ImportRowError{
			{Line: 3, Err: errors.New("bad year")},
		},
	}

	t.Run("json", func(t *testing.T) {
		var out, errBuf bytes.Buffer
		f := NewFormatterWithWriters(FormatJSON, &out, &errBuf)
		if err := f.OutputImportResult("stories.csv", res); err != nil {
			t.Fatalf("OutputImportResult failed: %v", err)
		}
		var decoded ImportReport
		if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
			t.Fatalf("failed to decode JSON: %v", err)
		}
		if decoded.Imported != 2 || decoded.Kind != "narrative" {
			t.Errorf("decoded = %+v", decoded)
		}
		if len(decoded.Errors) != 1 || decoded.Errors[0] != "line 3: bad year" {
			t.Errorf("Errors = %v, want [line 3: bad year]", decoded.Errors)
		}
	})

	t.Run("human warnings go to stderr", func(t *testing.T) {
		var out, errBuf bytes.Buffer
		f := NewFormatterWithWriters(FormatHuman, &out, &errBuf)
		if err := f.OutputImportResult("stories.csv", res); err != nil {
			t.Fatalf("OutputImportResult failed: %v", err)
		}
		if !strings.Contains(out.String(), "Imported 2 narrative record(s)") {
			t.Errorf("unexpected stdout: %s", out.String())
		}
		if !strings.Contains(errBuf.String(), "Warning: skipped line 3: bad year") {
			t.Errorf("unexpected stderr: %s", errBuf.String())
		}
		if strings.Contains(out.String(), "Warning") {
			t.Error("warnings should not be written to stdout")
		}
	})
}

func TestOutputQueryResult(t *testing.T) {
	res := &storage.QueryResult{
		Columns: []string{"category", "n"},
		Rows:    [][]string{{"Event", "2"}, {"NULL", "1"}},
	}

	var out, errBuf bytes.Buffer
	f := NewFormatterWithWriters(FormatText, &out, &errBuf)
	if err := f.OutputQueryResult(res); err != nil {
		t.Fatalf("OutputQueryResult failed: %v", err)
	}
	want := "category\tn\nEvent\t2\nNULL\t1\n"
	if out.String() != want {
		t.Errorf("got %q, want %q", out.String(), want)
	}

	out.Reset()
	f = NewFormatterWithWriters(FormatHuman, &out, &errBuf)
	if err := f.OutputQueryResult(&storage.QueryResult{}); err != nil {
		t.Fatalf("OutputQueryResult failed: %v", err)
	}
	if !strings.Contains(out.String(), "Statement executed") {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestOutputEvent(t *testing.T) {
	fields := map[string]any{"issue": 300, "vol": 1}

	var out, errBuf bytes.Buffer
	f := NewFormatterWithWriters(FormatText, &out, &errBuf)
	f.OutputEvent("added", "Added issue 300", fields)
	if got, want := out.String(), "event=added\tissue=300\tvol=1\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	out.Reset()
	f = NewFormatterWithWriters(FormatJSON, &out, &errBuf)
	f.OutputEvent("added", "Added issue 300", fields)
	var decoded map[string]any
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}
	if decoded["event"] != "added" || decoded["issue"] != float64(300) {
		t.Errorf("decoded = %v", decoded)
	}

	out.Reset()
	f = NewFormatterWithWriters(FormatHuman, &out, &errBuf)
	f.OutputEvent("added", "Added issue 300", fields)
	if !strings.Contains(out.String(), "Added issue 300") {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestUnknownFormat(t *testing.T) {
	var out, errBuf bytes.Buffer
	f := NewFormatterWithWriters(Format("xml"), &out, &errBuf)
	if err := f.OutputCategories([]string{"Event"}); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestWarningAndError(t *testing.T) {
	var out, errBuf bytes.Buffer
	f := NewFormatterWithWriters(FormatHuman, &out, &errBuf)

	f.Warning("row %d skipped", 4)
	f.Error("failed: %s", "boom")

	if out.Len() != 0 {
		t.Errorf("stdout should be empty, got %q", out.String())
	}
	want := "Warning: row 4 skipped\nfailed: boom\n"
	if errBuf.String() != want {
		t.Errorf("stderr = %q, want %q", errBuf.String(), want)
	}
}
