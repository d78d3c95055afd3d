package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cli struct {
	t      *testing.T
	db     string
	config string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	t.Setenv("LONGBOX_DB", "")
	t.Setenv("LONGBOX_FORMAT", "")
	dir := t.TempDir()
	return &cli{
		t:      t,
		db:     filepath.Join(dir, "cli.db"),
		config: filepath.Join(dir, "config.yaml"),
	}
}

// run executes one command in text format against the test database.
func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	root := newRootCmd()
	var out, errBuf bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errBuf)
	root.SetArgs(append([]string{"-c", c.config, "--db", c.db, "-f", "text"}, args...))
	err := root.Execute()
	return out.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	if err != nil {
		c.t.Fatalf("%v failed: %v", args, err)
	}
	return out
}

func TestSequencedAddAndMissing(t *testing.T) {
	c := newCLI(t)
	c.mustRun("sequenced", "add", "300", "1", "--story", "Gang War", "--year", "1988")
	c.mustRun("sequenced", "add", "302", "1")
	c.mustRun("seq", "add", "301", "2")

	got := c.mustRun("sequenced", "missing", "300-303", "--vol", "1")
	want := "missing=301\nmissing=303\n"
	if got != want {
		t.Errorf("missing = %q, want %q", got, want)
	}

	got = c.mustRun("sequenced", "missing", "300-303")
	if got != "missing=303\n" {
		t.Errorf("missing across volumes = %q, want missing=303", got)
	}
}

func TestSequencedDuplicateFails(t *testing.T) {
	c := newCLI(t)
	c.mustRun("sequenced", "add", "1", "1")
	if _, err := c.run("sequenced", "add", "1", "1"); err == nil {
		t.Fatal("expected duplicate key error")
	}
}

func TestSequencedSearchEmptyStoryIsAFilter(t *testing.T) {
	c := newCLI(t)
	c.mustRun("sequenced", "add", "1", "1", "--story", "")
	c.mustRun("sequenced", "add", "2", "1", "--story", "Origin")
	c.mustRun("sequenced", "add", "3", "1")

	got := c.mustRun("sequenced", "search", "--story", "")
	if !strings.Contains(got, "issue=1\t") || strings.Count(got, "\n") != 1 {
		t.Errorf("search --story \"\" = %q, want only issue 1", got)
	}
}

func TestSequencedFindRanges(t *testing.T) {
	c := newCLI(t)
	for _, args := range [][]string{
		{"1", "1", "--year", "1985"},
		{"2", "1", "--year", "1986"},
		{"3", "1", "--year", "1990"},
	} {
		c.mustRun(append([]string{"sequenced", "add"}, args...)...)
	}

	got := c.mustRun("sequenced", "find", "--years", "1985-1986")
	if strings.Count(got, "\n") != 2 || strings.Contains(got, "issue=3") {
		t.Errorf("find --years 1985-1986 = %q", got)
	}

	if _, err := c.run("sequenced", "find", "--years", "abc"); err == nil {
		t.Error("expected error for malformed range")
	}
}

func TestCategorizedEventFlag(t *testing.T) {
	c := newCLI(t)
	c.mustRun("categorized", "add", "--title", "Crisis", "--event", "--story-year", "1985", "--category", "Event")
	c.mustRun("categorized", "add", "--title", "Watchmen", "--story-year", "1986", "--category", "Graphic Novel")

	got := c.mustRun("categorized", "search", "--event=false")
	if !strings.Contains(got, "title=Watchmen") || strings.Contains(got, "title=Crisis") {
		t.Errorf("search --event=false = %q, want only Watchmen", got)
	}

	got = c.mustRun("categorized", "search")
	if strings.Count(got, "\n") != 2 {
		t.Errorf("search without flags = %q, want both rows", got)
	}

	got = c.mustRun("categorized", "categories")
	if got != "category=Event\ncategory=Graphic Novel\n" {
		t.Errorf("categories = %q", got)
	}
}

func TestCategorizedUpdateAndDelete(t *testing.T) {
	c := newCLI(t)
	c.mustRun("categorized", "add", "--title", "Crisis", "--story-year", "1985")

	c.mustRun("categorized", "update", "1", "--title", "Crisis on Infinite Earths", "--story-year", "1985")
	got := c.mustRun("categorized", "search", "--title", "Crisis on Infinite Earths")
	if !strings.Contains(got, "id=1\t") {
		t.Errorf("updated row not found: %q", got)
	}

	c.mustRun("categorized", "delete", "1")
	if got := c.mustRun("categorized", "search"); got != "" {
		t.Errorf("after delete = %q, want empty", got)
	}

	if _, err := c.run("categorized", "delete", "abc"); err == nil {
		t.Error("expected error for non-numeric id")
	}
}

func TestNarrativeFind(t *testing.T) {
	c := newCLI(t)
	c.mustRun("narrative", "add", "--story", "Origins", "--series", "Chronicles", "--year", "1990")
	c.mustRun("narrative", "add", "--story", "Aftermath", "--series", "Chronicles", "--year", "1995")

	got := c.mustRun("narrative", "find", "--series", "Chronicles", "--years", "1989-1991")
	if !strings.Contains(got, "story_name=Origins") || strings.Contains(got, "Aftermath") {
		t.Errorf("find = %q, want only Origins", got)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	src := newCLI(t)
	src.mustRun("narrative", "add", "--story", "Η Αρχή", "--series", "Χρονικά", "--year", "1990")
	src.mustRun("sequenced", "add", "7", "1")

	dir := t.TempDir()
	narPath := filepath.Join(dir, "narrative.csv")
	seqPath := filepath.Join(dir, "sequenced.csv")
	src.mustRun("export", "narrative", narPath)
	src.mustRun("export", "sequenced", seqPath)

	dst := newCLI(t)
	got := dst.mustRun("import", narPath)
	if !strings.Contains(got, "kind=narrative\timported=1\tskipped=0") {
		t.Errorf("import output = %q", got)
	}
	dst.mustRun("import", seqPath)

	got = dst.mustRun("stats")
	for _, want := range []string{"sequenced=1", "narrative=1", "total=2"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in stats: %s", want, got)
		}
	}

	if _, err := dst.run("export", "arkas", filepath.Join(dir, "x.csv")); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestResetRequiresConfirmation(t *testing.T) {
	c := newCLI(t)
	c.mustRun("sequenced", "add", "1", "1")

	if _, err := c.run("reset"); err == nil {
		t.Fatal("reset without --yes should fail")
	}
	if got := c.mustRun("stats"); !strings.Contains(got, "sequenced=1") {
		t.Errorf("data should survive an unconfirmed reset: %s", got)
	}

	c.mustRun("reset", "--yes")
	if got := c.mustRun("stats"); !strings.Contains(got, "total=0") {
		t.Errorf("stats after reset = %s", got)
	}
}

func TestBackupAndQuery(t *testing.T) {
	c := newCLI(t)
	c.mustRun("sequenced", "add", "1", "1", "--year", "1990")

	dest := filepath.Join(t.TempDir(), "copy.db")
	got := c.mustRun("backup", dest)
	if !strings.Contains(got, "event=backup") {
		t.Errorf("backup output = %q", got)
	}

	copyCLI := &cli{t: t, db: dest, config: c.config}
	got = copyCLI.mustRun("query", "SELECT issue_num, year FROM sequenced_items WHERE vol_num = ?", "1")
	if got != "issue_num\tyear\n1\t1990\n" {
		t.Errorf("query = %q", got)
	}
}

func TestJSONFormatFromConfig(t *testing.T) {
	c := newCLI(t)
	if err := os.WriteFile(c.config, []byte("output:\n  format: json\n"), 0644); err != nil {
		t.Fatal(err)
	}

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"-c", c.config, "--db", c.db, "stats"})
	if err := root.Execute(); err != nil {
		t.Fatalf("stats failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v: %s", err, out.String())
	}
	if decoded["total"] != float64(0) {
		t.Errorf("total = %v, want 0", decoded["total"])
	}
}

func TestUnknownFormat(t *testing.T) {
	c := newCLI(t)
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"-c", c.config, "--db", c.db, "-f", "xml", "stats"})
	if err := root.Execute(); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"-c", path, "init-config"})
	if err := root.Execute(); err != nil {
		t.Fatalf("init-config failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if !strings.Contains(string(data), "[database]") {
		t.Errorf("expected TOML output, got %s", data)
	}

	root = newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"-c", path, "init-config"})
	if err := root.Execute(); err == nil {
		t.Error("second init-config should refuse to overwrite")
	}
}

func TestReportErrorWritesToStderr(t *testing.T) {
	c := newCLI(t)

	root := newRootCmd()
	var out, errBuf bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errBuf)
	root.SetArgs([]string{"-c", c.config, "--db", c.db, "-f", "text", "categorized", "delete", "abc"})
	err := root.Execute()
	if err == nil {
		t.Fatal("expected error for non-numeric id")
	}

	reportError(root, err)
	if !strings.HasPrefix(errBuf.String(), "Error: ") || !strings.Contains(errBuf.String(), "abc") {
		t.Errorf("stderr = %q", errBuf.String())
	}
	if out.Len() != 0 {
		t.Errorf("stdout = %q, want empty", out.String())
	}
}

func TestReportErrorBeforeConfigLoads(t *testing.T) {
	formatter = nil
	root := newRootCmd()
	var errBuf bytes.Buffer
	root.SetErr(&errBuf)

	reportError(root, os.ErrNotExist)
	if got := errBuf.String(); got != "Error: file does not exist\n" {
		t.Errorf("stderr = %q", got)
	}
}
