package zipffy

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleText = `The quick brown fox jumps over the lazy dog.
The dog sleeps; the fox runs.

A well-known fact: THE end.
`

func TestCountReader(t *testing.T) {
	res, err := CountReader(strings.NewReader(sampleText), nil)
	if err != nil {
		t.Fatalf("CountReader failed: %v", err)
	}

	if res.Table.Size() != 8191 {
		t.Errorf("Size() = %d, expected the smallest tier", res.Table.Size())
	}
	if res.Estimate != 20 {
		t.Errorf("Estimate = %d, expected 20", res.Estimate)
	}
	if res.Stats.Tokens != 20 || res.Stats.Rejected != 0 || res.Stats.Lines != 4 {
		t.Errorf("unexpected stats: %+v", res.Stats)
	}

	expected := map[string]int{
		"the":        5,
		"fox":        2,
		"dog":        2,
		"quick":      1,
		"well-known": 1,
		"a":          1,
		"end":        1,
	}
	for word, count := range expected {
		got, err := res.Table.Count(word)
		if err != nil || got != count {
			t.Errorf("Count(%q) = %d, %v, expected %d", word, got, err, count)
		}
	}
	if res.Table.Len() != 14 {
		t.Errorf("Len() = %d, expected 14", res.Table.Len())
	}
}

func TestCountReaderCapacityExceeded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CapacityTiers = []int64{4, 16}

	res, err := CountReader(strings.NewReader(sampleText), cfg)
	if res != nil {
		t.Errorf("expected no result")
	}
	if CodeOf(err) != ErrorCodeCapacityExceeded {
		t.Errorf("expected CapacityExceeded, got %v", err)
	}
}

func TestCountReaderInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxLineLength = 1 << 40

	res, err := CountReader(strings.NewReader(sampleText), cfg)
	if res != nil || CodeOf(err) != ErrorCodeInvalidConfig {
		t.Errorf("expected InvalidConfig and no result, got %v, %v", res, err)
	}
}

func TestCountFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.txt")
	if err := os.WriteFile(path, []byte("the the quick fox\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := CountFile(path, nil)
	if err != nil {
		t.Fatalf("CountFile failed: %v", err)
	}
	if count, _ := res.Table.Count("the"); count != 2 {
		t.Errorf("Count(the) = %d, expected 2", count)
	}
	if res.Table.Len() != 3 {
		t.Errorf("Len() = %d, expected 3", res.Table.Len())
	}
}

func TestCountFileVerbose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.txt")
	if err := os.WriteFile(path, []byte("a a a\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.Verbose = true
	res, err := CountFile(path, cfg)
	if err != nil {
		t.Fatalf("CountFile failed: %v", err)
	}
	if count, _ := res.Table.Count("a"); count != 3 {
		t.Errorf("Count(a) = %d, expected 3", count)
	}
}

func TestCountFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := CountFile(filepath.Join(dir, "absent.txt"), nil)
	if CodeOf(err) != ErrorCodeFileNotFound {
		t.Errorf("expected FileNotFound, got %v", err)
	}

	_, err = CountFile(dir, nil)
	if CodeOf(err) != ErrorCodeFileUnreadable {
		t.Errorf("expected FileUnreadable for a directory, got %v", err)
	}
}

func TestIngestRejectsWordsTheTableRefuses(t *testing.T) {
	table, err := NewHashTableWithLimit(7, 3)
	if err != nil {
		t.Fatal(err)
	}

	stats, err := Ingest(strings.NewReader("cat horse dog\n"), table, nil)
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if stats.Tokens != 2 || stats.Rejected != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if _, err := table.Count("horse"); !IsInvalidInput(err) {
		t.Errorf("Count(horse) expected InvalidInput, got %v", err)
	}
	if !table.Contains("cat") || !table.Contains("dog") {
		t.Errorf("valid words missing after a rejection")
	}
}

func TestIngestStopsOnLongLine(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxLineLength = 12
	table, _ := NewHashTable(7)

	stats, err := Ingest(strings.NewReader("one two\nthis line goes on and on\nthree\n"), table, cfg)
	if CodeOf(err) != ErrorCodeLineTooLong {
		t.Fatalf("expected LineTooLong, got %v", err)
	}
	if stats.Tokens != 2 {
		t.Errorf("Tokens = %d, expected 2", stats.Tokens)
	}
	if table.Contains("three") {
		t.Errorf("ingest continued past the overlong line")
	}
}

func TestIngestTruncatesLongWord(t *testing.T) {
	table, _ := NewHashTable(8191)
	word := strings.Repeat("x", 60)

	if _, err := Ingest(strings.NewReader(word+"\n"), table, nil); err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if table.Len() != 1 {
		t.Fatalf("Len() = %d, expected a single truncated word", table.Len())
	}
	if count, err := table.Count(word[:50]); err != nil || count != 1 {
		t.Errorf("Count(first 50) = %d, %v", count, err)
	}
}
