package zipffy

import (
	"errors"
	"io"
	"os"

	"github.com/golang/glog"
)

// IngestStats records what the ingest loop saw
type IngestStats struct {
	Lines    int // lines read, blank ones included
	Tokens   int // words inserted into the table
	Rejected int // words the table refused (InvalidInput)
}

// Result is everything a run produced: the filled table, the pre-scan
// estimate that sized it, and the ingest statistics
type Result struct {
	Table    *HashTable
	Estimate int
	Stats    IngestStats
}

// CountFile opens path and runs CountReader over it
func CountFile(path string, cfg *Config) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, wrapZipfError(ErrorCodeFileNotFound, err, "file %s does not exist", path)
		}
		return nil, wrapZipfError(ErrorCodeFileUnreadable, err, "cannot open %s", path)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, wrapZipfError(ErrorCodeFileUnreadable, err, "cannot stat %s", path)
	}
	if info.IsDir() {
		return nil, newZipfErrorf(ErrorCodeFileUnreadable, "%s is a directory", path)
	}

	cfg = cfg.orDefault()
	if cfg.Verbose {
		glog.Infof("file %s exists, %d bytes", path, info.Size())
	}
	return CountReader(f, cfg)
}

// CountReader estimates the number of words in r, creates a table sized for
// the estimate, rewinds r and counts every word. nothing is counted if cfg
// is invalid or the estimate exceeds the largest capacity tier.
func CountReader(r io.ReadSeeker, cfg *Config) (*Result, error) {
	cfg = cfg.orDefault()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	estimate, err := EstimateTokens(r, cfg)
	if err != nil {
		return nil, err
	}

	table, err := NewHashTableForEstimate(estimate, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Verbose {
		glog.Infof("estimated %d words, table capacity %d", estimate, table.Size())
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, wrapZipfError(ErrorCodeFileUnreadable, err, "cannot rewind input")
	}

	stats, err := Ingest(r, table, cfg)
	if err != nil {
		return nil, err
	}

	return &Result{
		Table:    table,
		Estimate: estimate,
		Stats:    stats,
	}, nil
}

// Ingest tokenizes r and inserts every word into table as soon as it is
// read. words the table rejects are counted and skipped; read errors and
// overlong lines stop the ingest.
func Ingest(r io.Reader, table *HashTable, cfg *Config) (IngestStats, error) {
	cfg = cfg.orDefault()

	var stats IngestStats
	tokenizer := NewTokenizer(r, cfg)
	if cfg.Verbose {
		tokenizer.onLine = traceLine
	}

	for {
		word, ok := tokenizer.Next()
		if !ok {
			break
		}

		if err := table.Insert(word); err != nil {
			if !IsInvalidInput(err) {
				return stats, err
			}
			stats.Rejected++
			if cfg.Verbose {
				glog.Warningf("line %d: rejected %q: %v", tokenizer.Line(), word, err)
			}
			continue
		}
		stats.Tokens++

		if cfg.Verbose {
			key, _ := table.Key(word)
			count, _ := table.Count(word)
			glog.Infof("key: %d value: %s count: %d", key, word, count)
		}
	}
	stats.Lines = tokenizer.Line()

	if err := tokenizer.Err(); err != nil {
		return stats, err
	}
	if cfg.Verbose {
		glog.Infof("reached end of input after %d lines", stats.Lines)
	}
	return stats, nil
}

func traceLine(lineNo int, line []byte) {
	glog.Infof("line %d: words in line: %d, charcount: %d, value: %q", lineNo, countRuns(line), len(line), line)
}
