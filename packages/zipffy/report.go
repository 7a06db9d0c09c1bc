package zipffy

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
)

// widest histogram bar, in '+' characters
const histogramWidth = 60

const banner = "+++++++++++++++++++++++++++++++++++++++"

// Report is a snapshot of a filled table in bucket-then-chain order, with
// summary totals. entries are not ranked or sorted by count.
type Report struct {
	Entries           []Entry
	ApproximateTokens int // pre-scan estimate, never exact
	DistinctWords     int // entries reachable from the buckets
	CountedTokens     int
	RejectedTokens    int
	Lines             int
	Load              LoadStats
}

// ReportOptions controls rendering only; it never changes the figures
type ReportOptions struct {
	Color     bool
	Histogram bool
}

// BuildReport walks every bucket in index order and every chain in
// insertion order
func BuildReport(table *HashTable, estimate int, stats IngestStats) *Report {
	report := &Report{
		Entries:           make([]Entry, 0, table.Len()),
		ApproximateTokens: estimate,
		CountedTokens:     stats.Tokens,
		RejectedTokens:    stats.Rejected,
		Lines:             stats.Lines,
		Load:              table.LoadStats(),
	}

	table.Walk(func(e Entry) bool {
		report.Entries = append(report.Entries, e)
		return true
	})
	report.DistinctWords = len(report.Entries)

	return report
}

// BuildResultReport is BuildReport for the output of CountFile/CountReader
func BuildResultReport(res *Result) *Report {
	return BuildReport(res.Table, res.Estimate, res.Stats)
}

// Write renders the report as plain text
func (r *Report) Write(w io.Writer, opts ReportOptions) error {
	bw := bufio.NewWriter(w)
	paint := func(c color.Color, s string) string {
		if !opts.Color {
			return s
		}
		return c.Render(s)
	}

	fmt.Fprintln(bw, banner)
	fmt.Fprintln(bw, paint(color.OpBold, "+           Zipfs Output Below        +"))
	fmt.Fprintln(bw, banner)
	fmt.Fprintln(bw)

	fmt.Fprintf(bw, "Total Number of Words (approximate): %d\n", r.ApproximateTokens)
	fmt.Fprintf(bw, "Total Number of Counted Words: %d\n", r.CountedTokens)
	if r.RejectedTokens > 0 {
		fmt.Fprintf(bw, "Total Number of Rejected Words: %d\n", r.RejectedTokens)
	}
	fmt.Fprintf(bw, "Total Number of Unique Words: %d\n", r.DistinctWords)
	fmt.Fprintf(bw, "Table Size: %d buckets, %d occupied, longest chain %d, load factor %.6f\n",
		r.Load.Size, r.Load.OccupiedBuckets, r.Load.LongestChain, r.Load.LoadFactor)

	fmt.Fprintf(bw, "\n%s\n", paint(color.FgCyan, "Printed Hash:"))
	for _, e := range r.Entries {
		fmt.Fprintf(bw, "  value: %25s,\thash: %10d,\tcount: %d\n", e.Value, e.Key, e.Count)
	}

	if opts.Histogram {
		fmt.Fprintf(bw, "\n%s\n", paint(color.FgCyan, "Histogram:"))
		maxCount := r.maxCount()
		for _, e := range r.Entries {
			bar := strings.Repeat("+", barWidth(e.Count, maxCount))
			fmt.Fprintf(bw, "%20s:\t%s\n", e.Value, paint(color.FgMagenta, bar))
		}
	}

	return bw.Flush()
}

func (r *Report) maxCount() int {
	highest := 0
	for _, e := range r.Entries {
		if e.Count > highest {
			highest = e.Count
		}
	}
	return highest
}

// barWidth scales count to histogramWidth. counts at or below the width are
// drawn one '+' per occurrence; every entry gets at least one '+'.
func barWidth(count, maxCount int) int {
	if maxCount <= histogramWidth {
		return count
	}
	width := count * histogramWidth / maxCount
	if width < 1 {
		return 1
	}
	return width
}
