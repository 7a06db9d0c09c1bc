package zipffy

import "io"

// EstimateTokens makes a cheap pass over r and counts whitespace separated
// runs per line. the figure only sizes the table: punctuation and digits
// make it diverge from what the tokenizer actually counts.
func EstimateTokens(r io.Reader, cfg *Config) (int, error) {
	cfg = cfg.orDefault()
	scanner := newLineScanner(r, cfg.MaxLineLength)

	total := 0
	for lineNo := 1; ; lineNo++ {
		line, err := readLine(scanner, lineNo, cfg.MaxLineLength)
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return 0, err
		}
		total += countRuns(line)
	}
}

// SelectCapacity returns the smallest tier strictly greater than estimate.
// tiers must be ascending. an estimate at or above the largest tier fails
// with ErrorCodeCapacityExceeded.
func SelectCapacity(estimate int, tiers []int64) (int64, error) {
	for _, tier := range tiers {
		if int64(estimate) < tier {
			return tier, nil
		}
	}

	largest := int64(0)
	if len(tiers) > 0 {
		largest = tiers[len(tiers)-1]
	}
	return 0, newZipfErrorf(ErrorCodeCapacityExceeded, "estimated %d words exceeds the largest supported capacity %d", estimate, largest)
}

// NewHashTableForEstimate picks a capacity tier for estimate and creates a
// table with the configured word length limit
func NewHashTableForEstimate(estimate int, cfg *Config) (*HashTable, error) {
	cfg = cfg.orDefault()
	capacity, err := SelectCapacity(estimate, cfg.CapacityTiers)
	if err != nil {
		return nil, err
	}
	return NewHashTableWithLimit(capacity, cfg.MaxWordLength)
}
