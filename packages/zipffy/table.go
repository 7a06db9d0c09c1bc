package zipffy

import "math"

// Entry is one distinct word and the number of times it was inserted
type Entry struct {
	Key   int64  // bucket index, hash of Value under the table capacity
	Value string // normalized word
	Count int    // occurrences, always >= 1
}

// HashTable counts words in a fixed number of buckets. collisions are
// resolved by chaining: each bucket owns an ordered slice of entries kept in
// first-insertion order. the table never grows.
//
// buckets are grouped in pages of bucketsPerPage. only the page directory is
// allocated up front, so the cost of a large capacity is paid per page that
// actually holds words.
type HashTable struct {
	pages         [][][]Entry // bucket directory, pages allocated on first insert
	size          int64
	maxWordLength int
	entries       int // distinct words across all buckets
}

const (
	pageShift      = 12
	bucketsPerPage = 1 << pageShift
)

// LoadStats summarizes how entries spread over the buckets
type LoadStats struct {
	Size            int64
	Entries         int
	OccupiedBuckets int64
	LongestChain    int
	LoadFactor      float64
}

// NewHashTable creates an empty table with capacity buckets and the default
// word length limit. capacity below 1 fails with ErrorCodeInvalidInput; a
// bucket directory that cannot be allocated fails with
// ErrorCodeAllocationFailure. no table is returned on failure.
func NewHashTable(capacity int64) (*HashTable, error) {
	return NewHashTableWithLimit(capacity, DefaultMaxWordLength)
}

// NewHashTableWithLimit is NewHashTable with an explicit maximum word length
func NewHashTableWithLimit(capacity int64, maxWordLength int) (*HashTable, error) {
	if capacity < 1 {
		return nil, newZipfErrorf(ErrorCodeInvalidInput, "capacity must be positive, got %d", capacity)
	}
	if maxWordLength < 1 {
		return nil, newZipfErrorf(ErrorCodeInvalidInput, "max word length must be positive, got %d", maxWordLength)
	}

	pages, err := allocatePages(capacity)
	if err != nil {
		return nil, err
	}

	return &HashTable{
		pages:         pages,
		size:          capacity,
		maxWordLength: maxWordLength,
	}, nil
}

// allocatePages creates the page directory for capacity buckets. the
// runtime's allocation panic for an impossible length becomes an error.
func allocatePages(capacity int64) (pages [][][]Entry, err error) {
	count := capacity >> pageShift
	if capacity&(bucketsPerPage-1) != 0 {
		count++
	}
	if uint64(count) > uint64(math.MaxInt) {
		return nil, newZipfErrorf(ErrorCodeAllocationFailure, "capacity %d is not addressable", capacity)
	}

	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = newZipfErrorf(ErrorCodeAllocationFailure, "cannot allocate %d buckets: %v", capacity, r)
		}
	}()

	return make([][][]Entry, count), nil
}

// chain returns the entries of bucket key, nil when its page was never
// allocated
func (ht *HashTable) chain(key int64) []Entry {
	page := ht.pages[key>>pageShift]
	if page == nil {
		return nil
	}
	return page[key&(bucketsPerPage-1)]
}

// setChain stores chain as bucket key, allocating its page on demand. the
// last page only covers the buckets below size.
func (ht *HashTable) setChain(key int64, chain []Entry) {
	index := key >> pageShift
	page := ht.pages[index]
	if page == nil {
		first := index << pageShift
		page = make([][]Entry, min(bucketsPerPage, ht.size-first))
		ht.pages[index] = page
	}
	page[key&(bucketsPerPage-1)] = chain
}

// hash applies the table's capacity and word length limit
func (ht *HashTable) hash(word string) (int64, error) {
	return hashWithLimit(ht.size, word, ht.maxWordLength)
}

// Insert adds one occurrence of word. the first occurrence creates an entry
// with count 1 at the tail of its bucket; later occurrences increment it in
// place. a word that cannot be hashed leaves the table untouched.
func (ht *HashTable) Insert(word string) error {
	key, err := ht.hash(word)
	if err != nil {
		return err
	}

	chain := ht.chain(key)
	for i := range chain {
		if chain[i].Value == word {
			chain[i].Count++
			return nil
		}
	}

	// collision or empty bucket: append keeps first-seen order
	ht.setChain(key, append(chain, Entry{Key: key, Value: word, Count: 1}))
	ht.entries++
	return nil
}

// find returns the entry for word, or a NotFound / InvalidInput error
func (ht *HashTable) find(word string) (*Entry, error) {
	key, err := ht.hash(word)
	if err != nil {
		return nil, err
	}

	chain := ht.chain(key)
	for i := range chain {
		if chain[i].Value == word {
			return &chain[i], nil
		}
	}
	return nil, newZipfErrorf(ErrorCodeNotFound, "word %q not found", word)
}

// Count returns how many times word was inserted. a word never inserted
// yields ErrorCodeNotFound; a word that cannot be hashed yields
// ErrorCodeInvalidInput.
func (ht *HashTable) Count(word string) (int, error) {
	entry, err := ht.find(word)
	if err != nil {
		return 0, err
	}
	return entry.Count, nil
}

// Key returns the bucket index word is stored under, with the same error
// semantics as Count
func (ht *HashTable) Key(word string) (int64, error) {
	entry, err := ht.find(word)
	if err != nil {
		return 0, err
	}
	return entry.Key, nil
}

// Contains checks if word has been inserted
func (ht *HashTable) Contains(word string) bool {
	_, err := ht.find(word)
	return err == nil
}

// Bucket returns a copy of the chain at index, in insertion order. an index
// outside [0, Size()) yields nil.
func (ht *HashTable) Bucket(index int64) []Entry {
	if index < 0 || index >= ht.size {
		return nil
	}
	chain := ht.chain(index)
	if len(chain) == 0 {
		return nil
	}
	out := make([]Entry, len(chain))
	copy(out, chain)
	return out
}

// Walk visits every entry, buckets in index order and each chain in
// insertion order. returning false from fn stops the walk.
func (ht *HashTable) Walk(fn func(Entry) bool) {
	for _, page := range ht.pages {
		for _, chain := range page {
			for _, entry := range chain {
				if !fn(entry) {
					return
				}
			}
		}
	}
}

// Size returns the fixed number of buckets
func (ht *HashTable) Size() int64 {
	return ht.size
}

// Len returns the number of distinct words stored
func (ht *HashTable) Len() int {
	return ht.entries
}

// MaxWordLength returns the longest word the table accepts
func (ht *HashTable) MaxWordLength() int {
	return ht.maxWordLength
}

// LoadStats walks the buckets and reports occupancy
func (ht *HashTable) LoadStats() LoadStats {
	stats := LoadStats{
		Size:    ht.size,
		Entries: ht.entries,
	}
	for _, page := range ht.pages {
		for _, chain := range page {
			if len(chain) == 0 {
				continue
			}
			stats.OccupiedBuckets++
			if len(chain) > stats.LongestChain {
				stats.LongestChain = len(chain)
			}
		}
	}
	stats.LoadFactor = float64(ht.entries) / float64(ht.size)
	return stats
}

// Clear releases every entry at once. the table keeps its capacity and can
// be reused.
func (ht *HashTable) Clear() {
	for i := range ht.pages {
		ht.pages[i] = nil
	}
	ht.entries = 0
}
