package zipffy

// djb2 seed
const hashSeed uint64 = 5381

// Hash maps word to a bucket index in [0, capacity) using djb2
// (acc = acc*33 + byte). it fails with ErrorCodeInvalidInput when word is
// empty, longer than DefaultMaxWordLength bytes, or capacity is below 1.
func Hash(capacity int64, word string) (int64, error) {
	return hashWithLimit(capacity, word, DefaultMaxWordLength)
}

func hashWithLimit(capacity int64, word string, maxWordLength int) (int64, error) {
	if capacity < 1 {
		return 0, newZipfErrorf(ErrorCodeInvalidInput, "capacity must be positive, got %d", capacity)
	}
	if len(word) == 0 {
		return 0, NewZipfError(ErrorCodeInvalidInput, "word is empty")
	}
	if len(word) > maxWordLength {
		return 0, newZipfErrorf(ErrorCodeInvalidInput, "word of %d bytes exceeds the %d byte limit", len(word), maxWordLength)
	}

	acc := hashSeed
	for i := 0; i < len(word); i++ {
		acc = (acc << 5) + acc + uint64(word[i])
	}
	return int64(acc % uint64(capacity)), nil
}
