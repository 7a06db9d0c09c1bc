package zipffy

import (
	"strings"
	"testing"
)

func TestHashKnownValues(t *testing.T) {
	tests := []struct {
		capacity int64
		word     string
		expected int64
	}{
		{1 << 40, "a", 177670},
		{1 << 40, "ab", 5863208},
		{1 << 40, "the", 193506854},
		{7, "the", 2},
		{7, "quick", 5},
		{7, "fox", 0},
		{8191, "the", 2670},
		{1, "anything", 0},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			got, err := Hash(tt.capacity, tt.word)
			if err != nil {
				t.Fatalf("Hash(%d, %q) failed: %v", tt.capacity, tt.word, err)
			}
			if got != tt.expected {
				t.Errorf("Hash(%d, %q) = %d, expected %d", tt.capacity, tt.word, got, tt.expected)
			}
		})
	}
}

func TestHashDeterministic(t *testing.T) {
	words := []string{"zipf", "law", "frequency", "rank", "well-known", strings.Repeat("z", 50)}
	for _, word := range words {
		first, err := Hash(131071, word)
		if err != nil {
			t.Fatalf("Hash(%q) failed: %v", word, err)
		}
		for i := 0; i < 10; i++ {
			again, _ := Hash(131071, word)
			if again != first {
				t.Fatalf("Hash(%q) changed from %d to %d", word, first, again)
			}
		}
		if first < 0 || first >= 131071 {
			t.Errorf("Hash(%q) = %d, outside [0, 131071)", word, first)
		}
	}
}

func TestHashInvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		capacity int64
		word     string
	}{
		{"empty word", 7, ""},
		{"51 bytes", 7, strings.Repeat("a", 51)},
		{"zero capacity", 0, "word"},
		{"negative capacity", -3, "word"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Hash(tt.capacity, tt.word)
			if !IsInvalidInput(err) {
				t.Errorf("expected InvalidInput, got %v", err)
			}
		})
	}
}

func TestHashAcceptsFiftyBytes(t *testing.T) {
	if _, err := Hash(7, strings.Repeat("a", 50)); err != nil {
		t.Errorf("50 byte word rejected: %v", err)
	}
}
