package zipffy

import (
	"bufio"
	"errors"
	"io"
)

// character classification constants. slightly easier to read.
const (
	charTab      = '\t'
	charNewline  = '\n'
	charVTab     = '\v'
	charFormFeed = '\f'
	charReturn   = '\r'
	charSpace    = ' '
	charHyphen   = '-'
)

// initial line buffer; it grows up to the configured line limit
const initialBuffer = 4096

// Tokenizer reads text one line at a time and yields normalized words:
// ASCII letters and hyphens, lowercased, capped at the configured maximum
// word length. only the current line is held in memory.
type Tokenizer struct {
	scanner       *bufio.Scanner
	maxLineLength int
	maxWordLength int

	line   []byte // current line, terminator stripped
	pos    int    // byte position in line
	lineNo int    // 1-based number of the current line
	word   []byte // reused word buffer
	err    error

	onLine func(lineNo int, line []byte) // called for every non-blank line
}

// NewTokenizer creates a tokenizer over r using the limits in cfg. a nil
// cfg uses DefaultConfig.
func NewTokenizer(r io.Reader, cfg *Config) *Tokenizer {
	cfg = cfg.orDefault()
	return &Tokenizer{
		scanner:       newLineScanner(r, cfg.MaxLineLength),
		maxLineLength: cfg.MaxLineLength,
		maxWordLength: cfg.MaxWordLength,
		word:          newWordBuffer(cfg.MaxWordLength),
	}
}

// newLineScanner creates a line scanner that refuses lines longer than
// maxLineLength plus a CRLF terminator
func newLineScanner(r io.Reader, maxLineLength int) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	limit := min(maxLineLength, MaxLengthLimit) + 2
	scanner.Buffer(make([]byte, 0, min(limit, initialBuffer)), limit)
	return scanner
}

// newWordBuffer preallocates room for a typical word; longer words grow it
// up to maxWordLength
func newWordBuffer(maxWordLength int) []byte {
	return make([]byte, 0, min(maxWordLength, DefaultMaxWordLength))
}

// readLine advances scanner to the next line and strips its terminator.
// errors are converted to ZipfErrors carrying the line number.
func readLine(scanner *bufio.Scanner, lineNo, maxLineLength int) ([]byte, error) {
	if !scanner.Scan() {
		err := scanner.Err()
		switch {
		case err == nil:
			return nil, io.EOF
		case errors.Is(err, bufio.ErrTooLong):
			return nil, newZipfErrorf(ErrorCodeLineTooLong, "line %d exceeds max_line_length %d", lineNo, maxLineLength)
		default:
			return nil, wrapZipfError(ErrorCodeFileUnreadable, err, "read failed at line %d", lineNo)
		}
	}

	line := stripTerminator(scanner.Bytes())
	if len(line) > maxLineLength {
		return nil, newZipfErrorf(ErrorCodeLineTooLong, "line %d exceeds max_line_length %d", lineNo, maxLineLength)
	}
	return line, nil
}

// Next returns the next word. it returns false once the input is exhausted
// or an error stopped the scan; check Err afterwards.
func (t *Tokenizer) Next() (string, bool) {
	for {
		if t.line != nil {
			word, next := nextWord(t.line, t.pos, t.maxWordLength, t.word[:0])
			t.pos = next
			if word != nil {
				t.word = word
				return string(word), true
			}
		}
		if !t.advance() {
			return "", false
		}
	}
}

// advance loads the next non-blank line
func (t *Tokenizer) advance() bool {
	if t.err != nil {
		return false
	}

	for {
		line, err := readLine(t.scanner, t.lineNo+1, t.maxLineLength)
		if err != nil {
			if err != io.EOF {
				t.err = err
			}
			t.line = nil
			return false
		}
		t.lineNo++

		if isBlank(line) {
			continue
		}

		t.line = line
		t.pos = 0
		if t.onLine != nil {
			t.onLine(t.lineNo, line)
		}
		return true
	}
}

// Err returns the error that stopped the tokenizer, nil at a clean EOF
func (t *Tokenizer) Err() error {
	return t.err
}

// Line returns the number of the line the last word came from
func (t *Tokenizer) Line() int {
	return t.lineNo
}

// TokenizeLine splits one line into normalized words using the same rules
// as the Tokenizer
func TokenizeLine(line string, maxWordLength int) []string {
	if maxWordLength < 1 {
		maxWordLength = DefaultMaxWordLength
	}

	data := stripTerminator([]byte(line))
	var words []string
	buf := newWordBuffer(maxWordLength)
	pos := 0
	for {
		word, next := nextWord(data, pos, maxWordLength, buf[:0])
		if word == nil {
			return words
		}
		words = append(words, string(word))
		pos = next
	}
}

// nextWord scans line from pos and returns the next word (written into buf)
// and the position after it. word is nil when the line is exhausted.
// characters past maxWordLength are consumed but dropped, so an overlong
// word yields one truncated word. runs without any letter are skipped.
func nextWord(line []byte, pos, maxWordLength int, buf []byte) ([]byte, int) {
	word := buf
	letters := 0

	for pos < len(line) {
		ch := line[pos]
		pos++

		if isWordChar(ch) {
			if len(word) < maxWordLength {
				word = append(word, toLower(ch))
				if ch != charHyphen {
					letters++
				}
			}
			continue
		}

		// whitespace or punctuation ends the word
		if letters > 0 {
			return word, pos
		}
		word = word[:0]
	}

	if letters > 0 {
		return word, pos
	}
	return nil, pos
}

// stripTerminator drops trailing line terminators
func stripTerminator(line []byte) []byte {
	end := len(line)
	for end > 0 && (line[end-1] == charNewline || line[end-1] == charReturn) {
		end--
	}
	return line[:end]
}

// countRuns counts whitespace separated runs in line
func countRuns(line []byte) int {
	runs := 0
	inRun := false
	for _, ch := range line {
		if isSpace(ch) {
			inRun = false
			continue
		}
		if !inRun {
			runs++
			inRun = true
		}
	}
	return runs
}

// helper methods for character classification

func isBlank(line []byte) bool {
	for _, ch := range line {
		if !isSpace(ch) {
			return false
		}
	}
	return true
}

func isSpace(ch byte) bool {
	switch ch {
	case charSpace, charTab, charNewline, charReturn, charVTab, charFormFeed:
		return true
	}
	return false
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isWordChar(ch byte) bool {
	return isAlpha(ch) || ch == charHyphen
}

func toLower(ch byte) byte {
	if ch >= 'A' && ch <= 'Z' {
		return ch + ('a' - 'A')
	}
	return ch
}
