package textbuf

import (
	"testing"
)

func TestNewEmpty(t *testing.T) {
	b := New("", Options{})

	if b.Len() != 0 {
		t.Errorf("Expected length 0, got %d", b.Len())
	}
	if b.LineCount() != 1 {
		t.Errorf("Expected 1 line, got %d", b.LineCount())
	}
	if b.Text() != "" {
		t.Errorf("Expected empty text, got %q", b.Text())
	}
	if b.EOL() != "\n" {
		t.Errorf("Expected LF EOL, got %q", b.EOL())
	}

	width, err := b.LineLength(1)
	if err != nil {
		t.Fatalf("LineLength failed: %v", err)
	}
	if width != 0 {
		t.Errorf("Expected line length 0, got %d", width)
	}
}

func TestNewCounts(t *testing.T) {
	b := New("Hello\nWorld", Options{})

	if b.Len() != 11 {
		t.Errorf("Expected 11 runes, got %d", b.Len())
	}
	if b.LineCount() != 2 {
		t.Errorf("Expected 2 lines, got %d", b.LineCount())
	}

	line, err := b.LineContent(2)
	if err != nil {
		t.Fatalf("LineContent failed: %v", err)
	}
	if line != "World" {
		t.Errorf("Expected %q, got %q", "World", line)
	}
}

func TestTrailingTerminatorMakesEmptyLastLine(t *testing.T) {
	b := New("Hello\nWorld\n", Options{})

	if b.LineCount() != 3 {
		t.Errorf("Expected 3 lines, got %d", b.LineCount())
	}
	line, err := b.LineContent(3)
	if err != nil {
		t.Fatalf("LineContent failed: %v", err)
	}
	if line != "" {
		t.Errorf("Expected empty last line, got %q", line)
	}
}

func TestNormalizeToLF(t *testing.T) {
	b := New("a\r\nb\rc\nd", Options{EOL: EOLLF})

	if b.Text() != "a\nb\nc\nd" {
		t.Errorf("Expected normalized LF text, got %q", b.Text())
	}
	if b.LineCount() != 4 {
		t.Errorf("Expected 4 lines, got %d", b.LineCount())
	}
}

func TestNormalizeToCRLF(t *testing.T) {
	b := New("a\nb\rc", Options{EOL: EOLCRLF})

	if b.Text() != "a\r\nb\r\nc" {
		t.Errorf("Expected normalized CRLF text, got %q", b.Text())
	}
	if b.Len() != 7 {
		t.Errorf("Expected 7 runes, got %d", b.Len())
	}
}

func TestAutoDetectCRLF(t *testing.T) {
	b := New("a\r\nb\r\nc\nd", Options{})

	if b.EOL() != "\r\n" {
		t.Errorf("Expected CRLF detection, got %q", b.EOL())
	}
	if b.Text() != "a\r\nb\r\nc\r\nd" {
		t.Errorf("Expected fully CRLF text, got %q", b.Text())
	}
}

func TestAutoDetectDefaultsToLF(t *testing.T) {
	if eol := New("no terminators here", Options{}).EOL(); eol != "\n" {
		t.Errorf("Expected LF for terminator-free input, got %q", eol)
	}
	if eol := New("a\r\nb\nc", Options{}).EOL(); eol != "\n" {
		t.Errorf("Expected LF on a tie, got %q", eol)
	}
}

func TestLineContentCRLF(t *testing.T) {
	b := New("a\r\nbb\r\n", Options{})

	if b.LineCount() != 3 {
		t.Fatalf("Expected 3 lines, got %d", b.LineCount())
	}
	line, err := b.LineContent(2)
	if err != nil {
		t.Fatalf("LineContent failed: %v", err)
	}
	if line != "bb" {
		t.Errorf("Expected %q, got %q", "bb", line)
	}
	width, err := b.LineLength(2)
	if err != nil {
		t.Fatalf("LineLength failed: %v", err)
	}
	if width != 2 {
		t.Errorf("Expected line length 2, got %d", width)
	}
}

func TestLineOutOfRange(t *testing.T) {
	b := New("one line", Options{})

	if _, err := b.LineContent(0); err != ErrInvalidPosition {
		t.Errorf("Expected ErrInvalidPosition for line 0, got %v", err)
	}
	if _, err := b.LineContent(2); err != ErrInvalidPosition {
		t.Errorf("Expected ErrInvalidPosition for line 2, got %v", err)
	}
}

func TestDispose(t *testing.T) {
	b := New("content", Options{})
	b.Dispose()
	b.Dispose() // must not fault

	if !b.Disposed() {
		t.Error("Expected buffer to report disposed")
	}
	if b.Len() != 0 {
		t.Errorf("Expected length 0 after dispose, got %d", b.Len())
	}
	if b.Text() != "" {
		t.Errorf("Expected empty text after dispose, got %q", b.Text())
	}
	if err := b.Replace(Range{Start: At(1, 1), End: At(1, 1)}, "x"); err != ErrDisposed {
		t.Errorf("Expected ErrDisposed, got %v", err)
	}
}

func TestPlaceholder(t *testing.T) {
	p := Placeholder()

	if !p.Disposed() {
		t.Error("Expected placeholder to be disposed")
	}
	if p.Len() != 0 {
		t.Errorf("Expected empty placeholder, got %d runes", p.Len())
	}
	if Placeholder() != p {
		t.Error("Expected a shared placeholder instance")
	}
}
