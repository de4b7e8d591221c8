package corpus

import "strings"

// DefaultSeparators orders split points from paragraph breaks down to
// line breaks, with sentence terminators for both CJK and Latin text in
// between.
var DefaultSeparators = []string{"\n\n", "。", ". ", "\n"}

// DefaultChunkSize is the maximum chunk length in runes.
const DefaultChunkSize = 500

// Splitter splits document text by separator priority: pieces that still
// exceed the chunk budget are re-split with the next separator down the
// hierarchy. Chunks do not overlap.
type Splitter struct {
	separators []string
	chunkSize  int
}

// NewSplitter creates a Splitter with the default separator hierarchy and
// chunk size.
func NewSplitter() *Splitter {
	return &Splitter{separators: DefaultSeparators, chunkSize: DefaultChunkSize}
}

// WithChunkSize overrides the maximum chunk length.
func (s *Splitter) WithChunkSize(n int) *Splitter {
	if n > 0 {
		s.chunkSize = n
	}
	return s
}

// Split returns the chunked text in document order. Whitespace-only input
// yields no chunks.
func (s *Splitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return s.split(text, s.separators)
}

func (s *Splitter) split(text string, separators []string) []string {
	if len([]rune(text)) <= s.chunkSize {
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			return []string{trimmed}
		}
		return nil
	}

	if len(separators) == 0 {
		return s.hardCut(text)
	}

	separator := separators[0]
	if !strings.Contains(text, separator) {
		return s.split(text, separators[1:])
	}

	var (
		chunks  []string
		current strings.Builder
	)
	flush := func() {
		if trimmed := strings.TrimSpace(current.String()); trimmed != "" {
			chunks = append(chunks, trimmed)
		}
		current.Reset()
	}

	// SplitAfter keeps the separator attached to the preceding piece.
	for _, piece := range strings.SplitAfter(text, separator) {
		pieceLen := len([]rune(piece))
		if pieceLen > s.chunkSize {
			flush()
			chunks = append(chunks, s.split(piece, separators[1:])...)
			continue
		}
		if len([]rune(current.String()))+pieceLen > s.chunkSize {
			flush()
		}
		current.WriteString(piece)
	}
	flush()
	return chunks
}

// hardCut slices at the rune budget, the last resort when no separator
// matches.
func (s *Splitter) hardCut(text string) []string {
	runes := []rune(text)
	var chunks []string
	for len(runes) > s.chunkSize {
		if chunk := strings.TrimSpace(string(runes[:s.chunkSize])); chunk != "" {
			chunks = append(chunks, chunk)
		}
		runes = runes[s.chunkSize:]
	}
	if chunk := strings.TrimSpace(string(runes)); chunk != "" {
		chunks = append(chunks, chunk)
	}
	return chunks
}
