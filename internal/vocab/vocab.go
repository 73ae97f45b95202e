// internal/vocab/vocab.go
//
// Vocabulary catalog for the matching game.
//
// Responsibilities:
//   - Hold the ordered, read-only list of entries (word + image reference).
//   - Parse catalog text (embedded default or a file on disk).
//   - Normalise entries: trim, drop blanks/comments, drop duplicate words.
//
// Text format, one entry per line:
//   word[,image_ref]
// Lines starting with "#" are comments. A missing image_ref defaults to
// "images/<lowercase word>.png".
//
// Constraints:
//   • Words are non-empty after trimming.
//   • Duplicate words (case-insensitive) keep the first occurrence.
//   • A Catalog never changes after construction.

package vocab

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// ErrEmptyWord is returned when an entry has no word.
var ErrEmptyWord = errors.New("vocab: empty word")

// Entry is a single vocabulary item shown to the player.
type Entry struct {
	Word     string `json:"word"`     // Target word as displayed
	ImageRef string `json:"imageRef"` // Opaque handle understood by the presentation layer
}

// Catalog is an ordered collection of entries. Entry identity is its position.
type Catalog struct {
	entries []Entry
}

// NewCatalog validates entries and builds a catalog.
// Duplicate words are skipped (first one wins); empty words are an error.
func NewCatalog(entries []Entry) (*Catalog, error) {
	seen := make(map[string]struct{}, len(entries))
	out := make([]Entry, 0, len(entries))
	for i, e := range entries {
		e.Word = strings.TrimSpace(e.Word)
		e.ImageRef = strings.TrimSpace(e.ImageRef)
		if e.Word == "" {
			return nil, fmt.Errorf("entry %d: %w", i, ErrEmptyWord)
		}
		if e.ImageRef == "" {
			e.ImageRef = defaultImageRef(e.Word)
		}
		key := strings.ToLower(e.Word)
		if _, dup := seen[key]; dup {
			log.Warn().Str("word", e.Word).Msg("duplicate vocab entry skipped")
			continue
		}
		seen[key] = struct{}{}
		out = append(out, e)
	}
	return &Catalog{entries: out}, nil
}

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.entries) }

// At returns the entry at position i.
func (c *Catalog) At(i int) Entry { return c.entries[i] }

// Entries returns a copy of all entries in catalog order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Parse reads catalog text into entries.
func Parse(s string) ([]Entry, error) {
	var out []Entry
	sc := bufio.NewScanner(strings.NewReader(s))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		word, ref, _ := strings.Cut(line, ",")
		out = append(out, Entry{Word: strings.TrimSpace(word), ImageRef: strings.TrimSpace(ref)})
	}
	return out, sc.Err()
}

// ReadFile loads and parses a catalog file from disk.
func ReadFile(path string) ([]Entry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(b))
}

func defaultImageRef(word string) string {
	return "images/" + strings.ToLower(word) + ".png"
}
