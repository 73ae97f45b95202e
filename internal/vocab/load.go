package vocab

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/vocabdrop/assets"
)

// Source selects where Load reads the catalog from.
//
// Resolution order:
//  1. DB set: read vocab_entries; if the table is empty it is seeded from
//     File (or the embedded default) first.
//  2. File set: read that file.
//  3. Otherwise: the embedded default list.
type Source struct {
	File string
	DB   *sql.DB // migrated by the caller
}

// Load builds the catalog for src.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	if src.DB == nil {
		return loadText(src.File)
	}

	st := NewStore(src.DB)
	n, err := st.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count vocab_entries: %w", err)
	}
	if n == 0 {
		seed, err := loadText(src.File)
		if err != nil {
			return nil, err
		}
		if err := st.Replace(ctx, seed); err != nil {
			return nil, fmt.Errorf("seed vocab_entries: %w", err)
		}
		log.Info().Int("entries", seed.Len()).Msg("seeded vocab database")
	}
	return st.Load(ctx)
}

func loadText(path string) (*Catalog, error) {
	var (
		entries []Entry
		err     error
	)
	if path != "" {
		entries, err = ReadFile(path)
	} else {
		var text string
		if text, err = assets.Catalog(); err == nil {
			entries, err = Parse(text)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return NewCatalog(entries)
}
