package durations

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
)

// Load reads a dataset from source: a file path, a file:// URI or a
// mysql:// URI.
func Load(ctx context.Context, source string) (*Dataset, error) {
	var (
		ds  *Dataset
		err error
	)
	switch {
	case strings.HasPrefix(source, "mysql://"):
		ds, err = LoadMySQL(ctx, source)
	case strings.HasPrefix(source, "file://"):
		ds, err = LoadFile(strings.TrimPrefix(source, "file://"))
	default:
		ds, err = LoadFile(source)
	}
	if err != nil {
		return nil, err
	}
	ds.source = source

	log.Debug().
		Str("source", source).
		Int("durations", ds.Len()).
		Int("incomplete", len(ds.incomplete)).
		Msg("loaded duration data")
	return ds, nil
}
