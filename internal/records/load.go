package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/rshade/tablestate/internal/logging"
)

// Load errors.
var (
	ErrNoDataFiles       = errors.New("at least one data file is required")
	ErrUnsupportedFormat = errors.New("unsupported data file format (use .json, .yaml, or .yml)")
)

// Load reads every path concurrently and concatenates the records in
// argument order. Records without an id are assigned a ULID.
func Load(ctx context.Context, paths ...string) ([]Record, error) {
	if len(paths) == 0 {
		return nil, ErrNoDataFiles
	}

	results := make([][]Record, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			recs, err := LoadFile(path)
			if err != nil {
				return err
			}
			results[i] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []Record
	for _, recs := range results {
		all = append(all, recs...)
	}

	log := logging.FromContext(ctx)
	log.Debug().Ctx(ctx).
		Str("component", "records").
		Str("operation", "load").
		Int("files", len(paths)).
		Int("records", len(all)).
		Msg("loaded records")
	return all, nil
}

// LoadFile decodes one JSON or YAML array of objects.
func LoadFile(path string) ([]Record, error) {
	var unmarshal func([]byte, any) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		unmarshal = json.Unmarshal
	case ".yaml", ".yml":
		unmarshal = yaml.Unmarshal
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading data file %s: %w", path, err)
	}

	var recs []Record
	if err = unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("parsing data file %s: %w", path, err)
	}

	for i, r := range recs {
		if r == nil {
			r = Record{}
			recs[i] = r
		}
		if r.ID() == "" {
			r[FieldID] = ulid.Make().String()
		}
	}
	return recs, nil
}
