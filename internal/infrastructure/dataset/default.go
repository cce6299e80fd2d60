package dataset

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/listinglens/dashboard/internal/domain"
)

// Default is the bundled dataset read once at startup. A failed read is kept
// and only reported when the dataset is actually needed.
type Default struct {
	path string
	data []byte
	err  error
}

// LoadDefault reads the dataset at path, resolved against the working directory
func LoadDefault(path string) *Default {
	d := &Default{path: path}
	if path == "" {
		d.err = fmt.Errorf("%w: no default dataset configured", domain.ErrDefaultDatasetUnavailable)
		return d
	}

	data, err := os.ReadFile(path)
	if err != nil {
		d.err = fmt.Errorf("%w: %v", domain.ErrDefaultDatasetUnavailable, err)
		log.Warn().Err(err).Str("path", path).Msg("default dataset not loaded; uploads still work")
		return d
	}

	d.data = data
	log.Info().Str("path", path).Int("bytes", len(data)).Msg("default dataset loaded")
	return d
}

// Open returns a fresh reader over the dataset, or the stored load error
func (d *Default) Open() (string, io.Reader, error) {
	if d.err != nil {
		return "", nil, d.err
	}
	return filepath.Base(d.path), bytes.NewReader(d.data), nil
}

// Err returns the startup load error, if any
func (d *Default) Err() error {
	return d.err
}
