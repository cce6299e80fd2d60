package dataset

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listinglens/dashboard/internal/domain"
)

func TestLoadDefault(t *testing.T) {
	t.Run("serves the file contents on every open", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cleaned_replaced_banggood.csv")
		require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n"), 0644))

		d := LoadDefault(path)
		require.NoError(t, d.Err())

		for i := 0; i < 2; i++ {
			name, r, err := d.Open()
			require.NoError(t, err)
			assert.Equal(t, "cleaned_replaced_banggood.csv", name)

			data, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, "a,b\n1,2\n", string(data))
		}
	})

	t.Run("missing file is deferred to open", func(t *testing.T) {
		d := LoadDefault(filepath.Join(t.TempDir(), "missing.csv"))

		assert.ErrorIs(t, d.Err(), domain.ErrDefaultDatasetUnavailable)

		_, r, err := d.Open()
		assert.Nil(t, r)
		assert.ErrorIs(t, err, domain.ErrDefaultDatasetUnavailable)
	})

	t.Run("empty path", func(t *testing.T) {
		d := LoadDefault("")

		_, _, err := d.Open()
		assert.ErrorIs(t, err, domain.ErrDefaultDatasetUnavailable)
	})
}
