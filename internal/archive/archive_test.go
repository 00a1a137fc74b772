package archive

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeZip(t *testing.T, files map[string]string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "bundle.zip")
	f, err := os.Create(p)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	for name, body := range files {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
	return p
}

func TestExtract(t *testing.T) {
	zp := writeZip(t, map[string]string{
		"models/model.mtl": "newmtl body\n",
		"models/model.obj": "o body\n",
	})
	dest := t.TempDir()

	got, err := Extract(zp, "models/model.mtl", dest)
	require.NoError(t, err)
	data, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Equal(t, "newmtl body\n", string(data))
	assert.Equal(t, "model.mtl", filepath.Base(got))
	assert.Equal(t, "models", filepath.Base(filepath.Dir(got)))
}

func TestExtractMissing(t *testing.T) {
	zp := writeZip(t, map[string]string{"a.txt": "a"})
	_, err := Extract(zp, "b.txt", t.TempDir())
	assert.ErrorIs(t, err, ErrNotInArchive)
}

func TestExtractRefusesEscape(t *testing.T) {
	zp := writeZip(t, map[string]string{"a.txt": "a"})
	_, err := Extract(zp, "../../etc/passwd", t.TempDir())
	assert.Error(t, err)
}

func TestExtractBadArchive(t *testing.T) {
	p := filepath.Join(t.TempDir(), "broken.zip")
	require.NoError(t, os.WriteFile(p, []byte("not a zip"), 0644))
	_, err := Extract(p, "a.txt", t.TempDir())
	assert.Error(t, err)
}
