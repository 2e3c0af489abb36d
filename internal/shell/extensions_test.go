package shell

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListExtensions(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b-aliases.sh", "a-completions.sh", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("# ext"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.sh"), 0o755))

	scripts, err := ListExtensions(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a-completions.sh"),
		filepath.Join(dir, "b-aliases.sh"),
	}, scripts, "only *.sh files, sorted, directories skipped")
}

func TestListExtensions_MissingOrUnsetDir(t *testing.T) {
	scripts, err := ListExtensions("")
	require.NoError(t, err)
	assert.Nil(t, scripts)

	scripts, err = ListExtensions(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Nil(t, scripts)
}
