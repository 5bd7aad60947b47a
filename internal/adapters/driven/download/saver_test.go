package download

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirSaver_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	saver := NewDirSaver(dir)

	path, err := saver.Save("grades.csv", []byte("subject,grade\n"))

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "grades.csv"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "subject,grade\n", string(data))
}

func TestDirSaver_Overwrites(t *testing.T) {
	saver := NewDirSaver(t.TempDir())

	_, err := saver.Save("avg_grades.png", []byte("old"))
	require.NoError(t, err)
	path, err := saver.Save("avg_grades.png", []byte("new"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestDirSaver_RejectsPaths(t *testing.T) {
	saver := NewDirSaver(t.TempDir())

	for _, name := range []string{"", "../grades.csv", "sub/grades.csv"} {
		_, err := saver.Save(name, []byte("x"))
		assert.Error(t, err, name)
	}
}

func TestNewDirSaver_DefaultsToWorkingDir(t *testing.T) {
	assert.Equal(t, ".", NewDirSaver("").Dir())
}
