package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/jqrt/pkg/catalog"
)

func TestCatalogRepositoryRoundTrip(t *testing.T) {
	repo, err := NewFilesystemCatalogRepository(t.TempDir())
	require.NoError(t, err)

	cat, err := catalog.Load(filepath.Join("..", "catalog", "testdata", "core.yaml"))
	require.NoError(t, err)
	require.NoError(t, repo.Save(cat))

	got, err := repo.Load("core")
	require.NoError(t, err)
	assert.Equal(t, cat.Cases, got.Cases)
	assert.Equal(t, filepath.Join(repo.Dir(), "core.yaml"), got.Path)

	list, err := repo.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "core", list[0].Name)

	require.NoError(t, repo.Delete("core"))
	_, err = repo.Load("core")
	assert.True(t, errors.Is(err, ErrCatalogNotFound))
	assert.True(t, errors.Is(repo.Delete("core"), ErrCatalogNotFound))
}

func TestCatalogRepositoryListSkipsBroken(t *testing.T) {
	repo, err := NewFilesystemCatalogRepository(t.TempDir())
	require.NoError(t, err)

	one := "1"
	for _, name := range []string{"zeta", "alpha"} {
		require.NoError(t, repo.Save(&catalog.Catalog{Name: name, Cases: []catalog.Case{
			{ID: "c", Builtin: "length", Args: []string{"-1"}, Output: &one},
		}}))
	}
	require.NoError(t, os.WriteFile(filepath.Join(repo.Dir(), "broken.yaml"), []byte("name: ["), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(repo.Dir(), "notes.txt"), []byte("x"), 0644))

	list, err := repo.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "alpha", list[0].Name)
	assert.Equal(t, "zeta", list[1].Name)
}

func TestCatalogRepositoryNames(t *testing.T) {
	repo, err := NewFilesystemCatalogRepository(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", "..", "a/b", `a\b`} {
		_, err := repo.Load(name)
		assert.Error(t, err, "name %q", name)
	}
	assert.Error(t, repo.Save(nil))
	assert.Error(t, repo.Save(&catalog.Catalog{Name: "../escape"}))
}
