package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitOutsideRepository(t *testing.T) {
	committed, err := Commit(t.TempDir(), "nothing", time.Now())
	require.NoError(t, err)
	assert.False(t, committed)
}

func TestCommitOnlyWhenChanged(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(dir))
	require.NoError(t, Init(dir), "init is idempotent")

	deckDir := filepath.Join(dir, "french")
	require.NoError(t, os.MkdirAll(deckDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(deckDir, "1_D.txt"), []byte("0,1"), 0o644))

	when := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	committed, err := Commit(deckDir, "review french", when)
	require.NoError(t, err)
	assert.True(t, committed)

	committed, err = Commit(dir, "no changes", when)
	require.NoError(t, err)
	assert.False(t, committed)

	require.NoError(t, os.WriteFile(filepath.Join(deckDir, "1_D.txt"), []byte("2,5"), 0o644))
	committed, err = Commit(dir, "review french again", when.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, committed)

	repo, err := git.PlainOpen(dir)
	require.NoError(t, err)
	head, err := repo.Head()
	require.NoError(t, err)
	commit, err := repo.CommitObject(head.Hash())
	require.NoError(t, err)
	assert.Equal(t, "review french again", commit.Message)
	assert.Equal(t, authorName, commit.Author.Name)
}
