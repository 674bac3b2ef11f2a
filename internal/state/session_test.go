package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenTabEnforcesLimit(t *testing.T) {
	dir := t.TempDir()
	s := NewSession(SortNameAsc)

	for i := 0; i < MaxTabs; i++ {
		require.NoError(t, s.OpenTab(dir))
		assert.Equal(t, i, s.ActiveIndex)
	}

	err := s.OpenTab(dir)
	require.ErrorIs(t, err, ErrTooManyTabs)
	assert.Len(t, s.Tabs, MaxTabs)
	assert.Equal(t, MaxTabs-1, s.ActiveIndex)
}

func TestOpenTabFailureLeavesSessionUnchanged(t *testing.T) {
	s := NewSession(SortNameAsc)
	require.NoError(t, s.OpenTab(t.TempDir()))

	err := s.OpenTab(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Len(t, s.Tabs, 1)
	assert.Equal(t, 0, s.ActiveIndex)
}

func TestOpenTabInheritsActiveSortOrder(t *testing.T) {
	s := NewSession(SortNameAsc)
	require.NoError(t, s.OpenTab(t.TempDir()))
	s.Active().Sort(SortTimeDesc)

	require.NoError(t, s.OpenTab(t.TempDir()))
	assert.Equal(t, SortTimeDesc, s.Active().SortOrder)
}

func TestCloseLastTabIsNoop(t *testing.T) {
	s := NewSession(SortNameAsc)
	require.NoError(t, s.OpenTab(t.TempDir()))

	assert.False(t, s.CloseActiveTab())
	assert.Len(t, s.Tabs, 1)
	assert.Equal(t, 0, s.ActiveIndex)
}

func TestCloseActiveTabActivatesPrevious(t *testing.T) {
	s := NewSession(SortNameAsc)
	dirs := []string{t.TempDir(), t.TempDir(), t.TempDir()}
	for _, dir := range dirs {
		require.NoError(t, s.OpenTab(dir))
	}

	require.NoError(t, s.SwitchTo(1))
	require.True(t, s.CloseActiveTab())
	assert.Equal(t, 0, s.ActiveIndex)
	assert.Equal(t, dirs[0], s.Active().Directory)
	assert.Equal(t, dirs[2], s.Tabs[1].Directory)

	require.True(t, s.CloseActiveTab())
	assert.Equal(t, 0, s.ActiveIndex)
	assert.Equal(t, dirs[2], s.Active().Directory)
}

func TestSwitchToOutOfRange(t *testing.T) {
	s := NewSession(SortNameAsc)
	require.NoError(t, s.OpenTab(t.TempDir()))
	require.NoError(t, s.OpenTab(t.TempDir()))

	for _, idx := range []int{-1, 2, 9} {
		err := s.SwitchTo(idx)
		require.ErrorIs(t, err, ErrInvalidTab)
		assert.Equal(t, 1, s.ActiveIndex)
	}
	require.NoError(t, s.SwitchTo(0))
	assert.Equal(t, 0, s.ActiveIndex)
}

func TestViewsShowingExcludesActive(t *testing.T) {
	shared := t.TempDir()
	other := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(shared, "f"), nil, 0o644))

	s := NewSession(SortNameAsc)
	require.NoError(t, s.OpenTab(shared))
	require.NoError(t, s.OpenTab(other))
	require.NoError(t, s.OpenTab(shared))

	views := s.ViewsShowing(shared)
	require.Len(t, views, 1)
	assert.Same(t, s.Tabs[0], views[0])
	assert.Empty(t, s.ViewsShowing(filepath.Join(shared, "nowhere")))
}
