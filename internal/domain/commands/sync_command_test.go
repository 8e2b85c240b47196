//go:build unit

package commands_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/multirepo/internal/domain/commands"
	"github.com/rios0rios0/multirepo/internal/domain/entities"
	doubles "github.com/rios0rios0/multirepo/test/infrastructure/repositorydoubles"
)

func TestSyncCommandExecute(t *testing.T) {
	t.Parallel()

	root := filepath.Join("/", "ws")
	libqi := filepath.Join(root, "qi", "libqi")
	libqimessaging := filepath.Join(root, "qi", "libqimessaging")
	bar := filepath.Join(root, "lib", "bar")

	t.Run("should clone missing repositories and fetch existing ones", func(t *testing.T) {
		t.Parallel()

		// given
		loader, _ := newLoader(map[string]string{"manifest.xml": workspaceManifest})
		spy := &doubles.SpyGitRepository{ExistingDirs: map[string]bool{libqimessaging: true}}
		cmd := commands.NewSyncCommand(loader, spy)

		// when
		report, err := cmd.Execute(context.Background(), commands.SyncOptions{
			Manifest: commands.ManifestOptions{Location: "manifest.xml"},
			Root:     root,
			Jobs:     2,
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"qi/libqi", "lib/bar"}, report.Cloned)
		assert.Equal(t, []string{"qi/libqimessaging"}, report.Fetched)
		assert.Empty(t, report.Failed)
		assert.ElementsMatch(t, []string{libqi, bar}, spy.ClonedDirs)
		assert.Equal(t, []string{libqimessaging}, spy.FetchedDirs)
	})

	t.Run("should only sync the requested groups", func(t *testing.T) {
		t.Parallel()

		// given
		loader, _ := newLoader(map[string]string{"manifest.xml": workspaceManifest})
		spy := &doubles.SpyGitRepository{}
		cmd := commands.NewSyncCommand(loader, spy)

		// when
		report, err := cmd.Execute(context.Background(), commands.SyncOptions{
			Manifest: commands.ManifestOptions{Location: "manifest.xml"},
			Root:     root,
			Groups:   []string{"naoqi"},
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"lib/bar"}, report.Cloned)
		assert.Equal(t, []string{bar}, spy.ClonedDirs)
	})

	t.Run("should record failures without stopping the other repositories", func(t *testing.T) {
		t.Parallel()

		// given
		loader, _ := newLoader(map[string]string{"manifest.xml": workspaceManifest})
		cloneErr := errors.New("authentication required")
		fetchErr := errors.New("remote hung up")
		spy := &doubles.SpyGitRepository{
			ExistingDirs: map[string]bool{libqimessaging: true},
			CloneErrs:    map[string]error{libqi: cloneErr},
			FetchErrs:    map[string]error{libqimessaging: fetchErr},
		}
		cmd := commands.NewSyncCommand(loader, spy)

		// when
		report, err := cmd.Execute(context.Background(), commands.SyncOptions{
			Manifest: commands.ManifestOptions{Location: "manifest.xml"},
			Root:     root,
			Jobs:     1,
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"lib/bar"}, report.Cloned)
		assert.Empty(t, report.Fetched)
		require.Len(t, report.Failed, 2)
		assert.Equal(t, "qi/libqi", report.Failed[0].Src)
		require.ErrorIs(t, report.Failed[0].Err, cloneErr)
		assert.Equal(t, "qi/libqimessaging", report.Failed[1].Src)
		require.ErrorIs(t, report.Failed[1].Err, fetchErr)
	})

	t.Run("should not touch the workspace in dry-run mode", func(t *testing.T) {
		t.Parallel()

		// given
		loader, _ := newLoader(map[string]string{"manifest.xml": workspaceManifest})
		spy := &doubles.SpyGitRepository{ExistingDirs: map[string]bool{libqi: true}}
		cmd := commands.NewSyncCommand(loader, spy)

		// when
		report, err := cmd.Execute(context.Background(), commands.SyncOptions{
			Manifest: commands.ManifestOptions{Location: "manifest.xml"},
			Root:     root,
			DryRun:   true,
		})

		// then
		require.NoError(t, err)
		assert.Empty(t, report.Cloned)
		assert.Empty(t, report.Fetched)
		assert.Empty(t, report.Failed)
		assert.Empty(t, spy.ClonedDirs)
		assert.Empty(t, spy.FetchedDirs)
	})

	t.Run("should fail every repository once the context is cancelled", func(t *testing.T) {
		t.Parallel()

		// given
		loader, _ := newLoader(map[string]string{"manifest.xml": workspaceManifest})
		spy := &doubles.SpyGitRepository{}
		cmd := commands.NewSyncCommand(loader, spy)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// when
		report, err := cmd.Execute(ctx, commands.SyncOptions{
			Manifest: commands.ManifestOptions{Location: "manifest.xml"},
			Root:     root,
		})

		// then
		require.NoError(t, err)
		assert.Len(t, report.Failed, 3)
		require.ErrorIs(t, report.Failed[0].Err, context.Canceled)
		assert.Empty(t, spy.ClonedDirs)
	})

	t.Run("should fail for an unknown group", func(t *testing.T) {
		t.Parallel()

		// given
		loader, _ := newLoader(map[string]string{"manifest.xml": workspaceManifest})
		cmd := commands.NewSyncCommand(loader, &doubles.SpyGitRepository{})

		// when
		report, err := cmd.Execute(context.Background(), commands.SyncOptions{
			Manifest: commands.ManifestOptions{Location: "manifest.xml"},
			Groups:   []string{"missing"},
		})

		// then
		require.ErrorIs(t, err, entities.ErrUnknownGroupRequested)
		assert.Nil(t, report)
	})
}
