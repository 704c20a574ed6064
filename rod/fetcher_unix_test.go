//go:build integration && !windows

package rod_test

import (
	"syscall"
	"testing"
	"time"

	"github.com/fwojciec/newsparse/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func processAlive(pid int) bool {
	return syscall.Kill(pid, syscall.Signal(0)) == nil
}

func TestFetcher_Close(t *testing.T) {
	t.Parallel()

	t.Run("owned manager is shut down with the fetcher", func(t *testing.T) {
		t.Parallel()

		fetcher, err := rod.NewFetcher()
		require.NoError(t, err)
		pid := fetcher.LauncherPID()
		require.NotZero(t, pid)
		require.True(t, processAlive(pid))

		require.NoError(t, fetcher.Close())
		time.Sleep(100 * time.Millisecond)

		assert.False(t, processAlive(pid))
	})

	t.Run("closing the fetcher closes a shared manager", func(t *testing.T) {
		t.Parallel()

		manager, err := rod.NewBrowserManager()
		require.NoError(t, err)
		pid := manager.LauncherPID()
		fetcher, err := rod.NewFetcher(rod.WithManager(manager))
		require.NoError(t, err)

		require.NoError(t, fetcher.Close())
		time.Sleep(100 * time.Millisecond)

		assert.True(t, manager.Closed())
		assert.False(t, processAlive(pid))
		assert.NoError(t, manager.Close())
	})
}
