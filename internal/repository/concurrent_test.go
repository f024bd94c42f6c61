package repository

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/questgame/internal/db"
	"github.com/alexanderramin/questgame/internal/domain"
	"github.com/alexanderramin/questgame/internal/testutil"
)

// newConcurrentTestDB creates a file-backed SQLite database in a temp directory.
// Unlike :memory:, a file-backed DB shares state across all connections in the
// pool, which is required to test real concurrent access with WAL mode.
func newConcurrentTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(filepath.Join(t.TempDir(), "concurrent_test.db"))
	require.NoError(t, err, "failed to create concurrent test database")
	t.Cleanup(func() { database.Close() })
	return database
}

// TestConcurrentAccess_ReadDuringWrite lists the backlog from several readers,
// as the snapshot server does, while a writer keeps adding items.
func TestConcurrentAccess_ReadDuringWrite(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteBacklogRepo(database)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			item := testutil.NewTestBacklogItem(fmt.Sprintf("Item-%d", i), domain.CategoryBuild)
			if err := repo.Create(ctx, item); err != nil {
				t.Errorf("writer: create item %d: %v", i, err)
				return
			}
		}
	}()

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				items, err := repo.List(ctx)
				if err != nil {
					t.Errorf("reader %d: list backlog: %v", reader, err)
					return
				}
				for _, item := range items {
					if item.ID == "" || item.Title == "" {
						t.Errorf("reader %d: half-written item %+v", reader, item)
						return
					}
				}
			}
		}(r)
	}

	wg.Wait()

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 20)
}

// TestConcurrentAccess_SequenceAllocation checks that backlog ids handed out
// from parallel connections never collide.
func TestConcurrentAccess_SequenceAllocation(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteBacklogRepo(database)

	const workers, perWorker = 4, 10
	ids := make(chan string, workers*perWorker)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				id, err := repo.NextID(ctx)
				if err != nil {
					t.Errorf("next id: %v", err)
					return
				}
				ids <- id
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers*perWorker)
	assert.True(t, seen["B-0001"])
	assert.True(t, seen[fmt.Sprintf("B-%04d", workers*perWorker)])
}
