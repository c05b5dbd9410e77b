package task

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededRepo(t *testing.T, policy IDPolicy) *MemoryRepo {
	t.Helper()

	repo := NewMemoryRepo(policy)
	require.NoError(t, repo.Seed(context.Background(), Seed()))
	return repo
}

func ids(tasks []Task) []int {
	out := make([]int, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestParseIDPolicy(t *testing.T) {
	p, err := ParseIDPolicy("")
	require.NoError(t, err)
	assert.Equal(t, IDSequential, p)

	p, err = ParseIDPolicy(" Length ")
	require.NoError(t, err)
	assert.Equal(t, IDLength, p)

	_, err = ParseIDPolicy("uuid")
	assert.ErrorIs(t, err, ErrUnknownIDPolicy)
}

func TestMemoryRepo_CreateListInsertionOrder(t *testing.T) {
	repo := NewMemoryRepo(IDSequential)
	ctx := context.Background()

	for _, text := range []string{"a", "b", "c"} {
		_, err := repo.Create(ctx, StringPtr(text))
		require.NoError(t, err)
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int{1, 2, 3}, ids(list))
	for i, text := range []string{"a", "b", "c"} {
		assert.Equal(t, text, list[i].TextValue())
		assert.False(t, list[i].Completed)
	}
}

func TestMemoryRepo_ListReturnsCopy(t *testing.T) {
	repo := seededRepo(t, IDSequential)
	ctx := context.Background()

	list, err := repo.List(ctx)
	require.NoError(t, err)
	list[0].Completed = true

	again, err := repo.List(ctx)
	require.NoError(t, err)
	assert.False(t, again[0].Completed)
}

func TestMemoryRepo_CreateAfterSeed(t *testing.T) {
	for _, policy := range []IDPolicy{IDSequential, IDLength} {
		t.Run(string(policy), func(t *testing.T) {
			repo := seededRepo(t, policy)

			created, err := repo.Create(context.Background(), StringPtr("Write spec"))
			require.NoError(t, err)
			assert.Equal(t, 4, created.ID)
			assert.Equal(t, "Write spec", created.TextValue())
			assert.False(t, created.Completed)
		})
	}
}

func TestMemoryRepo_Toggle(t *testing.T) {
	repo := seededRepo(t, IDSequential)
	ctx := context.Background()

	got, ok, err := repo.Toggle(ctx, 2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Task{ID: 2, Text: StringPtr("Learn Node.js"), Completed: true}, got)

	got, ok, err = repo.Toggle(ctx, 2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, got.Completed)
}

func TestMemoryRepo_ToggleMissingLeavesCollection(t *testing.T) {
	repo := seededRepo(t, IDSequential)
	ctx := context.Background()

	before, err := repo.List(ctx)
	require.NoError(t, err)

	_, ok, err := repo.Toggle(ctx, 999)
	require.NoError(t, err)
	assert.False(t, ok)

	after, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestMemoryRepo_DeleteIsIdempotent(t *testing.T) {
	repo := seededRepo(t, IDSequential)
	ctx := context.Background()

	n, err := repo.Delete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = repo.Delete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, ids(list))
}

func TestMemoryRepo_DeleteThenCreate(t *testing.T) {
	t.Run("sequential ids stay unique", func(t *testing.T) {
		repo := seededRepo(t, IDSequential)
		ctx := context.Background()

		_, err := repo.Delete(ctx, 1)
		require.NoError(t, err)
		created, err := repo.Create(ctx, StringPtr("new"))
		require.NoError(t, err)
		assert.Equal(t, 4, created.ID)

		list, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int{2, 3, 4}, ids(list))
	})

	t.Run("length ids collide", func(t *testing.T) {
		repo := seededRepo(t, IDLength)
		ctx := context.Background()

		_, err := repo.Delete(ctx, 1)
		require.NoError(t, err)
		created, err := repo.Create(ctx, StringPtr("new"))
		require.NoError(t, err)
		assert.Equal(t, 3, created.ID)

		list, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int{2, 3, 3}, ids(list))

		// toggle hits the first match only, delete removes both
		got, ok, err := repo.Toggle(ctx, 3)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "Build a project", got.TextValue())

		n, err := repo.Delete(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})
}

func TestMemoryRepo_ConcurrentCreatesGetDistinctIDs(t *testing.T) {
	repo := seededRepo(t, IDSequential)
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.Create(ctx, StringPtr("x"))
		}()
	}
	wg.Wait()

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 53)

	seen := map[int]bool{}
	for _, task := range list {
		assert.False(t, seen[task.ID])
		seen[task.ID] = true
	}
}
