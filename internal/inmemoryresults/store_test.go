package inmemoryresults

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/varzip/internal/compress"
	"github.com/vk/varzip/internal/resultstore"
)

func TestPutAndGet(t *testing.T) {
	s := New()
	ctx := context.Background()
	r := &compress.Result{}

	require.NoError(t, s.Put(ctx, ":lib", r))

	got, ok := s.Get(ctx, ":lib")
	require.True(t, ok)
	assert.Same(t, r, got)

	_, ok = s.Get(ctx, ":app")
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len(ctx))
}

func TestPut_IsAppendOnly(t *testing.T) {
	s := New()
	ctx := context.Background()
	first := &compress.Result{}

	require.NoError(t, s.Put(ctx, ":lib", first))
	err := s.Put(ctx, ":lib", &compress.Result{})
	assert.ErrorIs(t, err, resultstore.ErrResultExists)
	assert.ErrorContains(t, err, ":lib")

	got, _ := s.Get(ctx, ":lib")
	assert.Same(t, first, got, "first result is kept")
}

func TestPut_NilResult(t *testing.T) {
	err := New().Put(context.Background(), ":lib", nil)
	assert.Error(t, err)
}

func TestResultsFor(t *testing.T) {
	s := New()
	ctx := context.Background()
	lib, core := &compress.Result{}, &compress.Result{}
	require.NoError(t, s.Put(ctx, ":lib", lib))
	require.NoError(t, s.Put(ctx, ":core", core))

	got := s.ResultsFor(ctx, []string{":lib", ":core", ":missing"})
	assert.Len(t, got, 2)
	assert.Same(t, lib, got[":lib"])
	assert.Same(t, core, got[":core"])
	assert.NotContains(t, got, ":missing")

	assert.Empty(t, s.ResultsFor(ctx, nil))
}

func TestConcurrentAccess(t *testing.T) {
	s := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			path := fmt.Sprintf(":p%d", i)
			assert.NoError(t, s.Put(ctx, path, &compress.Result{}))
			_, ok := s.Get(ctx, path)
			assert.True(t, ok)
			s.ResultsFor(ctx, []string{":p0", path})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, s.Len(ctx))
}
