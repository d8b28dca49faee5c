package dedupe

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRegistry_FindThenRecord(t *testing.T) {
	registry := NewMemoryRegistry()
	ctx := context.Background()
	sig := BuildSignature("unique ticket content")

	found, err := registry.FindPossibleDuplicate(ctx, sig)
	require.NoError(t, err)
	assert.Empty(t, found)

	id, err := registry.RecordTicket(ctx, sig)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "TKT-"))

	found, err = registry.FindPossibleDuplicate(ctx, sig)
	require.NoError(t, err)
	assert.Equal(t, id, found)
}

func TestMemoryRegistry_RecordIdempotent(t *testing.T) {
	registry := NewMemoryRegistry()
	ctx := context.Background()
	sig := BuildSignature("same ticket")

	first, err := registry.RecordTicket(ctx, sig)
	require.NoError(t, err)
	second, err := registry.RecordTicket(ctx, sig)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, registry.Len())
}

func TestMemoryRegistry_EmptySignatureLookup(t *testing.T) {
	registry := NewMemoryRegistry()

	found, err := registry.FindPossibleDuplicate(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestMemoryRegistry_ConcurrentSameSignature(t *testing.T) {
	registry := NewMemoryRegistry()
	sig := BuildSignature("racy ticket")

	const workers = 32
	ids := make([]string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := registry.RecordTicket(context.Background(), sig)
			assert.NoError(t, err)
			ids[i] = id
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
	assert.Equal(t, 1, registry.Len())
}

func TestIDGenerator_UniqueAndFormatted(t *testing.T) {
	gen := NewIDGenerator()
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := gen.Next()
		assert.Regexp(t, `^TKT-[0-9A-Z]+-\d+$`, id)
		_, dup := seen[id]
		assert.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}
