//go:build cgo

package cache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/graphene/internal/core/model"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "extractions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func sampleEntry() model.CacheEntry {
	return model.CacheEntry{
		Fingerprint: model.Fingerprint("the agency announced the policy."),
		DocID:       "press.txt",
		Triples: []model.Triple{
			{Subject: "agency", Relation: "announced", Object: "policy", Confidence: 0.8},
		},
	}
}

func TestColdStartIsEmpty(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	entry, err := c.Get(ctx, "deadbeef")
	require.NoError(t, err)
	assert.Nil(t, entry)

	n, err := c.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestPutGetRoundtrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	entry := sampleEntry()

	require.NoError(t, c.Put(ctx, entry))

	got, err := c.Get(ctx, entry.Fingerprint)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entry.DocID, got.DocID)
	assert.Equal(t, entry.Triples, got.Triples)
}

func TestGetIsReadStable(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	entry := sampleEntry()
	require.NoError(t, c.Put(ctx, entry))

	first, err := c.Get(ctx, entry.Fingerprint)
	require.NoError(t, err)
	second, err := c.Get(ctx, entry.Fingerprint)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPutOverwrites(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	entry := sampleEntry()
	require.NoError(t, c.Put(ctx, entry))

	entry.Triples = append(entry.Triples, model.Triple{
		Subject: "agency", Relation: "withdrew", Object: "draft", Confidence: 0.5,
	})
	require.NoError(t, c.Put(ctx, entry))

	got, err := c.Get(ctx, entry.Fingerprint)
	require.NoError(t, err)
	assert.Len(t, got.Triples, 2)
}

func TestPutEmptyTripleList(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	entry := model.CacheEntry{Fingerprint: model.Fingerprint("nothing here"), DocID: "empty.txt"}

	require.NoError(t, c.Put(ctx, entry))

	got, err := c.Get(ctx, entry.Fingerprint)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.Triples)
}

func TestClear(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	entry := sampleEntry()
	require.NoError(t, c.Put(ctx, entry))

	require.NoError(t, c.Clear(ctx))

	got, err := c.Get(ctx, entry.Fingerprint)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSecondOpenIsRejectedWhileLocked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extractions.db")
	c, err := Open(path)
	require.NoError(t, err)
	defer c.Close()

	_, err = Open(path)
	assert.ErrorIs(t, err, ErrIO)
}

func TestReopenSeesPersistedEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extractions.db")
	ctx := context.Background()
	entry := sampleEntry()

	c, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, c.Put(ctx, entry))
	require.NoError(t, c.Close())

	c, err = Open(path)
	require.NoError(t, err)
	defer c.Close()

	got, err := c.Get(ctx, entry.Fingerprint)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entry.Triples, got.Triples)
}
