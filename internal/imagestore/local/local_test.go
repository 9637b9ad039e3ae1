package local

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *LocalImageStore {
	t.Helper()
	s, err := NewLocalImageStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestSaveAndOpen(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	key, err := s.Save(ctx, "room_1_", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "room_1_"))
	assert.True(t, strings.HasSuffix(key, ".png"))

	r, mimeType, err := s.Open(ctx, key)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
	assert.Equal(t, "image/png", mimeType)
}

func TestListByPrefix(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Save(ctx, "room_1_", "image/jpeg", strings.NewReader("a"))
	require.NoError(t, err)
	_, err = s.Save(ctx, "room_1_", "image/jpeg", strings.NewReader("b"))
	require.NoError(t, err)
	_, err = s.Save(ctx, "room_2_", "image/jpeg", strings.NewReader("c"))
	require.NoError(t, err)

	keys, err := s.ListByPrefix(ctx, "room_1_")
	require.NoError(t, err)
	assert.Len(t, keys, 2)

	// room_1_ must not match room_10_.
	keys, err = s.ListByPrefix(ctx, "room_10_")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	key, err := s.Save(ctx, "room_3_", "image/jpeg", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, key))

	_, _, err = s.Open(ctx, key)
	assert.Error(t, err)
}

func TestRejectsPathTraversal(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, _, err := s.Open(ctx, "../outside.jpg")
	assert.Error(t, err)

	assert.Error(t, s.Delete(ctx, "../../etc/passwd"))
}
