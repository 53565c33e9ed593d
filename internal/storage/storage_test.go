package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_SaveAndOpen(t *testing.T) {
	ctx := context.Background()
	store := New("mem://localhost/attachments", "/files")

	key, publicURL, err := store.Save(ctx, "budget.pdf", strings.NewReader("blob-content"))
	if !assert.NoError(t, err) {
		return
	}
	assert.True(t, strings.HasSuffix(key, ".pdf"))
	assert.Equal(t, "/files/"+key, publicURL)

	reader, err := store.Open(ctx, key)
	if !assert.NoError(t, err) {
		return
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	assert.NoError(t, err)
	assert.Equal(t, "blob-content", string(data))
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := New("mem://localhost/attachments", "/files")

	key, _, err := store.Save(ctx, "note.txt", strings.NewReader("x"))
	if !assert.NoError(t, err) {
		return
	}

	assert.NoError(t, store.Delete(ctx, key))

	_, err = store.Open(ctx, key)
	assert.Error(t, err)
}

func TestStore_KeysAreUnique(t *testing.T) {
	ctx := context.Background()
	store := New("mem://localhost/attachments", "/files")

	first, _, err := store.Save(ctx, "same.txt", strings.NewReader("a"))
	assert.NoError(t, err)
	second, _, err := store.Save(ctx, "same.txt", strings.NewReader("b"))
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
}
