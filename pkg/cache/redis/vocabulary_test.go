package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/resumematch/pkg/skill"
)

func TestDecodeEntries(t *testing.T) {
	got, err := decodeEntries([]byte(`[{"id":1,"name":"Python","category":"language"}]`))
	require.NoError(t, err)
	assert.Equal(t, []skill.Skill{{ID: 1, Name: "Python", Category: skill.CategoryLanguage}}, got)

	_, err = decodeEntries([]byte(`{`))
	assert.Error(t, err)
}

func TestNewVocabularyCacheRequiresClient(t *testing.T) {
	_, err := NewVocabularyCache(nil, "", time.Minute)
	assert.Error(t, err)
}

// Runs against a live server only when REDIS_URL is set.
func TestVocabularyCacheRoundTrip(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	ctx := context.Background()
	client, err := Connect(ctx, url)
	require.NoError(t, err)
	defer client.Close()

	c, err := NewVocabularyCache(client, "test:vocab:"+uuid.NewString(), time.Minute)
	require.NoError(t, err)

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	entries := []skill.Skill{{ID: 1, Name: "Python", Category: skill.CategoryLanguage}}
	require.NoError(t, c.Set(ctx, entries))
	got, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, entries, got)

	require.NoError(t, c.Invalidate(ctx))
	_, ok, err = c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
