package hashing

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func norm(vec []float32) float64 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum)
}

func TestNew(t *testing.T) {
	t.Run("default dimensions", func(t *testing.T) {
		e := New()
		assert.Equal(t, DefaultDimensions, e.Dimensions())
	})

	t.Run("custom dimensions", func(t *testing.T) {
		e := New(WithDimensions(64))
		assert.Equal(t, 64, e.Dimensions())
	})

	t.Run("invalid dimensions ignored", func(t *testing.T) {
		e := New(WithDimensions(0))
		assert.Equal(t, DefaultDimensions, e.Dimensions())
	})
}

func TestEmbed_Deterministic(t *testing.T) {
	e := New()
	ctx := context.Background()

	a, err := e.Embed(ctx, "John Smith works as a software engineer")
	require.NoError(t, err)
	b, err := e.Embed(ctx, "John Smith works as a software engineer")
	require.NoError(t, err)

	assert.Equal(t, a, b, "same text must embed to an identical vector")
}

func TestEmbed_UnitNorm(t *testing.T) {
	e := New()
	ctx := context.Background()

	tests := []string{
		"hello world",
		"a",
		"Email: john.smith@email.com Phone: (555) 123-4567",
		"repeated repeated repeated words words",
	}

	for _, text := range tests {
		vec, err := e.Embed(ctx, text)
		require.NoError(t, err)
		assert.Len(t, vec, DefaultDimensions)
		assert.InDelta(t, 1.0, norm(vec), 1e-5, "non-empty text %q must embed to unit norm", text)
	}
}

func TestEmbed_EmptyInput(t *testing.T) {
	e := New()
	ctx := context.Background()

	for _, text := range []string{"", "   ", "!!! ... ???"} {
		vec, err := e.Embed(ctx, text)
		require.NoError(t, err)
		assert.Len(t, vec, DefaultDimensions)
		assert.Zero(t, norm(vec), "input %q must embed to the zero vector", text)
	}
}

func TestEmbed_CaseFolding(t *testing.T) {
	e := New()
	ctx := context.Background()

	a, err := e.Embed(ctx, "HELLO World")
	require.NoError(t, err)
	b, err := e.Embed(ctx, "hello world")
	require.NoError(t, err)

	assert.Equal(t, a, b, "embedding must be case-insensitive")
}

func TestEmbed_CollisionsAccumulate(t *testing.T) {
	// With a single bucket, every token collides; the summed term
	// frequencies must still normalise to a unit vector.
	e := New(WithDimensions(1))
	vec, err := e.Embed(context.Background(), "alpha beta gamma")
	require.NoError(t, err)
	require.Len(t, vec, 1)
	assert.InDelta(t, 1.0, float64(vec[0]), 1e-6)
}

func TestEmbedBatch(t *testing.T) {
	e := New()
	ctx := context.Background()

	texts := []string{"first text", "second text", ""}
	vecs, err := e.EmbedBatch(ctx, texts)
	require.NoError(t, err)
	require.Len(t, vecs, 3)

	single, err := e.Embed(ctx, "second text")
	require.NoError(t, err)
	assert.Equal(t, single, vecs[1], "batch embedding must match single embedding")
	assert.Zero(t, norm(vecs[2]))
}

func TestModelName(t *testing.T) {
	assert.Equal(t, "hashed-tf", New().ModelName())
}
