package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderDefaults(t *testing.T) {
	t.Parallel()

	ee := Newf("something broke").Build()
	assert.Equal(t, CategoryGeneric, ee.Category)
	assert.NotEmpty(t, ee.Component)
	assert.False(t, ee.Timestamp.IsZero())
}

func TestBuilderContextAndCategory(t *testing.T) {
	t.Parallel()

	ee := Newf("parse failed").
		Component("skos").
		Category(CategoryFileParsing).
		Context("file_path", "/tmp/agrovoc.rdf").
		Build()

	assert.Equal(t, "skos", ee.Component)
	assert.Equal(t, CategoryFileParsing, ee.Category)

	ctx := ee.GetContext()
	require.NotNil(t, ctx)
	assert.Equal(t, "/tmp/agrovoc.rdf", ctx["file_path"])

	// mutating the copy must not leak back
	ctx["file_path"] = "changed"
	assert.Equal(t, "/tmp/agrovoc.rdf", ee.GetContext()["file_path"])
}

func TestSentinelMatching(t *testing.T) {
	t.Parallel()

	sentinel := NewStd("scheme not found")
	wrapped := New(fmt.Errorf("loading thesaurus: %w", sentinel)).
		Category(CategoryScheme).
		Build()

	assert.True(t, Is(wrapped, sentinel))
	assert.True(t, IsCategory(wrapped, CategoryScheme))
	assert.False(t, IsNotFound(wrapped))
}

func TestUnwrapPreservesChain(t *testing.T) {
	t.Parallel()

	base := NewStd("base")
	ee := New(base).Build()
	assert.Equal(t, base, Unwrap(ee))
}
