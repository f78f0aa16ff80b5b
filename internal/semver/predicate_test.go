package semver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredicateCaretAllowsMinorAndPatchBumps(t *testing.T) {
	p, err := ParsePredicate("^1.2.3")
	require.NoError(t, err)

	ok, err := p.Matches(Version{1, 2, 3})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Matches(Version{1, 9, 0})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Matches(Version{2, 0, 0})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPredicateTildeAllowsPatchOnly(t *testing.T) {
	p, err := ParsePredicate("~1.2.3")
	require.NoError(t, err)

	ok, err := p.Matches(Version{1, 2, 9})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Matches(Version{1, 3, 0})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPredicateExact(t *testing.T) {
	p, err := ParsePredicate("=1.2.3")
	require.NoError(t, err)

	ok, err := p.Matches(Version{1, 2, 3})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Matches(Version{1, 2, 4})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPredicateIntersectionConjunction(t *testing.T) {
	gte, err := ParsePredicate(">=1.0.0")
	require.NoError(t, err)
	lt, err := ParsePredicate("<1.0.0")
	require.NoError(t, err)
	conflict := gte.Intersect(lt)

	ok, err := conflict.Matches(Version{0, 9, 0})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = conflict.Matches(Version{1, 0, 0})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPredicateInvalid(t *testing.T) {
	_, err := ParsePredicate("garbage")
	assert.Error(t, err)
}
