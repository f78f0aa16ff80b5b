package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFastExtractPackageName(t *testing.T) {
	src := []byte("@prefix : <http://example.com/widget/> .\n:widget registry:packageName \"@ns/widget\" .\n")
	name, ok := FastExtractPackageName(src)
	assert.True(t, ok)
	assert.Equal(t, "@ns/widget", name)
}

func TestFastExtractPackageNameAbsent(t *testing.T) {
	src := []byte("@prefix : <http://example.com/widget/> .\n")
	_, ok := FastExtractPackageName(src)
	assert.False(t, ok)
}
