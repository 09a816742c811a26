// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package predicate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobMatcher(t *testing.T) {
	m := GlobMatcher{}
	cases := map[string]map[string]bool{
		"*.go": {
			"main.go":      true,
			"main_test.go": true,
			"main.goo":     false,
			"pkg/main.go":  false,
		},
		"**/*.go": {
			"main.go":         true,
			"pkg/fs/File.go":  true,
			"pkg/fs/File.txt": false,
		},
		"file?.{txt,md}": {
			"file1.txt": true,
			"file2.md":  true,
			"file10.md": false,
		},
	}
	for pattern, names := range cases {
		p, err := m.Compile(pattern)
		require.NoError(t, err)
		for name, expected := range names {
			assert.Equal(t, expected, p.Match(name), pattern+" "+name)
		}
	}
	_, err := m.Compile("[a-")
	require.Error(t, err)
}

func TestRegexpMatcher(t *testing.T) {
	m := RegexpMatcher{}
	p, err := m.Compile(`\.go$`)
	require.NoError(t, err)
	assert.True(t, p.Match("pkg/main.go"))
	assert.False(t, p.Match("pkg/main.goo"))
	assert.IsType(t, regexpPattern{}, p)

	p, err = m.Compile(`^[a-z]+_test$`)
	require.NoError(t, err)
	assert.True(t, p.Match("matcher_test"))
	assert.False(t, p.Match("Matcher_test"))

	_, err = m.Compile("a(b")
	require.Error(t, err)
}
