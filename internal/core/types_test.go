// AngelaMos | 2026
// types_test.go

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListValue(t *testing.T) {
	v, err := StringList{"go", "testing"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["go","testing"]`, v)

	v, err = StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v, "nil lists persist as an empty jsonb array")
}

func TestStringListScan(t *testing.T) {
	var l StringList
	require.NoError(t, l.Scan([]byte(`["a","b"]`)))
	assert.Equal(t, StringList{"a", "b"}, l)

	require.NoError(t, l.Scan(`["c"]`))
	assert.Equal(t, StringList{"c"}, l)

	require.NoError(t, l.Scan(nil))
	assert.Nil(t, l)

	assert.Error(t, l.Scan(42))
}

func TestStringListContains(t *testing.T) {
	l := StringList{"go", "sql"}

	assert.True(t, l.Contains("go"))
	assert.False(t, l.Contains("rust"))
	assert.False(t, StringList(nil).Contains("go"))
}
