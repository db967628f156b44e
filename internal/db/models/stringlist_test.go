package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringList(t *testing.T) {
	v, err := StringList{"finance", "admin"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["finance","admin"]`, v)

	v, err = StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	tests := []struct {
		name string
		src  any
		want StringList
	}{
		{name: "nil", src: nil, want: StringList{}},
		{name: "bytes", src: []byte(`["a","b"]`), want: StringList{"a", "b"}},
		{name: "string", src: `["c"]`, want: StringList{"c"}},
		{name: "empty", src: "", want: StringList{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l StringList
			require.NoError(t, l.Scan(tt.src))
			assert.Equal(t, tt.want, l)
		})
	}

	var l StringList
	require.Error(t, l.Scan(42))

	assert.True(t, StringList{"a", "b"}.Contains("b"))
	assert.False(t, StringList{"a"}.Contains("z"))
}
