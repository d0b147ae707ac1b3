package simplified

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableConverter(t *testing.T) {
	c := NewTableConverter()

	assert.True(t, c.IsAvailable())

	tests := []struct {
		in   string
		want string
	}{
		{in: "這是繁體字", want: "这是繁体字"},
		{in: "已经是简体", want: "已经是简体"},
		{in: "mixed 漢字 text", want: "mixed 汉字 text"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		got, err := c.Convert(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestDisabled(t *testing.T) {
	c := NewDisabled()

	assert.False(t, c.IsAvailable())

	got, err := c.Convert("這是繁體字")
	require.NoError(t, err)
	assert.Equal(t, "這是繁體字", got)
}
