package imagestore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDataURI(t *testing.T) {
	data, ext, err := decodeDataURI("data:image/png;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)
	assert.Equal(t, ".png", ext)

	_, ext, err = decodeDataURI("data:image/jpeg;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, ".jpeg", ext)
}

func TestDecodeDataURIRejectsGarbage(t *testing.T) {
	cases := []string{
		"https://example.com/image.png", // plain URL, not a data URI
		"data:image/png,no-base64-marker",
		"data:image/png;base64,!!!not-base64!!!",
	}
	for _, in := range cases {
		_, _, err := decodeDataURI(in)
		assert.Error(t, err, in)
	}
}
