package imagehost

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDataURI(t *testing.T) {
	// "hi" base64 encoded
	mediaType, raw, err := decodeDataURI("data:image/png;base64,aGk=")
	require.NoError(t, err)
	assert.Equal(t, "image/png", mediaType)
	assert.Equal(t, []byte("hi"), raw)
}

func TestDecodeBarePayload(t *testing.T) {
	mediaType, raw, err := decodeDataURI("aGk=")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mediaType)
	assert.Equal(t, []byte("hi"), raw)
}

func TestDecodeMalformed(t *testing.T) {
	_, _, err := decodeDataURI("data:image/png;base64")
	assert.Error(t, err)

	_, _, err = decodeDataURI("data:image/png;base64,!!!notbase64!!!")
	assert.Error(t, err)
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "png", extension("image/png"))
	assert.Equal(t, "gif", extension("image/GIF"))
	assert.Equal(t, "jpeg", extension("image/jpeg"))
	assert.Equal(t, "jpeg", extension("application/octet-stream"))
}
