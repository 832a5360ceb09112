package util

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripCodeFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFences(`{"a":1}`))
}

func TestDecodeBase64MaybeDataURL(t *testing.T) {
	payload := []byte{0xFF, 0xD8, 0x01, 0x02}
	b64 := base64.StdEncoding.EncodeToString(payload)

	b, mime, err := DecodeBase64MaybeDataURL(b64)
	require.NoError(t, err)
	assert.Equal(t, payload, b)
	assert.Empty(t, mime)

	b, mime, err = DecodeBase64MaybeDataURL("data:image/jpeg;base64," + b64)
	require.NoError(t, err)
	assert.Equal(t, payload, b)
	assert.Equal(t, "image/jpeg", mime)

	_, _, err = DecodeBase64MaybeDataURL("!!definitely not base64!!")
	assert.Error(t, err)
}

func TestPickMIME(t *testing.T) {
	jpeg := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0, 0, 0, 0, 0, 0, 0}

	assert.Equal(t, "image/png", PickMIME("image/png", "image/jpeg", jpeg))
	assert.Equal(t, "image/jpeg", PickMIME("", "image/jpeg", nil))
	assert.Equal(t, "image/jpeg", PickMIME("", "", jpeg))
	assert.Equal(t, "image/jpeg", PickMIME("", "", nil))
}
