package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOriginalFilename(t *testing.T) {
	opt := WithOriginalFilename(PutObjectOptions{Size: 3}, "Conversa do WhatsApp com Aurora.txt")
	assert.Equal(t, int64(3), opt.Size)

	assert.Equal(t, "Conversa do WhatsApp com Aurora.txt", OriginalFilename(ObjectInfo{Metadata: opt.Metadata}))

	// MinIO hands user metadata back canonicalized.
	info := ObjectInfo{Metadata: map[string]string{"Original-Filename": "a.txt"}}
	assert.Equal(t, "a.txt", OriginalFilename(info))

	info = ObjectInfo{Metadata: map[string]string{"X-Amz-Meta-Original-Filename": "b.txt"}}
	assert.Equal(t, "b.txt", OriginalFilename(info))

	assert.Empty(t, OriginalFilename(ObjectInfo{}))
}
