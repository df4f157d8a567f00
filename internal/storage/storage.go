// Package storage wraps the S3-compatible object store that keeps WhatsApp
// exports, each operator's arquivo fixo and generated spreadsheets.
// Implementations stream; nothing touches local disk.
package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"
)

// ErrObjectNotFound is returned when a key does not exist.
var ErrObjectNotFound = errors.New("object not found")

// PutObjectOptions define optional parameters for uploading objects.
// Size is the exact byte count, or -1 when unknown.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the object store contract used by the services.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get returns ErrObjectNotFound for missing keys.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Stat returns ErrObjectNotFound for missing keys.
	Stat(ctx context.Context, key string) (ObjectInfo, error)
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited download URL.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

const metaOriginalFilename = "original-filename"

// WithOriginalFilename records the uploaded file name in object metadata.
func WithOriginalFilename(opt PutObjectOptions, name string) PutObjectOptions {
	if opt.Metadata == nil {
		opt.Metadata = map[string]string{}
	}
	opt.Metadata[metaOriginalFilename] = name
	return opt
}

// OriginalFilename reads back what WithOriginalFilename stored.
// MinIO returns user metadata with canonicalized header names.
func OriginalFilename(info ObjectInfo) string {
	for k, v := range info.Metadata {
		if strings.EqualFold(k, metaOriginalFilename) || strings.EqualFold(k, "X-Amz-Meta-"+metaOriginalFilename) {
			return v
		}
	}
	return ""
}
