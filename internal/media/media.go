// Package media turns uploaded images into URLs the backend can store.
package media

import (
	"context"
	"path"
	"strings"
)

// Asset is one uploaded file held in memory.
type Asset struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Ext returns the lower-case extension including the dot, or "".
func (a Asset) Ext() string {
	return strings.ToLower(path.Ext(a.Filename))
}

// Uploader stores an asset and returns the URL to reference it by.
type Uploader interface {
	Upload(ctx context.Context, asset Asset) (string, error)
}

// Deleter is implemented by uploaders that can remove what they stored.
type Deleter interface {
	Delete(ctx context.Context, url string) error
}
