package media

import (
	"context"
	"encoding/base64"
	"net/http"
)

// DataURIUploader inlines assets as base64 data URIs. It is used when no
// bucket is configured.
type DataURIUploader struct{}

func (DataURIUploader) Upload(_ context.Context, asset Asset) (string, error) {
	contentType := asset.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(asset.Data)
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(asset.Data), nil
}
