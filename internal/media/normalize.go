package media

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	apperrors "shree-admin/pkg/errors"

	"github.com/disintegration/imaging"
)

const (
	DefaultMaxWidth = 1600
	jpegQuality     = 85

	msgUnsupportedImage = "Unsupported image file"
)

// Normalize downsizes raster images wider than maxWidth and re-encodes
// them, fixing EXIF orientation on the way. Non-raster files (SVG, PDF)
// are returned untouched.
func Normalize(asset Asset, maxWidth int) (Asset, error) {
	format, ok := rasterFormat(asset)
	if !ok {
		return asset, nil
	}
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}

	img, err := imaging.Decode(bytes.NewReader(asset.Data), imaging.AutoOrientation(true))
	if err != nil {
		return Asset{}, apperrors.Validation(msgUnsupportedImage)
	}

	var out image.Image = img
	if img.Bounds().Dx() > maxWidth {
		out = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	buf := &bytes.Buffer{}
	if err := imaging.Encode(buf, out, format, imaging.JPEGQuality(jpegQuality)); err != nil {
		return Asset{}, apperrors.InternalServer(msgUnsupportedImage, fmt.Errorf("encode: %w", err))
	}

	asset.Data = buf.Bytes()
	return asset, nil
}

func rasterFormat(asset Asset) (imaging.Format, bool) {
	if f, err := imaging.FormatFromFilename(asset.Filename); err == nil {
		return f, true
	}
	switch strings.ToLower(asset.ContentType) {
	case "image/jpeg", "image/jpg":
		return imaging.JPEG, true
	case "image/png":
		return imaging.PNG, true
	case "image/gif":
		return imaging.GIF, true
	}
	return 0, false
}
