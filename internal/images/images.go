// Package images decodes uploaded images, resizes them to a bounded edge,
// and re-encodes them as WebP data URLs for embedding in recipe and profile
// records.
package images

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"net/http"
	"strings"
	"time"

	"tastebook/internal/models"
	"tastebook/internal/observability"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"

	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder

	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	// DefaultMaxEdge bounds the longer edge of a processed image.
	DefaultMaxEdge = 1024
	// WebPQuality is the lossy encode quality.
	WebPQuality = 80
)

// Processor resizes and re-encodes uploads.
type Processor struct {
	maxEdge      int
	maxSizeBytes int64
}

// NewProcessor creates a Processor. Zero arguments fall back to defaults.
func NewProcessor(maxEdge int, maxSizeMB int) *Processor {
	if maxEdge <= 0 {
		maxEdge = DefaultMaxEdge
	}
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	return &Processor{
		maxEdge:      maxEdge,
		maxSizeBytes: int64(maxSizeMB) * 1024 * 1024,
	}
}

// Process validates, decodes, scales, and re-encodes an upload, returning a
// WebP data URL. Any failure aborts the enclosing submission: no partial
// output is produced.
func (p *Processor) Process(data []byte) (string, error) {
	start := time.Now()

	if len(data) == 0 {
		return "", models.NewValidationError("No file uploaded")
	}
	if int64(len(data)) > p.maxSizeBytes {
		return "", models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", p.maxSizeBytes/(1024*1024)))
	}
	if !isAllowedImageMIME(http.DetectContentType(data)) {
		return "", models.NewValidationError("Invalid image type")
	}

	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", models.NewValidationError("Invalid image file")
	}

	scaled := p.scaleToFit(decoded)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, scaled, &webp.Options{Quality: WebPQuality}); err != nil {
		return "", models.NewInternalError(fmt.Errorf("encode webp: %w", err))
	}

	observability.ImageProcessingDuration.Observe(time.Since(start).Seconds())
	return "data:image/webp;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// scaleToFit shrinks the image so its longer edge is at most maxEdge,
// preserving aspect ratio. Smaller images pass through untouched.
func (p *Processor) scaleToFit(src image.Image) image.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= p.maxEdge && h <= p.maxEdge {
		return src
	}

	var dw, dh int
	if w >= h {
		dw = p.maxEdge
		dh = h * p.maxEdge / w
	} else {
		dh = p.maxEdge
		dw = w * p.maxEdge / h
	}
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func isAllowedImageMIME(mimeType string) bool {
	switch strings.ToLower(strings.TrimSpace(mimeType)) {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return true
	}
	return false
}
