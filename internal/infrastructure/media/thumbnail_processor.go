// Package media provides thumbnail processing for provider preview images.
package media

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

var base64ImagePattern = regexp.MustCompile(`^data:image/\w+;base64,`)

// ThumbnailProcessor converts uploaded provider thumbnails into capped-width
// WebP files under the media directory.
type ThumbnailProcessor struct {
	basePath string // media root; thumbnails land in <basePath>/thumbnails
	maxWidth int
}

// NewThumbnailProcessor creates a processor writing below basePath.
func NewThumbnailProcessor(basePath string, maxWidth int) *ThumbnailProcessor {
	if maxWidth <= 0 {
		maxWidth = 640
	}
	return &ThumbnailProcessor{
		basePath: basePath,
		maxWidth: maxWidth,
	}
}

// ProcessBase64Thumbnail decodes a base64 data URI, resizes it to the capped
// width and stores it as WebP. Returns the relative URL for serving.
func (p *ThumbnailProcessor) ProcessBase64Thumbnail(data, providerName string) (string, error) {
	if data == "" {
		return "", fmt.Errorf("empty base64 data")
	}
	if !base64ImagePattern.MatchString(data) {
		return "", fmt.Errorf("invalid image base64 format")
	}

	decoded, err := base64.StdEncoding.DecodeString(base64ImagePattern.ReplaceAllString(data, ""))
	if err != nil {
		return "", fmt.Errorf("failed to decode base64: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(decoded))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	// Only downscale; small images are stored as-is
	if img.Bounds().Dx() > p.maxWidth {
		img = imaging.Resize(img, p.maxWidth, 0, imaging.Lanczos)
	}

	thumbsDir := filepath.Join(p.basePath, "thumbnails")
	if err := os.MkdirAll(thumbsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create thumbnails directory: %w", err)
	}

	filename := fmt.Sprintf("%s-%d.webp", providerName, time.Now().UnixMilli())
	fullPath := filepath.Join(thumbsDir, filename)

	if err := webp.Save(fullPath, img, &webp.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("failed to save WebP thumbnail: %w", err)
	}

	relativePath := "/media/thumbnails/" + filename
	return relativePath, nil
}

// DeleteThumbnail removes a previously stored thumbnail by its relative URL.
// Missing files are not an error.
func (p *ThumbnailProcessor) DeleteThumbnail(relativeURL string) error {
	if relativeURL == "" {
		return nil
	}
	rel := strings.TrimPrefix(relativeURL, "/media/")
	if rel == relativeURL {
		return fmt.Errorf("thumbnail URL outside media root: %s", relativeURL)
	}
	fullPath := filepath.Join(p.basePath, filepath.FromSlash(rel))
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove thumbnail: %w", err)
	}
	return nil
}
