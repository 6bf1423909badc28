// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging processes project images uploaded through the admin
// dashboard. Uploads are normalized (EXIF auto-rotation, metadata
// stripped) and a storefront card variant is generated alongside the
// original.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder
)

// Card variant dimensions match the storefront project card.
const (
	cardWidth   = 800
	cardHeight  = 600
	cardQuality = 85
)

// Result describes a processed upload.
type Result struct {
	Width    int
	Height   int
	MimeType string
	Size     int64

	// OriginalPath and CardPath are filesystem paths under the
	// upload directory.
	OriginalPath string
	CardPath     string
}

// Processor saves and resizes project images using pure Go codecs.
type Processor struct {
	uploadDir string
}

// NewProcessor creates a processor rooted at uploadDir.
func NewProcessor(uploadDir string) *Processor {
	return &Processor{uploadDir: uploadDir}
}

// Process reads an uploaded image, auto-rotates it per its EXIF
// orientation, re-encodes it without metadata and writes the original
// plus a card-sized variant under the project's directory.
func (p *Processor) Process(reader io.Reader, projectID, filename string) (*Result, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading image data: %w", err)
	}

	format := detectFormat(data)
	if format == "" {
		return nil, fmt.Errorf("unsupported image format")
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	img = applyOrientation(img, readExifOrientation(bytes.NewReader(data)))

	bounds := img.Bounds()

	// Re-encoding through the pure Go encoders drops EXIF metadata.
	processed, err := encode(img, format, 95)
	if err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}

	originalPath, err := p.save(filepath.Join("originals", projectID), filename, processed)
	if err != nil {
		return nil, fmt.Errorf("saving original: %w", err)
	}

	cardPath, err := p.saveCard(img, projectID, filename, format)
	if err != nil {
		return nil, fmt.Errorf("saving card variant: %w", err)
	}

	return &Result{
		Width:        bounds.Dx(),
		Height:       bounds.Dy(),
		MimeType:     formatToMimeType(format),
		Size:         int64(len(processed)),
		OriginalPath: originalPath,
		CardPath:     cardPath,
	}, nil
}

// saveCard writes the variant shown on storefront project cards. Small
// sources are saved as-is rather than upscaled.
func (p *Processor) saveCard(img image.Image, projectID, filename, format string) (string, error) {
	bounds := img.Bounds()
	if bounds.Dx() > cardWidth || bounds.Dy() > cardHeight {
		img = imaging.Fit(img, cardWidth, cardHeight, imaging.Lanczos)
	}

	data, err := encode(img, format, cardQuality)
	if err != nil {
		return "", err
	}
	return p.save(filepath.Join("cards", projectID), filename, data)
}

// Delete removes all stored files for a project's image.
func (p *Processor) Delete(projectID string) error {
	for _, variant := range []string{"originals", "cards"} {
		dir := filepath.Join(p.uploadDir, variant, projectID)
		if err := os.RemoveAll(dir); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("deleting %s: %w", variant, err)
		}
	}
	return nil
}

// IsSupportedType reports whether a MIME type can be processed.
func (p *Processor) IsSupportedType(mimeType string) bool {
	switch mimeType {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

// DetectMimeType sniffs the MIME type of image data.
func (p *Processor) DetectMimeType(data []byte) string {
	contentType := http.DetectContentType(data)
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	return contentType
}

// readExifOrientation returns the EXIF orientation tag, or 1 (normal)
// when it cannot be determined.
func readExifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return orientation
}

// applyOrientation normalizes an image per its EXIF orientation value.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.FlipH(imaging.Rotate270(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.FlipH(imaging.Rotate90(img))
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

func encode(img image.Image, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
	case "gif":
		if err := gif.Encode(&buf, img, nil); err != nil {
			return nil, err
		}
	default:
		// WebP has no pure Go encoder; it and everything else come
		// out as JPEG.
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

// detectFormat sniffs the image format from raw bytes.
func detectFormat(data []byte) string {
	contentType := http.DetectContentType(data)
	// Reject TIFF (CVE-2023-36308 in disintegration/imaging).
	if strings.Contains(contentType, "tiff") {
		return ""
	}
	switch {
	case strings.Contains(contentType, "jpeg"):
		return "jpeg"
	case strings.Contains(contentType, "png"):
		return "png"
	case strings.Contains(contentType, "gif"):
		return "gif"
	case strings.Contains(contentType, "webp"):
		return "webp"
	default:
		return ""
	}
}

func formatToMimeType(format string) string {
	switch format {
	case "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

// save sanitizes the filename, verifies the target stays inside the
// upload directory and writes the file.
func (p *Processor) save(subDir, filename string, data []byte) (string, error) {
	safeFilename := filepath.Base(filename)
	if safeFilename == "." || safeFilename == ".." || safeFilename == "" {
		return "", fmt.Errorf("invalid filename")
	}

	cleanSubDir := filepath.Clean(subDir)
	if strings.Contains(cleanSubDir, "..") || filepath.IsAbs(cleanSubDir) {
		return "", fmt.Errorf("invalid subdirectory path")
	}

	absBase, err := filepath.Abs(p.uploadDir)
	if err != nil {
		return "", fmt.Errorf("resolving upload directory: %w", err)
	}

	absTarget := filepath.Join(absBase, cleanSubDir)
	rel, err := filepath.Rel(absBase, absTarget)
	if err != nil || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return "", fmt.Errorf("path traversal detected")
	}

	if err := os.MkdirAll(absTarget, 0755); err != nil {
		return "", fmt.Errorf("creating directory: %w", err)
	}

	filePath := filepath.Join(absTarget, safeFilename)
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("saving image: %w", err)
	}
	return filePath, nil
}
