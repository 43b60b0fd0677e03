// Package media provides product image processing utilities
package media

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"github.com/DainoStore/dainostore-go/pkg/config"
)

// ImageProcessor handles image uploads and derivative generation for a
// single store's media directory.
type ImageProcessor struct {
	basePath string // Points to {mediaRoot}/{storeId}
}

func NewImageProcessor(basePath string) *ImageProcessor {
	return &ImageProcessor{
		basePath: basePath,
	}
}

var binaryPattern = regexp.MustCompile(`^data:image/\w+;base64,`)
var svgPattern = regexp.MustCompile(`^data:image/svg\+xml;base64,`)

// ProcessProductImage stores an uploaded base64 product image and
// generates WebP derivatives at the configured small, medium, and
// large widths. Returns the relative URL of the original plus the
// derivative URLs keyed by size name.
func (p *ImageProcessor) ProcessProductImage(data, productID string) (string, map[string]string, error) {
	if data == "" {
		return "", nil, fmt.Errorf("empty base64 data")
	}

	ext := extractExtension(data)
	if ext == "" {
		return "", nil, fmt.Errorf("unsupported image format")
	}

	timestamp := time.Now().UnixMilli()
	filename := fmt.Sprintf("%s-%d.%s", productID, timestamp, ext)

	originalsDir := filepath.Join(p.basePath, "images", "products")
	derivativesDir := filepath.Join(p.basePath, "images", "derivatives")
	if err := os.MkdirAll(originalsDir, 0755); err != nil {
		return "", nil, fmt.Errorf("failed to create products directory: %w", err)
	}
	if err := os.MkdirAll(derivativesDir, 0755); err != nil {
		return "", nil, fmt.Errorf("failed to create derivatives directory: %w", err)
	}

	originalPath, err := writeBinaryImage(data, filename, originalsDir)
	if err != nil {
		return "", nil, fmt.Errorf("failed to save original image: %w", err)
	}

	derivativePaths, err := p.generateDerivatives(originalPath, productID, timestamp, derivativesDir)
	if err != nil {
		os.Remove(originalPath)
		return "", nil, fmt.Errorf("failed to generate derivatives: %w", err)
	}

	relativeOriginal := fmt.Sprintf("/media/images/products/%s", filename)
	relativeDerivatives := make(map[string]string, len(derivativePaths))
	for size, path := range derivativePaths {
		relativeDerivatives[size] = fmt.Sprintf("/media/images/derivatives/%s", filepath.Base(path))
	}
	return relativeOriginal, relativeDerivatives, nil
}

// ProcessBase64Image stores any base64 image upload under the given
// subdirectory without derivative generation. Used for store branding
// assets such as logos and favicons.
func (p *ImageProcessor) ProcessBase64Image(data, filename, subdir string) (string, error) {
	if data == "" {
		return "", fmt.Errorf("empty base64 data")
	}

	ext := extractExtension(data)
	if ext == "" {
		return "", fmt.Errorf("unsupported image format")
	}
	fullFilename := fmt.Sprintf("%s.%s", filename, ext)

	targetDir := filepath.Join(p.basePath, subdir)
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	if strings.Contains(data, "image/svg+xml") {
		return writeSVG(data, fullFilename, targetDir)
	}
	return writeBinaryImage(data, fullFilename, targetDir)
}

// DeleteProductImage removes the original image and its derivatives.
func (p *ImageProcessor) DeleteProductImage(imagePath string) error {
	if imagePath == "" {
		return fmt.Errorf("empty image path")
	}

	filename := filepath.Base(imagePath)
	basename := filename
	if dotIndex := strings.LastIndex(filename, "."); dotIndex != -1 {
		basename = filename[:dotIndex]
	}

	originalPath := filepath.Join(p.basePath, strings.TrimPrefix(imagePath, "/media/"))
	if err := os.Remove(originalPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove original image: %w", err)
	}

	derivativesDir := filepath.Join(p.basePath, "images", "derivatives")
	for _, width := range derivativeWidths() {
		derivPath := filepath.Join(derivativesDir, fmt.Sprintf("%s_%dpx.webp", basename, width))
		// Missing derivatives are fine; partial uploads leave gaps.
		os.Remove(derivPath)
	}
	return nil
}

func (p *ImageProcessor) generateDerivatives(originalPath, productID string, timestamp int64, derivativesDir string) (map[string]string, error) {
	originalFile, err := os.Open(originalPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open original file: %w", err)
	}
	defer originalFile.Close()

	img, err := imaging.Decode(originalFile)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if img.Bounds().Dx() > config.ImageMaxWidth {
		img = imaging.Resize(img, config.ImageMaxWidth, 0, imaging.Lanczos)
	}

	basename := fmt.Sprintf("%s-%d", productID, timestamp)
	sizes := map[string]int{
		"small":  config.ImageSizeSmall,
		"medium": config.ImageSizeMedium,
		"large":  config.ImageSizeLarge,
	}

	paths := make(map[string]string, len(sizes))
	for sizeName, width := range sizes {
		resized := imaging.Resize(img, width, 0, imaging.Lanczos)

		derivFilename := fmt.Sprintf("%s_%dpx.webp", basename, width)
		derivPath := filepath.Join(derivativesDir, derivFilename)

		if err := webp.Save(derivPath, resized, &webp.Options{Quality: config.WebPQuality}); err != nil {
			for _, created := range paths {
				os.Remove(created)
			}
			return nil, fmt.Errorf("failed to save WebP derivative %s: %w", derivFilename, err)
		}
		paths[sizeName] = derivPath
	}
	return paths, nil
}

func writeBinaryImage(data, filename, targetDir string) (string, error) {
	if !binaryPattern.MatchString(data) {
		return "", fmt.Errorf("invalid binary image base64 format")
	}

	decoded, err := base64.StdEncoding.DecodeString(binaryPattern.ReplaceAllString(data, ""))
	if err != nil {
		return "", fmt.Errorf("failed to decode base64: %w", err)
	}

	fullPath := filepath.Join(targetDir, filename)
	if err := os.WriteFile(fullPath, decoded, 0644); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}
	return fullPath, nil
}

func writeSVG(data, filename, targetDir string) (string, error) {
	if !svgPattern.MatchString(data) {
		return "", fmt.Errorf("invalid SVG base64 format")
	}

	decoded, err := base64.StdEncoding.DecodeString(svgPattern.ReplaceAllString(data, ""))
	if err != nil {
		return "", fmt.Errorf("failed to decode base64: %w", err)
	}

	fullPath := filepath.Join(targetDir, filename)
	if err := os.WriteFile(fullPath, decoded, 0644); err != nil {
		return "", fmt.Errorf("failed to write SVG file: %w", err)
	}
	return fullPath, nil
}

func extractExtension(data string) string {
	switch {
	case strings.Contains(data, "data:image/svg+xml"):
		return "svg"
	case strings.Contains(data, "data:image/png"):
		return "png"
	case strings.Contains(data, "data:image/jpeg"), strings.Contains(data, "data:image/jpg"):
		return "jpg"
	case strings.Contains(data, "data:image/webp"):
		return "webp"
	}
	return "png"
}

func derivativeWidths() []int {
	return []int{config.ImageSizeSmall, config.ImageSizeMedium, config.ImageSizeLarge}
}
