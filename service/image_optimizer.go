package service

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	defaultUploadsDir = "uploads/lotes"
	// Quality settings
	qualityFoto  = 80
	qualityThumb = 60
	// Size settings (max dimension)
	maxSizeFoto  = 1280
	maxSizeThumb = 320
)

// uploadsDir resolves the directory where property photos are stored
func uploadsDir() string {
	if dir := os.Getenv("UPLOADS_DIR"); dir != "" {
		return dir
	}
	return defaultUploadsDir
}

// OptimizeFoto converts a property photo to JPEG and resizes it
// imageData: raw image bytes (PNG, JPEG, etc.)
// size: "foto" (listing detail) or "thumb" (listing grid)
// Returns optimized JPEG image bytes
// Note: Using JPEG instead of WebP to avoid CGO dependency.
func OptimizeFoto(imageData []byte, size string) ([]byte, error) {
	// Decode the image
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	log.Printf("📸 Image decoded: format=%s, bounds=%v", format, img.Bounds())

	// Determine max dimension and quality based on size
	var maxDim int
	var quality int

	switch size {
	case "thumb":
		maxDim = maxSizeThumb
		quality = qualityThumb
	case "foto":
		maxDim = maxSizeFoto
		quality = qualityFoto
	default:
		maxDim = maxSizeFoto
		quality = qualityFoto
		log.Printf("⚠️  Unknown size '%s', defaulting to foto", size)
	}

	// Resize image if needed
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	var resizedImg image.Image = img
	if width > maxDim || height > maxDim {
		// Calculate new dimensions maintaining aspect ratio
		var newWidth, newHeight int
		if width > height {
			newWidth = maxDim
			newHeight = int(float64(height) * float64(maxDim) / float64(width))
		} else {
			newHeight = maxDim
			newWidth = int(float64(width) * float64(maxDim) / float64(height))
		}

		log.Printf("🔄 Resizing image: %dx%d -> %dx%d", width, height, newWidth, newHeight)
		resizedImg = imaging.Resize(img, newWidth, newHeight, imaging.Lanczos)
	}

	// Encode to JPEG
	var buf bytes.Buffer
	opts := &jpeg.Options{
		Quality: quality,
	}
	if err := jpeg.Encode(&buf, resizedImg, opts); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	optimizedData := buf.Bytes()

	log.Printf("✓ Image optimized: size=%s, quality=%d, output_size=%d bytes", size, quality, len(optimizedData))
	return optimizedData, nil
}

// SaveFoto optimizes and writes a property photo plus its thumbnail to disk.
// It returns the relative path of the full-size image, which the lote row
// stores in its imagen column.
func SaveFoto(imageData []byte) (string, error) {
	dir := uploadsDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create uploads directory: %w", err)
	}

	name := uuid.NewString()

	foto, err := OptimizeFoto(imageData, "foto")
	if err != nil {
		return "", err
	}
	fotoPath := filepath.Join(dir, name+".jpg")
	if err := os.WriteFile(fotoPath, foto, 0644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	thumb, err := OptimizeFoto(imageData, "thumb")
	if err != nil {
		return "", err
	}
	thumbPath := filepath.Join(dir, name+"_thumb.jpg")
	if err := os.WriteFile(thumbPath, thumb, 0644); err != nil {
		return "", fmt.Errorf("failed to write thumbnail: %w", err)
	}

	log.Printf("✓ Photo saved: %s", fotoPath)
	return fotoPath, nil
}

// DeleteFoto removes a stored photo and its thumbnail. Missing files are
// not an error, the row may reference an image that was already cleaned up.
func DeleteFoto(fotoPath string) {
	if fotoPath == "" {
		return
	}
	if err := os.Remove(fotoPath); err != nil && !os.IsNotExist(err) {
		log.Printf("⚠️  Could not remove image %s: %v", fotoPath, err)
	}
	ext := filepath.Ext(fotoPath)
	thumbPath := fotoPath[:len(fotoPath)-len(ext)] + "_thumb" + ext
	if err := os.Remove(thumbPath); err != nil && !os.IsNotExist(err) {
		log.Printf("⚠️  Could not remove thumbnail %s: %v", thumbPath, err)
	}
}
