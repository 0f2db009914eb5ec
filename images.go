package seoengine

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
)

const (
	jpegQuality   = 82
	maxUploadSize = 10 << 20 // 10MB
	uploadsSubdir = "uploads"
)

// processFeaturedImage decodes src, crops it around the center to the
// 1200x630 social-card ratio, scales it to exactly that size and encodes it
// as JPEG.
func processFeaturedImage(src io.Reader) ([]byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	crop := coverRect(img.Bounds(), featuredWidth, featuredHeight)
	dst := image.NewRGBA(image.Rect(0, 0, featuredWidth, featuredHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, crop, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// coverRect returns the largest centered rectangle inside b with the aspect
// ratio w:h.
func coverRect(b image.Rectangle, w, h int) image.Rectangle {
	bw, bh := b.Dx(), b.Dy()
	if bw*h > bh*w {
		cw := bh * w / h
		x0 := b.Min.X + (bw-cw)/2
		return image.Rect(x0, b.Min.Y, x0+cw, b.Max.Y)
	}
	ch := bw * h / w
	y0 := b.Min.Y + (bh-ch)/2
	return image.Rect(b.Min.X, y0, b.Max.X, y0+ch)
}

// saveFeaturedImage processes an uploaded file and stores it as
// <slug>.jpg in the uploads directory, replacing any previous image of the
// same post. It returns the stored file name.
func (a *App) saveFeaturedImage(file *multipart.FileHeader, slug string) (string, error) {
	if file.Size > maxUploadSize {
		return "", fmt.Errorf("file too large (max %d MB)", maxUploadSize>>20)
	}
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	data, err := processFeaturedImage(src)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(a.staticDir, uploadsSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create uploads dir: %w", err)
	}
	name := Slugify(slug) + ".jpg"
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return name, nil
}
