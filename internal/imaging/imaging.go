package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/shenikar/sunshade_report_system/internal/models"
	"golang.org/x/image/draw"
)

const (
	maxPreviewDimension = 480
	previewQuality      = 80
)

var allowedTypes = []string{"image/png", "image/jpeg"}

// DetectType определяет тип вложения по содержимому. Разрешены только PNG и JPEG.
func DetectType(data []byte) (string, error) {
	mtype := mimetype.Detect(data)
	for _, allowed := range allowedTypes {
		if mtype.Is(allowed) {
			return allowed, nil
		}
	}
	return "", fmt.Errorf("%w: got %s", models.ErrUnsupportedAttachment, mtype.String())
}

// Thumbnail строит уменьшенную JPEG-копию для предпросмотра и возвращает ее как data URI
func Thumbnail(data []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: failed to decode image: %w", models.ErrRender, err)
	}

	img = applyOrientation(img, orientation(data))

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width > maxPreviewDimension || height > maxPreviewDimension {
		scale := min(float64(maxPreviewDimension)/float64(width), float64(maxPreviewDimension)/float64(height))
		width = max(1, int(float64(width)*scale))
		height = max(1, int(float64(height)*scale))
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: previewQuality}); err != nil {
		return "", fmt.Errorf("%w: failed to encode preview: %w", models.ErrRender, err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// orientation читает EXIF-ориентацию, 1 если ее нет
func orientation(data []byte) int {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	v, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return v
}

// applyOrientation обрабатывает повороты, которые дают камеры телефонов (3, 6, 8)
func applyOrientation(img image.Image, orientation int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	switch orientation {
	case 3: // 180
		out := image.NewRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out.Set(w-1-x, h-1-y, img.At(b.Min.X+x, b.Min.Y+y))
			}
		}
		return out
	case 6: // 90 по часовой
		out := image.NewRGBA(image.Rect(0, 0, h, w))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out.Set(h-1-y, x, img.At(b.Min.X+x, b.Min.Y+y))
			}
		}
		return out
	case 8: // 90 против часовой
		out := image.NewRGBA(image.Rect(0, 0, h, w))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out.Set(y, w-1-x, img.At(b.Min.X+x, b.Min.Y+y))
			}
		}
		return out
	default:
		return img
	}
}
