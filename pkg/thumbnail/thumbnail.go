// Package thumbnail строит превью изображений фиксированной ширины.
// Пакет не работает с файловой системой: на вход байты и формат, на выходе байты.
package thumbnail

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// Width - ширина превью в пикселях
const Width = 100

var (
	ErrDecode            = errors.New("image cannot be decoded")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrPreviewSize       = errors.New("preview height is zero")
)

type encodeFunc func(w io.Writer, img image.Image) error

var encoders = map[string]encodeFunc{
	"png":  png.Encode,
	"jpg":  encodeJPEG,
	"jpeg": encodeJPEG,
	"gif": func(w io.Writer, img image.Image) error {
		return gif.Encode(w, img, nil)
	},
	"bmp": bmp.Encode,
}

func encodeJPEG(w io.Writer, img image.Image) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: jpeg.DefaultQuality})
}

// Supported сообщает, умеем ли мы кодировать превью в формат с таким расширением
func Supported(format string) bool {
	_, ok := encoders[strings.ToLower(format)]
	return ok
}

// Size возвращает размеры превью для исходного изображения width x height.
// Высота может получиться нулевой для очень широких изображений.
func Size(width, height int) (int, int) {
	return Width, int(math.Round(float64(height) / float64(width) * Width))
}

// Generate декодирует изображение, масштабирует его до ширины Width с сохранением
// пропорций и кодирует обратно в format (расширение файла без точки, регистр не важен).
func Generate(data []byte, format string) ([]byte, error) {
	encode, ok := encoders[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	bounds := src.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrDecode)
	}

	width, height := Size(bounds.Dx(), bounds.Dy())
	if height < 1 {
		return nil, fmt.Errorf("%w: source %dx%d", ErrPreviewSize, bounds.Dx(), bounds.Dy())
	}

	preview := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(preview, preview.Bounds(), src, bounds, draw.Src, nil)

	var buf bytes.Buffer
	if err := encode(&buf, preview); err != nil {
		return nil, fmt.Errorf("encode preview as %s: %w", format, err)
	}
	return buf.Bytes(), nil
}
