package clip

import (
	"errors"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	// MaxQRBytes is the most content a QR code can carry, at the lowest
	// error-correction level.
	MaxQRBytes = 2953

	// DefaultQRSize is the edge length in pixels of QRPNG images.
	DefaultQRSize = 256

	// maxMediumBytes is the capacity at medium error correction.
	maxMediumBytes = 2331
)

// ErrTooLongForQR means content exceeds MaxQRBytes.
var ErrTooLongForQR = errors.New("content too long for a QR code")

func newQR(content string) (*qrcode.QRCode, error) {
	if len(content) > MaxQRBytes {
		return nil, fmt.Errorf("%w (%d bytes, limit %d)", ErrTooLongForQR, len(content), MaxQRBytes)
	}

	level := qrcode.Medium
	if len(content) > maxMediumBytes {
		level = qrcode.Low
	}
	q, err := qrcode.New(content, level)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	return q, nil
}

// QRText draws content as a QR code with half-block characters, two
// modules per terminal row. inverse swaps light and dark for terminals
// with a light background.
func QRText(content string, inverse bool) (string, error) {
	q, err := newQR(content)
	if err != nil {
		return "", err
	}
	return q.ToSmallString(inverse), nil
}

// QRPNG encodes content as a PNG image size pixels wide. A size of zero
// or less uses DefaultQRSize.
func QRPNG(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRSize
	}
	q, err := newQR(content)
	if err != nil {
		return nil, err
	}
	png, err := q.PNG(size)
	if err != nil {
		return nil, fmt.Errorf("failed to render QR image: %w", err)
	}
	return png, nil
}
