// Package ppm writes pixel buffers as binary PPM (P6) images.
//
// Each pixel is emitted as the first three bytes of its 32-bit value as laid
// out in host memory; the fourth byte is dropped. On little-endian hosts that
// is red, green, blue for values packed with mandel.PackRGBA.
package ppm

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cwbudde/mandelcl/internal/mandel"
)

// Header returns the P6 header for a width x height image with 8-bit channels.
func Header(width, height int) string {
	return fmt.Sprintf("P6\n%d %d\n255\n", width, height)
}

// Size returns the exact encoded size in bytes.
func Size(width, height int) int {
	return len(Header(width, height)) + width*height*3
}

// Encode writes p to w.
func Encode(w io.Writer, p *mandel.Pixels) error {
	if p == nil || len(p.Data) != p.Width*p.Height {
		return fmt.Errorf("pixel buffer does not match its dimensions")
	}

	bw := bufio.NewWriterSize(w, 64*1024)

	if _, err := io.WriteString(bw, Header(p.Width, p.Height)); err != nil {
		return err
	}

	var rec [4]byte
	for y := 0; y < p.Height; y++ {
		for _, v := range p.Row(y) {
			binary.NativeEndian.PutUint32(rec[:], v)
			if _, err := bw.Write(rec[:3]); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

// WriteFile encodes p to path. The image is written to a temporary file and
// renamed into place, so path is never left half-written.
func WriteFile(path string, p *mandel.Pixels) error {
	tempPath := path + ".tmp"

	f, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("%w: %w", mandel.ErrWriteFailed, err)
	}

	if err := Encode(f, p); err != nil {
		f.Close()
		os.Remove(tempPath)
		return fmt.Errorf("%w: encode %s: %w", mandel.ErrWriteFailed, path, err)
	}

	if err := f.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("%w: close %s: %w", mandel.ErrWriteFailed, tempPath, err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("%w: rename %s: %w", mandel.ErrWriteFailed, tempPath, err)
	}

	slog.Debug("Image written", "path", path, "bytes", Size(p.Width, p.Height))
	return nil
}
