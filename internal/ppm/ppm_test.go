package ppm

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/mandelcl/internal/mandel"
)

func TestHeaderDefaultImage(t *testing.T) {
	if got := Header(1200, 640); got != "P6\n1200 640\n255\n" {
		t.Errorf("Header = %q", got)
	}
	if got := Size(1200, 640); got != len("P6\n1200 640\n255\n")+1200*640*3 {
		t.Errorf("Size = %d", got)
	}
}

func TestEncodeDropsFourthByte(t *testing.T) {
	p := mandel.NewPixels(3, 2)
	for i := range p.Data {
		p.Data[i] = 0xEE000000 | uint32(i+1)*0x010203
	}

	var buf bytes.Buffer
	if err := Encode(&buf, p); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	header := Header(3, 2)
	out := buf.Bytes()
	if !bytes.HasPrefix(out, []byte(header)) {
		t.Fatalf("Missing header, got %q", out[:min(len(out), len(header))])
	}

	body := out[len(header):]
	if len(body) != 3*2*3 {
		t.Fatalf("Expected %d body bytes, got %d", 3*2*3, len(body))
	}

	var rec [4]byte
	for i, v := range p.Data {
		binary.NativeEndian.PutUint32(rec[:], v)
		if !bytes.Equal(body[i*3:i*3+3], rec[:3]) {
			t.Errorf("Pixel %d = % x, expected % x", i, body[i*3:i*3+3], rec[:3])
		}
	}
}

func TestEncodeRowMajorTopFirst(t *testing.T) {
	p := mandel.NewPixels(2, 2)
	p.Data[0] = mandel.PackRGBA(1, 1, 1, 0xFF)
	p.Data[1] = mandel.PackRGBA(2, 2, 2, 0xFF)
	p.Data[2] = mandel.PackRGBA(3, 3, 3, 0xFF)
	p.Data[3] = mandel.PackRGBA(4, 4, 4, 0xFF)

	var buf bytes.Buffer
	if err := Encode(&buf, p); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	body := buf.Bytes()[len(Header(2, 2)):]
	for i := 0; i < 4; i++ {
		if body[i*3] != byte(i+1) {
			t.Errorf("Record %d starts with %d, expected %d", i, body[i*3], i+1)
		}
	}
}

func TestEncodeRejectsMismatchedBuffer(t *testing.T) {
	p := &mandel.Pixels{Width: 4, Height: 4, Data: make([]uint32, 3)}
	if err := Encode(&bytes.Buffer{}, p); err == nil {
		t.Error("Expected error for short buffer")
	}
	if err := Encode(&bytes.Buffer{}, nil); err == nil {
		t.Error("Expected error for nil buffer")
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ppm")
	p := mandel.NewPixels(16, 9)

	if err := WriteFile(path, p); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Output missing: %v", err)
	}
	if info.Size() != int64(Size(16, 9)) {
		t.Errorf("Size = %d, expected %d", info.Size(), Size(16, 9))
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("Temporary file should not remain")
	}
}

func TestWriteFileMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.ppm")

	err := WriteFile(path, mandel.NewPixels(2, 2))
	if !errors.Is(err, mandel.ErrWriteFailed) {
		t.Errorf("Expected ErrWriteFailed, got %v", err)
	}
}
