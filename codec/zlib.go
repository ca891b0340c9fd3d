package codec

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/arloliu/h5blosc/format"
)

// zlibState holds a context's zlib writer, reused via Reset across chunks.
// The writer is recreated only when the requested level changes.
type zlibState struct {
	w     *zlib.Writer
	level int
}

func (s *zlibState) writer(dst io.Writer, level int) (*zlib.Writer, error) {
	if s.w == nil || s.level != level {
		w, err := zlib.NewWriterLevel(dst, level)
		if err != nil {
			return nil, err
		}
		s.w = w
		s.level = level

		return w, nil
	}

	s.w.Reset(dst)

	return s.w, nil
}

func (s *zlibState) release() {
	s.w = nil
	s.level = 0
}

// ZlibBackend compresses with deflate, matching the blosc zlib code.
type ZlibBackend struct{}

var _ Backend = ZlibBackend{}

func (ZlibBackend) Code() format.CompressorCode { return format.CompressorZlib }
func (ZlibBackend) Name() string                { return "zlib" }

func (ZlibBackend) Compress(ctx *Context, data []byte, level int) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(data) / 2)

	w, err := ctx.zlib.writer(&buf, level)
	if err != nil {
		return nil, err
	}

	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (ZlibBackend) Decompress(ctx *Context, payload []byte, size int) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	dst := ctx.scratchBytes(size)
	if _, err := io.ReadFull(r, dst); err != nil {
		return nil, err
	}

	return dst, nil
}
