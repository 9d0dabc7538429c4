package wire

import (
	"bufio"
	"io"

	"github.com/coregate/originwire/internal/wireerr"
)

// maxChunk bounds a single underlying Read call so that very large exact
// reads (spooled bodies, oversized WebSocket payloads) are pulled in bounded
// slices rather than one syscall sized to the full request.
const maxChunk = 64 * 1024

// Reader wraps a buffered reader over a Stream with the two primitive
// operations the rest of the engine is built on.
type Reader struct {
	br *bufio.Reader
}

// NewReader returns a Reader buffering reads from s at size bufSize. A
// bufSize of 0 or less uses bufio's default.
func NewReader(s Stream, bufSize int) *Reader {
	if bufSize <= 0 {
		return &Reader{br: bufio.NewReader(s)}
	}
	return &Reader{br: bufio.NewReaderSize(s, bufSize)}
}

// ReadLine reads bytes up to and including CRLF and returns the line with
// the terminator stripped. It fails with wireerr.ErrConnectionClosed if EOF
// is reached before any byte is read, and wireerr.ErrMalformedLine if a lone
// CR or LF appears without its CRLF pair.
func (r *Reader) ReadLine() (string, error) {
	line, err := r.br.ReadString('\n')
	if err != nil {
		if err == io.EOF && line == "" {
			return "", wireerr.ErrConnectionClosed
		}
		if err == io.EOF {
			// Bytes arrived but the stream closed before the terminator;
			// treat as a malformed line rather than silently truncating it.
			return "", wireerr.New(wireerr.KindParse, "read_line", "truncated line", err)
		}
		return "", wireerr.New(wireerr.KindIO, "read_line", "read failed", err)
	}

	if len(line) < 2 || line[len(line)-2] != '\r' {
		return "", wireerr.ErrMalformedLine
	}
	for i := 0; i < len(line)-2; i++ {
		if line[i] == '\r' {
			return "", wireerr.ErrMalformedLine
		}
	}
	return line[:len(line)-2], nil
}

// ReadExact reads exactly n bytes, chunked internally at maxChunk, or fails
// with wireerr.ErrConnectionClosed.
func (r *Reader) ReadExact(n int64) ([]byte, error) {
	buf := make([]byte, n)
	if err := r.ReadExactInto(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadExactInto fills buf completely, chunked internally at maxChunk.
func (r *Reader) ReadExactInto(buf []byte) error {
	var read int
	for read < len(buf) {
		end := read + maxChunk
		if end > len(buf) {
			end = len(buf)
		}
		n, err := io.ReadFull(r.br, buf[read:end])
		read += n
		if err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return wireerr.ErrConnectionClosed
			}
			return wireerr.New(wireerr.KindIO, "read_exact", "read failed", err)
		}
	}
	return nil
}

// CopyExact streams exactly n bytes from the underlying reader into w,
// chunked at maxChunk, without holding the whole payload in memory. Used by
// the body spooler for bodies larger than the read-buffer size.
func (r *Reader) CopyExact(w io.Writer, n int64) error {
	buf := make([]byte, maxChunk)
	var remaining = n
	for remaining > 0 {
		chunk := int64(len(buf))
		if remaining < chunk {
			chunk = remaining
		}
		if _, err := io.ReadFull(r.br, buf[:chunk]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return wireerr.ErrConnectionClosed
			}
			return wireerr.New(wireerr.KindIO, "copy_exact", "read failed", err)
		}
		if _, err := w.Write(buf[:chunk]); err != nil {
			return wireerr.New(wireerr.KindIO, "copy_exact", "write failed", err)
		}
		remaining -= chunk
	}
	return nil
}

// Buffered returns the number of bytes currently buffered and available
// without another read from the underlying stream.
func (r *Reader) Buffered() int {
	return r.br.Buffered()
}
