// Package recording stores a sequence of controller readings in a file so
// that a session can be replayed later.
//
// File layout (little-endian):
//
//	header: magic "XRIR" | version u8 | 3 reserved bytes | profile digest [32]byte
//	frame:  source u32 | tick u64 | controller.SourceState wire bytes
//
// Frames of several sources are interleaved in arrival order; each source
// counts its own ticks.
package recording

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/Alia5/xrinput/controller"
)

const (
	Version    = 2
	HeaderSize = 4 + 1 + 3 + 32
	FrameSize  = 4 + 8 + controller.SourceStateSize
)

var magic = [4]byte{'X', 'R', 'I', 'R'}

var (
	ErrBadMagic           = errors.New("not a recording")
	ErrUnsupportedVersion = errors.New("unsupported recording version")
)

// Frame is one recorded tick of one source.
type Frame struct {
	Source uint32
	Tick   uint64
	State  controller.SourceState
}

// Writer appends frames to a recording. Call Flush before closing the
// underlying writer.
type Writer struct {
	w   *bufio.Writer
	buf [FrameSize]byte
}

// NewWriter writes the header for a session captured with the profile
// identified by digest.
func NewWriter(w io.Writer, digest [32]byte) (*Writer, error) {
	bw := bufio.NewWriter(w)
	var h [HeaderSize]byte
	copy(h[0:4], magic[:])
	h[4] = Version
	copy(h[8:], digest[:])
	if _, err := bw.Write(h[:]); err != nil {
		return nil, err
	}
	return &Writer{w: bw}, nil
}

func (w *Writer) WriteFrame(source uint32, tick uint64, s controller.SourceState) error {
	data, err := s.MarshalBinary()
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(w.buf[0:4], source)
	binary.LittleEndian.PutUint64(w.buf[4:12], tick)
	copy(w.buf[12:], data)
	_, err = w.w.Write(w.buf[:])
	return err
}

func (w *Writer) Flush() error { return w.w.Flush() }

// Reader reads frames back.
type Reader struct {
	r      io.Reader
	digest [32]byte
	buf    [FrameSize]byte
}

// NewReader reads and checks the header.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)
	var h [HeaderSize]byte
	if _, err := io.ReadFull(br, h[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: short header", ErrBadMagic)
		}
		return nil, err
	}
	if [4]byte(h[0:4]) != magic {
		return nil, ErrBadMagic
	}
	if h[4] != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h[4])
	}
	rd := &Reader{r: br}
	copy(rd.digest[:], h[8:])
	return rd, nil
}

// Digest returns the profile digest stored in the header.
func (r *Reader) Digest() [32]byte { return r.digest }

// Next returns the next frame. It returns io.EOF after the last complete
// frame and io.ErrUnexpectedEOF when the file ends inside a frame.
func (r *Reader) Next() (Frame, error) {
	if _, err := io.ReadFull(r.r, r.buf[:]); err != nil {
		return Frame{}, err
	}
	var f Frame
	f.Source = binary.LittleEndian.Uint32(r.buf[0:4])
	f.Tick = binary.LittleEndian.Uint64(r.buf[4:12])
	if err := f.State.UnmarshalBinary(r.buf[12:]); err != nil {
		return Frame{}, err
	}
	return f, nil
}
