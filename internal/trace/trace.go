// Package trace records a round frame by frame as a msgpack stream so
// tooling can replay what the renderer would have drawn.
package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/sumukhanand/clamor/internal/game"
)

const Version = 1

var ErrVersion = errors.New("unsupported trace version")

// RecordKind tags each record in the stream
type RecordKind uint8

const (
	RecordHeader RecordKind = iota + 1
	RecordFrame
	RecordResult
)

// Header opens a round
type Header struct {
	Version  int       `msgpack:"v"`
	Round    uuid.UUID `msgpack:"round"`
	Players  int       `msgpack:"players"`
	Duration float64   `msgpack:"duration"`
	Started  time.Time `msgpack:"started"`
}

// Frame is the render state after one update
type Frame struct {
	Index     uint64          `msgpack:"n"`
	Drawables []game.Drawable `msgpack:"d"`
	HUD       game.HUDState   `msgpack:"hud"`
	Effects   []game.Effect   `msgpack:"fx,omitempty"`
}

// Record is one entry of the stream; exactly one payload is set
type Record struct {
	Kind   RecordKind   `msgpack:"k"`
	Header *Header      `msgpack:"h,omitempty"`
	Frame  *Frame       `msgpack:"f,omitempty"`
	Result *game.Result `msgpack:"r,omitempty"`
}

// Capture reads the current frame out of r, draining its effects
func Capture(r *game.Round) Frame {
	return Frame{
		Index:     r.Frame(),
		Drawables: r.Drawables(),
		HUD:       r.HUD(),
		Effects:   r.Effects(),
	}
}

// Writer appends records to a stream
type Writer struct {
	buf    *bufio.Writer
	enc    *msgpack.Encoder
	frames int
}

// NewWriter returns a Writer on w. Call Flush when done.
func NewWriter(w io.Writer) *Writer {
	buf := bufio.NewWriter(w)
	enc := msgpack.NewEncoder(buf)
	enc.UseCompactInts(true)
	return &Writer{buf: buf, enc: enc}
}

// Begin writes a round header
func (w *Writer) Begin(r *game.Round, duration float64) error {
	return w.write(Record{Kind: RecordHeader, Header: &Header{
		Version:  Version,
		Round:    r.ID(),
		Players:  r.TotalPlayers(),
		Duration: duration,
		Started:  time.Now().UTC(),
	}})
}

// Frame writes one frame
func (w *Writer) Frame(f Frame) error {
	w.frames++
	return w.write(Record{Kind: RecordFrame, Frame: &f})
}

// End writes the round result
func (w *Writer) End(res game.Result) error {
	return w.write(Record{Kind: RecordResult, Result: &res})
}

// Frames returns how many frames have been written
func (w *Writer) Frames() int { return w.frames }

// Flush pushes buffered records to the underlying writer
func (w *Writer) Flush() error {
	return w.buf.Flush()
}

func (w *Writer) write(rec Record) error {
	if err := w.enc.Encode(&rec); err != nil {
		return fmt.Errorf("encode %d record: %w", rec.Kind, err)
	}
	return nil
}

// Reader decodes records from a stream
type Reader struct {
	dec *msgpack.Decoder
}

// NewReader returns a Reader on r
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: msgpack.NewDecoder(bufio.NewReader(r))}
}

// Next returns the next record, or io.EOF at the end of the stream
func (r *Reader) Next() (Record, error) {
	var rec Record
	if err := r.dec.Decode(&rec); err != nil {
		if errors.Is(err, io.EOF) {
			return rec, io.EOF
		}
		return rec, fmt.Errorf("decode record: %w", err)
	}
	if rec.Kind == RecordHeader && rec.Header != nil && rec.Header.Version != Version {
		return rec, fmt.Errorf("%w: %d", ErrVersion, rec.Header.Version)
	}
	return rec, nil
}
