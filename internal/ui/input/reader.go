package input

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"
)

const readBufferSize = 256

// KeyReader reads key gestures from a terminal. The terminal is switched to
// raw mode only for the duration of each read and restored right after, so
// external programs and prompts always see it in its normal state.
type KeyReader struct {
	in      *os.File
	fd      int
	buf     []byte
	pending []*tcell.EventKey
}

// NewKeyReader creates a reader for the terminal behind in.
func NewKeyReader(in *os.File) *KeyReader {
	return &KeyReader{
		in:  in,
		fd:  int(in.Fd()),
		buf: make([]byte, readBufferSize),
	}
}

// ReadKey blocks for the next key event. Several gestures delivered by one
// read (a paste, fast typing) are queued and returned by later calls without
// touching the terminal. A nil event with a nil error means the input did not
// decode to a known key.
func (r *KeyReader) ReadKey() (*tcell.EventKey, error) {
	if len(r.pending) > 0 {
		ev := r.pending[0]
		r.pending = r.pending[1:]
		return ev, nil
	}

	data, err := r.readRaw()
	if err != nil {
		return nil, err
	}

	events := Decode(data)
	if len(events) == 0 {
		return nil, nil
	}
	r.pending = events[1:]
	return events[0], nil
}

func (r *KeyReader) readRaw() (data []byte, err error) {
	oldState, err := term.MakeRaw(r.fd)
	if err != nil {
		return nil, fmt.Errorf("cannot enter raw mode: %w", err)
	}
	defer func() {
		if restoreErr := term.Restore(r.fd, oldState); restoreErr != nil && err == nil {
			err = fmt.Errorf("cannot restore terminal: %w", restoreErr)
		}
	}()

	n, err := r.in.Read(r.buf)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), r.buf[:n]...), nil
}
