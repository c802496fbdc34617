package interaction

import (
	"os"
	"unicode/utf8"

	"golang.org/x/sys/unix"
)

// KeyType classifies a keyboard event
type KeyType int

const (
	KeyChar KeyType = iota
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlC
)

// KeyEvent represents a keyboard event
type KeyEvent struct {
	Key  rune
	Type KeyType
}

// KeyboardReader handles keyboard input in raw mode
type KeyboardReader struct {
	oldState *unix.Termios
	input    chan KeyEvent
	stop     chan struct{}
}

// NewKeyboardReader puts the terminal in raw mode and starts reading input
func NewKeyboardReader() (*KeyboardReader, error) {
	kr := &KeyboardReader{
		input: make(chan KeyEvent, 10),
		stop:  make(chan struct{}),
	}

	if err := kr.enableRawMode(); err != nil {
		return nil, err
	}

	go kr.readInput()

	return kr, nil
}

// readInput reads keyboard input in a goroutine
func (kr *KeyboardReader) readInput() {
	buf := make([]byte, 8)

	for {
		select {
		case <-kr.stop:
			return
		default:
			n, err := os.Stdin.Read(buf)
			if err != nil || n == 0 {
				continue
			}

			for _, event := range parseInput(buf[:n]) {
				select {
				case kr.input <- event:
				case <-kr.stop:
					return
				}
			}
		}
	}
}

// parseInput decodes raw bytes into key events
func parseInput(buf []byte) []KeyEvent {
	if len(buf) == 0 {
		return nil
	}

	// Escape sequences (arrow keys) arrive as one read
	if buf[0] == 27 {
		if len(buf) >= 3 && buf[1] == '[' {
			switch buf[2] {
			case 'A':
				return []KeyEvent{{Type: KeyUp}}
			case 'B':
				return []KeyEvent{{Type: KeyDown}}
			case 'C':
				return []KeyEvent{{Type: KeyRight}}
			case 'D':
				return []KeyEvent{{Type: KeyLeft}}
			}
			return nil
		}
		return []KeyEvent{{Key: 27, Type: KeyEscape}}
	}

	var events []KeyEvent
	for len(buf) > 0 {
		switch buf[0] {
		case 3: // Ctrl+C
			events = append(events, KeyEvent{Key: 3, Type: KeyCtrlC})
			buf = buf[1:]
		case '\r', '\n':
			events = append(events, KeyEvent{Type: KeyEnter})
			buf = buf[1:]
		case 127, 8: // DEL or BS
			events = append(events, KeyEvent{Type: KeyBackspace})
			buf = buf[1:]
		default:
			r, size := utf8.DecodeRune(buf)
			if r == utf8.RuneError && size == 1 {
				buf = buf[1:]
				continue
			}
			if r >= 32 {
				events = append(events, KeyEvent{Key: r, Type: KeyChar})
			}
			buf = buf[size:]
		}
	}
	return events
}

// Events returns the keyboard event channel
func (kr *KeyboardReader) Events() <-chan KeyEvent {
	return kr.input
}

// Close stops the keyboard reader and restores terminal
func (kr *KeyboardReader) Close() error {
	close(kr.stop)
	return kr.disableRawMode()
}
