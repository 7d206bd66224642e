package audio

import "errors"

var (
	// ErrNoDevice is returned when no capture device could be opened.
	ErrNoDevice = errors.New("audio: no capture device available")

	// ErrSourceClosed is returned when starting a closed source.
	ErrSourceClosed = errors.New("audio: source closed")
)
