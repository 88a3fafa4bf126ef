// Package sound loops an ambient soundtrack for the lifetime of the saver
// window.
package sound

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

// Player owns the decoded stream and the open file behind it.
type Player struct {
	file     *os.File
	streamer beep.StreamSeekCloser
}

// Start decodes path by extension and begins looping it through the
// speaker. The returned Player must be closed when the saver exits.
func Start(path string) (*Player, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	ext := filepath.Ext(path)
	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext {
	case ".wav", ".WAV":
		streamer, format, err = wav.Decode(f)
	case ".mp3", ".MP3":
		streamer, format, err = mp3.Decode(f)
	case ".flac", ".FLAC":
		streamer, format, err = flac.Decode(f)
	default:
		_ = f.Close()
		return nil, errors.New("unsupported file type: " + ext)
	}
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	bufferSize := format.SampleRate.N(time.Second / 20)
	if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
		_ = streamer.Close()
		_ = f.Close()
		return nil, err
	}

	speaker.Play(beep.Loop(-1, streamer))
	return &Player{file: f, streamer: streamer}, nil
}

// Close stops playback and releases the stream and file.
func (p *Player) Close() {
	speaker.Lock()
	speaker.Clear()
	speaker.Unlock()
	_ = p.streamer.Close()
	_ = p.file.Close()
}
