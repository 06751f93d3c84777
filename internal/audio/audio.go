// Package audio plays the alarm sound. A missing file or audio device
// degrades to a silent player.
package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"github.com/spf13/afero"

	"midnightclock/internal/logger"
)

// Player plays the alarm sound without blocking.
type Player interface {
	Play()
}

// Nop is a Player that does nothing.
type Nop struct{}

// Play implements Player.
func (Nop) Play() {}

// Clip is a decoded sound held in memory so it can be replayed.
type Clip struct {
	buffer *beep.Buffer
}

// Decode reads a WAV stream fully into memory.
func Decode(r io.Reader) (*Clip, error) {
	streamer, format, err := wav.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("read wav samples: %w", err)
	}
	return &Clip{buffer: buffer}, nil
}

// Format returns the sample format of the clip.
func (clip *Clip) Format() beep.Format {
	return clip.buffer.Format()
}

// Duration returns the playing time of the clip.
func (clip *Clip) Duration() time.Duration {
	return clip.buffer.Format().SampleRate.D(clip.buffer.Len())
}

// Speaker plays a Clip on the default audio device.
type Speaker struct {
	clip *Clip
}

var (
	speakerOnce sync.Once
	speakerRate beep.SampleRate
	speakerErr  error
)

const resampleQuality = 4

// NewSpeaker opens the audio device at the clip's sample rate. The device
// is opened once per process.
func NewSpeaker(clip *Clip) (*Speaker, error) {
	speakerOnce.Do(func() {
		speakerRate = clip.Format().SampleRate
		speakerErr = speaker.Init(speakerRate, speakerRate.N(time.Second/10))
	})
	if speakerErr != nil {
		return nil, fmt.Errorf("init speaker: %w", speakerErr)
	}
	return &Speaker{clip: clip}, nil
}

// Play implements Player. Clips recorded at another rate than the open
// device are resampled.
func (player *Speaker) Play() {
	var streamer beep.Streamer = player.clip.buffer.Streamer(0, player.clip.buffer.Len())
	if rate := player.clip.Format().SampleRate; rate != speakerRate {
		streamer = beep.Resample(resampleQuality, rate, speakerRate, streamer)
	}
	speaker.Play(streamer)
}

// Load returns a Player for the WAV file at path. Any failure is logged as a
// warning and yields Nop.
func Load(ctx context.Context, fs afero.Fs, path string) Player {
	clip, err := LoadClip(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.WarnKV(ctx, "alarm sound file not found", "path", path)
		} else {
			logger.WarnKV(ctx, "alarm sound unusable", "path", path, "error", err)
		}
		return Nop{}
	}

	player, err := NewSpeaker(clip)
	if err != nil {
		logger.WarnKV(ctx, "audio device unavailable, alarms will be silent", "error", err)
		return Nop{}
	}
	return player
}

// LoadClip decodes the WAV file at path on fs.
func LoadClip(fs afero.Fs, path string) (*Clip, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read sound file: %w", err)
	}
	return Decode(bytes.NewReader(data))
}
