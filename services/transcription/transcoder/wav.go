package transcoder

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/wav"
	"github.com/meetlens/backend/services/transcription/consts"
)

const wavFormatPCM = 1

var ErrInvalidWAV = errors.New("transcoded audio is not canonical PCM wav")

// ValidateWAV checks that path holds a mono 16 kHz 16-bit PCM wav file.
func ValidateWAV(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open transcoded audio: %w", err)
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		if d.Err() != nil {
			return fmt.Errorf("%w: %w", ErrInvalidWAV, d.Err())
		}
		return ErrInvalidWAV
	}

	switch {
	case d.WavAudioFormat != wavFormatPCM:
		return fmt.Errorf("%w: audio format %d", ErrInvalidWAV, d.WavAudioFormat)
	case d.NumChans != consts.Channels:
		return fmt.Errorf("%w: %d channels", ErrInvalidWAV, d.NumChans)
	case d.SampleRate != consts.SampleRate:
		return fmt.Errorf("%w: %d Hz", ErrInvalidWAV, d.SampleRate)
	case d.BitDepth != consts.BitDepth:
		return fmt.Errorf("%w: %d bit", ErrInvalidWAV, d.BitDepth)
	}

	return nil
}
