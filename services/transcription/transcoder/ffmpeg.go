package transcoder

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/meetlens/backend/services/transcription/consts"
)

// maxStderr caps the ffmpeg stderr kept in errors.
const maxStderr = 2048

type Transcoder interface {
	Transcode(ctx context.Context, inPath, outPath string) error
}

type FFmpeg struct {
	path string
	log  *slog.Logger
}

func NewFFmpeg(path string, log *slog.Logger) *FFmpeg {
	if path == "" {
		path = "ffmpeg"
	}
	return &FFmpeg{
		path: path,
		log:  log,
	}
}

// Transcode converts inPath to a mono 16 kHz 16-bit PCM WAV at outPath and
// checks the result. On failure outPath is removed.
func (f *FFmpeg) Transcode(ctx context.Context, inPath, outPath string) (err error) {
	defer func() {
		if err != nil {
			os.Remove(outPath)
		}
	}()

	args := []string{
		"-nostdin", "-hide_banner", "-loglevel", "error",
		"-y", "-i", inPath,
		"-vn",
		"-ac", strconv.Itoa(consts.Channels),
		"-ar", strconv.Itoa(consts.SampleRate),
		"-acodec", consts.PCMCodec,
		"-f", consts.FormatWAV,
		outPath,
	}

	f.log.Debug("running ffmpeg",
		slog.String("input", inPath),
		slog.String("output", outPath))

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, f.path, args...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if len(msg) > maxStderr {
			msg = msg[:maxStderr]
		}
		f.log.Error("ffmpeg failed",
			slog.String("error", err.Error()),
			slog.String("stderr", msg))
		if msg != "" {
			return fmt.Errorf("ffmpeg: %w: %s", err, msg)
		}
		return fmt.Errorf("ffmpeg: %w", err)
	}

	if err := ValidateWAV(outPath); err != nil {
		return err
	}

	f.log.Debug("ffmpeg finished", slog.String("output", outPath))
	return nil
}
