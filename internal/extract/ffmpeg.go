package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

const silenceProbeTimeout = 10 * time.Second

// FFmpegExtractor runs the ffmpeg and ffprobe binaries.
type FFmpegExtractor struct {
	FFmpegPath  string
	FFprobePath string
}

func NewFFmpegExtractor(ffmpegPath, ffprobePath string) *FFmpegExtractor {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &FFmpegExtractor{FFmpegPath: ffmpegPath, FFprobePath: ffprobePath}
}

// Extract samples JPEG frames at the configured interval and separately
// attempts an audio-only extraction. A video without an audio track is a
// valid result with Audio == nil.
func (e *FFmpegExtractor) Extract(ctx context.Context, data []byte, formatHint string, opts Options) (*Tracks, error) {
	if opts.IntervalSeconds <= 0 {
		opts.IntervalSeconds = DefaultOptions().IntervalSeconds
	}
	if opts.MaxFrames <= 0 {
		opts.MaxFrames = DefaultOptions().MaxFrames
	}

	workDir, inputPath, cleanup, err := e.stageInput(data, formatHint)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	framePattern := filepath.Join(workDir, "frame-%04d.jpg")
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", inputPath,
		"-vf", fmt.Sprintf("fps=1/%d", opts.IntervalSeconds),
		"-frames:v", strconv.Itoa(opts.MaxFrames),
		"-q:v", "2",
		framePattern,
	}
	cmd := exec.CommandContext(ctx, e.FFmpegPath, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("ffmpeg frames: %w: %s", err, strings.TrimSpace(string(output)))
	}

	frames, err := readFrames(workDir)
	if err != nil {
		return nil, err
	}

	// Audio is best-effort: silent videos and extraction failures both
	// leave Audio nil.
	audio := e.extractAudio(ctx, workDir, inputPath)

	return &Tracks{Frames: frames, Audio: audio}, nil
}

func (e *FFmpegExtractor) extractAudio(ctx context.Context, workDir, inputPath string) []byte {
	audioPath := filepath.Join(workDir, "audio.mp3")
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", inputPath,
		"-vn",
		"-c:a", "libmp3lame",
		"-b:a", "128k",
		audioPath,
	}
	cmd := exec.CommandContext(ctx, e.FFmpegPath, args...) //nolint:gosec
	if err := cmd.Run(); err != nil {
		return nil
	}
	audio, err := os.ReadFile(audioPath)
	if err != nil || len(audio) == 0 {
		return nil
	}
	return audio
}

// ProbeAudio reads bitrate, sample rate and duration of the audio stream
// and summarizes silence gaps. Everything here is best-effort enrichment.
func (e *FFmpegExtractor) ProbeAudio(ctx context.Context, data []byte, formatHint string) (*AudioInfo, error) {
	_, inputPath, cleanup, err := e.stageInput(data, formatHint)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		inputPath,
	}
	cmd := exec.CommandContext(ctx, e.FFprobePath, args...) //nolint:gosec
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe: %w", err)
	}

	var probe struct {
		Streams []struct {
			CodecType  string `json:"codec_type"`
			BitRate    string `json:"bit_rate"`
			SampleRate string `json:"sample_rate"`
		} `json:"streams"`
		Format struct {
			BitRate  string `json:"bit_rate"`
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal(output, &probe); err != nil {
		return nil, fmt.Errorf("decode ffprobe output: %w", err)
	}

	info := &AudioInfo{}
	for _, s := range probe.Streams {
		if s.CodecType != "audio" {
			continue
		}
		info.HasAudio = true
		info.Bitrate = atoiSafe(s.BitRate)
		info.SampleRate = atoiSafe(s.SampleRate)
		break
	}
	if !info.HasAudio && probe.Format.BitRate == "" {
		return &AudioInfo{HasAudio: false}, nil
	}
	if info.Bitrate == 0 {
		info.Bitrate = atoiSafe(probe.Format.BitRate)
	}
	if d, err := strconv.ParseFloat(probe.Format.Duration, 64); err == nil {
		info.Duration = d
	}

	info.SilenceGaps = e.detectSilence(ctx, inputPath)

	return info, nil
}

var silenceRe = regexp.MustCompile(`silence_(?:start|end): ([\d.]+)`)

// detectSilence runs ffmpeg silencedetect and renders the gaps as a short
// human-readable summary for the reasoning prompt.
func (e *FFmpegExtractor) detectSilence(ctx context.Context, inputPath string) string {
	probeCtx, cancel := context.WithTimeout(ctx, silenceProbeTimeout)
	defer cancel()

	args := []string{
		"-hide_banner",
		"-i", inputPath,
		"-af", "silencedetect=noise=-30dB:d=0.5",
		"-f", "null",
		"-",
	}
	cmd := exec.CommandContext(probeCtx, e.FFmpegPath, args...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	if err != nil && probeCtx.Err() != nil {
		return ""
	}

	matches := silenceRe.FindAllStringSubmatch(string(output), -1)
	if len(matches) < 2 {
		return "none detected"
	}

	var gaps []string
	for i := 0; i+1 < len(matches); i += 2 {
		gaps = append(gaps, fmt.Sprintf("%ss-%ss", matches[i][1], matches[i+1][1]))
	}
	if len(gaps) == 0 {
		return "none detected"
	}
	return strings.Join(gaps, "; ")
}

// stageInput writes the buffer into a fresh temp dir and returns a cleanup
// that removes the whole dir. Callers defer the cleanup so the workspace is
// released on success, partial success and failure alike.
func (e *FFmpegExtractor) stageInput(data []byte, formatHint string) (workDir, inputPath string, cleanup func(), err error) {
	workDir, err = os.MkdirTemp("", "verifeye-extract-*")
	if err != nil {
		return "", "", nil, fmt.Errorf("create extraction workspace: %w", err)
	}
	cleanup = func() { _ = os.RemoveAll(workDir) }

	ext := strings.TrimPrefix(formatHint, ".")
	if ext == "" {
		ext = "mp4"
	}
	inputPath = filepath.Join(workDir, "input."+ext)
	if err := os.WriteFile(inputPath, data, 0o600); err != nil {
		cleanup()
		return "", "", nil, fmt.Errorf("stage input: %w", err)
	}
	return workDir, inputPath, cleanup, nil
}

func readFrames(workDir string) ([][]byte, error) {
	entries, err := os.ReadDir(workDir)
	if err != nil {
		return nil, fmt.Errorf("list frames: %w", err)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, "frame-") && strings.HasSuffix(name, ".jpg") {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	frames := make([][]byte, 0, len(names))
	for _, name := range names {
		frame, err := os.ReadFile(filepath.Join(workDir, name))
		if err != nil {
			return nil, fmt.Errorf("read frame %s: %w", name, err)
		}
		frames = append(frames, frame)
	}
	return frames, nil
}

func atoiSafe(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
