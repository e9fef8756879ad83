package media

import (
	"bytes"
	"fmt"
	"image"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/rwcarlsen/goexif/exif"

	"github.com/darck0ne2011-gif/verifeye-app/internal/domain"
)

// Canvas sizes commonly produced by image generators (DALL-E, Midjourney,
// Stable Diffusion and friends).
var suspiciousResolutions = map[string]bool{
	"512x512":   true,
	"512x768":   true,
	"768x512":   true,
	"768x768":   true,
	"1024x1024": true,
	"1024x768":  true,
	"768x1024":  true,
	"1024x576":  true,
	"576x1024":  true,
	"1152x896":  true,
	"896x1152":  true,
	"1216x832":  true,
	"832x1216":  true,
	"1344x768":  true,
	"768x1344":  true,
}

// Generator names matched against the embedded software/tool tag.
var generatorTags = []string{
	"DALL-E", "Midjourney", "Stable Diffusion", "DALL·E", "Craiyon",
	"Adobe Firefly", "Leonardo.AI", "Runway", "Kaiber", "Synthesia",
	"ElevenLabs", "Descript", "RunwayML", "Replicate",
}

// ImageInfo is what Inspect could derive from the image bytes alone.
type ImageInfo struct {
	Signals   domain.LocalSignals
	Width     int
	Height    int
	CreatedAt *time.Time
}

// Resolution returns "WxH" or "" when dimensions are unknown.
func (i ImageInfo) Resolution() string {
	if i.Width == 0 || i.Height == 0 {
		return ""
	}
	return fmt.Sprintf("%dx%d", i.Width, i.Height)
}

// Inspect derives local authenticity signals from an image buffer. It is a
// pure function of the bytes: no I/O, and an unparseable file simply yields
// zero-value fields with MissingCameraMetadata set.
func Inspect(data []byte) ImageInfo {
	info := ImageInfo{}

	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		x = nil
	}

	info.Signals.MissingCameraMetadata = !hasCameraMetadata(x)
	info.CreatedAt = captureTime(x)

	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		info.Width, info.Height = cfg.Width, cfg.Height
	} else if x != nil {
		info.Width, info.Height = exifDimensions(x)
	}

	if res := info.Resolution(); suspiciousResolutions[res] {
		info.Signals.SuspiciousResolution = res
	}

	if x != nil {
		info.Signals.MatchedGeneratorTags = matchGeneratorTags(x)
	}

	return info
}

// hasCameraMetadata mirrors how capture attribution is judged: a device
// make or model counts, as does a capture timestamp paired with a detector
// version tag.
func hasCameraMetadata(x *exif.Exif) bool {
	if x == nil {
		return false
	}
	if tagPresent(x, exif.Make) || tagPresent(x, exif.Model) {
		return true
	}
	hasDateTime := tagPresent(x, exif.DateTimeOriginal) || tagPresent(x, exif.DateTime)
	return hasDateTime && tagPresent(x, exif.ExifVersion)
}

func tagPresent(x *exif.Exif, name exif.FieldName) bool {
	tag, err := x.Get(name)
	if err != nil || tag == nil {
		return false
	}
	if s, err := tag.StringVal(); err == nil {
		return strings.TrimSpace(s) != ""
	}
	return true
}

func captureTime(x *exif.Exif) *time.Time {
	if x == nil {
		return nil
	}
	t, err := x.DateTime()
	if err != nil {
		return nil
	}
	return &t
}

func exifDimensions(x *exif.Exif) (int, int) {
	w := intTag(x, exif.PixelXDimension)
	h := intTag(x, exif.PixelYDimension)
	if w == 0 || h == 0 {
		w = intTag(x, exif.ImageWidth)
		h = intTag(x, exif.ImageLength)
	}
	return w, h
}

func intTag(x *exif.Exif, name exif.FieldName) int {
	tag, err := x.Get(name)
	if err != nil {
		return 0
	}
	v, err := tag.Int(0)
	if err != nil {
		return 0
	}
	return v
}

// CaptureAttributes collects the embedded attribution tags as an open map.
// Only tags actually present in the file appear as keys.
func CaptureAttributes(data []byte) map[string]string {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}

	attrs := make(map[string]string)
	for key, name := range map[string]exif.FieldName{
		"make":     exif.Make,
		"model":    exif.Model,
		"software": exif.Software,
		"datetime": exif.DateTime,
	} {
		tag, err := x.Get(name)
		if err != nil {
			continue
		}
		if s, err := tag.StringVal(); err == nil && strings.TrimSpace(s) != "" {
			attrs[key] = strings.TrimSpace(s)
		}
	}

	if len(attrs) == 0 {
		return nil
	}
	return attrs
}

func matchGeneratorTags(x *exif.Exif) []string {
	tag, err := x.Get(exif.Software)
	if err != nil {
		return nil
	}
	software, err := tag.StringVal()
	if err != nil || software == "" {
		return nil
	}
	lower := strings.ToLower(software)

	var matched []string
	for _, g := range generatorTags {
		if strings.Contains(lower, strings.ToLower(g)) {
			matched = append(matched, g)
		}
	}
	return matched
}
