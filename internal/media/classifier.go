package media

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/darck0ne2011-gif/verifeye-app/internal/domain"
)

var extCategories = map[string]domain.MediaCategory{
	".jpg":  domain.MediaImage,
	".jpeg": domain.MediaImage,
	".png":  domain.MediaImage,
	".webp": domain.MediaImage,
	".gif":  domain.MediaImage,
	".bmp":  domain.MediaImage,
	".heic": domain.MediaImage,
	".mp3":  domain.MediaAudio,
	".wav":  domain.MediaAudio,
	".ogg":  domain.MediaAudio,
	".m4a":  domain.MediaAudio,
	".flac": domain.MediaAudio,
	".aac":  domain.MediaAudio,
	".mp4":  domain.MediaVideo,
	".mov":  domain.MediaVideo,
	".mkv":  domain.MediaVideo,
	".webm": domain.MediaVideo,
	".avi":  domain.MediaVideo,
}

// Classify decides the media category for an uploaded file. The sniffed
// content type wins over the declared MIME, which wins over the filename
// extension. Anything still ambiguous is treated as video, the most
// capability-rich path. Classify never fails.
func Classify(data []byte, declaredMIME, filename string) domain.MediaCategory {
	if len(data) > 0 {
		if cat, ok := categoryFromMIME(mimetype.Detect(data).String()); ok {
			return cat
		}
	}

	if cat, ok := categoryFromMIME(declaredMIME); ok {
		return cat
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if cat, ok := extCategories[ext]; ok {
		return cat
	}

	return domain.MediaVideo
}

func categoryFromMIME(mime string) (domain.MediaCategory, bool) {
	switch {
	case strings.HasPrefix(mime, "image/"):
		return domain.MediaImage, true
	case strings.HasPrefix(mime, "audio/"):
		return domain.MediaAudio, true
	case strings.HasPrefix(mime, "video/"):
		return domain.MediaVideo, true
	default:
		return "", false
	}
}

// SniffMIME returns the byte-sniffed content type, falling back to the
// declared MIME when the bytes are not recognizable.
func SniffMIME(data []byte, declaredMIME string) string {
	if len(data) > 0 {
		detected := mimetype.Detect(data).String()
		if detected != "" && detected != "application/octet-stream" {
			return detected
		}
	}
	if declaredMIME != "" {
		return declaredMIME
	}
	return "application/octet-stream"
}

// Extension derives a lowercase extension from the filename, then the MIME
// subtype, defaulting to "unknown".
func Extension(filename, mime string) string {
	if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), "."); ext != "" {
		return ext
	}
	if _, sub, ok := strings.Cut(mime, "/"); ok && sub != "" {
		return strings.ToLower(sub)
	}
	return "unknown"
}
