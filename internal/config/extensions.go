package config

import (
	"path/filepath"
	"strings"

	"github.com/runnerr0/mediacat/internal/media"
)

// DefaultExtensions maps the file extensions the catalog recognises to the
// kind of media they hold. Keys are lower-case and start with a dot.
func DefaultExtensions() map[string]media.FileType {
	return map[string]media.FileType{
		// Still images
		".jpg":  media.FileImage,
		".jpeg": media.FileImage,
		".png":  media.FileImage,
		".gif":  media.FileImage,
		".bmp":  media.FileImage,
		".tif":  media.FileImage,
		".tiff": media.FileImage,
		".webp": media.FileImage,
		".heic": media.FileImage,
		".heif": media.FileImage,
		".raw":  media.FileImage,
		".cr2":  media.FileImage,
		".nef":  media.FileImage,
		".dng":  media.FileImage,

		// Video
		".mp4":  media.FileVideo,
		".mov":  media.FileVideo,
		".avi":  media.FileVideo,
		".mkv":  media.FileVideo,
		".wmv":  media.FileVideo,
		".m4v":  media.FileVideo,
		".3gp":  media.FileVideo,
		".mts":  media.FileVideo,
		".mpg":  media.FileVideo,
		".mpeg": media.FileVideo,
		".webm": media.FileVideo,

		// Audio
		".mp3":  media.FileAudio,
		".wav":  media.FileAudio,
		".m4a":  media.FileAudio,
		".aac":  media.FileAudio,
		".flac": media.FileAudio,
		".ogg":  media.FileAudio,
		".wma":  media.FileAudio,
		".opus": media.FileAudio,
		".amr":  media.FileAudio,
	}
}

// NormalizeExtension lower-cases ext and makes sure it starts with a dot.
// A full file name is reduced to its extension.
func NormalizeExtension(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext == "" {
		return ""
	}
	if e := filepath.Ext(ext); e != "" {
		ext = e
	}
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// FileTypeFor looks up the media kind of ext. The second result is false
// for extensions not in exts.
func FileTypeFor(exts map[string]media.FileType, ext string) (media.FileType, bool) {
	ft, ok := exts[NormalizeExtension(ext)]
	return ft, ok
}
