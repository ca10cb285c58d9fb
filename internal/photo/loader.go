package photo

import (
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Photo is one image file found under an album directory.
type Photo struct {
	FilePath string
	ModTime  time.Time
	Size     int64
}

// Load walks each album directory, gathering every file that can carry EXIF.
// Unreadable entries are logged and skipped; one bad directory doesn't stop
// the others.
func Load(albumDirs []string, log *slog.Logger) []Photo {
	var photos []Photo
	for _, albumDir := range albumDirs {
		err := filepath.WalkDir(albumDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				log.Warn("Error accessing path", "path", path, "error", err)
				// Skip this file/dir but keep walking
				return nil
			}
			if d.IsDir() || !IsImageFile(path) {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				log.Warn("Could not stat file", "path", path, "error", err)
				return nil
			}
			photos = append(photos, Photo{
				FilePath: path,
				ModTime:  info.ModTime(),
				Size:     info.Size(),
			})
			return nil
		})
		if err != nil {
			log.Warn("Error walking directory", "dir", albumDir, "error", err)
		}
	}
	sort.Slice(photos, func(i, j int) bool {
		return photos[i].FilePath < photos[j].FilePath
	})
	return photos
}

// IsImageFile checks for the extensions goexif can decode.
func IsImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".jpg", ".jpeg", ".jpe", ".tif", ".tiff":
		return true
	}
	return false
}
