package rotation

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	apperrors "github.com/EnemigoPython/Wallpaper-Rotator/internal/errors"
	"github.com/EnemigoPython/Wallpaper-Rotator/internal/util/sets"
)

// supportedExtensions are matched case-insensitively against file suffixes.
var supportedExtensions = sets.New(".jpg", ".jpeg", ".png", ".bmp", ".gif", ".tiff", ".webp")

// listImages returns supported image files directly inside folder, sorted
// for a stable rotation order. The listing is recomputed on every call so
// folder edits need no cache invalidation.
func listImages(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, apperrors.ListingFailed(folder, err)
	}

	images := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !supportedExtensions.Has(strings.ToLower(filepath.Ext(entry.Name()))) {
			continue
		}
		images = append(images, filepath.Join(folder, entry.Name()))
	}

	sort.Strings(images)
	return images, nil
}
