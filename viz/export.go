package viz

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/CrestNiraj12/tweetsentiment/domain"
)

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// ExportName builds a file name for a word cloud export.
func ExportName(term string, v domain.View, at time.Time) string {
	slug := strings.Trim(slugRe.ReplaceAllString(strings.ToLower(term), "-"), "-")
	if slug == "" {
		slug = "search"
	}
	return fmt.Sprintf("wordcloud-%s-%s-%s.png", slug, strings.ToLower(v.String()), at.Format("20060102-150405"))
}

// SavePNG writes img to dir/name, creating dir, and returns the path.
func SavePNG(dir, name string, img image.Image) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("encoding png: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}
