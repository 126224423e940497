package harvest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/CrestNiraj12/tweetsentiment/domain"
)

// NewestCSV returns the most recently modified .csv file in dir.
// Ties on modification time go to the lexically greater name.
func NewestCSV(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: output directory %s does not exist", domain.ErrNoData, dir)
		}
		return "", fmt.Errorf("reading output directory: %w", err)
	}

	var (
		best     string
		bestTime time.Time
	)
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		mt := info.ModTime()
		if best == "" || mt.After(bestTime) || (mt.Equal(bestTime) && e.Name() > best) {
			best, bestTime = e.Name(), mt
		}
	}
	if best == "" {
		return "", fmt.Errorf("%w: no .csv file in %s", domain.ErrNoData, dir)
	}
	return filepath.Join(dir, best), nil
}

// ReadFile parses a harvested CSV file.
func ReadFile(path string) ([]domain.Post, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	posts, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return posts, nil
}

// Parse reads tweet-harvest CSV rows. Only full_text is required;
// created_at, reply_count, username and the user id are optional.
func Parse(r io.Reader) ([]domain.Post, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file", domain.ErrNoData)
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	textCol, ok := col["full_text"]
	if !ok {
		return nil, fmt.Errorf("%w: missing full_text column", domain.ErrNoData)
	}
	field := func(rec []string, names ...string) string {
		for _, n := range names {
			if i, ok := col[n]; ok && i < len(rec) {
				return strings.TrimSpace(rec[i])
			}
		}
		return ""
	}

	var posts []domain.Post
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if textCol >= len(rec) {
			slog.Debug("skipping short csv row", "line", line)
			continue
		}
		p := domain.Post{
			Text:     rec[textCol],
			Username: field(rec, "username"),
			AuthorID: field(rec, "user_id_str", "user_id", "author_id"),
		}
		if raw := field(rec, "created_at"); raw != "" {
			if t, err := dateparse.ParseAny(raw); err == nil {
				p.CreatedAt = t
			} else {
				slog.Debug("unparsed created_at", "line", line, "value", raw)
			}
		}
		if raw := field(rec, "reply_count"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				p.ReplyCount = n
			}
		}
		posts = append(posts, p)
	}
	if len(posts) == 0 {
		return nil, fmt.Errorf("%w: no rows", domain.ErrNoData)
	}
	return posts, nil
}
