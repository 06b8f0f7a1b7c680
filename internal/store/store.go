// Package store reads and writes station lists as ';'-delimited text files.
//
// The format is a header row "Name;URL" followed by one "name;url" row per
// station. Delimiters inside names or URLs are not escaped.
package store

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/glebovdev/atradio/internal/station"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

const (
	Delimiter    = ";"
	HeaderName   = "Name"
	HeaderURL    = "URL"
	ExportPrefix = "stations_"
)

var (
	// ErrResource means the list file could not be opened, read or written.
	ErrResource = errors.New("station list resource error")
	// ErrFormat means the list file exists but a row is malformed.
	ErrFormat = errors.New("station list format error")
	// ErrDelimiter means a value would split into extra columns when saved.
	ErrDelimiter = errors.New("value contains the column delimiter")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Header returns the header row without a line terminator.
func Header() string {
	return HeaderName + Delimiter + HeaderURL
}

// Load parses the list stored at path.
func Load(path string) ([]station.Station, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", ErrResource, path, err)
	}

	data = bytes.TrimPrefix(data, utf8BOM)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	stations := []station.Station{}
	lineNo := 0
	headerSeen := false

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")

		if !headerSeen {
			if err := checkHeader(line); err != nil {
				return nil, fmt.Errorf("%w: %s line %d: %w", ErrFormat, path, lineNo, err)
			}
			headerSeen = true
			continue
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, Delimiter)
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: %s line %d: missing %s column", ErrFormat, path, lineNo, HeaderURL)
		}
		if len(fields) > 2 {
			log.Debug().Str("file", path).Int("line", lineNo).Msg("Ignoring extra columns")
		}

		stations = append(stations, station.Station{Name: fields[0], URL: fields[1]})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to scan %s: %w", ErrResource, path, err)
	}

	if !headerSeen {
		return nil, fmt.Errorf("%w: %s: missing header row", ErrFormat, path)
	}

	return stations, nil
}

func checkHeader(line string) error {
	columns := strings.Split(line, Delimiter)
	if len(columns) != 2 ||
		!strings.EqualFold(strings.TrimSpace(columns[0]), HeaderName) ||
		!strings.EqualFold(strings.TrimSpace(columns[1]), HeaderURL) {
		return fmt.Errorf("header must be %q, got %q", Header(), line)
	}
	return nil
}

// CheckField rejects values that cannot be stored in one column.
func CheckField(value string) error {
	if strings.Contains(value, Delimiter) {
		return fmt.Errorf("%w %q", ErrDelimiter, Delimiter)
	}
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("%w: line break", ErrDelimiter)
	}
	return nil
}

// Encode renders stations in the on-disk format.
func Encode(stations []station.Station) []byte {
	var buf bytes.Buffer
	buf.WriteString(Header())
	buf.WriteByte('\n')
	for _, s := range stations {
		buf.WriteString(s.Name)
		buf.WriteString(Delimiter)
		buf.WriteString(s.URL)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Save overwrites path with stations. The file is written next to path and
// renamed over it, so a failed write leaves the previous list intact.
func Save(path string, stations []station.Station) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".stations-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", ErrResource, path, err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpPath != "" {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(Encode(stations)); err != nil {
		tmpFile.Close()
		return fmt.Errorf("%w: failed to write %s: %w", ErrResource, path, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", ErrResource, path, err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", ErrResource, path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("%w: failed to replace %s: %w", ErrResource, path, err)
	}

	tmpPath = ""
	log.Debug().Str("file", path).Int("count", len(stations)).Msg("Station list saved")
	return nil
}

// EnsureExists creates an empty list at path when nothing is there yet.
// It reports whether a file was created.
func EnsureExists(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("%w: failed to stat %s: %w", ErrResource, path, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return false, fmt.Errorf("%w: failed to create %s: %w", ErrResource, dir, err)
		}
	}

	if err := Save(path, nil); err != nil {
		return false, err
	}
	return true, nil
}

// List returns the names of regular files in dir ending in ext, sorted.
func List(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read directory %s: %w", ErrResource, dir, err)
	}

	files := lo.FilterMap(entries, func(entry os.DirEntry, _ int) (string, bool) {
		if !entry.Type().IsRegular() {
			return "", false
		}
		return entry.Name(), strings.HasSuffix(strings.ToLower(entry.Name()), strings.ToLower(ext))
	})

	sort.Strings(files)
	return files, nil
}

// ExportName suggests a save-as name derived from the date, without extension.
func ExportName(t time.Time) string {
	return ExportPrefix + t.Format("2006-01-02")
}

// WithExtension appends ext to name unless it already ends with it.
func WithExtension(name, ext string) string {
	if strings.HasSuffix(strings.ToLower(name), strings.ToLower(ext)) {
		return name
	}
	return name + ext
}
