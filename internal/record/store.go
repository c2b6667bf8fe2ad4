package record

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	filePrefix     = "prt_assessment_"
	fileSuffix     = ".json"
	fileTimeLayout = "20060102_150405"
	suffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	suffixLength   = 6
)

// DefaultDir is where the web front end keeps its records.
const DefaultDir = "results"

// Recorder writes records into a directory, one file per run.
type Recorder struct {
	Dir string
}

// NewRecorder returns a Recorder for dir, or DefaultDir when dir is empty.
func NewRecorder(dir string) *Recorder {
	if dir == "" {
		dir = DefaultDir
	}
	return &Recorder{Dir: dir}
}

// Save writes rec to a new file named after now plus a random suffix,
// creating the directory if needed. It returns the file path.
func (r *Recorder) Save(rec Record, now time.Time) (string, error) {
	if err := os.MkdirAll(r.Dir, 0755); err != nil {
		return "", fmt.Errorf("record.Save: %w", err)
	}
	name, err := FileName(now)
	if err != nil {
		return "", fmt.Errorf("record.Save: %w", err)
	}
	path := filepath.Join(r.Dir, name)
	if err := WriteFile(path, rec); err != nil {
		return "", err
	}
	return path, nil
}

// FileName returns prt_assessment_YYYYmmdd_HHMMSS_<suffix>.json for now.
func FileName(now time.Time) (string, error) {
	suffix, err := gonanoid.Generate(suffixAlphabet, suffixLength)
	if err != nil {
		return "", fmt.Errorf("generate file suffix: %w", err)
	}
	return filePrefix + now.Format(fileTimeLayout) + "_" + suffix + fileSuffix, nil
}

// Marshal encodes rec with four-space indentation.
func Marshal(rec Record) ([]byte, error) {
	data, err := json.MarshalIndent(rec, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// WriteFile writes rec to path, replacing any existing file.
func WriteFile(path string, rec Record) error {
	data, err := Marshal(rec)
	if err != nil {
		return fmt.Errorf("record.WriteFile: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("record.WriteFile: %w", err)
	}
	return nil
}

// Loaded is a record read back from disk.
type Loaded struct {
	Path   string
	Hash   string
	Record Record
}

// Load reads a record file, checks it against the record schema and decodes it.
// Consistency between fields is left to Validate.
func Load(path string) (*Loaded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("record.Load: %w", err)
	}
	if err := CheckSchema(data); err != nil {
		return nil, fmt.Errorf("record.Load %s: %w", filepath.Base(path), err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("record.Load %s: %w", filepath.Base(path), err)
	}
	h := sha256.Sum256(data)
	return &Loaded{
		Path:   path,
		Hash:   fmt.Sprintf("sha256:%x", h),
		Record: rec,
	}, nil
}

// Entry is a record file found by List.
type Entry struct {
	Name string
	Path string
}

// List returns the record files in dir, newest first. A missing dir yields no entries.
func List(dir string) ([]Entry, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("record.List: %w", err)
	}
	var entries []Entry
	for _, de := range des {
		n := de.Name()
		if de.IsDir() || !strings.HasPrefix(n, filePrefix) || !strings.HasSuffix(n, fileSuffix) {
			continue
		}
		entries = append(entries, Entry{Name: n, Path: filepath.Join(dir, n)})
	}
	// Names embed the timestamp, so lexical order is chronological.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Name > entries[j].Name
	})
	return entries, nil
}
