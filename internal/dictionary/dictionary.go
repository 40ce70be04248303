// Package dictionary finds, loads and saves the plain-text word lists the baker works from.
package dictionary

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultOutput is the file generated passwords are written to.
const DefaultOutput = "quantum_passwords.txt"

// DefaultName labels the embedded pantry.
const DefaultName = "default (embedded)"

var (
	ErrNoDictionaries  = errors.New("no dictionary files found")
	ErrEmptyDictionary = errors.New("dictionary is empty")
)

//go:embed pantry/default.txt
var defaultPantry string

// Entry is a discovered dictionary file.
type Entry struct {
	Name string
	Path string
}

// Discover lists *.txt files in dir, sorted by name. The file named exclude
// (typically the output file) is skipped.
func Discover(dir, exclude string) ([]Entry, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return nil, err
	}

	excludeBase := filepath.Base(exclude)
	var entries []Entry
	for _, path := range matches {
		name := filepath.Base(path)
		if exclude != "" && name == excludeBase {
			continue
		}
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		entries = append(entries, Entry{Name: name, Path: path})
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoDictionaries, dir)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// Load reads one ingredient per line from path.
func Load(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	defer file.Close()

	var items []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if item := clean(scanner.Text()); item != "" {
			items = append(items, item)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDictionary, filepath.Base(path))
	}
	return items, nil
}

// Default returns the embedded pantry used when no dictionary is given.
func Default() []string {
	var items []string
	for _, line := range strings.Split(defaultPantry, "\n") {
		if item := clean(line); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Save writes passwords newline-joined to path with owner-only permissions.
func Save(path string, passwords []string) error {
	data := strings.Join(passwords, "\n")
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		return fmt.Errorf("save passwords: %w", err)
	}
	return nil
}

// clean strips line endings and NFC-normalises the entry so composed and
// decomposed spellings classify and match the same way.
func clean(line string) string {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return ""
	}
	return norm.NFC.String(line)
}
