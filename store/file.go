package store

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

const (
	configDirName = "vi-snake"
	scoreFileName = "highscore"

	// DataDirEnv overrides the directory holding the score file
	DataDirEnv = "VI_SNAKE_DATA_DIR"
)

// FileStore persists key=value lines to a text file
// Writes go through a temp file and rename
type FileStore struct {
	mu   sync.Mutex
	path string
}

// DefaultPath returns $VI_SNAKE_DATA_DIR/highscore, or UserConfigDir()/vi-snake/highscore
func DefaultPath() (string, error) {
	if env := os.Getenv(DataDirEnv); env != "" {
		return filepath.Join(env, scoreFileName), nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(base, configDirName, scoreFileName), nil
}

// NewFileStore prepares the parent directory of path
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create score dir: %w", err)
	}
	return &FileStore{path: path}, nil
}

// Path returns the backing file
func (f *FileStore) Path() string { return f.path }

func (f *FileStore) Load(context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return 0, err
	}
	return parseScore(values[HighScoreKey]), nil
}

func (f *FileStore) Save(_ context.Context, score int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	// Keep unrelated keys
	values, err := f.read()
	if err != nil {
		values = make(map[string]string)
	}
	return f.write(values, score)
}

func (f *FileStore) SaveIfHigher(_ context.Context, score int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return 0, err
	}
	if cur := parseScore(values[HighScoreKey]); cur >= score {
		return cur, nil
	}
	if err := f.write(values, score); err != nil {
		return 0, err
	}
	return score, nil
}

func (f *FileStore) Close() error { return nil }

// write replaces the file with values plus score
func (f *FileStore) write(values map[string]string, score int) error {
	values[HighScoreKey] = strconv.Itoa(score)

	var buf bytes.Buffer
	for k, v := range values {
		fmt.Fprintf(&buf, "%s=%s\n", k, v)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write score file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace score file: %w", err)
	}
	return nil
}

// read parses the file; a missing file is an empty map
func (f *FileStore) read() (map[string]string, error) {
	values := make(map[string]string)

	file, err := os.Open(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open score file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		values[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read score file: %w", err)
	}
	return values, nil
}
