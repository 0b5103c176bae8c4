package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileStore keeps every key in one JSON object on disk. Writes go to a
// temporary file that is renamed over the original.
type FileStore struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

func OpenFile(path string) (*FileStore, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, errors.New("storage: file path is required")
	}
	values, err := readValues(trimmed)
	if err != nil {
		return nil, err
	}
	return &FileStore{path: trimmed, values: values}, nil
}

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Get(_ context.Context, key string) (string, error) {
	if err := checkKey(key); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *FileStore) Set(_ context.Context, key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := copyValues(s.values)
	next[key] = value
	if err := writeValues(s.path, next); err != nil {
		return err
	}
	s.values = next
	return nil
}

func (s *FileStore) Remove(_ context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		return nil
	}
	next := copyValues(s.values)
	delete(next, key)
	if err := writeValues(s.path, next); err != nil {
		return err
	}
	s.values = next
	return nil
}

func (s *FileStore) Close() error { return nil }

func readValues(path string) (map[string]string, error) {
	out := make(map[string]string)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}
	if strings.TrimSpace(string(raw)) == "" {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}
	return out, nil
}

func writeValues(path string, values map[string]string) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	payload, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func copyValues(in map[string]string) map[string]string {
	out := make(map[string]string, len(in)+1)
	for k, v := range in {
		out[k] = v
	}
	return out
}
