package kvstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/natefinch/atomic"
)

// FileStore is a string-keyed mapping mirrored to a single JSON file.
// Every mutation rewrites the whole file before returning.
type FileStore[V any] struct {
	mu     sync.RWMutex
	path   string
	data   map[string]V
	indent bool
}

type Option func(*options)

type options struct {
	indent bool
}

// WithIndent pretty-prints the file on save.
func WithIndent() Option {
	return func(o *options) {
		o.indent = true
	}
}

// Open loads the mapping stored at path. A missing or unparsable file yields an
// empty store; any other read error is returned.
func Open[V any](path string, opts ...Option) (*FileStore[V], error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	s := &FileStore[V]{
		path:   path,
		data:   make(map[string]V),
		indent: o.indent,
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var loaded map[string]V
	if err := json.Unmarshal(raw, &loaded); err != nil {
		return s, nil
	}
	if loaded != nil {
		s.data = loaded
	}

	return s, nil
}

func (s *FileStore[V]) Path() string {
	return s.path
}

func (s *FileStore[V]) Get(key string) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	return v, ok
}

func (s *FileStore[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.data)
}

// Set stores value under key and persists the mapping. On a failed write the
// in-memory mapping is rolled back so memory and disk stay in agreement.
func (s *FileStore[V]) Set(key string, value V) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.data[key]
	s.data[key] = value

	if err := s.save(); err != nil {
		if existed {
			s.data[key] = prev
		} else {
			delete(s.data, key)
		}
		return err
	}
	return nil
}

// SetIfAbsent stores value only when key is not present yet. The check and the
// insert happen under one lock.
func (s *FileStore[V]) SetIfAbsent(key string, value V) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[key]; exists {
		return false, nil
	}

	s.data[key] = value
	if err := s.save(); err != nil {
		delete(s.data, key)
		return false, err
	}
	return true, nil
}

// Replace overwrites value under key only when key is already present.
func (s *FileStore[V]) Replace(key string, value V) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, exists := s.data[key]
	if !exists {
		return false, nil
	}

	s.data[key] = value
	if err := s.save(); err != nil {
		s.data[key] = prev
		return false, err
	}
	return true, nil
}

// save must be called with mu held.
func (s *FileStore[V]) save() error {
	var (
		payload []byte
		err     error
	)
	if s.indent {
		payload, err = json.MarshalIndent(s.data, "", "    ")
	} else {
		payload, err = json.Marshal(s.data)
	}
	if err != nil {
		return fmt.Errorf("marshal %s: %w", s.path, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}

	// temp file in the same dir, fsync, then rename over the target
	if err := atomic.WriteFile(s.path, bytes.NewReader(payload)); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
