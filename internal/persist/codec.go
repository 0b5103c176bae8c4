package persist

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/storage"
)

var (
	ErrIntegrityMismatch = errors.New("persist: checksum mismatch")
	ErrCorrupted         = errors.New("persist: stored tasks are corrupted")
	ErrWriteFailed       = errors.New("persist: write failed")
)

const (
	DefaultTasksKey    = "todo-list-tasks"
	DefaultChecksumKey = "todo-list-checksum"
)

type Keys struct {
	Tasks    string
	Checksum string
}

func DefaultKeys() Keys {
	return Keys{Tasks: DefaultTasksKey, Checksum: DefaultChecksumKey}
}

type Codec struct {
	store  storage.Store
	keys   Keys
	logger *log.Logger
}

type Option func(*Codec)

func WithKeys(keys Keys) Option {
	return func(c *Codec) {
		if keys.Tasks != "" {
			c.keys.Tasks = keys.Tasks
		}
		if keys.Checksum != "" {
			c.keys.Checksum = keys.Checksum
		}
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(c *Codec) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func NewCodec(store storage.Store, opts ...Option) *Codec {
	c := &Codec{
		store:  store,
		keys:   DefaultKeys(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Codec) Keys() Keys { return c.keys }

// Save writes the full collection and its checksum. A failed write leaves
// whatever was stored before in place.
func (c *Codec) Save(ctx context.Context, tasks []model.Task) error {
	data, err := Encode(tasks)
	if err != nil {
		c.logger.Error("Error saving tasks", "err", err)
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	if err := c.store.Set(ctx, c.keys.Tasks, data); err != nil {
		c.logger.Error("Error saving tasks", "key", c.keys.Tasks, "err", err)
		return fmt.Errorf("%w: %s: %w", ErrWriteFailed, c.keys.Tasks, err)
	}
	checksum := ChecksumString(data)
	if err := c.store.Set(ctx, c.keys.Checksum, checksum); err != nil {
		c.logger.Error("Error saving checksum", "key", c.keys.Checksum, "err", err)
		return fmt.Errorf("%w: %s: %w", ErrWriteFailed, c.keys.Checksum, err)
	}
	c.logger.Debug("Saved tasks", "count", len(tasks), "checksum", checksum)
	return nil
}

// Load returns the stored collection. A missing key means a first run and
// yields an empty collection with no error. Any corruption also yields an
// empty collection, together with an error describing it. Stored data is
// never removed here.
func (c *Codec) Load(ctx context.Context) ([]model.Task, error) {
	data, ok, err := c.read(ctx, c.keys.Tasks)
	if err != nil {
		return []model.Task{}, err
	}
	stored, okSum, err := c.read(ctx, c.keys.Checksum)
	if err != nil {
		return []model.Task{}, err
	}
	if !ok || !okSum {
		return []model.Task{}, nil
	}

	if calculated := ChecksumString(data); calculated != stored {
		c.logger.Error("Checksum verification failed. Data might be corrupted.", "stored", stored, "calculated", calculated)
		return []model.Task{}, fmt.Errorf("%w: stored %s, calculated %s", ErrIntegrityMismatch, stored, calculated)
	}

	tasks, err := Decode(data)
	if err != nil {
		c.logger.Error("Error loading tasks", "err", err)
		return []model.Task{}, fmt.Errorf("%w: %w", ErrCorrupted, err)
	}
	c.logger.Debug("Loaded tasks", "count", len(tasks))
	return tasks, nil
}

func (c *Codec) read(ctx context.Context, key string) (string, bool, error) {
	v, err := c.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", false, nil
		}
		c.logger.Error("Error loading tasks", "key", key, "err", err)
		return "", false, fmt.Errorf("%w: read %s: %w", ErrCorrupted, key, err)
	}
	return v, v != "", nil
}
