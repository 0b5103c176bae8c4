// Package config loads runtime settings from defaults, a TOML file and
// TASKLIST_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/persist"
	"github.com/sandeepkv93/tasklist/internal/storage"
)

type Config struct {
	Store                string `toml:"store"`
	StorePath            string `toml:"store_path"`
	RedisAddr            string `toml:"redis_addr"`
	RedisDB              int    `toml:"redis_db"`
	TasksKey             string `toml:"tasks_key"`
	ChecksumKey          string `toml:"checksum_key"`
	DefaultSort          string `toml:"default_sort"`
	DefaultFilter        string `toml:"default_filter"`
	LogLevel             string `toml:"log_level"`
	LogFormat            string `toml:"log_format"`
	LogFile              string `toml:"log_file"`
	DesktopNotifications bool   `toml:"desktop_notifications"`
}

func Default() Config {
	return Config{
		Store:         string(storage.KindSQLite),
		RedisAddr:     "localhost:6379",
		TasksKey:      persist.DefaultTasksKey,
		ChecksumKey:   persist.DefaultChecksumKey,
		DefaultSort:   string(model.SortPriority),
		DefaultFilter: string(model.FilterAll),
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tasklist", "config.toml"), nil
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvString("TASKLIST_STORE"); ok {
		cfg.Store = v
	}
	if v, ok := getEnvString("TASKLIST_STORE_PATH"); ok {
		cfg.StorePath = v
	}
	if v, ok := getEnvString("TASKLIST_REDIS_ADDR"); ok {
		cfg.RedisAddr = v
	}
	if v, ok := getEnvInt("TASKLIST_REDIS_DB"); ok && v >= 0 {
		cfg.RedisDB = v
	}
	if v, ok := getEnvString("TASKLIST_TASKS_KEY"); ok {
		cfg.TasksKey = v
	}
	if v, ok := getEnvString("TASKLIST_CHECKSUM_KEY"); ok {
		cfg.ChecksumKey = v
	}
	if v, ok := getEnvString("TASKLIST_DEFAULT_SORT"); ok {
		cfg.DefaultSort = v
	}
	if v, ok := getEnvString("TASKLIST_DEFAULT_FILTER"); ok {
		cfg.DefaultFilter = v
	}
	if v, ok := getEnvString("TASKLIST_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := getEnvString("TASKLIST_LOG_FORMAT"); ok {
		cfg.LogFormat = v
	}
	if v, ok := getEnvString("TASKLIST_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnvBool("TASKLIST_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	return cfg
}

// ResolvePaths fills empty file locations with defaults under dir.
func (c Config) ResolvePaths(dir string) Config {
	out := c
	if strings.TrimSpace(out.StorePath) == "" {
		kind, _ := storage.ParseKind(out.Store)
		switch kind {
		case storage.KindFile:
			out.StorePath = filepath.Join(dir, "tasks.json")
		case storage.KindSQLite:
			out.StorePath = filepath.Join(dir, "tasklist.db")
		}
	}
	if strings.TrimSpace(out.LogFile) == "" {
		out.LogFile = filepath.Join(dir, "tasklist.log")
	}
	return out
}

func (c Config) Validate() error {
	if _, err := storage.ParseKind(c.Store); err != nil {
		return err
	}
	if _, err := model.ParseSortCriterion(c.DefaultSort); err != nil {
		return err
	}
	if _, err := model.ParseFilter(c.DefaultFilter); err != nil {
		return err
	}
	if strings.TrimSpace(c.TasksKey) == "" || strings.TrimSpace(c.ChecksumKey) == "" {
		return errors.New("config: store keys must not be empty")
	}
	if c.TasksKey == c.ChecksumKey {
		return errors.New("config: tasks_key and checksum_key must differ")
	}
	return nil
}

func (c Config) StorageOptions() storage.Options {
	return storage.Options{
		Kind:      storage.Kind(strings.ToLower(strings.TrimSpace(c.Store))),
		Path:      c.StorePath,
		RedisAddr: c.RedisAddr,
		RedisDB:   c.RedisDB,
	}
}

func (c Config) Keys() persist.Keys {
	return persist.Keys{Tasks: c.TasksKey, Checksum: c.ChecksumKey}
}

func (c Config) Sort() model.SortCriterion {
	s, err := model.ParseSortCriterion(c.DefaultSort)
	if err != nil {
		return model.SortPriority
	}
	return s
}

func (c Config) Filter() model.Filter {
	f, err := model.ParseFilter(c.DefaultFilter)
	if err != nil {
		return model.FilterAll
	}
	return f
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
