package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"time"
)

const (
	defaultHistoryDepth      = 50
	defaultGroupingWindowMs  = 2000
	defaultStorageQuotaBytes = int64(5 << 20)
	defaultSaveDebounceMs    = 300
	defaultTrimKeep          = 10
)

// Config represents the workspace configuration. Unset fields fall back to defaults.
type Config struct {
	HistoryDepth      *int   `json:"historyDepth,omitempty"`
	GroupingWindowMs  *int   `json:"groupingWindowMs,omitempty"`
	StorageQuotaBytes *int64 `json:"storageQuotaBytes,omitempty"`
	SaveDebounceMs    *int   `json:"saveDebounceMs,omitempty"`
	TrimKeep          *int   `json:"trimKeep,omitempty"`
}

// Load reads the configuration from the workspace directory
func Load(dir string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(dir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// Config doesn't exist - return default
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &config, nil
}

// Save writes the configuration to the workspace directory
func Save(dir string, config *Config) error {
	configJSON, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(ConfigPath(dir), configJSON, 0600)
}

// GetHistoryDepth returns how many undo entries are kept, or 50 by default
func (c *Config) GetHistoryDepth() int {
	if c.HistoryDepth != nil && *c.HistoryDepth > 0 {
		return *c.HistoryDepth
	}
	return defaultHistoryDepth
}

// GroupingWindow returns the coalescing window for grouped edits, or 2s by default
func (c *Config) GroupingWindow() time.Duration {
	if c.GroupingWindowMs != nil && *c.GroupingWindowMs > 0 {
		return time.Duration(*c.GroupingWindowMs) * time.Millisecond
	}
	return defaultGroupingWindowMs * time.Millisecond
}

// StorageQuota returns the maximum document size in bytes, or 5 MiB by default
func (c *Config) StorageQuota() int64 {
	if c.StorageQuotaBytes != nil && *c.StorageQuotaBytes > 0 {
		return *c.StorageQuotaBytes
	}
	return defaultStorageQuotaBytes
}

// SaveDebounce returns the delay before a requested save is written, or 300ms by default
func (c *Config) SaveDebounce() time.Duration {
	if c.SaveDebounceMs != nil && *c.SaveDebounceMs > 0 {
		return time.Duration(*c.SaveDebounceMs) * time.Millisecond
	}
	return defaultSaveDebounceMs * time.Millisecond
}

// GetTrimKeep returns how many undo entries survive a storage-exceeded trim, or 10 by default
func (c *Config) GetTrimKeep() int {
	if c.TrimKeep != nil && *c.TrimKeep > 0 {
		return *c.TrimKeep
	}
	return defaultTrimKeep
}

// Keys lists the settable configuration keys
func Keys() []string {
	return []string{"historyDepth", "groupingWindowMs", "storageQuotaBytes", "saveDebounceMs", "trimKeep"}
}

// Get returns the effective value of key as a string
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "historyDepth":
		return strconv.Itoa(c.GetHistoryDepth()), nil
	case "groupingWindowMs":
		return strconv.FormatInt(c.GroupingWindow().Milliseconds(), 10), nil
	case "storageQuotaBytes":
		return strconv.FormatInt(c.StorageQuota(), 10), nil
	case "saveDebounceMs":
		return strconv.FormatInt(c.SaveDebounce().Milliseconds(), 10), nil
	case "trimKeep":
		return strconv.Itoa(c.GetTrimKeep()), nil
	default:
		return "", unknownKey(key)
	}
}

// Set parses value and stores it under key. Values must be positive integers.
func (c *Config) Set(key, value string) error {
	if !slices.Contains(Keys(), key) {
		return unknownKey(key)
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n <= 0 {
		return fmt.Errorf("%s must be a positive integer, got %q", key, value)
	}

	switch key {
	case "historyDepth":
		c.HistoryDepth = intPtr(int(n))
	case "groupingWindowMs":
		c.GroupingWindowMs = intPtr(int(n))
	case "storageQuotaBytes":
		c.StorageQuotaBytes = &n
	case "saveDebounceMs":
		c.SaveDebounceMs = intPtr(int(n))
	case "trimKeep":
		c.TrimKeep = intPtr(int(n))
	}
	return nil
}

func unknownKey(key string) error {
	return fmt.Errorf("unknown config key %q (valid keys: %v)", key, Keys())
}

func intPtr(n int) *int {
	return &n
}
