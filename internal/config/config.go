// Package config manages the cuberobot configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Defaults for settings missing from the file.
const (
	DefaultBaud       = 115200
	DefaultListenAddr = "127.0.0.1:8080"
)

// Config is the persistent configuration.
type Config struct {
	DBPath       string `json:"db_path,omitempty"`
	SerialDevice string `json:"serial_device,omitempty"`
	Baud         int    `json:"baud,omitempty"`
	// GroupDelayMs is the pause between command groups sent to the robot.
	GroupDelayMs int    `json:"group_delay_ms,omitempty"`
	TraceDir     string `json:"trace_dir,omitempty"`
	ListenAddr   string `json:"listen_addr,omitempty"`
}

// File manages the configuration file.
type File struct {
	path   string
	config Config
}

// Dir returns the cuberobot directory in the user's home directory.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".cuberobot"), nil
}

// DefaultPath returns the default configuration file path.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load opens the configuration file at path. A missing file yields the
// defaults.
func Load(path string) (*File, error) {
	f := &File{path: path}

	if err := f.Reload(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return f, nil
}

// LoadDefault opens the configuration file at the default path.
func LoadDefault() (*File, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Reload reads the file from disk.
func (f *File) Reload() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return err
	}

	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", f.path, err)
	}
	f.config = c
	return nil
}

// Save writes the configuration to disk.
func (f *File) Save() error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(f.config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Path returns the file path.
func (f *File) Path() string {
	return f.path
}

// Config returns the stored configuration with defaults filled in.
func (f *File) Config() Config {
	c := f.config
	if c.Baud == 0 {
		c.Baud = DefaultBaud
	}
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.TraceDir == "" {
		c.TraceDir = filepath.Join(filepath.Dir(f.path), "traces")
	}
	return c
}

// SetDBPath sets the database path.
func (f *File) SetDBPath(path string) error {
	f.config.DBPath = path
	return f.Save()
}

// SetSerial sets the serial device and baud rate.
func (f *File) SetSerial(device string, baud int) error {
	f.config.SerialDevice = device
	f.config.Baud = baud
	return f.Save()
}

// SetTraceDir sets the trace log directory.
func (f *File) SetTraceDir(dir string) error {
	f.config.TraceDir = dir
	return f.Save()
}

// SetListenAddr sets the HTTP listen address.
func (f *File) SetListenAddr(addr string) error {
	f.config.ListenAddr = addr
	return f.Save()
}

// SetGroupDelay sets the pause between command groups, in milliseconds.
func (f *File) SetGroupDelay(ms int) error {
	f.config.GroupDelayMs = ms
	return f.Save()
}

// Keys accepted by Set, in display order.
var Keys = []string{"db", "serial", "baud", "delay", "trace-dir", "listen"}

// Set updates one setting by key and saves the file.
func (f *File) Set(key, value string) error {
	switch key {
	case "db":
		return f.SetDBPath(value)
	case "serial":
		return f.SetSerial(value, f.config.Baud)
	case "baud", "delay":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid %s: %q", key, value)
		}
		if key == "baud" {
			return f.SetSerial(f.config.SerialDevice, n)
		}
		return f.SetGroupDelay(n)
	case "trace-dir":
		return f.SetTraceDir(value)
	case "listen":
		return f.SetListenAddr(value)
	default:
		return fmt.Errorf("unknown setting %q (use one of %s)", key, strings.Join(Keys, ", "))
	}
}
