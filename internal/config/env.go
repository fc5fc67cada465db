package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override the file.
const (
	EnvDBPath       = "CUBEROBOT_DB"
	EnvSerialDevice = "CUBEROBOT_SERIAL_DEVICE"
	EnvBaud         = "CUBEROBOT_BAUD"
	EnvGroupDelayMs = "CUBEROBOT_GROUP_DELAY_MS"
	EnvTraceDir     = "CUBEROBOT_TRACE_DIR"
	EnvListenAddr   = "CUBEROBOT_LISTEN_ADDR"
)

// LoadEnvFiles loads dotenv files into the process environment. Variables
// that are already set keep their values and missing files are skipped.
func LoadEnvFiles(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load env file %s: %w", p, err)
		}
	}
	return nil
}

// WithEnv returns c with any overrides found through lookup applied.
func (c Config) WithEnv(lookup func(string) (string, bool)) (Config, error) {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid %s: %q", key, v)
		}
		*dst = n
		return nil
	}

	str(EnvDBPath, &c.DBPath)
	str(EnvSerialDevice, &c.SerialDevice)
	str(EnvTraceDir, &c.TraceDir)
	str(EnvListenAddr, &c.ListenAddr)
	if err := num(EnvBaud, &c.Baud); err != nil {
		return c, err
	}
	if err := num(EnvGroupDelayMs, &c.GroupDelayMs); err != nil {
		return c, err
	}
	return c, nil
}

// Resolve returns the configuration with defaults and environment overrides
// applied.
func (f *File) Resolve() (Config, error) {
	return f.Config().WithEnv(os.LookupEnv)
}
