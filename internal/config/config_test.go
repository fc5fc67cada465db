package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	dir := t.TempDir()
	f, err := Load(filepath.Join(dir, "config.json"))
	if err != nil {
		t.Fatal(err)
	}

	c := f.Config()
	if c.Baud != DefaultBaud {
		t.Errorf("Baud = %d, want %d", c.Baud, DefaultBaud)
	}
	if c.ListenAddr != DefaultListenAddr {
		t.Errorf("ListenAddr = %q", c.ListenAddr)
	}
	if c.TraceDir != filepath.Join(dir, "traces") {
		t.Errorf("TraceDir = %q", c.TraceDir)
	}
	if c.DBPath != "" || c.SerialDevice != "" {
		t.Errorf("unexpected values: %+v", c)
	}
}

func TestSettersPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := f.SetDBPath("/tmp/runs.db"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetSerial("/dev/ttyUSB0", 9600); err != nil {
		t.Fatal(err)
	}
	if err := f.SetListenAddr(":9000"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetTraceDir("/tmp/traces"); err != nil {
		t.Fatal(err)
	}

	again, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := Config{
		DBPath:       "/tmp/runs.db",
		SerialDevice: "/dev/ttyUSB0",
		Baud:         9600,
		TraceDir:     "/tmp/traces",
		ListenAddr:   ":9000",
	}
	if got := again.Config(); got != want {
		t.Errorf("Config = %+v, want %+v", got, want)
	}
}

func TestLoadRejectsBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected an error for malformed JSON")
	}
}

func TestSetByKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	for _, kv := range [][2]string{
		{"serial", "/dev/ttyACM0"},
		{"baud", "57600"},
		{"delay", "150"},
		{"listen", ":8081"},
	} {
		if err := f.Set(kv[0], kv[1]); err != nil {
			t.Fatalf("Set(%s): %v", kv[0], err)
		}
	}

	again, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	c := again.Config()
	if c.SerialDevice != "/dev/ttyACM0" || c.Baud != 57600 || c.GroupDelayMs != 150 || c.ListenAddr != ":8081" {
		t.Errorf("Config = %+v", c)
	}

	if err := f.Set("baud", "fast"); err == nil {
		t.Error("non-numeric baud accepted")
	}
	if err := f.Set("colour", "blue"); err == nil {
		t.Error("unknown key accepted")
	}
}
