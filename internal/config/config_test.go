package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Volume.Initial != DefaultVolume {
		t.Errorf("DefaultConfig().Volume.Initial = %d, want %d", cfg.Volume.Initial, DefaultVolume)
	}

	if cfg.Volume.Step != DefaultVolumeStep {
		t.Errorf("DefaultConfig().Volume.Step = %d, want %d", cfg.Volume.Step, DefaultVolumeStep)
	}

	if cfg.StationsFile != DefaultStationsFile {
		t.Errorf("DefaultConfig().StationsFile = %q, want %q", cfg.StationsFile, DefaultStationsFile)
	}

	if cfg.Player.ControlAddress != DefaultControlAddress {
		t.Errorf("DefaultConfig().Player.ControlAddress = %q, want %q", cfg.Player.ControlAddress, DefaultControlAddress)
	}

	if cfg.Debug {
		t.Error("DefaultConfig().Debug = true, want false")
	}
}

func TestConfigSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	testCfg := DefaultConfig()
	testCfg.StationsFile = "radio.csv"
	testCfg.Volume.Initial = 300
	testCfg.Player.Path = "/opt/vlc/vlc"
	testCfg.Player.StopTimeout = 5 * time.Second

	if err := testCfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	configPath := filepath.Join(tmpDir, ConfigDir, ConfigFileName)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatalf("Config file was not created at %s", configPath)
	}

	loadedCfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loadedCfg.StationsFile != "radio.csv" {
		t.Errorf("Load().StationsFile = %q, want %q", loadedCfg.StationsFile, "radio.csv")
	}
	if loadedCfg.Volume.Initial != 300 {
		t.Errorf("Load().Volume.Initial = %d, want 300", loadedCfg.Volume.Initial)
	}
	if loadedCfg.Player.Path != "/opt/vlc/vlc" {
		t.Errorf("Load().Player.Path = %q, want %q", loadedCfg.Player.Path, "/opt/vlc/vlc")
	}
	if loadedCfg.Player.StopTimeout != 5*time.Second {
		t.Errorf("Load().Player.StopTimeout = %v, want 5s", loadedCfg.Player.StopTimeout)
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	cfg, err := Load()
	if err != nil {
		t.Logf("Load() error (expected): %v", err)
	}

	if cfg.Volume.Initial != DefaultVolume {
		t.Errorf("Load() with non-existent file returned Volume.Initial = %d, want %d", cfg.Volume.Initial, DefaultVolume)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	configPath := filepath.Join(tmpDir, ConfigDir, ConfigFileName)
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(configPath, []byte("volume: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err == nil {
		t.Error("Load() with invalid YAML should return an error")
	}
	if cfg == nil || cfg.StationsFile != DefaultStationsFile {
		t.Error("Load() with invalid YAML should fall back to defaults")
	}
}

func TestLoadNormalizesPartialConfig(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	configPath := filepath.Join(tmpDir, ConfigDir, ConfigFileName)
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		t.Fatal(err)
	}
	data := "export_extension: txt\nvolume:\n  step: 0\nplayer:\n  control_address: \"\"\n  startup_grace: 1s\n"
	if err := os.WriteFile(configPath, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ExportExtension != ".txt" {
		t.Errorf("ExportExtension = %q, want %q", cfg.ExportExtension, ".txt")
	}
	if cfg.Volume.Step != DefaultVolumeStep {
		t.Errorf("Volume.Step = %d, want %d", cfg.Volume.Step, DefaultVolumeStep)
	}
	if cfg.Player.ControlAddress != DefaultControlAddress {
		t.Errorf("Player.ControlAddress = %q, want %q", cfg.Player.ControlAddress, DefaultControlAddress)
	}
	if cfg.Player.StartupGrace != time.Second {
		t.Errorf("Player.StartupGrace = %v, want 1s", cfg.Player.StartupGrace)
	}
	if cfg.Player.StopTimeout != DefaultStopTimeout {
		t.Errorf("Player.StopTimeout = %v, want %v", cfg.Player.StopTimeout, DefaultStopTimeout)
	}
}

func TestVolumeValidation(t *testing.T) {
	tests := []struct {
		name           string
		inputVolume    int
		expectedVolume int
	}{
		{"valid volume 256", 256, 256},
		{"valid volume 0", 0, 0},
		{"valid volume 512", 512, 512},
		{"negative volume", -10, 0},
		{"volume over 512", 600, 512},
		{"volume way over 512", 10000, 512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			t.Setenv("HOME", tmpDir)

			testCfg := DefaultConfig()
			testCfg.Volume.Initial = tt.inputVolume

			if err := testCfg.Save(); err != nil {
				t.Fatalf("Save() error = %v", err)
			}

			loadedCfg, err := Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}

			if loadedCfg.Volume.Initial != tt.expectedVolume {
				t.Errorf("Load().Volume.Initial = %d, want %d", loadedCfg.Volume.Initial, tt.expectedVolume)
			}
		})
	}
}

func TestClampVolume(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{-1, 0},
		{0, 0},
		{10, 10},
		{511, 511},
		{512, 512},
		{513, 512},
	}

	for _, tt := range tests {
		if got := ClampVolume(tt.input); got != tt.expected {
			t.Errorf("ClampVolume(%d) = %d, want %d", tt.input, got, tt.expected)
		}
	}
}

func TestThemeDefaults(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Theme.Selected != "#ff9d65" {
		t.Errorf("Theme.Selected = %q, want %q", cfg.Theme.Selected, "#ff9d65")
	}
	if cfg.Theme.Playing != "#8ec07c" {
		t.Errorf("Theme.Playing = %q, want %q", cfg.Theme.Playing, "#8ec07c")
	}
}

func TestDebugEnabled(t *testing.T) {
	cfg := DefaultConfig()

	t.Setenv(DebugEnv, "")
	if cfg.DebugEnabled() {
		t.Error("DebugEnabled() = true with no config flag and empty env")
	}

	t.Setenv(DebugEnv, "1")
	if !cfg.DebugEnabled() {
		t.Error("DebugEnabled() = false with env set to 1")
	}

	t.Setenv(DebugEnv, "false")
	cfg.Debug = true
	if !cfg.DebugEnabled() {
		t.Error("DebugEnabled() = false with config flag set")
	}
}

func TestResolvePlayerConfiguredPath(t *testing.T) {
	orig := lookPath
	defer func() { lookPath = orig }()

	lookPath = func(file string) (string, error) {
		if file == "/custom/vlc" {
			return file, nil
		}
		return "", errors.New("not found")
	}

	cfg := DefaultConfig()
	cfg.Player.Path = "/custom/vlc"

	path, err := ResolvePlayer(cfg)
	if err != nil {
		t.Fatalf("ResolvePlayer() error = %v", err)
	}
	if path != "/custom/vlc" {
		t.Errorf("ResolvePlayer() = %q, want %q", path, "/custom/vlc")
	}

	cfg.Player.Path = "/missing/vlc"
	if _, err := ResolvePlayer(cfg); !errors.Is(err, ErrPlayerNotFound) {
		t.Errorf("ResolvePlayer() error = %v, want ErrPlayerNotFound", err)
	}
}

func TestResolvePlayerSearchPath(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		t.Skip("platform candidates are checked before PATH on this OS")
	}

	orig := lookPath
	defer func() { lookPath = orig }()

	var asked []string
	lookPath = func(file string) (string, error) {
		asked = append(asked, file)
		if file == "vlc" {
			return "/usr/bin/vlc", nil
		}
		return "", errors.New("not found")
	}

	path, err := ResolvePlayer(DefaultConfig())
	if err != nil {
		t.Fatalf("ResolvePlayer() error = %v", err)
	}
	if path != "/usr/bin/vlc" {
		t.Errorf("ResolvePlayer() = %q, want %q", path, "/usr/bin/vlc")
	}
	if len(asked) != 2 || asked[0] != "cvlc" {
		t.Errorf("lookups = %v, want [cvlc vlc]", asked)
	}

	lookPath = func(string) (string, error) { return "", errors.New("not found") }
	if _, err := ResolvePlayer(DefaultConfig()); !errors.Is(err, ErrPlayerNotFound) {
		t.Errorf("ResolvePlayer() error = %v, want ErrPlayerNotFound", err)
	}
}
