package config

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/gdamore/tcell/v2"
	"gopkg.in/yaml.v3"
)

const (
	AppName        = "atradio"
	AppTitle       = "Radio stations"
	AppDescription = "A terminal radio station browser driving an external VLC player"

	ConfigDir      = ".config/atradio"
	ConfigFileName = "config.yml"
	LogFileName    = "debug.log"
	DebugEnv       = "ATRADIO_DEBUG"

	DefaultStationsFile    = "stations.csv"
	DefaultExportExtension = ".csv"
	DefaultControlAddress  = "127.0.0.1:4212"
	DefaultVolume          = 256
	DefaultVolumeStep      = 10
	MinVolume              = 0
	MaxVolume              = 512

	DefaultStartupGrace   = 400 * time.Millisecond
	DefaultStopTimeout    = 3 * time.Second
	DefaultControlTimeout = 500 * time.Millisecond
)

// ErrPlayerNotFound is returned when no VLC binary can be located.
var ErrPlayerNotFound = errors.New("player binary not found")

// ClampVolume ensures volume is within the control channel range [0, 512].
func ClampVolume(volume int) int {
	if volume < MinVolume {
		return MinVolume
	}
	if volume > MaxVolume {
		return MaxVolume
	}
	return volume
}

// AppVersion can be overridden at build time using ldflags:
// go build -ldflags "-X github.com/glebovdev/atradio/internal/config.AppVersion=1.0.0"
var AppVersion = "dev"

type Theme struct {
	Selected string `yaml:"selected"`
	Playing  string `yaml:"playing"`
	Dim      string `yaml:"dim"`
}

type Volume struct {
	Initial int `yaml:"initial"`
	Step    int `yaml:"step"`
}

type Player struct {
	Path           string        `yaml:"path"`
	ControlAddress string        `yaml:"control_address"`
	ExtraArgs      []string      `yaml:"extra_args"`
	StartupGrace   time.Duration `yaml:"startup_grace"`
	StopTimeout    time.Duration `yaml:"stop_timeout"`
	ControlTimeout time.Duration `yaml:"control_timeout"`
}

type Config struct {
	StationsFile    string `yaml:"stations_file"`
	ExportExtension string `yaml:"export_extension"`
	Debug           bool   `yaml:"debug"`
	Volume          Volume `yaml:"volume"`
	Player          Player `yaml:"player"`
	Theme           Theme  `yaml:"theme"`
}

func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	configPath := filepath.Join(home, ConfigDir, ConfigFileName)
	return configPath, nil
}

// GetLogPath returns where the debug log is written.
func GetLogPath() (string, error) {
	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user cache directory: %w", err)
	}

	return filepath.Join(userCacheDir, AppName, LogFileName), nil
}

func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return DefaultConfig(), err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.normalize()

	return cfg, nil
}

func (c *Config) normalize() {
	def := DefaultConfig()

	if c.StationsFile == "" {
		c.StationsFile = def.StationsFile
	}
	if c.ExportExtension == "" {
		c.ExportExtension = def.ExportExtension
	}
	if c.ExportExtension[0] != '.' {
		c.ExportExtension = "." + c.ExportExtension
	}
	c.Volume.Initial = ClampVolume(c.Volume.Initial)
	if c.Volume.Step <= 0 {
		c.Volume.Step = def.Volume.Step
	}
	if c.Player.ControlAddress == "" {
		c.Player.ControlAddress = def.Player.ControlAddress
	}
	if c.Player.StartupGrace <= 0 {
		c.Player.StartupGrace = def.Player.StartupGrace
	}
	if c.Player.StopTimeout <= 0 {
		c.Player.StopTimeout = def.Player.StopTimeout
	}
	if c.Player.ControlTimeout <= 0 {
		c.Player.ControlTimeout = def.Player.ControlTimeout
	}
}

// Save writes the configuration to disk atomically using temp file + rename.
func (c *Config) Save() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmpFile, err := os.CreateTemp(configDir, ".config-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpPath != "" {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, configPath); err != nil {
		return fmt.Errorf("failed to rename config file: %w", err)
	}

	tmpPath = "" // Prevent defer from removing the final file
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		StationsFile:    DefaultStationsFile,
		ExportExtension: DefaultExportExtension,
		Debug:           false,
		Volume: Volume{
			Initial: DefaultVolume,
			Step:    DefaultVolumeStep,
		},
		Player: Player{
			Path:           "",
			ControlAddress: DefaultControlAddress,
			ExtraArgs:      []string{},
			StartupGrace:   DefaultStartupGrace,
			StopTimeout:    DefaultStopTimeout,
			ControlTimeout: DefaultControlTimeout,
		},
		Theme: Theme{
			Selected: "#ff9d65",
			Playing:  "#8ec07c",
			Dim:      "#7c7f93",
		},
	}
}

// DebugEnabled reports whether debug logging was requested in the config
// or through the environment.
func (c *Config) DebugEnabled() bool {
	if c.Debug {
		return true
	}
	v := os.Getenv(DebugEnv)
	return v != "" && v != "0" && v != "false"
}

var lookPath = exec.LookPath

// platformPlayerCandidates lists the well-known VLC locations tried before PATH.
func platformPlayerCandidates() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{
			filepath.Join("vlc", "vlc.exe"),
			`C:\Program Files\VideoLAN\VLC\vlc.exe`,
			`C:\Program Files (x86)\VideoLAN\VLC\vlc.exe`,
		}
	case "darwin":
		return []string{"/Applications/VLC.app/Contents/MacOS/VLC"}
	default:
		return nil
	}
}

// ResolvePlayer finds the VLC binary: the configured path first, then the
// platform locations, then cvlc/vlc on PATH.
func ResolvePlayer(c *Config) (string, error) {
	if c.Player.Path != "" {
		path, err := lookPath(c.Player.Path)
		if err != nil {
			return "", fmt.Errorf("%w: configured path %q: %v", ErrPlayerNotFound, c.Player.Path, err)
		}
		return path, nil
	}

	for _, candidate := range platformPlayerCandidates() {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	for _, name := range []string{"cvlc", "vlc"} {
		if path, err := lookPath(name); err == nil {
			return path, nil
		}
	}

	return "", ErrPlayerNotFound
}

// PlayerRemedy is printed next to ErrPlayerNotFound at startup.
func PlayerRemedy() string {
	configPath, _ := GetConfigPath()
	return fmt.Sprintf("Install VLC (https://www.videolan.org/) so that \"vlc\" is on your PATH,\n"+
		"or set player.path in %s.", configPath)
}

func GetColor(colorStr string) tcell.Color {
	if colorStr == "" || colorStr == "default" {
		return tcell.ColorDefault
	}
	return tcell.GetColor(colorStr)
}
