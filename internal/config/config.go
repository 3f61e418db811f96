// Package config provides configuration management for the pointer
// controller.
package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

// Config represents the application configuration
type Config struct {
	// General contains general application settings
	General GeneralConfig `json:"general"`

	// Tuning contains the motion parameters
	Tuning TuningConfig `json:"tuning"`
}

// GeneralConfig contains general application settings
type GeneralConfig struct {
	// StartOnBoot determines if app starts on system boot
	StartOnBoot bool `json:"start_on_boot"`

	// ShowTray shows the system tray icon
	ShowTray bool `json:"show_tray"`

	// APIEnabled enables the local HTTP status server
	APIEnabled bool `json:"api_enabled"`

	// APIPort is the port for the status server
	APIPort int `json:"api_port"`

	// APIToken is an optional authentication token for API requests
	APIToken string `json:"api_token,omitempty"`
}

// TuningConfig contains the cursor motion parameters. Key bindings are
// fixed at build time and intentionally absent here.
type TuningConfig struct {
	// MaxSpeed is the cursor speed in pixels per second
	MaxSpeed float64 `json:"max_speed"`

	// TickRate is the physics loop frequency in Hz
	TickRate int `json:"tick_rate"`

	// SlowMultiplier scales MaxSpeed while the speed modifier is held
	SlowMultiplier float64 `json:"slow_multiplier"`

	// Model selects the movement model: "linear" (default) or "inertia"
	Model string `json:"model"`

	// Accel is the acceleration used by the inertia model, px/s^2
	Accel float64 `json:"accel"`

	// Friction is the decay coefficient used by the inertia model, 1/s
	Friction float64 `json:"friction"`
}

// DefaultConfig returns a new Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		General: GeneralConfig{
			StartOnBoot: false,
			ShowTray:    true,
			APIEnabled:  false,
			APIPort:     18181,
		},
		Tuning: TuningConfig{
			MaxSpeed:       700,
			TickRate:       120,
			SlowMultiplier: 0.5,
			Model:          "linear",
			Accel:          10000,
			Friction:       1000,
		},
	}
}

// Manager handles loading and saving configuration
type Manager struct {
	mu         sync.Mutex
	configPath string
	config     *Config
	onChanged  func()
}

// NewManager creates a new configuration manager
func NewManager() (*Manager, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return NewManagerAt(configPath), nil
}

// NewManagerAt creates a manager bound to an explicit config file path.
func NewManagerAt(path string) *Manager {
	return &Manager{
		configPath: path,
		config:     DefaultConfig(),
	}
}

// getConfigPath returns the path to the configuration file
func getConfigPath() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, "Library", "Application Support", "mousekeys")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		configDir = filepath.Join(appData, "mousekeys")
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".config", "mousekeys")
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(configDir, "config.json"), nil
}

// Load reads the configuration from disk
func (m *Manager) Load() error {
	m.mu.Lock()

	data, err := os.ReadFile(m.configPath)
	if os.IsNotExist(err) {
		// No config file, use defaults
		m.mu.Unlock()
		return nil
	}
	if err != nil {
		m.mu.Unlock()
		return err
	}

	if err := json.Unmarshal(data, m.config); err != nil {
		m.mu.Unlock()
		return err
	}
	m.applyFallbacks()
	m.mu.Unlock()

	if m.onChanged != nil {
		m.onChanged()
	}
	return nil
}

// applyFallbacks restores defaults for zero-valued tuning fields so a
// hand-edited config cannot freeze the loop. Callers hold m.mu.
func (m *Manager) applyFallbacks() {
	def := DefaultConfig()
	if m.config.Tuning.MaxSpeed <= 0 {
		m.config.Tuning.MaxSpeed = def.Tuning.MaxSpeed
	}
	if m.config.Tuning.TickRate <= 0 {
		m.config.Tuning.TickRate = def.Tuning.TickRate
	}
	if m.config.Tuning.SlowMultiplier <= 0 {
		m.config.Tuning.SlowMultiplier = def.Tuning.SlowMultiplier
	}
	if m.config.Tuning.Model == "" {
		m.config.Tuning.Model = def.Tuning.Model
	}
	if m.config.Tuning.Accel <= 0 {
		m.config.Tuning.Accel = def.Tuning.Accel
	}
	if m.config.Tuning.Friction <= 0 {
		m.config.Tuning.Friction = def.Tuning.Friction
	}
	if m.config.General.APIPort <= 0 {
		m.config.General.APIPort = def.General.APIPort
	}
}

// Save writes the configuration to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return err
	}

	log.Printf("Config: Saving configuration to %s (%d bytes)", m.configPath, len(data))
	return os.WriteFile(m.configPath, data, 0644)
}

// Get returns the current configuration
func (m *Manager) Get() *Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.config
}

// Set updates the configuration
func (m *Manager) Set(config *Config) {
	m.mu.Lock()
	m.config = config
	m.applyFallbacks()
	m.mu.Unlock()
	if m.onChanged != nil {
		m.onChanged()
	}
}

// RegisterChangeCallback registers a function to be called when config changes
func (m *Manager) RegisterChangeCallback(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChanged = fn
}
