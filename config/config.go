package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

var ErrStorageDirRequired = errors.New("storage directory not provided")

// Settings holds the console configuration. Empty provider URLs put the
// service in demo mode.
type Settings struct {
	Port             int    `json:"port"`
	OrdersBaseURL    string `json:"ordersBaseUrl"`
	TasksBaseURL     string `json:"tasksBaseUrl"`
	RefreshMinutes   int    `json:"refreshMinutes"`
	WeekStartsMonday bool   `json:"weekStartsMonday"`
	LogFile          string `json:"logFile,omitempty"`
}

// Manager loads and saves the settings file inside the storage directory.
type Manager struct {
	mu   sync.RWMutex
	path string
}

// NewManager creates a settings manager rooted at the given directory.
func NewManager(storageDir string) (*Manager, error) {
	if strings.TrimSpace(storageDir) == "" {
		return nil, ErrStorageDirRequired
	}
	if err := os.MkdirAll(storageDir, 0o755); err != nil {
		return nil, fmt.Errorf("create settings dir: %w", err)
	}
	return &Manager{path: filepath.Join(storageDir, "settings.json")}, nil
}

// Load reads the settings file, falling back to defaults when it does not
// exist. Environment overrides (LOOMDESK_PORT, LOOMDESK_ORDERS_URL,
// LOOMDESK_TASKS_URL) win over the file.
func (m *Manager) Load() (*Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	settings := defaultSettings()

	data, err := os.ReadFile(m.path)
	if err == nil {
		if err := json.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("parse settings: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	applyEnvOverrides(settings)

	if settings.Port <= 0 {
		settings.Port = 8080
	}
	if settings.RefreshMinutes <= 0 {
		settings.RefreshMinutes = 5
	}
	return settings, nil
}

// Save writes the settings file atomically.
func (m *Manager) Save(settings *Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	tmp := m.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return os.Rename(tmp, m.path)
}

func defaultSettings() *Settings {
	return &Settings{
		Port:           8080,
		RefreshMinutes: 5,
	}
}

func applyEnvOverrides(settings *Settings) {
	if v := os.Getenv("LOOMDESK_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			settings.Port = port
		}
	}
	if v := os.Getenv("LOOMDESK_ORDERS_URL"); v != "" {
		settings.OrdersBaseURL = v
	}
	if v := os.Getenv("LOOMDESK_TASKS_URL"); v != "" {
		settings.TasksBaseURL = v
	}
}
