package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

var appName = "ndsui"

// Init sets the application data directory name. Call it before any other
// storage function when the core names its own data directory.
func Init(dataDirName string) {
	if dataDirName != "" {
		appName = dataDirName
	}
}

const (
	configFile    = "config.json"
	screenshotDir = "screenshots"
)

// GetBaseDir returns the base directory for application data:
// - macOS: ~/Library/Application Support/<appName>
// - Linux: $XDG_DATA_HOME/<appName> or ~/.local/share/<appName>
// - Windows: %APPDATA%/<appName>
func GetBaseDir() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, "Library", "Application Support", appName), nil
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			return "", fmt.Errorf("APPDATA environment variable not set")
		}
		return filepath.Join(appData, appName), nil
	}

	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", appName), nil
}

// GetConfigPath returns the full path to config.json
func GetConfigPath() (string, error) {
	baseDir, err := GetBaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(baseDir, configFile), nil
}

// Dirs is the working directory layout handed to the core.
type Dirs struct {
	Root        string
	States      string // Save states
	Battery     string // Cartridge saves
	Cheats      string
	Temp        string // ROMs unpacked from archives
	Screenshots string
}

// ResolveDirs lays out the working directory. An empty workingDir uses the
// application data directory.
func ResolveDirs(workingDir string) (Dirs, error) {
	root := workingDir
	if root == "" {
		var err error
		root, err = GetBaseDir()
		if err != nil {
			return Dirs{}, err
		}
	}
	return Dirs{
		Root:        root,
		States:      filepath.Join(root, "States"),
		Battery:     filepath.Join(root, "Battery"),
		Cheats:      filepath.Join(root, "Cheats"),
		Temp:        filepath.Join(root, "Temp"),
		Screenshots: filepath.Join(root, screenshotDir),
	}, nil
}

// Ensure creates every directory in d.
func (d Dirs) Ensure() error {
	for _, dir := range []string{d.Root, d.States, d.Battery, d.Cheats, d.Temp, d.Screenshots} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// AtomicWriteJSON writes data to path via a temporary file and rename, so
// the file is never left partially written.
func AtomicWriteJSON(path string, data any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	tempFile := path + ".tmp"
	if err := os.WriteFile(tempFile, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tempFile, path); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// ReadJSON reads and unmarshals a JSON file
func ReadJSON(path string, data any) error {
	jsonData, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(jsonData, data); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	return nil
}
