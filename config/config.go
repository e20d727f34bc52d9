// Package config handles kardano's runtime configuration.
//
// Settings come from three layers, later ones winning: per-network defaults,
// the key = value config file, then command-line flags.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/Klingon-tech/kardano/internal/wallet"
	"github.com/Klingon-tech/kardano/pkg/types"
)

// Config holds the tool's runtime settings.
type Config struct {
	// Core
	Network string `conf:"network"`
	DataDir string `conf:"datadir"`
	Engine  string `conf:"engine"`

	Account  AccountConfig
	Keystore KeystoreConfig
	Book     BookConfig

	// Protocol parameter overrides (JSON file)
	ProtocolFile string `conf:"protocol.file"`

	Log LogConfig
}

// AccountConfig selects the default derivation index.
type AccountConfig struct {
	Index uint32 `conf:"account.index"`
}

// KeystoreConfig holds the Argon2id cost used when creating wallets.
type KeystoreConfig struct {
	Memory      uint32 `conf:"keystore.memory"` // KiB
	Iterations  uint32 `conf:"keystore.iterations"`
	Parallelism uint8  `conf:"keystore.parallelism"`
}

// BookConfig controls the address book store.
type BookConfig struct {
	Enabled bool `conf:"book.enabled"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `conf:"log.level"`
	File  string `conf:"log.file"`
	JSON  bool   `conf:"log.json"`
}

// NetworkParams resolves the configured network name.
func (c *Config) NetworkParams() (types.Network, error) {
	return types.NetworkByName(c.Network)
}

// EncryptionParams returns the keystore cost as wallet parameters.
func (c *Config) EncryptionParams() wallet.EncryptionParams {
	return wallet.EncryptionParams{
		Memory:      c.Keystore.Memory,
		Iterations:  c.Keystore.Iterations,
		Parallelism: c.Keystore.Parallelism,
	}
}

// =============================================================================
// Directory helpers
// =============================================================================

// DefaultDataDir returns the platform-specific default data directory.
//
//	Linux:   ~/.kardano
//	macOS:   ~/Library/Application Support/Kardano
//	Windows: %APPDATA%\Kardano
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".kardano"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Kardano")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "Kardano")
		}
		return filepath.Join(home, "AppData", "Roaming", "Kardano")
	default:
		return filepath.Join(home, ".kardano")
	}
}

// NetworkDir returns the per-network data directory.
func (c *Config) NetworkDir() string {
	return filepath.Join(c.DataDir, c.Network)
}

// KeystoreDir returns the encrypted wallet directory.
func (c *Config) KeystoreDir() string {
	return filepath.Join(c.NetworkDir(), "keystore")
}

// BookDir returns the address book database directory. All networks share
// one database; entries are namespaced inside it.
func (c *Config) BookDir() string {
	return filepath.Join(c.DataDir, "book")
}

// LogsDir returns the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// ConfigFile returns the config file path.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.DataDir, "kardano.conf")
}
