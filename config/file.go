package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadFile reads a key = value config file. A missing file yields no values.
func LoadFile(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, err
	}
	defer file.Close()

	values := make(map[string]string)
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: invalid format (expected key = value)", lineNum)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" {
			return nil, fmt.Errorf("line %d: empty key", lineNum)
		}
		values[key] = unquote(value)
	}

	return values, scanner.Err()
}

func unquote(v string) string {
	if len(v) >= 2 {
		if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
			return v[1 : len(v)-1]
		}
	}
	return v
}

// ApplyFileConfig applies file values to cfg.
func ApplyFileConfig(cfg *Config, values map[string]string) error {
	for key, value := range values {
		if err := setConfigValue(cfg, key, value); err != nil {
			return fmt.Errorf("config key %q: %w", key, err)
		}
	}
	return nil
}

func setConfigValue(cfg *Config, key, value string) error {
	switch key {
	case "network":
		cfg.Network = strings.ToLower(value)
	case "datadir":
		cfg.DataDir = value
	case "engine":
		cfg.Engine = strings.ToLower(value)

	case "account.index":
		n, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return err
		}
		cfg.Account.Index = uint32(n)

	case "keystore.memory":
		n, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return err
		}
		cfg.Keystore.Memory = uint32(n)
	case "keystore.iterations":
		n, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return err
		}
		cfg.Keystore.Iterations = uint32(n)
	case "keystore.parallelism":
		n, err := strconv.ParseUint(value, 10, 8)
		if err != nil {
			return err
		}
		cfg.Keystore.Parallelism = uint8(n)

	case "book.enabled", "book":
		cfg.Book.Enabled = parseBool(value)

	case "protocol.file":
		cfg.ProtocolFile = value

	case "log.level":
		cfg.Log.Level = value
	case "log.file":
		cfg.Log.File = value
	case "log.json":
		cfg.Log.JSON = parseBool(value)

	default:
		// Unknown keys are ignored
	}
	return nil
}

func parseBool(s string) bool {
	s = strings.ToLower(s)
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

// WriteDefaultConfig writes a commented default config file.
func WriteDefaultConfig(path string, cfg *Config) error {
	content := `# kardano configuration

# Network: mainnet, testnet, preprod or preview
network = ` + cfg.Network + `

# Data directory (default: ~/.kardano)
# datadir = ~/.kardano

# Key engine: ed25519 (Shelley/Icarus) or secp256k1 (Schnorr)
engine = ` + cfg.Engine + `

# Default account index for "account show" and "sign"
account.index = ` + strconv.FormatUint(uint64(cfg.Account.Index), 10) + `

# ============================================================================
# Keystore (Argon2id cost for newly created wallets)
# ============================================================================

keystore.memory = ` + strconv.FormatUint(uint64(cfg.Keystore.Memory), 10) + `
keystore.iterations = ` + strconv.FormatUint(uint64(cfg.Keystore.Iterations), 10) + `
keystore.parallelism = ` + strconv.FormatUint(uint64(cfg.Keystore.Parallelism), 10) + `

# ============================================================================
# Address book
# ============================================================================

book.enabled = ` + strconv.FormatBool(cfg.Book.Enabled) + `

# Protocol parameter overrides (JSON)
# protocol.file = protocol.json

# ============================================================================
# Logging
# ============================================================================

log.level = ` + cfg.Log.Level + `
# log.file =
log.json = ` + strconv.FormatBool(cfg.Log.JSON) + `
`
	return os.WriteFile(path, []byte(content), 0644)
}
