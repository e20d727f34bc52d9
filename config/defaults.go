package config

import (
	"github.com/Klingon-tech/kardano/internal/wallet"
	"github.com/Klingon-tech/kardano/pkg/types"
)

// Default returns the default configuration for the named network. Unknown
// names fall back to mainnet defaults but keep the name so Validate can
// report it.
func Default(network string) *Config {
	if network == "" {
		network = types.Mainnet().Name
	}
	p := wallet.DefaultParams()
	return &Config{
		Network: network,
		DataDir: DefaultDataDir(),
		Engine:  wallet.EngineEd25519,
		Keystore: KeystoreConfig{
			Memory:      p.Memory,
			Iterations:  p.Iterations,
			Parallelism: p.Parallelism,
		},
		Book: BookConfig{Enabled: true},
		Log: LogConfig{
			Level: "warn",
		},
	}
}
