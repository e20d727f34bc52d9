package config

import (
	"fmt"

	"github.com/Klingon-tech/kardano/internal/log"
	"github.com/Klingon-tech/kardano/internal/wallet"
	"github.com/Klingon-tech/kardano/pkg/types"
)

// Validate checks cfg for operator mistakes.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if _, err := types.NetworkByName(cfg.Network); err != nil {
		return fmt.Errorf("network: %w", err)
	}
	if cfg.DataDir == "" {
		return fmt.Errorf("datadir must not be empty")
	}
	switch cfg.Engine {
	case wallet.EngineEd25519, wallet.EngineSecp256k1:
	default:
		return fmt.Errorf("engine must be %q or %q", wallet.EngineEd25519, wallet.EngineSecp256k1)
	}
	if cfg.Account.Index >= wallet.HardenedOffset {
		return fmt.Errorf("account.index must be below %d", wallet.HardenedOffset)
	}
	if err := cfg.EncryptionParams().Validate(); err != nil {
		return fmt.Errorf("keystore: %w", err)
	}
	if _, ok := log.LookupLevel(cfg.Log.Level); !ok {
		return fmt.Errorf("log.level %q is not a known level", cfg.Log.Level)
	}
	return nil
}
