package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/Klingon-tech/kardano/pkg/tx"
)

// Denomination constants. All ledger values are in lovelace.
const (
	Decimals = 6
	ADA      = 1_000_000
)

// ProtocolParams are the ledger parameters the tool needs to build
// transactions offline.
type ProtocolParams struct {
	MinFeeA   uint64 `json:"min_fee_a"`
	MinFeeB   uint64 `json:"min_fee_b"`
	MaxTxSize int    `json:"max_tx_size"`
	// MinOutput is the smallest output the tool will create.
	MinOutput uint64 `json:"min_output"`
}

// DefaultProtocolParams returns the built-in parameters. The public networks
// share them.
func DefaultProtocolParams() ProtocolParams {
	return ProtocolParams{
		MinFeeA:   tx.MainnetFeeParams.A,
		MinFeeB:   tx.MainnetFeeParams.B,
		MaxTxSize: 16384,
		MinOutput: 1 * ADA,
	}
}

// FeeParams returns the linear fee coefficients.
func (p ProtocolParams) FeeParams() tx.FeeParams {
	return tx.FeeParams{A: p.MinFeeA, B: p.MinFeeB}
}

// Validate checks the parameters for values no ledger would use.
func (p ProtocolParams) Validate() error {
	if p.MinFeeB == 0 && p.MinFeeA == 0 {
		return fmt.Errorf("fee coefficients must not both be zero")
	}
	if p.MaxTxSize <= 0 {
		return fmt.Errorf("max_tx_size must be positive")
	}
	return nil
}

// LoadProtocolParams returns the defaults overridden by any fields present in
// the JSON file at path. An empty path returns the defaults unchanged.
func LoadProtocolParams(path string) (ProtocolParams, error) {
	p := DefaultProtocolParams()
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ProtocolParams{}, fmt.Errorf("read protocol params: %w", err)
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return ProtocolParams{}, fmt.Errorf("parse protocol params: %w", err)
	}
	if err := p.Validate(); err != nil {
		return ProtocolParams{}, fmt.Errorf("protocol params: %w", err)
	}
	return p, nil
}

// FormatAmount renders lovelace as a decimal ADA string.
func FormatAmount(lovelace uint64) string {
	return fmt.Sprintf("%d.%06d", lovelace/ADA, lovelace%ADA)
}

// ParseAmount converts a decimal ADA string to lovelace.
func ParseAmount(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("negative amount")
	}

	wholeStr, fracStr, hasFrac := strings.Cut(s, ".")
	whole, err := strconv.ParseUint(wholeStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid whole part: %w", err)
	}

	var frac uint64
	if hasFrac {
		if len(fracStr) == 0 || len(fracStr) > Decimals {
			return 0, fmt.Errorf("fraction must have 1 to %d digits", Decimals)
		}
		fracStr += strings.Repeat("0", Decimals-len(fracStr))
		frac, err = strconv.ParseUint(fracStr, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid fractional part: %w", err)
		}
	}

	if whole > math.MaxUint64/ADA {
		return 0, fmt.Errorf("amount too large")
	}
	result := whole * ADA
	if result > math.MaxUint64-frac {
		return 0, fmt.Errorf("amount too large")
	}
	return result + frac, nil
}
