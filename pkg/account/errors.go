package account

import (
	"errors"
	"fmt"

	"github.com/Klingon-tech/kardano/pkg/codec"
)

// Account errors. Codec failures surface as ErrAddress, and additionally as
// ErrEncoding when caused by a bit-width violation.
var (
	ErrSerialization        = errors.New("transaction serialization failed")
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrInvalidInput         = errors.New("invalid input")

	ErrAddress  = codec.ErrAddress
	ErrEncoding = codec.ErrEncoding
)

var errClosed = fmt.Errorf("%w: account is closed", ErrUnsupportedOperation)
