package wallet

import (
	"errors"
	"fmt"
)

// ErrNoWallet is returned when no wallet provider can be detected. It is
// fatal to the whole session until a wallet is installed and is never
// retried automatically.
var ErrNoWallet = errors.New("no wallet provider detected")

// ErrUserRejected is returned when the user declines a wallet prompt. The
// flow aborts; the same action may be retried by the user.
var ErrUserRejected = errors.New("user rejected the request")

// Wallet provider error codes (EIP-1193 / EIP-3085).
const (
	// CodeUserRejected signals that the user declined the request.
	CodeUserRejected = 4001
	// CodeUnknownChain signals that the requested chain has not been
	// registered with the wallet.
	CodeUnknownChain = 4902
)

// RPCError is a typed error returned by the wallet provider.
type RPCError struct {
	Code    int
	Message string
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("wallet rpc error %d: %s", e.Code, e.Message)
}

// Is lets errors.Is(err, ErrUserRejected) match a code-4001 provider error.
func (e *RPCError) Is(target error) bool {
	return target == ErrUserRejected && e.Code == CodeUserRejected
}
