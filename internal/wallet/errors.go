package wallet

import (
	"errors"
	"fmt"
)

// EIP-1193 / JSON-RPC error codes the app distinguishes.
const (
	CodeUserRejected   = 4001
	CodeUnauthorized   = 4100
	CodeRequestPending = -32002
	CodeMethodNotFound = -32601
	CodeInternal       = -32603
)

// ProviderError is a failure reported by the wallet, tagged with its code.
type ProviderError struct {
	Code    int
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error %d: %s", e.Code, e.Message)
}

// UserRejected reports whether the user declined the request.
func (e *ProviderError) UserRejected() bool { return e.Code == CodeUserRejected }

// Pending reports whether an earlier request is still awaiting the user.
func (e *ProviderError) Pending() bool { return e.Code == CodeRequestPending }

// ErrorCode extracts the provider code from err, if it carries one.
func ErrorCode(err error) (int, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Code, true
	}
	return 0, false
}
