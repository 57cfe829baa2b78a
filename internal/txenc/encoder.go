// Package txenc builds call data for the level-completion contract.
package txenc

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/jazzmini/jsquiz/internal/quiz"
)

// Action names a contract method the encoder knows how to build.
type Action string

// ActionCompleteLevel is the only supported action.
const ActionCompleteLevel Action = "completeLevel"

var (
	ErrInvalidAction = errors.New("invalid action")
	ErrInvalidLevel  = errors.New("invalid level")
)

const contractABI = `[{
	"type": "function",
	"name": "completeLevel",
	"stateMutability": "nonpayable",
	"inputs": [{"name": "level", "type": "uint256"}],
	"outputs": []
}]`

var parsedABI = sync.OnceValues(func() (abi.ABI, error) {
	return abi.JSON(strings.NewReader(contractABI))
})

// Encode returns the 0x-prefixed call data for action at level: the 4-byte
// method selector followed by level as a 32-byte big-endian word.
func Encode(action Action, level int) (string, error) {
	if action != ActionCompleteLevel {
		return "", fmt.Errorf("%w: %q", ErrInvalidAction, action)
	}
	if !quiz.ValidLevel(level) {
		return "", fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}

	parsed, err := parsedABI()
	if err != nil {
		return "", fmt.Errorf("parse contract abi: %w", err)
	}
	data, err := parsed.Pack(string(action), big.NewInt(int64(level)))
	if err != nil {
		return "", fmt.Errorf("pack %s: %w", action, err)
	}
	return hexutil.Encode(data), nil
}

// Selector returns the 4-byte method id for action.
func Selector(action Action) ([]byte, error) {
	parsed, err := parsedABI()
	if err != nil {
		return nil, fmt.Errorf("parse contract abi: %w", err)
	}
	method, ok := parsed.Methods[string(action)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAction, action)
	}
	return method.ID, nil
}
