package math

import "errors"

var (
	// ErrLengthMismatch is returned when balance, weight and amount vectors
	// do not share the same length.
	ErrLengthMismatch = errors.New("weighted math: vector length mismatch")

	// ErrDivisionByZero is returned when a divisor is zero.
	ErrDivisionByZero = errors.New("weighted math: division by zero")

	// ErrComplementOverflow is returned when Complement is asked for a value
	// greater than ONE.
	ErrComplementOverflow = errors.New("weighted math: complement of value greater than one")

	// ErrAmountOutOfRange is returned when an input is negative or a result
	// exceeds the 256-bit range of the on-chain representation.
	ErrAmountOutOfRange = errors.New("weighted math: amount out of 256-bit range")

	// ErrInsufficientBalance is returned when an amount out exceeds the pool
	// balance it is drawn from.
	ErrInsufficientBalance = errors.New("weighted math: amount exceeds balance")

	// ErrInvalidTrade is returned when a trade would require a non-positive
	// input amount.
	ErrInvalidTrade = errors.New("weighted math: trade requires non-positive input")

	// ErrZeroWeight is returned when a pool token weight is zero.
	ErrZeroWeight = errors.New("weighted math: zero weight")

	// ErrZeroSupply is returned when the total BPT supply is zero.
	ErrZeroSupply = errors.New("weighted math: zero total supply")
)
