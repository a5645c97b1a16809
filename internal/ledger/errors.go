package ledger

import (
	"errors"
)

var (
	ErrAmountNotPositive      = errors.New("the amount must be larger than zero")
	ErrInsufficientBalance    = errors.New("your available balance is not sufficient for this amount")
	ErrGoalOverfund           = errors.New("this contribution would exceed the goal's target amount")
	ErrInitialSaveOutOfBounds = errors.New("the initial save must be between zero and the target amount")
)
