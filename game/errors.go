package game

import "fmt"

// Code is a machine-readable error code.
type Code string

const (
	CodeInvalidDimensions Code = "INVALID_DIMENSIONS"
	CodeOutOfBounds       Code = "OUT_OF_BOUNDS"
	CodeMapCorrupted      Code = "MAP_CORRUPTED"
	CodeOverpopulated     Code = "MAP_OVERPOPULATED"
	CodeInvalidBattle     Code = "INVALID_BATTLE"
	CodeInvalidMove       Code = "INVALID_MOVE"
	CodeIncorrectSpecies  Code = "INCORRECT_SPECIES"
	CodeExtinct           Code = "SPECIES_EXTINCT"
)

// Error is the domain error raised by grid, battle and rule operations.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// Sentinels for errors.Is checks. Only the code is compared.
var (
	ErrInvalidDimensions = &Error{Code: CodeInvalidDimensions, Message: "invalid grid dimensions"}
	ErrOutOfBounds       = &Error{Code: CodeOutOfBounds, Message: "position out of bounds"}
	ErrMapCorrupted      = &Error{Code: CodeMapCorrupted, Message: "map corrupted"}
	ErrOverpopulated     = &Error{Code: CodeOverpopulated, Message: "map overpopulated"}
	ErrInvalidBattle     = &Error{Code: CodeInvalidBattle, Message: "invalid battle"}
	ErrInvalidMove       = &Error{Code: CodeInvalidMove, Message: "invalid move"}
	ErrIncorrectSpecies  = &Error{Code: CodeIncorrectSpecies, Message: "incorrect species"}
	ErrExtinct           = &Error{Code: CodeExtinct, Message: "species extinct"}
)

// Errorf builds a coded error with a formatted message.
func Errorf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code to an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}
