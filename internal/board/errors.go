package board

import (
	"errors"
	"fmt"
)

var (
	ErrKingNotFound  = errors.New("king not found")
	ErrInvalidSquare = errors.New("invalid square")
	ErrInvalidMove   = errors.New("invalid move")
	ErrInvalidFEN    = errors.New("invalid FEN")
)

// KingNotFoundError reports a board that is missing the king of Color.
// A legally maintained game never produces one.
type KingNotFoundError struct {
	Color Color
}

func (e *KingNotFoundError) Error() string {
	return fmt.Sprintf("%s king not found on board", e.Color)
}

// Is lets errors.Is match ErrKingNotFound.
func (e *KingNotFoundError) Is(target error) bool {
	return target == ErrKingNotFound
}
