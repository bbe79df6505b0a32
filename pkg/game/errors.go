package game

import "errors"

var (
	ErrUnknownKind       = errors.New("unknown piece kind")
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrInvalidTeam       = errors.New("invalid team")
	ErrInvalidLayout     = errors.New("invalid layout")
)
