package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrPredictionsClosed     = errors.New("predictions closed")
	ErrNegativeScore         = errors.New("negative score")
	ErrFixtureLookup         = errors.New("fixture lookup failed")
	ErrPredictionSave        = errors.New("prediction save failed")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
