package domain

import "errors"

var (
	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidRequest indicates a search request that fails validation.
	ErrInvalidRequest = errors.New("invalid search request")

	// ErrExternalProcess indicates the harvester exited with a non-zero status.
	ErrExternalProcess = errors.New("external process failed")

	// ErrExecutableNotFound indicates the harvester executable is not on PATH.
	ErrExecutableNotFound = errors.New("harvester executable not found")

	// ErrNoData indicates the harvester produced no output file.
	ErrNoData = errors.New("no harvested data found")

	// ErrTextCleaning indicates a single post could not be cleaned.
	// It is never fatal for a search.
	ErrTextCleaning = errors.New("text cleaning failed")

	// ErrModelArtifact indicates a missing or corrupt model or tokenizer artifact.
	ErrModelArtifact = errors.New("model artifact load failed")
)
