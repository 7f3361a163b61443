package domain

import "errors"

var (
	// ErrFileNotFound signals that the configured index path does not exist.
	ErrFileNotFound = errors.New("memvid file not found")
	// ErrLoadFailed signals that the index exists but could not be opened.
	ErrLoadFailed = errors.New("failed to load memvid index")
	// ErrSearchFailed signals a query execution failure inside the engine.
	ErrSearchFailed = errors.New("search failed")
	// ErrInvalidRequest signals caller input that fails validation.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrNotReady signals that the backend cannot serve requests yet.
	ErrNotReady = errors.New("service not ready")
)
