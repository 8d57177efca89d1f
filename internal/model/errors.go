package model

import "errors"

// Common errors used across the application
var (
	// Account errors
	ErrAccountNotFound = errors.New("account not found")

	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Item errors
	ErrItemNotFound     = errors.New("item not found")
	ErrCatalogNotLoaded = errors.New("item catalog not loaded")

	// Session errors
	ErrSessionExists   = errors.New("connection already owns a session")
	ErrSessionNotFound = errors.New("no session for connection")
)
