package constants

import "errors"

// Configuration errors.
var (
	ErrURLRequired      = errors.New("API URL is required (use --url, AC_URL or 'ac config set url')")
	ErrTokenRequired    = errors.New("API token is required (use --token, AC_TOKEN or 'ac config set-token')")
	ErrUnknownConfigKey = errors.New("unknown configuration key")
	ErrEmptyToken       = errors.New("token must not be empty")
)

// Command errors.
var (
	ErrUnknownOutput      = errors.New("unknown output format")
	ErrContactNotFound    = errors.New("contact not found")
	ErrMissingContactData = errors.New("--email is required")
)
