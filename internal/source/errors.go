package source

import "errors"

var (
	// ErrSourceUnavailable means the external data source could not be reached
	// or refused the request.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrMalformedSourceData means the source replied but the payload does not
	// parse into the expected match list shape.
	ErrMalformedSourceData = errors.New("malformed source data")
)
