package httpd

import "errors"

var (
	ErrNotFound         = errors.New("httpd: no handler for path")
	ErrMethodNotAllowed = errors.New("httpd: method not registered for path")
)
