package server

import "errors"

var (
	ErrMissingAddress       = errors.New("server address is required")
	ErrServerAlreadyRunning = errors.New("server is already running")
	ErrFailedLoadCert       = errors.New("failed to load certificate")
	ErrHTTPServer           = errors.New("http server error")
	ErrHTTPShutdown         = errors.New("http shutdown error")
)
