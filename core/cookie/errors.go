package cookie

import (
	"errors"
	"fmt"
)

var (
	ErrNoSecret         = errors.New("cookie: no secret provided")
	ErrSecretTooShort   = errors.New("cookie: secret must be at least 32 characters long")
	ErrInvalidSignature = errors.New("cookie: signature verification failed")
	ErrDecryptionFailed = errors.New("cookie: failed to decrypt value")
	ErrCookieNotFound   = errors.New("cookie: not found in request")
	ErrInvalidFormat    = errors.New("cookie: invalid value format")
	ErrInvalidName      = errors.New("cookie: invalid name")
)

// TooLargeError is returned when the serialized cookie exceeds the manager's size limit.
type TooLargeError struct {
	Name string
	Size int
	Max  int
}

func (e TooLargeError) Error() string {
	return fmt.Sprintf("cookie: %q size %d exceeds maximum %d bytes", e.Name, e.Size, e.Max)
}
