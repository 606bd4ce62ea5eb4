package sessiontransport

import "errors"

// ErrExpiredSession is returned when asked to send an already expired session.
var ErrExpiredSession = errors.New("sessiontransport: session expired")
