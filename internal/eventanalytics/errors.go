package eventanalytics

import "errors"

// ErrEventNotFound is returned when the event id does not resolve.
var ErrEventNotFound = errors.New("event not found")
