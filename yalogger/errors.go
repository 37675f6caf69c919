package yalogger

import "errors"

// ErrInvalidLogLevel is returned by Level.Unmarshal/UnmarshalText when the
// input text does not name one of the known levels.
var ErrInvalidLogLevel = errors.New("yalogger: invalid log level")
