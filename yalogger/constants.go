package yalogger

// Level is the minimum severity a Logger emits, ordered from most to least
// verbose.
type Level uint8

const (
	TraceLevel Level = iota
	DebugLevel
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
	PanicLevel
)

// BaseLoggerType selects which concrete Logger implementation NewBaseLogger
// builds. Logrus is the only implementation this module ships.
type BaseLoggerType uint8

const (
	Logrus BaseLoggerType = iota
)

const (
	KeyRequestID       = "request_id"
	KeySystemRequestID = "system_request_id"
	KeyUserID          = "user_id"
)
