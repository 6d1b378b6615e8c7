package logschema

// Log schema constants for respira structured logs.
const (
	SchemaID    = "respira.log.v1"
	FieldSchema = "log_schema"

	FieldTimestamp = "ts"
	FieldLevel     = "level"
	FieldMessage   = "msg"
	FieldLogger    = "logger"
	FieldCaller    = "caller"
	FieldStack     = "stack"

	FieldComponent = "component"
	FieldEvent     = "event"
	FieldResult    = "result"
	FieldError     = "error"
	FieldMethod    = "method"
	FieldSamples   = "samples"
	FieldPeaks     = "peaks"
	FieldTroughs   = "troughs"
	FieldSignalID  = "signal_id"
)

// LogRecord is a generic map representation of a log entry.
type LogRecord map[string]interface{}
