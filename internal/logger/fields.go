package logger

import "log/slog"

// Standard field keys for structured logging across the keymap engine.
// Use these keys consistently so log lines aggregate cleanly.
const (
	KeyTraceID    = "trace_id"    // OpenTelemetry trace ID
	KeySpanID     = "span_id"     // OpenTelemetry span ID
	KeyOperation  = "operation"   // dispatch/RPC operation name
	KeyLayer      = "layer"       // layer index
	KeyPosition   = "position"    // dense key position (0..K-1)
	KeyBehavior   = "behavior"    // behavior name
	KeyLocalID    = "local_id"    // behavior local ID
	KeySource     = "source"      // event source: local or a peripheral index
	KeyLocality   = "locality"    // behavior locality: central, event-source, global
	KeyPressed    = "pressed"     // press/release indicator
	KeyRow        = "row"         // scan matrix row
	KeyCol        = "col"         // scan matrix column
	KeyLayout     = "layout"      // physical layout display name
	KeySensor     = "sensor"      // sensor index
	KeyQueueDepth = "queue_depth" // scan pipeline queue depth at the time of the event
	KeyDropped    = "dropped"     // number of events dropped
	KeyDurationMs = "duration_ms"
	KeyError      = "error"
	KeyRequestID  = "request_id"
	KeyMethod     = "method"
	KeyPath       = "path"
	KeyStatus     = "status"
)

// Layer returns a slog.Attr for a layer index.
func Layer(l int) slog.Attr { return slog.Int(KeyLayer, l) }

// Position returns a slog.Attr for a key position.
func Position(p int) slog.Attr { return slog.Int(KeyPosition, p) }

// Behavior returns a slog.Attr for a behavior name.
func Behavior(name string) slog.Attr { return slog.String(KeyBehavior, name) }

// LocalID returns a slog.Attr for a behavior local ID.
func LocalID(id uint16) slog.Attr { return slog.Int(KeyLocalID, int(id)) }

// Source returns a slog.Attr for an event source.
func Source(src int) slog.Attr { return slog.Int(KeySource, src) }

// Locality returns a slog.Attr for a behavior locality.
func Locality(loc string) slog.Attr { return slog.String(KeyLocality, loc) }

// Pressed returns a slog.Attr for the press/release state.
func Pressed(pressed bool) slog.Attr { return slog.Bool(KeyPressed, pressed) }

// Row returns a slog.Attr for a scan matrix row.
func Row(r uint32) slog.Attr { return slog.Any(KeyRow, r) }

// Col returns a slog.Attr for a scan matrix column.
func Col(c uint32) slog.Attr { return slog.Any(KeyCol, c) }

// Layout returns a slog.Attr for a physical layout name.
func Layout(name string) slog.Attr { return slog.String(KeyLayout, name) }

// Sensor returns a slog.Attr for a sensor index.
func Sensor(idx int) slog.Attr { return slog.Int(KeySensor, idx) }

// QueueDepth returns a slog.Attr for the scan pipeline's queue depth.
func QueueDepth(n int) slog.Attr { return slog.Int(KeyQueueDepth, n) }

// Dropped returns a slog.Attr for a drop count.
func Dropped(n int) slog.Attr { return slog.Int(KeyDropped, n) }

// DurationMs returns a slog.Attr for a duration in milliseconds.
func DurationMs(ms float64) slog.Attr { return slog.Float64(KeyDurationMs, ms) }

// Err returns a slog.Attr for an error, or a zero Attr if err is nil.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// RequestID returns a slog.Attr for an HTTP request ID.
func RequestID(id string) slog.Attr { return slog.String(KeyRequestID, id) }
