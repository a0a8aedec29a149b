package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureOutput redirects logger output to a buffer for testing.
// Returns the buffer and a cleanup function to restore original output.
func captureOutput() (*bytes.Buffer, func()) {
	buf := new(bytes.Buffer)

	mu.Lock()
	originalOutput := output
	originalColor := useColor
	output = buf
	useColor = false
	mu.Unlock()

	reconfigure()

	cleanup := func() {
		mu.Lock()
		output = originalOutput
		useColor = originalColor
		mu.Unlock()
		reconfigure()
	}

	return buf, cleanup
}

func TestLevelFiltering(t *testing.T) {
	t.Run("DebugLevelShowsAllMessages", func(t *testing.T) {
		buf, cleanup := captureOutput()
		defer cleanup()

		SetLevel("DEBUG")
		Debug("debug message")
		Info("info message")

		out := buf.String()
		assert.Contains(t, out, "debug message")
		assert.Contains(t, out, "info message")
	})

	t.Run("WarnLevelHidesDebugAndInfo", func(t *testing.T) {
		buf, cleanup := captureOutput()
		defer cleanup()

		SetLevel("WARN")
		Debug("debug message")
		Info("info message")
		Warn("warn message")

		out := buf.String()
		assert.NotContains(t, out, "debug message")
		assert.NotContains(t, out, "info message")
		assert.Contains(t, out, "warn message")
	})

	t.Run("InvalidLevelIsIgnored", func(t *testing.T) {
		SetLevel("INFO")
		SetLevel("NOT_A_LEVEL")
		assert.Equal(t, LevelInfo, Level(currentLevel.Load()))
	})
}

func TestFormatSwitching(t *testing.T) {
	buf, cleanup := captureOutput()
	defer cleanup()

	SetLevel("INFO")
	SetFormat("json")
	Info("layer activated", Layer(2))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "layer activated", decoded["msg"])
	assert.Equal(t, float64(2), decoded["layer"])

	SetFormat("invalid")
	assert.Equal(t, "json", currentFormat.Load())
}

func TestLogContext(t *testing.T) {
	t.Run("NewLogContextDefaults", func(t *testing.T) {
		lc := NewLogContext("set_layer_binding")
		assert.Equal(t, "set_layer_binding", lc.Operation)
		assert.Equal(t, -1, lc.Layer)
		assert.Equal(t, -1, lc.Position)
	})

	t.Run("WithPositionDoesNotMutateOriginal", func(t *testing.T) {
		lc := NewLogContext("position_state_changed")
		lc2 := lc.WithPosition(3, 12)

		assert.Equal(t, 3, lc2.Layer)
		assert.Equal(t, 12, lc2.Position)
		assert.Equal(t, -1, lc.Layer)
		assert.Equal(t, -1, lc.Position)
	})

	t.Run("WithOperation", func(t *testing.T) {
		lc := NewLogContext("get_keymap")
		lc2 := lc.WithOperation("save_changes")
		assert.Equal(t, "save_changes", lc2.Operation)
		assert.Equal(t, "get_keymap", lc.Operation)
	})

	t.Run("WithTrace", func(t *testing.T) {
		lc := NewLogContext("op")
		lc2 := lc.WithTrace("trace-1", "span-1")
		assert.Equal(t, "trace-1", lc2.TraceID)
		assert.Equal(t, "span-1", lc2.SpanID)
	})

	t.Run("DurationMsOnNilIsZero", func(t *testing.T) {
		var lc *LogContext
		assert.Equal(t, float64(0), lc.DurationMs())
	})

	t.Run("FromContextMissingReturnsNil", func(t *testing.T) {
		assert.Nil(t, FromContext(context.Background()))
	})

	t.Run("WithContextRoundTrips", func(t *testing.T) {
		lc := NewLogContext("op")
		ctx := WithContext(context.Background(), lc)
		assert.Same(t, lc, FromContext(ctx))
	})
}

func TestCtxLoggingInjectsFields(t *testing.T) {
	buf, cleanup := captureOutput()
	defer cleanup()

	SetLevel("INFO")
	SetFormat("json")

	lc := NewLogContext("position_state_changed").WithPosition(1, 5)
	ctx := WithContext(context.Background(), lc)

	InfoCtx(ctx, "dispatching")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "position_state_changed", decoded[KeyOperation])
	assert.Equal(t, float64(1), decoded[KeyLayer])
	assert.Equal(t, float64(5), decoded[KeyPosition])
}

func TestFieldHelpers(t *testing.T) {
	t.Run("ErrHandlesNil", func(t *testing.T) {
		attr := Err(nil)
		assert.Equal(t, "", attr.Key)
	})

	t.Run("ErrFormatsError", func(t *testing.T) {
		attr := Err(assert.AnError)
		assert.Equal(t, KeyError, attr.Key)
		assert.Equal(t, assert.AnError.Error(), attr.Value.String())
	})

	t.Run("LayerAndPosition", func(t *testing.T) {
		assert.Equal(t, KeyLayer, Layer(4).Key)
		assert.Equal(t, KeyPosition, Position(9).Key)
	})

	t.Run("BehaviorAndLocalID", func(t *testing.T) {
		assert.Equal(t, "kp", Behavior("kp").Value.String())
		assert.Equal(t, int64(7), LocalID(7).Value.Int64())
	})
}

func TestWithPreBindsAttrs(t *testing.T) {
	buf, cleanup := captureOutput()
	defer cleanup()

	SetFormat("json")
	SetLevel("INFO")

	log := With(KeyLayer, 3)
	log.Info("bound logger")

	out := buf.String()
	assert.True(t, strings.Contains(out, "\"layer\":3"))
}
