package keymap

import (
	"context"
	"strconv"
	"time"

	"github.com/clavis/keymapd/internal/logger"
	"github.com/clavis/keymapd/pkg/behavior"
	"github.com/clavis/keymapd/pkg/keyerr"
	"github.com/clavis/keymapd/pkg/split"
)

// DispatchMetrics is the optional observability collaborator for
// Dispatcher. A nil Metrics field on Dispatcher disables collection
// entirely, at zero cost to the dispatch path.
type DispatchMetrics interface {
	// ObserveCascade records how many candidate layers were walked
	// before the event was consumed or exhausted, and how long the
	// whole cascade took.
	ObserveCascade(layersWalked int, duration time.Duration, result Result)
}

// Result classifies the outcome of Dispatcher.Dispatch.
type Result int

const (
	// ResultUnhandled means no candidate layer's binding resolved and
	// consumed the event.
	ResultUnhandled Result = iota
	// ResultConsumed means some layer's binding returned an opaque
	// response and stopped the cascade.
	ResultConsumed
)

// Dispatcher runs the key-dispatch cascade of §4.5: on each position
// event it walks active layers from highest to default, resolving and
// invoking the first binding that consumes the event.
type Dispatcher struct {
	Keymap   *Keymap
	Registry *behavior.Registry
	Split    split.Dispatcher

	// PeripheralName maps an event's numeric Source to the peripheral
	// name split.Target expects. Defaults to the decimal string form of
	// source when nil.
	PeripheralName func(source int) string

	// Metrics observes cascade depth and dispatch latency. Nil disables
	// collection.
	Metrics DispatchMetrics
}

// Dispatch handles one position-state-change event.
func (d *Dispatcher) Dispatch(ctx context.Context, ev behavior.Event) (Result, error) {
	start := time.Now()
	layersWalked := 0

	if ev.Pressed {
		d.Keymap.setPressMemory(ev.Position, d.Keymap.LayerState().Get())
	}
	candidates := d.Keymap.pressMemorySnapshot(ev.Position)
	deflt := 0

	for layer := d.Keymap.LayerCount() - 1; layer >= deflt; layer-- {
		if layer != deflt && candidates&(uint64(1)<<uint(layer)) == 0 {
			continue
		}
		layersWalked++

		binding, err := d.Keymap.Binding(layer, ev.Position)
		if err != nil {
			continue
		}

		b, err := d.Registry.ResolveByName(binding.BehaviorName)
		if err != nil {
			logger.Debug("dispatch: behavior not resolved", logger.Layer(layer), logger.Position(ev.Position), logger.Behavior(binding.BehaviorName))
			continue
		}

		binding, err = b.Handle.ConvertCentralStateDependentParams(ctx, binding)
		if err != nil {
			d.observe(layersWalked, start, ResultUnhandled)
			return ResultUnhandled, err
		}

		code, err := d.invoke(ctx, b, binding, ev)
		if err != nil {
			d.observe(layersWalked, start, ResultUnhandled)
			return ResultUnhandled, err
		}

		switch behavior.Classify(code) {
		case behavior.ResponseOpaque:
			d.observe(layersWalked, start, ResultConsumed)
			return ResultConsumed, nil
		case behavior.ResponseTransparent:
			continue
		case behavior.ResponseError:
			d.observe(layersWalked, start, ResultUnhandled)
			return ResultUnhandled, keyerr.New(keyerr.DeviceNotReady,
				"behavior "+binding.BehaviorName+" returned error code "+strconv.Itoa(code))
		}
	}

	d.observe(layersWalked, start, ResultUnhandled)
	return ResultUnhandled, nil
}

func (d *Dispatcher) observe(layersWalked int, start time.Time, result Result) {
	if d.Metrics != nil {
		d.Metrics.ObserveCascade(layersWalked, time.Since(start), result)
	}
}

func (d *Dispatcher) invoke(ctx context.Context, b *behavior.Behavior, binding behavior.Binding, ev behavior.Event) (int, error) {
	switch b.Locality {
	case behavior.LocalityCentral:
		return d.invokeLocal(ctx, b, binding, ev)
	case behavior.LocalityEventSource:
		if ev.IsLocal() {
			return d.invokeLocal(ctx, b, binding, ev)
		}
		return d.Split.Invoke(ctx, split.Target{Peripheral: d.peripheralName(ev.Source)}, binding, ev)
	case behavior.LocalityGlobal:
		code, err := d.invokeLocal(ctx, b, binding, ev)
		if pd, ok := d.Split.(*split.PeripheralDispatcher); ok {
			pd.Broadcast(ctx, binding, ev)
		}
		return code, err
	default:
		return d.invokeLocal(ctx, b, binding, ev)
	}
}

func (d *Dispatcher) invokeLocal(ctx context.Context, b *behavior.Behavior, binding behavior.Binding, ev behavior.Event) (int, error) {
	if ev.Pressed {
		return b.Handle.Pressed(ctx, binding, ev)
	}
	return b.Handle.Released(ctx, binding, ev)
}

func (d *Dispatcher) peripheralName(source int) string {
	if source < 0 {
		return ""
	}
	if d.PeripheralName != nil {
		return d.PeripheralName(source)
	}
	return strconv.Itoa(source)
}
