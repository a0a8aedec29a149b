// Package engine wires the keymap engine's components into one running
// instance: the behavior registry, the layered keymap, the scan
// pipeline, the physical-layout manager, and the persistence store. It
// implements the startup sequence and edit control-flow described in
// §2: "Persistence load -> Registry ID assignment -> Keymap
// reconciliation -> Layout select -> Scan enable" and "RPC edit ->
// Validator -> Keymap mutation + dirty-bit -> Persistence commit".
package engine

import (
	"context"
	"time"

	"github.com/clavis/keymapd/internal/logger"
	"github.com/clavis/keymapd/pkg/behavior"
	"github.com/clavis/keymapd/pkg/config"
	"github.com/clavis/keymapd/pkg/keymap"
	"github.com/clavis/keymapd/pkg/layout"
	"github.com/clavis/keymapd/pkg/metrics"
	"github.com/clavis/keymapd/pkg/persist"
	"github.com/clavis/keymapd/pkg/rpc"
	"github.com/clavis/keymapd/pkg/rpc/httpapi"
	"github.com/clavis/keymapd/pkg/scan"
	"github.com/clavis/keymapd/pkg/split"
)

// ScanQueueCapacity is the default bound on Engine's scan event queue
// when Options.ScanQueueCapacity is left at zero.
const ScanQueueCapacity = 32

// Options collects the collaborators an Engine needs beyond what it can
// build from configuration alone: the already-registered behaviors (real
// tap/hold/macro/etc. implementations are external collaborators, out of
// this engine's scope per spec.md's non-goals), the split dispatcher, and
// any scan sources keyed by their declarative "kscan" name.
type Options struct {
	Config      *config.Config
	KeymapCfg   *config.KeymapConfig
	Store       persist.Store
	Behaviors   []*behavior.Behavior
	IDPolicy    behavior.LocalIDPolicy
	Split       split.Dispatcher
	ScanSources map[string]layout.ScanSource

	// ScanQueueCapacity overrides the scan pipeline's queue bound. Zero
	// means ScanQueueCapacity (the package default).
	ScanQueueCapacity int
}

// Engine owns the live state of one running keymapd instance.
type Engine struct {
	opts Options

	Store      persist.Store
	Registry   *behavior.Registry
	Keymap     *keymap.Keymap
	Layouts    *layout.Manager
	Dirty      *persist.DirtyBitmap
	Pipeline   *scan.Pipeline
	Dispatcher *keymap.Dispatcher
	Sensors    *keymap.SensorDispatcher
}

// New registers opts.Behaviors into a fresh Registry and returns an
// Engine ready for Start. Local IDs are not assigned yet: that happens in
// Start, after persistence is available to a monotonic policy.
func New(opts Options) (*Engine, error) {
	reg := behavior.NewRegistry()
	for _, b := range opts.Behaviors {
		if err := reg.Register(b); err != nil {
			return nil, err
		}
	}

	return &Engine{
		opts:     opts,
		Store:    opts.Store,
		Registry: reg,
	}, nil
}

// Start runs the startup sequence of §2 and launches the scan worker.
// The context passed in bounds startup I/O (persistence reads, initial
// layout select) and is also the parent of the scan worker's context:
// cancelling it stops the worker. Call Stop to shut down.
func (e *Engine) Start(ctx context.Context) error {
	e.Registry.CheckDuplicateNames()

	if err := e.opts.IDPolicy.AssignLocalIDs(ctx, e.Registry); err != nil {
		return err
	}

	e.Keymap = keymap.New(config.ToLayers(e.opts.KeymapCfg, e.Registry), e.onLayerEvent)
	e.Dirty = persist.NewDirtyBitmap(e.Keymap.LayerCount(), e.Keymap.KeyCount())

	if err := rpc.DiscardChanges(ctx, e.Keymap, e.Registry, e.Store); err != nil {
		return err
	}

	e.Dispatcher = &keymap.Dispatcher{
		Keymap:   e.Keymap,
		Registry: e.Registry,
		Split:    e.opts.Split,
		Metrics:  metrics.NewDispatchMetrics(),
	}
	e.Sensors = &keymap.SensorDispatcher{Keymap: e.Keymap, Registry: e.Registry}

	capacity := e.opts.ScanQueueCapacity
	if capacity <= 0 {
		capacity = ScanQueueCapacity
	}
	e.Pipeline = scan.New(capacity, e.activeTransform, e.onPositionEvent)
	metrics.NewScanCollector(e.Pipeline)

	layouts := config.ToPhysicalLayouts(e.opts.KeymapCfg, e.opts.ScanSources)
	mgr, err := layout.NewManager(layouts, e.Store, e.onRawScanEvent)
	if err != nil {
		return err
	}
	e.Layouts = mgr

	e.Pipeline.Start(ctx, time.Now().UnixNano)

	if err := e.Layouts.SelectInitial(ctx, config.ChosenLayoutIndex(e.opts.KeymapCfg)); err != nil {
		return err
	}
	return nil
}

// Stop drains the scan worker and closes the persistence store.
func (e *Engine) Stop() error {
	if e.Pipeline != nil {
		e.Pipeline.Stop()
	}
	return e.Store.Close()
}

// activeTransform is the scan.Pipeline's transformFn: it is consulted on
// every drained event, so a layout switch takes effect on the very next
// scan event without restarting the pipeline.
func (e *Engine) activeTransform() *layout.MatrixTransform {
	return e.Layouts.Active().Transform
}

// onRawScanEvent is installed by layout.Manager on whichever physical
// layout's scan source is currently active; it forwards into the
// pipeline's non-blocking enqueue.
func (e *Engine) onRawScanEvent(row, col uint32, pressed bool) {
	e.Pipeline.Enqueue(scan.RawEvent{Row: row, Col: col, Pressed: pressed})
}

// onPositionEvent is the pipeline's emit callback: it converts a resolved
// position change into a dispatch cascade.
func (e *Engine) onPositionEvent(ev scan.PositionStateChanged) {
	event := behavior.Event{Source: ev.Source, Position: ev.Position, Pressed: ev.Pressed, Timestamp: ev.Timestamp}

	result, err := e.Dispatcher.Dispatch(context.Background(), event)
	if err != nil {
		logger.Error("key dispatch failed", logger.Position(ev.Position), logger.Pressed(ev.Pressed), logger.Err(err))
		return
	}
	logger.Debug("key dispatch completed", logger.Position(ev.Position), logger.Pressed(ev.Pressed), "result", int(result))
}

// onLayerEvent is the keymap's layer-activation callback, logged purely
// for inspection; the dispatch cascade itself always re-reads live
// LayerState rather than reacting to this notification.
func (e *Engine) onLayerEvent(layer int, active bool) {
	logger.Debug("layer state changed", logger.Layer(layer), "active", active)
}

// HandleSensorEvent offers raw sensor channel data to the sensor cascade.
func (e *Engine) HandleSensorEvent(ctx context.Context, sensorIndex int, raw []byte) error {
	return e.Sensors.Dispatch(ctx, sensorIndex, raw)
}

// SetLayerBinding applies one RPC edit: validate, mutate, mark dirty.
func (e *Engine) SetLayerBinding(req rpc.SetLayerBindingRequest) rpc.SetLayerBindingResponse {
	return rpc.SetLayerBinding(e.Keymap, e.Registry, e.Dirty, req)
}

// SaveChanges commits every dirty cell to the persistence store.
func (e *Engine) SaveChanges(ctx context.Context) error {
	return rpc.SaveChanges(ctx, e.Keymap, e.Dirty, e.Store)
}

// DiscardChanges reloads the persisted keymap subtree, discarding
// unsaved in-memory edits to cells that have a persisted record.
func (e *Engine) DiscardChanges(ctx context.Context) error {
	return rpc.DiscardChanges(ctx, e.Keymap, e.Registry, e.Store)
}

// HTTPHandler returns the chi-routed management/inspection handler bound
// to this engine's live state.
func (e *Engine) HTTPHandler() *httpapi.Handler {
	return &httpapi.Handler{Keymap: e.Keymap, Registry: e.Registry, Dirty: e.Dirty, Store: e.Store}
}

// GetKeymap renders the engine's current keymap in wire form.
func (e *Engine) GetKeymap() rpc.Keymap {
	return rpc.GetKeymap(e.Keymap, e.Registry)
}
