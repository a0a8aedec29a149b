package keymap

import (
	"context"

	"github.com/clavis/keymapd/internal/logger"
	"github.com/clavis/keymapd/pkg/behavior"
)

// SensorDispatcher runs the sensor cascade of §4.6: for each layer from
// highest to default, it offers raw channel data to the bound behavior
// and calls Process in trigger or discard mode depending on whether a
// higher layer already consumed the event.
type SensorDispatcher struct {
	Keymap   *Keymap
	Registry *behavior.Registry
}

// Dispatch offers raw sensor data on sensorIndex to every layer's bound
// behavior, highest first.
func (d *SensorDispatcher) Dispatch(ctx context.Context, sensorIndex int, raw []byte) error {
	opaqueSeen := false

	for layer := d.Keymap.LayerCount() - 1; layer >= 0; layer-- {
		binding, err := d.Keymap.SensorBinding(layer, sensorIndex)
		if err != nil {
			continue
		}

		b, err := d.Registry.ResolveByName(binding.BehaviorName)
		if err != nil {
			logger.Debug("sensor dispatch: behavior not resolved", logger.Layer(layer), logger.Sensor(sensorIndex), logger.Behavior(binding.BehaviorName))
			continue
		}

		accepter, ok := b.Handle.(behavior.AcceptData)
		if !ok {
			continue
		}
		if err := accepter.AcceptData(ctx, binding, raw); err != nil {
			logger.Debug("sensor dispatch: accept_data failed", logger.Layer(layer), logger.Err(err))
			continue
		}

		processor, ok := b.Handle.(behavior.Process)
		if !ok {
			continue
		}

		mode := behavior.ModeDiscard
		if !opaqueSeen && d.Keymap.LayerState().IsActive(layer) {
			mode = behavior.ModeTrigger
		}

		code, err := processor.Process(ctx, binding, mode)
		if err != nil {
			return err
		}
		if mode == behavior.ModeTrigger && behavior.Classify(code) == behavior.ResponseOpaque {
			opaqueSeen = true
		}
	}

	return nil
}
