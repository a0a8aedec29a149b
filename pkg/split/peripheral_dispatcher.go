package split

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/clavis/keymapd/internal/logger"
	"github.com/clavis/keymapd/pkg/behavior"
	"github.com/clavis/keymapd/pkg/keyerr"
	"github.com/clavis/keymapd/pkg/split/splitrpc"
)

// peripheralConn pairs a peripheral's RPC client with the connection ID
// assigned to it by AddPeripheral. The ID identifies one physical
// connection instance, not the peripheral's declarative name: a
// peripheral that drops and reconnects gets a new ID, which is what log
// correlation across a reconnect needs to distinguish.
type peripheralConn struct {
	client       splitrpc.PeripheralClient
	connectionID uuid.UUID
}

// PeripheralDispatcher routes event-source and global locality behaviors
// to one or more peripheral halves over gRPC.
type PeripheralDispatcher struct {
	mu    sync.RWMutex
	conns map[string]peripheralConn
}

// NewPeripheralDispatcher returns a dispatcher with no peripherals
// registered; call AddPeripheral once a connection is established.
func NewPeripheralDispatcher() *PeripheralDispatcher {
	return &PeripheralDispatcher{conns: make(map[string]peripheralConn)}
}

// AddPeripheral registers client under name, replacing any previous
// connection to that peripheral, and assigns it a fresh connection ID.
func (d *PeripheralDispatcher) AddPeripheral(name string, client splitrpc.PeripheralClient) {
	connectionID := uuid.New()

	d.mu.Lock()
	d.conns[name] = peripheralConn{client: client, connectionID: connectionID}
	d.mu.Unlock()

	logger.Info("peripheral connected", logger.Behavior(name), "connection_id", connectionID.String())
}

// RemovePeripheral drops a peripheral's connection.
func (d *PeripheralDispatcher) RemovePeripheral(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.conns, name)
}

// Peripherals returns the registered peripheral names, sorted.
func (d *PeripheralDispatcher) Peripherals() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, 0, len(d.conns))
	for name := range d.conns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ConnectionID returns the connection ID assigned to name's current
// connection, or false if name is not currently connected.
func (d *PeripheralDispatcher) ConnectionID(name string) (uuid.UUID, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	conn, ok := d.conns[name]
	return conn.connectionID, ok
}

// Invoke implements Dispatcher by routing to the named peripheral.
func (d *PeripheralDispatcher) Invoke(ctx context.Context, target Target, binding behavior.Binding, event behavior.Event) (int, error) {
	d.mu.RLock()
	conn, ok := d.conns[target.Peripheral]
	d.mu.RUnlock()
	if !ok {
		return 0, keyerr.New(keyerr.DeviceNotReady, "peripheral "+target.Peripheral+" not connected")
	}

	resp, err := conn.client.Invoke(ctx, toInvokeRequest(binding, event))
	if err != nil {
		return 0, keyerr.Wrap(keyerr.DeviceNotReady, "split rpc invoke failed", err)
	}
	if resp.Error != "" {
		return 0, keyerr.New(keyerr.DeviceNotReady, resp.Error)
	}
	return int(resp.Code), nil
}

// Broadcast sends binding to every connected peripheral, used for
// global-locality behaviors. Failures are logged per peripheral and do
// not stop the broadcast to the others.
func (d *PeripheralDispatcher) Broadcast(ctx context.Context, binding behavior.Binding, event behavior.Event) {
	for _, name := range d.Peripherals() {
		d.mu.RLock()
		conn := d.conns[name]
		d.mu.RUnlock()

		if _, err := conn.client.Invoke(ctx, toInvokeRequest(binding, event)); err != nil {
			logger.Warn("broadcast to peripheral failed", logger.Behavior(binding.BehaviorName),
				"connection_id", conn.connectionID.String(), logger.Err(err))
		}
	}
}

func toInvokeRequest(binding behavior.Binding, event behavior.Event) *splitrpc.InvokeRequest {
	return &splitrpc.InvokeRequest{
		BehaviorName:    binding.BehaviorName,
		BehaviorLocalID: uint32(binding.BehaviorLocalID),
		Param1:          binding.Param1,
		Param2:          binding.Param2,
		Position:        uint32(event.Position),
		Pressed:         event.Pressed,
		Timestamp:       event.Timestamp,
	}
}
