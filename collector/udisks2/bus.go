package udisks2

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
)

// Bus is the part of a system bus connection the collector talks through.
type Bus interface {
	// BlockDevices calls Manager.GetBlockDevices.
	BlockDevices(ctx context.Context, options map[string]dbus.Variant) ([]dbus.ObjectPath, error)
	// Property calls org.freedesktop.DBus.Properties.Get on path.
	Property(ctx context.Context, path dbus.ObjectPath, iface, name string) (dbus.Variant, error)
	Close() error
}

// DialFunc opens a Bus.
type DialFunc func(ctx context.Context) (Bus, error)

// systemBus is a Bus backed by a private system bus connection.
type systemBus struct {
	conn *dbus.Conn
}

// DialSystemBus opens a private connection to the system bus. The connection is
// private so Close does not tear down the process-shared one.
func DialSystemBus(ctx context.Context) (Bus, error) {
	conn, err := dbus.ConnectSystemBus(dbus.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("connect system bus: %w", err)
	}
	return &systemBus{conn: conn}, nil
}

func (b *systemBus) BlockDevices(ctx context.Context, options map[string]dbus.Variant) ([]dbus.ObjectPath, error) {
	var paths []dbus.ObjectPath
	obj := b.conn.Object(Service, ManagerPath)
	if err := obj.CallWithContext(ctx, ManagerInterface+".GetBlockDevices", 0, options).Store(&paths); err != nil {
		return nil, err
	}
	return paths, nil
}

func (b *systemBus) Property(ctx context.Context, path dbus.ObjectPath, iface, name string) (dbus.Variant, error) {
	var v dbus.Variant
	obj := b.conn.Object(Service, path)
	if err := obj.CallWithContext(ctx, PropertiesInterface+".Get", 0, iface, name).Store(&v); err != nil {
		return dbus.Variant{}, err
	}
	return v, nil
}

func (b *systemBus) Close() error {
	return b.conn.Close()
}
