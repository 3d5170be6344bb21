package udisks2

import (
	"context"
	"time"

	"github.com/godbus/dbus/v5"
)

// Object is a handle on one UDisks2 object (a block device or a drive).
// It holds no server-side state, so there is nothing to release.
type Object struct {
	bus     Bus
	path    dbus.ObjectPath
	timeout time.Duration
}

// openObject returns a handle on path, or false if path is not a valid object path.
func openObject(bus Bus, path dbus.ObjectPath, timeout time.Duration) (Object, bool) {
	if bus == nil || !path.IsValid() {
		return Object{}, false
	}
	return Object{bus: bus, path: path, timeout: timeout}, true
}

// Path returns the object path of the handle.
func (o Object) Path() dbus.ObjectPath {
	return o.path
}

// Get fetches one property. Any failure is reported as absent.
func (o Object) Get(ctx context.Context, iface, name string) (dbus.Variant, bool) {
	if o.bus == nil {
		return dbus.Variant{}, false
	}
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}
	v, err := o.bus.Property(ctx, o.path, iface, name)
	if err != nil {
		return dbus.Variant{}, false
	}
	return v, true
}

// Has reports whether the property exists on the object.
func (o Object) Has(ctx context.Context, iface, name string) bool {
	_, ok := o.Get(ctx, iface, name)
	return ok
}

func (o Object) String(ctx context.Context, iface, name string) (string, bool) {
	return property[string](ctx, o, iface, name)
}

func (o Object) Bool(ctx context.Context, iface, name string) (bool, bool) {
	return property[bool](ctx, o, iface, name)
}

func (o Object) Int32(ctx context.Context, iface, name string) (int32, bool) {
	return property[int32](ctx, o, iface, name)
}

func (o Object) Int64(ctx context.Context, iface, name string) (int64, bool) {
	return property[int64](ctx, o, iface, name)
}

func (o Object) Uint64(ctx context.Context, iface, name string) (uint64, bool) {
	return property[uint64](ctx, o, iface, name)
}

func (o Object) Float64(ctx context.Context, iface, name string) (float64, bool) {
	return property[float64](ctx, o, iface, name)
}

func (o Object) Strings(ctx context.Context, iface, name string) ([]string, bool) {
	return property[[]string](ctx, o, iface, name)
}

func (o Object) ObjectPath(ctx context.Context, iface, name string) (dbus.ObjectPath, bool) {
	return property[dbus.ObjectPath](ctx, o, iface, name)
}

func (o Object) ObjectPaths(ctx context.Context, iface, name string) ([]dbus.ObjectPath, bool) {
	return property[[]dbus.ObjectPath](ctx, o, iface, name)
}

// property fetches a property and asserts its D-Bus type. A mismatch is absent.
func property[T any](ctx context.Context, o Object, iface, name string) (T, bool) {
	var zero T
	v, ok := o.Get(ctx, iface, name)
	if !ok {
		return zero, false
	}
	t, ok := v.Value().(T)
	if !ok {
		return zero, false
	}
	return t, true
}
