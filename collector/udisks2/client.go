package udisks2

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ftahirops/xinfo/model"
)

// ErrNotConnected is returned by Init when the service did not answer the probe.
var ErrNotConnected = errors.New("udisks2: not connected")

// Options configures a Client.
type Options struct {
	// Dial opens the bus. Defaults to DialSystemBus.
	Dial DialFunc
	// CallTimeout bounds every D-Bus call. Zero means no deadline.
	CallTimeout time.Duration
	// SysfsBlockDir is listed when the manager cannot enumerate devices.
	SysfsBlockDir string
	Log           *logrus.Entry
}

// Client owns one UDisks2 connection. The zero state is "not initialized":
// queries return empty results until Init succeeds and again after Shutdown.
type Client struct {
	dial     DialFunc
	timeout  time.Duration
	sysfsDir string
	log      *logrus.Entry

	mu  sync.Mutex
	bus Bus
}

// NewClient creates a client. It does not connect; call Init.
func NewClient(opts Options) *Client {
	if opts.Dial == nil {
		opts.Dial = DialSystemBus
	}
	if opts.SysfsBlockDir == "" {
		opts.SysfsBlockDir = DefaultSysfsBlockDir
	}
	if opts.Log == nil {
		opts.Log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Client{
		dial:     opts.Dial,
		timeout:  opts.CallTimeout,
		sysfsDir: opts.SysfsBlockDir,
		log:      opts.Log.WithField("component", "udisks2"),
	}
}

// Init connects to the system bus unless already connected, then probes the
// manager's Version property. A failed probe discards the connection.
func (c *Client) Init(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.bus != nil {
		return nil
	}

	bus, err := c.dial(ctx)
	if err != nil {
		c.log.Debugf("dial failed: %v", err)
		return fmt.Errorf("%w: %v", ErrNotConnected, err)
	}
	if bus == nil {
		return fmt.Errorf("%w: dial returned no bus", ErrNotConnected)
	}

	manager, _ := openObject(bus, ManagerPath, c.timeout)
	version, ok := manager.String(ctx, ManagerInterface, "Version")
	if !ok {
		_ = bus.Close()
		c.log.Debug("service did not answer version probe")
		return fmt.Errorf("%w: version probe failed", ErrNotConnected)
	}

	c.log.WithField("version", version).Info("connected")
	c.bus = bus
	return nil
}

// Shutdown releases the connection. Init may be called again afterwards.
func (c *Client) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.bus == nil {
		return
	}
	if err := c.bus.Close(); err != nil {
		c.log.Debugf("close: %v", err)
	}
	c.bus = nil
}

// Connected reports whether Init succeeded and Shutdown has not been called.
func (c *Client) Connected() bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bus != nil
}

func (c *Client) currentBus() Bus {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bus
}

// DriveTemperatures returns SMART temperatures of every drive that has SMART enabled.
func (c *Client) DriveTemperatures(ctx context.Context) []model.DriveTemp {
	return Collect(ctx, c, DriveTemperature)
}

// Drives returns inventory records for every physical drive.
func (c *Client) Drives(ctx context.Context) []model.DriveInfo {
	return Collect(ctx, c, DriveDetails)
}
