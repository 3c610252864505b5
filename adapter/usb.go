package adapter

import (
	"errors"
	"fmt"
	"log"
	"runtime"
	"sync"

	"github.com/google/gousb"
)

// USB printer interface class code
// Reference: http://www.usb.org/developers/defined_class
const IfaceClassPrinter = 0x07

// USBAdapter drives one ESC/POS printer over its USB printer-class
// interface. The bridge owns exactly one device for its whole lifetime,
// so there is no re-acquisition path: once Close is called the adapter
// is done.
type USBAdapter struct {
	ctx         *gousb.Context
	device      *gousb.Device
	iface       *gousb.Interface
	outEndpoint *gousb.OutEndpoint
	inEndpoint  *gousb.InEndpoint
	isOpen      bool
	mu          sync.Mutex
}

// NewUSBAdapter opens the device with the given VID/PID, falling back to
// printer-class auto-detection when no such device is attached.
func NewUSBAdapter(vid, pid uint16) (*USBAdapter, error) {
	ctx := gousb.NewContext()

	device, err := ctx.OpenDeviceWithVIDPID(gousb.ID(vid), gousb.ID(pid))
	if err != nil || device == nil {
		devices := FindPrinters(ctx)
		if len(devices) == 0 {
			ctx.Close()
			return nil, errors.New("cannot find printer")
		}
		device = devices[0]
	}

	return &USBAdapter{ctx: ctx, device: device}, nil
}

// NewUSBAdapterAuto picks the first attached device exposing a
// printer-class interface.
func NewUSBAdapterAuto() (*USBAdapter, error) {
	ctx := gousb.NewContext()

	devices := FindPrinters(ctx)
	if len(devices) == 0 {
		ctx.Close()
		return nil, errors.New("cannot find printer")
	}

	return &USBAdapter{ctx: ctx, device: devices[0]}, nil
}

// IsPrinter reports whether a device exposes a printer-class interface
func IsPrinter(dev *gousb.Device) bool {
	if dev == nil {
		return false
	}

	cfgNum, err := dev.ActiveConfigNum()
	if err != nil {
		return false
	}

	cfg, err := dev.Config(cfgNum)
	if err != nil {
		return false
	}
	defer cfg.Close()

	for _, iface := range cfg.Desc.Interfaces {
		for _, alt := range iface.AltSettings {
			if alt.Class == IfaceClassPrinter {
				return true
			}
		}
	}

	return false
}

// FindPrinters returns all attached USB printer devices
func FindPrinters(ctx *gousb.Context) []*gousb.Device {
	var printers []*gousb.Device

	devices, err := ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		return true // Check all devices
	})
	if err != nil {
		return printers
	}

	for _, dev := range devices {
		if IsPrinter(dev) {
			log.Println("Found printer device: ", dev.Desc)
			printers = append(printers, dev)
		} else {
			dev.Close()
		}
	}

	return printers
}

// Open claims the printer interface and resolves its endpoints
func (a *USBAdapter) Open() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.isOpen {
		return errors.New("device already open")
	}

	if a.device == nil {
		return errors.New("device not found")
	}

	// Set auto-detach kernel driver on Linux
	if runtime.GOOS == "linux" {
		a.device.SetAutoDetach(true)
	}

	cfgNum, err := a.device.ActiveConfigNum()
	if err != nil {
		return fmt.Errorf("failed to get active config: %w", err)
	}

	cfg, err := a.device.Config(cfgNum)
	if err != nil {
		return fmt.Errorf("failed to get config: %w", err)
	}
	defer cfg.Close()

	printerIfaceNum := -1
	for _, iface := range cfg.Desc.Interfaces {
		for _, alt := range iface.AltSettings {
			if alt.Class == IfaceClassPrinter {
				printerIfaceNum = iface.Number
				break
			}
		}
		if printerIfaceNum >= 0 {
			break
		}
	}

	if printerIfaceNum < 0 {
		return errors.New("no printer interface found")
	}

	iface, err := cfg.Interface(printerIfaceNum, 0)
	if err != nil {
		return fmt.Errorf("failed to claim interface: %w", err)
	}
	a.iface = iface

	for _, epDesc := range iface.Setting.Endpoints {
		if epDesc.Direction == gousb.EndpointDirectionOut && a.outEndpoint == nil {
			if ep, err := iface.OutEndpoint(epDesc.Number); err == nil {
				a.outEndpoint = ep
			}
		}
		if epDesc.Direction == gousb.EndpointDirectionIn && a.inEndpoint == nil {
			if ep, err := iface.InEndpoint(epDesc.Number); err == nil {
				a.inEndpoint = ep
			}
		}
	}

	if a.outEndpoint == nil {
		return errors.New("cannot find output endpoint from printer")
	}

	a.isOpen = true
	return nil
}

// Write sends command bytes to the printer's OUT endpoint
func (a *USBAdapter) Write(data []byte) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.isOpen {
		return 0, errors.New("device not open")
	}

	n, err := a.outEndpoint.Write(data)
	if err != nil {
		return n, fmt.Errorf("write failed: %w", err)
	}

	return n, nil
}

// Read reads status bytes from the printer's IN endpoint
func (a *USBAdapter) Read(buf []byte) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.isOpen {
		return 0, errors.New("device not open")
	}

	if a.inEndpoint == nil {
		return 0, errors.New("input endpoint not available")
	}

	n, err := a.inEndpoint.Read(buf)
	if err != nil {
		return n, fmt.Errorf("read failed: %w", err)
	}

	return n, nil
}

// Close releases the interface, the device and the USB context
func (a *USBAdapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var errs []error

	if a.iface != nil {
		a.iface.Close()
		a.iface = nil
	}

	if a.device != nil {
		if err := a.device.Close(); err != nil {
			errs = append(errs, err)
		}
		a.device = nil
	}

	if a.ctx != nil {
		if err := a.ctx.Close(); err != nil {
			errs = append(errs, err)
		}
		a.ctx = nil
	}

	a.isOpen = false

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}

	return nil
}

// IsOpen returns whether the printer interface is claimed
func (a *USBAdapter) IsOpen() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.isOpen
}
