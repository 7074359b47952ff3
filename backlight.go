package backlight

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultSysfsRoot is where the kernel exposes the backlight class.
const DefaultSysfsRoot = "/sys/class/backlight"

const (
	brightnessFile    = "brightness"
	maxBrightnessFile = "max_brightness"
)

// Device is a handle for one backlight device. It holds no open files;
// each operation performs a complete open-transfer-close cycle.
type Device struct {
	name string
	root string
}

// Option configures a Device.
type Option func(*Device)

// WithSysfsRoot points the device at an alternate backlight class
// directory instead of [DefaultSysfsRoot]. Tests use this to run against
// a synthetic tree.
func WithSysfsRoot(root string) Option {
	return func(d *Device) {
		d.root = root
	}
}

// New returns a handle for the named backlight device, e.g.
// "intel_backlight" or "amdgpu_bl0". The name is not checked against the
// filesystem; a missing device surfaces as an [ErrCodeIO] error from the
// first operation that touches it.
func New(name string, opts ...Option) *Device {
	d := &Device{
		name: name,
		root: DefaultSysfsRoot,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Name returns the device name passed to New.
func (d *Device) Name() string {
	return d.name
}

// Path returns the sysfs directory backing this device.
func (d *Device) Path() string {
	return filepath.Join(d.root, d.name)
}

// Brightness reads the current raw brightness value.
func (d *Device) Brightness() (int, error) {
	return d.readInt(brightnessFile)
}

// MaxBrightness reads the device maximum. The value is read from sysfs on
// every call rather than cached; it is cheap, and some drivers renumber
// their range across suspend cycles.
func (d *Device) MaxBrightness() (int, error) {
	return d.readInt(maxBrightnessFile)
}

// SetBrightness writes a raw brightness value. The value is written as a
// plain decimal string with no range check of any kind; whether an
// out-of-range value is rejected or clamped is up to the driver.
func (d *Device) SetBrightness(value int) error {
	path := filepath.Join(d.Path(), brightnessFile)
	if err := os.WriteFile(path, []byte(strconv.Itoa(value)), 0644); err != nil {
		return newError(ErrCodeIO, "failed to write brightness", err)
	}
	return nil
}

// Percent reports the current brightness as a percentage of the device
// maximum, rounded half up. A device reporting max_brightness of zero
// fails with [ErrCodeZeroMax].
func (d *Device) Percent() (int, error) {
	current, err := d.Brightness()
	if err != nil {
		return 0, err
	}
	max, err := d.MaxBrightness()
	if err != nil {
		return 0, err
	}
	if max == 0 {
		return 0, newError(ErrCodeZeroMax, "max_brightness is zero", nil)
	}
	return (100*current + max/2) / max, nil
}

// SetPercent sets the brightness to a percentage of the device maximum,
// rounded half up. The percentage is not range checked; callers wanting
// the conventional 1-100 window enforce it themselves.
func (d *Device) SetPercent(percent int) error {
	max, err := d.MaxBrightness()
	if err != nil {
		return err
	}
	return d.SetBrightness((percent*max + 50) / 100)
}

// readInt reads one sysfs attribute file and parses it as a decimal
// integer, tolerating the trailing newline sysfs appends.
func (d *Device) readInt(file string) (int, error) {
	path := filepath.Join(d.Path(), file)
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, newError(ErrCodeIO, fmt.Sprintf("failed to read %s", file), err)
	}
	text := strings.TrimSpace(string(data))
	value, err := strconv.Atoi(text)
	if err != nil || value < 0 {
		return 0, newError(ErrCodeParse, fmt.Sprintf("%s is not a non-negative integer: %q", file, text), err)
	}
	return value, nil
}
