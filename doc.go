// Package backlight reads and writes display backlight brightness through
// the Linux sysfs backlight class.
//
// Every backlight device registered with the kernel appears as a directory
// under /sys/class/backlight. Two files inside it carry the values this
// package works with:
//
//	/sys/class/backlight/<name>/brightness      current level, read/write
//	/sys/class/backlight/<name>/max_brightness  device maximum, read only
//
// Both files hold a decimal integer followed by a newline. The maximum
// varies wildly between devices (7 on some ThinkPads, 255 or 4095 or more
// elsewhere), so most callers want the percentage helpers rather than raw
// values.
//
// A [Device] is a handle, not a connection: constructing one performs no
// I/O, and every operation opens, transfers, and closes the underlying
// file on its own. A device that does not exist is only discovered when an
// operation touches it.
//
//	dev := backlight.New("intel_backlight")
//	percent, err := dev.Percent()
//
// Writes to the brightness file usually require root or an udev rule that
// opens up the file's permissions; a denied write surfaces as an
// [ErrCodeIO] error wrapping the kernel's answer. This package never
// escalates privileges and never clamps: values are handed to the kernel
// exactly as given, and the driver decides what to do with them.
package backlight
