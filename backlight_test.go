package backlight

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

// writeDevice creates a fake sysfs backlight directory with the given file
// contents and returns its path.
func writeDevice(t *testing.T, root, name, brightness, max string) string {
	t.Helper()

	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("Failed to create device dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "brightness"), []byte(brightness), 0o644); err != nil {
		t.Fatalf("Failed to write brightness: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "max_brightness"), []byte(max), 0o644); err != nil {
		t.Fatalf("Failed to write max_brightness: %v", err)
	}
	return dir
}

func readFileString(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

func TestBrightness(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"plain value", "128", 128},
		{"trailing newline", "255\n", 255},
		{"surrounding whitespace", " 42 \t\n", 42},
		{"zero", "0\n", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeDevice(t, root, "intel_backlight", tt.content, "255\n")

			dev := New("intel_backlight", WithSysfsRoot(root))
			got, err := dev.Brightness()
			if err != nil {
				t.Fatalf("Brightness() returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Brightness() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMaxBrightness(t *testing.T) {
	root := t.TempDir()
	writeDevice(t, root, "amdgpu_bl0", "100\n", "4095\n")

	dev := New("amdgpu_bl0", WithSysfsRoot(root))
	got, err := dev.MaxBrightness()
	if err != nil {
		t.Fatalf("MaxBrightness() returned error: %v", err)
	}
	if got != 4095 {
		t.Errorf("MaxBrightness() = %d, want 4095", got)
	}
}

func TestReadParseError(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"letters", "abc\n"},
		{"empty file", ""},
		{"float", "12.5\n"},
		{"negative", "-5\n"},
		{"trailing garbage", "128 nits\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeDevice(t, root, "panel", tt.content, "255\n")

			dev := New("panel", WithSysfsRoot(root))
			_, err := dev.Brightness()
			if err == nil {
				t.Fatalf("Brightness() with content %q should return error", tt.content)
			}

			var blErr *Error
			if !errors.As(err, &blErr) {
				t.Fatalf("Brightness() error is %T, want *Error", err)
			}
			if blErr.Code != ErrCodeParse {
				t.Errorf("error code = %q, want %q", blErr.Code, ErrCodeParse)
			}
		})
	}
}

func TestMissingDeviceErrorsAtCallTime(t *testing.T) {
	// Construction must not touch the filesystem; errors belong to the
	// operation that first needs the device.
	dev := New("nonexistent", WithSysfsRoot(t.TempDir()))

	if _, err := dev.Brightness(); err == nil {
		t.Error("Brightness() on missing device should return error")
	} else {
		var blErr *Error
		if !errors.As(err, &blErr) {
			t.Fatalf("Brightness() error is %T, want *Error", err)
		}
		if blErr.Code != ErrCodeIO {
			t.Errorf("error code = %q, want %q", blErr.Code, ErrCodeIO)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("error should wrap fs.ErrNotExist, got %v", err)
		}
	}

	if _, err := dev.MaxBrightness(); err == nil {
		t.Error("MaxBrightness() on missing device should return error")
	}
	if err := dev.SetBrightness(50); err == nil {
		t.Error("SetBrightness() on missing device should return error")
	}
	if _, err := dev.Percent(); err == nil {
		t.Error("Percent() on missing device should return error")
	}
}

func TestSetBrightness(t *testing.T) {
	root := t.TempDir()
	dir := writeDevice(t, root, "panel", "10\n", "255\n")
	dev := New("panel", WithSysfsRoot(root))

	if err := dev.SetBrightness(440); err != nil {
		t.Fatalf("SetBrightness() returned error: %v", err)
	}

	// The kernel expects a bare decimal string, no trailing newline.
	if got := readFileString(t, filepath.Join(dir, "brightness")); got != "440" {
		t.Errorf("brightness file = %q, want %q", got, "440")
	}
}

func TestSetBrightnessNoClamping(t *testing.T) {
	// Values beyond max_brightness pass through untouched; rejecting or
	// clamping them is the driver's call.
	root := t.TempDir()
	dir := writeDevice(t, root, "panel", "10\n", "255\n")
	dev := New("panel", WithSysfsRoot(root))

	if err := dev.SetBrightness(100000); err != nil {
		t.Fatalf("SetBrightness(100000) returned error: %v", err)
	}
	if got := readFileString(t, filepath.Join(dir, "brightness")); got != "100000" {
		t.Errorf("brightness file = %q, want %q", got, "100000")
	}
}

func TestSetBrightnessRoundTrip(t *testing.T) {
	root := t.TempDir()
	writeDevice(t, root, "panel", "0\n", "4095\n")
	dev := New("panel", WithSysfsRoot(root))

	for _, value := range []int{0, 1, 137, 2048, 4095} {
		if err := dev.SetBrightness(value); err != nil {
			t.Fatalf("SetBrightness(%d) returned error: %v", value, err)
		}
		got, err := dev.Brightness()
		if err != nil {
			t.Fatalf("Brightness() after SetBrightness(%d) returned error: %v", value, err)
		}
		if got != value {
			t.Errorf("round trip: wrote %d, read back %d", value, got)
		}
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name       string
		brightness string
		max        string
		want       int
	}{
		{"midpoint of 255", "128\n", "255\n", 50},
		{"full", "255\n", "255\n", 100},
		{"off", "0\n", "255\n", 0},
		{"rounds down below half", "1\n", "255\n", 0},
		{"rounds up at half", "1\n", "2\n", 50},
		{"rounds up above half", "2\n", "3\n", 67},
		{"small range", "3\n", "7\n", 43},
		{"large range", "2048\n", "4095\n", 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeDevice(t, root, "panel", tt.brightness, tt.max)

			dev := New("panel", WithSysfsRoot(root))
			got, err := dev.Percent()
			if err != nil {
				t.Fatalf("Percent() returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Percent() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPercentZeroMax(t *testing.T) {
	root := t.TempDir()
	writeDevice(t, root, "broken", "0\n", "0\n")

	dev := New("broken", WithSysfsRoot(root))
	_, err := dev.Percent()
	if err == nil {
		t.Fatal("Percent() with zero max_brightness should return error")
	}

	var blErr *Error
	if !errors.As(err, &blErr) {
		t.Fatalf("Percent() error is %T, want *Error", err)
	}
	if blErr.Code != ErrCodeZeroMax {
		t.Errorf("error code = %q, want %q", blErr.Code, ErrCodeZeroMax)
	}
}

func TestPercentBadMaxContent(t *testing.T) {
	root := t.TempDir()
	writeDevice(t, root, "panel", "128\n", "abc\n")

	dev := New("panel", WithSysfsRoot(root))
	_, err := dev.Percent()
	if err == nil {
		t.Fatal("Percent() with unparseable max_brightness should return error")
	}

	var blErr *Error
	if !errors.As(err, &blErr) {
		t.Fatalf("Percent() error is %T, want *Error", err)
	}
	if blErr.Code != ErrCodeParse {
		t.Errorf("error code = %q, want %q", blErr.Code, ErrCodeParse)
	}
}

func TestSetPercent(t *testing.T) {
	tests := []struct {
		name    string
		percent int
		max     string
		want    string
	}{
		{"half of 255 rounds up", 50, "255\n", "128"},
		{"one percent of 255", 1, "255\n", "3"},
		{"full scale", 100, "255\n", "255"},
		{"tiny range", 33, "3\n", "1"},
		{"half of one", 50, "1\n", "1"},
		{"ten percent of 137", 10, "137\n", "14"},
		{"zero max writes zero", 75, "0\n", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			dir := writeDevice(t, root, "panel", "0\n", tt.max)

			dev := New("panel", WithSysfsRoot(root))
			if err := dev.SetPercent(tt.percent); err != nil {
				t.Fatalf("SetPercent(%d) returned error: %v", tt.percent, err)
			}
			if got := readFileString(t, filepath.Join(dir, "brightness")); got != tt.want {
				t.Errorf("SetPercent(%d) wrote %q, want %q", tt.percent, got, tt.want)
			}
		})
	}
}

func TestSetPercentRoundTrip(t *testing.T) {
	// Percent -> raw -> percent must come back within one percentage point.
	// Ranges much coarser than 100 steps (e.g. ThinkPads reporting max 7)
	// cannot hold that tolerance, so only realistic panel ranges are checked.
	for _, max := range []string{"100\n", "137\n", "255\n", "4095\n"} {
		root := t.TempDir()
		writeDevice(t, root, "panel", "0\n", max)
		dev := New("panel", WithSysfsRoot(root))

		for percent := 0; percent <= 100; percent++ {
			if err := dev.SetPercent(percent); err != nil {
				t.Fatalf("SetPercent(%d) with max %q returned error: %v", percent, max, err)
			}
			got, err := dev.Percent()
			if err != nil {
				t.Fatalf("Percent() with max %q returned error: %v", max, err)
			}
			if got < percent-1 || got > percent+1 {
				t.Errorf("max %q: SetPercent(%d) then Percent() = %d, want within 1", max, percent, got)
			}
		}
	}
}

func TestNameAndPath(t *testing.T) {
	dev := New("intel_backlight")
	if dev.Name() != "intel_backlight" {
		t.Errorf("Name() = %q, want %q", dev.Name(), "intel_backlight")
	}
	if dev.Path() != "/sys/class/backlight/intel_backlight" {
		t.Errorf("Path() = %q, want %q", dev.Path(), "/sys/class/backlight/intel_backlight")
	}

	custom := New("panel", WithSysfsRoot("/tmp/fake"))
	if custom.Path() != "/tmp/fake/panel" {
		t.Errorf("Path() with custom root = %q, want %q", custom.Path(), "/tmp/fake/panel")
	}
}

func TestErrorString(t *testing.T) {
	plain := newError(ErrCodeZeroMax, "max_brightness is zero", nil)
	if plain.Error() != "ZERO_MAX_BRIGHTNESS: max_brightness is zero" {
		t.Errorf("Error() = %q", plain.Error())
	}

	cause := errors.New("boom")
	wrapped := newError(ErrCodeIO, "failed to read brightness", cause)
	if wrapped.Error() != "IO_ERROR: failed to read brightness: boom" {
		t.Errorf("Error() = %q", wrapped.Error())
	}
	if !errors.Is(wrapped, cause) {
		t.Error("wrapped error should match its cause via errors.Is")
	}
}
