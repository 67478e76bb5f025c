// Package bus opens the I2C bus selected on the command line.
package bus

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/calmh/bme280/i2c"
	"gobot.io/x/gobot/sysfs"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// Drivers lists the bus implementations accepted by Open.
var Drivers = []string{"sysfs", "periph", "d2r2"}

// Open opens an I2C bus. The device is a /dev/i2c-N path; the periph
// driver also accepts one of its bus names, with "" selecting the first
// bus found.
func Open(driver, device string) (i2c.Device, error) {
	switch driver {
	case "sysfs":
		dev, err := sysfs.NewI2cDevice(device)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", device, err)
		}
		return dev, nil

	case "periph":
		if _, err := host.Init(); err != nil {
			return nil, fmt.Errorf("init periph host: %w", err)
		}
		name := device
		if n, err := busNumber(device); err == nil {
			name = strconv.Itoa(n)
		}
		bus, err := i2creg.Open(name)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", device, err)
		}
		return i2c.NewPeriph(bus), nil

	case "d2r2":
		n, err := busNumber(device)
		if err != nil {
			return nil, err
		}
		return i2c.NewD2R2(n), nil

	default:
		return nil, fmt.Errorf("unknown bus driver %q (want one of %s)", driver, strings.Join(Drivers, ", "))
	}
}

// busNumber returns N for a /dev/i2c-N path or a bare N.
func busNumber(device string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(device, "/dev/i2c-"))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid I2C device %q", device)
	}
	return n, nil
}
