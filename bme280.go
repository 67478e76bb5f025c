// Package bme280 reads the Bosch BME280 temperature, humidity and pressure
// sensor over I2C and applies the factory calibration to the raw ADC
// values.
package bme280

import (
	"errors"
	"fmt"
	"sync"
	"time"

	logger "github.com/d2r2/go-logger"
	"periph.io/x/conn/v3/physic"

	"github.com/calmh/bme280/i2c"
)

var lg = logger.NewPackageLogger("bme280", logger.InfoLevel)

var (
	ErrUnknownChip    = errors.New("unknown chip ID")
	ErrNotInitialized = errors.New("device not initialized")
)

// Device is the bus the sensor is attached to.
type Device = i2c.Device

type BME280 struct {
	device  Device
	addr    int
	mut     sync.Mutex
	cal     *Calibration
	tempCal float64
	cached  time.Time

	tFine       int32
	temperature float64
	pressure    float64
	humidity    float64
}

// New returns a driver for the sensor at addr, usually Address or
// AltAddress. No bus traffic happens until Begin.
func New(dev Device, addr int) *BME280 {
	return &BME280{device: dev, addr: addr}
}

// Begin verifies the chip ID, loads the calibration data and starts the
// sensor in normal mode.
func (s *BME280) Begin() error {
	s.mut.Lock()
	defer s.mut.Unlock()

	if err := s.device.SetAddress(s.addr); err != nil {
		return fmt.Errorf("set device address: %w", err)
	}

	r := i2c.NewReader(s.device)
	id := r.Byte(regChipID)
	if err := r.Error(); err != nil {
		return fmt.Errorf("read chip ID: %w", err)
	}
	if id != chipID {
		lg.Debugf("Chip ID %#02x at address %#02x, expected %#02x", id, s.addr, chipID)
		s.cal = nil
		return fmt.Errorf("%w %#02x at address %#02x", ErrUnknownChip, id, s.addr)
	}

	if s.cal == nil {
		r.Write(regSoftReset, softResetValue)
		if err := s.waitNVM(r); err != nil {
			return err
		}

		tp := r.Block(regCalibTP, calibTPLen)
		h := r.Block(regCalibH, calibHLen)
		if err := r.Error(); err != nil {
			return fmt.Errorf("read calibration data: %w", err)
		}
		cal := parseCalibration(tp, h)
		lg.Debugf("Calibration at address %#02x: %+v", s.addr, cal)
		s.cal = &cal
	}

	// ctrl_hum only takes effect after a write to ctrl_meas.
	r.Write(regCtrlHum, ctrlHumInit)
	r.Write(regConfig, configInit)
	r.Write(regCtrlMeas, ctrlMeasInit)
	if err := r.Error(); err != nil {
		return fmt.Errorf("write control register: %w", err)
	}
	return nil
}

// waitNVM waits for the calibration data to be copied to the image
// registers after reset.
func (s *BME280) waitNVM(r *i2c.Reader) error {
	for i := 0; i < 10; i++ {
		time.Sleep(2 * time.Millisecond)
		status := r.Byte(regStatus)
		if err := r.Error(); err != nil {
			return fmt.Errorf("read status: %w", err)
		}
		if status&0x01 == 0 {
			return nil
		}
	}
	return errors.New("timeout waiting for NVM copy")
}

// SetTempCal sets an offset in °C added to every temperature reading from
// the next poll on.
func (s *BME280) SetTempCal(offset float64) {
	s.mut.Lock()
	defer s.mut.Unlock()
	s.tempCal = offset
}

// Poll reads one measurement from the device. On error the previous
// readings are kept.
func (s *BME280) Poll() error {
	s.mut.Lock()
	defer s.mut.Unlock()
	return s.poll()
}

// Refresh polls the device unless the current readings are younger than
// age.
func (s *BME280) Refresh(age time.Duration) error {
	s.mut.Lock()
	defer s.mut.Unlock()

	if time.Since(s.cached) < age {
		return nil
	}
	return s.poll()
}

func (s *BME280) poll() error {
	if s.cal == nil {
		return ErrNotInitialized
	}
	if err := s.device.SetAddress(s.addr); err != nil {
		return fmt.Errorf("set device address: %w", err)
	}

	r := i2c.NewReader(s.device)
	data := r.Block(regPressMSB, dataLen)
	if err := r.Error(); err != nil {
		return fmt.Errorf("read data: %w", err)
	}
	raw := parseRaw(data)

	// Pressure and humidity both depend on the fine temperature of this
	// same burst.
	s.tFine = s.cal.fineTemperature(raw.temp)
	s.temperature = celsius(s.tFine) + s.tempCal
	s.pressure = s.cal.pressure(raw.press, s.tFine)
	s.humidity = s.cal.humidity(raw.hum, s.tFine)
	s.cached = time.Now()
	return nil
}

// Calibration returns the factory coefficients, or false before Begin.
func (s *BME280) Calibration() (Calibration, bool) {
	s.mut.Lock()
	defer s.mut.Unlock()
	if s.cal == nil {
		return Calibration{}, false
	}
	return *s.cal, true
}

// TempC returns the temperature in °C, including the calibration offset.
func (s *BME280) TempC() float64 {
	s.mut.Lock()
	defer s.mut.Unlock()
	return s.temperature
}

func (s *BME280) TempF() float64 {
	return s.TempC()*9/5 + 32
}

// Humidity returns relative humidity in %, within [0, 100].
func (s *BME280) Humidity() float64 {
	s.mut.Lock()
	defer s.mut.Unlock()
	return s.humidity
}

// Pressure returns the pressure in Pa, or PressureUnavailable.
func (s *BME280) Pressure() float64 {
	s.mut.Lock()
	defer s.mut.Unlock()
	return s.pressure
}

// Altitude returns the height in meters relative to seaLevel (Pa).
func (s *BME280) Altitude(seaLevel float64) float64 {
	return Altitude(s.Pressure(), seaLevel)
}

// QNE returns the pressure altitude, the altitude relative to the standard
// atmosphere sea level pressure.
func (s *BME280) QNE() float64 {
	return s.Altitude(StandardPressure)
}

// DewPoint returns the dew point in °C, or DewPointUnavailable.
func (s *BME280) DewPoint() float64 {
	s.mut.Lock()
	defer s.mut.Unlock()
	return DewPoint(s.temperature, s.humidity)
}

// Env fills e with the current readings in periph units. Pressure is left
// unset when unavailable.
func (s *BME280) Env(e *physic.Env) {
	s.mut.Lock()
	defer s.mut.Unlock()
	e.Temperature = physic.Temperature(s.temperature*1000)*physic.MilliCelsius + physic.ZeroCelsius
	e.Humidity = physic.RelativeHumidity(s.humidity*1e4) * physic.MicroRH
	if s.pressure != PressureUnavailable {
		e.Pressure = physic.Pressure(s.pressure*1e6) * physic.MicroPascal
	}
}

func (s *BME280) String() string {
	return fmt.Sprintf("BME280{%#02x}", s.addr)
}
