package bme280

import "math"

const (
	// PressureUnavailable is returned by Pressure when the compensation
	// denominator is zero. It is never a valid reading.
	PressureUnavailable = 0.0

	// DewPointUnavailable is returned by DewPoint when relative humidity
	// is zero and the Magnus formula is undefined.
	DewPointUnavailable = -999.0

	// StandardPressure is the ISA sea level pressure in Pa.
	StandardPressure = 101325.0
)

// Magnus formula constants, valid for -45..60 °C over water.
const (
	magnusB = 17.62
	magnusC = 243.12
)

// rawSample holds the ADC outputs of one measurement burst.
type rawSample struct {
	press int32
	temp  int32
	hum   int32
}

// parseRaw decodes the 0xF7..0xFE data block. Pressure and temperature are
// 20 bits, left aligned in three registers; humidity is 16 bits.
func parseRaw(b []byte) rawSample {
	return rawSample{
		press: int32(b[0])<<12 | int32(b[1])<<4 | int32(b[2])>>4,
		temp:  int32(b[3])<<12 | int32(b[4])<<4 | int32(b[5])>>4,
		hum:   int32(b[6])<<8 | int32(b[7]),
	}
}

// fineTemperature returns the temperature in units of 1/5120 °C, the
// intermediate the pressure and humidity compensation depends on.
func (c *Calibration) fineTemperature(raw int32) int32 {
	r := int64(raw)
	var1 := (((r >> 3) - (int64(c.T1) << 1)) * int64(c.T2)) >> 11
	d := (r >> 4) - int64(c.T1)
	var2 := (((d * d) >> 12) * int64(c.T3)) >> 14
	return int32(var1 + var2)
}

func celsius(tFine int32) float64 {
	return float64(tFine) / 5120
}

// pressure returns the compensated pressure in Pa, or PressureUnavailable.
// The intermediates are Q24.8 in 64 bits; narrower types overflow.
func (c *Calibration) pressure(raw, tFine int32) float64 {
	var1 := int64(tFine) - 128000
	var2 := var1 * var1 * int64(c.P6)
	var2 += (var1 * int64(c.P5)) << 17
	var2 += int64(c.P4) << 35
	var1 = ((var1 * var1 * int64(c.P3)) >> 8) + ((var1 * int64(c.P2)) << 12)
	var1 = (((int64(1) << 47) + var1) * int64(c.P1)) >> 33
	if var1 == 0 {
		return PressureUnavailable
	}

	p := int64(1048576 - raw)
	p = (((p << 31) - var2) * 3125) / var1
	var1 = (int64(c.P9) * (p >> 13) * (p >> 13)) >> 25
	var2 = (int64(c.P8) * p) >> 19
	p = ((p + var1 + var2) >> 8) + (int64(c.P7) << 4)
	if p <= 0 {
		return PressureUnavailable
	}
	return float64(p) / 256
}

// humidity returns the compensated relative humidity in %, clamped to
// [0, 100].
func (c *Calibration) humidity(raw, tFine int32) float64 {
	h := float64(tFine) - 76800
	h = (float64(raw) - (float64(c.H4)*64 + float64(c.H5)/16384*h)) *
		(float64(c.H2) / 65536 * (1 + float64(c.H6)/67108864*h*(1+float64(c.H3)/67108864*h)))
	h *= 1 - float64(c.H1)*h/524288
	switch {
	case h > 100:
		return 100
	case h < 0 || math.IsNaN(h):
		return 0
	}
	return h
}

// Altitude returns the height in meters above the level where the pressure
// is p0, using the international barometric formula. p and p0 are in Pa;
// p0 must not be zero.
func Altitude(p, p0 float64) float64 {
	return 44330 * (1 - math.Pow(p/p0, 1/5.255))
}

// DewPoint returns the dew point in °C for temperature t (°C) and relative
// humidity rh (%), or DewPointUnavailable when rh is not positive.
func DewPoint(t, rh float64) float64 {
	if !(rh > 0) {
		return DewPointUnavailable
	}
	gamma := math.Log(rh/100) + magnusB*t/(magnusC+t)
	return magnusC * gamma / (magnusB - gamma)
}
