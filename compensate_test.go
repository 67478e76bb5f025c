package bme280

import (
	"math"
	"testing"
)

// Raw ADC values from the datasheet example (adc_T=519888, adc_P=415148)
// and a mid range humidity reading, as read from 0xF7..0xFE.
var refData = []byte{0x65, 0x5a, 0xc0, 0x7e, 0xed, 0x00, 0x77, 0xd7}

const (
	refTFine    = 128422
	refTempC    = 25.082421875
	refPressure = 100653.25390625
	refHumidity = 60.062413107111
	refDewPoint = 16.786935929674
)

func within(got, want, tol float64) bool {
	return math.Abs(got-want) <= tol
}

func TestParseRaw(t *testing.T) {
	raw := parseRaw(refData)
	if raw.press != 415148 || raw.temp != 519888 || raw.hum != 30679 {
		t.Errorf("%+v != expected {press:415148 temp:519888 hum:30679}", raw)
	}

	raw = parseRaw([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff})
	if raw.press != 1<<20-1 || raw.temp != 1<<20-1 || raw.hum != 1<<16-1 {
		t.Errorf("%+v != expected all ones", raw)
	}
}

func TestReferenceCompensation(t *testing.T) {
	c := refCalibration
	raw := parseRaw(refData)

	tFine := c.fineTemperature(raw.temp)
	if tFine != refTFine {
		t.Fatalf("t_fine %d != expected %d", tFine, refTFine)
	}
	if temp := celsius(tFine); !within(temp, refTempC, 1e-9) {
		t.Errorf("temperature %f != expected %f", temp, refTempC)
	}
	if p := c.pressure(raw.press, tFine); !within(p, refPressure, 1e-6) {
		t.Errorf("pressure %f != expected %f", p, refPressure)
	}
	// Datasheet value, 0.1% tolerance.
	if p := c.pressure(raw.press, tFine); !within(p, 100653.27, 100.65327) {
		t.Errorf("pressure %f not within 0.1%% of 100653.27", p)
	}
	if h := c.humidity(raw.hum, tFine); !within(h, refHumidity, 1e-6) {
		t.Errorf("humidity %f != expected %f", h, refHumidity)
	}
}

func TestHumidityClamp(t *testing.T) {
	cals := []Calibration{
		refCalibration,
		{H1: 0, H2: 32767, H3: 255, H4: 2047, H5: -2048, H6: 127},
		{H1: 255, H2: -32768, H3: 0, H4: -2048, H5: 2047, H6: -128},
	}
	tFines := []int32{-204800, 0, refTFine, 435200}

	for _, c := range cals {
		for _, tf := range tFines {
			for raw := int32(0); raw <= 65535; raw++ {
				h := c.humidity(raw, tf)
				if !(h >= 0 && h <= 100) {
					t.Fatalf("humidity %f out of range for raw %d, t_fine %d, %+v", h, raw, tf, c)
				}
			}
		}
	}
}

func TestHumidityRails(t *testing.T) {
	c := refCalibration
	if h := c.humidity(0, refTFine); h != 0 {
		t.Errorf("%f != expected 0", h)
	}
	if h := c.humidity(65535, refTFine); h != 100 {
		t.Errorf("%f != expected 100", h)
	}
}

func TestPressureUnavailable(t *testing.T) {
	c := refCalibration
	c.P1 = 0
	if p := c.pressure(415148, refTFine); p != PressureUnavailable {
		t.Errorf("%f != expected unavailable", p)
	}
}

func TestPressureRange(t *testing.T) {
	c := refCalibration
	for _, tf := range []int32{-204800, 0, refTFine, 435200} {
		for raw := int32(0); raw < 1<<20; raw += 97 {
			p := c.pressure(raw, tf)
			if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
				t.Fatalf("pressure %f for raw %d, t_fine %d", p, raw, tf)
			}
		}
	}
}

func TestDewPoint(t *testing.T) {
	if dp := DewPoint(refTempC, refHumidity); !within(dp, refDewPoint, 1e-6) {
		t.Errorf("%f != expected %f", dp, refDewPoint)
	}
	if dp := DewPoint(refTempC, 100); !within(dp, refTempC, 1e-9) {
		t.Errorf("saturated dew point %f != temperature %f", dp, refTempC)
	}
	if dp := DewPoint(refTempC, 0); dp != DewPointUnavailable {
		t.Errorf("%f != expected unavailable", dp)
	}

	for temp := -40.0; temp <= 85; temp += 2.5 {
		for rh := 0.5; rh <= 100; rh += 0.5 {
			dp := DewPoint(temp, rh)
			if math.IsNaN(dp) || math.IsInf(dp, 0) || dp > temp+1e-9 {
				t.Fatalf("dew point %f for %f °C, %f %%", dp, temp, rh)
			}
		}
	}
}

func TestAltitude(t *testing.T) {
	if a := Altitude(refPressure, refPressure); a != 0 {
		t.Errorf("%f != expected 0", a)
	}
	if a := Altitude(refPressure, StandardPressure); !within(a, 56.0767, 1e-3) {
		t.Errorf("%f != expected 56.0767", a)
	}
	if a := Altitude(StandardPressure/2, StandardPressure); !within(a, 5478, 1) {
		t.Errorf("%f != expected about 5478", a)
	}
}
