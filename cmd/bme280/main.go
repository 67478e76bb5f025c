package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"io"
	"log"
	"math"
	"os"
	"strings"
	"time"

	"github.com/calmh/bme280"
	"github.com/calmh/bme280/cmd/internal/bus"
)

func main() {
	device := flag.String("device", "/dev/i2c-1", "I2C device")
	driver := flag.String("bus", "sysfs", "I2C bus driver ("+strings.Join(bus.Drivers, ", ")+")")
	address := flag.Int("address", bme280.Address, "BME280 address")
	interval := flag.Duration("interval", time.Second, "Interval between measurements")
	decimals := flag.Int("decimals", 2, "Rounding precision")
	buffer := flag.Bool("buffer", false, "Use output buffering")
	tempCal := flag.Float64("temp-cal", 0, "Temperature offset (°C)")
	seaLevel := flag.Float64("sea-level", bme280.StandardPressure, "Sea level pressure for altitude (Pa)")
	flag.Parse()

	dev, err := bus.Open(*driver, *device)
	if err != nil {
		log.Fatalln("open I2C device:", err)
	}

	sensor := bme280.New(dev, *address)
	if err := sensor.Begin(); err != nil {
		log.Fatalln("init BME280:", err)
	}
	sensor.SetTempCal(*tempCal)

	fields := make(map[string]interface{})
	out := io.Writer(os.Stdout)
	if *buffer {
		out = bufio.NewWriter(out)
	}
	enc := json.NewEncoder(out)

	for now := range time.NewTicker(*interval).C {
		if err := sensor.Poll(); err != nil {
			log.Fatalln("bme280:", err)
		}

		fields["when"] = now
		fields["bme280_temperature_c"] = round(sensor.TempC(), *decimals)
		fields["bme280_humidity_rh"] = round(sensor.Humidity(), *decimals)

		if p := sensor.Pressure(); p != bme280.PressureUnavailable {
			fields["bme280_pressure_hpa"] = round(p/100, *decimals)
			fields["bme280_altitude_m"] = round(sensor.Altitude(*seaLevel), *decimals)
		} else {
			delete(fields, "bme280_pressure_hpa")
			delete(fields, "bme280_altitude_m")
		}

		if dp := sensor.DewPoint(); dp != bme280.DewPointUnavailable {
			fields["bme280_dewpoint_c"] = round(dp, *decimals)
		} else {
			delete(fields, "bme280_dewpoint_c")
		}

		enc.Encode(fields)
	}
}

// round returns the half away from zero rounded value of x with prec precision.
//
// Special cases are:
// 	Round(±0) = +0
// 	Round(±Inf) = ±Inf
// 	Round(NaN) = NaN
func round(x float64, prec int) float64 {
	if x == 0 {
		// Make sure zero is returned
		// without the negative bit set.
		return 0
	}
	// Fast path for positive precision on integers.
	if prec >= 0 && x == math.Trunc(x) {
		return x
	}
	pow := math.Pow10(prec)
	intermed := x * pow
	if math.IsInf(intermed, 0) {
		return x
	}
	if x < 0 {
		x = math.Ceil(intermed - 0.5)
	} else {
		x = math.Floor(intermed + 0.5)
	}

	if x == 0 {
		return 0
	}

	return x / pow
}
