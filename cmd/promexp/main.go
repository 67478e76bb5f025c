package main

import (
	"flag"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/calmh/bme280"
	"github.com/calmh/bme280/cmd/internal/bus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var readErrors = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "sensors",
	Subsystem: "bme280",
	Name:      "read_errors_total",
})

func main() {
	device := flag.String("device", "/dev/i2c-1", "I2C device")
	driver := flag.String("bus", "sysfs", "I2C bus driver ("+strings.Join(bus.Drivers, ", ")+")")
	address := flag.Int("address", bme280.Address, "BME280 address")
	promaddr := flag.String("prometheus", ":9120", "Prometheus exporter address")
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

	servePrometheus(*promaddr, sensor, *seaLevel)
}

func servePrometheus(addr string, sensor *bme280.BME280, seaLevel float64) {
	refresh := func() {
		if err := sensor.Refresh(time.Second); err != nil {
			log.Println("refresh bme280:", err)
			readErrors.Inc()
		}
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "sensors",
		Subsystem: "bme280",
		Name:      "temperature_celsius",
	}, func() float64 {
		refresh()
		return round(sensor.TempC(), 2)
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "sensors",
		Subsystem: "bme280",
		Name:      "humidity_percent",
	}, func() float64 {
		refresh()
		return round(sensor.Humidity(), 2)
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "sensors",
		Subsystem: "bme280",
		Name:      "pressure_pascals",
	}, func() float64 {
		refresh()
		p := sensor.Pressure()
		if p == bme280.PressureUnavailable {
			return math.NaN()
		}
		return round(p, 2)
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   "sensors",
		Subsystem:   "bme280",
		Name:        "altitude_meters",
		ConstLabels: prometheus.Labels{"reference": "sea_level"},
	}, func() float64 {
		refresh()
		if sensor.Pressure() == bme280.PressureUnavailable {
			return math.NaN()
		}
		return round(sensor.Altitude(seaLevel), 2)
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   "sensors",
		Subsystem:   "bme280",
		Name:        "altitude_meters",
		ConstLabels: prometheus.Labels{"reference": "qne"},
	}, func() float64 {
		refresh()
		if sensor.Pressure() == bme280.PressureUnavailable {
			return math.NaN()
		}
		return round(sensor.QNE(), 2)
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "sensors",
		Subsystem: "bme280",
		Name:      "dewpoint_celsius",
	}, func() float64 {
		refresh()
		dp := sensor.DewPoint()
		if dp == bme280.DewPointUnavailable {
			return math.NaN()
		}
		return round(dp, 2)
	})

	http.Handle("/metrics", promhttp.Handler())
	log.Fatal(http.ListenAndServe(addr, nil))
}

func round(x float64, prec int) float64 {
	pow := math.Pow10(prec)
	return math.Round(x*pow) / pow
}
