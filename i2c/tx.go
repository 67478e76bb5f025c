package i2c

import (
	"fmt"

	pi2c "periph.io/x/conn/v3/i2c"
	"tinygo.org/x/drivers"
)

// txBus is the transaction shape shared by periph.io and TinyGo buses.
type txBus interface {
	Tx(addr uint16, w, r []byte) error
}

// TxDevice adapts a bus that performs combined write/read transactions
// to the register oriented Device interface.
type TxDevice struct {
	bus  txBus
	addr uint16
}

// NewPeriph wraps a periph.io bus, typically from i2creg.Open.
func NewPeriph(bus pi2c.Bus) *TxDevice {
	return &TxDevice{bus: bus}
}

// NewTinyGo wraps a TinyGo driver bus.
func NewTinyGo(bus drivers.I2C) *TxDevice {
	return &TxDevice{bus: bus}
}

func (d *TxDevice) SetAddress(address int) error {
	if address < 0 || address > 0x3ff {
		return fmt.Errorf("invalid address %#x", address)
	}
	d.addr = uint16(address)
	return nil
}

func (d *TxDevice) ReadByteData(reg uint8) (uint8, error) {
	var w, r [1]byte
	w[0] = reg
	if err := d.bus.Tx(d.addr, w[:], r[:]); err != nil {
		return 0, err
	}
	return r[0], nil
}

func (d *TxDevice) WriteByteData(reg, val uint8) error {
	return d.bus.Tx(d.addr, []byte{reg, val}, nil)
}

var _ Device = (*TxDevice)(nil)
