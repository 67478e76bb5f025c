package i2c

import (
	"errors"
	"fmt"

	gi2c "github.com/d2r2/go-i2c"
	logger "github.com/d2r2/go-logger"
)

var errNoAddress = errors.New("no device address set")

// D2R2 adapts github.com/d2r2/go-i2c, which binds one address per
// connection, to the Device interface. Changing the address reopens the
// connection.
type D2R2 struct {
	bus  int
	addr int
	conn *gi2c.I2C
}

func NewD2R2(bus int) *D2R2 {
	// go-i2c logs every transfer at debug level.
	_ = logger.ChangePackageLogLevel("i2c", logger.InfoLevel)
	return &D2R2{bus: bus}
}

func (d *D2R2) SetAddress(address int) error {
	if d.conn != nil && d.addr == address {
		return nil
	}
	if address < 0 || address > 0x7f {
		return fmt.Errorf("invalid address %#x", address)
	}
	if err := d.Close(); err != nil {
		return err
	}
	conn, err := gi2c.NewI2C(uint8(address), d.bus)
	if err != nil {
		return fmt.Errorf("open bus %d: %w", d.bus, err)
	}
	d.conn = conn
	d.addr = address
	return nil
}

func (d *D2R2) ReadByteData(reg uint8) (uint8, error) {
	if d.conn == nil {
		return 0, errNoAddress
	}
	return d.conn.ReadRegU8(reg)
}

func (d *D2R2) WriteByteData(reg, val uint8) error {
	if d.conn == nil {
		return errNoAddress
	}
	return d.conn.WriteRegU8(reg, val)
}

func (d *D2R2) Close() error {
	if d.conn == nil {
		return nil
	}
	err := d.conn.Close()
	d.conn = nil
	return err
}

var _ Device = (*D2R2)(nil)
