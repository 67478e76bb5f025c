package i2c

import "fmt"

// A Device is typically a *sysfs.I2cDevice (gobot.io/x/gobot/sysfs), or one
// of the adapters in this package.
type Device interface {
	SetAddress(address int) error
	ReadByteData(reg uint8) (val uint8, err error)
	WriteByteData(reg, val uint8) error
}

// Reader performs register reads and writes against a Device. The first
// error is remembered and turns every later call into a no-op, so a
// sequence of reads can be checked once at the end.
type Reader struct {
	dev   Device
	error error
}

func NewReader(dev Device) *Reader {
	return &Reader{dev: dev}
}

func (r *Reader) Error() error {
	return r.error
}

func (r *Reader) Reset() {
	r.error = nil
}

func (r *Reader) Read(regs ...uint8) ([]byte, error) {
	res := make([]byte, len(regs))

	for i := len(regs) - 1; i >= 0; i-- {
		val, err := r.dev.ReadByteData(regs[i])
		if err != nil {
			return nil, fmt.Errorf("read byte register %#02x: %w", regs[i], err)
		}
		res[i] = val
	}
	return res, nil
}

// Block reads n registers at sequential addresses starting at reg.
func (r *Reader) Block(reg uint8, n int) []byte {
	res := make([]byte, n)
	if r.error != nil {
		return res
	}
	for i := range res {
		val, err := r.dev.ReadByteData(reg + uint8(i))
		if err != nil {
			r.error = fmt.Errorf("read byte register %#02x: %w", reg+uint8(i), err)
			return res
		}
		res[i] = val
	}
	return res
}

func (r *Reader) Signed(regs ...uint8) int {
	if r.error != nil {
		return 0
	}
	data, err := r.Read(regs...)
	if err != nil {
		r.error = err
		return 0
	}
	return signed(data)
}

func (r *Reader) Unsigned(regs ...uint8) int {
	if r.error != nil {
		return 0
	}
	data, err := r.Read(regs...)
	if err != nil {
		r.error = err
		return 0
	}
	return unsigned(data)
}

func (r *Reader) Byte(reg uint8) int {
	if r.error != nil {
		return 0
	}
	val, err := r.dev.ReadByteData(reg)
	if err != nil {
		r.error = err
		return 0
	}
	return int(val)
}

func (r *Reader) Write(reg, val uint8) {
	if r.error != nil {
		return
	}
	if err := r.dev.WriteByteData(reg, val); err != nil {
		r.error = fmt.Errorf("write register %#02x: %w", reg, err)
	}
}

func signed(data []byte) int {
	res := int(int8(data[0]))
	for _, val := range data[1:] {
		res <<= 8
		res |= int(val)
	}
	return res
}

func unsigned(data []byte) int {
	res := 0
	for _, val := range data {
		res <<= 8
		res |= int(val)
	}
	return res
}
