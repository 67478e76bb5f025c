package bme280

import "encoding/binary"

// Calibration holds the factory trimming coefficients burned into the
// device NVM. Field widths and signedness follow the datasheet register
// table and must not be changed.
type Calibration struct {
	T1 uint16
	T2 int16
	T3 int16

	P1 uint16
	P2 int16
	P3 int16
	P4 int16
	P5 int16
	P6 int16
	P7 int16
	P8 int16
	P9 int16

	H1 uint8
	H2 int16
	H3 uint8
	H4 int16
	H5 int16
	H6 int8
}

// parseCalibration decodes the 0x88..0xA1 block (tp) and the 0xE1..0xE7
// block (h).
func parseCalibration(tp, h []byte) Calibration {
	le := binary.LittleEndian
	var c Calibration

	c.T1 = le.Uint16(tp[0:])
	c.T2 = int16(le.Uint16(tp[2:]))
	c.T3 = int16(le.Uint16(tp[4:]))

	c.P1 = le.Uint16(tp[6:])
	c.P2 = int16(le.Uint16(tp[8:]))
	c.P3 = int16(le.Uint16(tp[10:]))
	c.P4 = int16(le.Uint16(tp[12:]))
	c.P5 = int16(le.Uint16(tp[14:]))
	c.P6 = int16(le.Uint16(tp[16:]))
	c.P7 = int16(le.Uint16(tp[18:]))
	c.P8 = int16(le.Uint16(tp[20:]))
	c.P9 = int16(le.Uint16(tp[22:]))

	// tp[24] (0xA0) is unused.
	c.H1 = tp[25]
	c.H2 = int16(le.Uint16(h[0:]))
	c.H3 = h[2]
	c.H4, c.H5 = unpackH4H5(h[3], h[4], h[5])
	c.H6 = int8(h[6])

	return c
}

// unpackH4H5 decodes the two signed 12-bit coefficients stored in
// registers 0xE4..0xE6, which share the nibbles of 0xE5:
//
//	dig_H4 = 0xE4[7:0] << 4 | 0xE5[3:0]
//	dig_H5 = 0xE6[7:0] << 4 | 0xE5[7:4]
//
// The sign is carried by the high byte of each value.
func unpackH4H5(e4, e5, e6 byte) (h4, h5 int16) {
	h4 = int16(int8(e4))<<4 | int16(e5&0x0f)
	h5 = int16(int8(e6))<<4 | int16(e5>>4)
	return h4, h5
}
