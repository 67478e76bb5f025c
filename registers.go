package bme280

// I2C addresses, selected by the SDO pin.
const (
	Address    = 0x76
	AltAddress = 0x77
)

const (
	chipID = 0x60

	regChipID      = 0xd0
	regSoftReset   = 0xe0
	regCtrlHum     = 0xf2
	regStatus      = 0xf3
	regCtrlMeas    = 0xf4
	regConfig      = 0xf5
	regPressMSB    = 0xf7
	regTempMSB     = 0xfa
	regHumMSB      = 0xfd
	regCalibTP     = 0x88 // dig_T1 .. dig_H1, 26 bytes
	regCalibH      = 0xe1 // dig_H2 .. dig_H6, 7 bytes
	calibTPLen     = 26
	calibHLen      = 7
	dataLen        = 8 // press[3], temp[3], hum[2]
	softResetValue = 0xb6
)

// Oversampling codes for ctrl_hum and the osrs fields of ctrl_meas.
const (
	osrSkip = 0x00
	osrX1   = 0x01
	osrX2   = 0x02
	osrX4   = 0x03
	osrX8   = 0x04
	osrX16  = 0x05
)

const (
	modeSleep  = 0x00
	modeForced = 0x01
	modeNormal = 0x03

	// ctrl_meas: osrs_t[7:5] osrs_p[4:2] mode[1:0]
	ctrlMeasInit = osrX1<<5 | osrX1<<2 | modeNormal
	ctrlHumInit  = osrX1
	configInit   = 0x00 // t_sb 0.5 ms, filter off
)
