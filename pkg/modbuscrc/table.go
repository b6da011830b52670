// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package modbuscrc

// Lookup tables for the register-pair update. tableHi holds the low byte of
// each reflected CRC-16 entry and tableLo the high byte.
var tableHi, tableLo = makeTables(Polynomial)

func makeTables(poly uint16) (hi, lo [256]byte) {
	for i := 0; i < 256; i++ {
		crc := uint16(i)
		for j := 0; j < 8; j++ {
			if crc&0x0001 != 0 {
				crc = (crc >> 1) ^ poly
			} else {
				crc >>= 1
			}
		}
		hi[i] = byte(crc)
		lo[i] = byte(crc >> 8)
	}
	return hi, lo
}

// TableEntry returns the high and low table contributions for index
func TableEntry(index byte) (hi, lo byte) {
	return tableHi[index], tableLo[index]
}

// Tables returns copies of both lookup tables
func Tables() (hi, lo [256]byte) {
	return tableHi, tableLo
}
