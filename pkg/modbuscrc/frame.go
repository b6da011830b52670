// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package modbuscrc

// AppendCRC returns a copy of frame with its checksum appended in
// transmission order
func AppendCRC(frame []byte) []byte {
	result := make([]byte, 0, len(frame)+CRCSize)
	result = append(result, frame...)
	return append(result, Calculate(frame).Bytes()...)
}

// VerifyFrame checks the trailing two CRC bytes of a Modbus RTU frame
func VerifyFrame(frame []byte) error {
	if len(frame) < MinFrameSize {
		return ErrFrameTooShort
	}

	body := frame[:len(frame)-CRCSize]
	expected := Calculate(body)
	received := FrameCRC(frame)
	if expected != received {
		return &MismatchError{Expected: expected, Received: received}
	}
	return nil
}

// FrameCRC returns the checksum carried in the last two bytes of frame
func FrameCRC(frame []byte) Checksum {
	if len(frame) < CRCSize {
		return 0
	}
	n := len(frame)
	return Checksum(uint16(frame[n-2])<<8 | uint16(frame[n-1]))
}
