package hub

import "codeberg.org/evhjem/hubdrive/internal/control"

// FrameLen is the fixed length of every command frame.
const FrameLen = 13

// driveHeader is the fixed prefix of a drive command. The byte values are a
// contract with the hub firmware and must be preserved bit-exact.
var driveHeader = [9]byte{0x0d, 0x00, 0x81, 0x36, 0x11, 0x51, 0x00, 0x03, 0x00}

// Steering calibration frames, sent once before the control loop starts.
var calibrationFrames = [][]byte{
	{0x0d, 0x00, 0x81, 0x36, 0x11, 0x51, 0x00, 0x03, 0x00, 0x00, 0x00, 0x10, 0x00},
	{0x0d, 0x00, 0x81, 0x36, 0x11, 0x51, 0x00, 0x03, 0x00, 0x00, 0x00, 0x08, 0x00},
}

// DriveFrame encodes a drive command: header, signed speed byte, signed
// angle byte, light-code byte, fixed trailer.
func DriveFrame(cmd control.Command) []byte {
	frame := make([]byte, FrameLen)
	copy(frame, driveHeader[:])
	frame[9] = byte(cmd.Speed & 0xFF)
	frame[10] = byte(cmd.Angle & 0xFF)
	frame[11] = cmd.LightCode
	frame[12] = 0x00

	return frame
}
