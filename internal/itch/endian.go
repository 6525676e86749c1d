// Package itch decodes NASDAQ TotalView-ITCH 5.0 wire messages without
// copying or allocating: every decoded view aliases the caller's buffer.
package itch

// BigEndian field widths are read byte-wise on purpose: ITCH fields are
// packed at fixed offsets that do not respect the natural alignment of the
// integer types they carry, so every width below is assembled a byte at a
// time and never assumes alignment; encoding/binary is not used.

// beUint16 reads a 2-byte big-endian unsigned integer starting at buf[0].
func beUint16(buf []byte) uint16 {
	_ = buf[1]
	return uint16(buf[0])<<8 | uint16(buf[1])
}

// beUint32 reads a 4-byte big-endian unsigned integer starting at buf[0].
func beUint32(buf []byte) uint32 {
	_ = buf[3]
	return uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3])
}

// beUint48 reads a 6-byte big-endian unsigned integer (ITCH's nanoseconds-
// since-midnight timestamp) starting at buf[0].
func beUint48(buf []byte) uint64 {
	_ = buf[5]
	return uint64(buf[0])<<40 | uint64(buf[1])<<32 | uint64(buf[2])<<24 |
		uint64(buf[3])<<16 | uint64(buf[4])<<8 | uint64(buf[5])
}

// beUint64 reads an 8-byte big-endian unsigned integer starting at buf[0].
func beUint64(buf []byte) uint64 {
	_ = buf[7]
	return uint64(buf[0])<<56 | uint64(buf[1])<<48 | uint64(buf[2])<<40 | uint64(buf[3])<<32 |
		uint64(buf[4])<<24 | uint64(buf[5])<<16 | uint64(buf[6])<<8 | uint64(buf[7])
}
