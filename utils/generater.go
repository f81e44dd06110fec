package utils

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// GenerateResetCode returns a 6-digit numeric password reset code.
func GenerateResetCode() string {
	var buf [4]byte
	rand.Read(buf[:])
	return fmt.Sprintf("%06d", binary.BigEndian.Uint32(buf[:])%1000000)
}
