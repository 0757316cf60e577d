package steg

import "github.com/yyyoichi/steg_zero/internal/shift"

// Obfuscate returns msg with the passkey's shift subtracted from every byte.
// Extract with the same passkey undoes it, except for bytes that become a
// newline here.
func Obfuscate(msg []byte, passkey string) []byte {
	return shift.New(passkey).Encrypt(msg)
}

// Shift returns the shift derived from passkey, in [0, 26).
func Shift(passkey string) int {
	return int(shift.Shift(passkey))
}
