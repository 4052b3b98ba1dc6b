package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// IteratedSHA256 applies SHA256 iteratively n times to produce a derived hash.
// Used for IP hashing so raw client addresses are never stored with sessions.
func IteratedSHA256(input string, iterations int) string {
	data := []byte(input)
	for range iterations {
		h := sha256.Sum256(data)
		data = h[:]
	}
	return hex.EncodeToString(data)
}

// HashIP hashes an IP address with a salt using 5000 iterations of SHA256.
// The result is the ip_hash stored on watch sessions and compared by the
// suspicious-pattern detector.
func HashIP(ip, salt string) string {
	return IteratedSHA256(salt+ip, 5000)
}

// FingerprintDigest normalizes a client-supplied device fingerprint to a
// fixed 32-character key. Clients send opaque fingerprint strings of varying
// length; the detector only ever compares digests for equality.
func FingerprintDigest(fingerprint string) string {
	return SHA256Hex(fingerprint)[:32]
}
