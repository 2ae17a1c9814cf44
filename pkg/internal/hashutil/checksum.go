package hashutil

import (
	"crypto/sha256"
	"fmt"
	"io"
)

// CalculateChecksum calculates the SHA256 checksum of everything read from r
func CalculateChecksum(r io.Reader) (string, error) {
	hash := sha256.New()
	if _, err := io.Copy(hash, r); err != nil {
		return "", err
	}

	return fmt.Sprintf("sha256:%x", hash.Sum(nil)), nil
}
