// Package address formats and validates EVM chain addresses for display.
package address

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rxtech-lab/settlement-desk/pkg/errors"
)

const (
	headLen = 6 // "0x" plus four hex digits
	tailLen = 4
)

// IsValid reports whether addr is a 20-byte hex address, with or without 0x.
func IsValid(addr string) bool {
	return common.IsHexAddress(strings.TrimSpace(addr))
}

// Checksum returns the EIP-55 form of addr.
func Checksum(addr string) (string, error) {
	addr = strings.TrimSpace(addr)
	if !common.IsHexAddress(addr) {
		return "", errors.Newf(errors.ErrCodeInvalidAddress, "invalid address %q", addr)
	}

	return common.HexToAddress(addr).Hex(), nil
}

// Format shortens addr to "0x2306…8e2F" for table cells and headers.
// Valid addresses are checksummed first; anything too short to shorten
// is returned as is.
func Format(addr string) string {
	addr = strings.TrimSpace(addr)
	if checksummed, err := Checksum(addr); err == nil {
		addr = checksummed
	}

	if len(addr) <= headLen+tailLen+1 {
		return addr
	}

	return addr[:headLen] + "…" + addr[len(addr)-tailLen:]
}
