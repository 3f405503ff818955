package transforms

import (
	"hash/crc32"
	"strconv"
	"strings"
)

// Checksum replaces the message after the first "/" with its CRC-32 in
// lowercase hex: "N/Save" becomes "N/" + hex(crc32("Save")). A value without
// "/" is checksummed whole.
func Checksum(value string) (string, error) {
	prefix, message := "", value
	if i := strings.IndexByte(value, '/'); i >= 0 {
		prefix, message = value[:i+1], value[i+1:]
	}

	return prefix + strconv.FormatUint(uint64(crc32.ChecksumIEEE([]byte(message))), 16), nil
}
