package tea

import (
	"encoding/hex"
	"fmt"
	"strconv"
)

// ParseKey decodes a key given as 32 hex digits into 16 raw bytes
// suitable for NewCipher.
func ParseKey(s string) ([]byte, error) {
	if len(s) != 2*KeySize {
		return nil, ErrInvalidKeyLength
	}
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyElement, err)
	}
	return key, nil
}

// ParseKeyWords decodes 4 textual key words (decimal or 0x-prefixed hex)
// into uint32 words suitable for NewCipherFromWords.
func ParseKeyWords(words []string) ([]uint32, error) {
	if len(words) != keyWords {
		return nil, ErrInvalidKeyShape
	}
	k := make([]uint32, keyWords)
	for i, w := range words {
		n, err := strconv.ParseUint(w, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: word %d %q", ErrInvalidKeyElement, i, w)
		}
		k[i] = uint32(n)
	}
	return k, nil
}
