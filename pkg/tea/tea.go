// Package tea implements the Tiny Encryption Algorithm (TEA) block cipher.
// TEA has a block size of 8 bytes (64 bits) and a key size of 16 bytes
// (128 bits). The number of mixing rounds is configurable and defaults to
// 32; each round applies the full double mix of the Feistel-like network.
//
// The package operates strictly on single blocks. Chaining modes, IVs and
// padding are the responsibility of an outer driver; all word/byte
// conversions are big-endian so that ciphertext matches the published TEA
// reference vectors.
package tea

import "encoding/binary"

const (
	// KeySize is the size of a TEA key in bytes.
	KeySize = 16
	// BlockSize is the size of a TEA block in bytes.
	BlockSize = 8
	// NumRounds is the round count used when no explicit count is given.
	NumRounds = 32

	keyWords   = 4
	blockWords = 2

	// Fixed by the TEA definition (derived from the golden ratio).
	delta = 0x9E3779B9
)

// Cipher represents a TEA cipher keyed with a 128-bit key and a fixed
// round count. A Cipher is immutable after construction and safe for
// concurrent use from multiple goroutines.
type Cipher struct {
	k      [keyWords]uint32
	rounds int
}

// NewCipher creates a TEA cipher with the given 16-byte key and the
// default round count. The key is split into 4 big-endian uint32 words.
func NewCipher(key []byte) (*Cipher, error) {
	return NewCipherWithRounds(key, NumRounds)
}

// NewCipherWithRounds creates a TEA cipher with the given 16-byte key and
// an explicit round count.
func NewCipherWithRounds(key []byte, rounds int) (*Cipher, error) {
	if rounds < 1 {
		return nil, ErrInvalidRounds
	}
	if len(key) != KeySize {
		return nil, ErrInvalidKeyLength
	}
	c := &Cipher{rounds: rounds}
	for i := 0; i < keyWords; i++ {
		c.k[i] = binary.BigEndian.Uint32(key[i*4:])
	}
	return c, nil
}

// NewCipherFromWords creates a TEA cipher from a key already split into
// 4 uint32 words. Any word value is accepted, including zero; the only
// constraint on the key is its word count.
func NewCipherFromWords(k []uint32, rounds int) (*Cipher, error) {
	if rounds < 1 {
		return nil, ErrInvalidRounds
	}
	if len(k) != keyWords {
		return nil, ErrInvalidKeyShape
	}
	c := &Cipher{rounds: rounds}
	copy(c.k[:], k)
	return c, nil
}

// KeySize returns the key size in bytes.
func (c *Cipher) KeySize() int { return KeySize }

// BlockSize returns the block size in bytes.
func (c *Cipher) BlockSize() int { return BlockSize }

// Rounds returns the round count the cipher was constructed with.
func (c *Cipher) Rounds() int { return c.rounds }

// Encrypt encrypts one 8-byte block and returns the ciphertext block.
func (c *Cipher) Encrypt(block []byte) ([]byte, error) {
	if len(block) != BlockSize {
		return nil, ErrInvalidBlockLength
	}
	v, err := encryptWords(splitBlock(block), c.k[:], c.rounds)
	if err != nil {
		return nil, err
	}
	return packBlock(v), nil
}

// Decrypt decrypts one 8-byte block and returns the plaintext block.
func (c *Cipher) Decrypt(block []byte) ([]byte, error) {
	if len(block) != BlockSize {
		return nil, ErrInvalidBlockLength
	}
	v, err := decryptWords(splitBlock(block), c.k[:], c.rounds)
	if err != nil {
		return nil, err
	}
	return packBlock(v), nil
}

// EncryptWords encrypts a block already split into 2 uint32 words.
func (c *Cipher) EncryptWords(v []uint32) ([]uint32, error) {
	return encryptWords(v, c.k[:], c.rounds)
}

// DecryptWords decrypts a block already split into 2 uint32 words.
func (c *Cipher) DecryptWords(v []uint32) ([]uint32, error) {
	return decryptWords(v, c.k[:], c.rounds)
}

func splitBlock(block []byte) []uint32 {
	return []uint32{
		binary.BigEndian.Uint32(block[0:4]),
		binary.BigEndian.Uint32(block[4:8]),
	}
}

func packBlock(v []uint32) []byte {
	block := make([]byte, BlockSize)
	binary.BigEndian.PutUint32(block[0:4], v[0])
	binary.BigEndian.PutUint32(block[4:8], v[1])
	return block
}

// encryptWords applies the forward transform. All arithmetic wraps
// modulo 2^32; shifts are logical shifts on 32-bit words.
func encryptWords(v, k []uint32, rounds int) ([]uint32, error) {
	if len(v) != blockWords {
		return nil, ErrMalformedBlock
	}
	if len(k) != keyWords {
		return nil, ErrMalformedKey
	}
	v0, v1 := v[0], v[1]
	var sum uint32
	for i := 0; i < rounds; i++ {
		sum += delta
		v0 += ((v1 << 4) + k[0]) ^ (v1 + sum) ^ ((v1 >> 5) + k[1])
		v1 += ((v0 << 4) + k[2]) ^ (v0 + sum) ^ ((v0 >> 5) + k[3])
	}
	return []uint32{v0, v1}, nil
}

// decryptWords applies the inverse transform, unwinding the rounds in
// reverse starting from sum = delta * rounds.
func decryptWords(v, k []uint32, rounds int) ([]uint32, error) {
	if len(v) != blockWords {
		return nil, ErrMalformedBlock
	}
	if len(k) != keyWords {
		return nil, ErrMalformedKey
	}
	v0, v1 := v[0], v[1]
	sum := delta * uint32(rounds)
	for i := 0; i < rounds; i++ {
		v1 -= ((v0 << 4) + k[2]) ^ (v0 + sum) ^ ((v0 >> 5) + k[3])
		v0 -= ((v1 << 4) + k[0]) ^ (v1 + sum) ^ ((v1 >> 5) + k[1])
		sum -= delta
	}
	return []uint32{v0, v1}, nil
}
