package tea

import (
	"bytes"
	"crypto/rand"
	"errors"
	"sync"
	"testing"
)

// A sample key for tests that just need a valid cipher.
var testKey = []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99, 0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}

func TestSizes(t *testing.T) {
	c, err := NewCipher(testKey)
	if err != nil {
		t.Fatalf("NewCipher returned error: %v", err)
	}
	if c.BlockSize() != BlockSize {
		t.Errorf("BlockSize returned %d, expected %d", c.BlockSize(), BlockSize)
	}
	if c.KeySize() != KeySize {
		t.Errorf("KeySize returned %d, expected %d", c.KeySize(), KeySize)
	}
	if c.Rounds() != NumRounds {
		t.Errorf("Rounds returned %d, expected default %d", c.Rounds(), NumRounds)
	}
}

func TestInvalidKeySize(t *testing.T) {
	var key [KeySize + 1]byte

	if _, err := NewCipher(key[:]); !errors.Is(err, ErrInvalidKeyLength) {
		t.Errorf("key size %d: got %v, want ErrInvalidKeyLength", len(key), err)
	}
	if _, err := NewCipher(key[:KeySize-1]); !errors.Is(err, ErrInvalidKeyLength) {
		t.Errorf("key size %d: got %v, want ErrInvalidKeyLength", KeySize-1, err)
	}
}

func TestInvalidKeyWordCount(t *testing.T) {
	if _, err := NewCipherFromWords([]uint32{1, 2, 3}, NumRounds); !errors.Is(err, ErrInvalidKeyShape) {
		t.Errorf("3 key words: got %v, want ErrInvalidKeyShape", err)
	}
	if _, err := NewCipherFromWords([]uint32{1, 2, 3, 4, 5}, NumRounds); !errors.Is(err, ErrInvalidKeyShape) {
		t.Errorf("5 key words: got %v, want ErrInvalidKeyShape", err)
	}
	// Zero words are valid key material.
	if _, err := NewCipherFromWords([]uint32{0, 0, 0, 0}, NumRounds); err != nil {
		t.Errorf("all-zero key words rejected: %v", err)
	}
}

func TestInvalidRounds(t *testing.T) {
	for _, rounds := range []int{0, -1} {
		if _, err := NewCipherWithRounds(testKey, rounds); !errors.Is(err, ErrInvalidRounds) {
			t.Errorf("rounds %d: got %v, want ErrInvalidRounds", rounds, err)
		}
		if _, err := NewCipherFromWords([]uint32{1, 2, 3, 4}, rounds); !errors.Is(err, ErrInvalidRounds) {
			t.Errorf("rounds %d (words): got %v, want ErrInvalidRounds", rounds, err)
		}
	}
}

func TestInvalidBlockLength(t *testing.T) {
	c, err := NewCipher(testKey)
	if err != nil {
		t.Fatalf("NewCipher returned error: %v", err)
	}
	for _, n := range []int{7, 9} {
		block := make([]byte, n)
		if _, err := c.Encrypt(block); !errors.Is(err, ErrInvalidBlockLength) {
			t.Errorf("Encrypt with %d bytes: got %v, want ErrInvalidBlockLength", n, err)
		}
		if _, err := c.Decrypt(block); !errors.Is(err, ErrInvalidBlockLength) {
			t.Errorf("Decrypt with %d bytes: got %v, want ErrInvalidBlockLength", n, err)
		}
	}
}

// Reference vectors sourced from the ironclad TEA test vector set.
// Rounds count full cycles of the double mix.
var teaTests = []struct {
	rounds     int
	key        []byte
	plaintext  []byte
	ciphertext []byte
}{
	{
		NumRounds,
		[]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
		[]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
		[]byte{0x41, 0xea, 0x3a, 0x0a, 0x94, 0xba, 0xa9, 0x40},
	},
	{
		NumRounds,
		[]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
		[]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
		[]byte{0x31, 0x9b, 0xbe, 0xfb, 0x01, 0x6a, 0xbd, 0xb2},
	},
	{
		8,
		[]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
		[]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
		[]byte{0xed, 0x28, 0x5d, 0xa1, 0x45, 0x5b, 0x33, 0xc1},
	},
}

func TestVectors(t *testing.T) {
	for i, test := range teaTests {
		c, err := NewCipherWithRounds(test.key, test.rounds)
		if err != nil {
			t.Fatalf("#%d: NewCipherWithRounds returned error: %v", i, err)
		}

		ciphertext, err := c.Encrypt(test.plaintext)
		if err != nil {
			t.Fatalf("#%d: Encrypt returned error: %v", i, err)
		}
		if !bytes.Equal(ciphertext, test.ciphertext) {
			t.Errorf("#%d: incorrect ciphertext. Got %x, wanted %x", i, ciphertext, test.ciphertext)
		}

		plaintext, err := c.Decrypt(test.ciphertext)
		if err != nil {
			t.Fatalf("#%d: Decrypt returned error: %v", i, err)
		}
		if !bytes.Equal(plaintext, test.plaintext) {
			t.Errorf("#%d: incorrect plaintext. Got %x, wanted %x", i, plaintext, test.plaintext)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, rounds := range []int{1, 8, 16, 32, 64} {
		key := make([]byte, KeySize)
		block := make([]byte, BlockSize)
		if _, err := rand.Read(key); err != nil {
			t.Fatal(err)
		}
		if _, err := rand.Read(block); err != nil {
			t.Fatal(err)
		}

		c, err := NewCipherWithRounds(key, rounds)
		if err != nil {
			t.Fatalf("rounds %d: NewCipherWithRounds returned error: %v", rounds, err)
		}

		ciphertext, err := c.Encrypt(block)
		if err != nil {
			t.Fatalf("rounds %d: Encrypt returned error: %v", rounds, err)
		}
		decrypted, err := c.Decrypt(ciphertext)
		if err != nil {
			t.Fatalf("rounds %d: Decrypt returned error: %v", rounds, err)
		}
		if !bytes.Equal(decrypted, block) {
			t.Errorf("rounds %d: decrypt(encrypt(block)) = %x, want %x", rounds, decrypted, block)
		}

		// The inverse direction round-trips as well.
		plaintext, err := c.Decrypt(block)
		if err != nil {
			t.Fatalf("rounds %d: Decrypt returned error: %v", rounds, err)
		}
		reencrypted, err := c.Encrypt(plaintext)
		if err != nil {
			t.Fatalf("rounds %d: Encrypt returned error: %v", rounds, err)
		}
		if !bytes.Equal(reencrypted, block) {
			t.Errorf("rounds %d: encrypt(decrypt(block)) = %x, want %x", rounds, reencrypted, block)
		}
	}
}

func TestDefaultRoundsEquivalence(t *testing.T) {
	block := []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef}

	implicit, err := NewCipher(testKey)
	if err != nil {
		t.Fatalf("NewCipher returned error: %v", err)
	}
	explicit, err := NewCipherWithRounds(testKey, 32)
	if err != nil {
		t.Fatalf("NewCipherWithRounds returned error: %v", err)
	}

	a, err := implicit.Encrypt(block)
	if err != nil {
		t.Fatal(err)
	}
	b, err := explicit.Encrypt(block)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("default rounds ciphertext %x differs from explicit rounds=32 ciphertext %x", a, b)
	}
}

func TestWordConstructorEquivalence(t *testing.T) {
	// The same 128 bits supplied as raw bytes and as pre-split words
	// must produce identical ciphertext.
	words := []uint32{0x00112233, 0x44556677, 0x8899AABB, 0xCCDDEEFF}
	block := []byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x00, 0x00, 0x00}

	fromBytes, err := NewCipher(testKey)
	if err != nil {
		t.Fatal(err)
	}
	fromWords, err := NewCipherFromWords(words, NumRounds)
	if err != nil {
		t.Fatal(err)
	}

	a, err := fromBytes.Encrypt(block)
	if err != nil {
		t.Fatal(err)
	}
	b, err := fromWords.Encrypt(block)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("byte-keyed ciphertext %x differs from word-keyed ciphertext %x", a, b)
	}
}

func TestWordBlockOps(t *testing.T) {
	c, err := NewCipher(testKey)
	if err != nil {
		t.Fatal(err)
	}

	v := []uint32{0x01234567, 0x89abcdef}
	ct, err := c.EncryptWords(v)
	if err != nil {
		t.Fatalf("EncryptWords returned error: %v", err)
	}
	pt, err := c.DecryptWords(ct)
	if err != nil {
		t.Fatalf("DecryptWords returned error: %v", err)
	}
	if pt[0] != v[0] || pt[1] != v[1] {
		t.Errorf("word round-trip got %08x %08x, want %08x %08x", pt[0], pt[1], v[0], v[1])
	}

	for _, bad := range [][]uint32{{1}, {1, 2, 3}} {
		if _, err := c.EncryptWords(bad); !errors.Is(err, ErrMalformedBlock) {
			t.Errorf("EncryptWords with %d words: got %v, want ErrMalformedBlock", len(bad), err)
		}
		if _, err := c.DecryptWords(bad); !errors.Is(err, ErrMalformedBlock) {
			t.Errorf("DecryptWords with %d words: got %v, want ErrMalformedBlock", len(bad), err)
		}
	}
}

func TestParseKey(t *testing.T) {
	key, err := ParseKey("00112233445566778899aabbccddeeff")
	if err != nil {
		t.Fatalf("ParseKey returned error: %v", err)
	}
	if !bytes.Equal(key, testKey) {
		t.Errorf("ParseKey = %x, want %x", key, testKey)
	}

	if _, err := ParseKey("00112233"); !errors.Is(err, ErrInvalidKeyLength) {
		t.Errorf("short hex key: got %v, want ErrInvalidKeyLength", err)
	}
	if _, err := ParseKey("zz112233445566778899aabbccddeeff"); !errors.Is(err, ErrInvalidKeyElement) {
		t.Errorf("non-hex key: got %v, want ErrInvalidKeyElement", err)
	}
}

func TestParseKeyWords(t *testing.T) {
	k, err := ParseKeyWords([]string{"0x00112233", "1146447479", "0x8899aabb", "0"})
	if err != nil {
		t.Fatalf("ParseKeyWords returned error: %v", err)
	}
	want := []uint32{0x00112233, 0x44556677, 0x8899aabb, 0}
	for i := range want {
		if k[i] != want[i] {
			t.Errorf("word %d = %08x, want %08x", i, k[i], want[i])
		}
	}

	if _, err := ParseKeyWords([]string{"1", "2", "3"}); !errors.Is(err, ErrInvalidKeyShape) {
		t.Errorf("3 words: got %v, want ErrInvalidKeyShape", err)
	}
	if _, err := ParseKeyWords([]string{"1", "2", "3", "4", "5"}); !errors.Is(err, ErrInvalidKeyShape) {
		t.Errorf("5 words: got %v, want ErrInvalidKeyShape", err)
	}
	if _, err := ParseKeyWords([]string{"1", "2", "3", "abc"}); !errors.Is(err, ErrInvalidKeyElement) {
		t.Errorf("non-integer word: got %v, want ErrInvalidKeyElement", err)
	}
	if _, err := ParseKeyWords([]string{"1", "2", "3", "4294967296"}); !errors.Is(err, ErrInvalidKeyElement) {
		t.Errorf("out-of-range word: got %v, want ErrInvalidKeyElement", err)
	}
}

func TestConcurrentUse(t *testing.T) {
	c, err := NewCipher(testKey)
	if err != nil {
		t.Fatal(err)
	}

	const workers = 16
	blocks := make([][]byte, workers)
	sequential := make([][]byte, workers)
	for i := range blocks {
		blocks[i] = make([]byte, BlockSize)
		if _, err := rand.Read(blocks[i]); err != nil {
			t.Fatal(err)
		}
		ct, err := c.Encrypt(blocks[i])
		if err != nil {
			t.Fatal(err)
		}
		sequential[i] = ct
	}

	var wg sync.WaitGroup
	concurrent := make([][]byte, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			concurrent[i], errs[i] = c.Encrypt(blocks[i])
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("worker %d: Encrypt returned error: %v", i, errs[i])
		}
		if !bytes.Equal(concurrent[i], sequential[i]) {
			t.Errorf("worker %d: concurrent ciphertext %x differs from sequential %x", i, concurrent[i], sequential[i])
		}
	}
}
