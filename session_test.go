// session_test.go - end-to-end scenarios from the testable-properties
// section: AES-256-GCM AEAD with tamper detection, Sodium ChaCha20
// stream layout, short-IV rejection, and CIPHER_DISABLED.
package symcipher

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/chacha20"
)

func TestAES256GCMRoundTripAndTamper(t *testing.T) {
	require := require.New(t)

	var enc, dec Session
	require.Equal(OK, enc.Init("aes-256-gcm", ModeEncrypt))
	require.Equal(OK, dec.Init("aes-256-gcm", ModeDecrypt))
	defer enc.Close()
	defer dec.Close()

	require.True(enc.IsAEAD())

	key := make([]byte, 32)
	iv := make([]byte, 12)
	ad := []byte{0xde, 0xad, 0xbe, 0xef}
	plaintext := []byte("hello world")

	require.Equal(OK, enc.SetKey(key, 256))
	require.Equal(OK, enc.SetIV(iv))
	ciphertext, tag, ek := enc.EncryptAEAD(plaintext, ad, 16)
	require.Equal(OK, ek)
	require.Len(tag, 16)

	require.Equal(OK, dec.SetKey(key, 256))
	require.Equal(OK, dec.SetIV(iv))
	recovered, ek := dec.DecryptAEAD(ciphertext, ad, tag)
	require.Equal(OK, ek)
	require.Equal(plaintext, recovered)

	// Flip a bit in the tag: must fail CIPHER_OPERATION, never panic or
	// return partial plaintext.
	badTag := append([]byte{}, tag...)
	badTag[0] ^= 0x01
	_, ek = dec.DecryptAEAD(ciphertext, ad, badTag)
	require.Equal(CipherOperation, ek)

	// Flip a bit in the ciphertext.
	badCiphertext := append([]byte{}, ciphertext...)
	badCiphertext[0] ^= 0x01
	_, ek = dec.DecryptAEAD(badCiphertext, ad, tag)
	require.Equal(CipherOperation, ek)

	// Flip a bit in the associated data.
	badAD := append([]byte{}, ad...)
	badAD[0] ^= 0x01
	_, ek = dec.DecryptAEAD(ciphertext, badAD, tag)
	require.Equal(CipherOperation, ek)
}

func TestEncryptOnAEADDescriptorFails(t *testing.T) {
	var s Session
	require.Equal(t, OK, s.Init("aes-256-gcm", ModeEncrypt))
	defer s.Close()
	require.Equal(t, OK, s.SetKey(make([]byte, 32), 256))
	require.Equal(t, OK, s.SetIV(make([]byte, 12)))
	_, ek := s.Encrypt([]byte("x"))
	require.Equal(t, MustCallAEADAPI, ek)
}

func TestEncryptAEADOnNonAEADDescriptorFails(t *testing.T) {
	var s Session
	require.Equal(t, OK, s.Init("aes-128-ctr", ModeEncrypt))
	defer s.Close()
	require.Equal(t, OK, s.SetKey(make([]byte, 16), 128))
	require.Equal(t, OK, s.SetIV(make([]byte, 16)))
	_, _, ek := s.EncryptAEAD([]byte("x"), nil, 16)
	require.Equal(t, MustNotCallAEADAPI, ek)
}

func TestAlreadyInited(t *testing.T) {
	var s Session
	require.Equal(t, OK, s.Init("xxtea", ModeEncrypt))
	defer s.Close()
	require.Equal(t, AlreadyInited, s.Init("xxtea", ModeEncrypt))
}

// TestSodiumChaCha20StreamLayout is scenario S3: the Sodium IV layout is
// an 8-byte little-endian counter followed by the nonce, and for
// counter=0 the result is exactly the ChaCha20 keystream.
func TestSodiumChaCha20StreamLayout(t *testing.T) {
	require := require.New(t)

	var s Session
	require.Equal(OK, s.Init("chacha20-ietf", ModeEncrypt))
	defer s.Close()

	key := make([]byte, 32)
	nonce := []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b}
	iv := append(make([]byte, 8), nonce...)

	require.Equal(OK, s.SetKey(key, 256))
	require.Equal(OK, s.SetIV(iv))

	plaintext := make([]byte, 64)
	ciphertext, ek := s.Encrypt(plaintext)
	require.Equal(OK, ek)

	ref, err := chacha20.NewUnauthenticatedCipher(key, nonce)
	require.NoError(err)
	expected := make([]byte, 64)
	ref.XORKeyStream(expected, plaintext)

	require.True(bytes.Equal(expected, ciphertext))
}

// TestSodiumXSalsa20RoundTrip exercises the HSalsa20 subkey-derivation
// path (SodiumXSalsa20), which a nil sigma constant would panic on.
func TestSodiumXSalsa20RoundTrip(t *testing.T) {
	require := require.New(t)

	var enc, dec Session
	require.Equal(OK, enc.Init("xsalsa20", ModeEncrypt))
	require.Equal(OK, dec.Init("xsalsa20", ModeDecrypt))
	defer enc.Close()
	defer dec.Close()

	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i * 3)
	}
	iv := make([]byte, 32) // 8-byte counter ‖ 24-byte nonce
	for i := 8; i < 32; i++ {
		iv[i] = byte(i)
	}

	require.Equal(OK, enc.SetKey(key, 256))
	require.Equal(OK, enc.SetIV(iv))
	require.Equal(OK, dec.SetKey(key, 256))
	require.Equal(OK, dec.SetIV(iv))

	plaintext := []byte("xsalsa20 round trip plaintext, not block aligned")
	ciphertext, ek := enc.Encrypt(plaintext)
	require.Equal(OK, ek)
	require.NotEqual(plaintext, ciphertext)

	recovered, ek := dec.Decrypt(ciphertext)
	require.Equal(OK, ek)
	require.Equal(plaintext, recovered)
}

// TestSodiumSalsa20RoundTrip exercises the plain (non-extended-nonce)
// Salsa20 path.
func TestSodiumSalsa20RoundTrip(t *testing.T) {
	require := require.New(t)

	var enc, dec Session
	require.Equal(OK, enc.Init("salsa20", ModeEncrypt))
	require.Equal(OK, dec.Init("salsa20", ModeDecrypt))
	defer enc.Close()
	defer dec.Close()

	key := make([]byte, 32)
	iv := make([]byte, 16) // 8-byte counter ‖ 8-byte nonce
	for i := 8; i < 16; i++ {
		iv[i] = byte(i)
	}

	require.Equal(OK, enc.SetKey(key, 256))
	require.Equal(OK, enc.SetIV(iv))
	require.Equal(OK, dec.SetKey(key, 256))
	require.Equal(OK, dec.SetIV(iv))

	plaintext := []byte("salsa20 plaintext")
	ciphertext, ek := enc.Encrypt(plaintext)
	require.Equal(OK, ek)

	recovered, ek := dec.Decrypt(ciphertext)
	require.Equal(OK, ek)
	require.Equal(plaintext, recovered)
}

// TestShortIVRejected is scenario S4.
func TestShortIVRejected(t *testing.T) {
	require := require.New(t)

	var s Session
	require.Equal(OK, s.Init("aes-128-ctr", ModeEncrypt))
	defer s.Close()

	require.Equal(InvalidParam, s.SetIV(make([]byte, 8)))
	require.Equal(OK, s.SetIV(make([]byte, 16)))

	require.Equal(OK, s.SetKey(make([]byte, 16), 128))
	_, ek := s.Encrypt([]byte("0123456789abcdef"))
	require.Equal(OK, ek)
}

// TestCipherDisabled is scenario S5.
func TestCipherDisabled(t *testing.T) {
	var s Session
	require.Equal(t, OK, s.Init("aes-128-cbc", ModeEncrypt))
	defer s.Close()

	_, ek := s.Decrypt(make([]byte, 16))
	require.Equal(t, CipherDisabled, ek)
}

// TestNameResolutionPrecedence is scenario S6: lookup("chacha20") must
// return the CIPHER descriptor, not the Sodium one, when both resolve.
func TestNameResolutionPrecedence(t *testing.T) {
	d, ok := Lookup("chacha20")
	require.True(t, ok)
	require.Equal(t, Cipher, d.Method)
}

func TestAESCBCRoundTrip(t *testing.T) {
	require := require.New(t)

	var enc, dec Session
	require.Equal(OK, enc.Init("aes-128-cbc", ModeEncrypt))
	require.Equal(OK, dec.Init("aes-128-cbc", ModeDecrypt))
	defer enc.Close()
	defer dec.Close()

	key := make([]byte, 16)
	iv := make([]byte, 16)
	require.Equal(OK, enc.SetKey(key, 128))
	require.Equal(OK, enc.SetIV(iv))
	require.Equal(OK, dec.SetKey(key, 128))
	require.Equal(OK, dec.SetIV(iv))

	plaintext := []byte("this is not a multiple of 16 bytes")
	ciphertext, ek := enc.Encrypt(plaintext)
	require.Equal(OK, ek)
	require.Equal(0, len(ciphertext)%16)

	recovered, ek := dec.Decrypt(ciphertext)
	require.Equal(OK, ek)
	require.Equal(plaintext, recovered)
}

func TestSodiumChaCha20Poly1305OriginalRoundTrip(t *testing.T) {
	require := require.New(t)

	var enc, dec Session
	require.Equal(OK, enc.Init("chacha20-poly1305", ModeEncrypt))
	require.Equal(OK, dec.Init("chacha20-poly1305", ModeDecrypt))
	defer enc.Close()
	defer dec.Close()

	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	iv := make([]byte, 8)
	ad := []byte("associated")
	plaintext := []byte("the quick brown fox")

	require.Equal(OK, enc.SetKey(key, 256))
	require.Equal(OK, enc.SetIV(iv))
	ciphertext, tag, ek := enc.EncryptAEAD(plaintext, ad, 16)
	require.Equal(OK, ek)

	require.Equal(OK, dec.SetKey(key, 256))
	require.Equal(OK, dec.SetIV(iv))
	recovered, ek := dec.DecryptAEAD(ciphertext, ad, tag)
	require.Equal(OK, ek)
	require.Equal(plaintext, recovered)
}
