// xxtea_test.go - round-trip tests for the XXTEA primitive, including
// buffers past the 208-byte cap the reference implementation enforced
// (see xxtea.go's grounding note).
package symcipher

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestXXTEARoundTrip(t *testing.T) {
	require := require.New(t)

	key := make([]byte, 16)
	for i := range key {
		key[i] = byte(i * 7)
	}
	k := newXXTEAKey(key)

	for _, size := range []int{8, 12, 32, 64, 208, 212, 1024} {
		plaintext := make([]byte, size)
		for i := range plaintext {
			plaintext[i] = byte(255 & (i*197 + 123))
		}
		ciphertext := k.encrypt(plaintext)
		require.Len(ciphertext, size)
		require.NotEqual(plaintext, ciphertext)

		decrypted := k.decrypt(ciphertext)
		require.Equal(plaintext, decrypted)
	}
}

func TestXXTEAValid(t *testing.T) {
	require := require.New(t)

	require.True(xxteaValid(make([]byte, 8)))
	require.True(xxteaValid(make([]byte, 1024)))
	require.False(xxteaValid(make([]byte, 7)))
	require.False(xxteaValid(make([]byte, 10)))
	require.False(xxteaValid(nil))
}

func TestXXTEASessionRoundTrip(t *testing.T) {
	require := require.New(t)

	var enc, dec Session
	require.Equal(OK, enc.Init("xxtea", ModeEncrypt))
	require.Equal(OK, dec.Init("xxtea", ModeDecrypt))
	defer enc.Close()
	defer dec.Close()

	key := make([]byte, 16)
	for i := range key {
		key[i] = byte(i * 11)
	}
	require.Equal(OK, enc.SetKey(key, 128))
	require.Equal(OK, dec.SetKey(key, 128))

	require.EqualValues(4, enc.BlockSize())
	require.EqualValues(128, enc.KeyBits())
	require.EqualValues(0, enc.IVSize())

	plaintext := []byte("01234567")
	ciphertext, ek := enc.Encrypt(plaintext)
	require.Equal(OK, ek)

	recovered, ek := dec.Decrypt(ciphertext)
	require.Equal(OK, ek)
	require.Equal(plaintext, recovered)
}
