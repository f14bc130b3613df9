// cipherspec.go - per-algorithm metadata and one-shot crypto for the
// stdlib-backed ciphers shared by the evp and mbedtls adapters. Grounded
// on other_examples/48a122ce_Jigsaw-Code-outline-sdk…cipher.go.go's
// aeadSpec table (name -> constructor + sizes) and
// other_examples/cc7ef9b3_dapr-kit__crypto-symmetric.go.go's per-algorithm
// switch functions; unified here because the evp and mbedtls adapters
// differ only in context lifecycle (backend_evp.go, backend_mbedtls.go),
// not in the underlying cryptography.
package symcipher

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/des"
	"crypto/rc4"
	"errors"

	"github.com/dgryski/go-camellia"
	"golang.org/x/crypto/blowfish"
	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/chacha20poly1305"
)

// ErrUnsupportedMode is an internal sentinel for a cipherSpec whose mode
// has no generic-AEAD constructor; it never reaches a caller because every
// mode value in evpCipherTable is handled.
var ErrUnsupportedMode = errors.New("symcipher: unsupported mode")

type cipherMode int

const (
	modeCBC cipherMode = iota
	modeCFB
	modeCTR
	modeECB
	modeGCM
	modeStreamRC4
	modeStreamChaCha20
	modeAEADChaCha20Poly1305
)

type cipherSpec struct {
	keyBytes  int
	ivBytes   int // required IV/nonce length; 0 if the cipher takes none
	blockSize int
	mode      cipherMode
	newBlock  func(key []byte) (cipher.Block, error)
}

// evpCipherTable holds every algorithm the evp adapter supports. mbedtls
// uses the subset named in mbedtlsNames (below).
var evpCipherTable = map[string]cipherSpec{
	"aes-128-cbc": {16, 16, 16, modeCBC, aes.NewCipher},
	"aes-192-cbc": {24, 16, 16, modeCBC, aes.NewCipher},
	"aes-256-cbc": {32, 16, 16, modeCBC, aes.NewCipher},
	"aes-128-cfb": {16, 16, 16, modeCFB, aes.NewCipher},
	"aes-192-cfb": {24, 16, 16, modeCFB, aes.NewCipher},
	"aes-256-cfb": {32, 16, 16, modeCFB, aes.NewCipher},
	"aes-128-ctr": {16, 16, 16, modeCTR, aes.NewCipher},
	"aes-192-ctr": {24, 16, 16, modeCTR, aes.NewCipher},
	"aes-256-ctr": {32, 16, 16, modeCTR, aes.NewCipher},
	"aes-128-ecb": {16, 0, 16, modeECB, aes.NewCipher},
	"aes-192-ecb": {24, 0, 16, modeECB, aes.NewCipher},
	"aes-256-ecb": {32, 0, 16, modeECB, aes.NewCipher},
	"aes-128-gcm": {16, 12, 16, modeGCM, aes.NewCipher},
	"aes-192-gcm": {24, 12, 16, modeGCM, aes.NewCipher},
	"aes-256-gcm": {32, 12, 16, modeGCM, aes.NewCipher},

	"des-ecb":      {8, 0, 8, modeECB, des.NewCipher},
	"des-cbc":      {8, 8, 8, modeCBC, des.NewCipher},
	"des-ede":      {16, 0, 8, modeECB, newDESede},
	"des-ede-cbc":  {16, 8, 8, modeCBC, newDESede},
	"des-ede3":     {24, 0, 8, modeECB, des.NewTripleDESCipher},
	"des-ede3-cbc": {24, 8, 8, modeCBC, des.NewTripleDESCipher},

	"bf-cbc": {16, 8, 8, modeCBC, newBlowfish},
	"bf-cfb": {16, 8, 8, modeCFB, newBlowfish},

	"camellia-128-cfb": {16, 16, 16, modeCFB, newCamellia},
	"camellia-192-cfb": {24, 16, 16, modeCFB, newCamellia},
	"camellia-256-cfb": {32, 16, 16, modeCFB, newCamellia},

	"rc4": {16, 0, 1, modeStreamRC4, nil},

	// chacha20 as a generic-engine cipher (OpenSSL's EVP_chacha20
	// convention: a 16-byte IV = 4-byte LE block counter || 12-byte
	// nonce).
	"chacha20": {32, 16, 1, modeStreamChaCha20, nil},

	"chacha20-poly1305": {32, 12, 1, modeAEADChaCha20Poly1305, nil},
}

// mbedtlsNames is the deliberately smaller algorithm subset the mbedtls
// adapter resolves (see DESIGN.md): AES family, RC4, and the IETF
// ChaCha20-Poly1305 AEAD.
var mbedtlsNames = map[string]bool{
	"aes-128-cbc": true, "aes-192-cbc": true, "aes-256-cbc": true,
	"aes-128-cfb": true, "aes-192-cfb": true, "aes-256-cfb": true,
	"aes-128-ctr": true, "aes-192-ctr": true, "aes-256-ctr": true,
	"aes-128-ecb": true, "aes-192-ecb": true, "aes-256-ecb": true,
	"aes-128-gcm": true, "aes-192-gcm": true, "aes-256-gcm": true,
	"rc4":               true,
	"chacha20-poly1305": true,
}

func newDESede(key []byte) (cipher.Block, error) {
	if len(key) != 16 {
		return nil, des.KeySizeError(len(key))
	}
	full := make([]byte, 24)
	copy(full, key)
	copy(full[16:], key[:8])
	return des.NewTripleDESCipher(full)
}

func newCamellia(key []byte) (cipher.Block, error) {
	return camellia.New(key)
}

func newBlowfish(key []byte) (cipher.Block, error) {
	return blowfish.NewCipher(key)
}

// cryptBlockMode runs CBC/CFB/CTR/ECB in either direction over the whole
// buffer in one call, applying PKCS#7 padding unless noPadding is set.
func cryptBlockMode(spec cipherSpec, encrypt bool, key, iv, in []byte, noPadding bool) ([]byte, ErrorKind) {
	block, err := spec.newBlock(key)
	if err != nil {
		return nil, InvalidParam
	}

	switch spec.mode {
	case modeCFB:
		out := make([]byte, len(in))
		var stream cipher.Stream
		if encrypt {
			stream = cipher.NewCFBEncrypter(block, iv)
		} else {
			stream = cipher.NewCFBDecrypter(block, iv)
		}
		stream.XORKeyStream(out, in)
		return out, OK
	case modeCTR:
		out := make([]byte, len(in))
		cipher.NewCTR(block, iv).XORKeyStream(out, in)
		return out, OK
	case modeCBC, modeECB:
		bs := spec.blockSize
		payload := in
		if encrypt {
			if !noPadding {
				payload = pkcs7Pad(in, bs)
			} else if len(payload)%bs != 0 {
				return nil, InvalidParam
			}
			out := make([]byte, len(payload))
			var bm cipher.BlockMode
			if spec.mode == modeCBC {
				bm = cipher.NewCBCEncrypter(block, iv)
			} else {
				bm = newECBEncrypter(block)
			}
			bm.CryptBlocks(out, payload)
			return out, OK
		}
		if len(payload)%bs != 0 {
			return nil, InvalidParam
		}
		out := make([]byte, len(payload))
		var bm cipher.BlockMode
		if spec.mode == modeCBC {
			bm = cipher.NewCBCDecrypter(block, iv)
		} else {
			bm = newECBDecrypter(block)
		}
		bm.CryptBlocks(out, payload)
		if !noPadding {
			unpadded, ok := pkcs7Unpad(out, bs)
			if !ok {
				return nil, CipherOperation
			}
			return unpadded, OK
		}
		return out, OK
	}
	return nil, CipherOperation
}

// cryptStream runs rc4 or the generic chacha20 stream in either direction.
func cryptStream(spec cipherSpec, key, iv, in []byte) ([]byte, ErrorKind) {
	switch spec.mode {
	case modeStreamRC4:
		c, err := rc4.NewCipher(key)
		if err != nil {
			return nil, InvalidParam
		}
		out := make([]byte, len(in))
		c.XORKeyStream(out, in)
		return out, OK
	case modeStreamChaCha20:
		if len(iv) != 16 {
			return nil, InvalidParam
		}
		counter := leUint32(iv[:4])
		c, err := chacha20.NewUnauthenticatedCipher(key, iv[4:])
		if err != nil {
			return nil, InvalidParam
		}
		c.SetCounter(counter)
		out := make([]byte, len(in))
		c.XORKeyStream(out, in)
		return out, OK
	}
	return nil, CipherOperation
}

// aeadSealGeneric/aeadOpenGeneric handle the generic-engine AEAD entries
// (aes-*-gcm, chacha20-poly1305).
func aeadSealGeneric(spec cipherSpec, key, iv, ad, plaintext []byte) (ciphertext, tag []byte, ek ErrorKind) {
	aead, err := newGenericAEAD(spec, key)
	if err != nil {
		return nil, nil, InvalidParam
	}
	if len(iv) != aead.NonceSize() {
		return nil, nil, InvalidParam
	}
	out := aead.Seal(nil, iv, plaintext, ad)
	n := len(out) - aead.Overhead()
	return out[:n], out[n:], OK
}

func aeadOpenGeneric(spec cipherSpec, key, iv, ad, ciphertext, tag []byte) ([]byte, ErrorKind) {
	aead, err := newGenericAEAD(spec, key)
	if err != nil {
		return nil, InvalidParam
	}
	if len(iv) != aead.NonceSize() || len(tag) != aead.Overhead() {
		return nil, InvalidParam
	}
	combined := append(append([]byte{}, ciphertext...), tag...)
	pt, err := aead.Open(nil, iv, combined, ad)
	if err != nil {
		return nil, CipherOperation
	}
	return pt, OK
}

func newGenericAEAD(spec cipherSpec, key []byte) (cipher.AEAD, error) {
	switch spec.mode {
	case modeGCM:
		block, err := spec.newBlock(key)
		if err != nil {
			return nil, err
		}
		return cipher.NewGCM(block)
	case modeAEADChaCha20Poly1305:
		return chacha20poly1305.New(key)
	}
	return nil, ErrUnsupportedMode
}

func leUint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
