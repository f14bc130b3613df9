// backend_sodium.go - the Sodium-style stream/AEAD back-end.
//
// Grounded on _examples/Yawning-hs1siv's general shape of wrapping
// third-party stream-cipher packages behind small value-typed adapters,
// and on other_examples/a3ee52c5_caddyserver-caddy…chacha.go.go (the
// aead/chacha20/chacha package: 64-bit-nonce original ChaCha20 with an
// explicit SetCounter) and other_examples/tmthrgd-chacha20poly1305's
// auth() construction (the non-IETF Poly1305 tag: data ‖ len(data) ‖
// ciphertext ‖ len(ciphertext), all 8-byte little-endian, no padding —
// draft-agl-tls-chacha20poly1305-03, which is what libsodium's original
// crypto_aead_chacha20poly1305_* uses).
//
// Unlike the evp/mbedtls adapters, Sodium contexts are value-typed: just
// the key, per spec.md §3's "Contexts are value-typed (just hold the
// key)". There's no SetIV call at all; the IV is passed directly to each
// Crypt/Seal/Open call.
package symcipher

import (
	"crypto/cipher"
	"crypto/subtle"
	"encoding/binary"

	"github.com/aead/chacha20/chacha"
	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/poly1305"
	"golang.org/x/crypto/salsa20/salsa"
)

// sodiumKey is the value-typed context every Sodium-style method shares;
// it never outlives a single Session's key material.
type sodiumKey struct {
	method Method
	key    []byte
}

func newSodiumContext(method Method, key []byte) sodiumKey {
	return sodiumKey{method: method, key: append([]byte{}, key...)}
}

// splitCounterNonce decodes the counter‖nonce IV layout from spec.md §6:
// an 8-byte little-endian counter followed by the algorithm's nonce.
func splitCounterNonce(iv []byte, nonceSize int) (counter uint64, nonce []byte, ek ErrorKind) {
	if len(iv) != 8+nonceSize {
		return 0, nil, InvalidParam
	}
	return binary.LittleEndian.Uint64(iv[:8]), iv[8:], OK
}

func (k sodiumKey) crypt(iv, in []byte) ([]byte, ErrorKind) {
	out := make([]byte, len(in))
	switch k.method {
	case SodiumChaCha20:
		counter, nonce, ek := splitCounterNonce(iv, chacha.NonceSize)
		if ek != OK {
			return nil, ek
		}
		c, err := chacha.NewCipher(nonce, k.key, 20)
		if err != nil {
			return nil, InvalidParam
		}
		c.SetCounter(counter)
		c.XORKeyStream(out, in)
		return out, OK

	case SodiumChaCha20IETF:
		counter, nonce, ek := splitCounterNonce(iv, chacha20.NonceSize)
		if ek != OK {
			return nil, ek
		}
		c, err := chacha20.NewUnauthenticatedCipher(k.key, nonce)
		if err != nil {
			return nil, InvalidParam
		}
		c.SetCounter(uint32(counter))
		c.XORKeyStream(out, in)
		return out, OK

	case SodiumXChaCha20:
		counter, nonce, ek := splitCounterNonce(iv, chacha20.NonceSizeX)
		if ek != OK {
			return nil, ek
		}
		c, err := chacha20.NewUnauthenticatedCipher(k.key, nonce)
		if err != nil {
			return nil, InvalidParam
		}
		c.SetCounter(uint32(counter))
		c.XORKeyStream(out, in)
		return out, OK

	case SodiumSalsa20:
		counter, nonce, ek := splitCounterNonce(iv, 8)
		if ek != OK {
			return nil, ek
		}
		var state [16]byte
		copy(state[:8], nonce)
		binary.LittleEndian.PutUint64(state[8:], counter)
		var key32 [32]byte
		copy(key32[:], k.key)
		salsa.XORKeyStream(out, in, &state, &key32)
		return out, OK

	case SodiumXSalsa20:
		counter, nonce, ek := splitCounterNonce(iv, 24)
		if ek != OK {
			return nil, ek
		}
		var hNonce [16]byte
		copy(hNonce[:], nonce[:16])
		var key32, subKey [32]byte
		copy(key32[:], k.key)
		salsa.HSalsa20(&subKey, &hNonce, &key32, &salsa.Sigma)

		var state [16]byte
		copy(state[:8], nonce[16:24])
		binary.LittleEndian.PutUint64(state[8:], counter)
		salsa.XORKeyStream(out, in, &state, &subKey)
		return out, OK
	}
	return nil, CipherNotSupport
}

func (k sodiumKey) seal(iv, ad, plaintext []byte) (ciphertext, tag []byte, ek ErrorKind) {
	switch k.method {
	case SodiumChaCha20Poly1305:
		return k.sealOriginal(iv, ad, plaintext)
	case SodiumChaCha20Poly1305IETF:
		return sealStdAEAD(chacha20poly1305.New, k.key, iv, ad, plaintext)
	case SodiumXChaCha20Poly1305IETF:
		return sealStdAEAD(chacha20poly1305.NewX, k.key, iv, ad, plaintext)
	}
	return nil, nil, CipherNotSupport
}

func (k sodiumKey) open(iv, ad, ciphertext, tag []byte) ([]byte, ErrorKind) {
	switch k.method {
	case SodiumChaCha20Poly1305:
		return k.openOriginal(iv, ad, ciphertext, tag)
	case SodiumChaCha20Poly1305IETF:
		return openStdAEAD(chacha20poly1305.New, k.key, iv, ad, ciphertext, tag)
	case SodiumXChaCha20Poly1305IETF:
		return openStdAEAD(chacha20poly1305.NewX, k.key, iv, ad, ciphertext, tag)
	}
	return nil, CipherNotSupport
}

func sealStdAEAD(newAEAD func([]byte) (cipher.AEAD, error), key, iv, ad, plaintext []byte) ([]byte, []byte, ErrorKind) {
	aead, err := newAEAD(key)
	if err != nil || len(iv) != aead.NonceSize() {
		return nil, nil, InvalidParam
	}
	out := aead.Seal(nil, iv, plaintext, ad)
	n := len(out) - aead.Overhead()
	return out[:n], out[n:], OK
}

func openStdAEAD(newAEAD func([]byte) (cipher.AEAD, error), key, iv, ad, ciphertext, tag []byte) ([]byte, ErrorKind) {
	aead, err := newAEAD(key)
	if err != nil || len(iv) != aead.NonceSize() || len(tag) != aead.Overhead() {
		return nil, InvalidParam
	}
	combined := append(append([]byte{}, ciphertext...), tag...)
	pt, err := aead.Open(nil, iv, combined, ad)
	if err != nil {
		return nil, SodiumOperation
	}
	return pt, OK
}

// sealOriginal implements libsodium's original (non-IETF)
// crypto_aead_chacha20poly1305 construction: an 8-byte nonce, ChaCha20
// block zero donates the one-time Poly1305 key, and the tag covers
// ad ‖ len(ad) ‖ ciphertext ‖ len(ciphertext) with no padding.
func (k sodiumKey) sealOriginal(iv, ad, plaintext []byte) ([]byte, []byte, ErrorKind) {
	if len(iv) != chacha.NonceSize {
		return nil, nil, InvalidParam
	}
	c, err := chacha.NewCipher(iv, k.key, 20)
	if err != nil {
		return nil, nil, InvalidParam
	}
	var block0 [64]byte
	c.XORKeyStream(block0[:], block0[:])

	ciphertext := make([]byte, len(plaintext))
	c.XORKeyStream(ciphertext, plaintext)

	var polyKey [32]byte
	copy(polyKey[:], block0[:32])
	tag := polyMAC(polyKey, ad, ciphertext)
	return ciphertext, tag, OK
}

func (k sodiumKey) openOriginal(iv, ad, ciphertext, tag []byte) ([]byte, ErrorKind) {
	if len(iv) != chacha.NonceSize || len(tag) != 16 {
		return nil, InvalidParam
	}
	c, err := chacha.NewCipher(iv, k.key, 20)
	if err != nil {
		return nil, InvalidParam
	}
	var block0 [64]byte
	c.XORKeyStream(block0[:], block0[:])

	var polyKey [32]byte
	copy(polyKey[:], block0[:32])
	expected := polyMAC(polyKey, ad, ciphertext)
	if subtle.ConstantTimeCompare(expected, tag) != 1 {
		return nil, SodiumOperation
	}

	plaintext := make([]byte, len(ciphertext))
	c.XORKeyStream(plaintext, ciphertext)
	return plaintext, OK
}

func polyMAC(key [32]byte, ad, ciphertext []byte) []byte {
	buf := make([]byte, 0, len(ad)+len(ciphertext)+16)
	buf = append(buf, ad...)
	buf = appendUint64LE(buf, uint64(len(ad)))
	buf = append(buf, ciphertext...)
	buf = appendUint64LE(buf, uint64(len(ciphertext)))

	var out [16]byte
	poly1305.Sum(&out, buf, &key)
	return out[:]
}

func appendUint64LE(b []byte, v uint64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return append(b, tmp[:]...)
}

// sodiumIVSize returns the plain-nonce length (no counter prefix) an
// AEAD Sodium method expects as its IV, and the counter-prefixed IV size
// a Sodium stream method expects, per spec.md §4.3/§6.
func sodiumIVSize(m Method) int {
	switch m {
	case SodiumChaCha20:
		return 8 + chacha.NonceSize
	case SodiumChaCha20IETF:
		return 8 + chacha20.NonceSize
	case SodiumXChaCha20:
		return 8 + chacha20.NonceSizeX
	case SodiumSalsa20:
		return 8 + 8
	case SodiumXSalsa20:
		return 8 + 24
	case SodiumChaCha20Poly1305:
		return chacha.NonceSize
	case SodiumChaCha20Poly1305IETF:
		return chacha20poly1305.NonceSize
	case SodiumXChaCha20Poly1305IETF:
		return chacha20poly1305.NonceSizeX
	}
	return 0
}

func isSodiumAEADMethod(m Method) bool {
	switch m {
	case SodiumChaCha20Poly1305, SodiumChaCha20Poly1305IETF, SodiumXChaCha20Poly1305IETF:
		return true
	}
	return false
}

func isSodiumStreamMethod(m Method) bool {
	switch m {
	case SodiumChaCha20, SodiumChaCha20IETF, SodiumXChaCha20, SodiumSalsa20, SodiumXSalsa20:
		return true
	}
	return false
}
