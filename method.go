// method.go - dispatch method and flag vocabulary
package symcipher

// Method names the dispatch strategy a Descriptor uses.
type Method int

const (
	// Invalid marks a descriptor that failed to resolve; never returned
	// by Lookup.
	Invalid Method = iota
	// XXTEA dispatches to the self-contained XXTEA block cipher.
	XXTEA
	// Cipher dispatches to whichever generic back-end (evp or mbedtls)
	// resolved the descriptor's back-end name.
	Cipher
	// SodiumChaCha20 is the original (64-bit nonce, 64-bit counter)
	// ChaCha20 stream.
	SodiumChaCha20
	// SodiumChaCha20IETF is the RFC 7539 (96-bit nonce, 32-bit counter)
	// ChaCha20 stream.
	SodiumChaCha20IETF
	// SodiumXChaCha20 is the extended-nonce (192-bit) ChaCha20 stream.
	SodiumXChaCha20
	// SodiumSalsa20 is the original (64-bit nonce) Salsa20 stream.
	SodiumSalsa20
	// SodiumXSalsa20 is the extended-nonce (192-bit) Salsa20 stream.
	SodiumXSalsa20
	// SodiumChaCha20Poly1305 is the original (64-bit nonce) AEAD
	// construction.
	SodiumChaCha20Poly1305
	// SodiumChaCha20Poly1305IETF is the RFC 7539 (96-bit nonce) AEAD
	// construction.
	SodiumChaCha20Poly1305IETF
	// SodiumXChaCha20Poly1305IETF is the extended-nonce (192-bit) AEAD
	// construction.
	SodiumXChaCha20Poly1305IETF
)

// Flags is a bit set describing padding/AEAD/IV variability for a
// Descriptor.
type Flags uint32

const (
	// FlagNoFinish omits the back-end's finalization step, returning only
	// the update output. No entry in registryTable sets it, and the
	// one-shot adapters have no separate finalization step.
	FlagNoFinish Flags = 1 << iota
	// FlagAEAD marks an authenticated-encryption descriptor; non-AEAD
	// calls on it are rejected.
	FlagAEAD
	// FlagVariableIVLen marks a descriptor whose IV/nonce length is not
	// fixed by the algorithm (typically AEAD ciphers that let the caller
	// pick a nonce length within back-end limits).
	FlagVariableIVLen
	// FlagAEADSetLengthBefore requires a length-announcement update call
	// before any plaintext/ciphertext update (some AEAD EVP ciphers need
	// this to finalize additional-data handling).
	FlagAEADSetLengthBefore
	// FlagDecryptNoPadding disables the back-end's automatic padding
	// removal on decrypt.
	FlagDecryptNoPadding
	// FlagEncryptNoPadding disables the back-end's automatic padding
	// addition on encrypt.
	FlagEncryptNoPadding
)

// Has reports whether f contains every bit in mask.
func (f Flags) Has(mask Flags) bool {
	return f&mask == mask
}
