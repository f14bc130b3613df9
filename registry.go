// registry.go - the static, ordered algorithm table and its lookup.
//
// Grounded on other_examples/48a122ce_Jigsaw-Code-outline-sdk…cipher.go.go's
// name->spec table idiom, generalized to a linear ordered slice (rather
// than a map) so that duplicate canonical names resolve by table order
// the way the teacher's hwaccel.go resolves by probe order.
package symcipher

import "strings"

// Descriptor is an immutable, table-resident algorithm entry.
type Descriptor struct {
	Name    string
	AltName string
	Method  Method
	Flags   Flags
}

// backendName returns the name the generic adapter should resolve,
// preferring AltName when the canonical name differs from the back-end's
// own naming.
func (d *Descriptor) backendName() string {
	if d.AltName != "" {
		return d.AltName
	}
	return d.Name
}

// registryTable is scanned linearly; Lookup returns the first
// case-insensitive match. CIPHER entries for chacha20 and
// chacha20-poly1305-ietf are placed ahead of their Sodium-method
// namesakes so the generic back-end wins when both are compiled in —
// this ordering is part of the contract (spec.md §3).
var registryTable = []Descriptor{
	{Name: "xxtea", Method: XXTEA},

	{Name: "rc4", Method: Cipher},

	{Name: "aes-128-cfb", Method: Cipher},
	{Name: "aes-192-cfb", Method: Cipher},
	{Name: "aes-256-cfb", Method: Cipher},
	{Name: "aes-128-ctr", Method: Cipher},
	{Name: "aes-192-ctr", Method: Cipher},
	{Name: "aes-256-ctr", Method: Cipher},
	{Name: "aes-128-ecb", Method: Cipher, Flags: FlagEncryptNoPadding | FlagDecryptNoPadding},
	{Name: "aes-192-ecb", Method: Cipher, Flags: FlagEncryptNoPadding | FlagDecryptNoPadding},
	{Name: "aes-256-ecb", Method: Cipher, Flags: FlagEncryptNoPadding | FlagDecryptNoPadding},
	{Name: "aes-128-cbc", Method: Cipher},
	{Name: "aes-192-cbc", Method: Cipher},
	{Name: "aes-256-cbc", Method: Cipher},
	{Name: "aes-128-gcm", Method: Cipher, Flags: FlagAEAD | FlagVariableIVLen},
	{Name: "aes-192-gcm", Method: Cipher, Flags: FlagAEAD | FlagVariableIVLen},
	{Name: "aes-256-gcm", Method: Cipher, Flags: FlagAEAD | FlagVariableIVLen},

	{Name: "des-ecb", Method: Cipher, Flags: FlagEncryptNoPadding | FlagDecryptNoPadding},
	{Name: "des-cbc", Method: Cipher},
	{Name: "des-ede", Method: Cipher, Flags: FlagEncryptNoPadding | FlagDecryptNoPadding},
	{Name: "des-ede-cbc", Method: Cipher},
	{Name: "des-ede3", Method: Cipher, Flags: FlagEncryptNoPadding | FlagDecryptNoPadding},
	{Name: "des-ede3-cbc", Method: Cipher},

	{Name: "bf-cbc", Method: Cipher},
	{Name: "bf-cfb", Method: Cipher},

	{Name: "camellia-128-cfb", Method: Cipher},
	{Name: "camellia-192-cfb", Method: Cipher},
	{Name: "camellia-256-cfb", Method: Cipher},

	// Generic-engine chacha20/chacha20-poly1305-ietf: placed ahead of
	// their Sodium namesakes below.
	{Name: "chacha20", Method: Cipher},
	{Name: "chacha20-poly1305-ietf", AltName: "chacha20-poly1305", Method: Cipher, Flags: FlagAEAD | FlagVariableIVLen},

	{Name: "chacha20", Method: SodiumChaCha20},
	{Name: "chacha20-ietf", Method: SodiumChaCha20IETF},
	{Name: "xchacha20", Method: SodiumXChaCha20},
	{Name: "salsa20", Method: SodiumSalsa20},
	{Name: "xsalsa20", Method: SodiumXSalsa20},

	{Name: "chacha20-poly1305", Method: SodiumChaCha20Poly1305, Flags: FlagAEAD},
	{Name: "chacha20-poly1305-ietf", Method: SodiumChaCha20Poly1305IETF, Flags: FlagAEAD},
	{Name: "xchacha20-poly1305-ietf", Method: SodiumXChaCha20Poly1305IETF, Flags: FlagAEAD},
}

// Lookup resolves a canonical name to its first case-insensitive match in
// table order. It does not check whether the match's back-end is
// actually compiled in — that's resolveBackend's job, called from
// Session.Init.
func Lookup(name string) (*Descriptor, bool) {
	lower := strings.ToLower(name)
	for i := range registryTable {
		if strings.ToLower(registryTable[i].Name) == lower {
			return &registryTable[i], true
		}
	}
	return nil, false
}

// resolveBackend reports whether d's method is serviceable in this
// build, and for CIPHER descriptors returns the resolved cipherSpec.
func resolveBackend(d *Descriptor) (cipherSpec, bool) {
	switch d.Method {
	case XXTEA:
		return cipherSpec{}, true
	case Cipher:
		adapter := activeGenericAdapter()
		if adapter == nil {
			return cipherSpec{}, false
		}
		return adapter.supports(d.backendName())
	default:
		if !IsBackendCompiled(backendSodium) {
			return cipherSpec{}, false
		}
		return cipherSpec{}, true
	}
}

// ListAvailable enumerates canonical names whose back-end resolves in
// the current build, in registry order. Duplicate canonical names that
// both resolve (e.g. chacha20 as CIPHER and as SODIUM_CHACHA20) appear
// once each, since list_available enumerates entries, not names.
func ListAvailable() []string {
	var out []string
	for i := range registryTable {
		if _, ok := resolveBackend(&registryTable[i]); ok {
			out = append(out, registryTable[i].Name)
		}
	}
	return out
}
