// session.go - the user-facing Cipher Session (spec.md §3, §4.3).
//
// Grounded on _examples/Yawning-hs1siv/hs1siv.go's struct-holds-context,
// methods-dispatch-on-state shape (adapted: that type owned one AEAD
// construction directly, this one owns a method-dependent union of
// contexts) and on the teacher's explicit state-kept-in-struct-fields
// style generally.
package symcipher

import "strings"

// ModeMask selects which directions a Session is usable for.
type ModeMask uint32

const (
	ModeEncrypt ModeMask = 1 << iota
	ModeDecrypt
)

// Session is the unified façade: one call surface over XXTEA, the
// generic (EVP/mbedTLS) back-end, and the Sodium-style back-end.
type Session struct {
	descriptor *Descriptor
	modeMask   ModeMask

	spec cipherSpec // valid when descriptor.Method == Cipher

	encCtx genericContext
	decCtx genericContext

	sodium    sodiumKey
	xxteaKey  xxteaKey
	haveXXKey bool

	iv        []byte
	keyBuffer []byte

	lastError int
}

// record stashes ek's ordinal as the back-end-native code readable via
// LastError, then returns ek unchanged — every public operation routes
// its result through this so spec.md §3/§4.3/§7's "writes a back-end-
// native integer into last_error" holds on every call, not just the ones
// that fail.
func (s *Session) record(ek ErrorKind) ErrorKind {
	s.lastError = int(ek)
	return ek
}

// Init transitions Empty -> Initialized. See spec.md §4.3.
func (s *Session) Init(name string, mode ModeMask) ErrorKind {
	if s.descriptor != nil {
		return s.record(AlreadyInited)
	}
	if strings.TrimSpace(name) == "" {
		return s.record(InvalidParam)
	}
	if mode&(ModeEncrypt|ModeDecrypt) == 0 {
		return s.record(InvalidParam)
	}
	d, ok := Lookup(name)
	if !ok {
		return s.record(CipherNotSupport)
	}
	spec, ok := resolveBackend(d)
	if !ok {
		return s.record(CipherNotSupport)
	}

	s.descriptor = d
	s.modeMask = mode
	s.spec = spec

	if d.Method == Cipher {
		adapter := activeGenericAdapter()
		if mode&ModeEncrypt != 0 {
			ctx, ek := adapter.newContext(spec, dirEncrypt)
			if ek != OK {
				s.Close()
				return s.record(ek)
			}
			s.encCtx = ctx
		}
		if mode&ModeDecrypt != 0 {
			ctx, ek := adapter.newContext(spec, dirDecrypt)
			if ek != OK {
				s.Close()
				return s.record(ek)
			}
			s.decCtx = ctx
		}
	}
	return s.record(OK)
}

// Close releases contexts and resets the IV; idempotent against double
// close (reports NotInited, otherwise harmless).
func (s *Session) Close() ErrorKind {
	if s.descriptor == nil {
		return s.record(NotInited)
	}
	if s.encCtx != nil {
		s.encCtx.Destroy()
	}
	if s.decCtx != nil {
		s.decCtx.Destroy()
	}
	*s = Session{lastError: s.lastError}
	return s.record(OK)
}

func (s *Session) IsAEAD() bool {
	return s.descriptor != nil && s.descriptor.Flags.Has(FlagAEAD)
}

func (s *Session) IVSize() uint32 {
	if s.descriptor == nil {
		return 0
	}
	switch s.descriptor.Method {
	case XXTEA:
		return 0
	case Cipher:
		return uint32(s.spec.ivBytes)
	default:
		return uint32(sodiumIVSize(s.descriptor.Method))
	}
}

func (s *Session) KeyBits() uint32 {
	if s.descriptor == nil {
		return 0
	}
	switch s.descriptor.Method {
	case XXTEA:
		return 128
	case Cipher:
		return uint32(s.spec.keyBytes * 8)
	default:
		return 256
	}
}

func (s *Session) BlockSize() uint32 {
	if s.descriptor == nil {
		return 0
	}
	switch s.descriptor.Method {
	case XXTEA:
		return 4
	case Cipher:
		return uint32(s.spec.blockSize)
	default:
		return 1
	}
}

// SetKey stores key material. For CIPHER, key_bits shorter than required
// fails INVALID_PARAM; longer is truncated. For XXTEA/Sodium, storing
// always succeeds for these in-process methods (spec.md §4.3).
func (s *Session) SetKey(key []byte, keyBits uint32) ErrorKind {
	if s.descriptor == nil {
		return s.record(NotInited)
	}
	switch s.descriptor.Method {
	case XXTEA:
		var buf [16]byte
		n := int(keyBits) / 8
		if n > len(key) {
			n = len(key)
		}
		copy(buf[:], key[:n])
		s.xxteaKey = newXXTEAKey(buf[:])
		s.haveXXKey = true
		return s.record(OK)

	case Cipher:
		if int(keyBits) < s.spec.keyBytes*8 {
			return s.record(InvalidParam)
		}
		n := s.spec.keyBytes
		if len(key) < n {
			return s.record(InvalidParam)
		}
		s.keyBuffer = append([]byte{}, key[:n]...)
		if s.encCtx != nil {
			if ek := s.encCtx.SetKey(s.keyBuffer); ek != OK {
				return s.record(ek)
			}
		}
		if s.decCtx != nil {
			if ek := s.decCtx.SetKey(s.keyBuffer); ek != OK {
				return s.record(ek)
			}
		}
		return s.record(OK)

	default:
		n := int(keyBits) / 8
		if n > len(key) {
			n = len(key)
		}
		if n > 32 {
			n = 32
		}
		s.sodium = newSodiumContext(s.descriptor.Method, key[:n])
		return s.record(OK)
	}
}

// SetIV stores the IV verbatim, zero-padding is deferred to
// encrypt/decrypt per spec.md.
func (s *Session) SetIV(iv []byte) ErrorKind {
	if s.descriptor == nil {
		return s.record(NotInited)
	}
	if !s.descriptor.Flags.Has(FlagVariableIVLen) && uint32(len(iv)) != s.IVSize() {
		return s.record(InvalidParam)
	}
	s.iv = append([]byte{}, iv...)
	return s.record(OK)
}

func (s *Session) ClearIV() {
	s.iv = nil
}

func (s *Session) effectiveIV() []byte {
	want := int(s.IVSize())
	if s.descriptor.Flags.Has(FlagVariableIVLen) {
		return s.iv
	}
	if len(s.iv) >= want {
		return s.iv[:want]
	}
	padded := make([]byte, want)
	copy(padded, s.iv)
	return padded
}

// Encrypt runs a non-AEAD encrypt over the whole buffer.
func (s *Session) Encrypt(in []byte) ([]byte, ErrorKind) {
	return s.crypt(in, true)
}

// Decrypt runs a non-AEAD decrypt over the whole buffer.
func (s *Session) Decrypt(in []byte) ([]byte, ErrorKind) {
	return s.crypt(in, false)
}

func (s *Session) crypt(in []byte, encrypt bool) ([]byte, ErrorKind) {
	if s.descriptor == nil {
		return nil, s.record(NotInited)
	}
	if s.IsAEAD() {
		return nil, s.record(MustCallAEADAPI)
	}

	iv := s.effectiveIV()
	noPadding := false
	if encrypt && s.descriptor.Flags.Has(FlagEncryptNoPadding) {
		noPadding = true
	}
	if !encrypt && s.descriptor.Flags.Has(FlagDecryptNoPadding) {
		noPadding = true
	}

	switch s.descriptor.Method {
	case XXTEA:
		if !s.haveXXKey {
			return nil, s.record(CipherOperation)
		}
		if !xxteaValid(in) {
			return nil, s.record(InvalidParam)
		}
		if encrypt {
			return s.xxteaKey.encrypt(in), s.record(OK)
		}
		return s.xxteaKey.decrypt(in), s.record(OK)

	case Cipher:
		ctx := s.decCtx
		if encrypt {
			ctx = s.encCtx
		}
		if ctx == nil {
			return nil, s.record(CipherDisabled)
		}
		if ek := ctx.SetIV(iv); ek != OK {
			return nil, s.record(ek)
		}
		out, ek := ctx.Crypt(in, noPadding)
		return out, s.record(ek)

	default:
		if !isSodiumStreamMethod(s.descriptor.Method) {
			return nil, s.record(CipherOperation)
		}
		out, ek := s.sodium.crypt(iv, in)
		return out, s.record(ek)
	}
}

// EncryptAEAD / DecryptAEAD run detached-tag AEAD (spec.md §6).
func (s *Session) EncryptAEAD(in, ad []byte, tagLen int) (ciphertext, tag []byte, ek ErrorKind) {
	if s.descriptor == nil {
		return nil, nil, s.record(NotInited)
	}
	if !s.IsAEAD() {
		return nil, nil, s.record(MustNotCallAEADAPI)
	}
	iv := s.effectiveIV()

	switch s.descriptor.Method {
	case Cipher:
		if s.encCtx == nil {
			return nil, nil, s.record(CipherDisabled)
		}
		if ek := s.encCtx.SetIV(iv); ek != OK {
			return nil, nil, s.record(ek)
		}
		ciphertext, tag, ek = s.encCtx.SealAEAD(in, ad)
		return ciphertext, tag, s.record(ek)

	default:
		if !isSodiumAEADMethod(s.descriptor.Method) {
			return nil, nil, s.record(CipherOperation)
		}
		if tagLen > 0 && tagLen < 16 {
			return nil, nil, s.record(SodiumOperationTagLen)
		}
		ciphertext, tag, ek = s.sodium.seal(iv, ad, in)
		return ciphertext, tag, s.record(ek)
	}
}

func (s *Session) DecryptAEAD(in, ad, tag []byte) ([]byte, ErrorKind) {
	if s.descriptor == nil {
		return nil, s.record(NotInited)
	}
	if !s.IsAEAD() {
		return nil, s.record(MustNotCallAEADAPI)
	}
	iv := s.effectiveIV()

	switch s.descriptor.Method {
	case Cipher:
		if s.decCtx == nil {
			return nil, s.record(CipherDisabled)
		}
		if ek := s.decCtx.SetIV(iv); ek != OK {
			return nil, s.record(ek)
		}
		out, ek := s.decCtx.OpenAEAD(in, ad, tag)
		return out, s.record(ek)

	default:
		if !isSodiumAEADMethod(s.descriptor.Method) {
			return nil, s.record(CipherOperation)
		}
		if len(tag) < 16 {
			return nil, s.record(SodiumOperationTagLen)
		}
		out, ek := s.sodium.open(iv, ad, in, tag)
		return out, s.record(ek)
	}
}

func (s *Session) LastError() int { return s.lastError }
