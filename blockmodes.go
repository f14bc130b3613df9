// blockmodes.go - block-mode helpers shared by the evp and mbedtls
// adapters. crypto/cipher has no ECB mode (deliberately, it's unsafe for
// general use) so one is hand-rolled here the way most Go cipher-suite
// implementations in this space do (e.g. the shadowsocks/Clash cipher
// tables wrap cipher.Block directly per mode); every other mode below is
// the stdlib's own CBC/CFB/CTR/GCM.
package symcipher

import "crypto/cipher"

type ecbEncrypter struct{ b cipher.Block }
type ecbDecrypter struct{ b cipher.Block }

func newECBEncrypter(b cipher.Block) cipher.BlockMode { return ecbEncrypter{b} }
func newECBDecrypter(b cipher.Block) cipher.BlockMode { return ecbDecrypter{b} }

func (x ecbEncrypter) BlockSize() int { return x.b.BlockSize() }
func (x ecbEncrypter) CryptBlocks(dst, src []byte) {
	bs := x.b.BlockSize()
	for len(src) > 0 {
		x.b.Encrypt(dst, src[:bs])
		src = src[bs:]
		dst = dst[bs:]
	}
}

func (x ecbDecrypter) BlockSize() int { return x.b.BlockSize() }
func (x ecbDecrypter) CryptBlocks(dst, src []byte) {
	bs := x.b.BlockSize()
	for len(src) > 0 {
		x.b.Decrypt(dst, src[:bs])
		src = src[bs:]
		dst = dst[bs:]
	}
}

// pkcs7Pad appends PKCS#7 padding to a multiple of blockSize.
func pkcs7Pad(in []byte, blockSize int) []byte {
	n := blockSize - len(in)%blockSize
	out := make([]byte, len(in)+n)
	copy(out, in)
	for i := len(in); i < len(out); i++ {
		out[i] = byte(n)
	}
	return out
}

// pkcs7Unpad strips and validates PKCS#7 padding.
func pkcs7Unpad(in []byte, blockSize int) ([]byte, bool) {
	if len(in) == 0 || len(in)%blockSize != 0 {
		return nil, false
	}
	n := int(in[len(in)-1])
	if n == 0 || n > blockSize || n > len(in) {
		return nil, false
	}
	for _, b := range in[len(in)-n:] {
		if int(b) != n {
			return nil, false
		}
	}
	return in[:len(in)-n], true
}
