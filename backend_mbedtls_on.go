// backend_mbedtls_on.go - mbedtls back-end compiled in (default).
//go:build !no_mbedtls

package symcipher

func init() { mbedtlsAvailable = true }
