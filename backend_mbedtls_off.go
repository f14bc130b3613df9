// backend_mbedtls_off.go - mbedtls back-end excluded from this build.
//go:build no_mbedtls

package symcipher
