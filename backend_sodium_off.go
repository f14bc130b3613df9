// backend_sodium_off.go - sodium back-end excluded from this build.
//go:build no_sodium

package symcipher
