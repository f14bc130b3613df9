// backend_evp_off.go - evp back-end excluded from this build.
//go:build no_evp

package symcipher
