// backend_sodium_on.go - sodium back-end compiled in (default).
//go:build !no_sodium

package symcipher

func init() { sodiumAvailable = true }
