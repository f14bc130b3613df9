// backend_evp_on.go - evp back-end compiled in (default).
//go:build !no_evp

package symcipher

func init() { evpAvailable = true }
