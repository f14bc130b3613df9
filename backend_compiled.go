// backend_compiled.go - queries which back-ends were compiled into this
// build. Adapted from the teacher's hwaccel.go: a package-level var set by
// an init() in a build-tag-gated file, queried through an exported
// predicate. There the gate was a CPU-feature probe (AVX2 available or
// not); here it's a build tag per back-end, so the "probe" is just whether
// that back-end's _on.go file was compiled in.
package symcipher

// backendKind names one of the three pluggable back-ends. XXTEA has no
// backend of its own; it is always available.
type backendKind int

const (
	backendEVP backendKind = iota
	backendMbedTLS
	backendSodium
)

var (
	evpAvailable     = false
	mbedtlsAvailable = false
	sodiumAvailable  = false
)

// IsBackendCompiled reports whether the given back-end was built into this
// binary. The registry's resolveBackend consults this (directly for the
// Sodium methods, via activeGenericAdapter for Cipher) so that
// ListAvailable and Session.Init only accept descriptors this build can
// actually service; Lookup itself does not check it.
func IsBackendCompiled(b backendKind) bool {
	switch b {
	case backendEVP:
		return evpAvailable
	case backendMbedTLS:
		return mbedtlsAvailable
	case backendSodium:
		return sodiumAvailable
	default:
		return false
	}
}
