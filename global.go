// global.go - process-wide lifecycle hooks (spec.md §5). None of the
// three back-ends wired into this build (stdlib crypto, x/crypto,
// aead/chacha20) need one-time global registration, so both are no-ops
// kept only so callers written against back-ends that do need them
// (e.g. a real libsodium binding) port unchanged.
package symcipher

// InitGlobalAlgorithm registers the built-in cipher catalogue once, on
// back-ends that require it. No-op here.
func InitGlobalAlgorithm() {}

// CleanupGlobalAlgorithm is the symmetric teardown for
// InitGlobalAlgorithm. No-op here.
func CleanupGlobalAlgorithm() {}
