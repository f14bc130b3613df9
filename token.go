// token.go - delimiter-splitting helper for configuration strings like
// "aes-256-gcm, chacha20-poly1305-ietf" (spec.md §6).
//
// The stdlib's strings.FieldsFunc would allocate a full slice of tokens
// up front; nothing in the example corpus exercises a streaming
// byte-range splitter for this, so this is written directly against the
// stdlib the way a small config-line scanner normally is (DESIGN.md).
package symcipher

func isTokenDelim(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', ',', ';', ':':
		return true
	default:
		return false
	}
}

// NextToken skips leading delimiters in s[start:] and returns the
// [begin, end) byte range of the next token. If nothing remains, it
// returns begin == end == len(s).
func NextToken(s string, start int) (begin, end int) {
	i := start
	for i < len(s) && isTokenDelim(s[i]) {
		i++
	}
	begin = i
	for i < len(s) && !isTokenDelim(s[i]) {
		i++
	}
	return begin, i
}
