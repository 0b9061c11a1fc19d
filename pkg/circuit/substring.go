package circuit

// indexOf returns the offset of the first (left-to-right) occurrence of
// needle in haystack, or -1 if absent. An empty needle matches at offset 0.
// This is the substring-containment primitive both circuits use in place
// of structural MPT decoding: MPT nodes carry child hashes inline and are
// unambiguously serialized, so locating a hash as a byte run is sufficient
// and far cheaper than parsing branch/extension/leaf node shapes.
func indexOf(haystack, needle []byte) int {
	if len(needle) > len(haystack) {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if containsAt(haystack, needle, i) {
			return i
		}
	}
	return -1
}

// contains reports whether needle appears anywhere in haystack.
func contains(haystack, needle []byte) bool {
	return indexOf(haystack, needle) >= 0
}

// containsAt does a constant-time (for fixed-length inputs) comparison of
// haystack[offset:offset+len(needle)] against needle. The circuit's
// containment inputs are public witness bytes, not secrets, but keeping
// the comparator constant-time costs nothing and keeps the policy uniform
// across the codebase.
func containsAt(haystack, needle []byte, offset int) bool {
	var diff byte
	for i, b := range needle {
		diff |= haystack[offset+i] ^ b
	}
	return diff == 0
}
