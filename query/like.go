package query

// matchLike matches a string against a SQL LIKE pattern.
// % matches any run of characters including the empty run, _ matches
// exactly one character. The match is greedy with backtracking: each %
// initially consumes nothing and re-consumes one more character whenever
// the remainder of the pattern fails.
func matchLike(s, pattern string) bool {
	si, pi := 0, 0
	star, mark := -1, 0

	for si < len(s) {
		switch {
		case pi < len(pattern) && (pattern[pi] == '_' || pattern[pi] == s[si]):
			si++
			pi++
		case pi < len(pattern) && pattern[pi] == '%':
			star = pi
			mark = si
			pi++
		case star >= 0:
			pi = star + 1
			mark++
			si = mark
		default:
			return false
		}
	}

	for pi < len(pattern) && pattern[pi] == '%' {
		pi++
	}
	return pi == len(pattern)
}
