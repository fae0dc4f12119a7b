// Package version implements Debian package version ordering as
// defined by deb-version(7): [epoch:]upstream[-revision], with `~`
// sorting before everything including the empty string.
package version

import "strings"

// Comparator compares Debian version strings. Construct it with New
// and pass it to whatever needs the ordering; there is no package
// state.
type Comparator struct{}

// New creates a version comparator
func New() *Comparator {
	return &Comparator{}
}

// Compare returns a negative value if a sorts before b, zero if the
// versions are equal, and a positive value otherwise. It is a total
// order and safe to hand to sort primitives.
func (c *Comparator) Compare(a, b string) int {
	ae, au, ar := split(a)
	be, bu, br := split(b)

	if r := compareFragment(ae, be); r != 0 {
		return r
	}
	if r := compareFragment(au, bu); r != 0 {
		return r
	}
	return compareFragment(ar, br)
}

// split breaks a version into epoch, upstream and revision. A missing
// epoch is "0", a missing revision is empty.
func split(v string) (epoch, upstream, revision string) {
	epoch = "0"
	if i := strings.IndexByte(v, ':'); i >= 0 {
		epoch = v[:i]
		v = v[i+1:]
	}
	revision = ""
	// The upstream part may itself contain hyphens, so the revision
	// starts at the last one.
	if i := strings.LastIndexByte(v, '-'); i >= 0 {
		revision = v[i+1:]
		v = v[:i]
	}
	return epoch, v, revision
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// order gives the weight of a character in a non-digit run: `~` sorts
// below end-of-string (weight 0), letters sort below everything else.
func order(ch byte) int {
	switch {
	case ch == '~':
		return -1
	case isDigit(ch):
		return 0
	case isAlpha(ch):
		return int(ch)
	default:
		return int(ch) + 256
	}
}

// compareFragment compares one version fragment (epoch, upstream or
// revision) by walking both strings, alternating between maximal
// non-digit runs and maximal digit runs. The digit runs are compared
// as unsigned integers with leading zeros ignored; an exhausted string
// behaves as an empty (lowest) remaining run.
func compareFragment(a, b string) int {
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		firstDiff := 0

		for (i < len(a) && !isDigit(a[i])) || (j < len(b) && !isDigit(b[j])) {
			ac, bc := 0, 0
			if i < len(a) {
				ac = order(a[i])
			}
			if j < len(b) {
				bc = order(b[j])
			}
			if ac != bc {
				return ac - bc
			}
			i++
			j++
		}

		for i < len(a) && a[i] == '0' {
			i++
		}
		for j < len(b) && b[j] == '0' {
			j++
		}

		// Equal-length digit runs decide by their first differing
		// digit; a longer run is a bigger number and wins outright.
		for i < len(a) && isDigit(a[i]) && j < len(b) && isDigit(b[j]) {
			if firstDiff == 0 {
				firstDiff = int(a[i]) - int(b[j])
			}
			i++
			j++
		}
		if i < len(a) && isDigit(a[i]) {
			return 1
		}
		if j < len(b) && isDigit(b[j]) {
			return -1
		}
		if firstDiff != 0 {
			return firstDiff
		}
	}
	return 0
}
