package svnorm_api

import "fmt"

// BreakendAllele builds one of the four breakend ALT notations around an
// anchoring reference base:
//
//	t[p[  the piece extending right of p is joined after t
//	t]p]  the reverse complement of the piece extending left of p is joined after t
//	[p[t  the piece extending right of p is joined before t
//	]p]t  the piece extending left of p is joined before t
//
// bracketFirst places the bracket block before the anchor base and
// reverseJoin selects the "]" bracket over "[". The caller picks the
// orientation, this function only renders the string.
func BreakendAllele(base byte, mateContig string, matePos int64, reverseJoin, bracketFirst bool) string {
	bracket := "["
	if reverseJoin {
		bracket = "]"
	}
	mate := fmt.Sprintf("%s%s:%d%s", bracket, mateContig, matePos, bracket)
	if bracketFirst {
		return mate + string(base)
	}
	return string(base) + mate
}
