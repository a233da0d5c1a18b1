package tqvault

// delimKind reports which marker a scan matched.
type delimKind int

const (
	delimNone delimKind = iota
	delimBegin
	delimEnd
)

// nextBlockDelim scans buf from offset from and returns the position of the
// first begin or end marker at or after it, or delimNone when the buffer is
// exhausted.
//
// The match rule is deliberately naive. Each pattern keeps a running count
// of matched bytes; a byte that breaks a partial match resets the count and
// is immediately retested against the first pattern byte, so one byte can
// end a candidate match and start the next. Stray markers that show up
// where a block name is expected are classified by the walker on the
// assumption of exactly this restart behavior, so no smarter string search
// may be substituted here.
func nextBlockDelim(buf []byte, from int) (int, delimKind) {
	if from < 0 {
		from = 0
	}
	var nb, ne int
	for i := from; i < len(buf); i++ {
		b := buf[i]

		if b == beginBlockPattern[nb] {
			nb++
			if nb == len(beginBlockPattern) {
				return i + 1 - len(beginBlockPattern), delimBegin
			}
		} else {
			nb = 0
			if b == beginBlockPattern[0] {
				nb = 1
			}
		}

		if b == endBlockPattern[ne] {
			ne++
			if ne == len(endBlockPattern) {
				return i + 1 - len(endBlockPattern), delimEnd
			}
		} else {
			ne = 0
			if b == endBlockPattern[0] {
				ne = 1
			}
		}
	}
	return -1, delimNone
}
