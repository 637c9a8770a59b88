package mongo

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Seconds is a whole number of seconds parsed leniently from the environment:
// leading whitespace is skipped and the leading (optionally signed) digits are
// used, so "7s" is 7 and "3.9" is 3. Input without leading digits parses to 0.
// Values too large to be represented as a time.Duration also parse to 0.
// Callers treat non-positive values as "use the default".
type Seconds int

// maxSeconds is the largest number of seconds a time.Duration can hold.
const maxSeconds = math.MaxInt64 / int64(time.Second)

// UnmarshalText implements encoding.TextUnmarshaler. It never fails.
func (s *Seconds) UnmarshalText(text []byte) error {
	*s = Seconds(ParseSeconds(string(text)))
	return nil
}

// Or converts s to a duration, returning def when s is not positive or would
// overflow a time.Duration.
func (s Seconds) Or(def time.Duration) time.Duration {
	if s <= 0 || int64(s) > maxSeconds {
		return def
	}
	return time.Duration(s) * time.Second
}

// ParseSeconds returns the integer prefix of v, or 0 when there is none.
func ParseSeconds(v string) int {
	v = strings.TrimSpace(v)

	end := 0
	if end < len(v) && (v[end] == '-' || v[end] == '+') {
		end++
	}
	digits := end
	for end < len(v) && v[end] >= '0' && v[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}

	n, err := strconv.ParseInt(v[:end], 10, 64)
	if err != nil || n > maxSeconds || n < -maxSeconds {
		return 0
	}
	return int(n)
}
