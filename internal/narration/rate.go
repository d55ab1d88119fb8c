package narration

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Rate is a speech speed multiplier where 1.0 is the engine's default.
type Rate float64

const (
	RateSlow   Rate = 0.7
	RateNormal Rate = 0.9
	RateFast   Rate = 1.1
)

// baseWPM is the words per minute spoken at rate 1.0.
const baseWPM = 170

// ParseRate accepts a preset name or a multiplier between 0.5 and 2.
func ParseRate(s string) (Rate, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return RateNormal, nil
	case "slow":
		return RateSlow, nil
	case "fast":
		return RateFast, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid speech rate %q: want slow, normal, fast or a number", s)
	}
	if f < 0.5 || f > 2 {
		return 0, fmt.Errorf("speech rate %.2f out of range 0.5-2", f)
	}
	return Rate(f), nil
}

// Next cycles slow, normal, fast. Custom rates continue at slow.
func (r Rate) Next() Rate {
	switch r {
	case RateSlow:
		return RateNormal
	case RateNormal:
		return RateFast
	default:
		return RateSlow
	}
}

func (r Rate) String() string {
	switch r {
	case RateSlow:
		return "slow"
	case RateNormal:
		return "normal"
	case RateFast:
		return "fast"
	default:
		return strconv.FormatFloat(float64(r), 'f', 2, 64)
	}
}

// WPM converts the multiplier to words per minute.
func (r Rate) WPM() int {
	return int(math.Round(float64(r) * baseWPM))
}
