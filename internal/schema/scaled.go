package schema

import (
	"fmt"
	"strconv"
)

// AppendString renders the price as a decimal string without going through
// floating point.
func (p Price) AppendString(buf []byte) []byte {
	return appendScaledInt(buf, int64(p), PointScale)
}

func (p Price) String() string {
	return string(p.AppendString(nil))
}

// AppendString renders the quantity as a decimal string.
func (q Qty) AppendString(buf []byte) []byte {
	return appendScaledUint(buf, uint64(q), PointScale)
}

func (q Qty) String() string {
	return string(q.AppendString(nil))
}

func appendScaledInt(buf []byte, value int64, scale int) []byte {
	if value < 0 {
		buf = append(buf, '-')
		return appendScaledUint(buf, uint64(^value)+1, scale)
	}
	return appendScaledUint(buf, uint64(value), scale)
}

func appendScaledUint(buf []byte, value uint64, scale int) []byte {
	if scale <= 0 {
		return strconv.AppendUint(buf, value, 10)
	}

	var tmp [32]byte
	digits := strconv.AppendUint(tmp[:0], value, 10)

	if len(digits) <= scale {
		buf = append(buf, '0', '.')
		for i := 0; i < scale-len(digits); i++ {
			buf = append(buf, '0')
		}
		buf = append(buf, digits...)
		return buf
	}

	idx := len(digits) - scale
	buf = append(buf, digits[:idx]...)
	buf = append(buf, '.')
	buf = append(buf, digits[idx:]...)
	return buf
}

// ParsePrice converts a decimal string into a scaled price. Fractional
// digits beyond PointScale are rejected rather than rounded.
func ParsePrice(s string) (Price, error) {
	neg := false
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	v, err := parseScaledUint(s)
	if err != nil {
		return 0, err
	}
	if neg {
		return Price(-int64(v)), nil
	}
	return Price(v), nil
}

// ParseQty converts a decimal string into a scaled quantity.
func ParseQty(s string) (Qty, error) {
	if len(s) > 0 && s[0] == '-' {
		return 0, fmt.Errorf("quantity is negative: %s", s)
	}
	if len(s) > 0 && s[0] == '+' {
		s = s[1:]
	}
	v, err := parseScaledUint(s)
	if err != nil {
		return 0, err
	}
	return Qty(v), nil
}

func parseScaledUint(s string) (uint64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty decimal string")
	}

	intPart := s
	fracPart := ""
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			intPart, fracPart = s[:i], s[i+1:]
			break
		}
	}
	if len(fracPart) > PointScale {
		return 0, fmt.Errorf("too many fractional digits: %s", s)
	}

	var v uint64
	if intPart != "" {
		parsed, err := strconv.ParseUint(intPart, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid decimal string: %s", s)
		}
		v = parsed
	}
	for i := 0; i < PointScale; i++ {
		var digit uint64
		if i < len(fracPart) {
			if fracPart[i] < '0' || fracPart[i] > '9' {
				return 0, fmt.Errorf("invalid decimal string: %s", s)
			}
			digit = uint64(fracPart[i] - '0')
		}
		v = v*10 + digit
	}
	return v, nil
}
