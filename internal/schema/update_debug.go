package schema

import "strconv"

// Debug returns a human readable format string
func (u Update) Debug() string {
	buf := make([]byte, 0, 128)
	buf = append(buf, "Update{ts="...)
	buf = strconv.AppendUint(buf, uint64(u.Timestamp), 10)
	buf = append(buf, " venue="...)
	buf = strconv.AppendUint(buf, uint64(u.Venue), 10)
	buf = append(buf, " symbol="...)
	buf = strconv.AppendUint(buf, uint64(u.Symbol), 10)
	buf = append(buf, " side="...)
	buf = append(buf, u.Side.String()...)
	buf = append(buf, " price="...)
	buf = u.Price.AppendString(buf)
	buf = append(buf, " qty="...)
	buf = u.Qty.AppendString(buf)
	if u.Snapshot != 0 {
		buf = append(buf, " snapshot"...)
	}
	buf = append(buf, '}')
	return string(buf)
}
