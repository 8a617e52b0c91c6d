package codec

import (
	"encoding/binary"

	"main/internal/schema"
	"main/pkg/exception"
)

// UpdatePayloadSize is the fixed wire size of one normalized update frame.
//
// Layout, little-endian:
//
//	[0:8]   timestamp (u64, ns)
//	[8]     venue id  (u8)
//	[9:13]  symbol id (u32)
//	[13]    side      (u8, 1=bid 2=ask)
//	[14:22] price     (i64, scaled 1e8)
//	[22:30] quantity  (u64, scaled 1e8)
//	[30]    snapshot  (u8)
const UpdatePayloadSize = 31

// EncodeUpdate serializes an update into the fixed-size frame.
func EncodeUpdate(dst []byte, u schema.Update) []byte {
	if cap(dst) < UpdatePayloadSize {
		dst = make([]byte, UpdatePayloadSize)
	} else {
		dst = dst[:UpdatePayloadSize]
	}

	binary.LittleEndian.PutUint64(dst[0:8], uint64(u.Timestamp))
	dst[8] = uint8(u.Venue)
	binary.LittleEndian.PutUint32(dst[9:13], uint32(u.Symbol))
	dst[13] = uint8(u.Side)
	binary.LittleEndian.PutUint64(dst[14:22], uint64(u.Price))
	binary.LittleEndian.PutUint64(dst[22:30], uint64(u.Qty))
	dst[30] = u.Snapshot

	return dst
}

// DecodeUpdate parses a fixed-size update frame. Short buffers and unknown
// side or venue tags are rejected before any state is touched.
func DecodeUpdate(src []byte) (schema.Update, error) {
	if len(src) < UpdatePayloadSize {
		return schema.Update{}, exception.ErrFrameTooShort
	}
	venue := schema.VenueID(src[8])
	if venue == 0 {
		return schema.Update{}, exception.ErrInvalidVenueTag
	}
	side := schema.Side(src[13])
	if !side.IsValid() {
		return schema.Update{}, exception.ErrInvalidSideTag
	}
	return schema.Update{
		Timestamp: schema.Timestamp(binary.LittleEndian.Uint64(src[0:8])),
		Venue:     venue,
		Symbol:    schema.SymbolID(binary.LittleEndian.Uint32(src[9:13])),
		Side:      side,
		Price:     schema.Price(int64(binary.LittleEndian.Uint64(src[14:22]))),
		Qty:       schema.Qty(binary.LittleEndian.Uint64(src[22:30])),
		Snapshot:  src[30],
	}, nil
}
