package codec

import (
	"testing"

	"main/internal/schema"
	"main/pkg/exception"
)

func TestUpdateEncodeDecodeRoundTrip(t *testing.T) {
	orig := schema.Update{
		Timestamp: 1234567890,
		Venue:     2,
		Symbol:    1,
		Side:      schema.SideAsk,
		Price:     50_000_00000000,
		Qty:       1_00000000,
		Snapshot:  1,
	}

	encoded := EncodeUpdate(nil, orig)
	if len(encoded) != UpdatePayloadSize {
		t.Fatalf("frame size mismatch: got %d want %d", len(encoded), UpdatePayloadSize)
	}

	decoded, err := DecodeUpdate(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded != orig {
		t.Fatalf("update round-trip mismatch: got %+v want %+v", decoded, orig)
	}
}

func TestUpdateEncodeNegativePrice(t *testing.T) {
	orig := schema.Update{
		Timestamp: 1,
		Venue:     1,
		Symbol:    7,
		Side:      schema.SideBid,
		Price:     -25_00000000,
		Qty:       3_50000000,
	}

	decoded, err := DecodeUpdate(EncodeUpdate(nil, orig))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Price != orig.Price {
		t.Fatalf("price mismatch: got %d want %d", decoded.Price, orig.Price)
	}
}

func TestDecodeUpdateShortBuffer(t *testing.T) {
	buf := make([]byte, UpdatePayloadSize-1)
	if _, err := DecodeUpdate(buf); err != exception.ErrFrameTooShort {
		t.Fatalf("expected short-frame error, got %v", err)
	}
}

func TestDecodeUpdateInvalidTags(t *testing.T) {
	frame := EncodeUpdate(nil, schema.Update{
		Venue: 1,
		Side:  schema.SideBid,
	})

	frame[13] = 9
	if _, err := DecodeUpdate(frame); err != exception.ErrInvalidSideTag {
		t.Fatalf("expected side tag error, got %v", err)
	}

	frame[13] = uint8(schema.SideBid)
	frame[8] = 0
	if _, err := DecodeUpdate(frame); err != exception.ErrInvalidVenueTag {
		t.Fatalf("expected venue tag error, got %v", err)
	}
}

func TestEncodeUpdateReusesBuffer(t *testing.T) {
	buf := make([]byte, 0, UpdatePayloadSize)
	encoded := EncodeUpdate(buf, schema.Update{Venue: 1, Side: schema.SideBid})
	if &encoded[0] != &buf[:1][0] {
		t.Fatalf("expected encode to reuse the provided buffer")
	}
}
