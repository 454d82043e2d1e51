package geo

import "math"

// DecodePolyline decodes a string in Google's Encoded Polyline Algorithm
// Format (1e-5 precision), as returned by the Routes API for leg geometry.
// A truncated trailing chunk is ignored.
// See https://developers.google.com/maps/documentation/utilities/polylinealgorithm
func DecodePolyline(encoded string) []LatLng {
	points := make([]LatLng, 0, len(encoded)/4)

	var lat, lng int
	for i := 0; i < len(encoded); {
		dLat, next, ok := decodeValue(encoded, i)
		if !ok {
			break
		}
		dLng, next, ok := decodeValue(encoded, next)
		if !ok {
			break
		}
		i = next

		lat += dLat
		lng += dLng
		points = append(points, LatLng{
			Lat: float64(lat) / 1e5,
			Lng: float64(lng) / 1e5,
		})
	}

	return points
}

// decodeValue reads one zigzag-encoded varint starting at i and returns the
// value, the index after it, and false if the input ended mid-value.
func decodeValue(s string, i int) (int, int, bool) {
	result, shift := 0, 0
	for i < len(s) {
		b := int(s[i]) - 63
		i++
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			return (result >> 1) ^ -(result & 1), i, true
		}
	}
	return 0, i, false
}

// EncodePolyline is the inverse of DecodePolyline. Nothing on the request
// path encodes; it exists to build Routes API fixtures in tests.
func EncodePolyline(points []LatLng) string {
	buf := make([]byte, 0, len(points)*6)

	var prevLat, prevLng int
	for _, p := range points {
		lat := int(math.Round(p.Lat * 1e5))
		lng := int(math.Round(p.Lng * 1e5))
		buf = appendValue(buf, lat-prevLat)
		buf = appendValue(buf, lng-prevLng)
		prevLat, prevLng = lat, lng
	}

	return string(buf)
}

func appendValue(buf []byte, v int) []byte {
	s := v << 1
	if v < 0 {
		s = ^s
	}
	for s >= 0x20 {
		buf = append(buf, byte((0x20|(s&0x1f))+63))
		s >>= 5
	}
	return append(buf, byte(s+63))
}
