package brightsky

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// Precipitation holds one radar frame in 0.01 mm / 5 min units. Plain frames
// arrive as a 2-D array and fill Grid; compressed and bytes frames arrive as
// base64 little-endian uint16 and fill Values in row-major order.
type Precipitation struct {
	Format RadarCompressionFormat
	Grid   [][]uint16
	Values []uint16
}

func (p *Precipitation) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '[':
		var grid [][]uint16
		if err := json.Unmarshal(data, &grid); err != nil {
			return fmt.Errorf("decode plain precipitation: %w", err)
		}
		*p = Precipitation{Format: FormatPlain, Grid: grid}
		return nil
	case '"':
		var encoded string
		if err := json.Unmarshal(data, &encoded); err != nil {
			return err
		}
		return p.decodeEncoded(encoded)
	default:
		return errors.New("precipitation must be an array or a base64 string")
	}
}

func (p *Precipitation) decodeEncoded(encoded string) error {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("decode precipitation base64: %w", err)
	}

	format := FormatBytes
	if inflated, err := inflate(raw); err == nil {
		raw = inflated
		format = FormatCompressed
	}

	values, err := littleEndianUint16s(raw)
	if err != nil {
		return err
	}
	*p = Precipitation{Format: format, Values: values}
	return nil
}

func inflate(raw []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func littleEndianUint16s(raw []byte) ([]uint16, error) {
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("precipitation payload has odd length %d", len(raw))
	}
	values := make([]uint16, len(raw)/2)
	for i := range values {
		values[i] = binary.LittleEndian.Uint16(raw[2*i:])
	}
	return values, nil
}

// Rows returns the frame as a grid. Plain frames are returned as decoded; flat
// frames are split into rows of width values.
func (p *Precipitation) Rows(width int) ([][]uint16, error) {
	if p.Grid != nil {
		return p.Grid, nil
	}
	if width <= 0 || len(p.Values)%width != 0 {
		return nil, fmt.Errorf("cannot split %d values into rows of %d", len(p.Values), width)
	}
	rows := make([][]uint16, 0, len(p.Values)/width)
	for start := 0; start < len(p.Values); start += width {
		rows = append(rows, p.Values[start:start+width:start+width])
	}
	return rows, nil
}
