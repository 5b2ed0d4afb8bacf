package trace

import (
	"bufio"
	"io"

	"github.com/katalvlaran/nanovox/coord"
)

// Trace is an ordered sequence of commands, the concatenation of one
// command per bot per step in bid order.
type Trace []Command

func mask(x byte, bits uint) byte {
	return x & (byte(1)<<bits - 1)
}

func isSuffix(x, y byte, bits uint) bool {
	return mask(x, bits) == y
}

// Encode writes t to w in the binary format described in the package doc.
//
// Complexity: O(len(t)).
func Encode(w io.Writer, t Trace) error {
	bw := bufio.NewWriter(w)
	for _, c := range t {
		if err := encodeOne(bw, c); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func encodeOne(bw *bufio.Writer, c Command) error {
	switch c.Op {
	case OpHalt:
		return bw.WriteByte(0b11111111)
	case OpWait:
		return bw.WriteByte(0b11111110)
	case OpFlip:
		return bw.WriteByte(0b11111101)
	case OpSMove:
		a, i, err := c.D1.EncodeLongLinear()
		if err != nil {
			return err
		}
		if err := bw.WriteByte(0b00000100 | (a << 4)); err != nil {
			return err
		}

		return bw.WriteByte(i)
	case OpLMove:
		a1, i1, err := c.D1.EncodeShortLinear()
		if err != nil {
			return err
		}
		a2, i2, err := c.D2.EncodeShortLinear()
		if err != nil {
			return err
		}
		if err := bw.WriteByte((a2 << 6) | (a1 << 4) | 0b1100); err != nil {
			return err
		}

		return bw.WriteByte((i2 << 4) | i1)
	case OpFusionP:
		nd, err := c.D1.EncodeNear()
		if err != nil {
			return err
		}

		return bw.WriteByte((nd << 3) | 0b111)
	case OpFusionS:
		nd, err := c.D1.EncodeNear()
		if err != nil {
			return err
		}

		return bw.WriteByte((nd << 3) | 0b110)
	case OpFission:
		nd, err := c.D1.EncodeNear()
		if err != nil {
			return err
		}
		if err := bw.WriteByte((nd << 3) | 0b101); err != nil {
			return err
		}

		return bw.WriteByte(c.M)
	case OpFill:
		nd, err := c.D1.EncodeNear()
		if err != nil {
			return err
		}

		return bw.WriteByte((nd << 3) | 0b011)
	case OpVoid:
		nd, err := c.D1.EncodeNear()
		if err != nil {
			return err
		}

		return bw.WriteByte((nd << 3) | 0b010)
	case OpGFill:
		nd, err := c.D1.EncodeNear()
		if err != nil {
			return err
		}
		fx, fy, fz, err := c.D2.EncodeFar()
		if err != nil {
			return err
		}
		if err := bw.WriteByte((nd << 3) | 0b001); err != nil {
			return err
		}
		if _, err := bw.Write([]byte{fx, fy, fz}); err != nil {
			return err
		}

		return nil
	case OpGVoid:
		nd, err := c.D1.EncodeNear()
		if err != nil {
			return err
		}
		fx, fy, fz, err := c.D2.EncodeFar()
		if err != nil {
			return err
		}
		if err := bw.WriteByte((nd << 3) | 0b000); err != nil {
			return err
		}
		if _, err := bw.Write([]byte{fx, fy, fz}); err != nil {
			return err
		}

		return nil
	default:
		return ErrMalformed
	}
}

// Decode reads a Trace from r until end of stream.
//
// Complexity: O(len(result)).
func Decode(r io.Reader) (Trace, error) {
	br := bufio.NewReader(r)
	var res Trace
	for {
		x, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		c, err := decodeOne(br, x)
		if err != nil {
			return nil, err
		}
		res = append(res, c)
	}

	return res, nil
}

func decodeOne(br *bufio.Reader, x byte) (Command, error) {
	switch {
	case x == 0b11111111:
		return Halt(), nil
	case x == 0b11111110:
		return Wait(), nil
	case x == 0b11111101:
		return Flip(), nil
	case isSuffix(x, 0b0100, 4):
		y, err := br.ReadByte()
		if err != nil {
			return Command{}, ErrMalformed
		}
		a := mask(x>>4, 2)
		i := mask(y, 5)

		return SMove(coord.DecodeLongLinear(a, i)), nil
	case isSuffix(x, 0b1100, 4):
		y, err := br.ReadByte()
		if err != nil {
			return Command{}, ErrMalformed
		}
		a1 := mask(x>>4, 2)
		a2 := mask(x>>6, 2)
		i1 := mask(y, 4)
		i2 := mask(y>>4, 4)

		return LMove(coord.DecodeShortLinear(a1, i1), coord.DecodeShortLinear(a2, i2)), nil
	case isSuffix(x, 0b111, 3):
		nd := mask(x>>3, 5)

		return FusionP(coord.DecodeNear(nd)), nil
	case isSuffix(x, 0b110, 3):
		nd := mask(x>>3, 5)

		return FusionS(coord.DecodeNear(nd)), nil
	case isSuffix(x, 0b101, 3):
		nd := mask(x>>3, 5)
		m, err := br.ReadByte()
		if err != nil {
			return Command{}, ErrMalformed
		}

		return Fission(coord.DecodeNear(nd), m), nil
	case isSuffix(x, 0b011, 3):
		nd := mask(x>>3, 5)

		return Fill(coord.DecodeNear(nd)), nil
	case isSuffix(x, 0b010, 3):
		nd := mask(x>>3, 5)

		return Void(coord.DecodeNear(nd)), nil
	case isSuffix(x, 0b001, 3):
		nd := mask(x>>3, 5)
		fx, fy, fz, err := readFar(br)
		if err != nil {
			return Command{}, err
		}

		return GFill(coord.DecodeNear(nd), coord.DecodeFar(fx, fy, fz)), nil
	case isSuffix(x, 0b000, 3):
		nd := mask(x>>3, 5)
		fx, fy, fz, err := readFar(br)
		if err != nil {
			return Command{}, err
		}

		return GVoid(coord.DecodeNear(nd), coord.DecodeFar(fx, fy, fz)), nil
	default:
		return Command{}, ErrMalformed
	}
}

func readFar(br *bufio.Reader) (x, y, z byte, err error) {
	x, err = br.ReadByte()
	if err != nil {
		return 0, 0, 0, ErrMalformed
	}
	y, err = br.ReadByte()
	if err != nil {
		return 0, 0, 0, ErrMalformed
	}
	z, err = br.ReadByte()
	if err != nil {
		return 0, 0, 0, ErrMalformed
	}

	return x, y, z, nil
}
