package flatanf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/oftac-lang/oftac/pkg/literal"
	"github.com/oftac-lang/oftac/pkg/symbol"
)

const magic = "ofta"

// ErrInvalidDiscriminant reports an out-of-range tag byte.
type ErrInvalidDiscriminant struct {
	Tag byte
}

func (e *ErrInvalidDiscriminant) Error() string {
	return fmt.Sprintf("invalid discriminant byte: 0x%02x", e.Tag)
}

// ErrBadMagic reports a file that does not begin with "ofta".
type ErrBadMagic struct{}

func (e *ErrBadMagic) Error() string { return "bad magic: not an oftac bytecode file" }

// ErrOverflow reports a length or count that exceeds what this platform's
// size type, or the remaining input, can represent.
type ErrOverflow struct{}

func (e *ErrOverflow) Error() string { return "length or count overflows target size" }

// ErrInvalidUTF8 reports a string field containing non-UTF-8 bytes.
type ErrInvalidUTF8 struct{}

func (e *ErrInvalidUTF8) Error() string { return "invalid UTF-8 in string field" }

// Serialize encodes a Program in the deterministic little-endian bytecode
// format.
func Serialize(p *Program) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(magic)
	writeU64(&buf, uint64(len(p.Intrinsics)))
	for _, s := range p.Intrinsics {
		writeString(&buf, s.String())
	}
	writeU64(&buf, uint64(len(p.Decls)))
	for _, d := range p.Decls {
		writeString(&buf, d.Name.String())
		if err := writeExpr(&buf, d.Expr); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func writeU64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

func writeString(buf *bytes.Buffer, s string) {
	writeU64(buf, uint64(len(s)))
	buf.WriteString(s)
}

func writeExpr(buf *bytes.Buffer, e Expr) error {
	switch e := e.(type) {
	case *AExprNode:
		return writeAExpr(buf, e.AExpr)
	case *CExprNode:
		return writeCExpr(buf, e.CExpr)
	case *Let:
		buf.WriteByte(0x00)
		if err := writeExpr(buf, e.Bound); err != nil {
			return err
		}
		return writeExpr(buf, e.Body)
	case *Seq:
		buf.WriteByte(0x01)
		if err := writeExpr(buf, e.Left); err != nil {
			return err
		}
		return writeExpr(buf, e.Right)
	default:
		return fmt.Errorf("flatanf: unknown Expr type %T", e)
	}
}

func writeCExpr(buf *bytes.Buffer, c CExpr) error {
	switch c := c.(type) {
	case *Call:
		buf.WriteByte(0x02)
		if err := writeAExpr(buf, c.Func); err != nil {
			return err
		}
		writeU64(buf, uint64(len(c.Args)))
		for _, a := range c.Args {
			if err := writeAExpr(buf, a); err != nil {
				return err
			}
		}
		return nil
	case *If:
		buf.WriteByte(0x03)
		if err := writeAExpr(buf, c.Cond); err != nil {
			return err
		}
		if err := writeExpr(buf, c.Then); err != nil {
			return err
		}
		return writeExpr(buf, c.Else)
	case *LetRec:
		buf.WriteByte(0x04)
		writeU64(buf, uint64(len(c.Bindings)))
		for _, b := range c.Bindings {
			writeString(buf, b.Name.String())
			writeU64(buf, uint64(b.Argn))
			if err := writeExpr(buf, b.Body); err != nil {
				return err
			}
		}
		return writeExpr(buf, c.Body)
	default:
		return fmt.Errorf("flatanf: unknown CExpr type %T", c)
	}
}

func writeAExpr(buf *bytes.Buffer, a AExpr) error {
	switch a := a.(type) {
	case *Global:
		buf.WriteByte(0x05)
		writeString(buf, a.Name.String())
		return nil
	case *Lambda:
		buf.WriteByte(0x06)
		name := ""
		if a.Name != nil {
			name = a.Name.String()
		}
		writeString(buf, name)
		writeU64(buf, uint64(a.Argn))
		return writeExpr(buf, a.Body)
	case *Literal:
		buf.WriteByte(0x07)
		return writeLiteral(buf, a.Value)
	case *Local:
		buf.WriteByte(0x08)
		writeU64(buf, uint64(a.Index))
		return nil
	case *Vector:
		buf.WriteByte(0x09)
		writeU64(buf, uint64(len(a.Elems)))
		for _, e := range a.Elems {
			if err := writeAExpr(buf, e); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("flatanf: unknown AExpr type %T", a)
	}
}

func writeLiteral(buf *bytes.Buffer, v literal.Value) error {
	switch v := v.(type) {
	case literal.Byte:
		buf.WriteByte(0x00)
		buf.WriteByte(byte(v))
		return nil
	case literal.Bytes:
		buf.WriteByte(0x01)
		writeU64(buf, uint64(len(v)))
		buf.Write(v)
		return nil
	case *literal.Cons:
		buf.WriteByte(0x02)
		if err := writeLiteral(buf, v.Head); err != nil {
			return err
		}
		return writeLiteral(buf, v.Tail)
	case literal.Fixnum:
		buf.WriteByte(0x03)
		writeU64(buf, uint64(int64(v)))
		return nil
	case literal.Nil:
		buf.WriteByte(0x04)
		return nil
	case literal.String:
		buf.WriteByte(0x05)
		writeString(buf, string(v))
		return nil
	case literal.Sym:
		buf.WriteByte(0x06)
		writeString(buf, v.String())
		return nil
	case literal.Vector:
		buf.WriteByte(0x07)
		writeU64(buf, uint64(len(v)))
		for _, e := range v {
			if err := writeLiteral(buf, e); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("flatanf: unknown Literal type %T", v)
	}
}

// Deserialize decodes a Program from the bytecode format. Intrinsics is
// reconstructed verbatim from the file; it is not recomputed from the
// decoded decls.
func Deserialize(data []byte) (*Program, error) {
	r := &byteReader{data: data}
	m, err := r.readBytes(4)
	if err != nil {
		return nil, err
	}
	if string(m) != magic {
		return nil, &ErrBadMagic{}
	}

	intrinsicsCount, err := r.readCount()
	if err != nil {
		return nil, err
	}
	intrinsics := make([]symbol.Symbol, 0, intrinsicsCount)
	for i := 0; i < intrinsicsCount; i++ {
		s, err := r.readString()
		if err != nil {
			return nil, err
		}
		intrinsics = append(intrinsics, symbol.Intern(s))
	}

	declsCount, err := r.readCount()
	if err != nil {
		return nil, err
	}
	decls := make([]ProgramDecl, 0, declsCount)
	for i := 0; i < declsCount; i++ {
		name, err := r.readString()
		if err != nil {
			return nil, err
		}
		expr, err := readExpr(r)
		if err != nil {
			return nil, err
		}
		decls = append(decls, ProgramDecl{Name: symbol.Intern(name), Expr: expr})
	}

	return &Program{Decls: decls, Intrinsics: intrinsics}, nil
}

type byteReader struct {
	data []byte
	pos  int
}

func (r *byteReader) readByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, &ErrOverflow{}
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *byteReader) readBytes(n int) ([]byte, error) {
	if n < 0 || n > len(r.data)-r.pos {
		return nil, &ErrOverflow{}
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *byteReader) readU64() (uint64, error) {
	b, err := r.readBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// readCount reads a u64 and checks it both fits an int on this platform and
// does not exceed the number of bytes remaining (every element is at least
// one byte), rejecting corrupt or adversarial counts early.
func (r *byteReader) readCount() (int, error) {
	v, err := r.readU64()
	if err != nil {
		return 0, err
	}
	if v > uint64(math.MaxInt) || v > uint64(len(r.data)-r.pos) {
		return 0, &ErrOverflow{}
	}
	return int(v), nil
}

func (r *byteReader) readString() (string, error) {
	n, err := r.readCount()
	if err != nil {
		return "", err
	}
	b, err := r.readBytes(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", &ErrInvalidUTF8{}
	}
	return string(b), nil
}

func readExpr(r *byteReader) (Expr, error) {
	tag, err := r.readByte()
	if err != nil {
		return nil, err
	}
	switch {
	case tag == 0x00:
		bound, err := readExpr(r)
		if err != nil {
			return nil, err
		}
		body, err := readExpr(r)
		if err != nil {
			return nil, err
		}
		return &Let{Bound: bound, Body: body}, nil

	case tag == 0x01:
		left, err := readExpr(r)
		if err != nil {
			return nil, err
		}
		right, err := readExpr(r)
		if err != nil {
			return nil, err
		}
		return &Seq{Left: left, Right: right}, nil

	case tag == 0x02:
		fn, err := readAExpr(r)
		if err != nil {
			return nil, err
		}
		count, err := r.readCount()
		if err != nil {
			return nil, err
		}
		args := make([]AExpr, 0, count)
		for i := 0; i < count; i++ {
			a, err := readAExpr(r)
			if err != nil {
				return nil, err
			}
			args = append(args, a)
		}
		return &CExprNode{CExpr: &Call{Func: fn, Args: args}}, nil

	case tag == 0x03:
		cond, err := readAExpr(r)
		if err != nil {
			return nil, err
		}
		then, err := readExpr(r)
		if err != nil {
			return nil, err
		}
		els, err := readExpr(r)
		if err != nil {
			return nil, err
		}
		return &CExprNode{CExpr: &If{Cond: cond, Then: then, Else: els}}, nil

	case tag == 0x04:
		count, err := r.readCount()
		if err != nil {
			return nil, err
		}
		bindings := make([]LetRecBinding, 0, count)
		for i := 0; i < count; i++ {
			name, err := r.readString()
			if err != nil {
				return nil, err
			}
			argn, err := r.readCount()
			if err != nil {
				return nil, err
			}
			body, err := readExpr(r)
			if err != nil {
				return nil, err
			}
			bindings = append(bindings, LetRecBinding{Name: symbol.Intern(name), Argn: argn, Body: body})
		}
		body, err := readExpr(r)
		if err != nil {
			return nil, err
		}
		return &CExprNode{CExpr: &LetRec{Bindings: bindings, Body: body}}, nil

	case tag >= 0x05 && tag <= 0x09:
		a, err := readAExprTagged(tag, r)
		if err != nil {
			return nil, err
		}
		return &AExprNode{AExpr: a}, nil

	default:
		return nil, &ErrInvalidDiscriminant{Tag: tag}
	}
}

func readAExpr(r *byteReader) (AExpr, error) {
	tag, err := r.readByte()
	if err != nil {
		return nil, err
	}
	return readAExprTagged(tag, r)
}

func readAExprTagged(tag byte, r *byteReader) (AExpr, error) {
	switch tag {
	case 0x05:
		name, err := r.readString()
		if err != nil {
			return nil, err
		}
		return &Global{Name: symbol.Intern(name)}, nil

	case 0x06:
		name, err := r.readString()
		if err != nil {
			return nil, err
		}
		argn, err := r.readCount()
		if err != nil {
			return nil, err
		}
		body, err := readExpr(r)
		if err != nil {
			return nil, err
		}
		var namePtr *symbol.Symbol
		if name != "" {
			s := symbol.Intern(name)
			namePtr = &s
		}
		return &Lambda{Name: namePtr, Argn: argn, Body: body}, nil

	case 0x07:
		lit, err := readLiteral(r)
		if err != nil {
			return nil, err
		}
		return &Literal{Value: lit}, nil

	case 0x08:
		idx, err := r.readU64()
		if err != nil {
			return nil, err
		}
		if idx > uint64(math.MaxInt) {
			return nil, &ErrOverflow{}
		}
		return &Local{Index: int(idx)}, nil

	case 0x09:
		count, err := r.readCount()
		if err != nil {
			return nil, err
		}
		elems := make([]AExpr, 0, count)
		for i := 0; i < count; i++ {
			e, err := readAExpr(r)
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
		return &Vector{Elems: elems}, nil

	default:
		return nil, &ErrInvalidDiscriminant{Tag: tag}
	}
}

func readLiteral(r *byteReader) (literal.Value, error) {
	tag, err := r.readByte()
	if err != nil {
		return nil, err
	}
	switch tag {
	case 0x00:
		b, err := r.readByte()
		if err != nil {
			return nil, err
		}
		return literal.Byte(b), nil

	case 0x01:
		n, err := r.readCount()
		if err != nil {
			return nil, err
		}
		b, err := r.readBytes(n)
		if err != nil {
			return nil, err
		}
		out := make([]byte, n)
		copy(out, b)
		return literal.Bytes(out), nil

	case 0x02:
		head, err := readLiteral(r)
		if err != nil {
			return nil, err
		}
		tail, err := readLiteral(r)
		if err != nil {
			return nil, err
		}
		return &literal.Cons{Head: head, Tail: tail}, nil

	case 0x03:
		v, err := r.readU64()
		if err != nil {
			return nil, err
		}
		return literal.Fixnum(int64(v)), nil

	case 0x04:
		return literal.Nil{}, nil

	case 0x05:
		s, err := r.readString()
		if err != nil {
			return nil, err
		}
		return literal.String(s), nil

	case 0x06:
		s, err := r.readString()
		if err != nil {
			return nil, err
		}
		return literal.Sym(symbol.Intern(s)), nil

	case 0x07:
		n, err := r.readCount()
		if err != nil {
			return nil, err
		}
		elems := make(literal.Vector, 0, n)
		for i := 0; i < n; i++ {
			e, err := readLiteral(r)
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
		return elems, nil

	default:
		return nil, &ErrInvalidDiscriminant{Tag: tag}
	}
}
