package attr

import (
	"github.com/clrkit/cilmeta/blob"
	"github.com/clrkit/cilmeta/errors"
	"github.com/clrkit/cilmeta/metadata"
	"github.com/clrkit/cilmeta/typename"
)

// maxDepth bounds nested decoding (array elements, boxed values, type
// descriptors, generic type-name arguments). The format allows arbitrary
// nesting, so a hostile blob could otherwise drive the stack into the
// ground with a few dozen bytes.
const maxDepth = 100

// prolog is the mandatory two-byte version marker opening every
// custom-attribute blob.
const prolog uint16 = 0x0001

// DecodeHeap decodes the custom-attribute blob at the given heap offset
// against the constructor's signature. The cursor it opens is released
// on every exit path.
//
// DecodeHeap never fails hard: a malformed blob yields a CustomAttribute
// carrying the raw undecoded bytes (IsRaw reports true).
func DecodeHeap(u metadata.Universe, ctor *metadata.MethodRef, heap *blob.Heap, offset uint32) *CustomAttribute {
	r, err := heap.OpenAt(offset)
	if err != nil {
		debugf("attr: cannot open blob at offset %d: %v", offset, err)
		return &CustomAttribute{Ctor: ctor, Raw: []byte{}}
	}
	defer r.Close()
	return DecodeReader(u, ctor, r)
}

// DecodeReader decodes a custom-attribute blob from a caller-positioned
// cursor. The cursor is never closed; on a fault the raw result carries
// the bytes from the cursor's starting position to the end of its blob.
func DecodeReader(u metadata.Universe, ctor *metadata.MethodRef, r *blob.Reader) *CustomAttribute {
	start := r.Position()

	d := &decoder{r: r, u: u, ctor: ctor, search: assemblySearch{u: u}}
	fixed, named, err := d.decode()
	if err != nil {
		debugf("attr: decode failed, keeping raw blob: %v", err)
		raw := r.Data()[start:]
		return &CustomAttribute{Ctor: ctor, Raw: append([]byte{}, raw...)}
	}
	return &CustomAttribute{Ctor: ctor, Fixed: fixed, Named: named}
}

// decoder holds the state of one decode call. Each call owns an
// independent decoder, so concurrent decodes on independent cursors need
// no coordination.
type decoder struct {
	r      *blob.Reader
	u      metadata.Universe
	ctor   *metadata.MethodRef
	gen    *genericResolver
	search assemblySearch
	depth  int

	// verifyAll is set when an enum's underlying type had to be guessed.
	// A wrong width guess is only detectable after the fact, so the
	// whole blob must then be consumed exactly.
	verifyAll bool
}

// enter acquires one level of nesting depth. The returned release
// function must run on every exit path.
func (d *decoder) enter() (func(), error) {
	if d.depth >= maxDepth {
		return nil, errors.RecursionLimit(d.r.Position(), maxDepth)
	}
	d.depth++
	return func() { d.depth-- }, nil
}

func (d *decoder) decode() ([]Argument, []NamedArgument, error) {
	if d.ctor == nil || d.ctor.Sig == nil {
		return nil, nil, errors.InvalidSignature("constructor carries no method signature")
	}
	d.gen = newGenericResolver(d.ctor.GenericArgs())
	params := d.ctor.Sig.Params

	// Some tools omit the prolog entirely for attributes with no
	// arguments at all; tolerate that exact shape.
	if len(params) > 0 || d.r.Remaining() > 0 {
		p, err := d.r.ReadUint16()
		if err != nil {
			return nil, nil, err
		}
		if p != prolog {
			return nil, nil, errors.InvalidProlog(d.r.Position()-2, p)
		}
	}

	fixed := make([]Argument, len(params))
	for i, p := range params {
		arg, err := d.readFixedArg(d.gen.resolve(p))
		if err != nil {
			return nil, nil, err
		}
		fixed[i] = arg
	}

	named, err := d.readNamedArgs()
	if err != nil {
		return nil, nil, err
	}

	if d.verifyAll && d.r.Remaining() > 0 {
		return nil, nil, errors.TrailingBytes(d.r.Position(), d.r.Remaining())
	}
	return fixed, named, nil
}

// readFixedArg decodes one argument against its declared (already
// substituted) type: arrays dispatch to the array rule, everything else
// to the element rule.
func (d *decoder) readFixedArg(declared metadata.TypeSig) (Argument, error) {
	exit, err := d.enter()
	if err != nil {
		return Argument{}, err
	}
	defer exit()

	if sa, ok := declared.(*metadata.SZArraySig); ok {
		return d.readArray(sa)
	}
	return d.readElem(declared)
}

// readElem decodes one non-array element. For most declared types the
// wire representation is implied by the declared element kind; only the
// boxed-object path reads a tag off the stream.
func (d *decoder) readElem(declared metadata.TypeSig) (Argument, error) {
	elem := declared.Elem()
	switch {
	case elem.IsPrimitive() || elem == metadata.ElemString:
		v, err := d.readPrimitive(serTag(elem))
		if err != nil {
			return Argument{}, err
		}
		return Argument{Type: d.u.Core().Primitive(elem), Value: v}, nil

	case elem == metadata.ElemValueType:
		return d.readDeclaredEnum(declared)

	case elem == metadata.ElemClass, elem == metadata.ElemObject:
		return d.readDeclaredRef(declared)

	case elem == metadata.ElemGenericInst:
		inst := declared.(*metadata.GenericInstSig)
		return d.readElem(inst.Generic)

	default:
		return Argument{}, errors.New(errors.PhaseValue, errors.KindInvalidTag).
			Offset(d.r.Position()).
			Detail("declared type %s cannot appear in an attribute blob", declared).
			Build()
	}
}

// readDeclaredEnum handles a parameter declared as a value type: per the
// format that value type must be an enum, encoded as its underlying
// primitive.
func (d *decoder) readDeclaredEnum(declared metadata.TypeSig) (Argument, error) {
	return d.readEnumValue(declared)
}

// readDeclaredRef handles a parameter declared as a reference type.
// System.Type, System.String and System.Object re-dispatch to their
// specific rules; any other reference type is assumed to be an enum
// whose definition is out of sight.
func (d *decoder) readDeclaredRef(declared metadata.TypeSig) (Argument, error) {
	if declared.Elem() == metadata.ElemObject {
		return d.readBoxed()
	}

	t := metadata.SigType(declared)
	switch fullName(t) {
	case "System.Type":
		return d.readTypeLiteral(declared)
	case "System.String":
		v, err := d.readUTF8String()
		if err != nil {
			return Argument{}, err
		}
		return Argument{Type: d.u.Core().String, Value: deref(v)}, nil
	case "System.Object":
		return d.readBoxed()
	default:
		return d.readEnumValue(declared)
	}
}

// readBoxed decodes a tagged object: the runtime type descriptor is read
// inline from the stream, then the value is decoded against it. The
// resolved type is the boxed value's runtime type, not System.Object.
func (d *decoder) readBoxed() (Argument, error) {
	desc, err := d.readFieldOrPropType()
	if err != nil {
		return Argument{}, err
	}
	return d.readFixedArg(desc)
}

// readFieldOrPropType decodes a runtime type descriptor: the one place
// the element's type is read from the stream rather than taken from a
// declaration. Used by the boxed-object rule and named-argument headers.
func (d *decoder) readFieldOrPropType() (metadata.TypeSig, error) {
	exit, err := d.enter()
	if err != nil {
		return nil, err
	}
	defer exit()

	b, err := d.r.ReadByte()
	if err != nil {
		return nil, err
	}

	tag := serTag(b)
	switch {
	case isPrimitiveTag(tag):
		return d.u.Core().Primitive(primitiveElem(tag)), nil

	case tag == tagSZArray:
		elem, err := d.readFieldOrPropType()
		if err != nil {
			return nil, err
		}
		return &metadata.SZArraySig{Element: elem}, nil

	case tag == tagType:
		return d.u.Core().Type, nil

	case tag == tagBoxed:
		return d.u.Core().Object, nil

	case tag == tagEnum:
		s, err := d.readUTF8String()
		if err != nil {
			return nil, err
		}
		if s == nil {
			return nil, errors.New(errors.PhaseValue, errors.KindInvalidTypeName).
				Offset(d.r.Position()).
				Detail("enum descriptor has a null type name").
				Build()
		}
		return d.parseTypeName(*s)

	default:
		return nil, errors.InvalidTag(errors.PhaseValue, d.r.Position()-1, b)
	}
}

// readEnumValue decodes an enum's underlying numeric value. When the
// enum's definition cannot be resolved the underlying type is guessed as
// int32 — by far the common case — and the whole decode is flagged for
// exact-consumption verification, since a wrong width guess only shows
// up as leftover bytes at the very end.
func (d *decoder) readEnumValue(enumSig metadata.TypeSig) (Argument, error) {
	underlying, name, resolved := d.enumUnderlyingOf(enumSig)
	if !resolved {
		v, err := d.r.ReadInt32()
		if err != nil {
			return Argument{}, err
		}
		d.verifyAll = true
		return Argument{Type: enumSig, Value: v}, nil
	}
	if underlying == nil {
		return Argument{}, errors.InvalidEnumUnderlying(d.r.Position(), name)
	}

	elem := metadata.StripModifiers(underlying).Elem()
	if !elem.IsEnumUnderlying() {
		return Argument{}, errors.InvalidEnumUnderlying(d.r.Position(), name)
	}
	v, err := d.readPrimitive(serTag(elem))
	if err != nil {
		return Argument{}, err
	}
	return Argument{Type: enumSig, Value: v}, nil
}

// readTypeLiteral decodes a System.Type value: a length-prefixed
// reflection type name. The resolved type stays the declared type; the
// parsed signature becomes the value.
func (d *decoder) readTypeLiteral(declared metadata.TypeSig) (Argument, error) {
	s, err := d.readUTF8String()
	if err != nil {
		return Argument{}, err
	}
	if s == nil {
		return Argument{Type: declared, Value: nil}, nil
	}
	sig, err := d.parseTypeName(*s)
	if err != nil {
		return Argument{}, err
	}
	return Argument{Type: declared, Value: sig}, nil
}

func (d *decoder) parseTypeName(s string) (metadata.TypeSig, error) {
	n, err := typename.Parse(s)
	if err != nil {
		return nil, errors.InvalidTypeName(s, err)
	}
	return d.resolveTypeName(n)
}

// readArray decodes a single-dimensional array: a 32-bit count, then the
// elements. A count of exactly -1 is the null array; any other negative
// count, or one that cannot fit in the remaining bytes, is a fault.
func (d *decoder) readArray(declared *metadata.SZArraySig) (Argument, error) {
	count, err := d.r.ReadInt32()
	if err != nil {
		return Argument{}, err
	}
	if count == -1 {
		return Argument{Type: declared, Value: nil}, nil
	}
	if count < 0 || int64(count) > int64(d.r.Remaining()) {
		return Argument{}, errors.InvalidArrayLength(d.r.Position()-4, count)
	}

	elemType := d.gen.resolve(declared.Element)
	elems := make([]Argument, count)
	for i := range elems {
		elems[i], err = d.readFixedArg(elemType)
		if err != nil {
			return Argument{}, err
		}
	}
	return Argument{Type: declared, Value: elems}, nil
}

// readNamedArgs decodes the named-argument section. Producers may omit
// the 16-bit count entirely when there are no named arguments and the
// blob simply ends; tolerate that.
func (d *decoder) readNamedArgs() ([]NamedArgument, error) {
	if d.r.Remaining() == 0 {
		return nil, nil
	}
	count, err := d.r.ReadUint16()
	if err != nil {
		return nil, err
	}

	named := make([]NamedArgument, 0, count)
	for i := 0; i < int(count); i++ {
		na, err := d.readNamedArg()
		if err != nil {
			return nil, err
		}
		named = append(named, na)
	}
	return named, nil
}

// readNamedArg decodes one named argument: a field/property byte, a
// runtime type descriptor, a (nullable) name, then the value against the
// descriptor.
func (d *decoder) readNamedArg() (NamedArgument, error) {
	kind, err := d.r.ReadByte()
	if err != nil {
		return NamedArgument{}, err
	}
	if kind != kindField && kind != kindProperty {
		return NamedArgument{}, errors.InvalidTag(errors.PhaseNamed, d.r.Position()-1, kind)
	}

	desc, err := d.readFieldOrPropType()
	if err != nil {
		return NamedArgument{}, err
	}
	name, err := d.readUTF8String()
	if err != nil {
		return NamedArgument{}, err
	}
	arg, err := d.readFixedArg(desc)
	if err != nil {
		return NamedArgument{}, err
	}
	return NamedArgument{Argument: arg, Name: name, IsField: kind == kindField}, nil
}

// readPrimitive reads one fixed-width primitive or string value for the
// given primitive tag.
func (d *decoder) readPrimitive(tag serTag) (any, error) {
	switch tag {
	case tagBoolean:
		b, err := d.r.ReadByte()
		return b != 0, err
	case tagChar:
		v, err := d.r.ReadUint16()
		return Char(v), err
	case tagI1:
		return d.r.ReadInt8()
	case tagU1:
		return d.r.ReadByte()
	case tagI2:
		return d.r.ReadInt16()
	case tagU2:
		return d.r.ReadUint16()
	case tagI4:
		return d.r.ReadInt32()
	case tagU4:
		return d.r.ReadUint32()
	case tagI8:
		return d.r.ReadInt64()
	case tagU8:
		return d.r.ReadUint64()
	case tagR4:
		return d.r.ReadFloat32()
	case tagR8:
		return d.r.ReadFloat64()
	case tagString:
		s, err := d.readUTF8String()
		if err != nil {
			return nil, err
		}
		return deref(s), nil
	default:
		return nil, errors.InvalidTag(errors.PhaseValue, d.r.Position(), byte(tag))
	}
}

// readUTF8String reads a length-prefixed string. A 0xFF lookahead byte
// means null; a zero length means the empty string. Malformed UTF-8 is
// preserved rather than rejected.
func (d *decoder) readUTF8String() (*string, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return nil, err
	}
	if b == nullMarker {
		return nil, nil
	}
	if err := d.r.UnreadByte(); err != nil {
		return nil, err
	}

	length, err := d.r.ReadCompressedUint32()
	if err != nil {
		return nil, err
	}
	if length == 0 {
		s := ""
		return &s, nil
	}
	data, err := d.r.ReadBytes(int(length))
	if err != nil {
		return nil, err
	}
	s := string(data)
	return &s, nil
}

func fullName(t metadata.Type) string {
	if t == nil {
		return ""
	}
	return t.FullName()
}

// deref converts a nullable string to its argument value form.
func deref(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
