package attr_test

import (
	"reflect"
	"testing"

	"github.com/clrkit/cilmeta/attr"
	"github.com/clrkit/cilmeta/blob"
	"github.com/clrkit/cilmeta/metadata"
)

func newCtor(u *metadata.Module, params ...metadata.TypeSig) *metadata.MethodRef {
	return &metadata.MethodRef{
		MethodName: ".ctor",
		Declaring:  &metadata.TypeRef{TypeNamespace: "Some.Ns", TypeName: "TestAttribute"},
		Sig:        &metadata.MethodSig{HasThis: true, Params: params},
	}
}

func decode(t *testing.T, u *metadata.Module, ctor *metadata.MethodRef, data []byte) *attr.CustomAttribute {
	t.Helper()
	ca := attr.DecodeReader(u, ctor, blob.NewReader(data))
	if ca == nil {
		t.Fatal("DecodeReader returned nil")
	}
	return ca
}

func requireDecoded(t *testing.T, ca *attr.CustomAttribute) {
	t.Helper()
	if ca.IsRaw() {
		t.Fatalf("decode degraded to raw blob %x", ca.Raw)
	}
}

func TestDecodeInt32Arg(t *testing.T) {
	u := metadata.NewModule("mscorlib")
	ctor := newCtor(u, u.Core().Int32)

	// prolog, int32 42, zero named args
	ca := decode(t, u, ctor, []byte{0x01, 0x00, 0x2A, 0x00, 0x00, 0x00, 0x00, 0x00})
	requireDecoded(t, ca)

	if len(ca.Fixed) != 1 {
		t.Fatalf("expected 1 fixed argument, got %d", len(ca.Fixed))
	}
	arg := ca.Fixed[0]
	if arg.Type != metadata.TypeSig(u.Core().Int32) {
		t.Errorf("resolved type %s, want System.Int32", arg.Type)
	}
	if v, ok := arg.Value.(int32); !ok || v != 42 {
		t.Errorf("value %v (%T), want int32 42", arg.Value, arg.Value)
	}
	if len(ca.Named) != 0 {
		t.Errorf("expected 0 named arguments, got %d", len(ca.Named))
	}
}

func TestDecodeBoxedString(t *testing.T) {
	u := metadata.NewModule("mscorlib")
	ctor := newCtor(u, u.Core().Object)

	// prolog, boxed descriptor 0x0E (string), length 5 "Hello", zero named args
	ca := decode(t, u, ctor, []byte{0x01, 0x00, 0x0E, 0x05, 'H', 'e', 'l', 'l', 'o', 0x00, 0x00})
	requireDecoded(t, ca)

	arg := ca.Fixed[0]
	if arg.Type != metadata.TypeSig(u.Core().String) {
		t.Errorf("resolved type %s, want System.String (the boxed runtime type)", arg.Type)
	}
	if arg.Value != any("Hello") {
		t.Errorf("value %v, want \"Hello\"", arg.Value)
	}
}

func TestDecodeAllPrimitives(t *testing.T) {
	u := metadata.NewModule("mscorlib")
	core := u.Core()

	tests := []struct {
		name  string
		param metadata.TypeSig
		data  []byte
		want  any
	}{
		{"bool true", core.Boolean, []byte{0x01}, true},
		{"bool false", core.Boolean, []byte{0x00}, false},
		{"char", core.Char, []byte{0x41, 0x00}, attr.Char('A')},
		{"sbyte", core.SByte, []byte{0xFF}, int8(-1)},
		{"byte", core.Byte, []byte{0xFF}, uint8(255)},
		{"int16", core.Int16, []byte{0xFE, 0xFF}, int16(-2)},
		{"uint16", core.UInt16, []byte{0xFE, 0xFF}, uint16(0xFFFE)},
		{"int32", core.Int32, []byte{0x00, 0x00, 0x00, 0x80}, int32(-2147483648)},
		{"uint32", core.UInt32, []byte{0xFF, 0xFF, 0xFF, 0xFF}, uint32(0xFFFFFFFF)},
		{"int64", core.Int64, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, int64(-1)},
		{"uint64", core.UInt64, []byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, uint64(1)},
		{"float32", core.Single, []byte{0x00, 0x00, 0x20, 0x40}, float32(2.5)},
		{"float64", core.Double, []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xF0, 0x3F}, float64(1.0)},
		{"string", core.String, []byte{0x02, 'h', 'i'}, "hi"},
		{"empty string", core.String, []byte{0x00}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctor := newCtor(u, tt.param)
			data := append([]byte{0x01, 0x00}, tt.data...)
			data = append(data, 0x00, 0x00)

			ca := decode(t, u, ctor, data)
			requireDecoded(t, ca)
			if !reflect.DeepEqual(ca.Fixed[0].Value, tt.want) {
				t.Errorf("value %v (%T), want %v (%T)", ca.Fixed[0].Value, ca.Fixed[0].Value, tt.want, tt.want)
			}
		})
	}
}

func TestDecodeNullString(t *testing.T) {
	u := metadata.NewModule("mscorlib")
	ctor := newCtor(u, u.Core().String)

	// 0xFF is the null marker and consumes exactly one byte
	ca := decode(t, u, ctor, []byte{0x01, 0x00, 0xFF, 0x00, 0x00})
	requireDecoded(t, ca)

	if ca.Fixed[0].Value != nil {
		t.Errorf("value %v, want nil for null string", ca.Fixed[0].Value)
	}
}

func TestDecodeZeroParamsEmptyBlob(t *testing.T) {
	u := metadata.NewModule("mscorlib")
	ctor := newCtor(u)

	// Prolog tolerance: a truly empty blob for a zero-parameter
	// constructor decodes to zero arguments.
	ca := decode(t, u, ctor, nil)
	requireDecoded(t, ca)

	if len(ca.Fixed) != 0 || len(ca.Named) != 0 {
		t.Errorf("expected no arguments, got %d fixed / %d named", len(ca.Fixed), len(ca.Named))
	}
}

func TestDecodeOmittedNamedCount(t *testing.T) {
	u := metadata.NewModule("mscorlib")
	ctor := newCtor(u, u.Core().Int32)

	// Some producers drop the named-argument count when it would be zero.
	ca := decode(t, u, ctor, []byte{0x01, 0x00, 0x07, 0x00, 0x00, 0x00})
	requireDecoded(t, ca)
	if v := ca.Fixed[0].Value; v != any(int32(7)) {
		t.Errorf("value %v, want int32 7", v)
	}
}

func TestDecodeBadProlog(t *testing.T) {
	u := metadata.NewModule("mscorlib")
	ctor := newCtor(u, u.Core().Int32)

	ca := decode(t, u, ctor, []byte{0x02, 0x00, 0x2A, 0x00, 0x00, 0x00, 0x00, 0x00})
	if !ca.IsRaw() {
		t.Fatal("expected raw degradation for bad prolog")
	}
	if len(ca.Raw) != 8 {
		t.Errorf("raw bytes length %d, want 8 (the whole blob)", len(ca.Raw))
	}
	if ca.Fixed != nil || ca.Named != nil {
		t.Error("raw result must not carry partial arguments")
	}
}

func TestDecodeNullArray(t *testing.T) {
	u := metadata.NewModule("mscorlib")
	ctor := newCtor(u, &metadata.SZArraySig{Element: u.Core().Int32})

	ca := decode(t, u, ctor, []byte{0x01, 0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0x00, 0x00})
	requireDecoded(t, ca)

	arg := ca.Fixed[0]
	if arg.Value != nil {
		t.Errorf("value %v, want nil for null array", arg.Value)
	}
	if _, ok := arg.Type.(*metadata.SZArraySig); !ok {
		t.Errorf("resolved type %T, want array signature", arg.Type)
	}
}

func TestDecodeIntArray(t *testing.T) {
	u := metadata.NewModule("mscorlib")
	ctor := newCtor(u, &metadata.SZArraySig{Element: u.Core().Int32})

	ca := decode(t, u, ctor, []byte{
		0x01, 0x00,
		0x02, 0x00, 0x00, 0x00, // count 2
		0x0A, 0x00, 0x00, 0x00, // 10
		0x14, 0x00, 0x00, 0x00, // 20
		0x00, 0x00,
	})
	requireDecoded(t, ca)

	elems, ok := ca.Fixed[0].Value.([]attr.Argument)
	if !ok {
		t.Fatalf("value %T, want []attr.Argument", ca.Fixed[0].Value)
	}
	if len(elems) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(elems))
	}
	if elems[0].Value != any(int32(10)) || elems[1].Value != any(int32(20)) {
		t.Errorf("elements %v, %v, want 10, 20", elems[0].Value, elems[1].Value)
	}
}

func TestDecodeNegativeArrayCount(t *testing.T) {
	u := metadata.NewModule("mscorlib")
	ctor := newCtor(u, &metadata.SZArraySig{Element: u.Core().Int32})

	// -2 is not the null marker and must fault
	ca := decode(t, u, ctor, []byte{0x01, 0x00, 0xFE, 0xFF, 0xFF, 0xFF, 0x00, 0x00})
	if !ca.IsRaw() {
		t.Fatal("expected raw degradation for array count -2")
	}
}

func TestDecodeOversizedArrayCount(t *testing.T) {
	u := metadata.NewModule("mscorlib")
	ctor := newCtor(u, &metadata.SZArraySig{Element: u.Core().Byte})

	// count larger than the remaining bytes can ever satisfy
	ca := decode(t, u, ctor, []byte{0x01, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00})
	if !ca.IsRaw() {
		t.Fatal("expected raw degradation for oversized array count")
	}
}

func TestDecodeBoxedArray(t *testing.T) {
	u := metadata.NewModule("mscorlib")
	ctor := newCtor(u, u.Core().Object)

	ca := decode(t, u, ctor, []byte{
		0x01, 0x00,
		0x1D, 0x08, // descriptor: szarray of int32
		0x02, 0x00, 0x00, 0x00, // count 2
		0x2A, 0x00, 0x00, 0x00, // 42
		0x2B, 0x00, 0x00, 0x00, // 43
		0x00, 0x00,
	})
	requireDecoded(t, ca)

	arg := ca.Fixed[0]
	sa, ok := arg.Type.(*metadata.SZArraySig)
	if !ok {
		t.Fatalf("resolved type %T, want array of int32", arg.Type)
	}
	if sa.Element != metadata.TypeSig(u.Core().Int32) {
		t.Errorf("element type %s, want System.Int32", sa.Element)
	}
	elems := arg.Value.([]attr.Argument)
	if len(elems) != 2 || elems[1].Value != any(int32(43)) {
		t.Errorf("unexpected elements %v", elems)
	}
}

func TestDecodeRecursionLimit(t *testing.T) {
	u := metadata.NewModule("mscorlib")
	ctor := newCtor(u, u.Core().Object)

	// A long chain of boxed-object descriptors nests deeper than the
	// bound allows; the decode must fault, not blow the stack.
	data := []byte{0x01, 0x00}
	for i := 0; i < 300; i++ {
		data = append(data, 0x51)
	}
	ca := decode(t, u, ctor, data)
	if !ca.IsRaw() {
		t.Fatal("expected raw degradation for over-deep nesting")
	}
}

func TestDecodeResolvedEnum(t *testing.T) {
	u := metadata.NewModule("mscorlib")
	color := u.DefineEnum("Some.Ns", "Color", u.Core().Int16)
	ctor := newCtor(u, &metadata.ValueTypeSig{Type: color})

	// Underlying int16: exactly two value bytes
	ca := decode(t, u, ctor, []byte{0x01, 0x00, 0x03, 0x00, 0x00, 0x00})
	requireDecoded(t, ca)

	arg := ca.Fixed[0]
	if arg.Value != any(int16(3)) {
		t.Errorf("value %v (%T), want int16 3", arg.Value, arg.Value)
	}
	if metadata.SigType(arg.Type) != metadata.Type(color) {
		t.Errorf("resolved type %s, want the enum type", arg.Type)
	}
}

func TestDecodeUnresolvedEnumGuess(t *testing.T) {
	u := metadata.NewModule("mscorlib")
	unknown := &metadata.TypeRef{TypeNamespace: "Gone", TypeName: "Flags", Assembly: "Other"}
	ctor := newCtor(u, &metadata.ValueTypeSig{Type: unknown})

	// Unresolvable enum: the decoder guesses int32 and must consume the
	// blob exactly.
	ca := decode(t, u, ctor, []byte{0x01, 0x00, 0x2A, 0x00, 0x00, 0x00, 0x00, 0x00})
	requireDecoded(t, ca)
	if ca.Fixed[0].Value != any(int32(42)) {
		t.Errorf("value %v, want guessed int32 42", ca.Fixed[0].Value)
	}
}

func TestDecodeUnresolvedEnumGuessTrailingBytes(t *testing.T) {
	u := metadata.NewModule("mscorlib")
	unknown := &metadata.TypeRef{TypeNamespace: "Gone", TypeName: "Flags", Assembly: "Other"}
	ctor := newCtor(u, &metadata.ValueTypeSig{Type: unknown})

	// The real underlying type was int64, so two bytes are left over
	// after the guessed int32 read; the deferred verification must
	// reject the whole decode.
	ca := decode(t, u, ctor, []byte{0x01, 0x00, 0x2A, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00})
	if !ca.IsRaw() {
		t.Fatal("expected raw degradation when a guessed enum leaves trailing bytes")
	}
}

func TestDecodeEnumNotAnEnum(t *testing.T) {
	u := metadata.NewModule("mscorlib")
	// A resolvable value type that is not an enum cannot be decoded.
	point := &metadata.TypeDef{TypeNamespace: "Some.Ns", TypeName: "Point"}
	u.AddType(point)
	ctor := newCtor(u, &metadata.ValueTypeSig{Type: point})

	ca := decode(t, u, ctor, []byte{0x01, 0x00, 0x2A, 0x00, 0x00, 0x00, 0x00, 0x00})
	if !ca.IsRaw() {
		t.Fatal("expected raw degradation for a non-enum value type")
	}
}

func TestDecodeTypeLiteral(t *testing.T) {
	u := metadata.NewModule("mscorlib")
	ctor := newCtor(u, u.Core().Type)

	name := "Some.Ns.Thing"
	data := []byte{0x01, 0x00, byte(len(name))}
	data = append(data, name...)
	data = append(data, 0x00, 0x00)

	ca := decode(t, u, ctor, data)
	requireDecoded(t, ca)

	arg := ca.Fixed[0]
	if arg.Type != metadata.TypeSig(u.Core().Type) {
		t.Errorf("resolved type %s, want System.Type", arg.Type)
	}
	sig, ok := arg.Value.(metadata.TypeSig)
	if !ok {
		t.Fatalf("value %T, want a type signature", arg.Value)
	}
	if sig.String() != "Some.Ns.Thing" {
		t.Errorf("parsed type %s, want Some.Ns.Thing", sig)
	}
}

func TestDecodeTypeLiteralLocalResolution(t *testing.T) {
	u := metadata.NewModule("mscorlib")
	color := u.DefineEnum("Some.Ns", "Color", u.Core().Int32)
	ctor := newCtor(u, u.Core().Type)

	name := "Some.Ns.Color"
	data := []byte{0x01, 0x00, byte(len(name))}
	data = append(data, name...)
	data = append(data, 0x00, 0x00)

	ca := decode(t, u, ctor, data)
	requireDecoded(t, ca)

	sig := ca.Fixed[0].Value.(metadata.TypeSig)
	if metadata.SigType(sig) != metadata.Type(color) {
		t.Errorf("parsed type did not bind to the local definition")
	}
}

func TestDecodeTypeLiteralUnparseable(t *testing.T) {
	u := metadata.NewModule("mscorlib")
	ctor := newCtor(u, u.Core().Type)

	name := "Bad[["
	data := []byte{0x01, 0x00, byte(len(name))}
	data = append(data, name...)
	data = append(data, 0x00, 0x00)

	ca := decode(t, u, ctor, data)
	if !ca.IsRaw() {
		t.Fatal("expected raw degradation for an unparseable type name")
	}
}

func TestDecodeNamedArgs(t *testing.T) {
	u := metadata.NewModule("mscorlib")
	ctor := newCtor(u)

	data := []byte{
		0x01, 0x00, // prolog
		0x02, 0x00, // two named args
		0x53, 0x08, // field, int32
		0x05, 'C', 'o', 'u', 'n', 't',
		0x07, 0x00, 0x00, 0x00,
		0x54, 0x0E, // property, string
		0x04, 'N', 'a', 'm', 'e',
		0x02, 'h', 'i',
	}

	ca := decode(t, u, ctor, data)
	requireDecoded(t, ca)

	if len(ca.Named) != 2 {
		t.Fatalf("expected 2 named arguments, got %d", len(ca.Named))
	}

	field := ca.Named[0]
	if !field.IsField || field.Name == nil || *field.Name != "Count" {
		t.Errorf("unexpected first named argument %v", field)
	}
	if field.Value != any(int32(7)) {
		t.Errorf("field value %v, want int32 7", field.Value)
	}

	prop := ca.Named[1]
	if prop.IsField || prop.Name == nil || *prop.Name != "Name" {
		t.Errorf("unexpected second named argument %v", prop)
	}
	if prop.Value != any("hi") {
		t.Errorf("property value %v, want \"hi\"", prop.Value)
	}
}

func TestDecodeNamedEnumArg(t *testing.T) {
	u := metadata.NewModule("mscorlib")
	u.DefineEnum("Some.Ns", "Color", u.Core().Int16)
	ctor := newCtor(u)

	enumName := "Some.Ns.Color"
	data := []byte{
		0x01, 0x00,
		0x01, 0x00,
		0x53, 0x55, // field, enum descriptor
		byte(len(enumName)),
	}
	data = append(data, enumName...)
	data = append(data, 0x05, 'S', 'h', 'a', 'd', 'e')
	data = append(data, 0x02, 0x00) // int16 value 2

	ca := decode(t, u, ctor, data)
	requireDecoded(t, ca)

	na := ca.Named[0]
	if na.Value != any(int16(2)) {
		t.Errorf("value %v (%T), want int16 2", na.Value, na.Value)
	}
	if na.Type.Elem() != metadata.ElemValueType {
		t.Errorf("resolved type %s should be the enum value type", na.Type)
	}
}

func TestDecodeInvalidNamedKind(t *testing.T) {
	u := metadata.NewModule("mscorlib")
	ctor := newCtor(u)

	ca := decode(t, u, ctor, []byte{0x01, 0x00, 0x01, 0x00, 0x99, 0x08, 0x01, 'X', 0x00, 0x00, 0x00, 0x00})
	if !ca.IsRaw() {
		t.Fatal("expected raw degradation for invalid field/property byte")
	}
}

func TestDecodeGenericSubstitution(t *testing.T) {
	u := metadata.NewModule("mscorlib")

	holder := &metadata.ClassSig{Type: &metadata.TypeRef{TypeNamespace: "Some.Ns", TypeName: "Holder`1"}}
	ctor := &metadata.MethodRef{
		MethodName: ".ctor",
		Declaring: &metadata.TypeSpec{Sig: &metadata.GenericInstSig{
			Generic: holder,
			Args:    []metadata.TypeSig{u.Core().String},
		}},
		Sig: &metadata.MethodSig{HasThis: true, Params: []metadata.TypeSig{
			&metadata.GenericVarSig{Index: 0},
		}},
	}

	// The declared !0 parameter decodes as the instantiation's string.
	ca := decode(t, u, ctor, []byte{0x01, 0x00, 0x02, 'o', 'k', 0x00, 0x00})
	requireDecoded(t, ca)

	if ca.Fixed[0].Value != any("ok") {
		t.Errorf("value %v, want \"ok\"", ca.Fixed[0].Value)
	}
	if ca.Fixed[0].Type != metadata.TypeSig(u.Core().String) {
		t.Errorf("resolved type %s, want System.String", ca.Fixed[0].Type)
	}
}

func TestDecodeMissingSignature(t *testing.T) {
	u := metadata.NewModule("mscorlib")
	ctor := &metadata.MethodRef{MethodName: ".ctor"}

	ca := decode(t, u, ctor, []byte{0x01, 0x00})
	if !ca.IsRaw() {
		t.Fatal("expected raw degradation for a constructor without a signature")
	}
}

func TestDecodeTruncatedValue(t *testing.T) {
	u := metadata.NewModule("mscorlib")
	ctor := newCtor(u, u.Core().Int64)

	ca := decode(t, u, ctor, []byte{0x01, 0x00, 0x2A, 0x00})
	if !ca.IsRaw() {
		t.Fatal("expected raw degradation for truncated value bytes")
	}
}

func TestDecodeDeterministic(t *testing.T) {
	u := metadata.NewModule("mscorlib")
	ctor := newCtor(u, u.Core().Int32, u.Core().String)

	data := []byte{0x01, 0x00, 0x2A, 0x00, 0x00, 0x00, 0x02, 'h', 'i', 0x00, 0x00}
	first := decode(t, u, ctor, data)
	second := decode(t, u, ctor, data)

	if !reflect.DeepEqual(first, second) {
		t.Error("same bytes and constructor must decode identically")
	}
}

func TestDecodeHeap(t *testing.T) {
	u := metadata.NewModule("mscorlib")
	ctor := newCtor(u, u.Core().Int32)

	// Heap blob at offset 0: compressed length 8, then the attribute bytes.
	heap := blob.NewHeap([]byte{0x08, 0x01, 0x00, 0x2A, 0x00, 0x00, 0x00, 0x00, 0x00})

	ca := attr.DecodeHeap(u, ctor, heap, 0)
	requireDecoded(t, ca)
	if ca.Fixed[0].Value != any(int32(42)) {
		t.Errorf("value %v, want int32 42", ca.Fixed[0].Value)
	}
}

func TestDecodeHeapInvalidOffset(t *testing.T) {
	u := metadata.NewModule("mscorlib")
	ctor := newCtor(u, u.Core().Int32)
	heap := blob.NewHeap([]byte{0x01, 0x00})

	ca := attr.DecodeHeap(u, ctor, heap, 500)
	if !ca.IsRaw() {
		t.Fatal("expected raw degradation for an out-of-bounds heap offset")
	}
}
