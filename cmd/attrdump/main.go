package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/clrkit/cilmeta/attr"
	"github.com/clrkit/cilmeta/blob"
	"github.com/clrkit/cilmeta/metadata"
)

func main() {
	var (
		blobHex     = flag.String("blob", "", "Attribute blob as hex (spaces allowed)")
		ctorSig     = flag.String("ctor", "", "Constructor signature, e.g. 'My.Ns.FooAttribute(int32, string)'")
		enums       = flag.String("enums", "", "Known enum definitions (Ns.Name:int16,Ns.Other:uint8)")
		corlib      = flag.String("corlib", "mscorlib", "Core library assembly name")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		debug       = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	if *debug {
		attr.SetLogger(newDebugLogger())
	}

	u := metadata.NewModule(*corlib)
	if err := defineEnums(u, *enums); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(u, *ctorSig, *blobHex); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *blobHex == "" || *ctorSig == "" {
		fmt.Fprintln(os.Stderr, "Usage: attrdump -ctor 'Ns.FooAttribute(int32, string)' -blob '01 00 2A 00 00 00 00 00'")
		fmt.Fprintln(os.Stderr, "       attrdump -i  (interactive mode)")
		os.Exit(1)
	}

	if err := run(u, *ctorSig, *blobHex); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(u *metadata.Module, ctorSig, blobHex string) error {
	ctor, err := parseCtor(u, ctorSig)
	if err != nil {
		return fmt.Errorf("parse constructor: %w", err)
	}
	data, err := parseHex(blobHex)
	if err != nil {
		return fmt.Errorf("parse blob: %w", err)
	}

	fmt.Printf("Constructor: %s.%s\n", ctor.Declaring.FullName(), ctor.MethodName)
	fmt.Printf("Blob: %d bytes\n\n", len(data))

	ca := attr.DecodeReader(u, ctor, blob.NewReader(data))
	fmt.Print(renderAttribute(ca))
	return nil
}

// renderAttribute formats one decoded attribute for display; shared with
// the interactive view.
func renderAttribute(ca *attr.CustomAttribute) string {
	var b strings.Builder
	if ca.IsRaw() {
		b.WriteString(errorStyle.Render("Undecodable blob, raw bytes kept:"))
		b.WriteString(fmt.Sprintf("\n  %x\n", ca.Raw))
		return b.String()
	}

	b.WriteString(fmt.Sprintf("Fixed arguments: %d\n", len(ca.Fixed)))
	for i, arg := range ca.Fixed {
		b.WriteString(fmt.Sprintf("  [%d] %s\n", i, resultStyle.Render(arg.String())))
	}
	b.WriteString(fmt.Sprintf("Named arguments: %d\n", len(ca.Named)))
	for _, na := range ca.Named {
		b.WriteString("  " + resultStyle.Render(na.String()) + "\n")
	}
	return b.String()
}

// parseCtor parses 'Ns.TypeName(param, param, ...)' into a constructor
// reference against the given universe.
func parseCtor(u *metadata.Module, s string) (*metadata.MethodRef, error) {
	open := strings.Index(s, "(")
	if open < 0 || !strings.HasSuffix(s, ")") {
		return nil, fmt.Errorf("signature %q must look like Ns.Type(params)", s)
	}
	ns, name := splitFullName(strings.TrimSpace(s[:open]))
	if name == "" {
		return nil, fmt.Errorf("signature %q has no type name", s)
	}

	var params []metadata.TypeSig
	inner := strings.TrimSpace(s[open+1 : len(s)-1])
	if inner != "" {
		for _, p := range strings.Split(inner, ",") {
			sig, err := paramSig(u, strings.TrimSpace(p))
			if err != nil {
				return nil, err
			}
			params = append(params, sig)
		}
	}

	return &metadata.MethodRef{
		MethodName: ".ctor",
		Declaring:  &metadata.TypeRef{TypeNamespace: ns, TypeName: name},
		Sig:        &metadata.MethodSig{HasThis: true, Params: params},
	}, nil
}

// paramSig maps one parameter token to a type signature. Unknown names
// are looked up in the universe; unresolved ones become plain references.
func paramSig(u *metadata.Module, s string) (metadata.TypeSig, error) {
	arrays := 0
	for strings.HasSuffix(s, "[]") {
		s = s[:len(s)-2]
		arrays++
	}

	sig := primitiveSig(u.Core(), s)
	if sig == nil {
		ns, name := splitFullName(s)
		if name == "" {
			return nil, fmt.Errorf("empty parameter type")
		}
		var t metadata.Type
		if t = u.FindLocal(ns, name); t == nil {
			if t = u.FindCorLib(ns, name); t == nil {
				t = &metadata.TypeRef{TypeNamespace: ns, TypeName: name}
			}
		}
		if def, ok := u.ResolveDef(t); ok && def.IsEnum() {
			sig = &metadata.ValueTypeSig{Type: t}
		} else {
			sig = &metadata.ClassSig{Type: t}
		}
	}

	for i := 0; i < arrays; i++ {
		sig = &metadata.SZArraySig{Element: sig}
	}
	return sig, nil
}

func primitiveSig(core *metadata.CoreTypes, s string) metadata.TypeSig {
	switch s {
	case "bool":
		return core.Boolean
	case "char":
		return core.Char
	case "sbyte", "int8":
		return core.SByte
	case "byte", "uint8":
		return core.Byte
	case "short", "int16":
		return core.Int16
	case "ushort", "uint16":
		return core.UInt16
	case "int", "int32":
		return core.Int32
	case "uint", "uint32":
		return core.UInt32
	case "long", "int64":
		return core.Int64
	case "ulong", "uint64":
		return core.UInt64
	case "float", "float32":
		return core.Single
	case "double", "float64":
		return core.Double
	case "string":
		return core.String
	case "object":
		return core.Object
	case "type", "System.Type":
		return core.Type
	default:
		return nil
	}
}

// defineEnums registers the -enums flag definitions so declared enum
// parameters decode at their real underlying width.
func defineEnums(u *metadata.Module, spec string) error {
	if spec == "" {
		return nil
	}
	for _, entry := range strings.Split(spec, ",") {
		parts := strings.SplitN(entry, ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("enum %q must look like Ns.Name:int16", entry)
		}
		underlying := primitiveSig(u.Core(), strings.TrimSpace(parts[1]))
		if underlying == nil || !underlying.Elem().IsEnumUnderlying() {
			return fmt.Errorf("enum %q has invalid underlying type %q", entry, parts[1])
		}
		ns, name := splitFullName(strings.TrimSpace(parts[0]))
		u.DefineEnum(ns, name, underlying)
	}
	return nil
}

func splitFullName(s string) (namespace, name string) {
	if i := strings.LastIndex(s, "."); i >= 0 {
		return s[:i], s[i+1:]
	}
	return "", s
}

func parseHex(s string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n':
			return -1
		}
		return r
	}, s)
	return hex.DecodeString(clean)
}
