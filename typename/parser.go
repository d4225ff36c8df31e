package typename

import (
	"errors"
	"fmt"
	"strings"
)

// Name is a parsed reflection-style type name.
type Name struct {
	Namespace string
	Name      string
	// Nested holds nested type names, outermost first.
	Nested []string
	// Assembly is the simple name of the qualifying assembly, empty when
	// the name is not assembly-qualified. Version/Culture/PublicKeyToken
	// attributes are accepted and discarded.
	Assembly    string
	GenericArgs []*Name
	// Arrays is the number of trailing "[]" suffixes.
	Arrays int
}

// FullName returns "Namespace.Name" with nested segments joined by '+',
// without generic arguments or array suffixes.
func (n *Name) FullName() string {
	var b strings.Builder
	if n.Namespace != "" {
		b.WriteString(n.Namespace)
		b.WriteByte('.')
	}
	b.WriteString(n.Name)
	for _, nested := range n.Nested {
		b.WriteByte('+')
		b.WriteString(nested)
	}
	return b.String()
}

func (n *Name) String() string {
	var b strings.Builder
	b.WriteString(n.FullName())
	if len(n.GenericArgs) > 0 {
		b.WriteByte('[')
		for i, a := range n.GenericArgs {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(a.String())
		}
		b.WriteByte(']')
	}
	for i := 0; i < n.Arrays; i++ {
		b.WriteString("[]")
	}
	return b.String()
}

// Parse parses a reflection-style type name. Only a syntactically
// malformed name is an error; whether the name binds to anything is not
// this package's concern.
func Parse(s string) (*Name, error) {
	p := &parser{s: strings.TrimSpace(s)}
	n, err := p.parse(true)
	if err != nil {
		return nil, err
	}
	p.skipSpaces()
	if p.pos != len(p.s) {
		return nil, fmt.Errorf("unexpected %q at position %d", p.s[p.pos], p.pos)
	}
	return n, nil
}

type parser struct {
	s   string
	pos int
}

// parse reads one type name. When qualified is true the name may carry a
// trailing assembly qualifier; inside an unbracketed generic argument it
// may not, because the comma separates arguments instead.
func (p *parser) parse(qualified bool) (*Name, error) {
	n := &Name{}

	first, err := p.ident()
	if err != nil {
		return nil, err
	}
	if first == "" {
		return nil, errors.New("empty type name")
	}
	if i := strings.LastIndexByte(first, '.'); i >= 0 {
		n.Namespace, n.Name = first[:i], first[i+1:]
	} else {
		n.Name = first
	}
	if n.Name == "" {
		return nil, errors.New("empty type name after namespace")
	}

	for p.peek() == '+' {
		p.pos++
		id, err := p.ident()
		if err != nil {
			return nil, err
		}
		if id == "" {
			return nil, errors.New("empty nested type name")
		}
		n.Nested = append(n.Nested, id)
	}

	if p.peek() == '[' {
		// "[" starts a generic argument list unless it closes
		// immediately (array) or with a comma (multi-dimensional).
		if c := p.peekAt(1); c != ']' && c != ',' {
			if err := p.parseGenericArgs(n); err != nil {
				return nil, err
			}
		}
	}

	for p.peek() == '[' {
		if p.peekAt(1) != ']' {
			return nil, errors.New("unsupported array shape")
		}
		p.pos += 2
		n.Arrays++
	}

	if qualified {
		p.skipSpaces()
		if p.peek() == ',' {
			p.pos++
			if err := p.parseAssembly(n); err != nil {
				return nil, err
			}
		}
	}

	return n, nil
}

func (p *parser) parseGenericArgs(n *Name) error {
	p.pos++ // consume '['
	for {
		p.skipSpaces()
		var arg *Name
		var err error
		if p.peek() == '[' {
			// Bracketed argument, may be assembly-qualified.
			p.pos++
			arg, err = p.parse(true)
			if err != nil {
				return err
			}
			p.skipSpaces()
			if p.peek() != ']' {
				return errors.New("unterminated generic argument")
			}
			p.pos++
		} else {
			arg, err = p.parse(false)
			if err != nil {
				return err
			}
		}
		n.GenericArgs = append(n.GenericArgs, arg)
		p.skipSpaces()
		if p.peek() == ',' {
			p.pos++
			continue
		}
		break
	}
	if p.peek() != ']' {
		return errors.New("unterminated generic argument list")
	}
	p.pos++
	return nil
}

// parseAssembly reads an assembly qualifier up to the enclosing ']' or
// end of input and keeps only the simple name.
func (p *parser) parseAssembly(n *Name) error {
	start := p.pos
	depth := 0
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		if c == '[' {
			depth++
		} else if c == ']' {
			if depth == 0 {
				break
			}
			depth--
		}
		p.pos++
	}
	spec := strings.TrimSpace(p.s[start:p.pos])
	if spec == "" {
		return errors.New("empty assembly qualifier")
	}
	if i := strings.IndexByte(spec, ','); i >= 0 {
		spec = strings.TrimSpace(spec[:i])
	}
	n.Assembly = spec
	return nil
}

// ident reads an identifier up to the next structural character,
// honoring backslash escapes.
func (p *parser) ident() (string, error) {
	var b strings.Builder
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		switch c {
		case '\\':
			if p.pos+1 >= len(p.s) {
				return "", errors.New("dangling escape at end of name")
			}
			b.WriteByte(p.s[p.pos+1])
			p.pos += 2
		case '[', ']', ',', '+':
			return b.String(), nil
		case '&', '*':
			return "", fmt.Errorf("unsupported type suffix %q", string(c))
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return b.String(), nil
}

func (p *parser) peek() byte {
	return p.peekAt(0)
}

func (p *parser) peekAt(off int) byte {
	if p.pos+off >= len(p.s) {
		return 0
	}
	return p.s[p.pos+off]
}

func (p *parser) skipSpaces() {
	for p.pos < len(p.s) && p.s[p.pos] == ' ' {
		p.pos++
	}
}
