package typename

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSimple(t *testing.T) {
	n, err := Parse("System.Int32")
	require.NoError(t, err)
	require.Equal(t, "System", n.Namespace)
	require.Equal(t, "Int32", n.Name)
	require.Empty(t, n.Assembly)
	require.Equal(t, "System.Int32", n.FullName())
}

func TestParseNoNamespace(t *testing.T) {
	n, err := Parse("MyAttribute")
	require.NoError(t, err)
	require.Empty(t, n.Namespace)
	require.Equal(t, "MyAttribute", n.Name)
}

func TestParseAssemblyQualified(t *testing.T) {
	n, err := Parse("Some.Ns.Color, MyAssembly, Version=1.0.0.0, Culture=neutral, PublicKeyToken=null")
	require.NoError(t, err)
	require.Equal(t, "Some.Ns", n.Namespace)
	require.Equal(t, "Color", n.Name)
	require.Equal(t, "MyAssembly", n.Assembly)
}

func TestParseNested(t *testing.T) {
	n, err := Parse("Ns.Outer+Middle+Inner")
	require.NoError(t, err)
	require.Equal(t, "Outer", n.Name)
	require.Equal(t, []string{"Middle", "Inner"}, n.Nested)
	require.Equal(t, "Ns.Outer+Middle+Inner", n.FullName())
}

func TestParseArrays(t *testing.T) {
	n, err := Parse("System.Int32[][]")
	require.NoError(t, err)
	require.Equal(t, 2, n.Arrays)
	require.Equal(t, "System.Int32[][]", n.String())
}

func TestParseGenericUnbracketed(t *testing.T) {
	n, err := Parse("System.Collections.Generic.List`1[System.Int32]")
	require.NoError(t, err)
	require.Equal(t, "List`1", n.Name)
	require.Len(t, n.GenericArgs, 1)
	require.Equal(t, "System.Int32", n.GenericArgs[0].FullName())
}

func TestParseGenericBracketed(t *testing.T) {
	n, err := Parse("System.Collections.Generic.Dictionary`2[[System.String, mscorlib],[Some.Ns.Color, Other]]")
	require.NoError(t, err)
	require.Len(t, n.GenericArgs, 2)
	require.Equal(t, "System.String", n.GenericArgs[0].FullName())
	require.Equal(t, "mscorlib", n.GenericArgs[0].Assembly)
	require.Equal(t, "Some.Ns.Color", n.GenericArgs[1].FullName())
	require.Equal(t, "Other", n.GenericArgs[1].Assembly)
}

func TestParseGenericArrayCombination(t *testing.T) {
	n, err := Parse("Ns.Box`1[[System.Byte, mscorlib]][]")
	require.NoError(t, err)
	require.Len(t, n.GenericArgs, 1)
	require.Equal(t, 1, n.Arrays)
}

func TestParseEscapes(t *testing.T) {
	n, err := Parse(`Weird\+Name`)
	require.NoError(t, err)
	require.Equal(t, "Weird+Name", n.Name)
	require.Empty(t, n.Nested)
}

func TestParseErrors(t *testing.T) {
	bad := []string{
		"",
		"Ns.",
		"Ns.Outer+",
		"List`1[",
		"List`1[[System.Int32]",
		"System.Int32[,]",
		"System.Int32&",
		"System.Int32*",
		`Trailing\`,
		"Ns.Name]extra",
	}

	for _, s := range bad {
		_, err := Parse(s)
		require.Error(t, err, "input %q", s)
	}
}

func TestRoundTripString(t *testing.T) {
	inputs := []string{
		"System.Int32",
		"Ns.Outer+Inner",
		"System.Int32[][]",
	}
	for _, s := range inputs {
		n, err := Parse(s)
		require.NoError(t, err)
		require.Equal(t, s, n.String())
	}
}
