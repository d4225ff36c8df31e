// Package typename parses reflection-style .NET type names as they
// appear in custom-attribute blobs: "Ns.Name", optionally
// assembly-qualified ("Ns.Name, Assembly, Version=..."), with nested
// types ("Outer+Inner"), generic arity and argument lists
// ("List`1[[System.Int32, mscorlib]]" or "List`1[System.Int32]") and
// SZ-array suffixes ("Ns.Name[]").
//
// Parsing is purely syntactic; binding names to type definitions is the
// caller's concern. Only a malformed name is an error.
package typename
