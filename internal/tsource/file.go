package tsource

import "strings"

// Span is a byte range of the source, End exclusive.
type Span struct {
	Start int
	End   int
}

// Specifier is one named binding of an import declaration.
type Specifier struct {
	Name  string // exported name
	Local string // local binding; equals Name unless aliased
}

// Import is an import declaration.
type Import struct {
	Span       Span
	From       string
	Specifiers []Specifier
	Default    string // default or namespace binding, if any
	Braces     *Span  // the {...} clause including braces, if any
}

// Property is a key: value entry of an object literal.
type Property struct {
	Key   string
	Span  Span // key through end of value
	Value Span
}

// ObjectLiteral is a {...} expression.
type ObjectLiteral struct {
	Span       Span
	Properties []Property
}

// Decorator is an @Name or @Name(...) expression.
type Decorator struct {
	Name   string
	Span   Span
	Object *ObjectLiteral // first argument, when it is an object literal
}

// Method is a class member with a body.
type Method struct {
	Name string
	Span Span
	Body Span // between the braces
}

// Class is a class declaration.
type Class struct {
	Name        string
	Decorators  []Decorator
	Span        Span // from export/class keyword through closing brace
	Body        Span // between the braces
	Constructor *Method
	Members     []string // names of fields and methods declared in the body
}

// File is the recovered structure of a source file.
type File struct {
	Src        string
	Imports    []Import
	Decorators []Decorator
	Classes    []Class
}

// Decorator returns the first top-level decorator with the given name.
func (f *File) Decorator(name string) *Decorator {
	for i := range f.Decorators {
		if f.Decorators[i].Name == name {
			return &f.Decorators[i]
		}
	}
	return nil
}

// ImportFrom returns the first import of module, or nil.
func (f *File) ImportFrom(module string) *Import {
	for i := range f.Imports {
		if f.Imports[i].From == module {
			return &f.Imports[i]
		}
	}
	return nil
}

// Binds reports whether any import binds name locally.
func (f *File) Binds(name string) bool {
	for _, imp := range f.Imports {
		if imp.Default == name {
			return true
		}
		for _, s := range imp.Specifiers {
			if s.Local == name {
				return true
			}
		}
	}
	return false
}

// ImportsEnd returns the offset just past the last import declaration, or -1
// when the file has none.
func (f *File) ImportsEnd() int {
	if len(f.Imports) == 0 {
		return -1
	}
	return f.Imports[len(f.Imports)-1].Span.End
}

// ClassDecoratedBy returns the first class carrying the named decorator.
func (f *File) ClassDecoratedBy(name string) *Class {
	for i := range f.Classes {
		for _, d := range f.Classes[i].Decorators {
			if d.Name == name {
				return &f.Classes[i]
			}
		}
	}
	return nil
}

// Text returns the source text of a span.
func (f *File) Text(s Span) string {
	return f.Src[s.Start:s.End]
}

// Property returns the property with the given key, or nil.
func (o *ObjectLiteral) Property(key string) *Property {
	if o == nil {
		return nil
	}
	for i := range o.Properties {
		if o.Properties[i].Key == key {
			return &o.Properties[i]
		}
	}
	return nil
}

// HasMember reports whether the class body declares name.
func (c *Class) HasMember(name string) bool {
	for _, m := range c.Members {
		if m == name {
			return true
		}
	}
	return false
}

func unquote(s string) string {
	if len(s) >= 2 && strings.ContainsRune(`'"`+"`", rune(s[0])) && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
