package model

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// Well-known property names.
const (
	PropClassID = "classId"
	PropTitle   = "title"
)

const stringType = "string"

// ParseError reports a malformed definition document.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parsing definition document: %s: %v", e.Reason, e.Err)
	}
	return "parsing definition document: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }

// Document is a parsed definition document. Parse guarantees exactly one
// entity below the root.
type Document struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Entities []Entity   `xml:",any"`
}

// Entity returns the item the document defines.
func (d *Document) Entity() *Entity { return &d.Entities[0] }

// Entity is the single item the document defines.
type Entity struct {
	XMLName    xml.Name
	Attrs      []xml.Attr `xml:",any,attr"`
	Name       string     `xml:"name"`
	Properties []Property `xml:"properties>property"`
	Extra      []Element  `xml:",any"`
}

// Property is a named preference.
type Property struct {
	Name  string     `xml:"name,attr"`
	Attrs []xml.Attr `xml:",any,attr"`
	Value Value      `xml:"value"`
}

// Value is the typed value of a property.
type Value struct {
	Type  string     `xml:"type,attr,omitempty"`
	Attrs []xml.Attr `xml:",any,attr"`
	Text  string     `xml:",chardata"`
}

// Element is an entity child the document model does not interpret. It is
// written back unchanged.
type Element struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Inner   string     `xml:",innerxml"`
}

// Parse decodes a definition document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Reason: "invalid XML", Err: err}
	}
	if err := checkEntities(&doc); err != nil {
		return nil, err
	}
	if e := doc.Entity(); strings.TrimSpace(e.Name) == "" {
		return nil, &ParseError{Reason: fmt.Sprintf("<%s> has no name", e.XMLName.Local)}
	}
	doc.stripNamespaces()
	return &doc, nil
}

// checkEntities rejects roots that do not wrap exactly one entity, including
// a bare entity used as the root.
func checkEntities(doc *Document) error {
	root := doc.XMLName.Local
	names := make([]string, len(doc.Entities))
	for i, e := range doc.Entities {
		names[i] = e.XMLName.Local
		if names[i] == "name" || names[i] == "properties" {
			return &ParseError{Reason: fmt.Sprintf("root <%s> is an entity; it must be wrapped in a root element such as <catalog>", root)}
		}
	}
	switch len(names) {
	case 0:
		return &ParseError{Reason: fmt.Sprintf("root <%s> has no entity element", root)}
	case 1:
		return nil
	}
	return &ParseError{Reason: fmt.Sprintf("root <%s> has %d entity elements (%s), want one", root, len(names), strings.Join(names, ", "))}
}

// Serialize encodes doc with an XML header and tab indentation.
func Serialize(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "\t")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding definition document: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Name returns the entity name.
func (d *Document) Name() string { return d.Entity().Name }

// Property returns the named property, or nil.
func (d *Document) Property(name string) *Property {
	e := d.Entity()
	for i := range e.Properties {
		if e.Properties[i].Name == name {
			return &e.Properties[i]
		}
	}
	return nil
}

// Rename sets the entity name.
func (d *Document) Rename(name string) {
	d.Entity().Name = name
}

// Retitle sets the value of the title property.
func (d *Document) Retitle(title string) {
	d.setString(PropTitle, title)
}

// RebindClassID sets the value of the classId property to typeName.
func (d *Document) RebindClassID(typeName string) {
	d.setString(PropClassID, typeName)
}

// setString sets a property's value, appending a string property when the
// document does not declare it.
func (d *Document) setString(name, value string) {
	if p := d.Property(name); p != nil {
		p.Value.Text = value
		return
	}
	e := d.Entity()
	e.Properties = append(e.Properties, Property{
		Name:  name,
		Value: Value{Type: stringType, Text: value},
	})
}

func (d *Document) stripNamespaces() {
	d.XMLName.Space = ""
	d.Attrs = plainAttrs(d.Attrs)

	e := d.Entity()
	e.XMLName.Space = ""
	e.Attrs = plainAttrs(e.Attrs)
	for i := range e.Properties {
		e.Properties[i].Attrs = plainAttrs(e.Properties[i].Attrs)
		e.Properties[i].Value.Attrs = plainAttrs(e.Properties[i].Value.Attrs)
	}
	for i := range e.Extra {
		e.Extra[i].XMLName.Space = ""
		e.Extra[i].Attrs = plainAttrs(e.Extra[i].Attrs)
	}
}

// plainAttrs drops namespace declarations and strips prefixes.
func plainAttrs(attrs []xml.Attr) []xml.Attr {
	var out []xml.Attr
	for _, a := range attrs {
		if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
			continue
		}
		out = append(out, xml.Attr{Name: xml.Name{Local: a.Name.Local}, Value: a.Value})
	}
	return out
}
