package tsource

// Parse tokenizes src and recovers its imports, top-level decorators and
// classes. Code it does not recognize is skipped.
func Parse(src string) (*File, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	f := &File{Src: src}

	var pending []Decorator
	for i := 0; i < len(toks); {
		t := toks[i]
		switch {
		case t.Kind == Ident && t.Text == "import" && !p.afterDot(i) && (p.isPunct(i+1, "{", "*") || p.is(i+1, Ident, String)):
			imp, next := p.parseImport(i)
			f.Imports = append(f.Imports, imp)
			i = next
		case t.Kind == Punct && t.Text == "@" && p.is(i+1, Ident):
			d, next := p.parseDecorator(i)
			f.Decorators = append(f.Decorators, d)
			pending = append(pending, d)
			i = next
		case t.Kind == Ident && t.Text == "class" && !p.afterDot(i):
			c, next := p.parseClass(i, pending)
			f.Classes = append(f.Classes, c)
			pending = nil
			i = next
		case p.isOpen(i):
			i = p.closing(i) + 1
		default:
			i++
		}
	}
	return f, nil
}

type parser struct {
	toks []Token
}

func (p *parser) is(i int, kinds ...Kind) bool {
	if i < 0 || i >= len(p.toks) {
		return false
	}
	for _, k := range kinds {
		if p.toks[i].Kind == k {
			return true
		}
	}
	return false
}

func (p *parser) isPunct(i int, texts ...string) bool {
	if !p.is(i, Punct) {
		return false
	}
	for _, t := range texts {
		if p.toks[i].Text == t {
			return true
		}
	}
	return false
}

func (p *parser) isIdent(i int, text string) bool {
	return p.is(i, Ident) && p.toks[i].Text == text
}

func (p *parser) afterDot(i int) bool {
	return p.isPunct(i-1, ".")
}

func (p *parser) isOpen(i int) bool {
	return p.isPunct(i, "(", "{", "[")
}

// closing returns the index of the bracket matching the opening bracket at i,
// or the last token index when it is unbalanced.
func (p *parser) closing(i int) int {
	depth := 0
	for j := i; j < len(p.toks); j++ {
		switch {
		case p.isOpen(j):
			depth++
		case p.isPunct(j, ")", "}", "]"):
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return len(p.toks) - 1
}

func (p *parser) parseImport(i int) (Import, int) {
	imp := Import{Span: Span{Start: p.toks[i].Start}}
	j := i + 1

	for j < len(p.toks) {
		t := p.toks[j]
		switch {
		case t.Kind == String:
			imp.From = unquote(t.Text)
			imp.Span.End = t.End
			if p.isPunct(j+1, ";") {
				imp.Span.End = p.toks[j+1].End
				j++
			}
			return imp, j + 1
		case p.isPunct(j, "{"):
			end := p.closing(j)
			imp.Braces = &Span{Start: t.Start, End: p.toks[end].End}
			imp.Specifiers = p.specifiers(j+1, end)
			j = end + 1
		case p.isPunct(j, "*") && p.isIdent(j+1, "as") && p.is(j+2, Ident):
			imp.Default = p.toks[j+2].Text
			j += 3
		case t.Kind == Ident && t.Text != "from" && t.Text != "type" && imp.Default == "" && imp.Braces == nil:
			imp.Default = t.Text
			j++
		case p.isPunct(j, ";"):
			// Malformed: no module specifier.
			imp.Span.End = t.End
			return imp, j + 1
		default:
			j++
		}
	}
	imp.Span.End = p.toks[len(p.toks)-1].End
	return imp, j
}

// specifiers parses "a, b as c" between indices from (inclusive) and to
// (exclusive).
func (p *parser) specifiers(from, to int) []Specifier {
	var out []Specifier
	for j := from; j < to; j++ {
		if !p.is(j, Ident) {
			continue
		}
		s := Specifier{Name: p.toks[j].Text, Local: p.toks[j].Text}
		if s.Name == "type" && p.is(j+1, Ident) && !p.isIdent(j+1, "as") {
			continue // "type X" modifier
		}
		if p.isIdent(j+1, "as") && p.is(j+2, Ident) {
			s.Local = p.toks[j+2].Text
			j += 2
		}
		out = append(out, s)
	}
	return out
}

func (p *parser) parseDecorator(i int) (Decorator, int) {
	j := i + 1
	name := p.toks[j].Text
	for p.isPunct(j+1, ".") && p.is(j+2, Ident) {
		j += 2
		name = p.toks[j].Text
	}
	d := Decorator{Name: name, Span: Span{Start: p.toks[i].Start, End: p.toks[j].End}}
	if !p.isPunct(j+1, "(") {
		return d, j + 1
	}
	end := p.closing(j + 1)
	d.Span.End = p.toks[end].End
	if p.isPunct(j+2, "{") {
		d.Object = p.parseObject(j + 2)
	}
	return d, end + 1
}

func (p *parser) parseObject(i int) *ObjectLiteral {
	end := p.closing(i)
	obj := &ObjectLiteral{Span: Span{Start: p.toks[i].Start, End: p.toks[end].End}}

	j := i + 1
	for j < end {
		key := p.toks[j]
		k := j + 1
		if (key.Kind == Ident || key.Kind == String) && p.isPunct(k, ":") {
			vstart := k + 1
			vend := p.valueEnd(vstart, end)
			if vend > vstart {
				value := Span{Start: p.toks[vstart].Start, End: p.toks[vend-1].End}
				obj.Properties = append(obj.Properties, Property{
					Key:   unquote(key.Text),
					Span:  Span{Start: key.Start, End: value.End},
					Value: value,
				})
			}
			k = vend
		} else {
			k = p.valueEnd(j, end)
		}
		j = k + 1 // past the comma
	}
	return obj
}

// valueEnd returns the index of the comma (or limit) ending the expression
// that starts at i.
func (p *parser) valueEnd(i, limit int) int {
	j := i
	for j < limit {
		switch {
		case p.isPunct(j, ","):
			return j
		case p.isOpen(j):
			j = p.closing(j) + 1
		default:
			j++
		}
	}
	return limit
}

func (p *parser) parseClass(i int, decorators []Decorator) (Class, int) {
	c := Class{Decorators: decorators, Span: Span{Start: p.toks[i].Start}}
	if p.isIdent(i-1, "export") {
		c.Span.Start = p.toks[i-1].Start
	} else if p.isIdent(i-1, "default") && p.isIdent(i-2, "export") {
		c.Span.Start = p.toks[i-2].Start
	}
	if p.is(i+1, Ident) && !p.isIdent(i+1, "extends") && !p.isIdent(i+1, "implements") {
		c.Name = p.toks[i+1].Text
	}

	open := i + 1
	for open < len(p.toks) && !p.isPunct(open, "{") {
		open++
	}
	if open >= len(p.toks) {
		c.Span.End = p.toks[len(p.toks)-1].End
		return c, len(p.toks)
	}
	end := p.closing(open)
	c.Body = Span{Start: p.toks[open].End, End: p.toks[end].Start}
	c.Span.End = p.toks[end].End

	for j := open + 1; j < end; {
		switch {
		case p.isIdent(j, "constructor") && p.isPunct(j+1, "("):
			params := p.closing(j + 1)
			if !p.isPunct(params+1, "{") {
				j = params + 1
				continue
			}
			body := p.closing(params + 1)
			c.Constructor = &Method{
				Name: "constructor",
				Span: Span{Start: p.toks[j].Start, End: p.toks[body].End},
				Body: Span{Start: p.toks[params+1].End, End: p.toks[body].Start},
			}
			j = body + 1
		case p.is(j, Ident) && !p.isPunct(j-1, ".", "@", ":", "=", "<", ",", "|", "&") && p.isPunct(j+1, "(", "=", ":", ";", "?", "!"):
			c.Members = append(c.Members, p.toks[j].Text)
			j++
		case p.isOpen(j):
			j = p.closing(j) + 1
		default:
			j++
		}
	}
	return c, end + 1
}
