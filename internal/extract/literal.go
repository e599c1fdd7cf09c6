package extract

// parseLiteralList parses a bracketed, comma separated list of quoted string
// literals such as ['1 item', "%d items"]. Anything else, including numbers,
// identifiers or expressions, is rejected.
func parseLiteralList(src string) ([]string, bool) {
	p := &literalParser{src: src}
	p.skipSpace()
	if !p.consume('[') {
		return nil, false
	}

	var items []string
	for {
		p.skipSpace()
		if p.consume(']') {
			break
		}
		s, ok := p.quoted()
		if !ok {
			return nil, false
		}
		items = append(items, s)
		p.skipSpace()
		if p.consume(',') {
			continue
		}
		if p.consume(']') {
			break
		}
		return nil, false
	}

	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, false
	}
	return items, true
}

type literalParser struct {
	src string
	pos int
}

func (p *literalParser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *literalParser) consume(c byte) bool {
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *literalParser) quoted() (string, bool) {
	if p.pos >= len(p.src) {
		return "", false
	}
	q := p.src[p.pos]
	if q != '\'' && q != '"' {
		return "", false
	}
	p.pos++

	var out []byte
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		p.pos++
		switch c {
		case q:
			return string(out), true
		case '\\':
			if p.pos >= len(p.src) {
				return "", false
			}
			out = append(out, unescapeByte(p.src[p.pos]))
			p.pos++
		case '\n':
			return "", false
		default:
			out = append(out, c)
		}
	}
	return "", false
}

func unescapeByte(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return c
	}
}
