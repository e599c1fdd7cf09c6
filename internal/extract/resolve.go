package extract

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"i18nextract/internal/catalog"
	"i18nextract/internal/keystore"
)

var (
	ternaryDouble = regexp.MustCompile(`([^?]*)\?(?:\s*"((?:\\.|[^"\\])*)"\s*):\s*"((?:\\.|[^"\\])*)"\s*`)
	ternarySingle = regexp.MustCompile(`([^?]*)\?(?:\s*'((?:\\.|[^'\\])*)'\s*):\s*'((?:\\.|[^'\\])*)'\s*`)
)

// resolve turns one submatch into zero or more entries according to the
// pattern role.
func (e *Engine) resolve(p *catalog.Compiled, m []string) []keystore.Entry {
	if len(m) < 2 {
		return nil
	}

	var key, def string
	switch p.Role {
	case catalog.ArraySingle, catalog.ArrayDouble:
		return e.resolveArray(p, m[1])
	case catalog.PluralFirst, catalog.PluralLast:
		if len(m) < 3 {
			return nil
		}
		k, literal := m[1], m[2]
		if p.Role == catalog.PluralFirst {
			k, literal = literal, k
		}
		key = strings.TrimSpace(k)
		if forms, ok := parseLiteralList(literal); ok && len(forms) >= 2 {
			def = pluralPattern(forms)
		}
	default:
		key = strings.TrimSpace(m[1])
		if p.DefaultGroup > 0 && p.DefaultGroup < len(m) {
			def = strings.TrimSpace(m[p.DefaultGroup])
		}
	}

	if key == "" {
		return nil
	}
	key = unescapeQuote(key, p.Quote)

	if a, b, ok := e.splitTernary(key); ok {
		var out []keystore.Entry
		for _, k := range []string{a, b} {
			if entry, ok := e.entry(p, k, ""); ok {
				out = append(out, entry)
			}
		}
		return out
	}
	if p.Role == catalog.Ternary {
		return nil
	}

	if entry, ok := e.entry(p, key, def); ok {
		return []keystore.Entry{entry}
	}
	return nil
}

// resolveArray splits a ['A','B'] literal into independent keys.
func (e *Engine) resolveArray(p *catalog.Compiled, literal string) []keystore.Entry {
	raw := literal
	if p.Quote != 0 {
		raw = strings.ReplaceAll(raw, string(p.Quote), "")
	}
	raw = strings.NewReplacer("[", "", "]", "").Replace(raw)

	var out []keystore.Entry
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(strings.ReplaceAll(item, `\"`, `"`))
		if item == "" {
			continue
		}
		if entry, ok := e.entry(p, item, ""); ok {
			out = append(out, entry)
		}
	}
	return out
}

// splitTernary recognizes `cond ? 'A' : 'B'` once the interpolation
// delimiters are removed, trying double quotes first.
func (e *Engine) splitTernary(key string) (string, string, bool) {
	clean := e.ctx.Delimiters.Strip(key)
	quote := byte('"')
	m := ternaryDouble.FindStringSubmatch(clean)
	if m == nil {
		quote = '\''
		m = ternarySingle.FindStringSubmatch(clean)
	}
	if m == nil {
		return "", "", false
	}
	return unescapeQuote(m[2], quote), unescapeQuote(m[3], quote), true
}

// entry decodes HTML entities, applies the pattern hook and the key-as-text
// policy. Blank keys are dropped.
func (e *Engine) entry(p *catalog.Compiled, key, def string) (keystore.Entry, bool) {
	key = html.UnescapeString(key)
	def = html.UnescapeString(def)
	if hook := e.ctx.Hooks[p.Name]; hook != nil {
		if k := hook(key); k != "" {
			key = k
		}
	}
	if strings.TrimSpace(key) == "" {
		return keystore.Entry{}, false
	}
	if def == "" && e.ctx.KeyAsText {
		def = key
	}
	return keystore.Entry{Key: key, Value: def}, true
}

func unescapeQuote(s string, quote byte) string {
	if quote == 0 {
		return s
	}
	q := string(quote)
	return strings.ReplaceAll(s, `\`+q, q)
}

// pluralPattern renders an ICU plural message from 2 or 3 literal forms.
func pluralPattern(forms []string) string {
	var sb strings.Builder
	sb.WriteString("{NB, plural, one{")
	sb.WriteString(forms[0])
	sb.WriteString("} other{")
	sb.WriteString(forms[1])
	sb.WriteString("}")
	if len(forms) > 2 && forms[2] != "" {
		sb.WriteString(" ")
		sb.WriteString(forms[2])
	}
	sb.WriteString("}")
	return sb.String()
}
