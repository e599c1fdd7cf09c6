package catalog

import "fmt"

// Role selects how the captures of a pattern are resolved into keys.
type Role int

const (
	// Simple: capture 1 is the key, optionally capture DefaultGroup is the default.
	Simple Role = iota
	// QuotedSingle: capture 1 is a single-quoted key, \' is unescaped.
	QuotedSingle
	// QuotedDouble: capture 1 is a double-quoted key, \" is unescaped.
	QuotedDouble
	// Ternary: capture 1 is an expression that may split into two keys.
	Ternary
	// PluralFirst: capture 1 is the plural literal, capture 2 the key.
	PluralFirst
	// PluralLast: capture 1 is the key, capture 2 the plural literal.
	PluralLast
	// ArraySingle: capture 1 is a ['A','B'] list of keys.
	ArraySingle
	// ArrayDouble: capture 1 is a ["A","B"] list of keys.
	ArrayDouble
	// Comment: a /* i18nextract */ marker followed by a quoted key.
	Comment
	// Custom: user supplied pattern, capture 1 is the key.
	Custom
)

var roleNames = [...]string{
	Simple:       "simple",
	QuotedSingle: "quoted-single",
	QuotedDouble: "quoted-double",
	Ternary:      "ternary",
	PluralFirst:  "plural-first",
	PluralLast:   "plural-last",
	ArraySingle:  "array-single",
	ArrayDouble:  "array-double",
	Comment:      "comment",
	Custom:       "custom",
}

func (r Role) String() string {
	if r < 0 || int(r) >= len(roleNames) {
		return fmt.Sprintf("role(%d)", int(r))
	}
	return roleNames[r]
}

// Mode selects how a pattern is run against a file.
type Mode int

const (
	// Global runs the pattern over the whole content.
	Global Mode = iota
	// Scoped first isolates every full match, then re-runs the pattern on
	// each isolated unit so one match cannot span unrelated occurrences.
	Scoped
)

func (m Mode) String() string {
	if m == Scoped {
		return "scoped"
	}
	return "global"
}

// Pattern is one named extraction rule.
type Pattern struct {
	Name string
	Role Role
	Mode Mode
	// Quote is the quote character unescaped in resolved keys, 0 for none.
	Quote byte
	// DefaultGroup is the capture holding a default value, 0 for none.
	DefaultGroup int
	// Expr is a regex template; see interpolation.Delimiters.Expand.
	Expr string
}

// Transform rewrites a resolved key. Returning "" keeps the original key.
type Transform func(key string) string

// Builtins returns the built-in patterns in catalog order.
func Builtins() []Pattern {
	out := make([]Pattern, len(builtins))
	copy(out, builtins)
	return out
}

const (
	singleQuoted = `'((?:\\.|[^'\\])*)'`
	doubleQuoted = `"((?:\\.|[^"\\])*)"`
	tagOpen      = `<(?:[^>"]|"(?:[^"]|/")*")*`
	filterTail   = `\s*\|\s*translate(:.*?)?\s*`
)

var builtins = []Pattern{
	{
		Name:  "commentSimpleQuote",
		Role:  Comment,
		Quote: '\'',
		Expr:  `/\*\s*i18nextract\s*\*/` + singleQuoted,
	},
	{
		Name:  "commentDoubleQuote",
		Role:  Comment,
		Quote: '"',
		Expr:  `/\*\s*i18nextract\s*\*/` + doubleQuoted,
	},
	{
		Name:  "HtmlFilterSimpleQuote",
		Role:  QuotedSingle,
		Mode:  Scoped,
		Quote: '\'',
		Expr:  `${start}\s*(?:::)?` + singleQuoted + filterTail + `${end}`,
	},
	{
		Name:  "HtmlFilterDoubleQuote",
		Role:  QuotedDouble,
		Mode:  Scoped,
		Quote: '"',
		Expr:  `${start}\s*(?:::)?` + doubleQuoted + filterTail + `${end}`,
	},
	{
		Name: "HtmlFilterTernary",
		Role: Ternary,
		Expr: `${start}\s*(?:::)?([^?]*\?[^:]*:[^|}]*)` + filterTail + `${end}`,
	},
	{
		Name: "HtmlDirective",
		Role: Simple,
		Mode: Scoped,
		Expr: tagOpen + `\stranslate(?:>|\s[^>]*>)([^<]*)`,
	},
	{
		Name:         "HtmlDirectiveSimpleQuote",
		Role:         Simple,
		DefaultGroup: 2,
		Expr:         tagOpen + `\stranslate='([^']*)'[^>]*>([^<]*)`,
	},
	{
		Name:         "HtmlDirectiveDoubleQuote",
		Role:         Simple,
		DefaultGroup: 2,
		Expr:         tagOpen + `\stranslate="([^"]*)"[^>]*>([^<]*)`,
	},
	{
		Name:  "HtmlDirectivePluralLast",
		Role:  PluralLast,
		Mode:  Scoped,
		Quote: '"',
		Expr:  `translate=` + doubleQuoted + `.*angular-plural-extract=` + doubleQuoted,
	},
	{
		Name:  "HtmlDirectivePluralFirst",
		Role:  PluralFirst,
		Mode:  Scoped,
		Quote: '"',
		Expr:  `angular-plural-extract=` + doubleQuoted + `.*translate=` + doubleQuoted,
	},
	{
		Name:  "HtmlNgBindHtml",
		Role:  QuotedSingle,
		Quote: '\'',
		Expr:  `ng-bind-html="\s*` + singleQuoted + filterTail + `"`,
	},
	{
		Name: "HtmlNgBindHtmlTernary",
		Role: Ternary,
		Expr: `ng-bind-html="\s*([^?]*?[^:]*:[^|}]*)` + filterTail + `"`,
	},
	{
		Name:  "JavascriptServiceSimpleQuote",
		Role:  QuotedSingle,
		Quote: '\'',
		Expr:  `\$translate\(\s*` + singleQuoted + `[^\)]*\)`,
	},
	{
		Name:  "JavascriptServiceDoubleQuote",
		Role:  QuotedDouble,
		Quote: '"',
		Expr:  `\$translate\(\s*` + doubleQuoted + `[^\)]*\)`,
	},
	{
		Name:  "JavascriptServiceArraySimpleQuote",
		Role:  ArraySingle,
		Quote: '\'',
		Expr:  `\$translate\((?:\s*(\[\s*(?:(?:'(?:(?:\.|[^.*'\\])*)')\s*,*\s*)+\s*\])\s*)\)`,
	},
	{
		Name:  "JavascriptServiceArrayDoubleQuote",
		Role:  ArrayDouble,
		Quote: '"',
		Expr:  `\$translate\((?:\s*(\[\s*(?:(?:"(?:(?:\.|[^.*'\\])*)")\s*,*\s*)+\s*\])\s*)\)`,
	},
	{
		Name:  "JavascriptServiceInstantSimpleQuote",
		Role:  QuotedSingle,
		Quote: '\'',
		Expr:  `\$translate\.instant\(\s*` + singleQuoted + `[^\)]*\)`,
	},
	{
		Name:  "JavascriptServiceInstantDoubleQuote",
		Role:  QuotedDouble,
		Quote: '"',
		Expr:  `\$translate\.instant\(\s*` + doubleQuoted + `[^\)]*\)`,
	},
	{
		Name:  "JavascriptFilterSimpleQuote",
		Role:  QuotedSingle,
		Mode:  Scoped,
		Quote: '\'',
		Expr:  `\$filter\(\s*'translate'\s*\)\s*\(\s*` + singleQuoted + `[^\)]*\)`,
	},
	{
		Name:  "JavascriptFilterDoubleQuote",
		Role:  QuotedDouble,
		Mode:  Scoped,
		Quote: '"',
		Expr:  `\$filter\(\s*"translate"\s*\)\s*\(\s*` + doubleQuoted + `[^\)]*\)`,
	},
}
