package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"i18nextract/internal/interpolation"
)

func TestBuiltins_OrderAndNames(t *testing.T) {
	ps := Builtins()
	require.Len(t, ps, 20)
	assert.Equal(t, "commentSimpleQuote", ps[0].Name)
	assert.Equal(t, "JavascriptFilterDoubleQuote", ps[len(ps)-1].Name)

	seen := make(map[string]bool)
	for _, p := range ps {
		assert.False(t, seen[p.Name], "duplicate pattern %s", p.Name)
		seen[p.Name] = true
	}
}

func TestBuiltins_ReturnsCopy(t *testing.T) {
	ps := Builtins()
	ps[0].Name = "changed"
	assert.Equal(t, "commentSimpleQuote", Builtins()[0].Name)
}

func TestCompile_AllBuiltins(t *testing.T) {
	compiled, err := New().Compile(interpolation.Default())
	require.NoError(t, err)
	require.Len(t, compiled, 20)
	for _, c := range compiled {
		assert.True(t, strings.HasPrefix(c.Regexp.String(), "(?i)"), c.Name)
		assert.NotContains(t, c.Regexp.String(), interpolation.StartPlaceholder, c.Name)
	}
}

func TestCompile_UsesDelimiters(t *testing.T) {
	compiled, err := New().Compile(interpolation.Delimiters{Start: "[[", End: "]]"})
	require.NoError(t, err)

	var filter *Compiled
	for _, c := range compiled {
		if c.Name == "HtmlFilterSimpleQuote" {
			filter = c
		}
	}
	require.NotNil(t, filter)
	assert.True(t, filter.Regexp.MatchString(`[[ 'KEY' | translate ]]`))
	assert.False(t, filter.Regexp.MatchString(`{{ 'KEY' | translate }}`))
}

func TestNew_Additional(t *testing.T) {
	c := New(
		Additional{Expr: `tr\('([^']*)'\)`},
		Additional{Expr: `i18n\("([^"]*)"\)`},
	)
	ps := c.Patterns()
	require.Len(t, ps, 22)
	assert.Equal(t, "others_0", ps[20].Name)
	assert.Equal(t, Custom, ps[20].Role)
	assert.Equal(t, Global, ps[20].Mode)
	assert.Equal(t, "others_1", ps[21].Name)

	compiled, err := c.Compile(interpolation.Default())
	require.NoError(t, err)
	assert.True(t, compiled[20].Regexp.MatchString(`TR('x')`))
}

func TestNew_OverrideDoesNotAddPattern(t *testing.T) {
	c := New(Override{Pattern: "HtmlDirective", Transform: strings.ToUpper})
	assert.Len(t, c.Patterns(), 20)
	hooks := c.Hooks()
	require.Contains(t, hooks, "HtmlDirective")
	assert.Equal(t, "ABC", hooks["HtmlDirective"]("abc"))
	assert.Empty(t, c.UnknownOverrides())
}

func TestNew_OverrideChaining(t *testing.T) {
	strip, err := Rewrite(`^app\.`, "")
	require.NoError(t, err)
	c := New(
		Override{Pattern: "HtmlDirective", Transform: strip},
		Override{Pattern: "HtmlDirective", Transform: strings.ToUpper},
	)
	assert.Equal(t, "TITLE", c.Hooks()["HtmlDirective"]("app.title"))
}

func TestNew_UnknownOverride(t *testing.T) {
	c := New(Override{Pattern: "NoSuchPattern", Transform: strings.ToUpper})
	assert.Equal(t, []string{"NoSuchPattern"}, c.UnknownOverrides())
}

func TestCompile_InvalidCustomPattern(t *testing.T) {
	_, err := New(Additional{Expr: `(unclosed`}).Compile(interpolation.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "others_0")
}

func TestLookup(t *testing.T) {
	p, ok := New().Lookup("HtmlDirectivePluralFirst")
	require.True(t, ok)
	assert.Equal(t, PluralFirst, p.Role)
	assert.Equal(t, Scoped, p.Mode)

	_, ok = New().Lookup("missing")
	assert.False(t, ok)
}

func TestNamedTransform(t *testing.T) {
	fn, err := NamedTransform("Lowercase")
	require.NoError(t, err)
	assert.Equal(t, "abc", fn("ABC"))

	_, err = NamedTransform("reverse")
	assert.Error(t, err)
}

func TestRewrite(t *testing.T) {
	fn, err := Rewrite(`^(\w+)_(\w+)$`, "$1.$2")
	require.NoError(t, err)
	assert.Equal(t, "menu.title", fn("menu_title"))

	_, err = Rewrite(`[`, "")
	assert.Error(t, err)
}

func TestRoleAndModeString(t *testing.T) {
	assert.Equal(t, "plural-last", PluralLast.String())
	assert.Equal(t, "role(42)", Role(42).String())
	assert.Equal(t, "scoped", Scoped.String())
	assert.Equal(t, "global", Global.String())
}
