package adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"i18nextract/internal/translations"
)

const (
	defaultPOTPrefix = "template"
	defaultPOTSuffix = ".pot"
)

const potHeader = `msgid ""
msgstr ""
"Content-Type: text/plain; charset=UTF-8\n"
"Content-Transfer-Encoding: 8bit\n"
"Project-Id-Version: \n"
`

// POTAdapter writes a single gettext template holding every key.
type POTAdapter struct {
	params Params
}

// Init applies the template defaults.
func (a *POTAdapter) Init(p Params) error {
	if p.Prefix == "" {
		p.Prefix = defaultPOTPrefix
	}
	if p.Suffix == "" || p.Suffix == defaultJSONSuffix {
		p.Suffix = defaultPOTSuffix
	}
	if p.Dest == "" {
		p.Dest = "."
	}
	a.params = p
	return nil
}

// Path returns the template path.
func (a *POTAdapter) Path() string {
	return filepath.Join(a.params.Dest, a.params.Prefix+a.params.Suffix)
}

// Persist writes the template.
func (a *POTAdapter) Persist(ctx context.Context, set *translations.Set) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(a.params.Dest, 0755); err != nil {
		return fmt.Errorf("create destination: %w", err)
	}

	path := a.Path()
	if err := os.WriteFile(path, []byte(RenderPOT(set)), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	log.Info().Str("path", path).Int("keys", set.Len()).Msg("Wrote gettext template")
	return nil
}

// RenderPOT renders the template text, keys sorted, defaults as extracted
// comments.
func RenderPOT(set *translations.Set) string {
	var b strings.Builder
	b.WriteString(potHeader)

	flat := set.Flat()
	for _, key := range set.Keys() {
		b.WriteString("\n")
		if def := flat[key]; def != "" {
			for _, line := range strings.Split(def, "\n") {
				b.WriteString("#. ")
				b.WriteString(line)
				b.WriteString("\n")
			}
		}
		fmt.Fprintf(&b, "msgid %s\nmsgstr \"\"\n", quotePO(key))
	}
	return b.String()
}

var poEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\t", `\t`,
	"\r", `\r`,
)

func quotePO(s string) string {
	return `"` + poEscaper.Replace(s) + `"`
}
