// Package i18n resolves the storefront's translation keys.
package i18n

import (
	"embed"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	PremiseValidationFail = "premiseDetails.premiseDetailsValidation.fail"
	ConsumptionInvalid    = "consumption.invalidValue"
	PurchaseReasonDate    = "purchaseReason.invalidDate"
	UsageOverUsage        = "usage.overUsage"

	DefaultLanguage = "en"
)

//go:embed translations/*.yaml
var files embed.FS

// Catalog maps dotted keys to texts for one language, falling back to
// English for keys the language lacks.
type Catalog struct {
	lang     string
	texts    map[string]string
	fallback map[string]string
}

func Load(lang string) (*Catalog, error) {
	fallback, err := readLanguage(DefaultLanguage)
	if err != nil {
		return nil, err
	}
	if lang == "" || lang == DefaultLanguage {
		return &Catalog{lang: DefaultLanguage, texts: fallback, fallback: fallback}, nil
	}
	texts, err := readLanguage(lang)
	if err != nil {
		return nil, err
	}
	return &Catalog{lang: lang, texts: texts, fallback: fallback}, nil
}

func readLanguage(lang string) (map[string]string, error) {
	raw, err := files.ReadFile(path.Join("translations", lang+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("unknown language %q: %w", lang, err)
	}
	var tree map[string]any
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("parse %s translations: %w", lang, err)
	}
	out := map[string]string{}
	flatten("", tree, out)
	return out, nil
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

func (c *Catalog) Language() string {
	return c.lang
}

// Translate returns the text for key with {{name}} placeholders filled
// from params. Unknown keys come back unchanged.
func (c *Catalog) Translate(key string, params map[string]string) string {
	text, ok := c.texts[key]
	if !ok {
		text, ok = c.fallback[key]
	}
	if !ok {
		return key
	}
	for name, value := range params {
		text = strings.ReplaceAll(text, "{{"+name+"}}", value)
	}
	return text
}
