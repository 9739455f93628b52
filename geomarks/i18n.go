package geomarks

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// DefaultLanguage is used when the requested language is missing.
const DefaultLanguage = "en"

// Language holds the UI strings of one language.
type Language struct {
	Name     string
	Strings  map[string]string
	Geomarks map[string]string
}

// Translations is the decoded i18n.json, keeping the language order of the file.
type Translations struct {
	order []string
	langs map[string]Language
}

// DecodeTranslations reads {lang: {languageName, <key>: <text>, geomarks: {...}}}.
func DecodeTranslations(data []byte) (*Translations, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, errors.Wrap(err, "decoding translations")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("translations must be a JSON object")
	}
	t := &Translations{langs: map[string]Language{}}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, errors.Wrap(err, "decoding translations")
		}
		code, _ := tok.(string)
		var raw map[string]json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, errors.Wrapf(err, "decoding language %q", code)
		}
		lang, err := decodeLanguage(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "decoding language %q", code)
		}
		if _, dup := t.langs[code]; !dup {
			t.order = append(t.order, code)
		}
		t.langs[code] = lang
	}
	return t, nil
}

func decodeLanguage(raw map[string]json.RawMessage) (Language, error) {
	lang := Language{Strings: map[string]string{}, Geomarks: map[string]string{}}
	for key, value := range raw {
		switch key {
		case "geomarks":
			if err := json.Unmarshal(value, &lang.Geomarks); err != nil {
				return lang, err
			}
		case "languageName":
			if err := json.Unmarshal(value, &lang.Name); err != nil {
				return lang, err
			}
		default:
			var s string
			// non-string entries are not UI strings
			if json.Unmarshal(value, &s) == nil {
				lang.Strings[key] = s
			}
		}
	}
	return lang, nil
}

// LoadTranslations reads and decodes an i18n.json file.
func LoadTranslations(path string) (*Translations, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading translations %s", path)
	}
	return DecodeTranslations(data)
}

// Languages returns the language codes in file order.
func (t *Translations) Languages() []string {
	if t == nil {
		return nil
	}
	return t.order
}

// Resolve returns code when it is supported, DefaultLanguage otherwise.
func (t *Translations) Resolve(code string) string {
	if t != nil {
		if _, ok := t.langs[code]; ok {
			return code
		}
	}
	return DefaultLanguage
}

// Lookup returns the translator for code after Resolve.
func (t *Translations) Lookup(code string) Translator {
	if t == nil {
		return Translator{}
	}
	return Translator{lang: t.langs[t.Resolve(code)]}
}

// Translator answers UI strings for one language; missing keys echo the key.
type Translator struct {
	lang Language
}

func (tr Translator) Name() string { return tr.lang.Name }

func (tr Translator) T(key string) string {
	if s, ok := tr.lang.Strings[key]; ok && s != "" {
		return s
	}
	return key
}

func (tr Translator) Geomark(name string) string {
	if s, ok := tr.lang.Geomarks[name]; ok && s != "" {
		return s
	}
	return name
}
