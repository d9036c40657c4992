package language

import (
	"fmt"
	"sort"
	"strings"
)

// Language identifies a benchmark language by its ISO 639-1 code.
type Language struct {
	Code string
	Name string
}

var (
	DA = Language{Code: "da", Name: "Danish"}
	SV = Language{Code: "sv", Name: "Swedish"}
	NO = Language{Code: "no", Name: "Norwegian"}
	NB = Language{Code: "nb", Name: "Norwegian Bokmål"}
	NN = Language{Code: "nn", Name: "Norwegian Nynorsk"}
	IS = Language{Code: "is", Name: "Icelandic"}
	FO = Language{Code: "fo", Name: "Faroese"}
	DE = Language{Code: "de", Name: "German"}
	NL = Language{Code: "nl", Name: "Dutch"}
	EN = Language{Code: "en", Name: "English"}
)

var all = []Language{DA, SV, NO, NB, NN, IS, FO, DE, NL, EN}

// All returns every supported language keyed by code.
func All() map[string]Language {
	out := make(map[string]Language, len(all))
	for _, l := range all {
		out[l.Code] = l
	}
	return out
}

// Get resolves a language code, accepting upper case and surrounding space.
func Get(code string) (Language, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	for _, l := range all {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

// Parse resolves a list of language codes, failing on the first unknown one.
func Parse(codes []string) ([]Language, error) {
	out := make([]Language, 0, len(codes))
	for _, c := range codes {
		if strings.TrimSpace(c) == "" {
			continue
		}
		l, ok := Get(c)
		if !ok {
			return nil, fmt.Errorf("language: unknown code %q", c)
		}
		out = append(out, l)
	}
	return out, nil
}

// Norwegian reports whether the language is one of the Norwegian variants.
func Norwegian(l Language) bool {
	switch l.Code {
	case NO.Code, NB.Code, NN.Code:
		return true
	}
	return false
}

// Describe renders a human-readable list, e.g. "Danish and Swedish" or
// "all languages" when every supported language is present.
func Describe(langs []Language) string {
	if len(langs) == 0 || len(langs) >= len(all) {
		return "all languages"
	}
	if len(langs) == 1 {
		return "the language " + langs[0].Name
	}

	names := make([]string, 0, len(langs))
	for _, l := range langs {
		names = append(names, l.Name)
	}
	sort.Strings(names)
	return "the languages " + strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}
