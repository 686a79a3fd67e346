package service

import (
	"os"

	jsoniter "github.com/json-iterator/go"
)

// Fallback locale renderings of "subscribed" as the latin-only OCR whitelist
// can produce them.
var defaultSubscribePhrases = []string{
	"subscribed",
	"abonniert",
	"abonne",
	"suscrito",
	"inscrito",
	"iscritto",
	"abonnert",
	"prenumererar",
	"tilattu",
	"abone olundu",
}

// LoadPhrases reads the ordered list of locale-variant subscribe phrases
// from a flat JSON array file. Read once at startup; a missing file falls
// back to the built-in set.
func LoadPhrases(filename string) ([]string, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultSubscribePhrases, nil
		}
		return nil, err
	}
	var phrases []string
	if err := jsoniter.Unmarshal(raw, &phrases); err != nil {
		return nil, err
	}
	return phrases, nil
}
