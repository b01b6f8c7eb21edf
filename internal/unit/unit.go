// Package unit canonicalizes units of measure against the institutional
// allowed list.
package unit

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Allowed is the institutional list of accepted units of measure.
var Allowed = []string{
	"ATIVIDADE", "BALDE", "BANDEIJA", "BARRA", "BISNAGA", "BLOCO",
	"BOBINA", "BOLSA", "BOMBONA", "CARGA", "CAIXA", "CENTÍMETRO",
	"CENTO", "CHAPA", "CONJUNTO", "DÚZIA", "EMBALAGEM", "ENVELOPE",
	"FARDO", "FOLHA", "FRASCO", "GALÃO", "GARRAFA", "GRAMA", "JOGO",
	"LATA", "LITRO", "LITRO DILUÍDO", "MAÇO", "METRO", "METRO CÚBICO",
	"METRO LINEAR", "METRO QUADRADO", "MILHEIRO", "MILILITRO", "PACOTE",
	"PAR", "PEÇA", "POTE", "REFIL", "RECIPIENTE", "RESMA", "ROLO",
	"SACO", "TABLETE", "TAMBOR", "TONELADA", "TUBO", "UNIDADE", "VIDRO",
	"QUILOGRAMA",
}

// synonyms maps common abbreviations to the canonical form.
var synonyms = map[string]string{
	"M":              "METRO",
	"M.":             "METRO",
	"METROS":         "METRO",
	"ML":             "MILILITRO",
	"M L":            "MILILITRO",
	"MILILITROS":     "MILILITRO",
	"L":              "LITRO",
	"LITROS":         "LITRO",
	"KG":             "QUILOGRAMA",
	"KILO":           "QUILOGRAMA",
	"QUILO":          "QUILOGRAMA",
	"G":              "GRAMA",
	"GRAMAS":         "GRAMA",
	"M2":             "METRO QUADRADO",
	"M²":             "METRO QUADRADO",
	"M3":             "METRO CÚBICO",
	"M³":             "METRO CÚBICO",
	"M/L":            "METRO LINEAR",
	"METRO LINEAR.":  "METRO LINEAR",
	"UN":             "UNIDADE",
	"UND":            "UNIDADE",
	"UNID":           "UNIDADE",
	"UNIDADE(S)":     "UNIDADE",
}

// Normalize returns the canonical unit for txt, or "" when the unit is
// not recognized. Matching is case-, accent- and punctuation-insensitive.
func Normalize(txt string) string {
	if txt == "" {
		return ""
	}
	u := strings.ToUpper(strings.TrimSpace(txt))
	u = strings.Join(strings.Fields(u), " ")
	if canon, ok := synonyms[u]; ok {
		u = canon
	}
	for _, cand := range Allowed {
		if cand == u {
			return cand
		}
	}
	pu := plain(u)
	for _, cand := range Allowed {
		if plain(cand) == pu {
			return cand
		}
	}
	return ""
}

// plain strips diacritics and punctuation for tolerant comparison.
func plain(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	var b strings.Builder
	for _, r := range out {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
