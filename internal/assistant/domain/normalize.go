package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize converte texto para minúsculas sem diacríticos:
// "Lisboa" == "lisboa" == "LISBOA", "música" == "musica". É idempotente
// e é usada tanto nos predicados das regras como nos filtros de eventos.
func Normalize(s string) string {
	// o transformer tem estado interno, por isso constrói-se por chamada
	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(stripper, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}
