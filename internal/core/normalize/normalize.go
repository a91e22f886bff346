// internal/core/normalize/normalize.go
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRegex      = regexp.MustCompile(`\s+`)
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]+`)
	currencyRegex        = regexp.MustCompile(`[R$\s]`)
)

// NormalizeString normaliza para comparação: trim, colapsa espaços internos,
// minúsculas. Toda chave de identidade/lookup passa por aqui.
func NormalizeString(s string) string {
	s = strings.TrimSpace(s)
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return strings.ToLower(s)
}

// NormalizeNameForDisplay normaliza para exibição: trim e colapso de
// espaços, preservando caixa.
func NormalizeNameForDisplay(s string) string {
	s = strings.TrimSpace(s)
	return whitespaceRegex.ReplaceAllString(s, " ")
}

// RemoveAccents decompõe em NFD e remove as marcas combinantes, para que
// "José" e "JOSE" colapsem na mesma chave.
func RemoveAccents(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
		return unicode.Is(unicode.Mn, r)
	}))
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

// NormalizeHeader prepara um cabeçalho de planilha para casamento de coluna:
// remove acentos, normaliza e descarta tudo que não for alfanumérico/espaço.
func NormalizeHeader(header string) string {
	s := RemoveAccents(NormalizeString(header))
	s = nonAlphanumericRegex.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// ParseMoneyToCents converte um valor monetário em texto (pt-BR ou decimal
// com ponto) para centavos inteiros. Quando `.` e `,` coexistem, o que
// aparece por último é o separador decimal ("1.234,56" e "1,234.56" ambos
// viram 123456). Entrada inválida degrada para 0; a função nunca falha,
// erro de digitação em planilha é esperado, não excepcional.
func ParseMoneyToCents(raw string) int64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}

	cleaned := currencyRegex.ReplaceAllString(s, "")

	lastDot := strings.LastIndex(cleaned, ".")
	lastComma := strings.LastIndex(cleaned, ",")

	switch {
	case lastComma > lastDot:
		// pt-BR: 1.234,56 -> remove pontos, vírgula vira decimal
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	case lastDot > lastComma:
		// 1,234.56 -> remove vírgulas
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0
	}
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// ParseQuantity converte uma quantidade em texto para inteiro, com o mesmo
// contrato de nunca falhar (0 em entrada inválida). Frações truncam em
// direção a zero; planilhas frequentemente serializam inteiros como "12.0".
func ParseQuantity(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

// LevenshteinDistance calcula a distância de edição entre duas strings.
func LevenshteinDistance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)
	for j := 0; j <= len(ra); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(rb); i++ {
		curr[0] = i
		for j := 1; j <= len(ra); j++ {
			if rb[i-1] == ra[j-1] {
				curr[j] = prev[j-1]
			} else {
				curr[j] = min3(prev[j-1]+1, curr[j-1]+1, prev[j]+1)
			}
		}
		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

// SimilarityRatio devolve 1 - distância/maxLen, em [0,1]. Strings iguais
// (inclusive ambas vazias) valem 1.
func SimilarityRatio(a, b string) float64 {
	if a == b {
		return 1
	}
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(LevenshteinDistance(a, b))/float64(maxLen)
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
