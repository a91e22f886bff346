// internal/core/columns/columns.go
package columns

import (
	"fmt"
	"strings"

	"github.com/LuisEduardoPedra/analiseRevendas/internal/core/normalize"
	"github.com/schollz/closestmatch"
)

// Limiar de similaridade para o casamento fuzzy de cabeçalhos.
const fuzzyThreshold = 0.8

// Field descreve uma coluna semântica esperada: a chave interna, as
// variantes de cabeçalho aceitas (já normalizadas, em ordem de preferência)
// e se a coluna é obrigatória para o arquivo.
type Field struct {
	Key         string
	DisplayName string
	Variants    []string
	Required    bool
	Billing     bool
}

// Schema é o descritor de um formato de planilha: a lista ordenada de
// campos esperados. A ordem dos campos e das variantes define a prioridade
// do casamento, nunca a ordem de iteração de map.
type Schema struct {
	Name   string
	Fields []Field
}

// Mapping é o resultado da resolução de colunas de uma planilha.
type Mapping struct {
	// Resolved mapeia chave do campo -> cabeçalho físico ("" quando não
	// resolvido).
	Resolved        map[string]string
	MissingRequired []string
	Warnings        []string
	BillingDetected []string
}

// Header devolve o cabeçalho físico resolvido para um campo, ou "".
func (m Mapping) Header(key string) string {
	return m.Resolved[key]
}

// MapColumns resolve cada campo do schema para o cabeçalho físico que
// melhor casa, em três níveis (primeiro acerto vence, cabeçalhos já
// reivindicados ficam fora das buscas seguintes):
//  1. igualdade exata entre cabeçalho normalizado e variante;
//  2. continência (cabeçalho contém variante ou vice-versa);
//  3. fuzzy com SimilarityRatio >= 0.8.
func MapColumns(headers []string, schema Schema) Mapping {
	type normHeader struct {
		original   string
		normalized string
	}
	normalized := make([]normHeader, len(headers))
	for i, h := range headers {
		normalized[i] = normHeader{original: h, normalized: normalize.NormalizeHeader(h)}
	}

	m := Mapping{Resolved: make(map[string]string, len(schema.Fields))}
	used := make(map[string]bool)

	findBestMatch := func(variants []string) string {
		// Primeiro nível: igualdade exata.
		for _, variant := range variants {
			for _, h := range normalized {
				if used[h.original] {
					continue
				}
				if h.normalized == variant {
					return h.original
				}
			}
		}
		// Segundo nível: continência em qualquer direção.
		for _, variant := range variants {
			for _, h := range normalized {
				if used[h.original] {
					continue
				}
				if strings.Contains(h.normalized, variant) || strings.Contains(variant, h.normalized) {
					return h.original
				}
			}
		}
		// Terceiro nível: fuzzy.
		for _, variant := range variants {
			for _, h := range normalized {
				if used[h.original] {
					continue
				}
				if normalize.SimilarityRatio(h.normalized, variant) >= fuzzyThreshold {
					return h.original
				}
			}
		}
		return ""
	}

	for _, field := range schema.Fields {
		match := findBestMatch(field.Variants)
		m.Resolved[field.Key] = match
		if match != "" {
			used[match] = true
			if field.Billing {
				m.BillingDetected = append(m.BillingDetected, field.Key)
			}
		}
	}

	var optionalMissing []string
	for _, field := range schema.Fields {
		if m.Resolved[field.Key] != "" {
			continue
		}
		if field.Required {
			m.MissingRequired = append(m.MissingRequired, field.Key)
		} else if !field.Billing {
			optionalMissing = append(optionalMissing, field.DisplayName)
		}
	}

	if len(optionalMissing) > 0 {
		m.Warnings = append(m.Warnings,
			fmt.Sprintf("Colunas opcionais não encontradas: %s", strings.Join(optionalMissing, ", ")))
	}

	return m
}

// MissingRequiredError monta a mensagem de erro para colunas obrigatórias
// não resolvidas, sugerindo o cabeçalho existente mais próximo de cada uma.
func MissingRequiredError(headers []string, schema Schema, m Mapping, context string) string {
	var parts []string
	for _, key := range m.MissingRequired {
		field := schema.fieldByKey(key)
		name := key
		if field != nil {
			name = field.DisplayName
		}
		if suggestion := suggestHeader(headers, field); suggestion != "" {
			parts = append(parts, fmt.Sprintf("%s (coluna mais parecida: %q)", name, suggestion))
		} else {
			parts = append(parts, name)
		}
	}
	return fmt.Sprintf("Colunas obrigatórias faltando em %s: %s", context, strings.Join(parts, ", "))
}

// suggestHeader procura, entre os cabeçalhos do arquivo, o mais próximo da
// variante principal do campo. É só ajuda de diagnóstico; a resolução de
// colunas em si nunca passa por aqui.
func suggestHeader(headers []string, field *Field) string {
	if field == nil || len(field.Variants) == 0 || len(headers) == 0 {
		return ""
	}
	normalized := make([]string, 0, len(headers))
	byNormalized := make(map[string]string, len(headers))
	for _, h := range headers {
		n := normalize.NormalizeHeader(h)
		if n == "" {
			continue
		}
		if _, seen := byNormalized[n]; !seen {
			byNormalized[n] = h
			normalized = append(normalized, n)
		}
	}
	if len(normalized) == 0 {
		return ""
	}
	cm := closestmatch.New(normalized, []int{2, 3})
	match := cm.Closest(field.Variants[0])
	if match == "" {
		return ""
	}
	return byNormalized[match]
}

func (s Schema) fieldByKey(key string) *Field {
	for i := range s.Fields {
		if s.Fields[i].Key == key {
			return &s.Fields[i]
		}
	}
	return nil
}
