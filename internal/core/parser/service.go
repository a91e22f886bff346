// Package parser converte as planilhas enviadas (marcas, revendedores
// ativos, Geral transacional e ranking) nos modelos canônicos do domínio.
package parser

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/LuisEduardoPedra/analiseRevendas/internal/api/responses"
	"github.com/LuisEduardoPedra/analiseRevendas/internal/core/columns"
	"github.com/LuisEduardoPedra/analiseRevendas/internal/core/normalize"
	"github.com/LuisEduardoPedra/analiseRevendas/internal/core/sheets"
	"github.com/LuisEduardoPedra/analiseRevendas/internal/domain"
	"go.uber.org/zap"
)

// Service define a interface para o parse das planilhas da análise.
type Service interface {
	ParseBrandFile(file io.Reader, filename string, brand domain.BrandID) domain.ParseResult
	ParseBrandRows(headers []string, rows []domain.RawRow, brand domain.BrandID) domain.ParseResult

	ParseRosterFile(file io.Reader, filename string) domain.RosterParseResult
	ParseRosterRows(headers []string, rows []domain.RawRow) domain.RosterParseResult

	ParseGeralFile(file io.Reader, filename string) domain.GeralParseResult
	ParseGeralRows(headers []string, rows []domain.RawRow) domain.GeralParseResult

	ParseRankingFile(file io.Reader, filename string) domain.RankingParseResult
	ParseRankingRows(headers []string, rows []domain.RawRow) domain.RankingParseResult
}

type service struct{}

// NewService cria uma nova instância do serviço de parse.
func NewService() Service {
	return &service{}
}

// normalizeTipo categoriza o tipo de transação. Linhas de marca sem tipo
// reconhecível contam como Venda; a Geral usa defaultTipo Outro.
func normalizeTipo(value string, defaultTipo domain.TransactionType) domain.TransactionType {
	normalized := normalize.NormalizeString(value)
	if normalized == "" {
		return defaultTipo
	}
	switch {
	case strings.Contains(normalized, "brinde"):
		return domain.TipoBrinde
	case strings.Contains(normalized, "doacao") || strings.Contains(normalized, "doação"):
		return domain.TipoDoacao
	case strings.Contains(normalized, "venda"):
		return domain.TipoVenda
	}
	return defaultTipo
}

// normalizeEntrega categoriza o tipo de entrega preservando o texto original.
func normalizeEntrega(value string) (domain.DeliveryType, string) {
	original := strings.TrimSpace(value)
	if original == "" {
		return domain.EntregaOutro, ""
	}
	lower := strings.ToLower(original)
	switch {
	case strings.Contains(lower, "endereço") || strings.Contains(lower, "endereco") || strings.Contains(lower, "entrega"):
		return domain.EntregaFrete, original
	case strings.Contains(lower, "retirar") || strings.Contains(lower, "central") || strings.Contains(lower, "retirada"):
		return domain.EntregaRetira, original
	}
	return domain.EntregaOutro, original
}

// Padrões de status de faturamento, na ordem de precedência: um status que
// case Faturado nunca cai nos baldes seguintes.
var (
	faturadoPatterns = []string{
		"faturado", "faturada", "fat",
		"aprovado", "aprovada",
		"concluido", "concluída", "concluida",
		"finalizado", "finalizada",
		"emitido", "emitida",
		"processado", "processada",
		"ok", "sim", "yes", "s", "y", "1", "true",
	}
	canceladoPatterns = []string{
		"cancelado", "cancelada", "cancel",
		"estornado", "estornada", "estorno",
		"devolvido", "devolvida", "devolucao", "devolução",
		"rejeitado", "rejeitada",
		"nao", "não", "no", "n", "0", "false",
	}
	pendentePatterns = []string{
		"pendente", "aguardando", "em processamento", "em processo",
		"aberto", "aberta", "novo", "nova",
		"analise", "análise", "em analise",
	}
)

// normalizeStatusFaturamento classifica o texto livre de status em
// Faturado, Cancelado, Pendente ou Desconhecido.
func normalizeStatusFaturamento(value string) (domain.BillingStatus, string, bool) {
	original := strings.TrimSpace(value)
	if original == "" {
		return domain.FaturamentoDesconhecido, "", false
	}
	lower := strings.ToLower(original)

	for _, pattern := range faturadoPatterns {
		if strings.Contains(lower, pattern) {
			return domain.FaturamentoFaturado, original, true
		}
	}
	for _, pattern := range canceladoPatterns {
		if strings.Contains(lower, pattern) {
			return domain.FaturamentoCancelado, original, false
		}
	}
	for _, pattern := range pendentePatterns {
		if strings.Contains(lower, pattern) {
			return domain.FaturamentoPendente, original, false
		}
	}
	return domain.FaturamentoDesconhecido, original, false
}

// normalizeCodigo trata códigos vindos do Excel como texto, removendo o
// sufixo ".0" da conversão número -> string.
func normalizeCodigo(value string) string {
	str := strings.TrimSpace(value)
	str = strings.TrimSuffix(str, ".0")
	return str
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

// #############################################################################
// #                            PLANILHA DE MARCA                              #
// #############################################################################

func (svc *service) ParseBrandFile(file io.Reader, filename string, brand domain.BrandID) domain.ParseResult {
	headers, rows, err := sheets.ReadFirstSheet(file, filename)
	if err != nil {
		return domain.ParseResult{
			Errors: []string{fmt.Sprintf("Erro ao ler arquivo %s: %v", filename, err)},
		}
	}
	return svc.ParseBrandRows(headers, rows, brand)
}

func (svc *service) ParseBrandRows(headers []string, rows []domain.RawRow, brand domain.BrandID) domain.ParseResult {
	result := domain.ParseResult{RowCount: len(rows)}
	brandName := domain.Brands[brand].Name

	if len(rows) == 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("Planilha vazia: %s", brandName))
		return result
	}

	schema := columns.BrandSchema()
	mapping := columns.MapColumns(headers, schema)
	result.Warnings = append(result.Warnings, mapping.Warnings...)
	result.BillingColumnsDetected = mapping.BillingDetected
	result.HasBillingColumns = len(mapping.BillingDetected) > 0

	if result.HasBillingColumns {
		responses.Logger().Info("colunas de faturamento detectadas",
			zap.String("marca", brandName),
			zap.Strings("colunas", mapping.BillingDetected))
	}

	if len(mapping.MissingRequired) > 0 {
		result.Errors = append(result.Errors,
			columns.MissingRequiredError(headers, schema, mapping, brandName))
		return result
	}

	for i, row := range rows {
		rowNum := i + 2 // primeira linha de dados na planilha, após o cabeçalho

		item := parseBrandRow(row, mapping, brand, result.HasBillingColumns)
		if item.NomeRevendedoraNormalized == "" {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Linha %d: Nome da revendedora vazio, linha ignorada", rowNum))
			continue
		}
		result.Items = append(result.Items, item)
	}

	if len(result.Items) == 0 {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Nenhum item válido encontrado em %s", brandName))
		return result
	}

	result.Success = true
	return result
}

func parseBrandRow(row domain.RawRow, mapping columns.Mapping, brand domain.BrandID, hasBilling bool) domain.Item {
	getValue := func(key string) string {
		header := mapping.Header(key)
		if header == "" {
			return ""
		}
		return row[header]
	}

	nome := normalize.NormalizeNameForDisplay(getValue(columns.FieldNomeRevendedora))
	tipoOriginal := strings.TrimSpace(getValue(columns.FieldTipo))
	entrega, entregaOriginal := normalizeEntrega(getValue(columns.FieldTipoEntrega))

	item := domain.Item{
		Setor:                     orDefault(getValue(columns.FieldSetor), "Não informado"),
		NomeRevendedora:           nome,
		NomeRevendedoraNormalized: normalize.RemoveAccents(normalize.NormalizeString(nome)),
		CicloCaptacao:             orDefault(getValue(columns.FieldCicloCaptacao), "Não informado"),
		CodigoProduto:             strings.TrimSpace(getValue(columns.FieldCodigoProduto)),
		NomeProduto:               orDefault(getValue(columns.FieldNomeProduto), "Produto não identificado"),
		Tipo:                      normalizeTipo(tipoOriginal, domain.TipoVenda),
		TipoOriginal:              orDefault(tipoOriginal, string(domain.TipoVenda)),
		QuantidadeItens:           normalize.ParseQuantity(getValue(columns.FieldQuantidadeItens)),
		ValorPraticado:            normalize.ParseMoneyToCents(getValue(columns.FieldValorPraticado)),
		MeioCaptacao:              orDefault(getValue(columns.FieldMeioCaptacao), "Não informado"),
		TipoEntrega:               entrega,
		TipoEntregaOriginal:       orDefault(entregaOriginal, "Não informado"),
		Brand:                     brand,
	}

	if hasBilling {
		if raw := getValue(columns.FieldStatusFaturamento); strings.TrimSpace(raw) != "" {
			status, original, faturado := normalizeStatusFaturamento(raw)
			item.StatusFaturamento = status
			item.StatusFaturamentoOriginal = original
			item.IsFaturado = faturado
		}
		if raw := strings.TrimSpace(getValue(columns.FieldCicloFaturamento)); raw != "" {
			item.CicloFaturamento = raw
		}
		if raw := strings.TrimSpace(getValue(columns.FieldDataFaturamento)); raw != "" {
			item.DataFaturamento = raw
		}
	}

	return item
}

// #############################################################################
// #                       PLANILHA DE REVENDEDORES ATIVOS                     #
// #############################################################################

func (svc *service) ParseRosterFile(file io.Reader, filename string) domain.RosterParseResult {
	headers, rows, err := sheets.ReadFirstSheet(file, filename)
	if err != nil {
		return domain.RosterParseResult{
			Errors: []string{fmt.Sprintf("Erro ao ler arquivo de revendedores ativos %s: %v", filename, err)},
		}
	}
	return svc.ParseRosterRows(headers, rows)
}

func (svc *service) ParseRosterRows(headers []string, rows []domain.RawRow) domain.RosterParseResult {
	result := domain.RosterParseResult{RowCount: len(rows)}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Planilha de revendedores ativos vazia")
		return result
	}

	schema := columns.RosterSchema()
	mapping := columns.MapColumns(headers, schema)
	result.Warnings = append(result.Warnings, mapping.Warnings...)
	result.HasCicloColumn = mapping.Header(columns.FieldCicloCaptacao) != ""

	if len(mapping.MissingRequired) > 0 {
		result.Errors = append(result.Errors,
			columns.MissingRequiredError(headers, schema, mapping, "arquivo de revendedores ativos"))
		return result
	}

	seenCodigos := make(map[string]bool)
	seenNomes := make(map[string]string) // nome normalizado -> código normalizado

	for i, row := range rows {
		rowNum := i + 2

		getValue := func(key string) string {
			header := mapping.Header(key)
			if header == "" {
				return ""
			}
			return row[header]
		}

		codigoOriginal := strings.TrimSpace(getValue(columns.FieldCodigoRevendedora))
		if codigoOriginal == "" {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Linha %d: CodigoRevendedora vazio, linha ignorada", rowNum))
			result.Diagnostico.ExcluidosPorCodigoVazio++
			continue
		}

		nome := normalize.NormalizeNameForDisplay(getValue(columns.FieldNomeRevendedora))
		if nome == "" {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Linha %d: NomeRevendedora vazio, linha ignorada", rowNum))
			result.Diagnostico.ExcluidosPorNomeVazio++
			continue
		}

		codigo := normalize.NormalizeString(codigoOriginal)
		nomeNormalized := normalize.RemoveAccents(normalize.NormalizeString(nome))

		if seenCodigos[codigo] {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Linha %d: CodigoRevendedora duplicado %q, linha ignorada", rowNum, codigoOriginal))
			result.Diagnostico.ExcluidosPorCodigoDuplicado++
			continue
		}

		// Mesmo nome com código distinto não exclui, mas fica registrado.
		if existing, ok := seenNomes[nomeNormalized]; ok && existing != codigo {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Linha %d: NomeRevendedora %q já existe com código diferente %q vs %q",
					rowNum, nome, existing, codigoOriginal))
		}

		seenCodigos[codigo] = true
		if _, ok := seenNomes[nomeNormalized]; !ok {
			seenNomes[nomeNormalized] = codigo
		}

		result.ActiveRevendedores = append(result.ActiveRevendedores, domain.ActiveRevendedor{
			CodigoRevendedora:         codigo,
			CodigoRevendedoraOriginal: codigoOriginal,
			NomeRevendedora:           nome,
			NomeRevendedoraNormalized: nomeNormalized,
			Setor:                     orDefault(getValue(columns.FieldSetor), "Não informado"),
			CicloCaptacao:             strings.TrimSpace(getValue(columns.FieldCicloCaptacao)),
		})
	}

	result.Diagnostico.TotalLinhas = len(rows)
	result.Diagnostico.RegistrosValidos = len(result.ActiveRevendedores)

	if len(result.ActiveRevendedores) == 0 {
		result.Errors = append(result.Errors, "Nenhum revendedor ativo válido encontrado no arquivo")
		return result
	}

	result.Success = true
	return result
}

// #############################################################################
// #                         PLANILHA GERAL TRANSACIONAL                       #
// #############################################################################

func (svc *service) ParseGeralFile(file io.Reader, filename string) domain.GeralParseResult {
	headers, rows, err := sheets.ReadFirstSheet(file, filename)
	if err != nil {
		return domain.GeralParseResult{
			Errors: []string{fmt.Sprintf("Erro ao ler planilha Geral %s: %v", filename, err)},
		}
	}
	return svc.ParseGeralRows(headers, rows)
}

func (svc *service) ParseGeralRows(headers []string, rows []domain.RawRow) domain.GeralParseResult {
	result := domain.GeralParseResult{RowCount: len(rows)}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Planilha Geral vazia")
		return result
	}

	schema := columns.GeralSchema()
	mapping := columns.MapColumns(headers, schema)
	result.Warnings = append(result.Warnings, mapping.Warnings...)

	if len(mapping.MissingRequired) > 0 {
		result.Errors = append(result.Errors,
			columns.MissingRequiredError(headers, schema, mapping, "planilha Geral"))
		return result
	}

	ciclosSet := make(map[string]bool)

	for _, row := range rows {
		getValue := func(key string) string {
			header := mapping.Header(key)
			if header == "" {
				return ""
			}
			return row[header]
		}

		codigoOriginal := normalizeCodigo(getValue(columns.FieldCodigoRevendedora))
		if codigoOriginal == "" {
			result.Diagnostico.ExcluidosPorCodigoVazio++
			continue
		}

		nome := normalize.NormalizeNameForDisplay(getValue(columns.FieldNomeRevendedora))
		if nome == "" {
			result.Diagnostico.ExcluidosPorNomeVazio++
			continue
		}

		ciclo := strings.TrimSpace(getValue(columns.FieldCicloFaturamento))
		if ciclo != "" {
			ciclosSet[ciclo] = true
		}

		result.Transactions = append(result.Transactions, domain.GeralTransaction{
			Gerencia:                  orDefault(getValue(columns.FieldGerencia), "Não informado"),
			Setor:                     orDefault(getValue(columns.FieldSetor), "Não informado"),
			CodigoRevendedora:         normalize.NormalizeString(codigoOriginal),
			CodigoRevendedoraOriginal: codigoOriginal,
			NomeRevendedora:           nome,
			NomeRevendedoraNormalized: normalize.RemoveAccents(normalize.NormalizeString(nome)),
			CicloFaturamento:          ciclo,
			Tipo:                      normalizeTipo(getValue(columns.FieldTipo), domain.TipoOutro),
			QuantidadeItens:           normalize.ParseQuantity(getValue(columns.FieldQuantidadeItens)),
			ValorPraticado:            normalize.ParseMoneyToCents(getValue(columns.FieldValorPraticado)),
		})
	}

	result.AvailableCiclos = make([]string, 0, len(ciclosSet))
	for ciclo := range ciclosSet {
		result.AvailableCiclos = append(result.AvailableCiclos, ciclo)
	}
	sort.Strings(result.AvailableCiclos)

	result.Diagnostico.TotalLinhas = len(rows)
	result.Diagnostico.LinhasValidas = len(result.Transactions)

	responses.Logger().Info("planilha Geral processada",
		zap.Int("transacoes", len(result.Transactions)),
		zap.Strings("ciclos", result.AvailableCiclos))

	if len(result.Transactions) == 0 {
		result.Errors = append(result.Errors, "Nenhuma transação válida encontrada na planilha Geral")
		return result
	}

	result.Success = true
	return result
}

// #############################################################################
// #                             ARQUIVO DE RANKING                            #
// #############################################################################

func (svc *service) ParseRankingFile(file io.Reader, filename string) domain.RankingParseResult {
	headers, rows, err := sheets.ReadFirstSheet(file, filename)
	if err != nil {
		return domain.RankingParseResult{
			Errors: []string{fmt.Sprintf("Erro ao ler arquivo de ranking %s: %v", filename, err)},
		}
	}
	return svc.ParseRankingRows(headers, rows)
}

func (svc *service) ParseRankingRows(headers []string, rows []domain.RawRow) domain.RankingParseResult {
	result := domain.RankingParseResult{RowCount: len(rows)}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Planilha de ranking vazia")
		return result
	}

	schema := columns.RankingSchema()
	mapping := columns.MapColumns(headers, schema)
	result.Warnings = append(result.Warnings, mapping.Warnings...)

	if len(mapping.MissingRequired) > 0 {
		result.Errors = append(result.Errors,
			columns.MissingRequiredError(headers, schema, mapping, "arquivo de ranking"))
		return result
	}

	data := &domain.RankingData{Sectors: make(map[string]domain.RankingSectorRow)}

	for i, row := range rows {
		rowNum := i + 2

		getValue := func(key string) string {
			header := mapping.Header(key)
			if header == "" {
				return ""
			}
			return row[header]
		}

		setorRaw := strings.TrimSpace(getValue(columns.FieldSetor))
		if setorRaw == "" {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Linha %d: Setor vazio, linha ignorada", rowNum))
			continue
		}

		setorNormalized := normalize.NormalizeString(setorRaw)
		quantidadeItens := normalize.ParseQuantity(getValue(columns.FieldQuantidadeItens))
		quantidadeRevendedor := normalize.ParseQuantity(getValue(columns.FieldQuantidadeRevendedor))
		valorPraticado := normalize.ParseMoneyToCents(getValue(columns.FieldValorPraticado))

		// Setor repetido acumula na mesma linha.
		if existing, ok := data.Sectors[setorNormalized]; ok {
			existing.QuantidadeItens += quantidadeItens
			existing.QuantidadeRevendedor += quantidadeRevendedor
			existing.ValorPraticado += valorPraticado
			data.Sectors[setorNormalized] = existing
		} else {
			data.Sectors[setorNormalized] = domain.RankingSectorRow{
				Setor:                setorRaw,
				SetorNormalized:      setorNormalized,
				QuantidadeItens:      quantidadeItens,
				QuantidadeRevendedor: quantidadeRevendedor,
				ValorPraticado:       valorPraticado,
			}
		}

		data.TotalRevendedores += quantidadeRevendedor
		data.TotalItens += quantidadeItens
		data.TotalValor += valorPraticado
	}

	if len(data.Sectors) == 0 {
		result.Errors = append(result.Errors, "Nenhum setor válido encontrado no arquivo de ranking")
		return result
	}

	result.Data = data
	result.Success = true
	return result
}
