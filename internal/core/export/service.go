// Package export gera os relatórios de saída (CSV e XLSX) da análise de
// revendedores multimarcas.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"

	"github.com/LuisEduardoPedra/analiseRevendas/internal/domain"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Service define a interface para a exportação dos resultados.
type Service interface {
	// CrossBuyersResumoCSV gera o resumo por revendedora, com valor e
	// itens por marca na ordem fixa das marcas.
	CrossBuyersResumoCSV(customers []*domain.Customer) ([]byte, error)

	// CrossBuyersDetalhadoCSV gera um registro por item de venda.
	CrossBuyersDetalhadoCSV(customers []*domain.Customer) ([]byte, error)

	// SetorStatsCSV gera as estatísticas por setor do join com a Geral.
	SetorStatsCSV(stats []domain.SectorActiveStats) ([]byte, error)

	// CrossBuyersClienteCSV gera os itens de venda de um único cliente,
	// opcionalmente restritos a uma marca (vazia = todas).
	CrossBuyersClienteCSV(customer *domain.Customer, brand domain.BrandID) ([]byte, error)

	// CrossBuyersXLSX gera a pasta de trabalho com as abas Resumo e
	// Detalhado.
	CrossBuyersXLSX(customers []*domain.Customer) ([]byte, error)
}

type service struct{}

// NewService cria uma nova instância do serviço de exportação.
func NewService() Service {
	return &service{}
}

// formatMoneyBR formata centavos como número decimal com vírgula.
func formatMoneyBR(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := fmt.Sprintf("%d,%02d", cents/100, cents%100)
	if neg {
		return "-" + s
	}
	return s
}

func joinSet(set map[string]bool) string {
	values := make([]string, 0, len(set))
	for v := range set {
		if v != "" {
			values = append(values, v)
		}
	}
	sort.Strings(values)
	return strings.Join(values, "; ")
}

func writeCSV(headers []string, rows [][]string) ([]byte, error) {
	var buffer bytes.Buffer
	encoder := charmap.Windows1252.NewEncoder()
	writer := csv.NewWriter(transform.NewWriter(&buffer, encoder))
	writer.Comma = ';'

	if err := writer.Write(headers); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	return buffer.Bytes(), writer.Error()
}

func resumoHeaders() []string {
	headers := []string{"NomeRevendedora", "Setor", "MeioCaptacao", "QtdMarcas"}
	for _, brand := range domain.BrandOrder {
		headers = append(headers, fmt.Sprintf("%s (Valor)", domain.Brands[brand].ShortName))
	}
	for _, brand := range domain.BrandOrder {
		headers = append(headers, fmt.Sprintf("%s (Itens)", domain.Brands[brand].ShortName))
	}
	return append(headers, "TotalValor", "TotalItens")
}

func resumoRow(customer *domain.Customer) []string {
	row := []string{
		customer.NomeRevendedora,
		joinSet(customer.AllSetores),
		joinSet(customer.AllMeiosCaptacao),
		fmt.Sprintf("%d", customer.BrandCount),
	}
	for _, brand := range domain.BrandOrder {
		if metrics := customer.Brands[brand]; metrics != nil {
			row = append(row, formatMoneyBR(metrics.TotalValorVenda))
		} else {
			row = append(row, "")
		}
	}
	for _, brand := range domain.BrandOrder {
		if metrics := customer.Brands[brand]; metrics != nil {
			row = append(row, fmt.Sprintf("%d", metrics.TotalItensVenda))
		} else {
			row = append(row, "")
		}
	}
	return append(row,
		formatMoneyBR(customer.TotalValorVendaAllBrands),
		fmt.Sprintf("%d", customer.TotalItensVendaAllBrands))
}

func (svc *service) CrossBuyersResumoCSV(customers []*domain.Customer) ([]byte, error) {
	rows := make([][]string, 0, len(customers))
	for _, customer := range customers {
		rows = append(rows, resumoRow(customer))
	}
	return writeCSV(resumoHeaders(), rows)
}

var detalhadoHeaders = []string{
	"Marca", "NomeRevendedora", "Setor", "CicloCaptacao",
	"CodigoProduto", "NomeProduto", "QuantidadeItens", "ValorPraticado",
	"MeioCaptacao", "TipoEntrega",
}

func (svc *service) CrossBuyersDetalhadoCSV(customers []*domain.Customer) ([]byte, error) {
	var rows [][]string
	for _, customer := range customers {
		for _, brand := range domain.BrandOrder {
			metrics := customer.Brands[brand]
			if metrics == nil {
				continue
			}
			for _, item := range metrics.Items {
				if item.Tipo != domain.TipoVenda {
					continue
				}
				rows = append(rows, []string{
					domain.Brands[brand].Name,
					customer.NomeRevendedora,
					item.Setor,
					item.CicloCaptacao,
					item.CodigoProduto,
					item.NomeProduto,
					fmt.Sprintf("%d", item.QuantidadeItens),
					formatMoneyBR(item.ValorPraticado),
					item.MeioCaptacao,
					string(item.TipoEntrega),
				})
			}
		}
	}
	return writeCSV(detalhadoHeaders, rows)
}

var clienteHeaders = []string{
	"Marca", "Setor", "CicloCaptacao", "CodigoProduto", "NomeProduto",
	"QuantidadeItens", "ValorPraticado", "MeioCaptacao", "TipoEntrega",
}

func (svc *service) CrossBuyersClienteCSV(customer *domain.Customer, brand domain.BrandID) ([]byte, error) {
	brands := domain.BrandOrder
	if brand != "" {
		brands = []domain.BrandID{brand}
	}

	var rows [][]string
	for _, b := range brands {
		metrics := customer.Brands[b]
		if metrics == nil {
			continue
		}
		for _, item := range metrics.Items {
			if item.Tipo != domain.TipoVenda {
				continue
			}
			rows = append(rows, []string{
				domain.Brands[b].Name,
				item.Setor,
				item.CicloCaptacao,
				item.CodigoProduto,
				item.NomeProduto,
				fmt.Sprintf("%d", item.QuantidadeItens),
				formatMoneyBR(item.ValorPraticado),
				item.MeioCaptacao,
				string(item.TipoEntrega),
			})
		}
	}
	return writeCSV(clienteHeaders, rows)
}

func (svc *service) SetorStatsCSV(stats []domain.SectorActiveStats) ([]byte, error) {
	headers := []string{
		"Setor", "TotalAtivos", "TotalRegistrados", "RegistradosBaseBoticario",
		"CrossbuyersRegistrados", "PercentCrossbuyerRegistrados",
		"TotalFaturados", "CrossbuyersFaturados", "PercentCrossbuyerFaturados",
		"GapRegistradoFaturado",
	}
	for _, brand := range domain.BrandOrder {
		headers = append(headers, fmt.Sprintf("%s (Valor)", domain.Brands[brand].ShortName))
	}

	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		row := []string{
			s.Setor,
			fmt.Sprintf("%d", s.TotalAtivos),
			fmt.Sprintf("%d", s.TotalRegistrados),
			fmt.Sprintf("%d", s.RegistradosBaseBoticario),
			fmt.Sprintf("%d", s.CrossbuyersRegistrados),
			strings.Replace(fmt.Sprintf("%.1f", s.PercentCrossbuyerRegistrados), ".", ",", 1),
			fmt.Sprintf("%d", s.TotalFaturados),
			fmt.Sprintf("%d", s.CrossbuyersFaturados),
			strings.Replace(fmt.Sprintf("%.1f", s.PercentCrossbuyerFaturados), ".", ",", 1),
			fmt.Sprintf("%d", s.GapRegistradoFaturado),
		}
		for _, brand := range domain.BrandOrder {
			row = append(row, formatMoneyBR(s.ValorPorMarca[brand]))
		}
		rows = append(rows, row)
	}
	return writeCSV(headers, rows)
}

func (svc *service) CrossBuyersXLSX(customers []*domain.Customer) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const resumo = "Resumo"
	const detalhado = "Detalhado"

	f.SetSheetName(f.GetSheetName(0), resumo)
	if _, err := f.NewSheet(detalhado); err != nil {
		return nil, err
	}

	writeRow := func(sheet string, rowNum int, values []interface{}) error {
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		return f.SetSheetRow(sheet, cell, &values)
	}

	toAny := func(row []string) []interface{} {
		values := make([]interface{}, len(row))
		for i, v := range row {
			values[i] = v
		}
		return values
	}

	// Aba Resumo: valores monetários em reais (float) para permitir soma
	// na planilha.
	if err := writeRow(resumo, 1, toAny(resumoHeaders())); err != nil {
		return nil, err
	}
	for i, customer := range customers {
		values := []interface{}{
			customer.NomeRevendedora,
			joinSet(customer.AllSetores),
			joinSet(customer.AllMeiosCaptacao),
			customer.BrandCount,
		}
		for _, brand := range domain.BrandOrder {
			if metrics := customer.Brands[brand]; metrics != nil {
				values = append(values, float64(metrics.TotalValorVenda)/100)
			} else {
				values = append(values, "")
			}
		}
		for _, brand := range domain.BrandOrder {
			if metrics := customer.Brands[brand]; metrics != nil {
				values = append(values, metrics.TotalItensVenda)
			} else {
				values = append(values, "")
			}
		}
		values = append(values,
			float64(customer.TotalValorVendaAllBrands)/100,
			customer.TotalItensVendaAllBrands)

		if err := writeRow(resumo, i+2, values); err != nil {
			return nil, err
		}
	}

	if err := writeRow(detalhado, 1, toAny(detalhadoHeaders)); err != nil {
		return nil, err
	}
	rowNum := 2
	for _, customer := range customers {
		for _, brand := range domain.BrandOrder {
			metrics := customer.Brands[brand]
			if metrics == nil {
				continue
			}
			for _, item := range metrics.Items {
				if item.Tipo != domain.TipoVenda {
					continue
				}
				values := []interface{}{
					domain.Brands[brand].Name,
					customer.NomeRevendedora,
					item.Setor,
					item.CicloCaptacao,
					item.CodigoProduto,
					item.NomeProduto,
					item.QuantidadeItens,
					float64(item.ValorPraticado) / 100,
					item.MeioCaptacao,
					string(item.TipoEntrega),
				}
				if err := writeRow(detalhado, rowNum, values); err != nil {
					return nil, err
				}
				rowNum++
			}
		}
	}

	var buffer bytes.Buffer
	if err := f.Write(&buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
