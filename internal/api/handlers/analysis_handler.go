// internal/api/handlers/analysis_handler.go
package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/LuisEduardoPedra/analiseRevendas/internal/api/responses"
	"github.com/LuisEduardoPedra/analiseRevendas/internal/core/analysis"
	"github.com/LuisEduardoPedra/analiseRevendas/internal/core/export"
	"github.com/LuisEduardoPedra/analiseRevendas/internal/core/normalize"
	"github.com/LuisEduardoPedra/analiseRevendas/internal/core/parser"
	"github.com/LuisEduardoPedra/analiseRevendas/internal/domain"
	"github.com/gin-gonic/gin"
)

// AnalysisHandler lida com as requisições da análise de multimarcas.
type AnalysisHandler struct {
	parser   parser.Service
	analysis analysis.Service
	export   export.Service
}

// NewAnalysisHandler cria um novo handler de análise.
func NewAnalysisHandler(parserService parser.Service, analysisService analysis.Service, exportService export.Service) *AnalysisHandler {
	return &AnalysisHandler{
		parser:   parserService,
		analysis: analysisService,
		export:   exportService,
	}
}

// brandFileField devolve o nome do campo multipart da planilha de uma marca.
func brandFileField(brand domain.BrandID) string {
	return string(brand) + "File"
}

func openFormFile(header *multipart.FileHeader) (multipart.File, string, error) {
	file, err := header.Open()
	if err != nil {
		return nil, "", err
	}
	return file, header.Filename, nil
}

// analysisInput é o resultado do processamento do formulário multipart.
type analysisInput struct {
	brandItems map[domain.BrandID][]domain.Item
	ativos     []domain.ActiveRevendedor
	rosterDiag *domain.RosterDiagnostico
	ciclo      string
	errors     []string
	warnings   []string
}

// parseAnalysisForm lê as planilhas do formulário. Falhas de formato viram
// a lista de erros do resultado, não erros HTTP.
func (h *AnalysisHandler) parseAnalysisForm(c *gin.Context) (*analysisInput, bool) {
	if _, err := c.MultipartForm(); err != nil {
		responses.Error(c, http.StatusBadRequest, "Formulário multipart inválido", err.Error())
		return nil, false
	}

	input := &analysisInput{
		brandItems: make(map[domain.BrandID][]domain.Item),
		ciclo:      strings.TrimSpace(c.PostForm("ciclo")),
	}

	if _, err := c.FormFile(brandFileField(domain.AnchorBrand)); err != nil {
		responses.Error(c, http.StatusBadRequest,
			fmt.Sprintf("Planilha de %s não encontrada ou inválida (campo obrigatório %q)",
				domain.Brands[domain.AnchorBrand].Name, brandFileField(domain.AnchorBrand)))
		return nil, false
	}

	for _, brand := range domain.BrandOrder {
		header, err := c.FormFile(brandFileField(brand))
		if err != nil {
			continue
		}
		file, filename, err := openFormFile(header)
		if err != nil {
			responses.Error(c, http.StatusInternalServerError,
				fmt.Sprintf("Não foi possível abrir a planilha de %s", domain.Brands[brand].Name))
			return nil, false
		}
		result := h.parser.ParseBrandFile(file, filename, brand)
		file.Close()

		input.warnings = append(input.warnings, result.Warnings...)
		if !result.Success {
			input.errors = append(input.errors, result.Errors...)
			continue
		}
		input.brandItems[brand] = result.Items
	}

	// Roster da planilha Geral: ou a lista de ativos pronta (ativosFile),
	// ou a variante transacional (geralFile) da qual os ativos são
	// derivados pelo ciclo selecionado.
	if header, err := c.FormFile("ativosFile"); err == nil {
		file, filename, err := openFormFile(header)
		if err != nil {
			responses.Error(c, http.StatusInternalServerError, "Não foi possível abrir o arquivo de revendedores ativos")
			return nil, false
		}
		result := h.parser.ParseRosterFile(file, filename)
		file.Close()

		input.warnings = append(input.warnings, result.Warnings...)
		if !result.Success {
			input.errors = append(input.errors, result.Errors...)
		} else {
			input.ativos = result.ActiveRevendedores
			input.rosterDiag = &result.Diagnostico
		}
	} else if header, err := c.FormFile("geralFile"); err == nil {
		file, filename, err := openFormFile(header)
		if err != nil {
			responses.Error(c, http.StatusInternalServerError, "Não foi possível abrir a planilha Geral")
			return nil, false
		}
		result := h.parser.ParseGeralFile(file, filename)
		file.Close()

		input.warnings = append(input.warnings, result.Warnings...)
		switch {
		case !result.Success:
			input.errors = append(input.errors, result.Errors...)
		case input.ciclo == "":
			input.errors = append(input.errors, "Informe o campo 'ciclo' para derivar os ativos da planilha Geral")
		default:
			derivados, _ := h.analysis.DerivarAtivos(result.Transactions, input.ciclo)
			for _, a := range derivados {
				input.ativos = append(input.ativos, domain.ActiveRevendedor{
					CodigoRevendedora:         a.CodigoRevendedora,
					CodigoRevendedoraOriginal: a.CodigoRevendedoraOriginal,
					NomeRevendedora:           a.NomeRevendedora,
					NomeRevendedoraNormalized: a.NomeRevendedoraNormalized,
					Setor:                     a.Setor,
					CicloCaptacao:             a.CicloFaturamento,
				})
			}
		}
	}

	return input, true
}

// processar roda a análise e anexa ao resultado o que só o handler conhece:
// os avisos acumulados no parse dos uploads e o diagnóstico do roster.
func (h *AnalysisHandler) processar(input *analysisInput) domain.ProcessingResult {
	result := h.analysis.ProcessarMarcas(input.brandItems, input.ativos, input.ciclo)
	result.Warnings = input.warnings
	if result.ActiveRevendedoresData != nil && input.rosterDiag != nil {
		result.ActiveRevendedoresData.DiagnosticoRoster = input.rosterDiag
	}
	return result
}

// HandleCrossBuyers processa as planilhas e devolve o resultado da análise.
func (h *AnalysisHandler) HandleCrossBuyers(c *gin.Context) {
	input, ok := h.parseAnalysisForm(c)
	if !ok {
		return
	}

	if len(input.errors) > 0 {
		c.JSON(http.StatusUnprocessableEntity, domain.ProcessingResult{
			Errors:   input.errors,
			Warnings: input.warnings,
		})
		return
	}

	result := h.processar(input)
	if !result.Success {
		c.JSON(http.StatusUnprocessableEntity, result)
		return
	}

	c.JSON(http.StatusOK, result)
}

// HandleExport processa as planilhas e devolve o relatório como anexo.
// O campo 'formato' escolhe o relatório: resumo (padrão), detalhado,
// setores, cliente (exige o campo 'cliente', aceita 'marca') ou xlsx.
func (h *AnalysisHandler) HandleExport(c *gin.Context) {
	input, ok := h.parseAnalysisForm(c)
	if !ok {
		return
	}
	if len(input.errors) > 0 {
		c.JSON(http.StatusUnprocessableEntity, domain.ProcessingResult{
			Errors:   input.errors,
			Warnings: input.warnings,
		})
		return
	}

	result := h.processar(input)
	if !result.Success {
		c.JSON(http.StatusUnprocessableEntity, result)
		return
	}

	formato := strings.ToLower(strings.TrimSpace(c.DefaultPostForm("formato", "resumo")))
	timestamp := time.Now().Format("20060102_150405")

	var (
		data        []byte
		err         error
		fileName    string
		contentType string
	)

	switch formato {
	case "resumo":
		data, err = h.export.CrossBuyersResumoCSV(result.CrossBuyers)
		fileName = fmt.Sprintf("crossbuyers_resumo_%s.csv", timestamp)
		contentType = "text/csv; charset=windows-1252"
	case "detalhado":
		data, err = h.export.CrossBuyersDetalhadoCSV(result.CrossBuyers)
		fileName = fmt.Sprintf("crossbuyers_detalhado_%s.csv", timestamp)
		contentType = "text/csv; charset=windows-1252"
	case "setores":
		if result.ActiveRevendedoresData == nil {
			responses.Error(c, http.StatusBadRequest,
				"Relatório de setores exige a planilha Geral (ativosFile ou geralFile)")
			return
		}
		data, err = h.export.SetorStatsCSV(result.ActiveRevendedoresData.SectorStats)
		fileName = fmt.Sprintf("crossbuyers_setores_%s.csv", timestamp)
		contentType = "text/csv; charset=windows-1252"
	case "cliente":
		nome := strings.TrimSpace(c.PostForm("cliente"))
		if nome == "" {
			responses.Error(c, http.StatusBadRequest, "Informe o campo 'cliente' para o relatório por cliente")
			return
		}
		key := normalize.RemoveAccents(normalize.NormalizeString(nome))
		var customer *domain.Customer
		for _, candidate := range result.Customers {
			if candidate.NomeRevendedoraNormalized == key {
				customer = candidate
				break
			}
		}
		if customer == nil {
			responses.Error(c, http.StatusNotFound, fmt.Sprintf("Cliente não encontrado na análise: %q", nome))
			return
		}
		var marca domain.BrandID
		if m := strings.TrimSpace(c.PostForm("marca")); m != "" {
			marca = domain.BrandID(strings.ToLower(m))
			if _, ok := domain.Brands[marca]; !ok {
				responses.Error(c, http.StatusBadRequest, fmt.Sprintf("Marca desconhecida: %q", m))
				return
			}
		}
		data, err = h.export.CrossBuyersClienteCSV(customer, marca)
		fileName = fmt.Sprintf("cliente_%s.csv", timestamp)
		contentType = "text/csv; charset=windows-1252"
	case "xlsx":
		data, err = h.export.CrossBuyersXLSX(result.CrossBuyers)
		fileName = fmt.Sprintf("crossbuyers_relatorio_%s.xlsx", timestamp)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		responses.Error(c, http.StatusBadRequest, fmt.Sprintf("Formato de exportação desconhecido: %q", formato))
		return
	}
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Erro ao gerar o relatório", err.Error())
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Data(http.StatusOK, contentType, data)
}

// HandleAtividadeSetorial compara a atividade calculada das planilhas de
// marca com o arquivo oficial de ranking.
func (h *AnalysisHandler) HandleAtividadeSetorial(c *gin.Context) {
	input, ok := h.parseAnalysisForm(c)
	if !ok {
		return
	}
	if len(input.errors) > 0 {
		c.JSON(http.StatusUnprocessableEntity, domain.SectorActivityResult{
			Errors:   input.errors,
			Warnings: input.warnings,
		})
		return
	}

	var ranking *domain.RankingData
	if header, err := c.FormFile("rankingFile"); err == nil {
		file, filename, err := openFormFile(header)
		if err != nil {
			responses.Error(c, http.StatusInternalServerError, "Não foi possível abrir o arquivo de ranking")
			return
		}
		result := h.parser.ParseRankingFile(file, filename)
		file.Close()

		input.warnings = append(input.warnings, result.Warnings...)
		if !result.Success {
			c.JSON(http.StatusUnprocessableEntity, domain.SectorActivityResult{Errors: result.Errors})
			return
		}
		ranking = result.Data
	}

	// Campo 'marcas': lista separada por vírgula; vazio inclui todas.
	selectedBrands := domain.BrandOrder
	if marcasStr := strings.TrimSpace(c.PostForm("marcas")); marcasStr != "" {
		selectedBrands = nil
		for _, part := range strings.Split(marcasStr, ",") {
			brand := domain.BrandID(strings.TrimSpace(strings.ToLower(part)))
			if _, ok := domain.Brands[brand]; !ok {
				responses.Error(c, http.StatusBadRequest, fmt.Sprintf("Marca desconhecida: %q", part))
				return
			}
			selectedBrands = append(selectedBrands, brand)
		}
	}

	result := h.analysis.AtividadeSetorial(input.brandItems, ranking, input.ciclo, selectedBrands)
	result.Warnings = input.warnings
	if !result.Success {
		c.JSON(http.StatusUnprocessableEntity, result)
		return
	}
	c.JSON(http.StatusOK, result)
}
