// internal/api/handlers/analysis_handler_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/LuisEduardoPedra/analiseRevendas/internal/core/analysis"
	"github.com/LuisEduardoPedra/analiseRevendas/internal/core/export"
	"github.com/LuisEduardoPedra/analiseRevendas/internal/core/parser"
	"github.com/LuisEduardoPedra/analiseRevendas/internal/domain"
	"github.com/gin-gonic/gin"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAnalysisHandler(parser.NewService(), analysis.NewService(), export.NewService())
	r := gin.New()
	r.POST("/api/v1/analyze/crossbuyers", h.HandleCrossBuyers)
	r.POST("/api/v1/analyze/export", h.HandleExport)
	return r
}

// multipartBody monta um formulário com arquivos (nome do campo -> conteúdo
// CSV) e campos de texto simples.
func multipartBody(t *testing.T, files map[string]string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for field, content := range files {
		part, err := writer.CreateFormFile(field, field+".csv")
		if err != nil {
			t.Fatalf("erro ao criar parte %s: %v", field, err)
		}
		if _, err := part.Write([]byte(content)); err != nil {
			t.Fatalf("erro ao escrever parte %s: %v", field, err)
		}
	}
	for field, value := range fields {
		if err := writer.WriteField(field, value); err != nil {
			t.Fatalf("erro ao escrever campo %s: %v", field, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("erro ao fechar formulário: %v", err)
	}
	return body, writer.FormDataContentType()
}

const boticarioCSV = "NomeRevendedora;Tipo;QuantidadeItens;ValorPraticado\n" +
	"Ana;Venda;1;10,00\n" +
	"Bia;Venda;2;20,00\n"

// Quatro linhas: uma valida, uma com codigo duplicado, uma sem codigo e a
// segunda valida.
const ativosCSV = "CodigoRevendedora;NomeRevendedora;Setor\n" +
	"1;Ana;Setor 1\n" +
	"1;Ana;Setor 1\n" +
	";Bia;Setor 1\n" +
	"2;Bia;Setor 1\n"

func TestHandleCrossBuyersDiagnosticoRoster(t *testing.T) {
	router := newTestRouter()

	body, contentType := multipartBody(t,
		map[string]string{"boticarioFile": boticarioCSV, "ativosFile": ativosCSV}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze/crossbuyers", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d, esperava 200; corpo: %s", w.Code, w.Body.String())
	}

	var result domain.ProcessingResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("resposta não é JSON válido: %v", err)
	}
	if !result.Success {
		t.Fatalf("análise falhou: %v", result.Errors)
	}

	if len(result.Warnings) == 0 {
		t.Error("esperava avisos das linhas ignoradas do roster na resposta")
	}

	if result.ActiveRevendedoresData == nil {
		t.Fatal("esperava bloco de revendedores ativos na resposta")
	}
	diag := result.ActiveRevendedoresData.DiagnosticoRoster
	if diag == nil {
		t.Fatal("esperava diagnóstico do roster na resposta")
	}
	if diag.TotalLinhas != 4 {
		t.Errorf("TotalLinhas = %d, esperava 4", diag.TotalLinhas)
	}
	if diag.ExcluidosPorCodigoDuplicado != 1 {
		t.Errorf("ExcluidosPorCodigoDuplicado = %d, esperava 1", diag.ExcluidosPorCodigoDuplicado)
	}
	if diag.ExcluidosPorCodigoVazio != 1 {
		t.Errorf("ExcluidosPorCodigoVazio = %d, esperava 1", diag.ExcluidosPorCodigoVazio)
	}
	if diag.RegistrosValidos != 2 {
		t.Errorf("RegistrosValidos = %d, esperava 2", diag.RegistrosValidos)
	}
}

func TestHandleCrossBuyersErrosComAvisos(t *testing.T) {
	router := newTestRouter()

	// Planilha da marca âncora sem as colunas obrigatórias: o parse falha e o
	// aviso do roster ainda deve acompanhar a lista de erros.
	invalidCSV := "ColunaErrada;Outra\nx;y\n"
	body, contentType := multipartBody(t,
		map[string]string{"boticarioFile": invalidCSV, "ativosFile": ativosCSV}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze/crossbuyers", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status %d, esperava 422; corpo: %s", w.Code, w.Body.String())
	}

	var result domain.ProcessingResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("resposta não é JSON válido: %v", err)
	}
	if len(result.Errors) == 0 {
		t.Error("esperava erros de colunas obrigatórias ausentes")
	}
	if len(result.Warnings) == 0 {
		t.Error("esperava avisos do roster mesmo com erros de parse")
	}
}

func TestHandleExportCliente(t *testing.T) {
	router := newTestRouter()

	t.Run("Cliente existente", func(t *testing.T) {
		body, contentType := multipartBody(t,
			map[string]string{"boticarioFile": boticarioCSV},
			map[string]string{"formato": "cliente", "cliente": "Ana"})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze/export", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status %d, esperava 200; corpo: %s", w.Code, w.Body.String())
		}
		if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
			t.Errorf("Content-Type = %q, esperava text/csv", ct)
		}
		if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "cliente_") {
			t.Errorf("Content-Disposition = %q, esperava anexo cliente_*", cd)
		}
	})

	t.Run("Cliente desconhecido", func(t *testing.T) {
		body, contentType := multipartBody(t,
			map[string]string{"boticarioFile": boticarioCSV},
			map[string]string{"formato": "cliente", "cliente": "Zuleica"})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze/export", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("status %d, esperava 404; corpo: %s", w.Code, w.Body.String())
		}
	})

	t.Run("Cliente sem nome", func(t *testing.T) {
		body, contentType := multipartBody(t,
			map[string]string{"boticarioFile": boticarioCSV},
			map[string]string{"formato": "cliente"})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze/export", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status %d, esperava 400; corpo: %s", w.Code, w.Body.String())
		}
	})
}
