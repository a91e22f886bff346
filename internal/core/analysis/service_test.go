package analysis

import (
	"reflect"
	"testing"

	"github.com/LuisEduardoPedra/analiseRevendas/internal/core/normalize"
	"github.com/LuisEduardoPedra/analiseRevendas/internal/domain"
)

func item(brand domain.BrandID, nome string, tipo domain.TransactionType, qtd int, valorCentavos int64) domain.Item {
	return domain.Item{
		Setor:                     "Setor 1",
		NomeRevendedora:           nome,
		NomeRevendedoraNormalized: normalize.RemoveAccents(normalize.NormalizeString(nome)),
		CicloCaptacao:             "C05",
		Tipo:                      tipo,
		TipoOriginal:              string(tipo),
		QuantidadeItens:           qtd,
		ValorPraticado:            valorCentavos,
		MeioCaptacao:              "Não informado",
		TipoEntrega:               domain.EntregaOutro,
		TipoEntregaOriginal:       "Não informado",
		Brand:                     brand,
	}
}

func TestProcessarMarcas_BaseSomenteVendaNaAncora(t *testing.T) {
	svc := NewService()

	// 3 revendedoras na âncora: duas com Venda, uma só com Brinde.
	brandItems := map[domain.BrandID][]domain.Item{
		domain.BrandBoticario: {
			item(domain.BrandBoticario, "Ana", domain.TipoVenda, 1, 1000),
			item(domain.BrandBoticario, "Bia", domain.TipoVenda, 2, 2000),
			item(domain.BrandBoticario, "Carla", domain.TipoBrinde, 1, 0),
		},
	}

	result := svc.ProcessarMarcas(brandItems, nil, "")

	if !result.Success {
		t.Fatalf("análise falhou: %v", result.Errors)
	}
	if result.Variante != domain.VarianteUniaoMarcas {
		t.Errorf("variante incorreta: %q", result.Variante)
	}
	if result.Stats.TotalBaseCustomers != 2 {
		t.Errorf("base deveria ter 2 clientes, veio %d", result.Stats.TotalBaseCustomers)
	}
	for _, c := range result.Customers {
		if c.NomeRevendedoraNormalized == "carla" {
			t.Error("revendedora só com brinde não deveria entrar na base")
		}
	}
}

func TestProcessarMarcas_CrossBuyers(t *testing.T) {
	svc := NewService()

	brandItems := map[domain.BrandID][]domain.Item{
		domain.BrandBoticario: {
			item(domain.BrandBoticario, "Ana", domain.TipoVenda, 1, 1000),
			item(domain.BrandBoticario, "Bia", domain.TipoVenda, 1, 1000),
		},
		domain.BrandEudora: {
			item(domain.BrandEudora, "Bia", domain.TipoVenda, 1, 500),
			item(domain.BrandEudora, "Carla", domain.TipoVenda, 1, 500),
		},
		domain.BrandOui: {
			item(domain.BrandOui, "Bia", domain.TipoVenda, 3, 900),
		},
	}

	result := svc.ProcessarMarcas(brandItems, nil, "")
	if !result.Success {
		t.Fatalf("análise falhou: %v", result.Errors)
	}

	// Carla não vendeu na âncora: fora da base e dos cross-buyers.
	if len(result.CrossBuyers) != 1 || result.CrossBuyers[0].NomeRevendedoraNormalized != "bia" {
		t.Fatalf("cross-buyers incorretos: %+v", result.CrossBuyers)
	}
	if got := result.CrossBuyers[0].BrandCount; got != 3 {
		t.Errorf("Bia deveria ter 3 marcas, veio %d", got)
	}

	// Invariante: todo cross-buyer tem 2+ marcas e a âncora.
	for _, c := range result.CrossBuyers {
		if c.BrandCount < 2 {
			t.Errorf("%s: brandCount %d < 2", c.NomeRevendedora, c.BrandCount)
		}
		if _, ok := c.Brands[domain.AnchorBrand]; !ok {
			t.Errorf("%s: cross-buyer sem a marca âncora", c.NomeRevendedora)
		}
	}

	// Soma do histograma = total de cross-buyers.
	soma := 0
	for _, n := range result.Stats.BrandDistribution {
		soma += n
	}
	if soma != result.Stats.CrossBuyerCount {
		t.Errorf("histograma soma %d, esperava %d", soma, result.Stats.CrossBuyerCount)
	}

	if result.Stats.TopOverlapBrand != domain.BrandEudora {
		t.Errorf("marca de maior sobreposição incorreta: %q", result.Stats.TopOverlapBrand)
	}
}

func TestProcessarMarcas_TicketMedio(t *testing.T) {
	svc := NewService()

	brandItems := map[domain.BrandID][]domain.Item{
		domain.BrandBoticario: {
			item(domain.BrandBoticario, "Ana", domain.TipoVenda, 3, 1000), // 1000/3 = 333,33 -> 333
			item(domain.BrandBoticario, "Bia", domain.TipoVenda, 2, 1001), // 1001/2 = 500,5 -> 501
		},
	}

	result := svc.ProcessarMarcas(brandItems, nil, "")
	if !result.Success {
		t.Fatalf("análise falhou: %v", result.Errors)
	}

	tickets := make(map[string]int64)
	for _, c := range result.Customers {
		tickets[c.NomeRevendedoraNormalized] = c.Brands[domain.BrandBoticario].TicketMedioPorItem
	}
	if tickets["ana"] != 333 {
		t.Errorf("ticket de Ana: %d, esperava 333", tickets["ana"])
	}
	if tickets["bia"] != 501 {
		t.Errorf("ticket de Bia: %d, esperava 501", tickets["bia"])
	}
}

func TestProcessarMarcas_SemAncoraFalha(t *testing.T) {
	svc := NewService()
	result := svc.ProcessarMarcas(map[domain.BrandID][]domain.Item{
		domain.BrandEudora: {item(domain.BrandEudora, "Ana", domain.TipoVenda, 1, 100)},
	}, nil, "")

	if result.Success {
		t.Fatal("esperava falha sem a planilha da marca âncora")
	}
	if len(result.Errors) == 0 {
		t.Fatal("erro não reportado")
	}
}

func TestProcessarMarcas_Idempotente(t *testing.T) {
	svc := NewService()
	brandItems := map[domain.BrandID][]domain.Item{
		domain.BrandBoticario: {
			item(domain.BrandBoticario, "Ana", domain.TipoVenda, 1, 1000),
			item(domain.BrandBoticario, "Bia", domain.TipoVenda, 2, 2500),
		},
		domain.BrandQdb: {
			item(domain.BrandQdb, "Ana", domain.TipoVenda, 4, 4000),
		},
	}

	first := svc.ProcessarMarcas(brandItems, nil, "")
	second := svc.ProcessarMarcas(brandItems, nil, "")

	if !reflect.DeepEqual(first, second) {
		t.Error("duas execuções sobre a mesma entrada divergiram")
	}
}

func roster(codigo, nome, setor string) domain.ActiveRevendedor {
	return domain.ActiveRevendedor{
		CodigoRevendedora:         codigo,
		CodigoRevendedoraOriginal: codigo,
		NomeRevendedora:           nome,
		NomeRevendedoraNormalized: normalize.RemoveAccents(normalize.NormalizeString(nome)),
		Setor:                     setor,
	}
}

func TestProcessarMarcas_ComRoster(t *testing.T) {
	svc := NewService()

	brandItems := map[domain.BrandID][]domain.Item{
		domain.BrandBoticario: {
			item(domain.BrandBoticario, "Ana", domain.TipoVenda, 1, 1000),
			item(domain.BrandBoticario, "Bia", domain.TipoVenda, 1, 2000),
		},
		domain.BrandEudora: {
			item(domain.BrandEudora, "Ana", domain.TipoVenda, 2, 500),
		},
	}

	ativos := []domain.ActiveRevendedor{
		roster("1", "Ana", "Setor A"),
		roster("2", "Bia", "Setor A"),
		roster("3", "Dora", "Setor B"), // ativa sem compra nas marcas
	}

	result := svc.ProcessarMarcas(brandItems, ativos, "C05")
	if !result.Success {
		t.Fatalf("análise falhou: %v", result.Errors)
	}
	if result.Variante != domain.VarianteBaseGeral {
		t.Errorf("variante incorreta: %q", result.Variante)
	}

	data := result.ActiveRevendedoresData
	if data == nil {
		t.Fatal("bloco de ativos ausente")
	}

	// Todos os registros da Geral são ativos por definição.
	if data.DiagnosticoJoin.TotalRecebidos != 3 || data.DiagnosticoJoin.RegistrosProcessados != 3 {
		t.Errorf("diagnóstico do join incorreto: %+v", data.DiagnosticoJoin)
	}

	// Mas o total de ativos com venda registrada é 2.
	if data.TotalAtivos != 2 {
		t.Errorf("totalAtivos: %d, esperava 2", data.TotalAtivos)
	}
	if data.TotalCrossbuyersAtivos != 1 {
		t.Errorf("crossbuyers ativos: %d, esperava 1", data.TotalCrossbuyersAtivos)
	}

	byNome := make(map[string]domain.ActiveRevendedorJoined)
	for _, j := range data.ActiveRevendedores {
		byNome[j.NomeRevendedoraNormalized] = j
	}

	ana := byNome["ana"]
	if !ana.IsCrossbuyerRegistrado || ana.BrandCount != 2 || !ana.ExistsInBoticario {
		t.Errorf("join de Ana incorreto: %+v", ana)
	}
	dora := byNome["dora"]
	if dora.HasVendaRegistrada || dora.BrandCount != 0 {
		t.Errorf("Dora não deveria ter venda registrada: %+v", dora)
	}

	// Estatísticas por setor: percentual sobre o total de ativos do setor.
	var setorA domain.SectorActiveStats
	found := false
	for _, s := range data.SectorStats {
		if s.Setor == "Setor A" {
			setorA = s
			found = true
		}
	}
	if !found {
		t.Fatalf("Setor A ausente das estatísticas: %+v", data.SectorStats)
	}
	if setorA.TotalAtivos != 2 || setorA.CrossbuyersRegistrados != 1 {
		t.Errorf("contagens do Setor A incorretas: %+v", setorA)
	}
	if setorA.PercentCrossbuyerRegistrados != 50 {
		t.Errorf("percentual de multimarcas: %v, esperava 50", setorA.PercentCrossbuyerRegistrados)
	}

	for _, s := range data.SectorStats {
		if s.PercentCrossbuyerRegistrados < 0 || s.PercentCrossbuyerRegistrados > 100 {
			t.Errorf("%s: percentual fora do intervalo: %v", s.Setor, s.PercentCrossbuyerRegistrados)
		}
		if s.TotalAtivos == 0 && s.PercentCrossbuyerRegistrados != 0 {
			t.Errorf("%s: percentual deveria ser 0 sem ativos", s.Setor)
		}
	}
}

func TestProcessarMarcas_RosterFiltraPorCiclo(t *testing.T) {
	svc := NewService()

	outroCiclo := item(domain.BrandEudora, "Ana", domain.TipoVenda, 2, 500)
	outroCiclo.CicloCaptacao = "C06"

	brandItems := map[domain.BrandID][]domain.Item{
		domain.BrandBoticario: {
			item(domain.BrandBoticario, "Ana", domain.TipoVenda, 1, 1000),
		},
		domain.BrandEudora: {outroCiclo},
	}

	result := svc.ProcessarMarcas(brandItems, []domain.ActiveRevendedor{roster("1", "Ana", "S1")}, "C05")
	if !result.Success {
		t.Fatalf("análise falhou: %v", result.Errors)
	}

	joined := result.ActiveRevendedoresData.ActiveRevendedores[0]
	if joined.BrandCount != 1 {
		t.Errorf("venda fora do ciclo deveria ser descartada: %d marcas", joined.BrandCount)
	}
	if joined.IsCrossbuyerRegistrado {
		t.Error("não é multimarcas dentro do ciclo selecionado")
	}
}

func TestProcessarMarcas_FaturamentoNoJoin(t *testing.T) {
	svc := NewService()

	faturado := func(brand domain.BrandID, nome string) domain.Item {
		it := item(brand, nome, domain.TipoVenda, 1, 1000)
		it.StatusFaturamento = domain.FaturamentoFaturado
		it.IsFaturado = true
		return it
	}

	brandItems := map[domain.BrandID][]domain.Item{
		domain.BrandBoticario: {
			faturado(domain.BrandBoticario, "Ana"),
			item(domain.BrandBoticario, "Bia", domain.TipoVenda, 1, 1000),
		},
		domain.BrandEudora: {
			faturado(domain.BrandEudora, "Ana"),
			item(domain.BrandEudora, "Bia", domain.TipoVenda, 1, 500),
		},
	}

	ativos := []domain.ActiveRevendedor{roster("1", "Ana", "S1"), roster("2", "Bia", "S1")}
	result := svc.ProcessarMarcas(brandItems, ativos, "")

	byNome := make(map[string]domain.ActiveRevendedorJoined)
	for _, j := range result.ActiveRevendedoresData.ActiveRevendedores {
		byNome[j.NomeRevendedoraNormalized] = j
	}

	if !byNome["ana"].IsCrossbuyerFaturado || !byNome["ana"].HasVendaFaturada {
		t.Errorf("Ana deveria ser multimarcas faturada: %+v", byNome["ana"])
	}
	// Bia é multimarcas registrada mas sem nenhum item faturado.
	if !byNome["bia"].IsCrossbuyerRegistrado || byNome["bia"].IsCrossbuyerFaturado {
		t.Errorf("faturamento de Bia incorreto: %+v", byNome["bia"])
	}

	stats := result.ActiveRevendedoresData.SectorStats[0]
	if stats.TotalFaturados != 1 || stats.CrossbuyersFaturados != 1 {
		t.Errorf("faturados do setor incorretos: %+v", stats)
	}
	if stats.GapRegistradoFaturado != stats.TotalRegistrados-stats.TotalFaturados {
		t.Errorf("gap inconsistente: %+v", stats)
	}
}

func geralTx(codigo, nome, ciclo string, tipo domain.TransactionType, qtd int, valor int64) domain.GeralTransaction {
	return domain.GeralTransaction{
		Gerencia:                  "G1",
		Setor:                     "S1",
		CodigoRevendedora:         codigo,
		CodigoRevendedoraOriginal: codigo,
		NomeRevendedora:           nome,
		NomeRevendedoraNormalized: normalize.RemoveAccents(normalize.NormalizeString(nome)),
		CicloFaturamento:          ciclo,
		Tipo:                      tipo,
		QuantidadeItens:           qtd,
		ValorPraticado:            valor,
	}
}

func TestDerivarAtivos(t *testing.T) {
	svc := NewService()

	transactions := []domain.GeralTransaction{
		geralTx("1", "Ana", "C05", domain.TipoVenda, 2, 1000),
		geralTx("1", "Ana", "C05", domain.TipoVenda, 3, 500),
		geralTx("1", "Ana", "C06", domain.TipoVenda, 9, 9000), // outro ciclo
		geralTx("2", "Bia", "C05", domain.TipoBrinde, 1, 0),   // não é venda
		geralTx("3", "Carla", "C05", domain.TipoVenda, 1, 100),
	}

	ativos, diagnostico := svc.DerivarAtivos(transactions, "C05")

	if len(ativos) != 2 {
		t.Fatalf("esperava 2 ativos, veio %d: %+v", len(ativos), ativos)
	}
	ana := ativos[0]
	if ana.CodigoRevendedora != "1" || ana.TotalItens != 5 || ana.TotalValor != 1500 || ana.TransactionCount != 2 {
		t.Errorf("agregação de Ana incorreta: %+v", ana)
	}

	if diagnostico.TotalTransacoes != 5 || diagnostico.TransacoesNoCiclo != 4 ||
		diagnostico.TransacoesVendaNoCiclo != 3 || diagnostico.RevendedoresUnicos != 2 {
		t.Errorf("diagnóstico incorreto: %+v", diagnostico)
	}
}

func TestAtividadeSetorial(t *testing.T) {
	svc := NewService()

	itemSetor := func(brand domain.BrandID, nome, setor string, qtd int, valor int64) domain.Item {
		it := item(brand, nome, domain.TipoVenda, qtd, valor)
		it.Setor = setor
		return it
	}

	brandItems := map[domain.BrandID][]domain.Item{
		domain.BrandBoticario: {
			itemSetor(domain.BrandBoticario, "Ana", "Setor 1", 10, 10000),
			itemSetor(domain.BrandBoticario, "Bia", "Setor 2", 5, 5000),
		},
	}

	ranking := &domain.RankingData{
		Sectors: map[string]domain.RankingSectorRow{
			"setor 1": {Setor: "Setor 1", SetorNormalized: "setor 1", QuantidadeItens: 20, QuantidadeRevendedor: 2, ValorPraticado: 20000},
			"setor 3": {Setor: "Setor 3", SetorNormalized: "setor 3", QuantidadeItens: 7, QuantidadeRevendedor: 1, ValorPraticado: 700},
		},
		TotalRevendedores: 3,
		TotalItens:        27,
		TotalValor:        20700,
	}

	result := svc.AtividadeSetorial(brandItems, ranking, "C05", []domain.BrandID{domain.BrandBoticario})
	if !result.Success {
		t.Fatalf("cálculo falhou: %v", result.Errors)
	}

	if len(result.Rows) != 3 {
		t.Fatalf("esperava 3 setores (união), veio %d", len(result.Rows))
	}

	rows := make(map[string]domain.SectorActivityRow)
	for _, r := range result.Rows {
		rows[r.SetorNormalized] = r
	}

	s1 := rows["setor 1"]
	if !s1.HasDetail || !s1.HasRanking {
		t.Errorf("setor 1 deveria ter cálculo e ranking: %+v", s1)
	}
	if s1.RevendedoresAtivosCalc != 1 || s1.ItensCalc != 10 || s1.ValorCalc != 10000 {
		t.Errorf("cálculo do setor 1 incorreto: %+v", s1)
	}
	// 10/20 itens = 50.0%.
	if s1.ItensCobertura != 50.0 {
		t.Errorf("cobertura de itens: %v, esperava 50.0", s1.ItensCobertura)
	}

	s2 := rows["setor 2"]
	if s2.HasRanking || !s2.HasDetail {
		t.Errorf("setor 2 só existe no cálculo: %+v", s2)
	}
	// Sem ranking e com cálculo positivo a cobertura conta como 100%.
	if s2.ItensCobertura != 100 {
		t.Errorf("cobertura sem ranking: %v, esperava 100", s2.ItensCobertura)
	}

	s3 := rows["setor 3"]
	if s3.HasDetail || !s3.HasRanking {
		t.Errorf("setor 3 só existe no ranking: %+v", s3)
	}

	if result.Totals.RevendedoresAtivosCalc != 2 || result.Totals.SetoresCount != 3 {
		t.Errorf("totais incorretos: %+v", result.Totals)
	}
	if result.Totals.SetoresComDiff != 3 {
		t.Errorf("setores com diferença: %d, esperava 3", result.Totals.SetoresComDiff)
	}
}

func TestAtividadeSetorial_ExigeCiclo(t *testing.T) {
	svc := NewService()
	result := svc.AtividadeSetorial(nil, nil, "", nil)
	if result.Success || len(result.Errors) == 0 {
		t.Fatal("esperava falha sem ciclo selecionado")
	}
}

func TestCiclosDisponiveis(t *testing.T) {
	c6 := item(domain.BrandEudora, "Ana", domain.TipoVenda, 1, 100)
	c6.CicloCaptacao = "C06"
	semCiclo := item(domain.BrandOui, "Bia", domain.TipoVenda, 1, 100)
	semCiclo.CicloCaptacao = "Não informado"

	brandItems := map[domain.BrandID][]domain.Item{
		domain.BrandBoticario: {item(domain.BrandBoticario, "Ana", domain.TipoVenda, 1, 100)},
		domain.BrandEudora:    {c6},
		domain.BrandOui:       {semCiclo},
	}

	got := CiclosDisponiveis(brandItems)
	want := []string{"C05", "C06"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ciclos: %v, esperava %v", got, want)
	}
}
