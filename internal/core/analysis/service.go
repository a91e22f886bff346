// Package analysis cruza as planilhas de marca com a base da marca âncora
// e, quando presente, com a planilha Geral de revendedores ativos.
package analysis

import (
	"fmt"
	"sort"

	"github.com/LuisEduardoPedra/analiseRevendas/internal/api/responses"
	"github.com/LuisEduardoPedra/analiseRevendas/internal/core/normalize"
	"github.com/LuisEduardoPedra/analiseRevendas/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Service define a interface para a análise de revendedores multimarcas.
type Service interface {
	// ProcessarMarcas cruza os itens das marcas. Com ativos da planilha
	// Geral, a base de ativos vem dela; sem, a base é quem vendeu na
	// marca âncora.
	ProcessarMarcas(brandItems map[domain.BrandID][]domain.Item, ativos []domain.ActiveRevendedor, selectedCiclo string) domain.ProcessingResult

	// DerivarAtivos extrai os revendedores ativos das transações da Geral:
	// Tipo=Venda no ciclo selecionado, deduplicado por código.
	DerivarAtivos(transactions []domain.GeralTransaction, selectedCiclo string) ([]domain.RevendedorAtivo, domain.AtivosDiagnostico)

	// AtividadeSetorial compara a atividade calculada das planilhas de
	// marca com os totais oficiais do arquivo de ranking.
	AtividadeSetorial(brandItems map[domain.BrandID][]domain.Item, ranking *domain.RankingData, selectedCiclo string, selectedBrands []domain.BrandID) domain.SectorActivityResult
}

type service struct{}

// NewService cria uma nova instância do serviço de análise.
func NewService() Service {
	return &service{}
}

// ticketMedio calcula o ticket médio por item em centavos, com
// arredondamento comercial (meio para cima).
func ticketMedio(totalValor int64, totalItens int) int64 {
	if totalItens <= 0 {
		return 0
	}
	return decimal.NewFromInt(totalValor).
		Div(decimal.NewFromInt(int64(totalItens))).
		Round(0).
		IntPart()
}

func newBrandMetrics(brand domain.BrandID) *domain.CustomerBrandMetrics {
	return &domain.CustomerBrandMetrics{
		Brand:         brand,
		Ciclos:        make(map[string]bool),
		Setores:       make(map[string]bool),
		MeiosCaptacao: make(map[string]bool),
		TiposEntrega:  make(map[domain.DeliveryType]bool),
	}
}

func addItem(m *domain.CustomerBrandMetrics, item domain.Item) {
	m.Items = append(m.Items, item)
	m.TotalItensVenda += item.QuantidadeItens
	m.TotalValorVenda += item.ValorPraticado
	m.Ciclos[item.CicloCaptacao] = true
	m.Setores[item.Setor] = true
	m.MeiosCaptacao[item.MeioCaptacao] = true
	m.TiposEntrega[item.TipoEntrega] = true
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (svc *service) ProcessarMarcas(brandItems map[domain.BrandID][]domain.Item, ativos []domain.ActiveRevendedor, selectedCiclo string) domain.ProcessingResult {
	result := domain.ProcessingResult{
		Variante: domain.VarianteUniaoMarcas,
		Stats: domain.DashboardStats{
			BrandDistribution: map[int]int{2: 0, 3: 0, 4: 0, 5: 0},
			BrandOverlap:      make(map[domain.BrandID]int),
			SetorDistribution: make(map[string]int),
		},
	}
	for _, brand := range domain.BrandOrder {
		result.Stats.BrandOverlap[brand] = 0
	}

	anchorItems := brandItems[domain.AnchorBrand]
	if len(anchorItems) == 0 {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Nenhum dado encontrado para %s (planilha obrigatória)", domain.Brands[domain.AnchorBrand].Name))
		return result
	}

	// Base de clientes: quem tem Venda na marca âncora. A ordem de
	// primeira aparição no arquivo define a ordem dos resultados.
	baseNames := make(map[string]bool)
	baseOrder := make([]string, 0)
	displayNames := make(map[string]string)

	for _, item := range anchorItems {
		if item.Tipo != domain.TipoVenda {
			continue
		}
		if !baseNames[item.NomeRevendedoraNormalized] {
			baseNames[item.NomeRevendedoraNormalized] = true
			baseOrder = append(baseOrder, item.NomeRevendedoraNormalized)
			displayNames[item.NomeRevendedoraNormalized] = item.NomeRevendedora
		}
	}

	result.Stats.TotalBaseCustomers = len(baseNames)

	customerData := make(map[string]*domain.Customer, len(baseNames))
	for _, name := range baseOrder {
		customerData[name] = &domain.Customer{
			NomeRevendedora:           displayNames[name],
			NomeRevendedoraNormalized: name,
			Brands:                    make(map[domain.BrandID]*domain.CustomerBrandMetrics),
			AllCiclos:                 make(map[string]bool),
			AllSetores:                make(map[string]bool),
			AllMeiosCaptacao:          make(map[string]bool),
			AllTiposEntrega:           make(map[domain.DeliveryType]bool),
		}
	}

	// Acumula as vendas de todas as marcas, só para quem está na base.
	for _, brand := range domain.BrandOrder {
		for _, item := range brandItems[brand] {
			if !baseNames[item.NomeRevendedoraNormalized] {
				continue
			}
			if item.Tipo != domain.TipoVenda {
				continue
			}

			customer := customerData[item.NomeRevendedoraNormalized]
			metrics := customer.Brands[brand]
			if metrics == nil {
				metrics = newBrandMetrics(brand)
				customer.Brands[brand] = metrics
			}
			addItem(metrics, item)

			customer.AllCiclos[item.CicloCaptacao] = true
			customer.AllSetores[item.Setor] = true
			customer.AllMeiosCaptacao[item.MeioCaptacao] = true
			customer.AllTiposEntrega[item.TipoEntrega] = true
		}
	}

	allCiclos := make(map[string]bool)
	allSetores := make(map[string]bool)
	allMeios := make(map[string]bool)
	allEntregas := make(map[domain.DeliveryType]bool)

	for _, name := range baseOrder {
		customer := customerData[name]
		customer.BrandCount = len(customer.Brands)

		for _, metrics := range customer.Brands {
			metrics.TicketMedioPorItem = ticketMedio(metrics.TotalValorVenda, metrics.TotalItensVenda)
			customer.TotalValorVendaAllBrands += metrics.TotalValorVenda
			customer.TotalItensVendaAllBrands += metrics.TotalItensVenda
		}

		for c := range customer.AllCiclos {
			allCiclos[c] = true
		}
		for s := range customer.AllSetores {
			allSetores[s] = true
		}
		for m := range customer.AllMeiosCaptacao {
			allMeios[m] = true
		}
		for e := range customer.AllTiposEntrega {
			allEntregas[e] = true
		}

		result.Customers = append(result.Customers, customer)
	}

	// Cross-buyer: 2+ marcas E presença na marca âncora. A segunda
	// condição é revalidada mesmo com a base já filtrada.
	for _, customer := range result.Customers {
		_, hasAnchor := customer.Brands[domain.AnchorBrand]
		if customer.BrandCount >= 2 && !hasAnchor {
			responses.Logger().Warn("cliente multimarcas sem a marca âncora, filtrado",
				zap.String("revendedora", customer.NomeRevendedora),
				zap.Int("marcas", customer.BrandCount))
			continue
		}
		if customer.BrandCount >= 2 && hasAnchor {
			result.CrossBuyers = append(result.CrossBuyers, customer)
		}
	}

	result.Stats.CrossBuyerCount = len(result.CrossBuyers)

	for _, customer := range result.CrossBuyers {
		if customer.BrandCount >= 2 && customer.BrandCount <= len(domain.BrandOrder) {
			result.Stats.BrandDistribution[customer.BrandCount]++
		}
		for brand := range customer.Brands {
			result.Stats.BrandOverlap[brand]++
		}
		for setor := range customer.AllSetores {
			if setor != "" {
				result.Stats.SetorDistribution[setor]++
			}
		}
	}

	// Marca com maior sobreposição fora a âncora; empate resolve pela
	// ordem fixa das marcas.
	maxOverlap := 0
	for _, brand := range domain.BrandOrder[1:] {
		if overlap := result.Stats.BrandOverlap[brand]; overlap > maxOverlap {
			maxOverlap = overlap
			result.Stats.TopOverlapBrand = brand
		}
	}

	result.AvailableCiclos = sortedKeys(allCiclos)
	result.AvailableSetores = sortedKeys(allSetores)
	result.AvailableMeiosCaptacao = sortedKeys(allMeios)

	entregas := make([]string, 0, len(allEntregas))
	for e := range allEntregas {
		entregas = append(entregas, string(e))
	}
	sort.Strings(entregas)
	for _, e := range entregas {
		result.AvailableTiposEntrega = append(result.AvailableTiposEntrega, domain.DeliveryType(e))
	}

	if len(ativos) > 0 {
		result.Variante = domain.VarianteBaseGeral
		result.ActiveRevendedoresData = svc.joinAtivos(ativos, result.Customers, selectedCiclo, brandItems)
	}

	result.Success = true
	return result
}

// joinAtivos cruza o roster da planilha Geral com as compras das marcas.
// Todos os registros da Geral são ativos por definição; as planilhas de
// marca apenas enriquecem. O setor da Geral é autoritativo.
func (svc *service) joinAtivos(ativos []domain.ActiveRevendedor, customers []*domain.Customer, selectedCiclo string, brandItems map[domain.BrandID][]domain.Item) *domain.ActiveRevendedoresData {
	customersByNome := make(map[string]*domain.Customer, len(customers))
	for _, customer := range customers {
		customersByNome[customer.NomeRevendedoraNormalized] = customer
	}

	diagnostico := domain.JoinDiagnostico{
		TotalRecebidos: len(ativos),
		PorSetor:       make(map[string]*domain.SetorJoinInfo),
	}

	joined := make([]domain.ActiveRevendedorJoined, 0, len(ativos))
	ciclosFromActive := make(map[string]bool)

	for _, active := range ativos {
		setor := active.Setor
		if setor == "" {
			setor = "Não informado"
		}
		info := diagnostico.PorSetor[setor]
		if info == nil {
			info = &domain.SetorJoinInfo{}
			diagnostico.PorSetor[setor] = info
		}
		info.Total++

		if active.CicloCaptacao != "" {
			ciclosFromActive[active.CicloCaptacao] = true
		}

		brands := make(map[domain.BrandID]*domain.CustomerBrandMetrics)
		existsInBoticario := false

		if matched := customersByNome[active.NomeRevendedoraNormalized]; matched != nil {
			_, existsInBoticario = matched.Brands[domain.AnchorBrand]

			for brand, metrics := range matched.Brands {
				filtered := newBrandMetrics(brand)
				for _, item := range metrics.Items {
					if selectedCiclo != "" && item.CicloCaptacao != selectedCiclo {
						continue
					}
					if item.Tipo != domain.TipoVenda {
						continue
					}
					addItem(filtered, item)
				}
				if len(filtered.Items) > 0 {
					filtered.TicketMedioPorItem = ticketMedio(filtered.TotalValorVenda, filtered.TotalItensVenda)
					brands[brand] = filtered
				}
			}
		} else {
			// Sem cliente agregado (o nome não está na base da âncora):
			// busca direta nos itens das marcas.
			for _, brand := range domain.BrandOrder {
				matching := newBrandMetrics(brand)
				for _, item := range brandItems[brand] {
					if item.NomeRevendedoraNormalized != active.NomeRevendedoraNormalized {
						continue
					}
					if selectedCiclo != "" && item.CicloCaptacao != selectedCiclo {
						continue
					}
					if item.Tipo != domain.TipoVenda {
						continue
					}
					addItem(matching, item)
				}
				if len(matching.Items) > 0 {
					if brand == domain.AnchorBrand {
						existsInBoticario = true
					}
					matching.TicketMedioPorItem = ticketMedio(matching.TotalValorVenda, matching.TotalItensVenda)
					brands[brand] = matching
				}
			}
		}

		var totalValor int64
		var totalItens int
		for _, metrics := range brands {
			totalValor += metrics.TotalValorVenda
			totalItens += metrics.TotalItensVenda
		}

		// Faturamento: marca conta quando tem ao menos um item faturado.
		brandsComFaturamento := 0
		for _, metrics := range brands {
			for _, item := range metrics.Items {
				if item.IsFaturado {
					brandsComFaturamento++
					break
				}
			}
		}

		entry := domain.ActiveRevendedorJoined{
			ActiveRevendedor:         active,
			Brands:                   brands,
			BrandCount:               len(brands),
			TotalValorVendaAllBrands: totalValor,
			TotalItensVendaAllBrands: totalItens,
			ExistsInBoticario:        existsInBoticario,
			HasVendaRegistrada:       len(brands) > 0,
			IsCrossbuyerRegistrado:   len(brands) >= 2,
			HasVendaFaturada:         brandsComFaturamento > 0,
			IsCrossbuyerFaturado:     brandsComFaturamento >= 2,
		}

		if entry.IsCrossbuyerRegistrado && !entry.ExistsInBoticario {
			diagnostico.CrossbuyersSemMarcaAncora++
		}

		joined = append(joined, entry)
	}

	diagnostico.RegistrosProcessados = len(joined)

	data := &domain.ActiveRevendedoresData{
		ActiveRevendedores:        joined,
		SectorStats:               aggregateAtivosPorSetor(joined),
		SelectedCiclo:             selectedCiclo,
		AvailableCiclosFromActive: sortedKeys(ciclosFromActive),
		Inconsistencies:           []string{},
		DiagnosticoJoin:           diagnostico,
	}

	for _, a := range joined {
		if a.HasVendaRegistrada {
			data.TotalAtivos++
			if a.ExistsInBoticario {
				data.TotalAtivosBaseBoticario++
			}
		}
		if a.IsCrossbuyerRegistrado {
			data.TotalCrossbuyersAtivos++
		}
	}

	responses.Logger().Info("join com a planilha Geral concluído",
		zap.Int("recebidos", diagnostico.TotalRecebidos),
		zap.Int("processados", diagnostico.RegistrosProcessados),
		zap.Int("crossbuyers_sem_ancora", diagnostico.CrossbuyersSemMarcaAncora),
		zap.String("ciclo", selectedCiclo))

	return data
}

// aggregateAtivosPorSetor agrega o resultado do join por setor. O percentual
// de multimarcas usa o total de ativos do setor como denominador, não só os
// que têm compra registrada.
func aggregateAtivosPorSetor(joined []domain.ActiveRevendedorJoined) []domain.SectorActiveStats {
	bySetor := make(map[string]*domain.SectorActiveStats)
	order := make([]string, 0)

	for _, active := range joined {
		setor := active.Setor
		if setor == "" {
			setor = "Não informado"
		}

		stats := bySetor[setor]
		if stats == nil {
			stats = &domain.SectorActiveStats{
				Setor:         setor,
				ValorPorMarca: make(map[domain.BrandID]int64),
				ItensPorMarca: make(map[domain.BrandID]int),
			}
			for _, brand := range domain.BrandOrder {
				stats.ValorPorMarca[brand] = 0
				stats.ItensPorMarca[brand] = 0
			}
			bySetor[setor] = stats
			order = append(order, setor)
		}

		stats.TotalAtivos++

		if active.HasVendaRegistrada {
			stats.TotalRegistrados++
			if active.ExistsInBoticario {
				stats.RegistradosBaseBoticario++
			}
		}
		if active.IsCrossbuyerRegistrado {
			stats.CrossbuyersRegistrados++
		}
		if active.HasVendaFaturada {
			stats.TotalFaturados++
			if active.ExistsInBoticario {
				stats.FaturadosBaseBoticario++
			}
		}
		if active.IsCrossbuyerFaturado {
			stats.CrossbuyersFaturados++
		}

		for brand, metrics := range active.Brands {
			stats.ValorPorMarca[brand] += metrics.TotalValorVenda
			stats.ItensPorMarca[brand] += metrics.TotalItensVenda
		}
	}

	sort.Strings(order)

	result := make([]domain.SectorActiveStats, 0, len(order))
	for _, setor := range order {
		stats := bySetor[setor]
		if stats.TotalAtivos > 0 {
			stats.PercentCrossbuyerRegistrados = float64(stats.CrossbuyersRegistrados) / float64(stats.TotalAtivos) * 100
		}
		if stats.TotalFaturados > 0 {
			stats.PercentCrossbuyerFaturados = float64(stats.CrossbuyersFaturados) / float64(stats.TotalFaturados) * 100
		}
		stats.GapRegistradoFaturado = stats.TotalRegistrados - stats.TotalFaturados
		result = append(result, *stats)
	}
	return result
}

func (svc *service) DerivarAtivos(transactions []domain.GeralTransaction, selectedCiclo string) ([]domain.RevendedorAtivo, domain.AtivosDiagnostico) {
	diagnostico := domain.AtivosDiagnostico{TotalTransacoes: len(transactions)}

	byCodigo := make(map[string]*domain.RevendedorAtivo)
	order := make([]string, 0)

	for _, t := range transactions {
		if t.CicloFaturamento != selectedCiclo {
			continue
		}
		diagnostico.TransacoesNoCiclo++
		if t.Tipo != domain.TipoVenda {
			continue
		}
		diagnostico.TransacoesVendaNoCiclo++

		existing := byCodigo[t.CodigoRevendedora]
		if existing != nil {
			existing.TotalItens += t.QuantidadeItens
			existing.TotalValor += t.ValorPraticado
			existing.TransactionCount++
			continue
		}
		byCodigo[t.CodigoRevendedora] = &domain.RevendedorAtivo{
			CodigoRevendedora:         t.CodigoRevendedora,
			CodigoRevendedoraOriginal: t.CodigoRevendedoraOriginal,
			NomeRevendedora:           t.NomeRevendedora,
			NomeRevendedoraNormalized: t.NomeRevendedoraNormalized,
			Setor:                     t.Setor,
			Gerencia:                  t.Gerencia,
			CicloFaturamento:          t.CicloFaturamento,
			TotalItens:                t.QuantidadeItens,
			TotalValor:                t.ValorPraticado,
			TransactionCount:          1,
		}
		order = append(order, t.CodigoRevendedora)
	}

	ativos := make([]domain.RevendedorAtivo, 0, len(order))
	for _, codigo := range order {
		ativos = append(ativos, *byCodigo[codigo])
	}
	diagnostico.RevendedoresUnicos = len(ativos)

	return ativos, diagnostico
}

// cobertura devolve calc/ranking como percentual com uma casa decimal.
// Ranking zerado com cálculo positivo conta como 100%.
func cobertura(calc, ranking int64) float64 {
	if ranking > 0 {
		return float64(int64(float64(calc)/float64(ranking)*1000+0.5)) / 10
	}
	if calc > 0 {
		return 100
	}
	return 0
}

func (svc *service) AtividadeSetorial(brandItems map[domain.BrandID][]domain.Item, ranking *domain.RankingData, selectedCiclo string, selectedBrands []domain.BrandID) domain.SectorActivityResult {
	result := domain.SectorActivityResult{
		SelectedCiclo:  selectedCiclo,
		SelectedBrands: selectedBrands,
	}

	if selectedCiclo == "" {
		result.Errors = append(result.Errors, "Selecione um ciclo para calcular a atividade")
		return result
	}

	selected := make(map[domain.BrandID]bool, len(selectedBrands))
	for _, brand := range selectedBrands {
		selected[brand] = true
	}

	// A base da âncora delimita quem conta como ativo.
	baseNames := make(map[string]bool)
	for _, item := range brandItems[domain.AnchorBrand] {
		if item.Tipo == domain.TipoVenda {
			baseNames[item.NomeRevendedoraNormalized] = true
		}
	}

	type ativo struct {
		nome            string
		nomeNormalized  string
		setor           string
		setorNormalized string
		itens           int
		valor           int64
	}

	ativosMap := make(map[string]*ativo)

	for _, brand := range domain.BrandOrder {
		if !selected[brand] {
			continue
		}
		for _, item := range brandItems[brand] {
			if item.CicloCaptacao != selectedCiclo {
				continue
			}
			if item.Tipo != domain.TipoVenda {
				continue
			}
			if !baseNames[item.NomeRevendedoraNormalized] {
				continue
			}

			existing := ativosMap[item.NomeRevendedoraNormalized]
			if existing != nil {
				existing.itens += item.QuantidadeItens
				existing.valor += item.ValorPraticado
				continue
			}
			// Setor da primeira ocorrência vence.
			ativosMap[item.NomeRevendedoraNormalized] = &ativo{
				nome:            item.NomeRevendedora,
				nomeNormalized:  item.NomeRevendedoraNormalized,
				setor:           item.Setor,
				setorNormalized: normalize.NormalizeString(item.Setor),
				itens:           item.QuantidadeItens,
				valor:           item.ValorPraticado,
			}
		}
	}

	type setorCalc struct {
		setor        string
		revendedores int
		itens        int
		valor        int64
	}

	calcPorSetor := make(map[string]*setorCalc)
	for _, rev := range ativosMap {
		calc := calcPorSetor[rev.setorNormalized]
		if calc == nil {
			calc = &setorCalc{setor: rev.setor}
			calcPorSetor[rev.setorNormalized] = calc
		}
		calc.revendedores++
		calc.itens += rev.itens
		calc.valor += rev.valor
	}

	allSectorKeys := make(map[string]bool)
	for key := range calcPorSetor {
		allSectorKeys[key] = true
	}
	if ranking != nil {
		for key := range ranking.Sectors {
			allSectorKeys[key] = true
		}
	}

	for key := range allSectorKeys {
		calc := calcPorSetor[key]

		var rankingRow domain.RankingSectorRow
		hasRanking := false
		if ranking != nil {
			rankingRow, hasRanking = ranking.Sectors[key]
		}

		row := domain.SectorActivityRow{
			SetorNormalized: key,
			HasRanking:      hasRanking,
			HasDetail:       calc != nil,
		}
		switch {
		case calc != nil:
			row.Setor = calc.setor
		case hasRanking:
			row.Setor = rankingRow.Setor
		default:
			row.Setor = key
		}
		if calc != nil {
			row.RevendedoresAtivosCalc = calc.revendedores
			row.ItensCalc = calc.itens
			row.ValorCalc = calc.valor
		}
		if hasRanking {
			row.RevendedoresRanking = rankingRow.QuantidadeRevendedor
			row.ItensRanking = rankingRow.QuantidadeItens
			row.ValorRanking = rankingRow.ValorPraticado
		}

		row.RevendedoresDiff = row.RevendedoresAtivosCalc - row.RevendedoresRanking
		row.ItensDiff = row.ItensCalc - row.ItensRanking
		row.ValorDiff = row.ValorCalc - row.ValorRanking
		row.RevendedoresCobertura = cobertura(int64(row.RevendedoresAtivosCalc), int64(row.RevendedoresRanking))
		row.ItensCobertura = cobertura(int64(row.ItensCalc), int64(row.ItensRanking))
		row.ValorCobertura = cobertura(row.ValorCalc, row.ValorRanking)

		result.Rows = append(result.Rows, row)
	}

	collator := collate.New(language.BrazilianPortuguese)
	sort.Slice(result.Rows, func(i, j int) bool {
		return collator.CompareString(result.Rows[i].Setor, result.Rows[j].Setor) < 0
	})

	totals := domain.SectorActivityTotals{SetoresCount: len(result.Rows)}
	for _, row := range result.Rows {
		totals.ItensCalc += row.ItensCalc
		totals.ValorCalc += row.ValorCalc
		if row.RevendedoresDiff != 0 || row.ItensDiff != 0 || row.ValorDiff != 0 {
			totals.SetoresComDiff++
		}
	}
	// Cada revendedor pertence a um único setor no cálculo, então o total
	// de ativos é o tamanho do mapa deduplicado.
	totals.RevendedoresAtivosCalc = len(ativosMap)
	if ranking != nil {
		totals.RevendedoresRanking = ranking.TotalRevendedores
		totals.ItensRanking = ranking.TotalItens
		totals.ValorRanking = ranking.TotalValor
	}
	totals.RevendedoresDiff = totals.RevendedoresAtivosCalc - totals.RevendedoresRanking
	totals.ItensDiff = totals.ItensCalc - totals.ItensRanking
	totals.ValorDiff = totals.ValorCalc - totals.ValorRanking
	totals.RevendedoresCobertura = cobertura(int64(totals.RevendedoresAtivosCalc), int64(totals.RevendedoresRanking))
	totals.ItensCobertura = cobertura(int64(totals.ItensCalc), int64(totals.ItensRanking))
	totals.ValorCobertura = cobertura(totals.ValorCalc, totals.ValorRanking)

	result.Totals = totals
	result.Success = true
	return result
}

// CiclosDisponiveis lista os ciclos de captação únicos das planilhas de
// marca, ignorando o marcador de ausência.
func CiclosDisponiveis(brandItems map[domain.BrandID][]domain.Item) []string {
	ciclos := make(map[string]bool)
	for _, brand := range domain.BrandOrder {
		for _, item := range brandItems[brand] {
			if item.CicloCaptacao != "" && item.CicloCaptacao != "Não informado" {
				ciclos[item.CicloCaptacao] = true
			}
		}
	}
	return sortedKeys(ciclos)
}
