// internal/domain/models.go
package domain

// BrandID identifica uma marca no conjunto fixo analisado.
type BrandID string

const (
	BrandBoticario BrandID = "boticario"
	BrandEudora    BrandID = "eudora"
	BrandAuAmigos  BrandID = "auamigos"
	BrandOui       BrandID = "oui"
	BrandQdb       BrandID = "qdb"
)

// AnchorBrand é a marca obrigatória: um cross-buyer precisa ter comprado nela.
const AnchorBrand = BrandBoticario

// BrandOrder define a ordem fixa de iteração das marcas. Desempates de
// agregação (ex.: marca com maior sobreposição) usam esta ordem, nunca a
// ordem de iteração de map.
var BrandOrder = []BrandID{BrandBoticario, BrandEudora, BrandAuAmigos, BrandOui, BrandQdb}

// Brand carrega os metadados de exibição de uma marca.
type Brand struct {
	ID        BrandID `json:"id"`
	Name      string  `json:"name"`
	ShortName string  `json:"short_name"`
	Required  bool    `json:"required"`
	Order     int     `json:"order"`
}

var Brands = map[BrandID]Brand{
	BrandBoticario: {ID: BrandBoticario, Name: "O Boticário", ShortName: "Boticário", Required: true, Order: 1},
	BrandEudora:    {ID: BrandEudora, Name: "Eudora", ShortName: "Eudora", Order: 2},
	BrandAuAmigos:  {ID: BrandAuAmigos, Name: "Au Amigos", ShortName: "Au Amigos", Order: 3},
	BrandOui:       {ID: BrandOui, Name: "O.U.I", ShortName: "O.U.I", Order: 4},
	BrandQdb:       {ID: BrandQdb, Name: "Quem Disse, Berenice?", ShortName: "QDB?", Order: 5},
}

// TransactionType é o tipo normalizado de uma transação.
type TransactionType string

const (
	TipoVenda  TransactionType = "Venda"
	TipoBrinde TransactionType = "Brinde"
	TipoDoacao TransactionType = "Doação"
	TipoOutro  TransactionType = "Outro"
)

// DeliveryType é a modalidade de entrega normalizada.
type DeliveryType string

const (
	EntregaFrete  DeliveryType = "Entrega/Frete"
	EntregaRetira DeliveryType = "Retirada"
	EntregaOutro  DeliveryType = "Outro"
)

// BillingStatus é o status de faturamento normalizado, derivado por
// casamento de palavras-chave quando a planilha traz colunas de faturamento.
type BillingStatus string

const (
	FaturamentoFaturado     BillingStatus = "Faturado"
	FaturamentoPendente     BillingStatus = "Pendente"
	FaturamentoCancelado    BillingStatus = "Cancelado"
	FaturamentoDesconhecido BillingStatus = "Desconhecido"
)

// RawRow é uma linha tokenizada da planilha: cabeçalho -> valor da célula,
// já coagido para string pelo leitor (célula ausente = "").
type RawRow map[string]string

// Item é a linha canônica de uma planilha de marca. Imutável após o parse;
// quantidade e valor degradam para 0 em entrada inválida, nunca falham.
type Item struct {
	Setor                     string          `json:"setor"`
	NomeRevendedora           string          `json:"nome_revendedora"`
	NomeRevendedoraNormalized string          `json:"nome_revendedora_normalized"`
	CicloCaptacao             string          `json:"ciclo_captacao"`
	CodigoProduto             string          `json:"codigo_produto"`
	NomeProduto               string          `json:"nome_produto"`
	Tipo                      TransactionType `json:"tipo"`
	TipoOriginal              string          `json:"tipo_original"`
	QuantidadeItens           int             `json:"quantidade_itens"`
	ValorPraticado            int64           `json:"valor_praticado"` // centavos
	MeioCaptacao              string          `json:"meio_captacao"`
	TipoEntrega               DeliveryType    `json:"tipo_entrega"`
	TipoEntregaOriginal       string          `json:"tipo_entrega_original"`
	Brand                     BrandID         `json:"brand"`

	// Campos de faturamento, presentes apenas quando o arquivo trouxe as
	// colunas opcionais (HasBillingColumns true no ParseResult).
	StatusFaturamento         BillingStatus `json:"status_faturamento,omitempty"`
	StatusFaturamentoOriginal string        `json:"status_faturamento_original,omitempty"`
	IsFaturado                bool          `json:"is_faturado,omitempty"`
	CicloFaturamento          string        `json:"ciclo_faturamento,omitempty"`
	DataFaturamento           string        `json:"data_faturamento,omitempty"`
}

// ParseResult é o resultado do parse de uma planilha de marca.
type ParseResult struct {
	Success                bool     `json:"success"`
	Items                  []Item   `json:"items"`
	Errors                 []string `json:"errors"`
	Warnings               []string `json:"warnings"`
	RowCount               int      `json:"row_count"`
	HasBillingColumns      bool     `json:"has_billing_columns"`
	BillingColumnsDetected []string `json:"billing_columns_detected"`
}

// CustomerBrandMetrics agrega as linhas tipo Venda de um cliente em uma marca.
type CustomerBrandMetrics struct {
	Brand              BrandID               `json:"brand"`
	Items              []Item                `json:"items"`
	TotalItensVenda    int                   `json:"total_itens_venda"`
	TotalValorVenda    int64                 `json:"total_valor_venda"` // centavos
	TicketMedioPorItem int64                 `json:"ticket_medio_por_item"`
	Ciclos             map[string]bool       `json:"ciclos"`
	Setores            map[string]bool       `json:"setores"`
	MeiosCaptacao      map[string]bool       `json:"meios_captacao"`
	TiposEntrega       map[DeliveryType]bool `json:"tipos_entrega"`
}

// Customer é um revendedor único na base unificada, apenas linhas Venda.
type Customer struct {
	NomeRevendedora           string                            `json:"nome_revendedora"`
	NomeRevendedoraNormalized string                            `json:"nome_revendedora_normalized"`
	Brands                    map[BrandID]*CustomerBrandMetrics `json:"brands"`
	BrandCount                int                               `json:"brand_count"`
	TotalValorVendaAllBrands  int64                             `json:"total_valor_venda_all_brands"`
	TotalItensVendaAllBrands  int                               `json:"total_itens_venda_all_brands"`
	AllCiclos                 map[string]bool                   `json:"all_ciclos"`
	AllSetores                map[string]bool                   `json:"all_setores"`
	AllMeiosCaptacao          map[string]bool                   `json:"all_meios_captacao"`
	AllTiposEntrega           map[DeliveryType]bool             `json:"all_tipos_entrega"`
}

// DashboardStats resume a análise de cross-buyers.
type DashboardStats struct {
	TotalBaseCustomers int             `json:"total_base_customers"`
	CrossBuyerCount    int             `json:"cross_buyer_count"`
	BrandDistribution  map[int]int     `json:"brand_distribution"` // buckets 2..len(BrandOrder)
	BrandOverlap       map[BrandID]int `json:"brand_overlap"`
	TopOverlapBrand    BrandID         `json:"top_overlap_brand,omitempty"`
	SetorDistribution  map[string]int  `json:"setor_distribution"`
}

// AnalysisVariant nomeia a regra de negócio aplicada na análise. As
// definições de "ativo" e "cross-buyer" mudaram entre revisões do painel;
// a variante ativa é exposta para que consumidores saibam qual valeu.
type AnalysisVariant string

const (
	// VarianteUniaoMarcas: sem planilha Geral; base = quem vendeu na marca
	// âncora, cross-buyer = 2+ marcas incluindo a âncora.
	VarianteUniaoMarcas AnalysisVariant = "uniao_marcas"
	// VarianteBaseGeral: planilha Geral presente; ativo = consta na Geral,
	// multimarcas = comprou em 2+ marcas no ciclo selecionado.
	VarianteBaseGeral AnalysisVariant = "base_geral"
)

// ActiveRevendedor é um registro da planilha Geral (roster), deduplicado por
// código. O setor daqui é autoritativo sobre o das planilhas de marca.
type ActiveRevendedor struct {
	CodigoRevendedora         string `json:"codigo_revendedora"`
	CodigoRevendedoraOriginal string `json:"codigo_revendedora_original"`
	NomeRevendedora           string `json:"nome_revendedora"`
	NomeRevendedoraNormalized string `json:"nome_revendedora_normalized"`
	Setor                     string `json:"setor"`
	CicloCaptacao             string `json:"ciclo_captacao,omitempty"`
}

// RosterDiagnostico contabiliza as exclusões do parse da planilha de ativos.
// Invariante: TotalLinhas = RegistrosValidos + soma das exclusões.
type RosterDiagnostico struct {
	TotalLinhas                 int `json:"total_linhas"`
	ExcluidosPorCodigoVazio     int `json:"excluidos_por_codigo_vazio"`
	ExcluidosPorNomeVazio       int `json:"excluidos_por_nome_vazio"`
	ExcluidosPorCodigoDuplicado int `json:"excluidos_por_codigo_duplicado"`
	RegistrosValidos            int `json:"registros_validos"`
}

// RosterParseResult é o resultado do parse da planilha de revendedores ativos.
type RosterParseResult struct {
	Success            bool               `json:"success"`
	ActiveRevendedores []ActiveRevendedor `json:"active_revendedores"`
	Errors             []string           `json:"errors"`
	Warnings           []string           `json:"warnings"`
	RowCount           int                `json:"row_count"`
	HasCicloColumn     bool               `json:"has_ciclo_column"`
	Diagnostico        RosterDiagnostico  `json:"diagnostico"`
}

// ActiveRevendedorJoined é um registro da Geral enriquecido com as compras
// das planilhas de marca para o ciclo selecionado.
type ActiveRevendedorJoined struct {
	ActiveRevendedor
	Brands                   map[BrandID]*CustomerBrandMetrics `json:"brands"`
	BrandCount               int                               `json:"brand_count"`
	TotalValorVendaAllBrands int64                             `json:"total_valor_venda_all_brands"`
	TotalItensVendaAllBrands int                               `json:"total_itens_venda_all_brands"`
	ExistsInBoticario        bool                              `json:"exists_in_boticario"`
	HasVendaRegistrada       bool                              `json:"has_venda_registrada"`
	IsCrossbuyerRegistrado   bool                              `json:"is_crossbuyer_registrado"`
	HasVendaFaturada         bool                              `json:"has_venda_faturada"`
	IsCrossbuyerFaturado     bool                              `json:"is_crossbuyer_faturado"`
}

// SetorJoinInfo é o recorte por setor do diagnóstico do join.
type SetorJoinInfo struct {
	Total             int `json:"total"`
	ExcluidosPorCiclo int `json:"excluidos_por_ciclo"`
}

// JoinDiagnostico é a trilha de auditoria do join contra a planilha Geral.
// Recebidos = processados + cada balde de exclusão, sem dupla contagem.
type JoinDiagnostico struct {
	TotalRecebidos             int                       `json:"total_recebidos"`
	ExcluidosPorCicloDiferente int                       `json:"excluidos_por_ciclo_diferente"`
	ExcluidosPorCicloNulo      int                       `json:"excluidos_por_ciclo_nulo"`
	RegistrosProcessados       int                       `json:"registros_processados"`
	CrossbuyersSemMarcaAncora  int                       `json:"crossbuyers_sem_marca_ancora"`
	PorSetor                   map[string]*SetorJoinInfo `json:"por_setor"`
}

// SectorActiveStats agrega os ativos da Geral por setor.
type SectorActiveStats struct {
	Setor string `json:"setor"`
	// Ativos = todos os registros da Geral no setor, com ou sem compra.
	TotalAtivos int `json:"total_ativos"`
	// Compras registradas nas planilhas de marca.
	TotalRegistrados             int     `json:"total_registrados"`
	RegistradosBaseBoticario     int     `json:"registrados_base_boticario"`
	CrossbuyersRegistrados       int     `json:"crossbuyers_registrados"`
	PercentCrossbuyerRegistrados float64 `json:"percent_crossbuyer_registrados"` // crossbuyers / totalAtivos * 100
	// Faturamento (quando colunas de faturamento existem).
	TotalFaturados             int     `json:"total_faturados"`
	FaturadosBaseBoticario     int     `json:"faturados_base_boticario"`
	CrossbuyersFaturados       int     `json:"crossbuyers_faturados"`
	PercentCrossbuyerFaturados float64 `json:"percent_crossbuyer_faturados"`
	GapRegistradoFaturado      int     `json:"gap_registrado_faturado"`
	// Somatórios por marca.
	ValorPorMarca map[BrandID]int64 `json:"valor_por_marca"`
	ItensPorMarca map[BrandID]int   `json:"itens_por_marca"`
}

// ActiveRevendedoresData é o bloco opcional do resultado quando a planilha
// Geral foi enviada.
type ActiveRevendedoresData struct {
	ActiveRevendedores        []ActiveRevendedorJoined `json:"active_revendedores"`
	SectorStats               []SectorActiveStats      `json:"sector_stats"`
	SelectedCiclo             string                   `json:"selected_ciclo,omitempty"`
	AvailableCiclosFromActive []string                 `json:"available_ciclos_from_active"`
	TotalAtivos               int                      `json:"total_ativos"`
	TotalAtivosBaseBoticario  int                      `json:"total_ativos_base_boticario"`
	TotalCrossbuyersAtivos    int                      `json:"total_crossbuyers_ativos"`
	Inconsistencies           []string                 `json:"inconsistencies"`
	DiagnosticoJoin           JoinDiagnostico          `json:"diagnostico_join"`
	// DiagnosticoRoster é a trilha de exclusões do parse da planilha Geral,
	// presente quando o roster veio de um upload.
	DiagnosticoRoster *RosterDiagnostico `json:"diagnostico_roster,omitempty"`
}

// ProcessingResult é o modelo de resultado entregue ao front/exportador.
type ProcessingResult struct {
	Success                bool                    `json:"success"`
	Variante               AnalysisVariant         `json:"variante"`
	Customers              []*Customer             `json:"customers"`
	CrossBuyers            []*Customer             `json:"cross_buyers"`
	Stats                  DashboardStats          `json:"stats"`
	Errors                 []string                `json:"errors"`
	Warnings               []string                `json:"warnings"`
	AvailableCiclos        []string                `json:"available_ciclos"`
	AvailableSetores       []string                `json:"available_setores"`
	AvailableMeiosCaptacao []string                `json:"available_meios_captacao"`
	AvailableTiposEntrega  []DeliveryType          `json:"available_tipos_entrega"`
	ActiveRevendedoresData *ActiveRevendedoresData `json:"active_revendedores_data,omitempty"`
}

// GeralTransaction é uma linha da variante transacional da planilha Geral.
type GeralTransaction struct {
	Gerencia                  string          `json:"gerencia"`
	Setor                     string          `json:"setor"`
	CodigoRevendedora         string          `json:"codigo_revendedora"`
	CodigoRevendedoraOriginal string          `json:"codigo_revendedora_original"`
	NomeRevendedora           string          `json:"nome_revendedora"`
	NomeRevendedoraNormalized string          `json:"nome_revendedora_normalized"`
	CicloFaturamento          string          `json:"ciclo_faturamento"`
	Tipo                      TransactionType `json:"tipo"`
	QuantidadeItens           int             `json:"quantidade_itens"`
	ValorPraticado            int64           `json:"valor_praticado"`
}

// GeralDiagnostico contabiliza as exclusões do parse da Geral transacional.
type GeralDiagnostico struct {
	TotalLinhas             int `json:"total_linhas"`
	LinhasValidas           int `json:"linhas_validas"`
	ExcluidosPorCodigoVazio int `json:"excluidos_por_codigo_vazio"`
	ExcluidosPorNomeVazio   int `json:"excluidos_por_nome_vazio"`
}

// GeralParseResult é o resultado do parse da Geral transacional.
type GeralParseResult struct {
	Success         bool               `json:"success"`
	Transactions    []GeralTransaction `json:"transactions"`
	Errors          []string           `json:"errors"`
	Warnings        []string           `json:"warnings"`
	RowCount        int                `json:"row_count"`
	AvailableCiclos []string           `json:"available_ciclos"`
	Diagnostico     GeralDiagnostico   `json:"diagnostico"`
}

// RevendedorAtivo é um ativo derivado das transações da Geral (Tipo=Venda
// no ciclo selecionado, deduplicado por código).
type RevendedorAtivo struct {
	CodigoRevendedora         string `json:"codigo_revendedora"`
	CodigoRevendedoraOriginal string `json:"codigo_revendedora_original"`
	NomeRevendedora           string `json:"nome_revendedora"`
	NomeRevendedoraNormalized string `json:"nome_revendedora_normalized"`
	Setor                     string `json:"setor"`
	Gerencia                  string `json:"gerencia"`
	CicloFaturamento          string `json:"ciclo_faturamento"`
	TotalItens                int    `json:"total_itens"`
	TotalValor                int64  `json:"total_valor"`
	TransactionCount          int    `json:"transaction_count"`
}

// AtivosDiagnostico acompanha a derivação de ativos da Geral.
type AtivosDiagnostico struct {
	TotalTransacoes        int `json:"total_transacoes"`
	TransacoesNoCiclo      int `json:"transacoes_no_ciclo"`
	TransacoesVendaNoCiclo int `json:"transacoes_venda_no_ciclo"`
	RevendedoresUnicos     int `json:"revendedores_unicos"`
}

// RankingSectorRow é uma linha do arquivo de ranking (totais por setor).
type RankingSectorRow struct {
	Setor                string `json:"setor"`
	SetorNormalized      string `json:"setor_normalized"`
	QuantidadeItens      int    `json:"quantidade_itens"`
	QuantidadeRevendedor int    `json:"quantidade_revendedor"`
	ValorPraticado       int64  `json:"valor_praticado"`
}

// RankingData agrupa as linhas do ranking por setor normalizado.
type RankingData struct {
	Sectors           map[string]RankingSectorRow `json:"sectors"`
	TotalRevendedores int                         `json:"total_revendedores"`
	TotalItens        int                         `json:"total_itens"`
	TotalValor        int64                       `json:"total_valor"`
}

// RankingParseResult é o resultado do parse do arquivo de ranking.
type RankingParseResult struct {
	Success  bool         `json:"success"`
	Data     *RankingData `json:"data,omitempty"`
	Errors   []string     `json:"errors"`
	Warnings []string     `json:"warnings"`
	RowCount int          `json:"row_count"`
}

// SectorActivityRow compara a atividade calculada com o ranking por setor.
type SectorActivityRow struct {
	Setor                  string  `json:"setor"`
	SetorNormalized        string  `json:"setor_normalized"`
	RevendedoresAtivosCalc int     `json:"revendedores_ativos_calc"`
	ItensCalc              int     `json:"itens_calc"`
	ValorCalc              int64   `json:"valor_calc"`
	RevendedoresRanking    int     `json:"revendedores_ranking"`
	ItensRanking           int     `json:"itens_ranking"`
	ValorRanking           int64   `json:"valor_ranking"`
	RevendedoresDiff       int     `json:"revendedores_diff"`
	ItensDiff              int     `json:"itens_diff"`
	ValorDiff              int64   `json:"valor_diff"`
	RevendedoresCobertura  float64 `json:"revendedores_cobertura"`
	ItensCobertura         float64 `json:"itens_cobertura"`
	ValorCobertura         float64 `json:"valor_cobertura"`
	HasRanking             bool    `json:"has_ranking"`
	HasDetail              bool    `json:"has_detail"`
}

// SectorActivityTotals acumula os totais da comparação de atividade.
type SectorActivityTotals struct {
	RevendedoresAtivosCalc int     `json:"revendedores_ativos_calc"`
	ItensCalc              int     `json:"itens_calc"`
	ValorCalc              int64   `json:"valor_calc"`
	RevendedoresRanking    int     `json:"revendedores_ranking"`
	ItensRanking           int     `json:"itens_ranking"`
	ValorRanking           int64   `json:"valor_ranking"`
	RevendedoresDiff       int     `json:"revendedores_diff"`
	ItensDiff              int     `json:"itens_diff"`
	ValorDiff              int64   `json:"valor_diff"`
	RevendedoresCobertura  float64 `json:"revendedores_cobertura"`
	ItensCobertura         float64 `json:"itens_cobertura"`
	ValorCobertura         float64 `json:"valor_cobertura"`
	SetoresCount           int     `json:"setores_count"`
	SetoresComDiff         int     `json:"setores_com_diff"`
}

// SectorActivityResult é o resultado da comparação atividade x ranking.
type SectorActivityResult struct {
	Success        bool                 `json:"success"`
	Rows           []SectorActivityRow  `json:"rows"`
	Totals         SectorActivityTotals `json:"totals"`
	Errors         []string             `json:"errors"`
	Warnings       []string             `json:"warnings"`
	SelectedCiclo  string               `json:"selected_ciclo"`
	SelectedBrands []BrandID            `json:"selected_brands"`
}
