// internal/core/columns/schemas.go
package columns

// Chaves dos campos semânticos usadas pelos parsers.
const (
	FieldSetor                = "setor"
	FieldNomeRevendedora      = "nomeRevendedora"
	FieldCicloCaptacao        = "cicloCaptacao"
	FieldCodigoProduto        = "codigoProduto"
	FieldNomeProduto          = "nomeProduto"
	FieldTipo                 = "tipo"
	FieldQuantidadeItens      = "quantidadeItens"
	FieldValorPraticado       = "valorPraticado"
	FieldMeioCaptacao         = "meioCaptacao"
	FieldTipoEntrega          = "tipoEntrega"
	FieldStatusFaturamento    = "statusFaturamento"
	FieldCicloFaturamento     = "cicloFaturamento"
	FieldDataFaturamento      = "dataFaturamento"
	FieldCodigoRevendedora    = "codigoRevendedora"
	FieldGerencia             = "gerencia"
	FieldQuantidadeRevendedor = "quantidadeRevendedor"
)

// BrandSchema descreve a planilha transacional de uma marca. Obrigatórias:
// nome da revendedora, tipo, quantidade e valor; o trio de faturamento é
// opcional e só sinaliza capacidade quando detectado.
func BrandSchema() Schema {
	return Schema{
		Name: "marca",
		Fields: []Field{
			{Key: FieldSetor, DisplayName: "Setor", Variants: []string{"setor"}},
			{Key: FieldNomeRevendedora, DisplayName: "NomeRevendedora", Required: true,
				Variants: []string{"nomerevendedora", "nome revendedora", "revendedora", "nome"}},
			{Key: FieldCicloCaptacao, DisplayName: "CicloCaptacao",
				Variants: []string{"ciclocaptacao", "ciclo captacao", "ciclo", "ciclocapt"}},
			{Key: FieldCodigoProduto, DisplayName: "CodigoProduto",
				Variants: []string{"codigoproduto", "codigo produto", "codigo", "sku", "cod produto"}},
			{Key: FieldNomeProduto, DisplayName: "NomeProduto",
				Variants: []string{"nomeproduto", "nome produto", "produto", "descricao"}},
			{Key: FieldTipo, DisplayName: "Tipo", Required: true,
				Variants: []string{"tipo", "tipo transacao", "tipotransacao"}},
			{Key: FieldQuantidadeItens, DisplayName: "QuantidadeItens", Required: true,
				Variants: []string{"quantidadeitens", "quantidade itens", "quantidade", "qtd", "qtd itens"}},
			{Key: FieldValorPraticado, DisplayName: "ValorPraticado", Required: true,
				Variants: []string{"valorpraticado", "valor praticado", "valor", "preco", "valortotal", "valor total"}},
			{Key: FieldMeioCaptacao, DisplayName: "Meio Captacao",
				Variants: []string{"meiocaptacao", "meio captacao", "meio", "canal"}},
			{Key: FieldTipoEntrega, DisplayName: "Tipo Entrega",
				Variants: []string{"tipoentrega", "tipo entrega", "entrega", "modalidade entrega"}},
			{Key: FieldStatusFaturamento, DisplayName: "Status Faturamento", Billing: true,
				Variants: []string{
					"statusfaturamento", "status faturamento",
					"statuspedido", "status pedido", "status",
					"situacao", "situacaopedido", "situacao pedido",
					"faturado", "faturamento",
				}},
			{Key: FieldCicloFaturamento, DisplayName: "Ciclo Faturamento", Billing: true,
				Variants: []string{"ciclofaturamento", "ciclo faturamento", "ciclofat", "ciclo fat"}},
			{Key: FieldDataFaturamento, DisplayName: "Data Faturamento", Billing: true,
				Variants: []string{
					"datafaturamento", "data faturamento",
					"dtfaturamento", "dt faturamento",
					"datanf", "data nf",
					"dataemissao", "data emissao",
				}},
		},
	}
}

// RosterSchema descreve a planilha de revendedores ativos (lista mestre).
func RosterSchema() Schema {
	return Schema{
		Name: "revendedores ativos",
		Fields: []Field{
			{Key: FieldCodigoRevendedora, DisplayName: "CodigoRevendedora", Required: true,
				Variants: []string{
					"codigorevendedora", "codigo revendedora", "codigo", "cod",
					"codrevendedora", "cod revendedora",
				}},
			{Key: FieldNomeRevendedora, DisplayName: "NomeRevendedora", Required: true,
				Variants: []string{"nomerevendedora", "nome revendedora", "revendedora", "nome"}},
			{Key: FieldSetor, DisplayName: "Setor", Required: true, Variants: []string{"setor"}},
			{Key: FieldCicloCaptacao, DisplayName: "CicloCaptacao",
				Variants: []string{"ciclocaptacao", "ciclo captacao", "ciclo", "ciclocapt"}},
		},
	}
}

// GeralSchema descreve a variante transacional da planilha Geral.
func GeralSchema() Schema {
	return Schema{
		Name: "planilha Geral",
		Fields: []Field{
			{Key: FieldGerencia, DisplayName: "Gerência",
				Variants: []string{"gerencia", "ger"}},
			{Key: FieldSetor, DisplayName: "Setor", Required: true,
				Variants: []string{"setor", "setor revendedora", "setorrevendedora"}},
			{Key: FieldCodigoRevendedora, DisplayName: "CodigoRevendedora", Required: true,
				Variants: []string{
					"codigorevendedora", "codigo revendedora", "codigo", "cod",
					"codrevendedora", "cod revendedora",
				}},
			{Key: FieldNomeRevendedora, DisplayName: "NomeRevendedora", Required: true,
				Variants: []string{"nomerevendedora", "nome revendedora", "revendedora", "nome"}},
			{Key: FieldCicloFaturamento, DisplayName: "CicloFaturamento", Required: true,
				Variants: []string{"ciclofaturamento", "ciclo faturamento", "ciclofat", "ciclo"}},
			{Key: FieldTipo, DisplayName: "Tipo", Required: true,
				Variants: []string{"tipo", "tipovenda", "tipo venda"}},
			{Key: FieldQuantidadeItens, DisplayName: "QuantidadeItens",
				Variants: []string{"quantidadeitens", "quantidade itens", "quantidade", "qtd", "qtde", "itens"}},
			{Key: FieldValorPraticado, DisplayName: "ValorPraticado",
				Variants: []string{"valorpraticado", "valor praticado", "valor", "vlr", "valortotal", "valor total"}},
		},
	}
}

// RankingSchema descreve o arquivo de ranking (totais oficiais por setor).
// Todas as colunas são obrigatórias.
func RankingSchema() Schema {
	return Schema{
		Name: "ranking",
		Fields: []Field{
			{Key: FieldSetor, DisplayName: "Setor", Required: true, Variants: []string{"setor"}},
			{Key: FieldQuantidadeItens, DisplayName: "QuantidadeItens", Required: true,
				Variants: []string{"quantidadeitens", "quantidade itens", "qtd itens", "itens", "qtditens"}},
			{Key: FieldQuantidadeRevendedor, DisplayName: "QuantidadeRevendedor", Required: true,
				Variants: []string{
					"quantidaderevendedor", "quantidade revendedor", "qtd revendedor",
					"revendedores", "qtd rev", "qtdrevendedor", "qtd revendedores",
				}},
			{Key: FieldValorPraticado, DisplayName: "ValorPraticado", Required: true,
				Variants: []string{"valorpraticado", "valor praticado", "valor", "valor total", "valortotal", "faturamento"}},
		},
	}
}
