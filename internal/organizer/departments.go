package organizer

import (
	"sort"
	"strings"
)

// DepartmentColumn is the header of the derived department name column,
// inserted right after the raw budget code in every processed batch.
const DepartmentColumn = "Departamento (De/Para)"

// Departamentos is the static De/Para table mapping the 8-character budget
// code prefix ("NN.NN.NN") to the department display name.
var Departamentos = map[string]string{
	"01.02.01": "GABINETE PREFEITO DEPENDÊNCIAS",
	"01.02.02": "PROCURADORIA JURIDICA",
	"01.02.03": "DEPTO DE ADMINISTRACÃO",
	"01.02.04": "DEPTO DE ALMOXARIFADO E PATRIMONIO",
	"01.02.05": "DEPTO DE FINANÇAS",
	"01.02.06": "DEPTO DE LICITAÇÃO E COMPRAS",
	"01.02.07": "DEPTO DE CONVÊNIOS",
	"01.02.08": "DEPTO DE PLANEJAMENTO",
	"01.02.09": "DEPTO DE DESENV. ECONOM. E DO TRABALHO",
	"01.02.10": "DEPTO DE OBRAS",
	"01.02.11": "DEPTO DE SERVIÇOS URBANOS E RURAIS",
	"01.02.12": "DEPTO DA AGRICULTURA E MEIO AMBIENTE",
	"01.02.13": "DEPTO DE SEGURANÇA E TRÂNSITO",
	"01.02.14": "DEPTO DE EDUCAÇÃO - ENSINO BASICO",
	"01.02.15": "DEPTO DE EDUCAÇÃO FUNDEB MAGISTERIO",
	"01.02.16": "DEPTO DE EDUCAÇÃO FUNDEB - OTS DESPESAS",
	"01.02.17": "DEPTO DE EDUCAÇÃO - MERENDA ESCOLAR",
	"01.02.18": "DEPTO DE CULTURA E TURISMO",
	"01.02.19": "DEPTO DE ESPORTES E LAZER",
	"01.02.20": "FUNDO MUNICIPAL DE SAUDE",
	"01.02.21": "DEPTO DE AÇÃO SOCIAL",
	"01.02.22": "ENCARGOS GERAIS DO MUNICIPIO",
	"01.02.23": "DEPTO DE TECNOLOGIA DA INFORMAÇÃO E INOVAÇÃO",
	"01.02.24": "DEPTO DE ADMINISTRAÇÃO TRIBUTÁRIA",
	"01.02.99": "RESERVA DE CONTIGÊNCIA",
	"02.01.01": "CÂMARA MUNICIPAL",
	"04.04.01": "DEPARTAMENTO COMERCIAL",
	"04.04.02": "DEPARTAMENTO DE OBRAS E SERVIÇOS",
	"04.04.03": "DEPARTAMENTO DE CAPTAÇÃOO E TRATAMENTO DE AGUA",
	"04.04.04": "DEPARTAMENTO DE TRATAMENTO DE ESGOTO",
	"05.05.01": "FUNDO DE PREVIDÊNCIA DOS SERVIDORES MUNICIPAIS",
}

// DepartmentName resolves a budget code to its department display name.
// Codes carry sub-code suffixes that vary between uploads, so only the
// first 8 characters identify the department. Unknown prefixes degrade to
// "DEP-<prefix>" instead of failing.
func DepartmentName(code string) string {
	clean := strings.TrimSpace(code)
	prefix := clean
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	if name, ok := Departamentos[prefix]; ok {
		return name
	}
	return "DEP-" + prefix
}

// DepartmentNames returns every display name, sorted, for selection lists.
func DepartmentNames() []string {
	names := make([]string, 0, len(Departamentos))
	for _, name := range Departamentos {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
