package policy

import "labstock/internal/domain"

// Action identifica uma operação da API sujeita a autorização.
type Action string

// Ações conhecidas pela política de autorização.
const (
	ActionMaterialCreate Action = "material:create"
	ActionMaterialList   Action = "material:list"
	ActionMaterialDelete Action = "material:delete"

	ActionItemCreate   Action = "item:create"
	ActionItemList     Action = "item:list"
	ActionItemIncrease Action = "item:increase"
	ActionItemDecrease Action = "item:decrease"
	ActionItemDelete   Action = "item:delete"

	ActionKitCreate Action = "kit:create"
	ActionKitList   Action = "kit:list"
	ActionKitDelete Action = "kit:delete"

	ActionSolicitacaoCreate   Action = "solicitacao:create"
	ActionSolicitacaoList     Action = "solicitacao:list"
	ActionSolicitacaoRenovar  Action = "solicitacao:renovar"
	ActionSolicitacaoDevolver Action = "solicitacao:devolver"
	ActionSolicitacaoDelete   Action = "solicitacao:delete"

	ActionUsuarioList    Action = "usuario:list"
	ActionUsuarioAprovar Action = "usuario:aprovar"
	ActionUsuarioRemover Action = "usuario:remover"
)

// equipe é o conjunto de cargos com permissões elevadas. O admin não é
// estruturalmente distinto de coordenador/professor para fins de aprovação.
var equipe = []domain.Cargo{domain.CargoAdmin, domain.CargoCoordenador, domain.CargoProfessor}

// todos é o conjunto de qualquer identidade autenticada.
var todos = []domain.Cargo{domain.CargoAdmin, domain.CargoCoordenador, domain.CargoProfessor, domain.CargoAluno}

// tabela mapeia cada ação para os cargos autorizados. A política é avaliada
// uma única vez por requisição; combinações ausentes são negadas.
var tabela = map[Action][]domain.Cargo{
	ActionMaterialCreate: equipe,
	ActionMaterialList:   todos,
	ActionMaterialDelete: equipe,

	ActionItemCreate:   todos,
	ActionItemList:     todos,
	ActionItemIncrease: todos,
	ActionItemDecrease: equipe,
	ActionItemDelete:   equipe,

	ActionKitCreate: equipe,
	ActionKitList:   todos,
	ActionKitDelete: equipe,

	ActionSolicitacaoCreate:   todos,
	ActionSolicitacaoList:     equipe,
	ActionSolicitacaoRenovar:  equipe,
	ActionSolicitacaoDevolver: equipe,
	ActionSolicitacaoDelete:   equipe,

	ActionUsuarioList:    equipe,
	ActionUsuarioAprovar: equipe,
	ActionUsuarioRemover: equipe,
}

// Authorize decide se o cargo pode executar a ação. Negação é o padrão para
// qualquer combinação não listada na tabela.
func Authorize(cargo domain.Cargo, action Action) bool {
	for _, permitido := range tabela[action] {
		if cargo == permitido {
			return true
		}
	}
	return false
}

// EhEquipe informa se o cargo pertence ao conjunto de equipe
// (admin, coordenador ou professor).
func EhEquipe(cargo domain.Cargo) bool {
	for _, c := range equipe {
		if cargo == c {
			return true
		}
	}
	return false
}
