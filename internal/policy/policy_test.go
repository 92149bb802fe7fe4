package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"labstock/internal/domain"
	"labstock/internal/policy"
)

// TestAuthorize verifica a tabela de autorização combinação a combinação.
func TestAuthorize(t *testing.T) {
	testCases := []struct {
		nome      string
		cargo     domain.Cargo
		action    policy.Action
		permitido bool
	}{
		// Materiais: leitura aberta, escrita restrita à equipe.
		{"aluno lista materiais", domain.CargoAluno, policy.ActionMaterialList, true},
		{"aluno cria material", domain.CargoAluno, policy.ActionMaterialCreate, false},
		{"professor cria material", domain.CargoProfessor, policy.ActionMaterialCreate, true},
		{"aluno apaga material", domain.CargoAluno, policy.ActionMaterialDelete, false},
		{"coordenador apaga material", domain.CargoCoordenador, policy.ActionMaterialDelete, true},

		// Itens: criação e aumento abertos; diminuição e remoção restritas.
		{"aluno cria item", domain.CargoAluno, policy.ActionItemCreate, true},
		{"aluno aumenta quantidade", domain.CargoAluno, policy.ActionItemIncrease, true},
		{"aluno diminui quantidade", domain.CargoAluno, policy.ActionItemDecrease, false},
		{"professor diminui quantidade", domain.CargoProfessor, policy.ActionItemDecrease, true},
		{"aluno apaga item", domain.CargoAluno, policy.ActionItemDelete, false},
		{"admin apaga item", domain.CargoAdmin, policy.ActionItemDelete, true},

		// Kits: leitura aberta, escrita restrita.
		{"aluno lista kits", domain.CargoAluno, policy.ActionKitList, true},
		{"aluno cria kit", domain.CargoAluno, policy.ActionKitCreate, false},
		{"coordenador cria kit", domain.CargoCoordenador, policy.ActionKitCreate, true},

		// Solicitações: qualquer autenticado cria; o restante é da equipe.
		{"aluno cria solicitação", domain.CargoAluno, policy.ActionSolicitacaoCreate, true},
		{"aluno lista solicitações", domain.CargoAluno, policy.ActionSolicitacaoList, false},
		{"professor lista solicitações", domain.CargoProfessor, policy.ActionSolicitacaoList, true},
		{"aluno renova solicitação", domain.CargoAluno, policy.ActionSolicitacaoRenovar, false},
		{"admin renova solicitação", domain.CargoAdmin, policy.ActionSolicitacaoRenovar, true},
		{"aluno devolve solicitação", domain.CargoAluno, policy.ActionSolicitacaoDevolver, false},
		{"coordenador devolve solicitação", domain.CargoCoordenador, policy.ActionSolicitacaoDevolver, true},

		// Gestão de contas: exclusiva da equipe.
		{"aluno lista contas", domain.CargoAluno, policy.ActionUsuarioList, false},
		{"professor aprova conta", domain.CargoProfessor, policy.ActionUsuarioAprovar, true},
		{"aluno aprova conta", domain.CargoAluno, policy.ActionUsuarioAprovar, false},
		{"admin remove conta", domain.CargoAdmin, policy.ActionUsuarioRemover, true},
	}

	for _, tc := range testCases {
		t.Run(tc.nome, func(t *testing.T) {
			assert.Equal(t, tc.permitido, policy.Authorize(tc.cargo, tc.action))
		})
	}
}

// TestAuthorize_DefaultDeny garante que combinações fora da tabela são negadas,
// inclusive cargos desconhecidos e ações inexistentes.
func TestAuthorize_DefaultDeny(t *testing.T) {
	assert.False(t, policy.Authorize(domain.Cargo("visitante"), policy.ActionMaterialList))
	assert.False(t, policy.Authorize(domain.CargoAdmin, policy.Action("acao:inexistente")))
	assert.False(t, policy.Authorize(domain.Cargo(""), policy.ActionSolicitacaoCreate))
}

// TestEhEquipe verifica o conjunto de cargos com permissões elevadas.
func TestEhEquipe(t *testing.T) {
	assert.True(t, policy.EhEquipe(domain.CargoAdmin))
	assert.True(t, policy.EhEquipe(domain.CargoCoordenador))
	assert.True(t, policy.EhEquipe(domain.CargoProfessor))
	assert.False(t, policy.EhEquipe(domain.CargoAluno))
	assert.False(t, policy.EhEquipe(domain.Cargo("visitante")))
}
