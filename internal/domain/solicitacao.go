package domain

import (
	"context"
	"time"
)

// StatusSolicitacao representa o estado de uma solicitação de empréstimo.
type StatusSolicitacao string

// Estados possíveis de uma solicitação. A transição é sempre
// ativo -> devolvido, nunca o inverso.
const (
	StatusAtivo     StatusSolicitacao = "ativo"
	StatusDevolvido StatusSolicitacao = "devolvido"
)

// Solicitacao representa o empréstimo de um kit por um usuário, com data de
// retirada e prazo de devolução.
type Solicitacao struct {
	ID             string            `json:"id"`
	KitID          string            `json:"kitId"`
	KitNome        string            `json:"kitNome"`
	UserID         string            `json:"userId"`
	UserNome       string            `json:"userNome"`
	DataRetirada   time.Time         `json:"dataRetirada"`
	PrazoDevolucao time.Time         `json:"prazoDevolucao"`
	Status         StatusSolicitacao `json:"status"`

	// Atrasada é derivada de (Status, PrazoDevolucao, agora) na leitura.
	// Nunca é persistida.
	Atrasada bool `json:"atrasada"`
}

// EstaAtrasada informa se a solicitação está em atraso no instante dado.
// Solicitações devolvidas nunca estão em atraso.
func (s Solicitacao) EstaAtrasada(agora time.Time) bool {
	return s.Status == StatusAtivo && agora.After(s.PrazoDevolucao)
}

// SolicitacaoRequest é o payload esperado para a criação de uma solicitação.
// Dias nulo significa o prazo padrão de 1 dia.
type SolicitacaoRequest struct {
	KitID string `json:"kitId"`
	Dias  *int   `json:"dias"`
}

// SolicitacaoRepository define o contrato de persistência para a entidade
// Solicitacao.
type SolicitacaoRepository interface {
	Save(ctx context.Context, solicitacao Solicitacao) (Solicitacao, error)
	FindByID(ctx context.Context, id string) (Solicitacao, error)
	// FindAtivas retorna apenas solicitações ativas, ordenadas por prazo de
	// devolução ascendente.
	FindAtivas(ctx context.Context) ([]Solicitacao, error)
	// EstenderPrazo soma dias ao prazo de devolução vigente em um único
	// UPDATE chaveado pelo ID, com a aritmética feita no banco. Duas
	// renovações simultâneas somam ambas; nenhuma se perde.
	EstenderPrazo(ctx context.Context, id string, dias int) (Solicitacao, error)
	// Devolver marca a solicitação como devolvida. Repetir a operação sobre
	// uma solicitação já devolvida é inócuo.
	Devolver(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
