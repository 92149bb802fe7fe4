package domain

import (
	"context"
	"time"
)

// Kit representa um conjunto nomeado de materiais disponível para empréstimo.
// O conteúdo é imutável após a criação.
type Kit struct {
	ID          string     `json:"id"`
	Nome        string     `json:"nome"`
	Localizacao string     `json:"localizacao"`
	Conteudo    []LinhaKit `json:"conteudo"`
	CriadoPor   string     `json:"criadoPor"`
	CreatedAt   time.Time  `json:"created_at"`
}

// LinhaKit é uma linha de conteúdo de um kit: material e quantidade.
type LinhaKit struct {
	Nome       string `json:"nome"`
	Quantidade int    `json:"quantidade"`
}

// KitRepository define o contrato de persistência para a entidade Kit.
type KitRepository interface {
	Save(ctx context.Context, kit Kit) (Kit, error)
	FindByID(ctx context.Context, id string) (Kit, error)
	FindAll(ctx context.Context) ([]Kit, error)
	Delete(ctx context.Context, id string) error
}
