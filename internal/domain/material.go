package domain

import "context"

// Material representa um tipo de material do catálogo do laboratório.
// O catálogo é plano: apenas um nome único por material.
type Material struct {
	ID   string `json:"id"`
	Nome string `json:"nome"`
}

// MaterialRepository define o contrato de persistência para a entidade Material.
type MaterialRepository interface {
	Save(ctx context.Context, material Material) (Material, error)
	FindAll(ctx context.Context) ([]Material, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
}
