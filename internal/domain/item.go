package domain

import (
	"context"
	"time"
)

// Item representa uma unidade de estoque física do laboratório, com
// localização e quantidade disponível.
type Item struct {
	ID            string    `json:"id"`
	Nome          string    `json:"nome"`
	Especificacao string    `json:"especificacao"`
	Localizacao   string    `json:"localizacao"`
	Quantidade    int       `json:"quantidade"`
	CriadoPor     string    `json:"criadoPor"`
	CreatedAt     time.Time `json:"data"`
}

// ItemRepository define o contrato de persistência para a entidade Item.
type ItemRepository interface {
	Save(ctx context.Context, item Item) (Item, error)
	FindByID(ctx context.Context, id string) (Item, error)
	// FindAll aceita um filtro de texto livre aplicado sobre nome,
	// especificação e localização. Filtro vazio retorna tudo.
	FindAll(ctx context.Context, busca string) ([]Item, error)
	// AtualizarQuantidade grava a quantidade absoluta em um único UPDATE
	// chaveado pelo ID do item. Quando permitirDiminuir é falso, o UPDATE só
	// se aplica se a nova quantidade não for menor que a vigente; a direção é
	// classificada contra a quantidade no momento da escrita, não contra uma
	// leitura anterior.
	AtualizarQuantidade(ctx context.Context, id string, quantidade int, permitirDiminuir bool) (Item, error)
	Delete(ctx context.Context, id string) error
}
