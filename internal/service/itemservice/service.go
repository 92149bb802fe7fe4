package itemservice

import (
	"context"
	"strings"

	"labstock/internal/domain"
	apperror "labstock/internal/errors"
	"labstock/internal/pkg/logger"
	"labstock/internal/policy"
)

// Service implementa a lógica de negócio do estoque de itens.
type Service struct {
	repo   domain.ItemRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Itens.
func NewService(repo domain.ItemRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Criar registra um novo item de estoque. Qualquer identidade autenticada
// pode registrar itens.
func (s *Service) Criar(ctx context.Context, item domain.Item) (domain.Item, error) {
	item.Nome = strings.TrimSpace(item.Nome)
	if item.Nome == "" {
		return domain.Item{}, apperror.NewValidationError("O nome do item não pode ser vazio.")
	}
	if strings.TrimSpace(item.Localizacao) == "" {
		return domain.Item{}, apperror.NewValidationError("A localização do item não pode ser vazia.")
	}
	if item.Quantidade < 0 {
		return domain.Item{}, apperror.NewValidationError("A quantidade inicial não pode ser negativa.")
	}
	if item.CriadoPor == "" {
		item.CriadoPor = "Anônimo"
	}

	return s.repo.Save(ctx, item)
}

// Listar retorna os itens, opcionalmente filtrados por texto livre sobre
// nome, especificação e localização.
func (s *Service) Listar(ctx context.Context, busca string) ([]domain.Item, error) {
	return s.repo.FindAll(ctx, busca)
}

// AjustarQuantidade grava a quantidade absoluta de um item. Aumentar a
// quantidade é aberto a qualquer identidade autenticada; diminuir é restrito
// à equipe. A permissão vem da política centralizada, mas a classificação
// aumento-ou-diminuição é condição do próprio UPDATE no repositório, contra
// a quantidade vigente no momento da escrita.
func (s *Service) AjustarQuantidade(ctx context.Context, id string, quantidade int, cargo domain.Cargo) (domain.Item, error) {
	if quantidade < 0 {
		return domain.Item{}, apperror.NewValidationError("A quantidade não pode ser negativa.")
	}

	permitirDiminuir := policy.Authorize(cargo, policy.ActionItemDecrease)

	item, err := s.repo.AtualizarQuantidade(ctx, id, quantidade, permitirDiminuir)
	if err != nil {
		if _, ok := err.(*apperror.ForbiddenError); ok {
			s.logger.Warn("Tentativa de diminuir quantidade sem permissão.", map[string]interface{}{
				"item_id": id,
				"cargo":   cargo,
			})
		}
		return domain.Item{}, err
	}

	return item, nil
}

// Remover apaga um item do estoque.
func (s *Service) Remover(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
