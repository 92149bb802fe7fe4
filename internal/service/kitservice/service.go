package kitservice

import (
	"context"
	"strings"

	"labstock/internal/domain"
	apperror "labstock/internal/errors"
	"labstock/internal/pkg/logger"
)

// Service implementa a lógica de negócio dos kits de empréstimo.
type Service struct {
	repo   domain.KitRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Kits.
func NewService(repo domain.KitRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Criar monta um novo kit com as linhas de conteúdo informadas. O criador é
// sempre o usuário autenticado, extraído do token, nunca do corpo.
func (s *Service) Criar(ctx context.Context, kit domain.Kit, criadoPor string) (domain.Kit, error) {
	kit.Nome = strings.TrimSpace(kit.Nome)
	if kit.Nome == "" {
		return domain.Kit{}, apperror.NewValidationError("O nome do kit não pode ser vazio.")
	}
	if strings.TrimSpace(kit.Localizacao) == "" {
		return domain.Kit{}, apperror.NewValidationError("A localização do kit não pode ser vazia.")
	}
	for _, linha := range kit.Conteudo {
		if strings.TrimSpace(linha.Nome) == "" {
			return domain.Kit{}, apperror.NewValidationError("Cada linha de conteúdo precisa de um nome de material.")
		}
		if linha.Quantidade <= 0 {
			return domain.Kit{}, apperror.NewValidationError("Cada linha de conteúdo precisa de quantidade positiva.")
		}
	}
	kit.CriadoPor = criadoPor

	criado, err := s.repo.Save(ctx, kit)
	if err != nil {
		return domain.Kit{}, err
	}

	s.logger.Info("Kit criado.", map[string]interface{}{"id": criado.ID, "nome": criado.Nome, "criado_por": criadoPor})
	return criado, nil
}

// Listar retorna todos os kits.
func (s *Service) Listar(ctx context.Context) ([]domain.Kit, error) {
	return s.repo.FindAll(ctx)
}

// Remover apaga um kit.
func (s *Service) Remover(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
