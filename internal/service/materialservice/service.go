package materialservice

import (
	"context"
	"strings"

	"labstock/internal/domain"
	apperror "labstock/internal/errors"
	"labstock/internal/pkg/logger"
)

// Catálogo semeado na primeira inicialização, quando não há nenhum material.
var materiaisPadrao = []string{
	"Arduino Uno",
	"LED Vermelho",
	"Resistor 220ohm",
	"Protoboard",
	"Jumper Macho-Macho",
	"Sensor Ultrassônico",
}

// Service implementa a lógica de negócio do catálogo de materiais.
type Service struct {
	repo   domain.MaterialRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Materiais.
func NewService(repo domain.MaterialRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Criar adiciona um material ao catálogo.
func (s *Service) Criar(ctx context.Context, material domain.Material) (domain.Material, error) {
	material.Nome = strings.TrimSpace(material.Nome)
	if material.Nome == "" {
		return domain.Material{}, apperror.NewValidationError("O nome do material não pode ser vazio.")
	}

	criado, err := s.repo.Save(ctx, material)
	if err != nil {
		return domain.Material{}, err
	}

	s.logger.Info("Material criado.", map[string]interface{}{"id": criado.ID, "nome": criado.Nome})
	return criado, nil
}

// Listar retorna o catálogo completo ordenado por nome.
func (s *Service) Listar(ctx context.Context) ([]domain.Material, error) {
	return s.repo.FindAll(ctx)
}

// Remover apaga um material do catálogo.
func (s *Service) Remover(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// EnsureDefaultMateriais semeia o catálogo padrão quando ele está vazio.
// Inicializações seguintes não duplicam o catálogo.
func (s *Service) EnsureDefaultMateriais(ctx context.Context) error {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if total > 0 {
		return nil
	}

	for _, nome := range materiaisPadrao {
		if _, err := s.repo.Save(ctx, domain.Material{Nome: nome}); err != nil {
			return err
		}
	}

	s.logger.Info("📦 Materiais padrão criados.", map[string]interface{}{"total": len(materiaisPadrao)})
	return nil
}
