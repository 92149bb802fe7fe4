package solicitacaoservice

import (
	"context"
	"time"

	"labstock/internal/domain"
	apperror "labstock/internal/errors"
	"labstock/internal/pkg/logger"
)

// Prazo padrão de empréstimo quando o pedido não informa a duração.
const diasPadrao = 1

// Service implementa o ciclo de vida das solicitações de empréstimo de kits:
// criação, renovação, devolução e listagem com detecção de atraso.
type Service struct {
	repo   domain.SolicitacaoRepository
	kits   domain.KitRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Solicitações.
func NewService(repo domain.SolicitacaoRepository, kits domain.KitRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, kits: kits, logger: logger}
}

// diasOuPadrao resolve o número de dias pedido: ausente vira o padrão;
// negativo é rejeitado. Zero é aceito como está.
func diasOuPadrao(dias *int) (int, error) {
	if dias == nil {
		return diasPadrao, nil
	}
	if *dias < 0 {
		return 0, apperror.NewValidationError("O número de dias não pode ser negativo.")
	}
	return *dias, nil
}

// Criar abre uma solicitação de empréstimo para o usuário autenticado.
// O prazo de devolução é a data de retirada mais o número de dias pedido.
// Não há verificação de empréstimo ativo concorrente sobre o mesmo kit.
func (s *Service) Criar(ctx context.Context, req domain.SolicitacaoRequest, userID, userNome string) (domain.Solicitacao, error) {
	if req.KitID == "" {
		return domain.Solicitacao{}, apperror.NewValidationError("O kit da solicitação é obrigatório.")
	}

	dias, err := diasOuPadrao(req.Dias)
	if err != nil {
		return domain.Solicitacao{}, err
	}

	// O nome do kit é resolvido no servidor, nunca confiado ao corpo da
	// requisição. Kit inexistente vira NotFound.
	kit, err := s.kits.FindByID(ctx, req.KitID)
	if err != nil {
		return domain.Solicitacao{}, err
	}

	retirada := time.Now()
	solicitacao := domain.Solicitacao{
		KitID:          kit.ID,
		KitNome:        kit.Nome,
		UserID:         userID,
		UserNome:       userNome,
		DataRetirada:   retirada,
		PrazoDevolucao: retirada.AddDate(0, 0, dias),
		Status:         domain.StatusAtivo,
	}

	criada, err := s.repo.Save(ctx, solicitacao)
	if err != nil {
		return domain.Solicitacao{}, err
	}

	s.logger.Info("Solicitação criada.", map[string]interface{}{
		"id":    criada.ID,
		"kit":   criada.KitNome,
		"user":  criada.UserNome,
		"prazo": criada.PrazoDevolucao,
	})
	return criada, nil
}

// Renovar estende o prazo de devolução a partir do prazo atual, nunca a
// partir de agora: renovar uma solicitação já atrasada soma os dias ao prazo
// original. A soma acontece dentro do UPDATE, no banco; o serviço nunca lê o
// prazo antes de escrever.
func (s *Service) Renovar(ctx context.Context, id string, dias *int) (domain.Solicitacao, error) {
	extras, err := diasOuPadrao(dias)
	if err != nil {
		return domain.Solicitacao{}, err
	}

	renovada, err := s.repo.EstenderPrazo(ctx, id, extras)
	if err != nil {
		return domain.Solicitacao{}, err
	}

	s.logger.Info("Solicitação renovada.", map[string]interface{}{
		"id":          id,
		"dias_extras": extras,
		"novo_prazo":  renovada.PrazoDevolucao,
	})
	return renovada, nil
}

// Devolver marca a solicitação como devolvida. A transição é terminal;
// devolver novamente é aceito sem erro.
func (s *Service) Devolver(ctx context.Context, id string) error {
	if err := s.repo.Devolver(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Solicitação devolvida.", map[string]interface{}{"id": id})
	return nil
}

// Remover apaga uma solicitação.
func (s *Service) Remover(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ListarAtivas retorna as solicitações ativas ordenadas por prazo ascendente,
// com a marca de atraso recalculada sobre o relógio atual a cada leitura.
func (s *Service) ListarAtivas(ctx context.Context) ([]domain.Solicitacao, error) {
	solicitacoes, err := s.repo.FindAtivas(ctx)
	if err != nil {
		return nil, err
	}

	agora := time.Now()
	for i := range solicitacoes {
		solicitacoes[i].Atrasada = solicitacoes[i].EstaAtrasada(agora)
	}

	return solicitacoes, nil
}
