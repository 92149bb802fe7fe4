package solicitacaoservice_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"labstock/internal/domain"
	apperror "labstock/internal/errors"
	"labstock/internal/pkg/logger"
	"labstock/internal/service/solicitacaoservice"
)

// MockSolicitacaoRepository é uma implementação mock da interface SolicitacaoRepository
type MockSolicitacaoRepository struct {
	mock.Mock
}

func (m *MockSolicitacaoRepository) Save(ctx context.Context, solicitacao domain.Solicitacao) (domain.Solicitacao, error) {
	args := m.Called(ctx, solicitacao)
	return args.Get(0).(domain.Solicitacao), args.Error(1)
}

func (m *MockSolicitacaoRepository) FindByID(ctx context.Context, id string) (domain.Solicitacao, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Solicitacao), args.Error(1)
}

func (m *MockSolicitacaoRepository) FindAtivas(ctx context.Context) ([]domain.Solicitacao, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Solicitacao), args.Error(1)
}

func (m *MockSolicitacaoRepository) EstenderPrazo(ctx context.Context, id string, dias int) (domain.Solicitacao, error) {
	args := m.Called(ctx, id, dias)
	return args.Get(0).(domain.Solicitacao), args.Error(1)
}

func (m *MockSolicitacaoRepository) Devolver(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSolicitacaoRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockKitRepository é um mock do repositório de kits, usado para resolver o
// nome do kit na criação.
type MockKitRepository struct {
	mock.Mock
}

func (m *MockKitRepository) Save(ctx context.Context, kit domain.Kit) (domain.Kit, error) {
	args := m.Called(ctx, kit)
	return args.Get(0).(domain.Kit), args.Error(1)
}

func (m *MockKitRepository) FindByID(ctx context.Context, id string) (domain.Kit, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Kit), args.Error(1)
}

func (m *MockKitRepository) FindAll(ctx context.Context) ([]domain.Kit, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Kit), args.Error(1)
}

func (m *MockKitRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func intPtr(v int) *int { return &v }

// TestCriar_PrazoCalculado testa que o prazo de devolução é a retirada mais o
// número de dias pedido, e que o nome do kit vem do repositório.
func TestCriar_PrazoCalculado(t *testing.T) {
	mockRepo := new(MockSolicitacaoRepository)
	mockKits := new(MockKitRepository)
	mockLogger := logger.NewLogger("debug")

	svc := solicitacaoservice.NewService(mockRepo, mockKits, mockLogger)

	kitID := uuid.New().String()
	mockKits.On("FindByID", mock.AnythingOfType("context.backgroundCtx"), kitID).
		Return(domain.Kit{ID: kitID, Nome: "Kit Arduino"}, nil)

	// Captura a solicitação exatamente como chegou ao repositório.
	var salva domain.Solicitacao
	mockRepo.On("Save", mock.AnythingOfType("context.backgroundCtx"), mock.AnythingOfType("domain.Solicitacao")).
		Run(func(args mock.Arguments) {
			salva = args.Get(1).(domain.Solicitacao)
		}).
		Return(domain.Solicitacao{ID: uuid.New().String()}, nil)

	_, err := svc.Criar(context.Background(), domain.SolicitacaoRequest{
		KitID: kitID,
		Dias:  intPtr(2),
	}, uuid.New().String(), "João")

	assert.NoError(t, err)
	assert.Equal(t, "Kit Arduino", salva.KitNome)
	assert.Equal(t, domain.StatusAtivo, salva.Status)
	assert.WithinDuration(t, time.Now(), salva.DataRetirada, 2*time.Second)
	assert.Equal(t, salva.DataRetirada.AddDate(0, 0, 2), salva.PrazoDevolucao)
	mockRepo.AssertExpectations(t)
	mockKits.AssertExpectations(t)
}

// TestCriar_DiasAusenteUsaPadrao testa que a ausência do campo dias resulta no
// prazo padrão de 1 dia.
func TestCriar_DiasAusenteUsaPadrao(t *testing.T) {
	mockRepo := new(MockSolicitacaoRepository)
	mockKits := new(MockKitRepository)
	mockLogger := logger.NewLogger("debug")

	svc := solicitacaoservice.NewService(mockRepo, mockKits, mockLogger)

	kitID := uuid.New().String()
	mockKits.On("FindByID", mock.AnythingOfType("context.backgroundCtx"), kitID).
		Return(domain.Kit{ID: kitID, Nome: "Kit Robótica"}, nil)

	var salva domain.Solicitacao
	mockRepo.On("Save", mock.AnythingOfType("context.backgroundCtx"), mock.AnythingOfType("domain.Solicitacao")).
		Run(func(args mock.Arguments) {
			salva = args.Get(1).(domain.Solicitacao)
		}).
		Return(domain.Solicitacao{}, nil)

	_, err := svc.Criar(context.Background(), domain.SolicitacaoRequest{KitID: kitID}, uuid.New().String(), "Maria")

	assert.NoError(t, err)
	assert.Equal(t, salva.DataRetirada.AddDate(0, 0, 1), salva.PrazoDevolucao)
	mockRepo.AssertExpectations(t)
}

// TestCriar_Fail_DiasNegativo testa a rejeição de um número de dias negativo.
func TestCriar_Fail_DiasNegativo(t *testing.T) {
	mockRepo := new(MockSolicitacaoRepository)
	mockKits := new(MockKitRepository)
	mockLogger := logger.NewLogger("debug")

	svc := solicitacaoservice.NewService(mockRepo, mockKits, mockLogger)

	_, err := svc.Criar(context.Background(), domain.SolicitacaoRequest{
		KitID: uuid.New().String(),
		Dias:  intPtr(-1),
	}, uuid.New().String(), "João")

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	mockKits.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

// TestCriar_Fail_KitInexistente testa que um kit desconhecido produz NotFound
// sem persistir nada.
func TestCriar_Fail_KitInexistente(t *testing.T) {
	mockRepo := new(MockSolicitacaoRepository)
	mockKits := new(MockKitRepository)
	mockLogger := logger.NewLogger("debug")

	svc := solicitacaoservice.NewService(mockRepo, mockKits, mockLogger)

	kitID := uuid.New().String()
	mockKits.On("FindByID", mock.AnythingOfType("context.backgroundCtx"), kitID).
		Return(domain.Kit{}, apperror.NewNotFoundError("Kit não encontrado."))

	_, err := svc.Criar(context.Background(), domain.SolicitacaoRequest{KitID: kitID}, uuid.New().String(), "João")

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// TestRenovar_DelegaSomaDeDiasAoBanco testa que a renovação entrega ao
// repositório o número de dias a somar, nunca um prazo pré-calculado: a
// aritmética acontece no UPDATE, de modo que duas renovações concorrentes
// somam ambas sem perda.
func TestRenovar_DelegaSomaDeDiasAoBanco(t *testing.T) {
	mockRepo := new(MockSolicitacaoRepository)
	mockKits := new(MockKitRepository)
	mockLogger := logger.NewLogger("debug")

	svc := solicitacaoservice.NewService(mockRepo, mockKits, mockLogger)

	id := uuid.New().String()
	prazoEstendido := time.Now().AddDate(0, 0, -1) // atrasada em 2 dias, renovada por 1

	mockRepo.On("EstenderPrazo", mock.AnythingOfType("context.backgroundCtx"), id, 1).
		Return(domain.Solicitacao{ID: id, PrazoDevolucao: prazoEstendido, Status: domain.StatusAtivo}, nil)

	renovada, err := svc.Renovar(context.Background(), id, intPtr(1))

	assert.NoError(t, err)
	assert.Equal(t, prazoEstendido, renovada.PrazoDevolucao)
	assert.True(t, renovada.PrazoDevolucao.Before(time.Now())) // continua atrasada
	// O serviço não lê a solicitação antes de escrever.
	mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

// TestRenovar_DiasAusenteUsaPadrao testa que a renovação sem dias estende o
// prazo em 1 dia.
func TestRenovar_DiasAusenteUsaPadrao(t *testing.T) {
	mockRepo := new(MockSolicitacaoRepository)
	mockKits := new(MockKitRepository)
	mockLogger := logger.NewLogger("debug")

	svc := solicitacaoservice.NewService(mockRepo, mockKits, mockLogger)

	id := uuid.New().String()
	mockRepo.On("EstenderPrazo", mock.AnythingOfType("context.backgroundCtx"), id, 1).
		Return(domain.Solicitacao{ID: id, PrazoDevolucao: time.Now().AddDate(0, 0, 4), Status: domain.StatusAtivo}, nil)

	_, err := svc.Renovar(context.Background(), id, nil)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

// TestRenovar_Fail_DiasNegativo testa a rejeição de dias negativos antes de
// qualquer acesso ao repositório.
func TestRenovar_Fail_DiasNegativo(t *testing.T) {
	mockRepo := new(MockSolicitacaoRepository)
	mockKits := new(MockKitRepository)
	mockLogger := logger.NewLogger("debug")

	svc := solicitacaoservice.NewService(mockRepo, mockKits, mockLogger)

	_, err := svc.Renovar(context.Background(), uuid.New().String(), intPtr(-3))

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "EstenderPrazo", mock.Anything, mock.Anything, mock.Anything)
}

// TestRenovar_Fail_Inexistente testa a renovação de uma solicitação
// desconhecida.
func TestRenovar_Fail_Inexistente(t *testing.T) {
	mockRepo := new(MockSolicitacaoRepository)
	mockKits := new(MockKitRepository)
	mockLogger := logger.NewLogger("debug")

	svc := solicitacaoservice.NewService(mockRepo, mockKits, mockLogger)

	id := uuid.New().String()
	mockRepo.On("EstenderPrazo", mock.AnythingOfType("context.backgroundCtx"), id, 1).
		Return(domain.Solicitacao{}, apperror.NewNotFoundError("Solicitação não encontrada."))

	_, err := svc.Renovar(context.Background(), id, nil)

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
	mockRepo.AssertExpectations(t)
}

// TestDevolver testa a devolução de uma solicitação.
func TestDevolver(t *testing.T) {
	mockRepo := new(MockSolicitacaoRepository)
	mockKits := new(MockKitRepository)
	mockLogger := logger.NewLogger("debug")

	svc := solicitacaoservice.NewService(mockRepo, mockKits, mockLogger)

	id := uuid.New().String()
	mockRepo.On("Devolver", mock.AnythingOfType("context.backgroundCtx"), id).Return(nil)

	assert.NoError(t, svc.Devolver(context.Background(), id))
	// Devolver novamente é aceito sem erro.
	assert.NoError(t, svc.Devolver(context.Background(), id))
	mockRepo.AssertExpectations(t)
}

// TestListarAtivas_MarcaAtraso testa que a marca de atraso é recalculada na
// leitura: prazo no passado marca, prazo no futuro não.
func TestListarAtivas_MarcaAtraso(t *testing.T) {
	mockRepo := new(MockSolicitacaoRepository)
	mockKits := new(MockKitRepository)
	mockLogger := logger.NewLogger("debug")

	svc := solicitacaoservice.NewService(mockRepo, mockKits, mockLogger)

	atrasada := domain.Solicitacao{
		ID:             uuid.New().String(),
		PrazoDevolucao: time.Now().AddDate(0, 0, -1),
		Status:         domain.StatusAtivo,
	}
	noPrazo := domain.Solicitacao{
		ID:             uuid.New().String(),
		PrazoDevolucao: time.Now().AddDate(0, 0, 1),
		Status:         domain.StatusAtivo,
	}

	mockRepo.On("FindAtivas", mock.AnythingOfType("context.backgroundCtx")).
		Return([]domain.Solicitacao{atrasada, noPrazo}, nil)

	resultado, err := svc.ListarAtivas(context.Background())

	assert.NoError(t, err)
	assert.Len(t, resultado, 2)
	assert.True(t, resultado[0].Atrasada)
	assert.False(t, resultado[1].Atrasada)
	mockRepo.AssertExpectations(t)
}
