package itemservice_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"labstock/internal/domain"
	apperror "labstock/internal/errors"
	"labstock/internal/pkg/logger"
	"labstock/internal/service/itemservice"
)

// MockItemRepository é uma implementação mock da interface ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Save(ctx context.Context, item domain.Item) (domain.Item, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(domain.Item), args.Error(1)
}

func (m *MockItemRepository) FindByID(ctx context.Context, id string) (domain.Item, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Item), args.Error(1)
}

func (m *MockItemRepository) FindAll(ctx context.Context, busca string) ([]domain.Item, error) {
	args := m.Called(ctx, busca)
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemRepository) AtualizarQuantidade(ctx context.Context, id string, quantidade int, permitirDiminuir bool) (domain.Item, error) {
	args := m.Called(ctx, id, quantidade, permitirDiminuir)
	return args.Get(0).(domain.Item), args.Error(1)
}

func (m *MockItemRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// TestCriar_Success testa o registro de um novo item de estoque.
func TestCriar_Success(t *testing.T) {
	mockRepo := new(MockItemRepository)
	mockLogger := logger.NewLogger("debug")

	svc := itemservice.NewService(mockRepo, mockLogger)

	item := domain.Item{
		Nome:        "Multímetro",
		Localizacao: "Armário 2",
		Quantidade:  3,
		CriadoPor:   "Maria",
	}
	mockRepo.On("Save", mock.AnythingOfType("context.backgroundCtx"), item).
		Return(domain.Item{ID: uuid.New().String(), Nome: "Multímetro"}, nil)

	criado, err := svc.Criar(context.Background(), item)

	assert.NoError(t, err)
	assert.NotEmpty(t, criado.ID)
	mockRepo.AssertExpectations(t)
}

// TestCriar_Fail_SemLocalizacao testa a rejeição de um item sem localização.
func TestCriar_Fail_SemLocalizacao(t *testing.T) {
	mockRepo := new(MockItemRepository)
	mockLogger := logger.NewLogger("debug")

	svc := itemservice.NewService(mockRepo, mockLogger)

	_, err := svc.Criar(context.Background(), domain.Item{Nome: "Multímetro"})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// TestAjustarQuantidade_AlunoSemPermissaoDeDiminuicao testa que o ajuste de
// um aluno chega ao repositório com a permissão de diminuição desligada: a
// classificação aumento-ou-diminuição fica no UPDATE, contra a quantidade
// vigente, e não em uma leitura prévia do serviço.
func TestAjustarQuantidade_AlunoSemPermissaoDeDiminuicao(t *testing.T) {
	mockRepo := new(MockItemRepository)
	mockLogger := logger.NewLogger("debug")

	svc := itemservice.NewService(mockRepo, mockLogger)

	id := uuid.New().String()
	mockRepo.On("AtualizarQuantidade", mock.AnythingOfType("context.backgroundCtx"), id, 5, false).
		Return(domain.Item{ID: id, Quantidade: 5}, nil)

	atualizado, err := svc.AjustarQuantidade(context.Background(), id, 5, domain.CargoAluno)

	assert.NoError(t, err)
	assert.Equal(t, 5, atualizado.Quantidade)
	// Nenhuma leitura antes da escrita.
	mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

// TestAjustarQuantidade_DiminuicaoPorAluno_Negada testa que a diminuição
// barrada pelo UPDATE condicionado chega ao chamador como permissão negada.
func TestAjustarQuantidade_DiminuicaoPorAluno_Negada(t *testing.T) {
	mockRepo := new(MockItemRepository)
	mockLogger := logger.NewLogger("debug")

	svc := itemservice.NewService(mockRepo, mockLogger)

	id := uuid.New().String()
	mockRepo.On("AtualizarQuantidade", mock.AnythingOfType("context.backgroundCtx"), id, 1, false).
		Return(domain.Item{}, apperror.NewForbiddenError("Apenas a equipe pode diminuir a quantidade de um item."))

	_, err := svc.AjustarQuantidade(context.Background(), id, 1, domain.CargoAluno)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ForbiddenError{}, err)
	mockRepo.AssertExpectations(t)
}

// TestAjustarQuantidade_DiminuicaoPorProfessor testa que a equipe ajusta com
// a permissão de diminuição ligada.
func TestAjustarQuantidade_DiminuicaoPorProfessor(t *testing.T) {
	mockRepo := new(MockItemRepository)
	mockLogger := logger.NewLogger("debug")

	svc := itemservice.NewService(mockRepo, mockLogger)

	id := uuid.New().String()
	mockRepo.On("AtualizarQuantidade", mock.AnythingOfType("context.backgroundCtx"), id, 1, true).
		Return(domain.Item{ID: id, Quantidade: 1}, nil)

	atualizado, err := svc.AjustarQuantidade(context.Background(), id, 1, domain.CargoProfessor)

	assert.NoError(t, err)
	assert.Equal(t, 1, atualizado.Quantidade)
	mockRepo.AssertExpectations(t)
}

// TestAjustarQuantidade_Fail_Negativa testa a rejeição de quantidade negativa
// antes de qualquer acesso ao repositório.
func TestAjustarQuantidade_Fail_Negativa(t *testing.T) {
	mockRepo := new(MockItemRepository)
	mockLogger := logger.NewLogger("debug")

	svc := itemservice.NewService(mockRepo, mockLogger)

	_, err := svc.AjustarQuantidade(context.Background(), uuid.New().String(), -1, domain.CargoAdmin)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "AtualizarQuantidade", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// TestAjustarQuantidade_Fail_ItemInexistente testa o ajuste sobre um item
// desconhecido.
func TestAjustarQuantidade_Fail_ItemInexistente(t *testing.T) {
	mockRepo := new(MockItemRepository)
	mockLogger := logger.NewLogger("debug")

	svc := itemservice.NewService(mockRepo, mockLogger)

	id := uuid.New().String()
	mockRepo.On("AtualizarQuantidade", mock.AnythingOfType("context.backgroundCtx"), id, 5, true).
		Return(domain.Item{}, apperror.NewNotFoundError("Item não encontrado."))

	_, err := svc.AjustarQuantidade(context.Background(), id, 5, domain.CargoAdmin)

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
	mockRepo.AssertExpectations(t)
}
