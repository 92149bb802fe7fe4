package kitservice_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"labstock/internal/domain"
	apperror "labstock/internal/errors"
	"labstock/internal/pkg/logger"
	"labstock/internal/service/kitservice"
)

// MockKitRepository é uma implementação mock da interface KitRepository
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

// TestCriar_Success testa a criação de um kit, com o criador vindo do token e
// não do corpo da requisição.
func TestCriar_Success(t *testing.T) {
	mockRepo := new(MockKitRepository)
	mockLogger := logger.NewLogger("debug")

	svc := kitservice.NewService(mockRepo, mockLogger)

	mockRepo.On("Save", mock.AnythingOfType("context.backgroundCtx"), mock.MatchedBy(func(k domain.Kit) bool {
		return k.Nome == "Kit Arduino" && k.CriadoPor == "Maria"
	})).Return(domain.Kit{ID: uuid.New().String(), Nome: "Kit Arduino", CriadoPor: "Maria"}, nil)

	criado, err := svc.Criar(context.Background(), domain.Kit{
		Nome:        "Kit Arduino",
		Localizacao: "Armário 1",
		Conteudo: []domain.LinhaKit{
			{Nome: "Arduino Uno", Quantidade: 1},
			{Nome: "Protoboard", Quantidade: 2},
		},
		CriadoPor: "Invasor", // deve ser sobrescrito pelo usuário autenticado
	}, "Maria")

	assert.NoError(t, err)
	assert.Equal(t, "Maria", criado.CriadoPor)
	mockRepo.AssertExpectations(t)
}

// TestCriar_Fail_LinhaSemNome testa a rejeição de uma linha de conteúdo sem
// material.
func TestCriar_Fail_LinhaSemNome(t *testing.T) {
	mockRepo := new(MockKitRepository)
	mockLogger := logger.NewLogger("debug")

	svc := kitservice.NewService(mockRepo, mockLogger)

	_, err := svc.Criar(context.Background(), domain.Kit{
		Nome:        "Kit Quebrado",
		Localizacao: "Armário 1",
		Conteudo:    []domain.LinhaKit{{Nome: "  ", Quantidade: 1}},
	}, "Maria")

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// TestCriar_Fail_QuantidadeInvalida testa a rejeição de quantidade zero ou
// negativa em uma linha de conteúdo.
func TestCriar_Fail_QuantidadeInvalida(t *testing.T) {
	mockRepo := new(MockKitRepository)
	mockLogger := logger.NewLogger("debug")

	svc := kitservice.NewService(mockRepo, mockLogger)

	_, err := svc.Criar(context.Background(), domain.Kit{
		Nome:        "Kit Quebrado",
		Localizacao: "Armário 1",
		Conteudo:    []domain.LinhaKit{{Nome: "Resistor", Quantidade: 0}},
	}, "Maria")

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
