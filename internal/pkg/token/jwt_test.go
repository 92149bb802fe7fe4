package token_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"labstock/internal/pkg/token"
)

const testSecret = "chave-secreta-de-teste"

// TestGenerateAndValidateToken testa o ciclo completo: gerar um token e
// validar que as claims voltam intactas.
func TestGenerateAndValidateToken(t *testing.T) {
	svc := token.NewService(testSecret, time.Hour)

	userID := uuid.New().String()
	tokenString, err := svc.GenerateToken(userID, "professor", "Maria")
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	claims, err := svc.ValidateToken(tokenString)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "professor", claims.Cargo)
	assert.Equal(t, "Maria", claims.Nome)
	assert.Equal(t, "LabStock-API", claims.Issuer)
	assert.Equal(t, userID, claims.Subject)
}

// TestValidateToken_Expired garante que um token com expiração no passado é
// rejeitado.
func TestValidateToken_Expired(t *testing.T) {
	svc := token.NewService(testSecret, -time.Minute)

	tokenString, err := svc.GenerateToken(uuid.New().String(), "aluno", "João")
	assert.NoError(t, err)

	claims, err := svc.ValidateToken(tokenString)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

// TestValidateToken_WrongSecret garante que um token assinado com outra chave
// é rejeitado.
func TestValidateToken_WrongSecret(t *testing.T) {
	emissor := token.NewService(testSecret, time.Hour)
	validador := token.NewService("outra-chave", time.Hour)

	tokenString, err := emissor.GenerateToken(uuid.New().String(), "admin", "Admin")
	assert.NoError(t, err)

	claims, err := validador.ValidateToken(tokenString)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

// TestValidateToken_Garbage garante que uma string arbitrária não passa na
// validação.
func TestValidateToken_Garbage(t *testing.T) {
	svc := token.NewService(testSecret, time.Hour)

	claims, err := svc.ValidateToken("não-é-um-jwt")
	assert.Error(t, err)
	assert.Nil(t, claims)
}
