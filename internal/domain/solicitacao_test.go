package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"labstock/internal/domain"
)

// TestEstaAtrasada verifica o predicado de atraso sobre status e prazo.
func TestEstaAtrasada(t *testing.T) {
	agora := time.Now()

	testCases := []struct {
		nome     string
		status   domain.StatusSolicitacao
		prazo    time.Time
		atrasada bool
	}{
		{"ativa com prazo no futuro", domain.StatusAtivo, agora.Add(time.Hour), false},
		{"ativa com prazo no passado", domain.StatusAtivo, agora.Add(-time.Hour), true},
		{"ativa com prazo exatamente agora", domain.StatusAtivo, agora, false},
		{"devolvida com prazo no passado", domain.StatusDevolvido, agora.Add(-time.Hour), false},
	}

	for _, tc := range testCases {
		t.Run(tc.nome, func(t *testing.T) {
			s := domain.Solicitacao{Status: tc.status, PrazoDevolucao: tc.prazo}
			assert.Equal(t, tc.atrasada, s.EstaAtrasada(agora))
		})
	}
}
