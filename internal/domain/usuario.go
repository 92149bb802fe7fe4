package domain

import (
	"context"
	"time"
)

// Usuario representa a entidade de usuário do laboratório.
type Usuario struct {
	ID         string    `json:"id"`
	Nome       string    `json:"nome"` // Nome de exibição, chave única de identidade
	Nascimento string    `json:"nascimento"`
	SenhaHash  string    `json:"-"` // Oculta o hash da senha no JSON de resposta
	Cargo      Cargo     `json:"cargo"`
	Aprovado   bool      `json:"aprovado"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Cargo é um tipo string para representar o papel do usuário no sistema.
type Cargo string

// Constantes para os cargos de usuário.
const (
	CargoAdmin       Cargo = "admin"
	CargoCoordenador Cargo = "coordenador"
	CargoProfessor   Cargo = "professor"
	CargoAluno       Cargo = "aluno"
)

// Valido informa se o cargo é um dos quatro cargos conhecidos.
func (c Cargo) Valido() bool {
	switch c {
	case CargoAdmin, CargoCoordenador, CargoProfessor, CargoAluno:
		return true
	}
	return false
}

// Registro representa o payload de entrada para o cadastro.
type Registro struct {
	Nome       string `json:"nome"`
	Nascimento string `json:"nascimento"`
	Senha      string `json:"senha"`
	Cargo      Cargo  `json:"cargo"`
}

// UsuarioRepository define o contrato de persistência para a entidade Usuario.
type UsuarioRepository interface {
	Save(ctx context.Context, usuario Usuario) (Usuario, error)
	FindByNome(ctx context.Context, nome string) (Usuario, error)
	FindAllExcetoAdmin(ctx context.Context) ([]Usuario, error)
	ExisteAdmin(ctx context.Context) (bool, error)
	Aprovar(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
