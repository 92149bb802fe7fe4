package userservice

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"labstock/internal/domain"
	apperror "labstock/internal/errors"
	"labstock/internal/pkg/logger"
	"labstock/internal/pkg/token"
)

// Credenciais da conta de administrador criada no bootstrap.
const (
	adminPadraoNome       = "Admin"
	adminPadraoSenha      = "admin123"
	adminPadraoNascimento = "01/01/2000"
)

// TokenService é o contrato da camada de token (internal/pkg/token).
type TokenService interface {
	GenerateToken(userID string, cargo string, nome string) (string, error)
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// LoginResult é o resultado de um login bem-sucedido: o token de sessão e os
// dados de exibição que o cliente usa sem decodificar o JWT.
type LoginResult struct {
	Token string       `json:"token"`
	Cargo domain.Cargo `json:"cargo"`
	Nome  string       `json:"nome"`
}

// UserService implementa o fluxo de cadastro, aprovação e login de contas.
type UserService struct {
	UserRepo domain.UsuarioRepository
	TokenSvc TokenService
	logger   logger.Logger
}

// NewService cria uma nova instância do UserService, injetando o Repositório
// e o serviço de tokens.
func NewService(repo domain.UsuarioRepository, tokenSvc TokenService, logger logger.Logger) *UserService {
	return &UserService{
		UserRepo: repo,
		TokenSvc: tokenSvc,
		logger:   logger,
	}
}

// Register cadastra um novo usuário. Contas de aluno nascem aprovadas; os
// demais cargos ficam pendentes até a aprovação de um membro da equipe.
// A senha é hasheada antes da persistência; o texto puro nunca é gravado
// nem logado.
func (s *UserService) Register(ctx context.Context, registro domain.Registro) (domain.Usuario, error) {
	// 1. Validação Básica
	if registro.Nome == "" || registro.Senha == "" {
		return domain.Usuario{}, apperror.NewValidationError("Nome e senha são obrigatórios.")
	}
	if !registro.Cargo.Valido() {
		return domain.Usuario{}, apperror.NewValidationError("Cargo desconhecido.")
	}

	// 2. Hashing da Senha
	hashedSenha, err := bcrypt.GenerateFromPassword([]byte(registro.Senha), bcrypt.DefaultCost)
	if err != nil {
		return domain.Usuario{}, apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}

	// 3. Criação do Objeto Usuario
	// Alunos são aprovados automaticamente no cadastro.
	novoUsuario := domain.Usuario{
		Nome:       registro.Nome,
		Nascimento: registro.Nascimento,
		SenhaHash:  string(hashedSenha),
		Cargo:      registro.Cargo,
		Aprovado:   registro.Cargo == domain.CargoAluno,
	}

	// 4. Chamada ao Repositório para Persistência
	// Nome duplicado vira ConflictError no repositório (constraint de unicidade).
	usuario, err := s.UserRepo.Save(ctx, novoUsuario)
	if err != nil {
		return domain.Usuario{}, err
	}

	s.logger.Info("Usuário cadastrado.", map[string]interface{}{
		"user_id":  usuario.ID,
		"cargo":    usuario.Cargo,
		"aprovado": usuario.Aprovado,
	})
	return usuario, nil
}

// Login autentica um usuário e emite um token de sessão. As falhas são
// distinguíveis pelo chamador: usuário inexistente, senha incorreta e conta
// ainda não aprovada produzem erros de tipos diferentes.
func (s *UserService) Login(ctx context.Context, nome string, senha string) (LoginResult, error) {
	// 1. Validação Básica
	if nome == "" || senha == "" {
		return LoginResult{}, apperror.NewValidationError("Nome e senha são obrigatórios.")
	}

	// 2. Buscar Usuário pelo Nome
	usuario, err := s.UserRepo.FindByNome(ctx, nome)
	if err != nil {
		// NotFoundError é propagado como está: o cliente distingue
		// "usuário não encontrado" de "senha incorreta".
		return LoginResult{}, err
	}

	// 3. Comparar Senhas (Hashing)
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.SenhaHash), []byte(senha)); err != nil {
		return LoginResult{}, apperror.NewUnauthorizedError("Senha incorreta.")
	}

	// 4. Checar aprovação. A senha correta de uma conta pendente não emite token.
	if !usuario.Aprovado {
		return LoginResult{}, apperror.NewPendingApprovalError("Conta pendente de aprovação.")
	}

	// 5. Gerar JWT
	tokenString, err := s.TokenSvc.GenerateToken(usuario.ID, string(usuario.Cargo), usuario.Nome)
	if err != nil {
		return LoginResult{}, apperror.NewInternalError("Falha ao gerar token de autenticação.", err)
	}

	return LoginResult{
		Token: tokenString,
		Cargo: usuario.Cargo,
		Nome:  usuario.Nome,
	}, nil
}

// ListarContas lista as contas pendentes e aprovadas, excluindo os
// administradores do resultado.
func (s *UserService) ListarContas(ctx context.Context) ([]domain.Usuario, error) {
	return s.UserRepo.FindAllExcetoAdmin(ctx)
}

// Aprovar desbloqueia uma conta pendente. Aprovar novamente uma conta já
// aprovada é aceito sem erro.
func (s *UserService) Aprovar(ctx context.Context, id string) error {
	if err := s.UserRepo.Aprovar(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Conta aprovada.", map[string]interface{}{"user_id": id})
	return nil
}

// Remover apaga uma conta. A remoção de uma conta pendente equivale à
// rejeição do cadastro.
func (s *UserService) Remover(ctx context.Context, id string) error {
	if err := s.UserRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Conta removida.", map[string]interface{}{"user_id": id})
	return nil
}

// EnsureDefaultAdmin garante a existência da conta de administrador padrão,
// criada aprovada na primeira inicialização. Em inicializações seguintes não
// cria duplicata.
func (s *UserService) EnsureDefaultAdmin(ctx context.Context) error {
	existe, err := s.UserRepo.ExisteAdmin(ctx)
	if err != nil {
		return err
	}
	if existe {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPadraoSenha), bcrypt.DefaultCost)
	if err != nil {
		return apperror.NewInternalError("Falha ao gerar hash da senha do admin padrão.", err)
	}

	_, err = s.UserRepo.Save(ctx, domain.Usuario{
		Nome:       adminPadraoNome,
		Nascimento: adminPadraoNascimento,
		SenhaHash:  string(hash),
		Cargo:      domain.CargoAdmin,
		Aprovado:   true,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		return err
	}

	s.logger.Info("👑 Admin padrão criado.", nil)
	return nil
}
