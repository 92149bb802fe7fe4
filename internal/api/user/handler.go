package user

import (
	"context"
	"encoding/json"
	"net/http"

	"labstock/internal/domain"
	apperror "labstock/internal/errors"
	"labstock/internal/pkg/logger"
	"labstock/internal/service/userservice"
)

// UserService define o contrato que o Handler espera da camada de Serviço.
type UserService interface {
	Register(ctx context.Context, registro domain.Registro) (domain.Usuario, error)
	Login(ctx context.Context, nome string, senha string) (userservice.LoginResult, error)
	ListarContas(ctx context.Context) ([]domain.Usuario, error)
	Aprovar(ctx context.Context, id string) error
	Remover(ctx context.Context, id string) error
}

// LoginRequest representa o payload de entrada para o login.
type LoginRequest struct {
	Nome  string `json:"nome"`
	Senha string `json:"senha"`
}

// Handler agrupa todos os métodos de Handler do usuário.
type Handler struct {
	Service UserService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc UserService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// handleServiceResponse processa erros de serviço e envia respostas padronizadas ao cliente.
func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)
		if data != nil {
			if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
				h.Logger.Error("Falha ao codificar JSON de resposta", jsonErr)
			}
		}
		return
	}

	// Mapeamento de Erros de Negócio para Status HTTP
	status, category, message := apperror.MapToHTTPStatus(err)

	// Log apenas de erros graves
	if status >= 500 {
		h.Logger.Error("Erro interno no serviço de usuário:", err)
	}

	errorResponse := map[string]interface{}{
		"code":     status,
		"category": category,
		"message":  message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse)
}

// RegisterHandler lida com a requisição POST /api/auth/register.
// @Summary Cadastra um novo usuário
// @Description Cria um novo usuário. Alunos nascem aprovados; demais cargos aguardam aprovação da equipe.
// @Tags auth
// @Accept json
// @Produce json
// @Param registro body domain.Registro true "Dados de cadastro (nome, nascimento, senha, cargo)"
// @Success 201 {object} map[string]string "Mensagem de cadastro"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 409 {object} domain.ErrorResponse "Nome de usuário já existe"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /api/auth/register [post]
func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var registro domain.Registro
	if err := json.NewDecoder(r.Body).Decode(&registro); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload JSON inválido."), http.StatusCreated)
		return
	}

	novoUsuario, err := h.Service.Register(ctx, registro)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusCreated)
		return
	}

	mensagem := "Aguarde aprovação."
	if novoUsuario.Aprovado {
		mensagem = "Cadastro realizado!"
	}
	h.handleServiceResponse(w, r, map[string]string{"message": mensagem}, nil, http.StatusCreated)
}

// LoginHandler lida com a requisição POST /api/auth/login.
// @Summary Autentica um usuário e retorna um JWT
// @Description Recebe nome/senha, valida a conta e emite um token de sessão de 24 horas.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body LoginRequest true "Credenciais do usuário (nome e senha)"
// @Success 200 {object} userservice.LoginResult "Token emitido, com cargo e nome"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 401 {object} domain.ErrorResponse "Senha incorreta"
// @Failure 403 {object} domain.ErrorResponse "Conta pendente de aprovação"
// @Failure 404 {object} domain.ErrorResponse "Usuário não encontrado"
// @Router /api/auth/login [post]
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var loginReq LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload JSON inválido."), http.StatusOK)
		return
	}

	resultado, err := h.Service.Login(ctx, loginReq.Nome, loginReq.Senha)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, resultado, nil, http.StatusOK)
}

// ListarContasHandler lida com a requisição GET /api/admin/users.
// Retorna contas pendentes e aprovadas, sem expor administradores.
func (h *Handler) ListarContasHandler(w http.ResponseWriter, r *http.Request) {
	contas, err := h.Service.ListarContas(r.Context())
	h.handleServiceResponse(w, r, contas, err, http.StatusOK)
}

// AprovarHandler lida com a requisição PATCH /api/admin/aprovar/{id}.
func (h *Handler) AprovarHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.Service.Aprovar(r.Context(), id); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, map[string]string{"message": "Aprovado!"}, nil, http.StatusOK)
}

// RemoverHandler lida com a requisição DELETE /api/admin/user/{id}.
// Remover uma conta pendente equivale a rejeitar o cadastro.
func (h *Handler) RemoverHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.Service.Remover(r.Context(), id); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, map[string]string{"message": "Removido"}, nil, http.StatusOK)
}
