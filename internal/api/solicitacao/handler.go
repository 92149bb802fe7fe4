package solicitacao

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"labstock/internal/domain"
	apperror "labstock/internal/errors"
	"labstock/internal/pkg/logger"
	"labstock/internal/pkg/middleware"
)

// SolicitacaoService define o contrato que o Handler espera da camada de Serviço.
type SolicitacaoService interface {
	Criar(ctx context.Context, req domain.SolicitacaoRequest, userID, userNome string) (domain.Solicitacao, error)
	ListarAtivas(ctx context.Context) ([]domain.Solicitacao, error)
	Renovar(ctx context.Context, id string, dias *int) (domain.Solicitacao, error)
	Devolver(ctx context.Context, id string) error
	Remover(ctx context.Context, id string) error
}

// RenovacaoRequest é o payload esperado para a renovação de uma solicitação.
// Dias nulo significa o padrão de 1 dia extra.
type RenovacaoRequest struct {
	Dias *int `json:"dias"`
}

// Handler agrupa todos os métodos de Handler de solicitações de empréstimo.
type Handler struct {
	Service SolicitacaoService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc SolicitacaoService, log logger.Logger) *Handler {
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

	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		h.Logger.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
	} else {
		h.Logger.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{"path": r.URL.Path})
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

// CriarHandler lida com a requisição POST /api/solicitacoes.
// @Summary Solicita o empréstimo de um kit
// @Description Abre uma solicitação para o usuário autenticado. O prazo de devolução é a retirada mais o número de dias pedido (padrão 1).
// @Tags solicitacoes
// @Accept json
// @Produce json
// @Param solicitacao body domain.SolicitacaoRequest true "Kit e número de dias"
// @Success 201 {object} domain.Solicitacao "Solicitação criada"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido ou dias negativos"
// @Failure 404 {object} domain.ErrorResponse "Kit não encontrado"
// @Router /api/solicitacoes [post]
func (h *Handler) CriarHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := middleware.GetUserClaimsFromContext(ctx)
	if !ok {
		h.handleServiceResponse(w, r, nil, apperror.NewTokenMissingError("Token não processado."), http.StatusCreated)
		return
	}

	var req domain.SolicitacaoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload JSON inválido."), http.StatusCreated)
		return
	}

	criada, err := h.Service.Criar(ctx, req, claims.UserID, claims.Nome)
	h.handleServiceResponse(w, r, criada, err, http.StatusCreated)
}

// ListarHandler lida com a requisição GET /api/solicitacoes.
// Retorna apenas solicitações ativas, ordenadas por prazo ascendente, com a
// marca de atraso calculada na leitura.
func (h *Handler) ListarHandler(w http.ResponseWriter, r *http.Request) {
	solicitacoes, err := h.Service.ListarAtivas(r.Context())
	h.handleServiceResponse(w, r, solicitacoes, err, http.StatusOK)
}

// RenovarHandler lida com a requisição PATCH /api/solicitacoes/{id}/renovar.
// @Summary Renova o prazo de uma solicitação
// @Description Soma os dias extras ao prazo de devolução atual, não ao relógio de agora.
// @Tags solicitacoes
// @Accept json
// @Produce json
// @Param id path string true "ID da solicitação"
// @Param renovacao body RenovacaoRequest true "Dias extras (padrão 1)"
// @Success 200 {object} domain.Solicitacao "Solicitação renovada"
// @Failure 400 {object} domain.ErrorResponse "Dias negativos"
// @Failure 404 {object} domain.ErrorResponse "Solicitação não encontrada"
// @Router /api/solicitacoes/{id}/renovar [patch]
func (h *Handler) RenovarHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	// Corpo vazio significa renovação pelo padrão de 1 dia.
	var req RenovacaoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload JSON inválido."), http.StatusOK)
		return
	}

	renovada, err := h.Service.Renovar(r.Context(), id, req.Dias)
	h.handleServiceResponse(w, r, renovada, err, http.StatusOK)
}

// DevolverHandler lida com a requisição PATCH /api/solicitacoes/{id}/devolver.
// A devolução é terminal; repetir a operação é aceito sem erro.
func (h *Handler) DevolverHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.Service.Devolver(r.Context(), id); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, map[string]string{"message": "Devolvido"}, nil, http.StatusOK)
}

// RemoverHandler lida com a requisição DELETE /api/solicitacoes/{id}.
func (h *Handler) RemoverHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.Service.Remover(r.Context(), id); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, map[string]string{"message": "Removida"}, nil, http.StatusOK)
}
