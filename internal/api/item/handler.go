package item

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"labstock/internal/domain"
	apperror "labstock/internal/errors"
	"labstock/internal/pkg/logger"
	"labstock/internal/pkg/middleware"
)

// ItemService define o contrato que o Handler espera da camada de Serviço.
type ItemService interface {
	Criar(ctx context.Context, item domain.Item) (domain.Item, error)
	Listar(ctx context.Context, busca string) ([]domain.Item, error)
	AjustarQuantidade(ctx context.Context, id string, quantidade int, cargo domain.Cargo) (domain.Item, error)
	Remover(ctx context.Context, id string) error
}

// AjusteRequest é o payload esperado para o ajuste de quantidade.
type AjusteRequest struct {
	Quantidade int `json:"quantidade"`
}

// Handler agrupa todos os métodos de Handler do estoque de itens.
type Handler struct {
	Service ItemService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ItemService, log logger.Logger) *Handler {
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

// CriarHandler lida com a requisição POST /api/itens.
func (h *Handler) CriarHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var novoItem domain.Item
	if err := json.NewDecoder(r.Body).Decode(&novoItem); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload JSON inválido."), http.StatusCreated)
		return
	}

	// O criador vem das claims quando o corpo não o informa.
	if novoItem.CriadoPor == "" {
		if claims, ok := middleware.GetUserClaimsFromContext(ctx); ok {
			novoItem.CriadoPor = claims.Nome
		}
	}

	criado, err := h.Service.Criar(ctx, novoItem)
	h.handleServiceResponse(w, r, criado, err, http.StatusCreated)
}

// ListarHandler lida com a requisição GET /api/itens.
// Aceita o parâmetro de query "busca" como filtro de texto livre sobre
// nome, especificação e localização.
func (h *Handler) ListarHandler(w http.ResponseWriter, r *http.Request) {
	busca := r.URL.Query().Get("busca")

	itens, err := h.Service.Listar(r.Context(), busca)
	h.handleServiceResponse(w, r, itens, err, http.StatusOK)
}

// AjustarHandler lida com a requisição PATCH /api/itens/{id}.
// Aumentos de quantidade são abertos a qualquer autenticado; diminuições são
// restritas à equipe (decisão tomada no serviço com base no cargo).
func (h *Handler) AjustarHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	claims, ok := middleware.GetUserClaimsFromContext(ctx)
	if !ok {
		h.handleServiceResponse(w, r, nil, apperror.NewTokenMissingError("Token não processado."), http.StatusOK)
		return
	}

	var ajuste AjusteRequest
	if err := json.NewDecoder(r.Body).Decode(&ajuste); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload JSON inválido."), http.StatusOK)
		return
	}

	atualizado, err := h.Service.AjustarQuantidade(ctx, id, ajuste.Quantidade, claims.Cargo)
	h.handleServiceResponse(w, r, atualizado, err, http.StatusOK)
}

// RemoverHandler lida com a requisição DELETE /api/itens/{id}.
func (h *Handler) RemoverHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.Service.Remover(r.Context(), id); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, map[string]string{"message": "Deletado"}, nil, http.StatusOK)
}
