package kit

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

// KitService define o contrato que o Handler espera da camada de Serviço.
type KitService interface {
	Criar(ctx context.Context, kit domain.Kit, criadoPor string) (domain.Kit, error)
	Listar(ctx context.Context) ([]domain.Kit, error)
	Remover(ctx context.Context, id string) error
}

// Handler agrupa todos os métodos de Handler de kits.
type Handler struct {
	Service KitService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc KitService, log logger.Logger) *Handler {
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

// CriarHandler lida com a requisição POST /api/kits.
// O criador do kit é o usuário autenticado, extraído das claims.
func (h *Handler) CriarHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := middleware.GetUserClaimsFromContext(ctx)
	if !ok {
		h.handleServiceResponse(w, r, nil, apperror.NewTokenMissingError("Token não processado."), http.StatusCreated)
		return
	}

	var novoKit domain.Kit
	if err := json.NewDecoder(r.Body).Decode(&novoKit); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload JSON inválido."), http.StatusCreated)
		return
	}

	criado, err := h.Service.Criar(ctx, novoKit, claims.Nome)
	h.handleServiceResponse(w, r, criado, err, http.StatusCreated)
}

// ListarHandler lida com a requisição GET /api/kits.
func (h *Handler) ListarHandler(w http.ResponseWriter, r *http.Request) {
	kits, err := h.Service.Listar(r.Context())
	h.handleServiceResponse(w, r, kits, err, http.StatusOK)
}

// RemoverHandler lida com a requisição DELETE /api/kits/{id}.
func (h *Handler) RemoverHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.Service.Remover(r.Context(), id); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, map[string]string{"message": "Kit removido"}, nil, http.StatusOK)
}
