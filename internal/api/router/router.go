package router

import (
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"labstock/internal/api/item"
	"labstock/internal/api/kit"
	"labstock/internal/api/material"
	"labstock/internal/api/solicitacao"
	"labstock/internal/api/user"
	"labstock/internal/pkg/cache"
	"labstock/internal/pkg/middleware"
	"labstock/internal/policy"
)

// RateLimitConfig agrupa os parâmetros do limitador de requisições aplicado
// às rotas de autenticação.
type RateLimitConfig struct {
	MaxRequests int
	Period      time.Duration
}

// NewRouter configura e retorna o roteador HTTP principal.
// Recebe os Handlers já inicializados por injeção de dependências. Toda
// decisão de permissão passa pela política centralizada, avaliada uma única
// vez por requisição no middleware.
func NewRouter(
	userHandler *user.Handler,
	materialHandler *material.Handler,
	itemHandler *item.Handler,
	kitHandler *kit.Handler,
	solicitacaoHandler *solicitacao.Handler,
	tokenSvc middleware.TokenService,
	cacheClient cache.Client,
	rateLimit RateLimitConfig,
) http.Handler {

	// Usamos o ServeMux padrão do net/http para roteamento
	mux := http.NewServeMux()

	auth := middleware.NewAuthMiddleware(tokenSvc)
	perm := middleware.RequirePermission
	rate := middleware.RateLimiter(cacheClient, rateLimit.MaxRequests, rateLimit.Period)

	// --- 1. Health Check e Documentação ---
	mux.HandleFunc("GET /ping", PingHandler)
	mux.Handle("/swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// --- 2. Autenticação (sem token, com rate limit por IP) ---
	mux.Handle("POST /api/auth/register", rate(http.HandlerFunc(userHandler.RegisterHandler)))
	mux.Handle("POST /api/auth/login", rate(http.HandlerFunc(userHandler.LoginHandler)))

	// --- 3. Catálogo de Materiais ---
	mux.HandleFunc("GET /api/materiais", auth(perm(policy.ActionMaterialList)(materialHandler.ListarHandler)))
	mux.HandleFunc("POST /api/materiais", auth(perm(policy.ActionMaterialCreate)(materialHandler.CriarHandler)))
	mux.HandleFunc("DELETE /api/materiais/{id}", auth(perm(policy.ActionMaterialDelete)(materialHandler.RemoverHandler)))

	// --- 4. Itens de Estoque ---
	mux.HandleFunc("GET /api/itens", auth(perm(policy.ActionItemList)(itemHandler.ListarHandler)))
	mux.HandleFunc("POST /api/itens", auth(perm(policy.ActionItemCreate)(itemHandler.CriarHandler)))
	// Aumentar é aberto a qualquer autenticado; a restrição de diminuição é
	// decidida no serviço, que conhece a quantidade atual.
	mux.HandleFunc("PATCH /api/itens/{id}", auth(perm(policy.ActionItemIncrease)(itemHandler.AjustarHandler)))
	mux.HandleFunc("DELETE /api/itens/{id}", auth(perm(policy.ActionItemDelete)(itemHandler.RemoverHandler)))

	// --- 5. Kits ---
	mux.HandleFunc("GET /api/kits", auth(perm(policy.ActionKitList)(kitHandler.ListarHandler)))
	mux.HandleFunc("POST /api/kits", auth(perm(policy.ActionKitCreate)(kitHandler.CriarHandler)))
	mux.HandleFunc("DELETE /api/kits/{id}", auth(perm(policy.ActionKitDelete)(kitHandler.RemoverHandler)))

	// --- 6. Solicitações de Empréstimo ---
	mux.HandleFunc("GET /api/solicitacoes", auth(perm(policy.ActionSolicitacaoList)(solicitacaoHandler.ListarHandler)))
	mux.HandleFunc("POST /api/solicitacoes", auth(perm(policy.ActionSolicitacaoCreate)(solicitacaoHandler.CriarHandler)))
	mux.HandleFunc("PATCH /api/solicitacoes/{id}/renovar", auth(perm(policy.ActionSolicitacaoRenovar)(solicitacaoHandler.RenovarHandler)))
	mux.HandleFunc("PATCH /api/solicitacoes/{id}/devolver", auth(perm(policy.ActionSolicitacaoDevolver)(solicitacaoHandler.DevolverHandler)))
	mux.HandleFunc("DELETE /api/solicitacoes/{id}", auth(perm(policy.ActionSolicitacaoDelete)(solicitacaoHandler.RemoverHandler)))

	// --- 7. Aprovação de Contas ---
	mux.HandleFunc("GET /api/admin/users", auth(perm(policy.ActionUsuarioList)(userHandler.ListarContasHandler)))
	mux.HandleFunc("PATCH /api/admin/aprovar/{id}", auth(perm(policy.ActionUsuarioAprovar)(userHandler.AprovarHandler)))
	mux.HandleFunc("DELETE /api/admin/user/{id}", auth(perm(policy.ActionUsuarioRemover)(userHandler.RemoverHandler)))

	return mux
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
