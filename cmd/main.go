package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Registra o spec gerado pelo swag, servido em /swagger/doc.json.
	_ "labstock/docs"

	// Pacotes de infraestrutura e utilitários
	"labstock/config"
	"labstock/internal/pkg/cache"
	"labstock/internal/pkg/database"
	"labstock/internal/pkg/logger"
	"labstock/internal/pkg/token"

	// Camadas da aplicação para Injeção de Dependências
	"labstock/internal/api/item"
	"labstock/internal/api/kit"
	"labstock/internal/api/material"
	"labstock/internal/api/router"
	"labstock/internal/api/solicitacao"
	"labstock/internal/api/user"
	"labstock/internal/repository/itemrepo"
	"labstock/internal/repository/kitrepo"
	"labstock/internal/repository/materialrepo"
	"labstock/internal/repository/solicitacaorepo"
	"labstock/internal/repository/userrepo"
	"labstock/internal/service/itemservice"
	"labstock/internal/service/kitservice"
	"labstock/internal/service/materialservice"
	"labstock/internal/service/solicitacaoservice"
	"labstock/internal/service/userservice"
)

func main() {
	// 1. Configuração e Inicialização
	log.Println("⚡ Inicializando serviço LabStock...")

	// Carrega variáveis do arquivo .env quando presente; as variáveis
	// essenciais podem vir do ambiente do sistema (ex: Docker).
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	appLog := logger.NewLogger(cfg.LogLevel)
	appLog.Info("Configurações carregadas.", nil)

	// 2. Conexão com Recursos de Infraestrutura

	// A. Banco de Dados (PostgreSQL)
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		appLog.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	appLog.Info("Conexão PostgreSQL estabelecida.", nil)

	// B. Cache (Redis)
	cacheClient := cache.NewRedisClient(cfg.RedisAddr)
	appLog.Info("Conexão Redis estabelecida.", nil)

	// C. Serviço de Tokens (JWT)
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)
	appLog.Debug("Serviço de Tokens JWT inicializado.", nil)

	// 3. INJEÇÃO DE DEPENDÊNCIAS (Repository -> Service -> Handler)

	usuarioRepo := userrepo.NewUsuarioRepository(db, cfg.DBTimeout, appLog)
	materialRepo := materialrepo.NewMaterialRepository(db, cacheClient, cfg.DBTimeout, cfg.CacheTimeout, appLog)
	itemRepo := itemrepo.NewItemRepository(db, cfg.DBTimeout, appLog)
	kitRepo := kitrepo.NewKitRepository(db, cfg.DBTimeout, appLog)
	solicitacaoRepo := solicitacaorepo.NewSolicitacaoRepository(db, cfg.DBTimeout, appLog)

	userSvc := userservice.NewService(usuarioRepo, tokenSvc, appLog)
	materialSvc := materialservice.NewService(materialRepo, appLog)
	itemSvc := itemservice.NewService(itemRepo, appLog)
	kitSvc := kitservice.NewService(kitRepo, appLog)
	solicitacaoSvc := solicitacaoservice.NewService(solicitacaoRepo, kitRepo, appLog)

	userHandler := user.NewHandler(userSvc, appLog)
	materialHandler := material.NewHandler(materialSvc, appLog)
	itemHandler := item.NewHandler(itemSvc, appLog)
	kitHandler := kit.NewHandler(kitSvc, appLog)
	solicitacaoHandler := solicitacao.NewHandler(solicitacaoSvc, appLog)

	// 4. Bootstrap de dados padrão (admin e catálogo de materiais).
	// Falhas aqui não derrubam o processo; o serviço segue atendendo.
	bootstrapCtx, bootstrapCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer bootstrapCancel()

	if err := userSvc.EnsureDefaultAdmin(bootstrapCtx); err != nil {
		appLog.Error("Falha ao garantir admin padrão; seguindo sem bootstrap.", err)
	}
	if err := materialSvc.EnsureDefaultMateriais(bootstrapCtx); err != nil {
		appLog.Error("Falha ao semear catálogo padrão; seguindo sem bootstrap.", err)
	}

	// 5. Configuração e Início do Roteador/Servidor

	r := router.NewRouter(
		userHandler,
		materialHandler,
		itemHandler,
		kitHandler,
		solicitacaoHandler,
		tokenSvc,
		cacheClient,
		router.RateLimitConfig{
			MaxRequests: cfg.RateLimitMaxRequests,
			Period:      cfg.RateLimitPeriod,
		},
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 6. Execução e Graceful Shutdown
	go func() {
		appLog.Info("Servidor LabStock ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	appLog.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLog.Error("Desligamento do servidor forçado.", err)
	}

	appLog.Info("Servidor encerrado com sucesso.", nil)
}
