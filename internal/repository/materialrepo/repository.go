package materialrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"labstock/internal/domain"
	apperror "labstock/internal/errors"
	"labstock/internal/pkg/cache"
	"labstock/internal/pkg/logger"
)

// Chave de cache da listagem do catálogo de materiais.
const materiaisCacheKey = "materiais:all"

// MaterialRepository implementa a interface domain.MaterialRepository sobre o
// PostgreSQL, com cache-aside na listagem.
type MaterialRepository struct {
	DB           *sql.DB
	Cache        cache.Client
	DBTimeout    time.Duration
	CacheTimeout time.Duration
	logger       logger.Logger
}

// NewMaterialRepository cria e retorna uma nova instância do Repositório de
// Materiais, injetando DB e Cache.
func NewMaterialRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTimeout time.Duration, logger logger.Logger) *MaterialRepository {
	return &MaterialRepository{
		DB:           db,
		Cache:        cacheClient,
		DBTimeout:    dbTimeout,
		CacheTimeout: cacheTimeout,
		logger:       logger,
	}
}

// Save insere um novo material no catálogo e invalida o cache da listagem.
func (r *MaterialRepository) Save(ctx context.Context, material domain.Material) (domain.Material, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	material.ID = uuid.NewString()

	_, err := r.DB.ExecContext(ctxTimeout,
		`INSERT INTO materiais (id, nome) VALUES ($1, $2)`,
		material.ID, material.Nome,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return domain.Material{}, apperror.NewConflictError(fmt.Sprintf("O material '%s' já existe.", material.Nome))
		}
		r.logger.Error("Falha ao inserir material no DB.", err)
		return domain.Material{}, apperror.NewDBError("falha ao inserir material", err)
	}

	r.Cache.Delete(ctxTimeout, materiaisCacheKey)

	r.logger.Info("Material salvo.", map[string]interface{}{"id": material.ID, "nome": material.Nome})
	return material, nil
}

// FindAll lista o catálogo ordenado por nome, usando a estratégia Cache-Aside.
func (r *MaterialRepository) FindAll(ctx context.Context) ([]domain.Material, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	// 1. Tentar obter do Cache (Redis)
	var materiais []domain.Material
	cachedData, err := r.Cache.Get(ctxTimeout, materiaisCacheKey)
	if err == nil {
		if json.Unmarshal([]byte(cachedData), &materiais) == nil {
			// Cache HIT
			return materiais, nil
		}
		// Desserialização falhou; segue para o DB
	} else if err != cache.ErrCacheMiss {
		// Erro real de cache (e.g., conexão perdida): loga e segue para o DB.
		r.logger.Warn("Falha ao ler catálogo do cache.", map[string]interface{}{"error": err.Error()})
	}

	// 2. Busca no Banco de Dados (PostgreSQL)
	rows, err := r.DB.QueryContext(ctxTimeout,
		`SELECT id, nome FROM materiais ORDER BY nome ASC`,
	)
	if err != nil {
		r.logger.Error("Falha ao listar materiais no DB.", err)
		return nil, apperror.NewDBError("falha ao listar materiais", err)
	}
	defer rows.Close()

	materiais = []domain.Material{}
	for rows.Next() {
		var m domain.Material
		if err := rows.Scan(&m.ID, &m.Nome); err != nil {
			return nil, apperror.NewDBError("falha ao mapear material", err)
		}
		materiais = append(materiais, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("falha ao iterar materiais", err)
	}

	// 3. Popular o Cache para as próximas leituras
	if payload, err := json.Marshal(materiais); err == nil {
		r.Cache.Set(ctxTimeout, materiaisCacheKey, string(payload), r.CacheTimeout)
	}

	return materiais, nil
}

// Count retorna o total de materiais cadastrados. Usado pelo bootstrap do
// catálogo padrão.
func (r *MaterialRepository) Count(ctx context.Context) (int, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var total int
	err := r.DB.QueryRowContext(ctxTimeout, `SELECT COUNT(*) FROM materiais`).Scan(&total)
	if err != nil {
		r.logger.Error("Falha ao contar materiais no DB.", err)
		return 0, apperror.NewDBError("falha ao contar materiais", err)
	}

	return total, nil
}

// Delete remove um material do catálogo e invalida o cache da listagem.
func (r *MaterialRepository) Delete(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM materiais WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao remover material no DB.", err)
		return apperror.NewDBError("falha ao remover material", err)
	}

	afetadas, err := result.RowsAffected()
	if err != nil {
		return apperror.NewDBError("falha ao verificar linhas afetadas", err)
	}
	if afetadas == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("Material com id '%s' não encontrado", id))
	}

	r.Cache.Delete(ctxTimeout, materiaisCacheKey)

	r.logger.Info("Material removido.", map[string]interface{}{"id": id})
	return nil
}
