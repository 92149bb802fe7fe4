package kitrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"labstock/internal/domain"
	apperror "labstock/internal/errors"
	"labstock/internal/pkg/logger"
)

// KitRepository implementa a interface domain.KitRepository sobre o
// PostgreSQL. O conteúdo do kit é persistido como JSONB.
type KitRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewKitRepository cria e retorna uma nova instância do Repositório de Kits.
func NewKitRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *KitRepository {
	return &KitRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

// Save insere um novo kit com suas linhas de conteúdo.
func (r *KitRepository) Save(ctx context.Context, kit domain.Kit) (domain.Kit, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	kit.ID = uuid.NewString()
	kit.CreatedAt = time.Now()
	if kit.Conteudo == nil {
		kit.Conteudo = []domain.LinhaKit{}
	}

	conteudo, err := json.Marshal(kit.Conteudo)
	if err != nil {
		return domain.Kit{}, apperror.NewInternalError("falha ao serializar conteúdo do kit", err)
	}

	query := `INSERT INTO kits (id, nome, localizacao, conteudo, criado_por, created_at)
              VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = r.DB.ExecContext(ctxTimeout, query,
		kit.ID, kit.Nome, kit.Localizacao, conteudo, kit.CriadoPor, kit.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Falha ao inserir kit no DB.", err)
		return domain.Kit{}, apperror.NewDBError("falha ao inserir kit", err)
	}

	r.logger.Info("Kit salvo.", map[string]interface{}{"id": kit.ID, "nome": kit.Nome})
	return kit, nil
}

// FindByID busca um kit pelo ID.
func (r *KitRepository) FindByID(ctx context.Context, id string) (domain.Kit, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT id, nome, localizacao, conteudo, criado_por, created_at FROM kits WHERE id = $1`

	var kit domain.Kit
	var conteudo []byte
	err := r.DB.QueryRowContext(ctxTimeout, query, id).Scan(
		&kit.ID, &kit.Nome, &kit.Localizacao, &conteudo, &kit.CriadoPor, &kit.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Kit{}, apperror.NewNotFoundError(fmt.Sprintf("Kit com id '%s' não encontrado", id))
		}
		r.logger.Error("Falha ao buscar kit no DB.", err)
		return domain.Kit{}, apperror.NewDBError("falha ao buscar kit", err)
	}

	if err := json.Unmarshal(conteudo, &kit.Conteudo); err != nil {
		return domain.Kit{}, apperror.NewInternalError("falha ao desserializar conteúdo do kit", err)
	}

	return kit, nil
}

// FindAll lista todos os kits.
func (r *KitRepository) FindAll(ctx context.Context) ([]domain.Kit, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT id, nome, localizacao, conteudo, criado_por, created_at FROM kits ORDER BY nome ASC`

	rows, err := r.DB.QueryContext(ctxTimeout, query)
	if err != nil {
		r.logger.Error("Falha ao listar kits no DB.", err)
		return nil, apperror.NewDBError("falha ao listar kits", err)
	}
	defer rows.Close()

	kits := []domain.Kit{}
	for rows.Next() {
		var kit domain.Kit
		var conteudo []byte
		if err := rows.Scan(
			&kit.ID, &kit.Nome, &kit.Localizacao, &conteudo, &kit.CriadoPor, &kit.CreatedAt,
		); err != nil {
			return nil, apperror.NewDBError("falha ao mapear kit", err)
		}
		if err := json.Unmarshal(conteudo, &kit.Conteudo); err != nil {
			return nil, apperror.NewInternalError("falha ao desserializar conteúdo do kit", err)
		}
		kits = append(kits, kit)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("falha ao iterar kits", err)
	}

	return kits, nil
}

// Delete remove um kit.
func (r *KitRepository) Delete(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM kits WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao remover kit no DB.", err)
		return apperror.NewDBError("falha ao remover kit", err)
	}

	afetadas, err := result.RowsAffected()
	if err != nil {
		return apperror.NewDBError("falha ao verificar linhas afetadas", err)
	}
	if afetadas == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("Kit com id '%s' não encontrado", id))
	}

	r.logger.Info("Kit removido.", map[string]interface{}{"id": id})
	return nil
}
