package solicitacaorepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"labstock/internal/domain"
	apperror "labstock/internal/errors"
	"labstock/internal/pkg/logger"
)

// SolicitacaoRepository implementa a interface domain.SolicitacaoRepository
// sobre o PostgreSQL.
type SolicitacaoRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewSolicitacaoRepository cria e retorna uma nova instância do Repositório de
// Solicitações.
func NewSolicitacaoRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *SolicitacaoRepository {
	return &SolicitacaoRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

const colunasSolicitacao = `id, kit_id, kit_nome, user_id, user_nome, data_retirada, prazo_devolucao, status`

func scanSolicitacao(row interface{ Scan(...interface{}) error }) (domain.Solicitacao, error) {
	var s domain.Solicitacao
	err := row.Scan(
		&s.ID, &s.KitID, &s.KitNome, &s.UserID, &s.UserNome,
		&s.DataRetirada, &s.PrazoDevolucao, &s.Status,
	)
	return s, err
}

// Save insere uma nova solicitação de empréstimo.
func (r *SolicitacaoRepository) Save(ctx context.Context, solicitacao domain.Solicitacao) (domain.Solicitacao, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	solicitacao.ID = uuid.NewString()

	query := `INSERT INTO solicitacoes (` + colunasSolicitacao + `)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.DB.ExecContext(ctxTimeout, query,
		solicitacao.ID,
		solicitacao.KitID,
		solicitacao.KitNome,
		solicitacao.UserID,
		solicitacao.UserNome,
		solicitacao.DataRetirada,
		solicitacao.PrazoDevolucao,
		solicitacao.Status,
	)
	if err != nil {
		r.logger.Error("Falha ao inserir solicitação no DB.", err)
		return domain.Solicitacao{}, apperror.NewDBError("falha ao inserir solicitação", err)
	}

	r.logger.Info("Solicitação salva.", map[string]interface{}{
		"id":      solicitacao.ID,
		"kit_id":  solicitacao.KitID,
		"user_id": solicitacao.UserID,
	})
	return solicitacao, nil
}

// FindByID busca uma solicitação pelo ID.
func (r *SolicitacaoRepository) FindByID(ctx context.Context, id string) (domain.Solicitacao, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + colunasSolicitacao + ` FROM solicitacoes WHERE id = $1`

	s, err := scanSolicitacao(r.DB.QueryRowContext(ctxTimeout, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Solicitacao{}, apperror.NewNotFoundError(fmt.Sprintf("Solicitação com id '%s' não encontrada", id))
		}
		r.logger.Error("Falha ao buscar solicitação no DB.", err)
		return domain.Solicitacao{}, apperror.NewDBError("falha ao buscar solicitação", err)
	}

	return s, nil
}

// FindAtivas retorna apenas solicitações ativas, ordenadas pelo prazo de
// devolução ascendente (vence-primeiro no topo).
func (r *SolicitacaoRepository) FindAtivas(ctx context.Context) ([]domain.Solicitacao, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + colunasSolicitacao + ` FROM solicitacoes
              WHERE status = $1 ORDER BY prazo_devolucao ASC`

	rows, err := r.DB.QueryContext(ctxTimeout, query, domain.StatusAtivo)
	if err != nil {
		r.logger.Error("Falha ao listar solicitações ativas no DB.", err)
		return nil, apperror.NewDBError("falha ao listar solicitações", err)
	}
	defer rows.Close()

	solicitacoes := []domain.Solicitacao{}
	for rows.Next() {
		s, err := scanSolicitacao(rows)
		if err != nil {
			return nil, apperror.NewDBError("falha ao mapear solicitação", err)
		}
		solicitacoes = append(solicitacoes, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("falha ao iterar solicitações", err)
	}

	return solicitacoes, nil
}

// EstenderPrazo soma dias ao prazo de devolução em um único UPDATE chaveado
// pelo ID, devolvendo o registro atualizado. A soma é feita no próprio
// banco: duas renovações concorrentes sobre a mesma solicitação são ambas
// aplicadas, sem perda de atualização.
func (r *SolicitacaoRepository) EstenderPrazo(ctx context.Context, id string, dias int) (domain.Solicitacao, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `UPDATE solicitacoes
              SET prazo_devolucao = prazo_devolucao + ($2 * INTERVAL '1 day')
              WHERE id = $1
              RETURNING ` + colunasSolicitacao

	s, err := scanSolicitacao(r.DB.QueryRowContext(ctxTimeout, query, id, dias))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Solicitacao{}, apperror.NewNotFoundError(fmt.Sprintf("Solicitação com id '%s' não encontrada", id))
		}
		r.logger.Error("Falha ao estender prazo da solicitação no DB.", err)
		return domain.Solicitacao{}, apperror.NewDBError("falha ao estender prazo", err)
	}

	r.logger.Info("Prazo da solicitação estendido.", map[string]interface{}{"id": id, "dias": dias, "prazo": s.PrazoDevolucao})
	return s, nil
}

// Devolver marca a solicitação como devolvida em um único UPDATE chaveado
// pelo ID. Repetir sobre uma solicitação já devolvida é inócuo.
func (r *SolicitacaoRepository) Devolver(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout,
		`UPDATE solicitacoes SET status = $2 WHERE id = $1`, id, domain.StatusDevolvido,
	)
	if err != nil {
		r.logger.Error("Falha ao devolver solicitação no DB.", err)
		return apperror.NewDBError("falha ao devolver solicitação", err)
	}

	afetadas, err := result.RowsAffected()
	if err != nil {
		return apperror.NewDBError("falha ao verificar linhas afetadas", err)
	}
	if afetadas == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("Solicitação com id '%s' não encontrada", id))
	}

	r.logger.Info("Solicitação devolvida.", map[string]interface{}{"id": id})
	return nil
}

// Delete remove uma solicitação.
func (r *SolicitacaoRepository) Delete(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM solicitacoes WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao remover solicitação no DB.", err)
		return apperror.NewDBError("falha ao remover solicitação", err)
	}

	afetadas, err := result.RowsAffected()
	if err != nil {
		return apperror.NewDBError("falha ao verificar linhas afetadas", err)
	}
	if afetadas == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("Solicitação com id '%s' não encontrada", id))
	}

	r.logger.Info("Solicitação removida.", map[string]interface{}{"id": id})
	return nil
}
