package userrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"labstock/internal/domain"
	apperror "labstock/internal/errors"
	"labstock/internal/pkg/logger"
)

// UsuarioRepository implementa a interface domain.UsuarioRepository sobre o
// PostgreSQL.
type UsuarioRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewUsuarioRepository cria uma nova instância do UsuarioRepository, injetando o DB.
func NewUsuarioRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *UsuarioRepository {
	return &UsuarioRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

const colunasUsuario = `id, nome, nascimento, senha_hash, cargo, aprovado, created_at, updated_at`

// Save insere um novo usuário no banco de dados. A unicidade do nome é
// garantida pela constraint do banco; violação vira ConflictError.
func (r *UsuarioRepository) Save(ctx context.Context, usuario domain.Usuario) (domain.Usuario, error) {
	r.logger.Debug("Iniciando Save de usuário no repositório.", map[string]interface{}{"nome": usuario.Nome})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	usuario.ID = uuid.NewString()
	usuario.CreatedAt = time.Now()
	usuario.UpdatedAt = usuario.CreatedAt

	query := `INSERT INTO usuarios (` + colunasUsuario + `)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.DB.ExecContext(
		ctxTimeout,
		query,
		usuario.ID,
		usuario.Nome,
		usuario.Nascimento,
		usuario.SenhaHash,
		usuario.Cargo,
		usuario.Aprovado,
		usuario.CreatedAt,
		usuario.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			r.logger.Info("Tentativa de cadastro com nome duplicado.", map[string]interface{}{"nome": usuario.Nome})
			return domain.Usuario{}, apperror.NewConflictError(fmt.Sprintf("O nome de usuário '%s' já existe.", usuario.Nome))
		}
		r.logger.Error("Falha ao inserir usuário no DB.", err)
		return domain.Usuario{}, apperror.NewDBError("falha ao inserir usuário", err)
	}

	r.logger.Info("Usuário salvo com sucesso no repositório.", map[string]interface{}{"user_id": usuario.ID, "nome": usuario.Nome})
	return usuario, nil
}

// FindByNome busca um usuário pelo nome de exibição (a chave de identidade).
func (r *UsuarioRepository) FindByNome(ctx context.Context, nome string) (domain.Usuario, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + colunasUsuario + ` FROM usuarios WHERE nome = $1`

	row := r.DB.QueryRowContext(ctxTimeout, query, nome)

	var usuario domain.Usuario
	err := row.Scan(
		&usuario.ID,
		&usuario.Nome,
		&usuario.Nascimento,
		&usuario.SenhaHash,
		&usuario.Cargo,
		&usuario.Aprovado,
		&usuario.CreatedAt,
		&usuario.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.logger.Info("Usuário não encontrado no DB por nome.", map[string]interface{}{"nome": nome})
			return domain.Usuario{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário '%s' não encontrado", nome))
		}
		r.logger.Error("Falha ao buscar usuário por nome no DB.", err)
		return domain.Usuario{}, apperror.NewDBError("falha ao buscar usuário por nome", err)
	}

	return usuario, nil
}

// FindAllExcetoAdmin lista todos os usuários exceto os de cargo admin.
// A listagem de contas para aprovação nunca expõe o administrador.
func (r *UsuarioRepository) FindAllExcetoAdmin(ctx context.Context) ([]domain.Usuario, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + colunasUsuario + ` FROM usuarios WHERE cargo <> $1 ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctxTimeout, query, domain.CargoAdmin)
	if err != nil {
		r.logger.Error("Falha ao listar usuários no DB.", err)
		return nil, apperror.NewDBError("falha ao listar usuários", err)
	}
	defer rows.Close()

	usuarios := []domain.Usuario{}
	for rows.Next() {
		var u domain.Usuario
		if err := rows.Scan(
			&u.ID, &u.Nome, &u.Nascimento, &u.SenhaHash, &u.Cargo, &u.Aprovado, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			r.logger.Error("Falha ao mapear linha de usuário.", err)
			return nil, apperror.NewDBError("falha ao mapear usuário", err)
		}
		usuarios = append(usuarios, u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("falha ao iterar usuários", err)
	}

	return usuarios, nil
}

// ExisteAdmin informa se já existe alguma conta com cargo admin.
// Usado pelo bootstrap do admin padrão.
func (r *UsuarioRepository) ExisteAdmin(ctx context.Context) (bool, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var total int
	err := r.DB.QueryRowContext(ctxTimeout,
		`SELECT COUNT(*) FROM usuarios WHERE cargo = $1`, domain.CargoAdmin,
	).Scan(&total)
	if err != nil {
		r.logger.Error("Falha ao verificar existência de admin.", err)
		return false, apperror.NewDBError("falha ao verificar admin", err)
	}

	return total > 0, nil
}

// Aprovar marca a conta como aprovada em um único UPDATE chaveado pelo ID.
// Aprovar uma conta já aprovada é inócuo.
func (r *UsuarioRepository) Aprovar(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout,
		`UPDATE usuarios SET aprovado = TRUE, updated_at = $2 WHERE id = $1`, id, time.Now(),
	)
	if err != nil {
		r.logger.Error("Falha ao aprovar usuário no DB.", err)
		return apperror.NewDBError("falha ao aprovar usuário", err)
	}

	afetadas, err := result.RowsAffected()
	if err != nil {
		return apperror.NewDBError("falha ao verificar linhas afetadas", err)
	}
	if afetadas == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("Usuário com id '%s' não encontrado", id))
	}

	r.logger.Info("Usuário aprovado.", map[string]interface{}{"user_id": id})
	return nil
}

// Delete remove a conta (rejeição de pendente ou remoção de aprovada, a
// mesma operação).
func (r *UsuarioRepository) Delete(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM usuarios WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao remover usuário no DB.", err)
		return apperror.NewDBError("falha ao remover usuário", err)
	}

	afetadas, err := result.RowsAffected()
	if err != nil {
		return apperror.NewDBError("falha ao verificar linhas afetadas", err)
	}
	if afetadas == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("Usuário com id '%s' não encontrado", id))
	}

	r.logger.Info("Usuário removido.", map[string]interface{}{"user_id": id})
	return nil
}
