package itemrepo

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

// ItemRepository implementa a interface domain.ItemRepository sobre o
// PostgreSQL.
type ItemRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewItemRepository cria e retorna uma nova instância do Repositório de Itens.
func NewItemRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *ItemRepository {
	return &ItemRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

const colunasItem = `id, nome, especificacao, localizacao, quantidade, criado_por, created_at`

// Save insere um novo item de estoque.
func (r *ItemRepository) Save(ctx context.Context, item domain.Item) (domain.Item, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	item.ID = uuid.NewString()
	item.CreatedAt = time.Now()

	query := `INSERT INTO itens (` + colunasItem + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.DB.ExecContext(ctxTimeout, query,
		item.ID,
		item.Nome,
		item.Especificacao,
		item.Localizacao,
		item.Quantidade,
		item.CriadoPor,
		item.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Falha ao inserir item no DB.", err)
		return domain.Item{}, apperror.NewDBError("falha ao inserir item", err)
	}

	r.logger.Info("Item salvo.", map[string]interface{}{"id": item.ID, "nome": item.Nome})
	return item, nil
}

// FindByID busca um item pelo ID.
func (r *ItemRepository) FindByID(ctx context.Context, id string) (domain.Item, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + colunasItem + ` FROM itens WHERE id = $1`

	var item domain.Item
	err := r.DB.QueryRowContext(ctxTimeout, query, id).Scan(
		&item.ID, &item.Nome, &item.Especificacao, &item.Localizacao,
		&item.Quantidade, &item.CriadoPor, &item.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Item{}, apperror.NewNotFoundError(fmt.Sprintf("Item com id '%s' não encontrado", id))
		}
		r.logger.Error("Falha ao buscar item no DB.", err)
		return domain.Item{}, apperror.NewDBError("falha ao buscar item", err)
	}

	return item, nil
}

// FindAll lista os itens do mais recente para o mais antigo, opcionalmente
// filtrados por texto livre sobre nome, especificação e localização.
func (r *ItemRepository) FindAll(ctx context.Context, busca string) ([]domain.Item, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + colunasItem + ` FROM itens`
	args := []interface{}{}
	if busca != "" {
		query += ` WHERE nome ILIKE $1 OR especificacao ILIKE $1 OR localizacao ILIKE $1`
		args = append(args, "%"+busca+"%")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctxTimeout, query, args...)
	if err != nil {
		r.logger.Error("Falha ao listar itens no DB.", err)
		return nil, apperror.NewDBError("falha ao listar itens", err)
	}
	defer rows.Close()

	itens := []domain.Item{}
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(
			&item.ID, &item.Nome, &item.Especificacao, &item.Localizacao,
			&item.Quantidade, &item.CriadoPor, &item.CreatedAt,
		); err != nil {
			return nil, apperror.NewDBError("falha ao mapear item", err)
		}
		itens = append(itens, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("falha ao iterar itens", err)
	}

	return itens, nil
}

// AtualizarQuantidade grava a quantidade absoluta do item em um único UPDATE
// chaveado pelo ID, devolvendo o registro atualizado. A restrição de
// diminuição é condição do próprio UPDATE: a direção é decidida contra a
// quantidade vigente no momento da escrita, nunca contra uma leitura
// anterior do serviço.
func (r *ItemRepository) AtualizarQuantidade(ctx context.Context, id string, quantidade int, permitirDiminuir bool) (domain.Item, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `UPDATE itens SET quantidade = $2
              WHERE id = $1 AND (quantidade <= $2 OR $3)
              RETURNING ` + colunasItem

	var item domain.Item
	err := r.DB.QueryRowContext(ctxTimeout, query, id, quantidade, permitirDiminuir).Scan(
		&item.ID, &item.Nome, &item.Especificacao, &item.Localizacao,
		&item.Quantidade, &item.CriadoPor, &item.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Nenhuma linha: ou o item não existe, ou o UPDATE seria uma
			// diminuição não permitida.
			var existe bool
			if checkErr := r.DB.QueryRowContext(ctxTimeout,
				`SELECT EXISTS (SELECT 1 FROM itens WHERE id = $1)`, id,
			).Scan(&existe); checkErr != nil {
				r.logger.Error("Falha ao verificar existência do item no DB.", checkErr)
				return domain.Item{}, apperror.NewDBError("falha ao verificar item", checkErr)
			}
			if existe {
				return domain.Item{}, apperror.NewForbiddenError("Apenas a equipe pode diminuir a quantidade de um item.")
			}
			return domain.Item{}, apperror.NewNotFoundError(fmt.Sprintf("Item com id '%s' não encontrado", id))
		}
		r.logger.Error("Falha ao atualizar quantidade do item no DB.", err)
		return domain.Item{}, apperror.NewDBError("falha ao atualizar quantidade", err)
	}

	r.logger.Info("Quantidade do item atualizada.", map[string]interface{}{"id": id, "quantidade": quantidade})
	return item, nil
}

// Delete remove um item do estoque.
func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM itens WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao remover item no DB.", err)
		return apperror.NewDBError("falha ao remover item", err)
	}

	afetadas, err := result.RowsAffected()
	if err != nil {
		return apperror.NewDBError("falha ao verificar linhas afetadas", err)
	}
	if afetadas == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("Item com id '%s' não encontrado", id))
	}

	r.logger.Info("Item removido.", map[string]interface{}{"id": id})
	return nil
}
