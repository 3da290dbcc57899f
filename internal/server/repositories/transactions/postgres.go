package transactions

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/peerwallet/internal/dbx"
	"github.com/dmitrijs2005/peerwallet/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, tx *models.Transaction) error {
	query :=
		`INSERT INTO transactions (type, currency, amount, status, from_user_id, to_user_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		tx.Type, tx.Currency, tx.Amount, tx.Status, tx.FromUserID, tx.ToUserID,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListForUser(ctx context.Context, userID int64, limit int) ([]models.Transaction, error) {
	query :=
		`SELECT t.id, t.type, t.currency, t.amount, t.status, t.created_at,
		        t.from_user_id, t.to_user_id, uf.name, ut.name
		 FROM transactions t
		 LEFT JOIN users uf ON uf.id = t.from_user_id
		 LEFT JOIN users ut ON ut.id = t.to_user_id
		 WHERE t.from_user_id = $1 OR t.to_user_id = $1
		 ORDER BY t.created_at DESC, t.id DESC
		 LIMIT $2
		 `

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]models.Transaction, 0, limit)
	for rows.Next() {
		var (
			t              models.Transaction
			fromID, toID   sql.NullInt64
			fromName, toNm sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.Type, &t.Currency, &t.Amount, &t.Status, &t.CreatedAt,
			&fromID, &toID, &fromName, &toNm); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if fromID.Valid {
			t.FromUserID = &fromID.Int64
		}
		if toID.Valid {
			t.ToUserID = &toID.Int64
		}
		t.FromName, t.ToName = fromName.String, toNm.String
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
