package wallets

import (
	"context"
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

func (r *PostgresRepository) Open(ctx context.Context, userID int64, currencies []string) error {
	query := `INSERT INTO wallets (user_id, currency, balance) VALUES ($1, $2, 0)`

	for _, c := range currencies {
		if _, err := r.db.ExecContext(ctx, query, userID, c); err != nil {
			return fmt.Errorf("db error: open %s wallet: %w", c, err)
		}
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, userID int64) ([]models.Wallet, error) {
	query := `SELECT currency, balance FROM wallets WHERE user_id = $1 ORDER BY currency`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.Wallet
	for rows.Next() {
		w := models.Wallet{UserID: userID}
		if err := rows.Scan(&w.Currency, &w.Balance); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
