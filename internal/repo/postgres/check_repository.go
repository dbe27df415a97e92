package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/vatcheck/internal/domain"
	"github.com/Gunvolt24/vatcheck/internal/ports"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Проверка, что CheckRepository удовлетворяет интерфейсу CheckRepository.
var _ ports.CheckRepository = (*CheckRepository)(nil)

// CheckRepository — журнал проверок на Postgres (pgxpool). Только запись и чтение истории,
// на результат проверки не влияет.
type CheckRepository struct {
	pool *pgxpool.Pool
}

// NewCheckRepository - конструктор CheckRepository.
func NewCheckRepository(pool *pgxpool.Pool) *CheckRepository { return &CheckRepository{pool: pool} }

// Save — добавляет запись в журнал и заполняет check.ID.
func (r *CheckRepository) Save(ctx context.Context, check *domain.Check) error {
	if check == nil || check.VatNumber == "" {
		return errors.New("check is empty or vat_number is required")
	}

	err := r.pool.QueryRow(ctx, `
		INSERT INTO checks (
			vat_number, country_code, format_valid, registry_valid, overall_valid,
			state, name, address, strict, checked_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`,
		string(check.VatNumber), string(check.CountryCode), check.FormatValid, check.RegistryValid, check.OverallValid,
		string(check.State), check.Name, check.Address, check.Strict, check.CheckedAt,
	).Scan(&check.ID)
	if err != nil {
		return fmt.Errorf("insert check: %w", err)
	}
	return nil
}

// ListByVatNumber — постраничная история проверок номера, новые первыми.
func (r *CheckRepository) ListByVatNumber(ctx context.Context, vatNumber domain.VatNumber, limit, offset int) ([]*domain.Check, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.pool.Query(ctx, `
		SELECT
			id, vat_number, country_code, format_valid, registry_valid, overall_valid,
			state, name, address, strict, checked_at
		FROM checks
		WHERE vat_number = $1
		ORDER BY checked_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, string(vatNumber), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("select checks: %w", err)
	}
	defer rows.Close()

	checks := make([]*domain.Check, 0, limit)
	for rows.Next() {
		var (
			c                   domain.Check
			vat, country, state string
		)
		if err := rows.Scan(
			&c.ID, &vat, &country, &c.FormatValid, &c.RegistryValid, &c.OverallValid,
			&state, &c.Name, &c.Address, &c.Strict, &c.CheckedAt,
		); err != nil {
			return nil, fmt.Errorf("scan check: %w", err)
		}
		c.VatNumber = domain.VatNumber(vat)
		c.CountryCode = domain.CountryCode(country)
		c.State = domain.RegistryState(state)
		c.CheckedAt = c.CheckedAt.UTC()
		checks = append(checks, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("checks rows: %w", err)
	}
	return checks, nil
}
