package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

func (db *PgRepository) CreateRentCalculation(ctx context.Context, calc RentCalculation) (RentCalculation, error) {
	calc.Id = uuid.New()
	err := db.conn.QueryRowContext(ctx,
		"INSERT INTO rent_calculations (id, user_id, annual_income, monthly_rent, utilities, location_city, "+
			"location_state, burden_percentage, recommended_rent, monthly_overpayment, annual_overpayment, "+
			"ai_analysis, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) "+
			"RETURNING created_at",
		calc.Id,
		calc.UserId,
		calc.AnnualIncome,
		calc.MonthlyRent,
		calc.Utilities,
		calc.LocationCity,
		calc.LocationState,
		calc.BurdenPercentage,
		calc.RecommendedRent,
		calc.MonthlyOverpayment,
		calc.AnnualOverpayment,
		calc.AIAnalysis,
		time.Now().UTC(),
	).Scan(&calc.CreatedAt)
	if err != nil {
		return RentCalculation{}, fmt.Errorf("insert rent calculation: %w", err)
	}

	return calc, nil
}

// ListRentCalculations returns the newest calculations first.
func (db *PgRepository) ListRentCalculations(ctx context.Context, userId uuid.UUID, limit int) ([]RentCalculation, error) {
	rows, err := db.conn.QueryContext(ctx,
		"SELECT id, user_id, annual_income, monthly_rent, utilities, location_city, location_state, "+
			"burden_percentage, recommended_rent, monthly_overpayment, annual_overpayment, ai_analysis, created_at "+
			"FROM rent_calculations WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2",
		userId,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query rent calculations: %w", err)
	}
	defer rows.Close()

	calcs := make([]RentCalculation, 0, limit)
	for rows.Next() {
		var c RentCalculation
		if err := rows.Scan(
			&c.Id,
			&c.UserId,
			&c.AnnualIncome,
			&c.MonthlyRent,
			&c.Utilities,
			&c.LocationCity,
			&c.LocationState,
			&c.BurdenPercentage,
			&c.RecommendedRent,
			&c.MonthlyOverpayment,
			&c.AnnualOverpayment,
			&c.AIAnalysis,
			&c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan rent calculation: %w", err)
		}
		calcs = append(calcs, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return calcs, nil
}

// AppendChatMessages adds turns to the (user, state) transcript, creating
// it on first use. The append happens in the database so concurrent turns
// are not lost.
func (db *PgRepository) AppendChatMessages(ctx context.Context, userId uuid.UUID, state string, msgs []ChatMessage) error {
	if len(msgs) == 0 {
		return nil
	}

	payload, err := json.Marshal(msgs)
	if err != nil {
		return fmt.Errorf("marshal chat messages: %w", err)
	}

	now := time.Now().UTC()
	_, err = db.conn.ExecContext(ctx,
		"INSERT INTO chat_history (id, user_id, state, messages, created_at, updated_at) "+
			"VALUES ($1, $2, $3, $4::jsonb, $5, $5) "+
			"ON CONFLICT (user_id, state) DO UPDATE SET messages = chat_history.messages || EXCLUDED.messages, "+
			"updated_at = EXCLUDED.updated_at",
		uuid.New(),
		userId,
		state,
		payload,
		now,
	)
	if err != nil {
		return fmt.Errorf("append chat messages: %w", err)
	}
	return nil
}

// ListChatHistory returns the user's transcripts, most recently updated
// first. An empty state matches every state.
func (db *PgRepository) ListChatHistory(ctx context.Context, userId uuid.UUID, state string) ([]ChatHistory, error) {
	query := "SELECT id, user_id, state, messages, created_at, updated_at FROM chat_history WHERE user_id = $1"
	args := []any{userId}
	if state != "" {
		query += " AND state = $2"
		args = append(args, state)
	}
	query += " ORDER BY updated_at DESC"

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query chat history: %w", err)
	}
	defer rows.Close()

	history := make([]ChatHistory, 0)
	for rows.Next() {
		var (
			h   ChatHistory
			raw []byte
		)
		if err := rows.Scan(&h.Id, &h.UserId, &h.State, &raw, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan chat history: %w", err)
		}
		if err := json.Unmarshal(raw, &h.Messages); err != nil {
			return nil, fmt.Errorf("decode chat messages: %w", err)
		}
		history = append(history, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return history, nil
}
