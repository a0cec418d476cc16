package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

const campaignColumns = "c.id, c.external_id, c.creator_id, c.title, c.description, c.location_city, " +
	"c.location_state, c.location_zip, c.goal_signatures, c.status, c.created_at, c.updated_at"

func scanCampaign(row scanner) (Campaign, error) {
	var c Campaign
	err := row.Scan(
		&c.Id,
		&c.ExternalId,
		&c.CreatorId,
		&c.Title,
		&c.Description,
		&c.LocationCity,
		&c.LocationState,
		&c.LocationZip,
		&c.GoalSignatures,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.SignatureCount,
	)
	return c, err
}

func pqCode(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

func (db *PgRepository) CreateCampaign(ctx context.Context, params CreateCampaignParams) (Campaign, error) {
	now := time.Now().UTC()
	row := db.conn.QueryRowContext(ctx,
		"INSERT INTO campaigns AS c (id, external_id, creator_id, title, description, location_city, "+
			"location_state, location_zip, goal_signatures, status, created_at, updated_at) "+
			"VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'active', $10, $10) "+
			"RETURNING "+campaignColumns+", 0",
		uuid.New(),
		params.ExternalId,
		params.CreatorId,
		params.Title,
		params.Description,
		params.LocationCity,
		params.LocationState,
		params.LocationZip,
		params.GoalSignatures,
		now,
	)

	c, err := scanCampaign(row)
	if err != nil {
		return Campaign{}, fmt.Errorf("insert campaign: %w", err)
	}
	return c, nil
}

// ListCampaigns returns matching campaigns with their signature counts,
// newest first.
func (db *PgRepository) ListCampaigns(ctx context.Context, filter CampaignFilter) ([]Campaign, error) {
	query := "SELECT " + campaignColumns + ", COUNT(s.id) FROM campaigns c " +
		"LEFT JOIN signatures s ON s.campaign_id = c.id WHERE c.status = $1"
	args := []any{filter.Status}
	if filter.City != "" {
		args = append(args, filter.City)
		query += fmt.Sprintf(" AND c.location_city = $%d", len(args))
	}
	if filter.State != "" {
		args = append(args, filter.State)
		query += fmt.Sprintf(" AND c.location_state = $%d", len(args))
	}
	query += " GROUP BY c.id ORDER BY c.created_at DESC"

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := make([]Campaign, 0)
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		campaigns = append(campaigns, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return campaigns, nil
}

// GetCampaign looks a campaign up by its share id or its UUID.
func (db *PgRepository) GetCampaign(ctx context.Context, idOrExternalId string) (Campaign, error) {
	row := db.conn.QueryRowContext(ctx,
		"SELECT "+campaignColumns+", COUNT(s.id) FROM campaigns c "+
			"LEFT JOIN signatures s ON s.campaign_id = c.id "+
			"WHERE c.external_id = $1 OR c.id::text = $1 GROUP BY c.id LIMIT 1",
		idOrExternalId,
	)

	c, err := scanCampaign(row)
	if err != nil {
		return Campaign{}, notFound(err)
	}
	return c, nil
}

// CreateSignature records a signature. The unique (campaign_id, user_id)
// constraint makes a second signature by the same user return
// ErrAlreadySigned, however the requests interleave.
func (db *PgRepository) CreateSignature(ctx context.Context, params CreateSignatureParams) (Signature, error) {
	row := db.conn.QueryRowContext(ctx,
		"INSERT INTO signatures (id, campaign_id, user_id, is_anonymous, full_name, created_at) "+
			"VALUES ($1, $2, $3, $4, $5, $6) "+
			"ON CONFLICT (campaign_id, user_id) DO NOTHING "+
			"RETURNING id, campaign_id, user_id, is_anonymous, full_name, created_at",
		uuid.New(),
		params.CampaignId,
		params.UserId,
		params.IsAnonymous,
		params.FullName,
		time.Now().UTC(),
	)

	var s Signature
	err := row.Scan(
		&s.Id,
		&s.CampaignId,
		&s.UserId,
		&s.IsAnonymous,
		&s.FullName,
		&s.CreatedAt,
	)
	switch {
	case err == nil:
		return s, nil
	case errors.Is(err, sql.ErrNoRows), pqCode(err) == uniqueViolation:
		return Signature{}, ErrAlreadySigned
	case pqCode(err) == foreignKeyViolation:
		return Signature{}, ErrNotFound
	default:
		return Signature{}, fmt.Errorf("insert signature: %w", err)
	}
}
