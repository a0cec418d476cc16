package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const profileColumns = "id, user_id, full_name, is_renter, is_buyer, is_owner, is_advocate, current_mode, " +
	"annual_income, location_city, location_state, location_zip, saved_searches, email_notifications, " +
	"created_at, updated_at"

type scanner interface {
	Scan(dest ...any) error
}

// rowQuerier is satisfied by *sql.DB and *sql.Tx.
type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func scanProfile(row scanner) (Profile, error) {
	var (
		p     Profile
		saved []byte
	)
	err := row.Scan(
		&p.Id,
		&p.UserId,
		&p.FullName,
		&p.IsRenter,
		&p.IsBuyer,
		&p.IsOwner,
		&p.IsAdvocate,
		&p.CurrentMode,
		&p.AnnualIncome,
		&p.LocationCity,
		&p.LocationState,
		&p.LocationZip,
		&saved,
		&p.EmailNotifications,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if len(saved) > 0 {
		p.SavedSearches = saved
	}
	return p, err
}

// notFound maps sql.ErrNoRows to ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (db *PgRepository) GetProfile(ctx context.Context, userId uuid.UUID) (Profile, error) {
	row := db.conn.QueryRowContext(ctx,
		"SELECT "+profileColumns+" FROM user_profiles WHERE user_id = $1 LIMIT 1",
		userId,
	)

	p, err := scanProfile(row)
	if err != nil {
		return Profile{}, notFound(err)
	}
	return p, nil
}

// CreateProfile inserts the default profile for a user: every role enabled
// and renter mode. A concurrent create returns the existing row.
func (db *PgRepository) CreateProfile(ctx context.Context, params CreateProfileParams) (Profile, error) {
	now := time.Now().UTC()
	row := db.conn.QueryRowContext(ctx,
		"INSERT INTO user_profiles (id, user_id, full_name, is_renter, is_buyer, is_owner, current_mode, created_at, updated_at) "+
			"VALUES ($1, $2, $3, true, true, true, 'renter', $4, $4) "+
			"ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id "+
			"RETURNING "+profileColumns,
		uuid.New(),
		params.UserId,
		params.FullName,
		now,
	)

	p, err := scanProfile(row)
	if err != nil {
		return Profile{}, fmt.Errorf("create profile: %w", err)
	}
	return p, nil
}

// assignments renders the SET list of a partial update. Placeholders start
// at $1.
func (p UpdateProfileParams) assignments() ([]string, []any) {
	var (
		sets []string
		args []any
	)
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if p.FullName != nil {
		add("full_name", *p.FullName)
	}
	if p.IsRenter != nil {
		add("is_renter", *p.IsRenter)
	}
	if p.IsBuyer != nil {
		add("is_buyer", *p.IsBuyer)
	}
	if p.IsOwner != nil {
		add("is_owner", *p.IsOwner)
	}
	if p.IsAdvocate != nil {
		add("is_advocate", *p.IsAdvocate)
	}
	if p.CurrentMode != nil {
		add("current_mode", string(*p.CurrentMode))
	}
	if p.AnnualIncome != nil {
		add("annual_income", *p.AnnualIncome)
	}
	if p.LocationCity != nil {
		add("location_city", *p.LocationCity)
	}
	if p.LocationState != nil {
		add("location_state", *p.LocationState)
	}
	if p.LocationZip != nil {
		add("location_zip", *p.LocationZip)
	}
	if p.SavedSearches != nil {
		add("saved_searches", []byte(p.SavedSearches))
	}
	if p.EmailNotifications != nil {
		add("email_notifications", *p.EmailNotifications)
	}

	return sets, args
}

func updateProfile(ctx context.Context, q rowQuerier, userId uuid.UUID, params UpdateProfileParams) (Profile, error) {
	sets, args := params.assignments()
	args = append(args, time.Now().UTC())
	sets = append(sets, fmt.Sprintf("updated_at = $%d", len(args)))
	args = append(args, userId)

	query := fmt.Sprintf("UPDATE user_profiles SET %s WHERE user_id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), profileColumns)

	p, err := scanProfile(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		return Profile{}, notFound(err)
	}
	return p, nil
}

func (db *PgRepository) UpdateProfile(ctx context.Context, userId uuid.UUID, params UpdateProfileParams) (Profile, error) {
	return updateProfile(ctx, db.conn, userId, params)
}

// SetupProfile creates the profile when missing and applies the onboarding
// answers in one transaction.
func (db *PgRepository) SetupProfile(ctx context.Context, userId uuid.UUID, params UpdateProfileParams) (Profile, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return Profile{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		"INSERT INTO user_profiles (id, user_id, is_renter, is_buyer, is_owner, current_mode, created_at, updated_at) "+
			"VALUES ($1, $2, true, true, true, 'renter', $3, $3) ON CONFLICT (user_id) DO NOTHING",
		uuid.New(),
		userId,
		now,
	)
	if err != nil {
		return Profile{}, fmt.Errorf("insert profile: %w", err)
	}

	p, err := updateProfile(ctx, tx, userId, params)
	if err != nil {
		return Profile{}, fmt.Errorf("update profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Profile{}, fmt.Errorf("commit tx: %w", err)
	}
	return p, nil
}

func (db *PgRepository) GetRenterData(ctx context.Context, userId uuid.UUID) (RenterData, error) {
	row := db.conn.QueryRowContext(ctx,
		"SELECT user_id, current_rent, lease_end_date, landlord_name, property_address, updated_at "+
			"FROM renter_data WHERE user_id = $1 LIMIT 1",
		userId,
	)

	var d RenterData
	err := row.Scan(
		&d.UserId,
		&d.CurrentRent,
		&d.LeaseEndDate,
		&d.LandlordName,
		&d.PropertyAddress,
		&d.UpdatedAt,
	)
	if err != nil {
		return RenterData{}, notFound(err)
	}
	return d, nil
}

func (db *PgRepository) UpsertRenterData(ctx context.Context, data RenterData) error {
	_, err := db.conn.ExecContext(ctx,
		"INSERT INTO renter_data (user_id, current_rent, lease_end_date, landlord_name, property_address, updated_at) "+
			"VALUES ($1, $2, $3, $4, $5, $6) "+
			"ON CONFLICT (user_id) DO UPDATE SET current_rent = EXCLUDED.current_rent, "+
			"lease_end_date = EXCLUDED.lease_end_date, landlord_name = EXCLUDED.landlord_name, "+
			"property_address = EXCLUDED.property_address, updated_at = EXCLUDED.updated_at",
		data.UserId,
		data.CurrentRent,
		data.LeaseEndDate,
		data.LandlordName,
		data.PropertyAddress,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert renter data: %w", err)
	}
	return nil
}

func (db *PgRepository) GetBuyerData(ctx context.Context, userId uuid.UUID) (BuyerData, error) {
	row := db.conn.QueryRowContext(ctx,
		"SELECT user_id, down_payment_saved, credit_score, debt_amount, target_purchase_date, updated_at "+
			"FROM buyer_data WHERE user_id = $1 LIMIT 1",
		userId,
	)

	var d BuyerData
	err := row.Scan(
		&d.UserId,
		&d.DownPaymentSaved,
		&d.CreditScore,
		&d.DebtAmount,
		&d.TargetPurchaseDate,
		&d.UpdatedAt,
	)
	if err != nil {
		return BuyerData{}, notFound(err)
	}
	return d, nil
}

func (db *PgRepository) UpsertBuyerData(ctx context.Context, data BuyerData) error {
	_, err := db.conn.ExecContext(ctx,
		"INSERT INTO buyer_data (user_id, down_payment_saved, credit_score, debt_amount, target_purchase_date, updated_at) "+
			"VALUES ($1, $2, $3, $4, $5, $6) "+
			"ON CONFLICT (user_id) DO UPDATE SET down_payment_saved = EXCLUDED.down_payment_saved, "+
			"credit_score = EXCLUDED.credit_score, debt_amount = EXCLUDED.debt_amount, "+
			"target_purchase_date = EXCLUDED.target_purchase_date, updated_at = EXCLUDED.updated_at",
		data.UserId,
		data.DownPaymentSaved,
		data.CreditScore,
		data.DebtAmount,
		data.TargetPurchaseDate,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert buyer data: %w", err)
	}
	return nil
}
