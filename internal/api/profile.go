package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shelterrights/shelterrights-api/internal/database"
	"go.uber.org/zap"
)

type ProfileKind int

const (
	// ProfileFound is an existing profile.
	ProfileFound ProfileKind = iota
	// ProfileCreated is a profile that was missing and has just been created
	// with every role enabled.
	ProfileCreated
	// ProfileDegraded means the profile was missing and could not be
	// created. Profile is zero.
	ProfileDegraded
)

func (k ProfileKind) String() string {
	switch k {
	case ProfileFound:
		return "found"
	case ProfileCreated:
		return "created"
	case ProfileDegraded:
		return "degraded"
	}
	return fmt.Sprintf("ProfileKind(%d)", int(k))
}

type ProfileResult struct {
	Kind    ProfileKind
	Profile database.Profile
}

type ProfileService struct {
	db  database.Repository
	log *zap.Logger
}

func NewProfileService(db database.Repository, logger *zap.Logger) *ProfileService {
	return &ProfileService{db: db, log: logger}
}

// Fetch gets the caller's profile, creating it on first use. Only read
// failures other than a missing row are returned as errors.
func (p *ProfileService) Fetch(ctx context.Context, userId uuid.UUID) (ProfileResult, error) {
	profile, err := p.db.GetProfile(ctx, userId)
	if err == nil {
		return ProfileResult{Kind: ProfileFound, Profile: profile}, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return ProfileResult{}, fmt.Errorf("get profile: %w", err)
	}

	profile, err = p.db.CreateProfile(ctx, database.CreateProfileParams{UserId: userId})
	if err != nil {
		p.log.Warn("failed to create missing profile", zap.String("user_id", userId.String()), zap.Error(err))
		return ProfileResult{Kind: ProfileDegraded}, nil
	}
	return ProfileResult{Kind: ProfileCreated, Profile: profile}, nil
}

// RoleData loads the renter and buyer records for the roles the profile
// has. Missing records and read failures both yield nil.
func (p *ProfileService) RoleData(ctx context.Context, profile database.Profile) (*database.RenterData, *database.BuyerData) {
	var (
		renter *database.RenterData
		buyer  *database.BuyerData
	)

	if profile.IsRenter {
		d, err := p.db.GetRenterData(ctx, profile.UserId)
		switch {
		case err == nil:
			renter = &d
		case !errors.Is(err, database.ErrNotFound):
			p.log.Warn("failed to load renter data", zap.String("user_id", profile.UserId.String()), zap.Error(err))
		}
	}

	if profile.IsBuyer {
		d, err := p.db.GetBuyerData(ctx, profile.UserId)
		switch {
		case err == nil:
			buyer = &d
		case !errors.Is(err, database.ErrNotFound):
			p.log.Warn("failed to load buyer data", zap.String("user_id", profile.UserId.String()), zap.Error(err))
		}
	}

	return renter, buyer
}

// Upsert applies a partial update, creating the profile first when it does
// not exist yet.
func (p *ProfileService) Upsert(ctx context.Context, userId uuid.UUID, params database.UpdateProfileParams) (database.Profile, error) {
	profile, err := p.db.UpdateProfile(ctx, userId, params)
	if errors.Is(err, database.ErrNotFound) {
		profile, err = p.db.SetupProfile(ctx, userId, params)
	}
	if err != nil {
		return database.Profile{}, fmt.Errorf("upsert profile: %w", err)
	}
	return profile, nil
}
