package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/saeid-a/FitClubBack/internal/models"
	"github.com/saeid-a/FitClubBack/internal/repository"
)

var (
	ErrEmailTaken   = errors.New("email already in use")
	ErrUserNotFound = errors.New("user not found")
)

type UserPatch struct {
	Name  *string
	Email *string
	Phone *string
}

type UpdateProfileInput struct {
	User    *UserPatch
	Profile map[string]*string
}

type ProfileService struct {
	db          *pgxpool.Pool
	userRepo    *repository.UserRepository
	profileRepo *repository.ProfileRepository
}

func NewProfileService(db *pgxpool.Pool, userRepo *repository.UserRepository, profileRepo *repository.ProfileRepository) *ProfileService {
	return &ProfileService{
		db:          db,
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

// GetProfile loads the user together with its profile row. A missing
// profile row yields a nil profile, not an error.
func (s *ProfileService) GetProfile(ctx context.Context, userID int64) (*models.User, *models.Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user, nil, nil
		}
		return nil, nil, err
	}
	return user, profile, nil
}

// UpdateProfile applies the user patch and the profile patch inside a
// single transaction so neither lands without the other.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID int64, input UpdateProfileInput) error {
	if input.User == nil && len(input.Profile) == 0 {
		return nil
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txUserRepo := repository.NewUserRepository(tx)
	txProfileRepo := repository.NewProfileRepository(tx)

	if input.User != nil {
		if input.User.Email != nil {
			taken, err := txUserRepo.EmailTakenByOther(ctx, *input.User.Email, userID)
			if err != nil {
				return err
			}
			if taken {
				return ErrEmailTaken
			}
		}
		err := txUserRepo.UpdateContact(ctx, userID, repository.UpdateUserInput{
			Name:  input.User.Name,
			Email: input.User.Email,
			Phone: input.User.Phone,
		})
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return ErrEmailTaken
			}
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrUserNotFound
			}
			return err
		}
	}

	if len(input.Profile) > 0 {
		if err := txProfileRepo.UpdatePartial(ctx, userID, input.Profile); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
