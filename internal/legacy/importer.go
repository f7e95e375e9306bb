// Package legacy copies the pre-relaunch SQLite database into PostgreSQL.
// It is a one-time import, not a sync: existing users are kept as-is,
// existing profiles are overwritten with the incoming values.
package legacy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/saeid-a/FitClubBack/internal/repository"
	"github.com/sirupsen/logrus"
)

type User struct {
	ID       int64
	Name     string
	Email    string
	Password string // already bcrypt-hashed in the legacy store
	Role     string
	Phone    *string
}

// Profile carries the legacy row's descriptive columns keyed by column
// name; absent columns stay NULL on the target side.
type Profile struct {
	UserID int64
	Values map[string]*string
}

type Source interface {
	Users(ctx context.Context) ([]User, error)
	Profiles(ctx context.Context) ([]Profile, error)
}

type Stats struct {
	UsersInserted    int
	UsersSkipped     int
	ProfilesUpserted int
	ProfilesOrphaned int
}

type Importer struct {
	db  repository.DBTX
	log *logrus.Logger
}

func NewImporter(db repository.DBTX, log *logrus.Logger) *Importer {
	return &Importer{db: db, log: log}
}

const insertUserQuery = `
	INSERT INTO users (name, email, password_hash, role, phone)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (email) DO NOTHING
	RETURNING id
`

// Run copies every legacy user and profile into the relational store.
// Users colliding on email are skipped and their surviving id is reused
// so the owning profile still lands on the right row.
func (im *Importer) Run(ctx context.Context, src Source) (Stats, error) {
	var stats Stats

	users, err := src.Users(ctx)
	if err != nil {
		return stats, fmt.Errorf("read legacy users: %w", err)
	}

	idMap := make(map[int64]int64, len(users))
	for _, u := range users {
		role := u.Role
		if role == "" {
			role = "client"
		}
		var newID int64
		err := im.db.QueryRow(ctx, insertUserQuery, u.Name, u.Email, u.Password, role, u.Phone).Scan(&newID)
		if errors.Is(err, pgx.ErrNoRows) {
			if err := im.db.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, u.Email).Scan(&newID); err != nil {
				return stats, fmt.Errorf("resolve existing user %q: %w", u.Email, err)
			}
			stats.UsersSkipped++
			im.log.WithField("email", u.Email).Debug("user already present, skipped")
		} else if err != nil {
			return stats, fmt.Errorf("insert user %q: %w", u.Email, err)
		} else {
			stats.UsersInserted++
		}
		idMap[u.ID] = newID
	}

	profiles, err := src.Profiles(ctx)
	if err != nil {
		return stats, fmt.Errorf("read legacy profiles: %w", err)
	}

	upsert := buildProfileUpsert()
	for _, p := range profiles {
		newID, ok := idMap[p.UserID]
		if !ok {
			stats.ProfilesOrphaned++
			im.log.WithField("legacy_user_id", p.UserID).Warn("profile without a legacy user, skipped")
			continue
		}
		args := make([]any, 0, len(repository.ProfileColumns)+1)
		args = append(args, newID)
		for _, col := range repository.ProfileColumns {
			args = append(args, p.Values[col])
		}
		if _, err := im.db.Exec(ctx, upsert, args...); err != nil {
			return stats, fmt.Errorf("upsert profile for legacy user %d: %w", p.UserID, err)
		}
		stats.ProfilesUpserted++
	}

	return stats, nil
}

// buildProfileUpsert emits an insert that, on user_id conflict,
// overwrites every descriptive column with the incoming value.
func buildProfileUpsert() string {
	cols := repository.ProfileColumns
	placeholders := make([]string, 0, len(cols)+1)
	sets := make([]string, 0, len(cols)+1)
	placeholders = append(placeholders, "$1")
	for i, col := range cols {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+2))
		sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}
	sets = append(sets, "updated_at = NOW()")
	return fmt.Sprintf(
		"INSERT INTO profiles (user_id, %s) VALUES (%s) ON CONFLICT (user_id) DO UPDATE SET %s",
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(sets, ", "),
	)
}
