package legacy

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/saeid-a/FitClubBack/internal/repository"
	_ "modernc.org/sqlite"
)

// SQLiteSource reads the legacy users and profiles tables from the old
// embedded database file.
type SQLiteSource struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteSource, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open legacy database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping legacy database: %w", err)
	}
	return &SQLiteSource{db: db}, nil
}

func (s *SQLiteSource) Close() error {
	return s.db.Close()
}

func (s *SQLiteSource) Users(ctx context.Context) ([]User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, email, password, role, phone FROM users`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		var role, phone sql.NullString
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &role, &phone); err != nil {
			return nil, err
		}
		if role.Valid {
			u.Role = role.String
		}
		if phone.Valid {
			u.Phone = &phone.String
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *SQLiteSource) Profiles(ctx context.Context) ([]Profile, error) {
	cols := repository.ProfileColumns
	query := fmt.Sprintf(`SELECT user_id, %s FROM profiles`, strings.Join(cols, ", "))
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		var userID int64
		values := make([]sql.NullString, len(cols))
		dests := make([]any, 0, len(cols)+1)
		dests = append(dests, &userID)
		for i := range values {
			dests = append(dests, &values[i])
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, err
		}
		p := Profile{UserID: userID, Values: make(map[string]*string, len(cols))}
		for i, col := range cols {
			if values[i].Valid {
				v := values[i].String
				p.Values[col] = &v
			}
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}
