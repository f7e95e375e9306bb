package legacy

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
)

type stubSource struct {
	users    []User
	profiles []Profile
}

func (s *stubSource) Users(_ context.Context) ([]User, error)       { return s.users, nil }
func (s *stubSource) Profiles(_ context.Context) ([]Profile, error) { return s.profiles, nil }

type fakeRow struct {
	scan func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error { return r.scan(dest...) }

type execCall struct {
	sql  string
	args []any
}

// recordingDB fakes the write side: emails in existing collide on
// insert, everything else gets a fresh id.
type recordingDB struct {
	existing map[string]int64
	nextID   int64
	execs    []execCall
}

func (db *recordingDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	if strings.Contains(sql, "INSERT INTO users") {
		email := args[1].(string)
		if _, ok := db.existing[email]; ok {
			return fakeRow{scan: func(...any) error { return pgx.ErrNoRows }}
		}
		db.nextID++
		id := db.nextID
		return fakeRow{scan: func(dest ...any) error {
			*(dest[0].(*int64)) = id
			return nil
		}}
	}
	// SELECT id FROM users WHERE email = $1
	email := args[0].(string)
	id := db.existing[email]
	return fakeRow{scan: func(dest ...any) error {
		*(dest[0].(*int64)) = id
		return nil
	}}
}

func (db *recordingDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	db.execs = append(db.execs, execCall{sql: sql, args: args})
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func legacyProfile(userID int64, values map[string]string) Profile {
	p := Profile{UserID: userID, Values: make(map[string]*string, len(values))}
	for k, v := range values {
		value := v
		p.Values[k] = &value
	}
	return p
}

func TestImporterSkipsExistingUsersAndRemapsProfiles(t *testing.T) {
	db := &recordingDB{
		existing: map[string]int64{"old@x.com": 50},
		nextID:   100,
	}
	src := &stubSource{
		users: []User{
			{ID: 1, Name: "Old", Email: "old@x.com", Password: "hash1", Role: "client"},
			{ID: 2, Name: "New", Email: "new@x.com", Password: "hash2", Role: "trainer"},
		},
		profiles: []Profile{
			legacyProfile(1, map[string]string{"age": "44"}),
			legacyProfile(2, map[string]string{"city": "Oslo"}),
		},
	}

	stats, err := NewImporter(db, quietLogger()).Run(context.Background(), src)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if stats.UsersInserted != 1 || stats.UsersSkipped != 1 {
		t.Fatalf("expected 1 inserted / 1 skipped, got %+v", stats)
	}
	if stats.ProfilesUpserted != 2 {
		t.Fatalf("expected 2 profiles upserted, got %+v", stats)
	}

	if len(db.execs) != 2 {
		t.Fatalf("expected 2 profile upserts, got %d", len(db.execs))
	}
	// Profile of the skipped user must land on the surviving row.
	if got := db.execs[0].args[0].(int64); got != 50 {
		t.Errorf("expected remapped user_id 50, got %d", got)
	}
	if got := db.execs[1].args[0].(int64); got != 101 {
		t.Errorf("expected new user_id 101, got %d", got)
	}
}

func TestImporterOverwritesProfilesOnConflict(t *testing.T) {
	db := &recordingDB{existing: map[string]int64{}}
	src := &stubSource{
		users:    []User{{ID: 1, Name: "A", Email: "a@x.com", Password: "h"}},
		profiles: []Profile{legacyProfile(1, map[string]string{"age": "30"})},
	}

	if _, err := NewImporter(db, quietLogger()).Run(context.Background(), src); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(db.execs) != 1 {
		t.Fatalf("expected 1 upsert, got %d", len(db.execs))
	}
	sql := db.execs[0].sql
	if !strings.Contains(sql, "ON CONFLICT (user_id) DO UPDATE SET") {
		t.Errorf("upsert must overwrite on user_id conflict, got %q", sql)
	}
	if !strings.Contains(sql, "age = EXCLUDED.age") || !strings.Contains(sql, "notes = EXCLUDED.notes") {
		t.Errorf("upsert must overwrite every profile column, got %q", sql)
	}
}

func TestImporterDefaultsMissingRoleToClient(t *testing.T) {
	src := &stubSource{users: []User{{ID: 1, Name: "A", Email: "a@x.com", Password: "h", Role: ""}}}

	roleCapture := &roleCapturingDB{recordingDB: &recordingDB{existing: map[string]int64{}}}
	if _, err := NewImporter(roleCapture, quietLogger()).Run(context.Background(), src); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if roleCapture.lastRole != "client" {
		t.Fatalf("expected default role client, got %q", roleCapture.lastRole)
	}
}

type roleCapturingDB struct {
	*recordingDB
	lastRole string
}

func (db *roleCapturingDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if strings.Contains(sql, "INSERT INTO users") {
		db.lastRole = args[3].(string)
	}
	return db.recordingDB.QueryRow(ctx, sql, args...)
}

func TestImporterCountsOrphanProfiles(t *testing.T) {
	db := &recordingDB{existing: map[string]int64{}}
	src := &stubSource{
		users:    []User{{ID: 1, Name: "A", Email: "a@x.com", Password: "h"}},
		profiles: []Profile{legacyProfile(99, map[string]string{"age": "30"})},
	}

	stats, err := NewImporter(db, quietLogger()).Run(context.Background(), src)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.ProfilesOrphaned != 1 || stats.ProfilesUpserted != 0 {
		t.Fatalf("expected orphan counted, got %+v", stats)
	}
	if len(db.execs) != 0 {
		t.Fatalf("expected no upserts, got %d", len(db.execs))
	}
}
