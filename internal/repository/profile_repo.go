package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/saeid-a/FitClubBack/internal/models"
)

// ProfileColumns is the fixed set of caller-updatable profile columns.
// Patch keys are matched against this list and never interpolated into
// SQL themselves.
var ProfileColumns = []string{
	"age",
	"gender",
	"date_of_birth",
	"height",
	"weight",
	"address",
	"city",
	"occupation",
	"emergency_contact_name",
	"emergency_contact_phone",
	"emergency_contact_relation",
	"medical_conditions",
	"medications",
	"allergies",
	"injuries",
	"surgeries",
	"doctor_name",
	"doctor_phone",
	"fitness_goals",
	"activity_level",
	"experience_level",
	"preferred_workout_types",
	"dietary_restrictions",
	"motivation",
	"preferred_days",
	"preferred_times",
	"notes",
}

type ProfileRepository struct {
	db DBTX
}

func NewProfileRepository(db DBTX) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) CreateEmpty(ctx context.Context, userID int64) error {
	query := `INSERT INTO profiles (user_id) VALUES ($1)`
	_, err := r.db.Exec(ctx, query, userID)
	return err
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	query := fmt.Sprintf(`
		SELECT user_id, %s, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`, strings.Join(ProfileColumns, ", "))
	var profile models.Profile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.Age,
		&profile.Gender,
		&profile.DateOfBirth,
		&profile.Height,
		&profile.Weight,
		&profile.Address,
		&profile.City,
		&profile.Occupation,
		&profile.EmergencyContactName,
		&profile.EmergencyContactPhone,
		&profile.EmergencyContactRelation,
		&profile.MedicalConditions,
		&profile.Medications,
		&profile.Allergies,
		&profile.Injuries,
		&profile.Surgeries,
		&profile.DoctorName,
		&profile.DoctorPhone,
		&profile.FitnessGoals,
		&profile.ActivityLevel,
		&profile.ExperienceLevel,
		&profile.PreferredWorkoutTypes,
		&profile.DietaryRestrictions,
		&profile.Motivation,
		&profile.PreferredDays,
		&profile.PreferredTimes,
		&profile.Notes,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// buildPartialUpdate assembles an UPDATE covering only the allow-listed
// columns present in the patch with non-null values. Returns "" when no
// eligible column remains.
func buildPartialUpdate(userID int64, patch map[string]*string) (string, []any) {
	sets := make([]string, 0, len(patch)+1)
	args := make([]any, 0, len(patch)+1)
	for _, col := range ProfileColumns {
		value, present := patch[col]
		if !present || value == nil {
			continue
		}
		args = append(args, *value)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if len(sets) == 0 {
		return "", nil
	}
	args = append(args, userID)
	query := fmt.Sprintf(
		"UPDATE profiles SET %s, updated_at = NOW() WHERE user_id = $%d",
		strings.Join(sets, ", "),
		len(args),
	)
	return query, args
}

// UpdatePartial applies the patch to the profile row. Unknown keys are
// ignored and an all-null or empty patch is a no-op, not an error.
func (r *ProfileRepository) UpdatePartial(ctx context.Context, userID int64, patch map[string]*string) error {
	query, args := buildPartialUpdate(userID, patch)
	if query == "" {
		return nil
	}
	_, err := r.db.Exec(ctx, query, args...)
	return err
}
