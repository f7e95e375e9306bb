package models

import "time"

// Profile holds the descriptive record attached one-to-one to a user.
// Every field is optional free-form text; untouched fields marshal away
// entirely so a freshly created row reads as an empty JSON object.
type Profile struct {
	UserID int64 `json:"-"`

	// Personal info
	Age         *string `json:"age,omitempty"`
	Gender      *string `json:"gender,omitempty"`
	DateOfBirth *string `json:"date_of_birth,omitempty"`
	Height      *string `json:"height,omitempty"`
	Weight      *string `json:"weight,omitempty"`
	Address     *string `json:"address,omitempty"`
	City        *string `json:"city,omitempty"`
	Occupation  *string `json:"occupation,omitempty"`

	// Emergency contact
	EmergencyContactName     *string `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone    *string `json:"emergency_contact_phone,omitempty"`
	EmergencyContactRelation *string `json:"emergency_contact_relation,omitempty"`

	// Medical history
	MedicalConditions *string `json:"medical_conditions,omitempty"`
	Medications       *string `json:"medications,omitempty"`
	Allergies         *string `json:"allergies,omitempty"`
	Injuries          *string `json:"injuries,omitempty"`
	Surgeries         *string `json:"surgeries,omitempty"`
	DoctorName        *string `json:"doctor_name,omitempty"`
	DoctorPhone       *string `json:"doctor_phone,omitempty"`

	// Fitness preferences
	FitnessGoals          *string `json:"fitness_goals,omitempty"`
	ActivityLevel         *string `json:"activity_level,omitempty"`
	ExperienceLevel       *string `json:"experience_level,omitempty"`
	PreferredWorkoutTypes *string `json:"preferred_workout_types,omitempty"`
	DietaryRestrictions   *string `json:"dietary_restrictions,omitempty"`
	Motivation            *string `json:"motivation,omitempty"`

	// Scheduling preferences
	PreferredDays  *string `json:"preferred_days,omitempty"`
	PreferredTimes *string `json:"preferred_times,omitempty"`
	Notes          *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
