package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile holds the user's static fitness context. One document per user.
type Profile struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID            primitive.ObjectID `bson:"userId" json:"userId"` // Unique
	DateOfBirth       *time.Time         `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	Gender            string             `bson:"gender,omitempty" json:"gender,omitempty"`
	HeightCm          float64            `bson:"heightCm,omitempty" json:"heightCm,omitempty"`
	FitnessLevel      string             `bson:"fitnessLevel,omitempty" json:"fitnessLevel,omitempty"` // e.g. "beginner", "intermediate", "advanced"
	MedicalConditions string             `bson:"medicalConditions,omitempty" json:"medicalConditions,omitempty"`
	Injuries          string             `bson:"injuries,omitempty" json:"injuries,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Age computes the user's age at the given reference time.
func (p *Profile) Age(now time.Time) int {
	if p.DateOfBirth == nil {
		return 0
	}
	age := now.Year() - p.DateOfBirth.Year()
	if now.YearDay() < p.DateOfBirth.YearDay() {
		age--
	}
	return age
}
