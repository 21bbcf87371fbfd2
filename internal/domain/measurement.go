package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Measurement is one body-measurement entry. The latest entry feeds the
// external plan source's context.
type Measurement struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID            primitive.ObjectID `bson:"userId" json:"userId"`
	Weight            float64            `bson:"weight" json:"weight"` // kg
	BodyFatPercentage *float64           `bson:"bodyFatPercentage,omitempty" json:"bodyFatPercentage,omitempty"`
	MuscleMass        *float64           `bson:"muscleMass,omitempty" json:"muscleMass,omitempty"` // kg
	MeasuredAt        time.Time          `bson:"measuredAt" json:"measuredAt"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
}
