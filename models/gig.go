package models

import "time"

// Gig status values. A gig is created open and flips to assigned exactly
// once, via the hire transaction.
const (
	GigOpen     = "open"
	GigAssigned = "assigned"
)

var GigCategories = []string{
	"web-development", "mobile-app", "design", "writing",
	"marketing", "data-science", "other",
}

var GigLevels = []string{"beginner", "intermediate", "expert"}

var GigEstimatedTimes = []string{
	"less-than-week", "1-2-weeks", "1-month", "2-3-months", "3-plus-months",
}

type Gig struct {
	GigID         string     `bson:"gigid" json:"gigid"`
	Title         string     `bson:"title" json:"title"`
	Description   string     `bson:"description" json:"description"`
	Budget        float64    `bson:"budget" json:"budget"`
	Category      string     `bson:"category" json:"category"`
	Skills        []string   `bson:"skills" json:"skills"`
	Deadline      *time.Time `bson:"deadline,omitempty" json:"deadline,omitempty"`
	Level         string     `bson:"level" json:"level"`
	EstimatedTime string     `bson:"estimatedTime" json:"estimatedTime"`
	MinBidAmount  float64    `bson:"minBidAmount" json:"minBidAmount"`
	MaxBidAmount  *float64   `bson:"maxBidAmount,omitempty" json:"maxBidAmount,omitempty"`
	OwnerID       string     `bson:"ownerId" json:"ownerId"`
	OwnerName     string     `bson:"ownerName" json:"ownerName"`
	Status        string     `bson:"status" json:"status"`
	HiredBidID    string     `bson:"hiredBidId,omitempty" json:"hiredBidId,omitempty"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time  `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
