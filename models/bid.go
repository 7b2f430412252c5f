package models

import "time"

// Bid status values. A bid starts pending and transitions exactly once,
// together with its sibling bids and its gig.
const (
	BidPending  = "pending"
	BidHired    = "hired"
	BidRejected = "rejected"
)

type Bid struct {
	BidID          string    `bson:"bidid" json:"bidid"`
	GigID          string    `bson:"gigid" json:"gigid"`
	FreelancerID   string    `bson:"freelancerId" json:"freelancerId"`
	FreelancerName string    `bson:"freelancerName" json:"freelancerName"`
	Message        string    `bson:"message" json:"message"`
	BidAmount      float64   `bson:"bidAmount" json:"bidAmount"`
	Status         string    `bson:"status" json:"status"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}

// HiredNotification is the payload pushed to the winning freelancer's
// notification room after a hire commits.
type HiredNotification struct {
	GigTitle string  `json:"gigTitle"`
	GigID    string  `json:"gigId"`
	Budget   float64 `json:"budget"`
	Message  string  `json:"message"`
}
