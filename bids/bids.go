package bids

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"gigspace/db"
	"gigspace/hire"
	"gigspace/utils"

	"github.com/go-playground/validator/v10"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var validate = validator.New()

var service = NewService(newMongoStore())

type submitBidRequest struct {
	GigID     string  `json:"gigId" validate:"required"`
	Message   string  `json:"message" validate:"required"`
	BidAmount float64 `json:"bidAmount" validate:"required,gte=0"`
}

// SubmitBid handles POST /api/bids
func SubmitBid(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req submitBidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Please provide all required fields")
		return
	}

	bid, err := service.Submit(r.Context(), userID, utils.GetUsernameFromRequest(r),
		req.GigID, req.Message, req.BidAmount)
	if err != nil {
		switch {
		case errors.Is(err, ErrGigNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Gig not found")
		case errors.Is(err, ErrGigClosed):
			utils.RespondWithError(w, http.StatusConflict, "This gig is no longer open")
		case errors.Is(err, ErrOwnBid):
			utils.RespondWithError(w, http.StatusForbidden, "Cannot bid on your own gig")
		case errors.Is(err, ErrDuplicateBid):
			utils.RespondWithError(w, http.StatusConflict, "You have already bid on this gig")
		default:
			log.Printf("submit bid: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to submit bid")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"success": true,
		"bid":     bid,
		"message": "Bid submitted successfully",
	})
}

// GetBidsForGig handles GET /api/bids/gig/:gigId (owner only)
func GetBidsForGig(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	results, err := service.ListForGig(r.Context(), userID, ps.ByName("gigId"))
	if err != nil {
		switch {
		case errors.Is(err, ErrGigNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Gig not found")
		case errors.Is(err, ErrNotOwner):
			utils.RespondWithError(w, http.StatusForbidden, "Not authorized to view these bids")
		default:
			log.Printf("list bids: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "bids": results})
}

// GetMyBids handles GET /api/bids/mine — the freelancer's bids joined
// with gig title and budget.
func GetMyBids(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"freelancerId": userID}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "gigs",
			"localField":   "gigid",
			"foreignField": "gigid",
			"as":           "gig",
		}}},
		{{Key: "$unwind", Value: "$gig"}},
		{{Key: "$project", Value: bson.M{
			"bidid":     1,
			"message":   1,
			"bidAmount": 1,
			"status":    1,
			"createdAt": 1,
			"gigid":     "$gig.gigid",
			"title":     "$gig.title",
			"budget":    "$gig.budget",
			"gigStatus": "$gig.status",
		}}},
		{{Key: "$sort", Value: bson.M{"createdAt": -1}}},
	}

	cursor, err := db.BidsCollection.Aggregate(ctx, pipeline)
	if err != nil {
		log.Printf("my bids aggregate: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch bids")
		return
	}
	defer cursor.Close(ctx)

	var results []bson.M
	if err := cursor.All(ctx, &results); err != nil {
		log.Printf("my bids decode: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to parse results")
		return
	}
	if len(results) == 0 {
		results = []bson.M{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "bids": results})
}

// HireBid handles PATCH /api/bids/bid/:bidId/hire
func HireBid(coord *hire.Coordinator) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		userID := utils.GetUserIDFromRequest(r)
		if userID == "" {
			utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		gig, bid, err := coord.Hire(r.Context(), userID, ps.ByName("bidId"))
		if err != nil {
			switch {
			case errors.Is(err, hire.ErrBidNotFound):
				utils.RespondWithError(w, http.StatusNotFound, "Bid not found")
			case errors.Is(err, hire.ErrGigNotFound):
				utils.RespondWithError(w, http.StatusNotFound, "Gig not found")
			case errors.Is(err, hire.ErrNotOwner):
				utils.RespondWithError(w, http.StatusForbidden, "Not authorized to hire for this gig")
			case errors.Is(err, hire.ErrGigNotOpen):
				utils.RespondWithError(w, http.StatusConflict, "This gig is already assigned")
			default:
				log.Printf("hire transaction: %v", err)
				utils.RespondWithError(w, http.StatusInternalServerError, "Failed to hire freelancer")
			}
			return
		}

		utils.RespondWithJSON(w, http.StatusOK, utils.M{
			"success": true,
			"bid":     bid,
			"gig":     gig,
			"message": "Freelancer hired successfully",
		})
	}
}
