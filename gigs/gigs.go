// Package gigs implements gig creation, listing and search.
package gigs

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"gigspace/db"
	"gigspace/models"
	"gigspace/mq"
	"gigspace/utils"

	"github.com/go-playground/validator/v10"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var validate = validator.New()

type createGigRequest struct {
	Title         string     `json:"title" validate:"required"`
	Description   string     `json:"description" validate:"required"`
	Budget        float64    `json:"budget" validate:"required,gte=0"`
	Category      string     `json:"category" validate:"omitempty,oneof=web-development mobile-app design writing marketing data-science other"`
	Skills        []string   `json:"skills"`
	Deadline      *time.Time `json:"deadline"`
	Level         string     `json:"level" validate:"omitempty,oneof=beginner intermediate expert"`
	EstimatedTime string     `json:"estimatedTime" validate:"omitempty,oneof=less-than-week 1-2-weeks 1-month 2-3-months 3-plus-months"`
	MinBidAmount  float64    `json:"minBidAmount" validate:"gte=0"`
	MaxBidAmount  *float64   `json:"maxBidAmount"`
}

func findAndRespondGigs(ctx context.Context, w http.ResponseWriter, cursor *mongo.Cursor) {
	defer cursor.Close(ctx)
	var results []models.Gig
	if err := cursor.All(ctx, &results); err != nil {
		log.Printf("Cursor decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to parse results")
		return
	}
	if len(results) == 0 {
		results = []models.Gig{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "gigs": results})
}

// CreateGig handles POST /api/gigs/gig
func CreateGig(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req createGigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Please provide all required fields")
		return
	}

	if req.Category == "" {
		req.Category = "web-development"
	}
	if req.Level == "" {
		req.Level = "intermediate"
	}
	if req.EstimatedTime == "" {
		req.EstimatedTime = "1-2-weeks"
	}
	if req.Skills == nil {
		req.Skills = []string{}
	}

	gig := models.Gig{
		GigID:         "g" + utils.GenerateRandomString(14),
		Title:         req.Title,
		Description:   req.Description,
		Budget:        req.Budget,
		Category:      req.Category,
		Skills:        req.Skills,
		Deadline:      req.Deadline,
		Level:         req.Level,
		EstimatedTime: req.EstimatedTime,
		MinBidAmount:  req.MinBidAmount,
		MaxBidAmount:  req.MaxBidAmount,
		OwnerID:       userID,
		OwnerName:     utils.GetUsernameFromRequest(r),
		Status:        models.GigOpen,
		CreatedAt:     time.Now(),
	}

	if _, err := db.GigsCollection.InsertOne(r.Context(), gig); err != nil {
		log.Printf("Insert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save gig")
		return
	}

	go mq.Emit(r.Context(), "gig-created", models.Index{
		EntityType: "gig", EntityId: gig.GigID, Method: "POST",
	})
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "gig": gig})
}

// GetGigs handles GET /api/gigs — open gigs with optional text search,
// category and level filters, newest first.
func GetGigs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	q := r.URL.Query()
	filter := bson.M{"status": models.GigOpen}
	if search := q.Get("search"); search != "" {
		filter["$text"] = bson.M{"$search": search}
	}
	if category := q.Get("category"); category != "" {
		filter["category"] = category
	}
	if level := q.Get("level"); level != "" {
		filter["level"] = level
	}

	skip, limit := utils.ParsePagination(r, 20, 100)
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.M{"createdAt": -1})

	cursor, err := db.GigsCollection.Find(ctx, filter, opts)
	if err != nil {
		log.Printf("DB error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	findAndRespondGigs(ctx, w, cursor)
}

// GetGigByID handles GET /api/gigs/gig/:id
func GetGigByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()

	var gig models.Gig
	if err := db.GigsCollection.FindOne(ctx, bson.M{"gigid": ps.ByName("id")}).Decode(&gig); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Gig not found")
		} else {
			log.Printf("DB error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "gig": gig})
}

// GetMyGigs handles GET /api/gigs/mine
func GetMyGigs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	cursor, err := db.GigsCollection.Find(ctx, bson.M{"ownerId": userID},
		options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		log.Printf("DB error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	findAndRespondGigs(ctx, w, cursor)
}
