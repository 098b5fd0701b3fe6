package audit

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"objectifs-core/internal/infrastructure/database/mongodb"
	"objectifs-core/internal/shared/authz"
)

const collectionName = "audit_events"

// Actions enregistrées dans la piste d'audit
const (
	ActionUserCreated          = "user.created"
	ActionUserUpdated          = "user.updated"
	ActionUserDeleted          = "user.deleted"
	ActionConsultantProvisioned = "consultant.provisioned"
	ActionObjectifValidated    = "objectif.validated"
	ActionObjectifDeleted      = "objectif.deleted"
)

// Recorder enregistre les mutations privilégiées dans MongoDB.
// Fire-and-forget : jamais bloquant, jamais d'erreur remontée à la requête.
type Recorder struct {
	mongo *mongodb.Client
}

func NewRecorder(mongo *mongodb.Client) *Recorder {
	return &Recorder{mongo: mongo}
}

// Event est un événement d'audit sur une mutation privilégiée
type Event struct {
	Action   string
	Actor    authz.Identity
	TargetID int64
	Details  map[string]interface{}
}

// Record persiste l'événement dans une goroutine détachée de la requête
func (r *Recorder) Record(event Event) {
	if r.mongo == nil || !r.mongo.Enabled() {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		doc := bson.M{
			"action":     event.Action,
			"actor_id":   event.Actor.ID,
			"actor_role": string(event.Actor.Role),
			"target_id":  event.TargetID,
			"created_at": time.Now(),
		}
		if len(event.Details) > 0 {
			doc["details"] = event.Details
		}

		coll := r.mongo.Collection(collectionName)
		if coll == nil {
			return
		}
		if _, err := coll.InsertOne(ctx, doc); err != nil {
			log.Printf("[AUDIT] Enregistrement échoué (%s): %v", event.Action, err)
		}
	}()
}
