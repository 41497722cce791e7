package alertstore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/alertkit/pkg/alerts"
)

// MongoConfig configures the MongoDB store.
type MongoConfig struct {
	Collection string        `env:"ALERTS_MONGO_COLLECTION" envDefault:"flash_alerts"`
	TTL        time.Duration `env:"ALERTS_MONGO_TTL" envDefault:"24h"` // idle scopes are removed by a TTL index
}

// Mongo stores one document per scope: {_id: scope, alerts: [...], updated_at}.
type Mongo struct {
	coll *mongo.Collection
	ttl  time.Duration
	now  func() time.Time
}

type mongoScope struct {
	Scope     string         `bson:"_id"`
	Alerts    []alerts.Alert `bson:"alerts"`
	UpdatedAt time.Time      `bson:"updated_at"`
}

// NewMongo creates a MongoDB backed store using db.Collection(cfg.Collection).
func NewMongo(db *mongo.Database, cfg MongoConfig) *Mongo {
	if cfg.Collection == "" {
		cfg.Collection = "flash_alerts"
	}
	return &Mongo{
		coll: db.Collection(cfg.Collection),
		ttl:  cfg.TTL,
		now:  time.Now,
	}
}

// EnsureIndexes creates the TTL index on updated_at when a TTL is configured.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	if m.ttl <= 0 {
		return nil
	}
	_, err := m.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "updated_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(int32(m.ttl.Seconds())),
	})
	return unavailable(err)
}

func (m *Mongo) Load(ctx context.Context, scope string) ([]alerts.Alert, error) {
	var doc mongoScope
	err := m.coll.FindOne(ctx, bson.M{"_id": scope}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return []alerts.Alert{}, nil
	}
	if err != nil {
		return nil, unavailable(err)
	}
	if doc.Alerts == nil {
		return []alerts.Alert{}, nil
	}
	return doc.Alerts, nil
}

// Append pushes the alert unless its id is already stored in the scope.
func (m *Mongo) Append(ctx context.Context, scope string, a alerts.Alert) error {
	filter := bson.M{"_id": scope, "alerts.id": bson.M{"$ne": a.ID}}
	update := bson.M{
		"$push": bson.M{"alerts": a},
		"$set":  bson.M{"updated_at": m.now()},
	}
	_, err := m.coll.UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		// The scope exists and already holds this id: the filter missed and the upsert collided on _id.
		return nil
	}
	return unavailable(err)
}

func (m *Mongo) Replace(ctx context.Context, scope string, list []alerts.Alert) error {
	if len(list) == 0 {
		return m.Clear(ctx, scope)
	}
	doc := mongoScope{Scope: scope, Alerts: alerts.Dedupe(list), UpdatedAt: m.now()}
	_, err := m.coll.ReplaceOne(ctx, bson.M{"_id": scope}, doc, options.Replace().SetUpsert(true))
	return unavailable(err)
}

func (m *Mongo) Clear(ctx context.Context, scope string) error {
	_, err := m.coll.DeleteOne(ctx, bson.M{"_id": scope})
	return unavailable(err)
}
