package mongo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AntonioJadrejci/CroAviationBackend/internal/core/domain"
)

const planesCollection = "planes"

// PlaneRepository implements ports.PlaneRepository on MongoDB.
type PlaneRepository struct {
	coll *mongo.Collection
}

func NewPlaneRepository(db *mongo.Database) *PlaneRepository {
	return &PlaneRepository{coll: db.Collection(planesCollection)}
}

type mongoPlane struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Airport       string             `bson:"airport"`
	Airline       string             `bson:"airline"`
	PlaneModel    string             `bson:"plane_model"`
	Registration  string             `bson:"registration"`
	ArrivalDate   time.Time          `bson:"arrival_date"`
	DepartureDate time.Time          `bson:"departure_date"`
	PlaneImage    string             `bson:"plane_image"`
	OwnerEmail    string             `bson:"owner_email"`
	CreatedAt     time.Time          `bson:"created_at"`
}

func (r *PlaneRepository) Insert(ctx context.Context, record *domain.PlaneRecord) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoPlane{
		Airport:       record.Airport,
		Airline:       record.Airline,
		PlaneModel:    record.PlaneModel,
		Registration:  record.Registration,
		ArrivalDate:   record.ArrivalDate,
		DepartureDate: record.DepartureDate,
		PlaneImage:    record.PlaneImagePath,
		OwnerEmail:    record.OwnerEmail,
		CreatedAt:     record.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert plane: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert plane: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// exactFold builds a case-insensitive exact-match filter. Anchored and
// quoted, so "zagreb" matches "ZAGREB" but never "New Zagreb".
func exactFold(value string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(value) + "$", Options: "i"}
}

func (r *PlaneRepository) FindByAirport(ctx context.Context, airport, airline string) ([]*domain.PlaneRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"airport": exactFold(airport)}
	if airline != "" {
		filter["airline"] = exactFold(airline)
	}

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find planes: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*domain.PlaneRecord
	for cursor.Next(ctx) {
		var mp mongoPlane
		if err := cursor.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode plane: %w", err)
		}
		records = append(records, &domain.PlaneRecord{
			ID:             mp.ID.Hex(),
			Airport:        mp.Airport,
			Airline:        mp.Airline,
			PlaneModel:     mp.PlaneModel,
			Registration:   mp.Registration,
			ArrivalDate:    mp.ArrivalDate.UTC(),
			DepartureDate:  mp.DepartureDate.UTC(),
			PlaneImagePath: mp.PlaneImage,
			OwnerEmail:     mp.OwnerEmail,
			CreatedAt:      mp.CreatedAt.UTC(),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate planes: %w", err)
	}
	return records, nil
}

func (r *PlaneRepository) DistinctAirlines(ctx context.Context, airport string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	values, err := r.coll.Distinct(ctx, "airline", bson.M{"airport": exactFold(airport)})
	if err != nil {
		return nil, fmt.Errorf("distinct airlines: %w", err)
	}

	airlines := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			airlines = append(airlines, s)
		}
	}
	return airlines, nil
}

func (r *PlaneRepository) DeleteByOwner(ctx context.Context, ownerEmail string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"owner_email": ownerEmail})
	if err != nil {
		return 0, fmt.Errorf("delete planes by owner: %w", err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates the query-path indexes for the planes collection.
func (r *PlaneRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "airport", Value: 1}}},
		{Keys: bson.D{{Key: "owner_email", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
