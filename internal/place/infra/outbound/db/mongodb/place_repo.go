package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	placeDomain "github.com/davicafu/hexaplaces/internal/place/domain"
	sharedMongo "github.com/davicafu/hexaplaces/internal/shared/infra/platform/db/mongodb"
	"github.com/davicafu/hexaplaces/internal/shared/platform/query"
)

// PlaceRepoMongoDB implementa PlaceRepository sobre la colección "places".
type PlaceRepoMongoDB struct {
	placesColl *mongo.Collection
}

var _ placeDomain.PlaceRepository = (*PlaceRepoMongoDB)(nil)

// Nombres de filtro y orden que no coinciden con la ruta del documento.
var placeFields = sharedMongo.FieldMap{
	"id":          "_id",
	"locationLat": "location.lat",
	"locationLng": "location.lng",
}

func NewPlaceRepoMongoDB(ctx context.Context, client *mongo.Client, dbName string) (*PlaceRepoMongoDB, error) {
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("could not ping mongoDB: %w", err)
	}

	return &PlaceRepoMongoDB{
		placesColl: client.Database(dbName).Collection("places"),
	}, nil
}

// EnsureIndexes crea el índice de texto que usa el operador text (title, description).
func (r *PlaceRepoMongoDB) EnsureIndexes(ctx context.Context) error {
	_, err := r.placesColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "title", Value: "text"}, {Key: "description", Value: "text"}},
			Options: options.Index().SetName("places_text"),
		},
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
	})
	if err != nil {
		return fmt.Errorf("creating place indexes: %w", err)
	}
	return nil
}

// --- Structs de BSON para el mapeo ---

type mongoLocation struct {
	Lat float64 `bson:"lat"`
	Lng float64 `bson:"lng"`
}

type mongoPlace struct {
	ID          primitive.ObjectID `bson:"_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Address     string             `bson:"address"`
	Location    mongoLocation      `bson:"location"`
	ImageURL    string             `bson:"imageUrl,omitempty"`
	CreatorID   primitive.ObjectID `bson:"creatorId"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

// --- CRUD ---

func (r *PlaceRepoMongoDB) Create(ctx context.Context, p *placeDomain.Place) error {
	if _, err := r.placesColl.InsertOne(ctx, toMongoPlace(p)); err != nil {
		return fmt.Errorf("inserting place: %w", err)
	}
	return nil
}

func (r *PlaceRepoMongoDB) Update(ctx context.Context, p *placeDomain.Place) error {
	mp := toMongoPlace(p)
	res, err := r.placesColl.UpdateOne(ctx, bson.M{"_id": mp.ID}, bson.M{"$set": mp})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return placeDomain.ErrPlaceNotFound
	}
	return nil
}

func (r *PlaceRepoMongoDB) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.placesColl.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return placeDomain.ErrPlaceNotFound
	}
	return nil
}

// --- Lectura ---

func (r *PlaceRepoMongoDB) GetByID(ctx context.Context, id primitive.ObjectID) (*placeDomain.Place, error) {
	var mp mongoPlace
	err := r.placesColl.FindOne(ctx, bson.M{"_id": id}).Decode(&mp)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, placeDomain.ErrPlaceNotFound
		}
		return nil, err
	}
	return fromMongoPlace(&mp), nil
}

func (r *PlaceRepoMongoDB) Find(ctx context.Context, q *query.FindQuery) ([]*placeDomain.Place, int64, error) {
	filter := sharedMongo.ToFilter(q.Filters, placeFields)

	total, err := r.placesColl.CountDocuments(ctx, filter, sharedMongo.CountOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("counting places: %w", err)
	}
	if total == 0 {
		return []*placeDomain.Place{}, 0, nil
	}

	cursor, err := r.placesColl.Find(ctx, filter, sharedMongo.FindOptions(q, placeFields))
	if err != nil {
		return nil, 0, fmt.Errorf("finding places: %w", err)
	}
	defer cursor.Close(ctx)

	places := make([]*placeDomain.Place, 0, q.Limit())
	for cursor.Next(ctx) {
		var mp mongoPlace
		if err := cursor.Decode(&mp); err != nil {
			return nil, 0, err
		}
		places = append(places, fromMongoPlace(&mp))
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, err
	}

	return places, total, nil
}

// --- Helpers de Mapeo ---

func toMongoPlace(p *placeDomain.Place) *mongoPlace {
	return &mongoPlace{
		ID: p.ID, Title: p.Title, Description: p.Description, Address: p.Address,
		Location:  mongoLocation{Lat: p.Location.Lat, Lng: p.Location.Lng},
		ImageURL:  p.ImageURL,
		CreatorID: p.CreatorID, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

func fromMongoPlace(mp *mongoPlace) *placeDomain.Place {
	return &placeDomain.Place{
		ID: mp.ID, Title: mp.Title, Description: mp.Description, Address: mp.Address,
		Location:  placeDomain.Location{Lat: mp.Location.Lat, Lng: mp.Location.Lng},
		ImageURL:  mp.ImageURL,
		CreatorID: mp.CreatorID, CreatedAt: mp.CreatedAt, UpdatedAt: mp.UpdatedAt,
	}
}
