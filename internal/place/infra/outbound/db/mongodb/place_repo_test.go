package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	placeDomain "github.com/davicafu/hexaplaces/internal/place/domain"
	sharedMongo "github.com/davicafu/hexaplaces/internal/shared/infra/platform/db/mongodb"
	"github.com/davicafu/hexaplaces/internal/shared/platform/query"
)

func TestPlaceMapping_RoundTrip(t *testing.T) {
	p := placeDomain.NewPlace("Empire State Building", "Famous sky scraper", "20 W 34th St", placeDomain.Location{Lat: 40.7, Lng: -73.9}, primitive.NewObjectID())
	p.ImageURL = "/uploads/empire.png"

	assert.Equal(t, p, fromMongoPlace(toMongoPlace(p)))
}

func TestPlaceFilter_UsesDocumentPaths(t *testing.T) {
	q, err := placeDomain.NewQuerySchema(10).Read(query.RawQuery{
		Filters: map[string][]string{
			"id":          {"nin:5f1a2b3c4d5e6f7a8b9c0d1e"},
			"locationLat": {"gte:10"},
		},
	})
	if !assert.NoError(t, err) {
		return
	}

	filter := sharedMongo.ToFilter(q.Filters, placeFields)
	keys := make([]string, 0, len(filter))
	for _, e := range filter {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"_id", "location.lat"}, keys)
	assert.Equal(t, bson.D{{Key: "$gte", Value: 10.0}}, filter[1].Value)
}

func TestPlaceFindOptions_DefaultSort(t *testing.T) {
	q, err := placeDomain.NewQuerySchema(10).Read(query.RawQuery{Page: "2"})
	if !assert.NoError(t, err) {
		return
	}

	opts := sharedMongo.FindOptions(q, placeFields)
	assert.Equal(t, int64(10), *opts.Skip)
	assert.Equal(t, int64(10), *opts.Limit)
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, opts.Sort)
}
