package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mkoster/circuitry/pkg/diagram"
	"github.com/mkoster/circuitry/pkg/errors"
	"github.com/mkoster/circuitry/pkg/observability"
)

// Mongo stores each diagram as one BSON document keyed by its id field.
type Mongo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongo connects to the given MongoDB URI and uses the named database and
// collection.
func NewMongo(ctx context.Context, uri, database, collection string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect to %s", uri)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "ping %s", uri)
	}
	return &Mongo{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}, nil
}

// Put saves a diagram, assigning an id if needed.
func (s *Mongo) Put(ctx context.Context, d diagram.Diagram) (string, error) {
	assignID(&d)

	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"id": d.ID}, d, opts); err != nil {
		return "", errors.Wrap(errors.ErrCodeStore, err, "save diagram %s", d.ID)
	}

	observability.Store().OnPut(ctx, "mongo", len(d.Nodes))
	return d.ID, nil
}

// Get loads a diagram by id.
func (s *Mongo) Get(ctx context.Context, id string) (diagram.Diagram, error) {
	var d diagram.Diagram
	err := s.coll.FindOne(ctx, bson.M{"id": id}).Decode(&d)
	if err == mongo.ErrNoDocuments {
		observability.Store().OnGet(ctx, "mongo", false)
		return diagram.Diagram{}, notFound(id)
	}
	if err != nil {
		return diagram.Diagram{}, errors.Wrap(errors.ErrCodeStore, err, "load diagram %s", id)
	}

	observability.Store().OnGet(ctx, "mongo", true)
	return d, nil
}

// List returns summaries of all stored diagrams, ordered by id.
func (s *Mongo) List(ctx context.Context) ([]Entry, error) {
	opts := options.Find().
		SetProjection(bson.M{"id": 1, "name": 1, "nodes.id": 1}).
		SetSort(bson.M{"id": 1})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list diagrams")
	}
	defer cur.Close(ctx)

	var entries []Entry
	for cur.Next(ctx) {
		var d diagram.Diagram
		if err := cur.Decode(&d); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStore, err, "decode listing")
		}
		entries = append(entries, Entry{ID: d.ID, Name: d.Name, Nodes: len(d.Nodes)})
	}
	if err := cur.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list diagrams")
	}
	return entries, nil
}

// Delete removes a diagram by id.
func (s *Mongo) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "delete diagram %s", id)
	}
	if res.DeletedCount == 0 {
		return notFound(id)
	}

	observability.Store().OnDelete(ctx, "mongo")
	return nil
}

// Close disconnects from the server.
func (s *Mongo) Close() error {
	return s.client.Disconnect(context.Background())
}

var _ Store = (*Mongo)(nil)
