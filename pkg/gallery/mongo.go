package gallery

import (
	"context"
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/infographic/pkg/errors"
)

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI        string
	Database   string // defaults to "infographic"
	Collection string // defaults to "gallery"
}

// MongoStore keeps entries in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// mongoEntry is the stored document. The spec is kept as its JSON encoding
// so custom spec marshaling applies unchanged.
type mongoEntry struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Template  string    `bson:"template,omitempty"`
	Spec      string    `bson:"spec"`
	CreatedAt time.Time `bson:"created_at"`
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "mongo URI is required")
	}
	if cfg.Database == "" {
		cfg.Database = "infographic"
	}
	if cfg.Collection == "" {
		cfg.Collection = "gallery"
	}

	client, err := mongo.Connect(ctx, mongoopts.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongo")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

func (s *MongoStore) Save(ctx context.Context, e *Entry) error {
	if err := validate(e); err != nil {
		return err
	}
	spec, err := json.Marshal(e.Spec)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "marshal spec")
	}
	doc := mongoEntry{
		ID:        e.ID,
		Name:      e.Name,
		Template:  e.Template,
		Spec:      string(spec),
		CreatedAt: e.CreatedAt,
	}
	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": e.ID}, doc, mongoopts.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "save gallery entry")
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*Entry, error) {
	if err := errors.ValidateEntryID(id); err != nil {
		return nil, err
	}
	var doc mongoEntry
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, notFound(id)
		}
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "get gallery entry")
	}
	return doc.entry()
}

func (s *MongoStore) List(ctx context.Context) ([]*Entry, error) {
	cur, err := s.coll.Find(ctx, bson.M{}, mongoopts.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list gallery entries")
	}
	var docs []mongoEntry
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list gallery entries")
	}
	out := make([]*Entry, 0, len(docs))
	for _, d := range docs {
		e, err := d.entry()
		if err != nil {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if err := errors.ValidateEntryID(id); err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete gallery entry")
	}
	if res.DeletedCount == 0 {
		return notFound(id)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (d mongoEntry) entry() (*Entry, error) {
	e := &Entry{
		ID:        d.ID,
		Name:      d.Name,
		Template:  d.Template,
		CreatedAt: d.CreatedAt.UTC(),
	}
	if err := json.Unmarshal([]byte(d.Spec), &e.Spec); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "parse spec of %s", d.ID)
	}
	return e, nil
}

var _ Store = (*MongoStore)(nil)
