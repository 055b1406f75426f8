package target

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoStore implements Store on a MongoDB staging database.
type MongoStore struct {
	client   *mongo.Client
	database string
}

// NewMongoStore connects to the staging database and verifies the
// connection with a ping.
func NewMongoStore(ctx context.Context, connectionString, database string) (*MongoStore, error) {
	opts := options.Client().ApplyURI(connectionString)
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connecting to staging store: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("pinging staging store: %w", err)
	}
	return &MongoStore{client: client, database: database}, nil
}

func (m *MongoStore) EnsureCollections(ctx context.Context, names []string) error {
	db := m.client.Database(m.database)
	existing, err := db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("listing collections: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, name := range existing {
		have[name] = true
	}
	for _, name := range names {
		if have[name] {
			continue
		}
		if err := db.CreateCollection(ctx, name); err != nil {
			return fmt.Errorf("creating collection %s: %w", name, err)
		}
	}
	return nil
}

func (m *MongoStore) EnsureIndexes(ctx context.Context, collection string, defs []IndexDefinition) error {
	if len(defs) == 0 {
		return nil
	}
	models := make([]mongo.IndexModel, 0, len(defs))
	for _, def := range defs {
		keys := bson.D{}
		for _, k := range def.Keys {
			keys = append(keys, bson.E{Key: k.Field, Value: k.Order})
		}
		opts := options.Index().SetName(def.Name)
		if def.Unique {
			opts = opts.SetUnique(true)
		}
		models = append(models, mongo.IndexModel{Keys: keys, Options: opts})
	}
	if _, err := m.client.Database(m.database).Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("creating indexes on %s: %w", collection, err)
	}
	return nil
}

func (m *MongoStore) InsertRows(ctx context.Context, collection string, rows []map[string]string) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	docs := make([]interface{}, 0, len(rows))
	for _, row := range rows {
		doc := bson.M{}
		for field, value := range row {
			doc[field] = value
		}
		docs = append(docs, doc)
	}
	res, err := m.client.Database(m.database).Collection(collection).InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("inserting into %s: %w", collection, err)
	}
	return len(res.InsertedIDs), nil
}

func (m *MongoStore) CountDocuments(ctx context.Context, collection string) (int64, error) {
	n, err := m.client.Database(m.database).Collection(collection).CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("counting %s: %w", collection, err)
	}
	return n, nil
}

func (m *MongoStore) DistinctCount(ctx context.Context, collection, field string) (int64, error) {
	res := m.client.Database(m.database).Collection(collection).Distinct(ctx, field, bson.D{})
	var values []interface{}
	if err := res.Decode(&values); err != nil {
		return 0, fmt.Errorf("distinct %s.%s: %w", collection, field, err)
	}
	return int64(len(values)), nil
}

func (m *MongoStore) DropCollections(ctx context.Context, names []string) error {
	for _, name := range names {
		if err := m.client.Database(m.database).Collection(name).Drop(ctx); err != nil {
			return fmt.Errorf("dropping collection %s: %w", name, err)
		}
	}
	return nil
}

func (m *MongoStore) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
