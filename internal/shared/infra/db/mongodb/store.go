package mongodb

import (
	"context"
	"errors"
	"fmt"

	sharedDomain "github.com/annaclara1997/event-buddy-project/internal/shared/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DocStoreMongo implementa o port Store sobre MongoDB. Cada documento é
// identificado por um _id string, como nos dados originais.
type DocStoreMongo struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ sharedDomain.Store = (*DocStoreMongo)(nil)

// NewDocStoreMongo é o construtor do adapter.
func NewDocStoreMongo(ctx context.Context, client *mongo.Client, dbName string) (*DocStoreMongo, error) {
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("could not ping mongoDB: %w", err)
	}
	return &DocStoreMongo{client: client, db: client.Database(dbName)}, nil
}

func (s *DocStoreMongo) Get(ctx context.Context, collection, id string) (sharedDomain.Document, error) {
	var raw bson.M
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return sharedDomain.Document{Exists: false}, nil
		}
		return sharedDomain.Document{}, sharedDomain.NewStoreError("get", collection, id, err)
	}
	return sharedDomain.Document{Exists: true, Fields: fieldsFromRaw(raw)}, nil
}

func (s *DocStoreMongo) Set(ctx context.Context, collection, id string, fields map[string]any, merge bool) error {
	coll := s.db.Collection(collection)
	filter := bson.M{"_id": id}

	var err error
	if merge {
		// $set com upsert: só os campos indicados são tocados.
		update := bson.M{"$set": bson.M(fields)}
		_, err = coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	} else {
		_, err = coll.ReplaceOne(ctx, filter, bson.M(fields), options.Replace().SetUpsert(true))
	}
	if err != nil {
		return sharedDomain.NewStoreError("set", collection, id, err)
	}
	return nil
}

func (s *DocStoreMongo) List(ctx context.Context, collection string) ([]sharedDomain.Identified, error) {
	cursor, err := s.db.Collection(collection).Find(ctx, bson.D{})
	if err != nil {
		return nil, sharedDomain.NewStoreError("list", collection, "", err)
	}
	defer cursor.Close(ctx)

	var docs []sharedDomain.Identified
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, sharedDomain.NewStoreError("list", collection, "", err)
		}
		docs = append(docs, sharedDomain.Identified{
			ID:     idFromRaw(raw),
			Fields: fieldsFromRaw(raw),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, sharedDomain.NewStoreError("list", collection, "", err)
	}
	return docs, nil
}

// ------------------ Helpers de mapeamento ------------------

func idFromRaw(raw bson.M) string {
	switch v := raw["_id"].(type) {
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// fieldsFromRaw remove o _id e converte bson.A em []any para que o resto
// do código não dependa de tipos do driver.
func fieldsFromRaw(raw bson.M) map[string]any {
	fields := make(map[string]any, len(raw))
	for k, v := range raw {
		if k == "_id" {
			continue
		}
		if arr, ok := v.(bson.A); ok {
			v = []any(arr)
		}
		fields[k] = v
	}
	return fields
}
