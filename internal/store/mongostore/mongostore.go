// Package mongostore keeps user and product documents directly in MongoDB,
// with carts, wishlists and orders embedded in the user document exactly as
// the resource server holds them.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/rinsh4dd/e-com/internal/models"
	"github.com/rinsh4dd/e-com/internal/store"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
}

func Open(ctx context.Context, uri, database string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	logger.Info("connected to mongo", zap.String("database", database))

	return &Store{client: client, db: client.Database(database), logger: logger}, nil
}

func (s *Store) Users() store.Users {
	return users{coll: s.db.Collection("users")}
}

func (s *Store) Products() store.Products {
	return products{coll: s.db.Collection("products")}
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func byID(id models.ID) bson.M {
	return bson.M{"id": id}
}

func userFilter(f store.UserFilter) bson.M {
	filter := bson.M{}
	if f.Email != "" {
		filter["email"] = f.Email
	}
	if f.Password != "" {
		filter["password"] = f.Password
	}
	return filter
}

func setFields(fields store.Fields) bson.M {
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}
	return bson.M{"$set": set}
}

func mapErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound.Wrap(err)
	}
	return store.ErrUnavailable.Wrap(err)
}

func newID() models.ID {
	return models.ID(uuid.NewString())
}

type users struct{ coll *mongo.Collection }

func (u users) List(ctx context.Context) ([]models.User, error) {
	return u.find(ctx, bson.M{})
}

func (u users) Find(ctx context.Context, f store.UserFilter) ([]models.User, error) {
	return u.find(ctx, userFilter(f))
}

func (u users) find(ctx context.Context, filter bson.M) ([]models.User, error) {
	cur, err := u.coll.Find(ctx, filter)
	if err != nil {
		return nil, mapErr(err)
	}
	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

func (u users) Get(ctx context.Context, id models.ID) (*models.User, error) {
	var out models.User
	if err := u.coll.FindOne(ctx, byID(id)).Decode(&out); err != nil {
		return nil, mapErr(err)
	}
	return &out, nil
}

func (u users) Create(ctx context.Context, user models.User) (*models.User, error) {
	if user.ID == "" {
		user.ID = newID()
	}
	if _, err := u.coll.InsertOne(ctx, user); err != nil {
		return nil, mapErr(err)
	}
	return &user, nil
}

func (u users) Patch(ctx context.Context, id models.ID, fields store.Fields) (*models.User, error) {
	res, err := u.coll.UpdateOne(ctx, byID(id), setFields(fields))
	if err != nil {
		return nil, mapErr(err)
	}
	if res.MatchedCount == 0 {
		return nil, store.ErrNotFound
	}
	return u.Get(ctx, id)
}

func (u users) Delete(ctx context.Context, id models.ID) error {
	res, err := u.coll.DeleteOne(ctx, byID(id))
	if err != nil {
		return mapErr(err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

type products struct{ coll *mongo.Collection }

func (p products) List(ctx context.Context) ([]models.Product, error) {
	cur, err := p.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, mapErr(err)
	}
	var out []models.Product
	if err := cur.All(ctx, &out); err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

func (p products) Get(ctx context.Context, id models.ID) (*models.Product, error) {
	var out models.Product
	if err := p.coll.FindOne(ctx, byID(id)).Decode(&out); err != nil {
		return nil, mapErr(err)
	}
	return &out, nil
}

func (p products) Create(ctx context.Context, product models.Product) (*models.Product, error) {
	if product.ID == "" {
		product.ID = newID()
	}
	if _, err := p.coll.InsertOne(ctx, product); err != nil {
		return nil, mapErr(err)
	}
	return &product, nil
}

func (p products) Patch(ctx context.Context, id models.ID, fields store.Fields) (*models.Product, error) {
	res, err := p.coll.UpdateOne(ctx, byID(id), setFields(fields))
	if err != nil {
		return nil, mapErr(err)
	}
	if res.MatchedCount == 0 {
		return nil, store.ErrNotFound
	}
	return p.Get(ctx, id)
}

func (p products) Delete(ctx context.Context, id models.ID) error {
	res, err := p.coll.DeleteOne(ctx, byID(id))
	if err != nil {
		return mapErr(err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
