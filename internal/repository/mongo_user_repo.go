package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"CARTOPIA_BACK-END/internal/cart"
	"CARTOPIA_BACK-END/internal/models"
)

// MongoUserRepository implements UserRepository on a Mongo collection.
type MongoUserRepository struct {
	coll *mongo.Collection
}

// NewMongoUserRepository creates the repository and ensures the unique
// email index exists.
func NewMongoUserRepository(ctx context.Context, db *mongo.Database) (*MongoUserRepository, error) {
	coll := db.Collection("users")

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, err
	}

	return &MongoUserRepository{coll: coll}, nil
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var user models.User
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *MongoUserRepository) Insert(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()

	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	if user.CartData == nil {
		user.CartData = cart.Cart{}
	}
	user.CreatedAt = now
	user.UpdatedAt = now
	user.Version = 1

	_, err := r.coll.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	return err
}

// Update replaces the document, matching on the version the caller read.
// A matched count of zero means another writer got there first.
func (r *MongoUserRepository) Update(ctx context.Context, user *models.User) error {
	readVersion := user.Version
	user.Version = readVersion + 1
	user.UpdatedAt = time.Now().UTC()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": user.ID, "version": readVersion}, user)
	if err != nil {
		user.Version = readVersion
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	if res.MatchedCount == 0 {
		user.Version = readVersion
		return ErrVersionConflict
	}
	return nil
}
