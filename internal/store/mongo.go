package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AnshRaj112/secure-profile-hub/internal/models"
)

const usersCollection = "users"

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	Aadhaar   string             `bson:"aadhaar"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d *userDocument) toModel() *models.User {
	return &models.User{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Password:  d.Password,
		Aadhaar:   d.Aadhaar,
		CreatedAt: d.CreatedAt,
	}
}

// MongoUserStore stores users in the "users" collection.
type MongoUserStore struct {
	col *mongo.Collection
}

func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{col: db.Collection(usersCollection)}
}

// EnsureIndexes creates the unique email index. Called on startup from main
// after Mongo has connected.
func (s *MongoUserStore) EnsureIndexes(ctx context.Context) error {
	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("idx_users_email_unique").SetUnique(true),
	}
	if _, err := s.col.Indexes().CreateOne(ctx, model); err != nil {
		return errors.Wrap(err, "create users email index")
	}
	return nil
}

func (s *MongoUserStore) Create(ctx context.Context, user *models.User) error {
	doc := userDocument{
		ID:        primitive.NewObjectID(),
		Name:      user.Name,
		Email:     user.Email,
		Password:  user.Password,
		Aadhaar:   user.Aadhaar,
		CreatedAt: user.CreatedAt,
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	if _, err := s.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return errors.Wrap(err, "insert user")
	}

	user.ID = doc.ID.Hex()
	user.CreatedAt = doc.CreatedAt
	return nil
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *MongoUserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *MongoUserStore) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var doc userDocument
	if err := s.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "find user")
	}
	return doc.toModel(), nil
}
