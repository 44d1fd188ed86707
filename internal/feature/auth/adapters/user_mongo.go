package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"authgate/internal/feature/auth/domain/entity"
	"authgate/internal/feature/auth/usecase"
)

// UsersCollection is the Mongo collection holding credential records.
const UsersCollection = "users"

// userDocument is the BSON shape of a user in the users collection.
type userDocument struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Name      string        `bson:"name"`
	Email     string        `bson:"email"`
	Password  string        `bson:"password"`
	CreatedAt time.Time     `bson:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt"`
}

func documentFromEntity(u *entity.User) userDocument {
	return userDocument{
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.PasswordHash,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (d *userDocument) toEntity() *entity.User {
	return &entity.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.Password,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// insertedID renders the id Mongo assigned to an inserted document.
func insertedID(id any) string {
	if oid, ok := id.(bson.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(id)
}

// userMongo is the document-store implementation of UserRepository.
type userMongo struct {
	coll usersCollection
}

// usersCollection is the part of *mongo.Collection the store calls.
type usersCollection interface {
	InsertOne(ctx context.Context, document any, opts ...options.Lister[options.InsertOneOptions]) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter any, opts ...options.Lister[options.FindOneOptions]) *mongo.SingleResult
	Indexes() mongo.IndexView
	Database() *mongo.Database
}

var (
	_ usecase.UserRepository = (*userMongo)(nil)
	_ usersCollection        = (*mongo.Collection)(nil)
)

// NewUserMongo creates a userMongo on the users collection of db.
func NewUserMongo(db *mongo.Database) *userMongo {
	return &userMongo{coll: db.Collection(UsersCollection)}
}

// Create inserts u and sets its ID to the hex form of the new ObjectID.
func (r *userMongo) Create(ctx context.Context, u *entity.User) error {
	if u == nil {
		return errors.New("user is nil")
	}
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now

	res, err := r.coll.InsertOne(ctx, documentFromEntity(u))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	if !res.Acknowledged {
		return usecase.ErrInsertNotAcknowledged
	}
	u.ID = insertedID(res.InsertedID)
	return nil
}

// FindByEmail returns the user with email or usecase.ErrUserNotFound.
func (r *userMongo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return doc.toEntity(), nil
}

// Ping checks that the deployment is reachable.
func (r *userMongo) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, nil)
}

// Migrate ensures the unique index on email.
func (r *userMongo) Migrate(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	return err
}
