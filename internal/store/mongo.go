package store

import (
	"context"
	"errors"
	"time"

	"patentq/internal/database"
	"patentq/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// opTimeout bounds every single Mongo round trip.
const opTimeout = 5 * time.Second

type MongoUserStore struct {
	col *mongo.Collection
}

func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{col: db.Collection(database.UsersCollection)}
}

func (s *MongoUserStore) Create(ctx context.Context, u *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	if _, err := s.col.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
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
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	var u models.User
	err := s.col.FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *MongoUserStore) SetResetOTP(ctx context.Context, email, code string, expiry time.Time) error {
	return s.updateOne(ctx, email, bson.M{
		"$set": bson.M{
			"resetOtp":           code,
			"resetOtpExpiration": expiry,
		},
	})
}

func (s *MongoUserStore) ClearResetOTP(ctx context.Context, email string) error {
	return s.updateOne(ctx, email, bson.M{
		"$unset": bson.M{
			"resetOtp":           "",
			"resetOtpExpiration": "",
		},
	})
}

func (s *MongoUserStore) UpdatePassword(ctx context.Context, email, hash string) error {
	return s.updateOne(ctx, email, bson.M{
		"$set": bson.M{"passwordHash": hash},
		"$unset": bson.M{
			"resetOtp":           "",
			"resetOtpExpiration": "",
		},
	})
}

func (s *MongoUserStore) updateOne(ctx context.Context, email string, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	res, err := s.col.UpdateOne(ctx, bson.M{"email": email}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

type MongoPatentStore struct {
	col *mongo.Collection
}

func NewMongoPatentStore(db *mongo.Database) *MongoPatentStore {
	return &MongoPatentStore{col: db.Collection(database.PatentsCollection)}
}

func (s *MongoPatentStore) Upsert(ctx context.Context, p *models.Patent) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	now := time.Now().UTC()
	inventors := p.Inventors
	if inventors == nil {
		inventors = []models.Inventor{}
	}
	update := bson.M{
		"$set": bson.M{
			"assignee":   p.Assignee,
			"inventors":  inventors,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{"created_at": now},
	}
	_, err := s.col.UpdateOne(ctx,
		bson.M{"patent_number": p.PatentNumber},
		update,
		options.Update().SetUpsert(true),
	)
	return err
}

func (s *MongoPatentStore) FindByNumbers(ctx context.Context, numbers []string) ([]models.Patent, error) {
	return s.find(ctx, bson.M{"patent_number": bson.M{"$in": numbers}}, nil)
}

func (s *MongoPatentStore) List(ctx context.Context) ([]models.Patent, error) {
	return s.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "patent_number", Value: 1}}))
}

func (s *MongoPatentStore) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Patent, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	var findOpts []*options.FindOptions
	if opts != nil {
		findOpts = append(findOpts, opts)
	}
	cur, err := s.col.Find(ctx, filter, findOpts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	patents := []models.Patent{}
	if err := cur.All(ctx, &patents); err != nil {
		return nil, err
	}
	return patents, nil
}
