package mongodb

import (
	"context"

	"devconnect/apperror"
	"devconnect/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProfileRepository struct {
	coll *mongo.Collection
}

func NewProfileRepository(coll *mongo.Collection) *ProfileRepository {
	return &ProfileRepository{coll: coll}
}

func (r *ProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, profile)
	if mongo.IsDuplicateKeyError(err) {
		// unique index on user: a concurrent upsert already created it
		return apperror.Conflict("profile already exists")
	}
	if err != nil {
		return apperror.Storage("insert profile", err)
	}
	return nil
}

func (r *ProfileRepository) GetByUser(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var profile models.Profile
	err := r.coll.FindOne(ctx, bson.M{"user": userID}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, apperror.NotFound("profile", userID.Hex())
	}
	if err != nil {
		return nil, apperror.Storage("find profile", err)
	}
	return &profile, nil
}

func (r *ProfileRepository) List(ctx context.Context) ([]models.Profile, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, apperror.Storage("list profiles", err)
	}
	defer cursor.Close(ctx)

	profiles := []models.Profile{}
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, apperror.Storage("decode profiles", err)
	}
	return profiles, nil
}

func (r *ProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"user": profile.User}, profile)
	if err != nil {
		return apperror.Storage("update profile", err)
	}
	if res.MatchedCount == 0 {
		return apperror.NotFound("profile", profile.User.Hex())
	}
	return nil
}

func (r *ProfileRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"user": userID})
	if err != nil {
		return apperror.Storage("delete profile", err)
	}
	if res.DeletedCount == 0 {
		return apperror.NotFound("profile", userID.Hex())
	}
	return nil
}
