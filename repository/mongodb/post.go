package mongodb

import (
	"context"

	"devconnect/apperror"
	"devconnect/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PostRepository struct {
	coll *mongo.Collection
}

func NewPostRepository(coll *mongo.Collection) *PostRepository {
	return &PostRepository{coll: coll}
}

func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, post); err != nil {
		return apperror.Storage("insert post", err)
	}
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var post models.Post
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, apperror.NotFound("post", id.Hex())
	}
	if err != nil {
		return nil, apperror.Storage("find post", err)
	}
	return &post, nil
}

func (r *PostRepository) List(ctx context.Context) ([]models.Post, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, apperror.Storage("list posts", err)
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, apperror.Storage("decode posts", err)
	}
	return posts, nil
}

func (r *PostRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperror.Storage("delete post", err)
	}
	if res.DeletedCount == 0 {
		return apperror.NotFound("post", id.Hex())
	}
	return nil
}

// AddLike relies on the filter to enforce set semantics: the document only
// matches when the actor is absent from likes, so two concurrent likes can
// never both append and a stale read can never drop an entry.
func (r *PostRepository) AddLike(ctx context.Context, postID primitive.ObjectID, like models.Like) ([]models.Like, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	filter := bson.M{"_id": postID, "likes.user": bson.M{"$ne": like.User}}
	update := bson.M{"$push": bson.M{"likes": bson.M{"$each": bson.A{like}, "$position": 0}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post models.Post
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&post)
	if err == nil {
		return post.Likes, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, apperror.Storage("add like", err)
	}

	// No match: the post is missing or the actor already liked it.
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": postID})
	if err != nil {
		return nil, apperror.Storage("add like", err)
	}
	if n == 0 {
		return nil, apperror.NotFound("post", postID.Hex())
	}
	return nil, apperror.Conflict("post already liked")
}

func (r *PostRepository) RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) ([]models.Like, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	filter := bson.M{"_id": postID, "likes.user": userID}
	update := bson.M{"$pull": bson.M{"likes": bson.M{"user": userID}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post models.Post
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&post)
	if err == nil {
		return post.Likes, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, apperror.Storage("remove like", err)
	}

	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": postID})
	if err != nil {
		return nil, apperror.Storage("remove like", err)
	}
	if n == 0 {
		return nil, apperror.NotFound("post", postID.Hex())
	}
	return nil, apperror.Conflict("post not liked")
}

func (r *PostRepository) AddComment(ctx context.Context, postID primitive.ObjectID, comment models.Comment) ([]models.Comment, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	filter := bson.M{"_id": postID}
	update := bson.M{"$push": bson.M{"comments": bson.M{"$each": bson.A{comment}, "$position": 0}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post models.Post
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, apperror.NotFound("post", postID.Hex())
	}
	if err != nil {
		return nil, apperror.Storage("add comment", err)
	}
	return post.Comments, nil
}

func (r *PostRepository) RemoveComment(ctx context.Context, postID, commentID primitive.ObjectID) ([]models.Comment, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	filter := bson.M{"_id": postID, "comments._id": commentID}
	update := bson.M{"$pull": bson.M{"comments": bson.M{"_id": commentID}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post models.Post
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&post)
	if err == nil {
		return post.Comments, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, apperror.Storage("remove comment", err)
	}

	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": postID})
	if err != nil {
		return nil, apperror.Storage("remove comment", err)
	}
	if n == 0 {
		return nil, apperror.NotFound("post", postID.Hex())
	}
	return nil, apperror.NotFound("comment", commentID.Hex())
}
