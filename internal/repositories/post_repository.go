package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/quantlake/stockbuzz/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrPostNotFound is returned when a referenced post is absent from the post store
var ErrPostNotFound = fmt.Errorf("post not found")

// PostRepository defines the interface for social post data operations.
// Posts are written by the ingestion pipeline and read-only everywhere else.
type PostRepository interface {
	GetPostByID(ctx context.Context, id string) (*models.SocialPost, error)
	GetPostsByIDs(ctx context.Context, ids []string) ([]models.SocialPost, error)
	ListPosts(ctx context.Context, filter models.PostFilter) ([]models.SocialPost, int64, error)
	UpsertPost(ctx context.Context, post *models.SocialPost) error
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// GetPostByID retrieves a post by its ObjectID hex from MongoDB
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.SocialPost, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID format: %w", err)
	}

	var post models.SocialPost
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetPostsByIDs retrieves the posts matching the given ObjectID hexes.
// Unparseable or missing IDs are skipped, not errors.
func (r *MongoPostRepository) GetPostsByIDs(ctx context.Context, ids []string) ([]models.SocialPost, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	objIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if objID, err := primitive.ObjectIDFromHex(id); err == nil {
			objIDs = append(objIDs, objID)
		}
	}

	var posts []models.SocialPost
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": objIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ListPosts retrieves a filtered, newest-first page of posts plus the exact
// count of the filtered set
func (r *MongoPostRepository) ListPosts(ctx context.Context, filter models.PostFilter) ([]models.SocialPost, int64, error) {
	query := bson.M{}
	if filter.Platform != "" {
		query["platform"] = filter.Platform
	}
	if filter.Sentiment != "" {
		query["sentiment"] = filter.Sentiment
	}
	if filter.MarketRelated != nil {
		query["market_related"] = *filter.MarketRelated
	}
	if filter.CreatorIDs != nil {
		query["creator_id"] = bson.M{"$in": filter.CreatorIDs}
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().
		SetSkip(filter.Skip).
		SetLimit(filter.Limit).
		SetSort(bson.D{{Key: "published_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var posts []models.SocialPost
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// UpsertPost inserts or refreshes a post keyed by (platform, post_id)
func (r *MongoPostRepository) UpsertPost(ctx context.Context, post *models.SocialPost) error {
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	filter := bson.M{"platform": post.Platform, "post_id": post.PostID}
	update := bson.M{
		"$set": bson.M{
			"creator_id":     post.CreatorID,
			"creator_name":   post.CreatorName,
			"content":        post.Content,
			"url":            post.URL,
			"published_at":   post.PublishedAt,
			"summary":        post.Summary,
			"sentiment":      post.Sentiment,
			"tags":           post.Tags,
			"market_related": post.MarketRelated,
			"tickers":        post.Tickers,
		},
		"$setOnInsert": bson.M{
			"platform":   post.Platform,
			"post_id":    post.PostID,
			"created_at": post.CreatedAt,
		},
	}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}
