package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eventsphere/eventsphere-api/internal/core/domain"
)

const savedEventsCollection = "saved_events"

// BookmarkRepository implements ports.BookmarkRepository backed by MongoDB.
type BookmarkRepository struct {
	coll *mongo.Collection
}

func NewBookmarkRepository(db *mongo.Database) *BookmarkRepository {
	return &BookmarkRepository{coll: db.Collection(savedEventsCollection)}
}

type mongoBookmark struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	EventID   string             `bson:"event_id"`
	Data      domain.EventData   `bson:"event_data"`
	Tags      string             `bson:"tags,omitempty"`
	CreatedAt int64              `bson:"created_at"`
}

// Upsert inserts or replaces the row for (user, event id). The creation time
// of an existing row is preserved; only payload and tags change.
func (r *BookmarkRepository) Upsert(ctx context.Context, b *domain.Bookmark) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"user_id": b.UserID, "event_id": b.EventID}
	update := bson.M{
		"$set": bson.M{
			"event_data": b.Data,
			"tags":       b.Tags,
		},
		"$setOnInsert": bson.M{
			"user_id":    b.UserID,
			"event_id":   b.EventID,
			"created_at": b.CreatedAt.Unix(),
		},
	}

	_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert bookmark: %w", err)
	}
	return nil
}

func (r *BookmarkRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Bookmark, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *BookmarkRepository) ListAll(ctx context.Context) ([]*domain.Bookmark, error) {
	return r.list(ctx, bson.M{})
}

// Remove deletes the user's bookmark by database row id, falling back to the
// event id when the argument is not a row id or matches no row.
func (r *BookmarkRepository) Remove(ctx context.Context, userID, idOrEventID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if oid, err := primitive.ObjectIDFromHex(idOrEventID); err == nil {
		res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "user_id": userID})
		if err != nil {
			return fmt.Errorf("remove bookmark: %w", err)
		}
		if res.DeletedCount > 0 {
			return nil
		}
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"user_id": userID, "event_id": idOrEventID})
	if err != nil {
		return fmt.Errorf("remove bookmark: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBookmarkNotFound
	}
	return nil
}

func (r *BookmarkRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("delete user bookmarks: %w", err)
	}
	return nil
}

func (r *BookmarkRepository) DeleteRow(ctx context.Context, rowID string) error {
	oid, err := primitive.ObjectIDFromHex(rowID)
	if err != nil {
		return domain.ErrBookmarkNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete bookmark row: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBookmarkNotFound
	}
	return nil
}

// EnsureIndexes creates the compound unique index that guarantees one
// bookmark per (user, event id).
func (r *BookmarkRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "event_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *BookmarkRepository) list(ctx context.Context, filter bson.M) ([]*domain.Bookmark, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	defer cur.Close(ctx)

	var bookmarks []*domain.Bookmark
	for cur.Next(ctx) {
		var mb mongoBookmark
		if err := cur.Decode(&mb); err != nil {
			return nil, fmt.Errorf("decode bookmark: %w", err)
		}
		bookmarks = append(bookmarks, &domain.Bookmark{
			ID:        mb.ID.Hex(),
			UserID:    mb.UserID,
			EventID:   mb.EventID,
			Data:      mb.Data,
			Tags:      mb.Tags,
			CreatedAt: unixToTime(mb.CreatedAt),
		})
	}
	return bookmarks, cur.Err()
}
