package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a community announcement. LikedBy prevents double-likes;
// LikesCount is kept in sync atomically with $inc in the same update.
type Post struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	AuthorName string               `bson:"authorName" json:"authorName"`
	AuthorID   primitive.ObjectID   `bson:"authorId" json:"authorId"`
	Content    string               `bson:"content" json:"content"`
	LikesCount int                  `bson:"likesCount" json:"likesCount"`
	LikedBy    []primitive.ObjectID `bson:"likedBy,omitempty" json:"likedBy,omitempty"`
	CreatedAt  time.Time            `bson:"createdAt" json:"createdAt"`
}
