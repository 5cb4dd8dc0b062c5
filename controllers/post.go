package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Abhishekdhal/kiit-quest-backend/middleware"
	"github.com/Abhishekdhal/kiit-quest-backend/models"
)

// PostController hosts the community announcement feed. Creation is
// admin-only; everyone can read and like.
type PostController struct {
	Posts *mongo.Collection
}

func NewPostController(posts *mongo.Collection) *PostController {
	return &PostController{Posts: posts}
}

type CreatePostInput struct {
	Content string `json:"content" binding:"required"`
}

// GetAllPosts returns every post, newest first.
func (p *PostController) GetAllPosts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := p.Posts.Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not fetch posts"})
		return
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not decode posts"})
		return
	}

	c.JSON(http.StatusOK, posts)
}

// CreatePost creates an announcement authored by the admin that the role
// gate loaded into the context.
func (p *PostController) CreatePost(c *gin.Context) {
	var input CreatePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Content is required"})
		return
	}

	userIf, exists := c.Get(middleware.CtxUser)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}
	author := userIf.(models.User)

	post := models.Post{
		ID:         primitive.NewObjectID(),
		AuthorName: author.Name,
		AuthorID:   author.ID,
		Content:    input.Content,
		LikesCount: 0,
		LikedBy:    []primitive.ObjectID{},
		CreatedAt:  time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := p.Posts.InsertOne(ctx, post); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not create post"})
		return
	}

	c.JSON(http.StatusCreated, post)
}

// ToggleLike flips the caller's like on a post. The count change and the
// likedBy membership change go through one update, so the counter cannot
// drift from the array.
func (p *PostController) ToggleLike(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid post id"})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var post models.Post
	if err := p.Posts.FindOne(ctx, bson.M{"_id": postID}).Decode(&post); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	liked := false
	for _, id := range post.LikedBy {
		if id == userID {
			liked = true
			break
		}
	}

	var update bson.M
	if liked {
		update = bson.M{"$inc": bson.M{"likesCount": -1}, "$pull": bson.M{"likedBy": userID}}
	} else {
		update = bson.M{"$inc": bson.M{"likesCount": 1}, "$push": bson.M{"likedBy": userID}}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Post
	if err := p.Posts.FindOneAndUpdate(ctx, bson.M{"_id": postID}, update, opts).Decode(&updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not update likes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"likesCount": updated.LikesCount,
		"isLiked":    !liked,
	})
}
