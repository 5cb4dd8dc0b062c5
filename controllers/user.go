package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Abhishekdhal/kiit-quest-backend/middleware"
	"github.com/Abhishekdhal/kiit-quest-backend/models"
	"github.com/Abhishekdhal/kiit-quest-backend/utils"
)

// UserController serves the authenticated user's own profile.
type UserController struct {
	Users *mongo.Collection
}

func NewUserController(users *mongo.Collection) *UserController {
	return &UserController{Users: users}
}

// UpdateProfileInput allows partial updates; empty fields keep their
// current values. Role is deliberately absent: it is never writable here.
type UpdateProfileInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	School   string `json:"school"`
	Branch   string `json:"branch"`
	Semester string `json:"semester"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// callerID resolves the authenticated user's ObjectID from the context
// set by the auth middleware.
func callerID(c *gin.Context) (primitive.ObjectID, bool) {
	uid, exists := c.Get(middleware.CtxUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return primitive.NilObjectID, false
	}
	objID, err := primitive.ObjectIDFromHex(uid.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid user id"})
		return primitive.NilObjectID, false
	}
	return objID, true
}

// GetProfile returns the caller's profile including the role claim.
func (u *UserController) GetProfile(c *gin.Context) {
	objID, ok := callerID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := u.Users.FindOne(ctx, bson.M{"_id": objID}).Decode(&user); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, profileBody(&user))
}

// UpdateProfile merges non-empty fields into the stored profile. The
// password is rehashed only when the request actually carries one, so a
// stored digest is never hashed twice.
func (u *UserController) UpdateProfile(c *gin.Context) {
	objID, ok := callerID(c)
	if !ok {
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := u.Users.FindOne(ctx, bson.M{"_id": objID}).Decode(&user); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	if input.School != "" {
		user.School = input.School
	}
	if input.Branch != "" {
		user.Branch = input.Branch
	}
	if input.Semester != "" {
		user.Semester = input.Semester
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}

	set := bson.M{
		"name":      user.Name,
		"email":     user.Email,
		"school":    user.School,
		"branch":    user.Branch,
		"semester":  user.Semester,
		"phone":     user.Phone,
		"updatedAt": time.Now().UTC(),
	}

	if input.Password != "" {
		hash, err := utils.HashPassword(input.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not hash password"})
			return
		}
		set["password"] = hash
	}

	if _, err := u.Users.UpdateByID(ctx, objID, bson.M{"$set": set}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "update failed"})
		return
	}

	c.JSON(http.StatusOK, profileBody(&user))
}

// DeleteProfile removes the caller's account outright. No soft delete,
// and tokens already issued stay valid until they expire.
func (u *UserController) DeleteProfile(c *gin.Context) {
	objID, ok := callerID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := u.Users.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "delete failed"})
		return
	}
	if res.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User account deleted"})
}
