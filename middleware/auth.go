package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Abhishekdhal/kiit-quest-backend/models"
	"github.com/Abhishekdhal/kiit-quest-backend/utils"
)

// Context keys set by the gates below.
const (
	CtxUserID = "userID"
	CtxUser   = "user"
)

// Auth verifies the Authorization: Bearer <token> header and stores the
// token's user ID (hex string) in the Gin context. Handlers re-fetch the
// full profile as needed.
func Auth(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "authorization header required"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "authorization header format must be Bearer {token}"})
			c.Abort()
			return
		}

		userID, err := utils.VerifyJWT(parts[1], jwtSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			c.Abort()
			return
		}

		c.Set(CtxUserID, userID)
		c.Next()
	}
}

// AdminGate restricts routes to users whose stored role is "admin". It
// runs after Auth, re-fetches the caller, and leaves the loaded user in
// the context for the downstream handler.
type AdminGate struct {
	Users *mongo.Collection
}

func NewAdminGate(users *mongo.Collection) *AdminGate {
	return &AdminGate{Users: users}
}

func (g *AdminGate) RequireAdmin(c *gin.Context) {
	uid, exists := c.Get(CtxUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		c.Abort()
		return
	}

	objID, err := primitive.ObjectIDFromHex(uid.(string))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid user id"})
		c.Abort()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := g.Users.FindOne(ctx, bson.M{"_id": objID}).Decode(&user); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		c.Abort()
		return
	}

	if user.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"message": "access denied: admin role required"})
		c.Abort()
		return
	}

	c.Set(CtxUser, user)
	c.Next()
}
