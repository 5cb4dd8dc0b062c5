package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Abhishekdhal/kiit-quest-backend/models"
	"github.com/Abhishekdhal/kiit-quest-backend/utils"
)

// AuthController orchestrates signup, login, and the OTP password-reset
// flow. All collaborators are injected so tests can swap the mailer.
type AuthController struct {
	Users       *mongo.Collection
	Mailer      utils.Mailer
	JWTSecret   []byte
	JWTValidity time.Duration
	OTPTTL      time.Duration
	OTPCap      int
}

func NewAuthController(users *mongo.Collection, mailer utils.Mailer, jwtSecret []byte, jwtValidity, otpTTL time.Duration, otpCap int) *AuthController {
	return &AuthController{
		Users:       users,
		Mailer:      mailer,
		JWTSecret:   jwtSecret,
		JWTValidity: jwtValidity,
		OTPTTL:      otpTTL,
		OTPCap:      otpCap,
	}
}

// RegisterInput is the request body for signup. School, branch, semester,
// and phone are profile attributes, not credentials, and may be empty.
type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	School   string `json:"school"`
	Branch   string `json:"branch"`
	Semester string `json:"semester"`
	Phone    string `json:"phone"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordInput struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// forgotAck is returned whether or not the account exists, so the endpoint
// does not reveal which emails are registered.
const forgotAck = "If that email is registered, an OTP has been sent"

// profileBody is the wire shape shared by signup, login, and the profile
// endpoints. Token is attached only where a token is minted.
func profileBody(u *models.User) gin.H {
	return gin.H{
		"_id":      u.ID.Hex(),
		"name":     u.Name,
		"email":    u.Email,
		"school":   u.School,
		"branch":   u.Branch,
		"semester": u.Semester,
		"phone":    u.Phone,
		"role":     u.Role,
	}
}

// Register creates a user with a hashed password and the default student
// role, and answers with the profile plus a fresh token.
func (a *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please add all fields"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var existing models.User
	err := a.Users.FindOne(ctx, bson.M{"email": input.Email}).Decode(&existing)
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "database error"})
		return
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to hash password"})
		return
	}

	now := time.Now().UTC()
	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      input.Name,
		Email:     input.Email,
		Password:  hash,
		School:    input.School,
		Branch:    input.Branch,
		Semester:  input.Semester,
		Phone:     input.Phone,
		Role:      models.RoleStudent,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := a.Users.InsertOne(ctx, user); err != nil {
		// a concurrent signup can hit the unique email index here
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create user"})
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), a.JWTSecret, a.JWTValidity)
	if err != nil {
		log.Printf("Register: token generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not generate token"})
		return
	}

	body := profileBody(&user)
	body["token"] = token
	c.JSON(http.StatusCreated, body)
}

// Login authenticates by email and password. The failure message never
// reveals whether the email or the password was wrong.
func (a *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := a.Users.FindOne(ctx, bson.M{"email": input.Email}).Decode(&user); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}

	if err := utils.CheckPassword(user.Password, input.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), a.JWTSecret, a.JWTValidity)
	if err != nil {
		log.Printf("Login: token generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not generate token"})
		return
	}

	body := profileBody(&user)
	body["token"] = token
	c.JSON(http.StatusOK, body)
}

// ForgotPassword mints and emails a reset OTP, bounded by a rolling
// 24-hour quota per user. The counter reset is evaluated lazily here; no
// background job touches it. The quota check and the increment are two
// steps over the same document, so concurrent requests can transiently
// overshoot the cap; accepted, the limiter is abuse mitigation only.
func (a *AuthController) ForgotPassword(c *gin.Context) {
	var input ForgotPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	err := a.Users.FindOne(ctx, bson.M{"email": input.Email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// identical body to the success path so account existence leaks
		// neither through status nor through shape
		c.JSON(http.StatusOK, gin.H{"message": forgotAck})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "database error"})
		return
	}

	now := time.Now().UTC()
	count := utils.EffectiveOTPCount(now, user.LastOtpRequest, user.OtpRequestCount)
	if count >= a.OTPCap {
		c.JSON(http.StatusTooManyRequests, gin.H{"message": "Too many OTP requests. Please try again later."})
		return
	}

	otp := utils.GenerateOTP()
	expiry := now.Add(a.OTPTTL)

	update := bson.M{"$set": bson.M{
		"resetPasswordOTP":     otp,
		"resetPasswordExpires": expiry,
		"otpRequestCount":      count + 1,
		"lastOtpRequest":       now,
	}}
	if _, err := a.Users.UpdateByID(ctx, user.ID, update); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not store otp"})
		return
	}

	// dispatch failure leaves a valid, undelivered OTP; no rollback
	if err := a.Mailer.SendOTP(user.Email, otp, int(a.OTPTTL.Minutes())); err != nil {
		log.Printf("ForgotPassword: failed to send OTP email to %s: %v", user.Email, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": forgotAck})
}

// ResetPassword verifies email + OTP + unexpired deadline in one query,
// then sets the rehashed password and clears the OTP fields. The request
// counter stays where it is: the daily quota tracks calendar time, not
// successful resets.
func (a *AuthController) ResetPassword(c *gin.Context) {
	var input ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email, OTP, and a new password of at least 6 characters are required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"email":                input.Email,
		"resetPasswordOTP":     input.OTP,
		"resetPasswordExpires": bson.M{"$gt": time.Now().UTC()},
	}

	var user models.User
	err := a.Users.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired OTP"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "database error"})
		return
	}

	hash, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not hash password"})
		return
	}

	update := bson.M{
		"$set": bson.M{
			"password":  hash,
			"updatedAt": time.Now().UTC(),
		},
		"$unset": bson.M{
			"resetPasswordOTP":     "",
			"resetPasswordExpires": "",
		},
	}
	if _, err := a.Users.UpdateByID(ctx, user.ID, update); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not reset password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successful"})
}
