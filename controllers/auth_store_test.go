package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"golang.org/x/crypto/bcrypt"
)

// recorderMailer captures dispatched OTPs instead of talking SMTP.
type recorderMailer struct {
	to    string
	otp   string
	calls int
}

func (m *recorderMailer) SendOTP(to, otp string, ttlMinutes int) error {
	m.to = to
	m.otp = otp
	m.calls++
	return nil
}

func newStoreAuthRouter(users *mongo.Collection, mailer *recorderMailer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctl := NewAuthController(users, mailer, []byte("test-secret"), 30*24*time.Hour, 10*time.Minute, 15)

	r := gin.New()
	r.POST("/api/auth/signup", ctl.Register)
	r.POST("/api/auth/forgot-password", ctl.ForgotPassword)
	r.POST("/api/auth/reset-password", ctl.ResetPassword)
	return r
}

// updateCommand digs the queued update out of the command monitor.
type updateCommand struct {
	Updates []struct {
		U struct {
			Set   bson.M `bson:"$set"`
			Unset bson.M `bson:"$unset"`
		} `bson:"u"`
	} `bson:"updates"`
}

func capturedUpdate(mt *mtest.T) (updateCommand, bool) {
	for _, ev := range mt.GetAllStartedEvents() {
		if ev.CommandName != "update" {
			continue
		}
		var cmd updateCommand
		require.NoError(mt, bson.Unmarshal(ev.Command, &cmd))
		return cmd, true
	}
	return updateCommand{}, false
}

func userDoc(id primitive.ObjectID, email string, otpCount int, lastOtp time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: "A"},
		{Key: "email", Value: email},
		{Key: "password", Value: "$2a$10$notarealhashnotarealhashnotarealhash"},
		{Key: "role", Value: "student"},
		{Key: "otpRequestCount", Value: otpCount},
		{Key: "lastOtpRequest", Value: lastOtp},
	}
}

func TestForgotPassword_Store(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	uid := primitive.NewObjectID()

	mt.Run("under cap increments counter and dispatches otp", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "kiitquest.users", mtest.FirstBatch,
				userDoc(uid, "a@x.com", 3, time.Now().UTC().Add(-time.Hour))),
			mtest.CreateSuccessResponse(),
		)

		mailer := &recorderMailer{}
		r := newStoreAuthRouter(mt.Coll, mailer)

		w := postJSON(r, "/api/auth/forgot-password", `{"email":"a@x.com"}`)
		require.Equal(mt, http.StatusOK, w.Code)
		assert.Contains(mt, w.Body.String(), "If that email is registered")

		require.Equal(mt, 1, mailer.calls)
		require.Equal(mt, "a@x.com", mailer.to)
		require.Len(mt, mailer.otp, 4)

		cmd, ok := capturedUpdate(mt)
		require.True(mt, ok, "expected an update command")
		set := cmd.Updates[0].U.Set
		assert.EqualValues(mt, 4, set["otpRequestCount"])
		assert.Equal(mt, mailer.otp, set["resetPasswordOTP"])
		require.NotNil(mt, set["resetPasswordExpires"])
	})

	mt.Run("at cap returns 429 and leaves state alone", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "kiitquest.users", mtest.FirstBatch,
				userDoc(uid, "a@x.com", 15, time.Now().UTC().Add(-time.Hour))),
		)

		mailer := &recorderMailer{}
		r := newStoreAuthRouter(mt.Coll, mailer)

		w := postJSON(r, "/api/auth/forgot-password", `{"email":"a@x.com"}`)
		require.Equal(mt, http.StatusTooManyRequests, w.Code)

		require.Equal(mt, 0, mailer.calls)
		_, ok := capturedUpdate(mt)
		require.False(mt, ok, "quota rejection must not write")
	})

	mt.Run("stale window restarts the counter at one", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "kiitquest.users", mtest.FirstBatch,
				userDoc(uid, "a@x.com", 15, time.Now().UTC().Add(-25*time.Hour))),
			mtest.CreateSuccessResponse(),
		)

		mailer := &recorderMailer{}
		r := newStoreAuthRouter(mt.Coll, mailer)

		w := postJSON(r, "/api/auth/forgot-password", `{"email":"a@x.com"}`)
		require.Equal(mt, http.StatusOK, w.Code)

		cmd, ok := capturedUpdate(mt)
		require.True(mt, ok)
		assert.EqualValues(mt, 1, cmd.Updates[0].U.Set["otpRequestCount"])
	})

	mt.Run("unknown email answers the same generic body", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "kiitquest.users", mtest.FirstBatch),
		)

		mailer := &recorderMailer{}
		r := newStoreAuthRouter(mt.Coll, mailer)

		w := postJSON(r, "/api/auth/forgot-password", `{"email":"ghost@x.com"}`)
		require.Equal(mt, http.StatusOK, w.Code)
		assert.Contains(mt, w.Body.String(), "If that email is registered")
		require.Equal(mt, 0, mailer.calls)
	})
}

func TestResetPassword_Store(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	uid := primitive.NewObjectID()

	mt.Run("match rehashes and clears otp state", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "kiitquest.users", mtest.FirstBatch,
				userDoc(uid, "a@x.com", 5, time.Now().UTC().Add(-time.Minute))),
			mtest.CreateSuccessResponse(),
		)

		r := newStoreAuthRouter(mt.Coll, &recorderMailer{})

		w := postJSON(r, "/api/auth/reset-password",
			`{"email":"a@x.com","otp":"4821","newPassword":"secret2"}`)
		require.Equal(mt, http.StatusOK, w.Code)
		assert.Contains(mt, w.Body.String(), "Password reset successful")

		cmd, ok := capturedUpdate(mt)
		require.True(mt, ok)

		set := cmd.Updates[0].U.Set
		hash, isStr := set["password"].(string)
		require.True(mt, isStr)
		require.NotEqual(mt, "secret2", hash)
		require.NoError(mt, bcrypt.CompareHashAndPassword([]byte(hash), []byte("secret2")))

		unset := cmd.Updates[0].U.Unset
		assert.Contains(mt, unset, "resetPasswordOTP")
		assert.Contains(mt, unset, "resetPasswordExpires")
		// the daily quota tracks calendar time, not successful resets
		assert.NotContains(mt, set, "otpRequestCount")
		assert.NotContains(mt, unset, "otpRequestCount")
	})

	mt.Run("no match is invalid or expired", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "kiitquest.users", mtest.FirstBatch),
		)

		r := newStoreAuthRouter(mt.Coll, &recorderMailer{})

		w := postJSON(r, "/api/auth/reset-password",
			`{"email":"a@x.com","otp":"0000","newPassword":"secret2"}`)
		require.Equal(mt, http.StatusBadRequest, w.Code)
		assert.Contains(mt, w.Body.String(), "Invalid or expired OTP")

		_, ok := capturedUpdate(mt)
		require.False(mt, ok, "rejection must not write")
	})
}

func TestRegister_DuplicateKeyInsert(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("unique index violation maps to user exists", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "kiitquest.users", mtest.FirstBatch),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{
				Index:   0,
				Code:    11000,
				Message: "E11000 duplicate key error collection: kiitquest.users index: email_1",
			}),
		)

		r := newStoreAuthRouter(mt.Coll, &recorderMailer{})

		w := postJSON(r, "/api/auth/signup",
			`{"name":"A","email":"a@x.com","password":"secret1"}`)
		require.Equal(mt, http.StatusBadRequest, w.Code)
		assert.Contains(mt, w.Body.String(), "User already exists")
	})
}
