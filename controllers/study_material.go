package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Abhishekdhal/kiit-quest-backend/models"
)

// StudyMaterialController serves notes, lab manuals, and assignments,
// keyed by the same taxonomy as the PYQ collection.
type StudyMaterialController struct {
	Materials *mongo.Collection
}

func NewStudyMaterialController(materials *mongo.Collection) *StudyMaterialController {
	return &StudyMaterialController{Materials: materials}
}

// GetSubjects lists subjects that have study materials available.
func (s *StudyMaterialController) GetSubjects(c *gin.Context) {
	runSubjectsQuery(c, s.Materials)
}

// GetFilesBySubject returns all material documents for a subject, sorted
// by category so the client can group them.
func (s *StudyMaterialController) GetFilesBySubject(c *gin.Context) {
	subjectID := strings.TrimSpace(c.Query("subjectId"))
	if subjectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Subject ID is required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}})
	cursor, err := s.Materials.Find(ctx, bson.M{"subjectId": subjectID}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not fetch files"})
		return
	}
	defer cursor.Close(ctx)

	files := []models.StudyMaterial{}
	if err := cursor.All(ctx, &files); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not decode files"})
		return
	}

	c.JSON(http.StatusOK, files)
}
