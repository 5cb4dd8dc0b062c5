package controllers

import (
	"context"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// PYQController serves previous-year papers filtered by the academic
// taxonomy (school/branch/semester/subject).
type PYQController struct {
	Papers *mongo.Collection
}

func NewPYQController(papers *mongo.Collection) *PYQController {
	return &PYQController{Papers: papers}
}

// anchoredFold builds a case-insensitive exact match for a taxonomy value.
// Branch names like "(CSE) Computer Science & Engineering" carry regex
// metacharacters, so the value is quoted.
func anchoredFold(s string) primitive.Regex {
	return primitive.Regex{
		Pattern: "^" + regexp.QuoteMeta(strings.TrimSpace(s)) + "$",
		Options: "i",
	}
}

// subjectsPipeline groups documents matching the taxonomy down to unique
// {id, name} subject pairs. Shared with the study-material controller,
// whose documents carry the same taxonomy fields.
func subjectsPipeline(school, branch, semester string) []bson.M {
	return []bson.M{
		{"$match": bson.M{
			"schoolName": anchoredFold(school),
			"branchName": anchoredFold(branch),
			"semester":   strings.TrimSpace(semester),
		}},
		{"$group": bson.M{
			"_id":  "$subjectId",
			"name": bson.M{"$first": "$subjectName"},
		}},
		{"$project": bson.M{
			"_id":  0,
			"id":   "$_id",
			"name": "$name",
		}},
	}
}

// runSubjectsQuery executes the pipeline and decodes into plain maps so
// the response keeps the projected {id, name} shape.
func runSubjectsQuery(c *gin.Context, col *mongo.Collection) {
	school := c.Query("school")
	branch := c.Query("branch")
	semester := c.Query("semester")

	if school == "" || branch == "" || semester == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide school, branch, and semester"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := col.Aggregate(ctx, subjectsPipeline(school, branch, semester))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not fetch subjects"})
		return
	}
	defer cursor.Close(ctx)

	subjects := []bson.M{}
	if err := cursor.All(ctx, &subjects); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not decode subjects"})
		return
	}

	c.JSON(http.StatusOK, subjects)
}

// GetSubjects lists subjects that have papers for the given taxonomy.
func (p *PYQController) GetSubjects(c *gin.Context) {
	runSubjectsQuery(c, p.Papers)
}

// GetYears lists the distinct years available for a subject.
func (p *PYQController) GetYears(c *gin.Context) {
	subjectID := strings.TrimSpace(c.Query("subjectId"))
	if subjectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Subject ID is required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	years, err := p.Papers.Distinct(ctx, "year", bson.M{"subjectId": subjectID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not fetch years"})
		return
	}

	c.JSON(http.StatusOK, years)
}

// GetFileURL resolves the stored file link for a subject, year, and paper
// type. Year matches both string and legacy int storage.
func (p *PYQController) GetFileURL(c *gin.Context) {
	subjectID := strings.TrimSpace(c.Query("subjectId"))
	year := strings.TrimSpace(c.Query("year"))
	paperType := strings.TrimSpace(c.Query("type"))

	if subjectID == "" || year == "" || paperType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Subject ID, Year, and Type are required"})
		return
	}

	yearOr := []bson.M{{"year": year}}
	if n, err := strconv.Atoi(year); err == nil {
		yearOr = append(yearOr, bson.M{"year": n})
	}

	filter := bson.M{
		"subjectId": subjectID,
		"type":      paperType,
		"$or":       yearOr,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var doc struct {
		FileURL string `bson:"fileUrl"`
	}
	err := p.Papers.FindOne(ctx, filter).Decode(&doc)
	if err != nil || doc.FileURL == "" {
		c.JSON(http.StatusNotFound, gin.H{"message": "Paper not found for " + year + " " + paperType})
		return
	}

	c.JSON(http.StatusOK, gin.H{"fileUrl": doc.FileURL})
}
