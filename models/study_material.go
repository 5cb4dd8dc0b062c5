package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Study material categories.
const (
	CategoryNotes      = "Notes"
	CategoryLabManual  = "Lab Manual"
	CategoryAssignment = "Assignment"
	CategoryOthers     = "Others"
)

// StudyMaterial mirrors the PYQ taxonomy fields plus a title and category.
// Stored in the "studymaterials" collection.
type StudyMaterial struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SubjectName string             `bson:"subjectName" json:"subjectName"`
	SubjectID   string             `bson:"subjectId" json:"subjectId"`
	SchoolName  string             `bson:"schoolName" json:"schoolName"`
	BranchName  string             `bson:"branchName" json:"branchName"`
	Semester    string             `bson:"semester" json:"semester"`
	Title       string             `bson:"title" json:"title"`
	Category    string             `bson:"category" json:"category"`
	FileURL     string             `bson:"fileUrl" json:"fileUrl"`
	CreatedAt   time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt   time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
