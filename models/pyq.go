package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// PYQ is one previous-year question paper. Year is stored as a string in
// most documents but some legacy rows hold an int, which the file-url
// lookup accounts for.
type PYQ struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SchoolName  string             `bson:"schoolName" json:"schoolName"`
	BranchName  string             `bson:"branchName" json:"branchName"`
	Semester    string             `bson:"semester" json:"semester"`
	SubjectID   string             `bson:"subjectId" json:"subjectId"`
	SubjectName string             `bson:"subjectName" json:"subjectName"`
	Year        string             `bson:"year" json:"year"`
	Type        string             `bson:"type" json:"type"` // "Midsem" or "Endsem"
	FileURL     string             `bson:"fileUrl" json:"fileUrl"`
}
