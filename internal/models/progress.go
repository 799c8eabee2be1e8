package models

// ProgressRecord holds one user's cumulative study statistics. The record is
// replaced wholesale on every update; accuracy is always derived from the two
// totals and never patched independently.
//
// JSON and BSON field names match the document shape stored per user.
type ProgressRecord struct {
	Completed              int    `json:"completed" bson:"completed"`
	TotalCorrectAnswers    int    `json:"totalCorrectAnswers" bson:"totalCorrectAnswers"`
	TotalQuestionsAnswered int    `json:"totalQuestionsAnswered" bson:"totalQuestionsAnswered"`
	Accuracy               int    `json:"accuracy" bson:"accuracy"`
	Streak                 int    `json:"streak" bson:"streak"`
	LastCompleted          string `json:"lastCompleted" bson:"lastCompleted"`
}
