package submit_feedback

// SubmitFeedbackRequest HTTP request model
type SubmitFeedbackRequest struct {
	Rating  int    `json:"rating"` // 1..5
	Comment string `json:"comment,omitempty"`
}
