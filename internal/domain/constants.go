package domain

// Default booking policy values
const (
	DefaultAdvanceBookingDays       = 30
	DefaultMinBookingNoticeMinutes  = 120
	DefaultCancellationLeadMinutes  = 120
	DefaultAutoConfirmWindowMinutes = 30
)

// Business validation constants
const (
	MinRating                   = 1
	MaxRating                   = 5
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxFeedbackCommentLength    = 1000
	MaxAdvanceBookingDays       = 365
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses статусы, которые занимают слот
var BlockingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
