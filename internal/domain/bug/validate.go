package bug

import "strings"

// Validation messages are part of the client contract: the console
// shows them verbatim, and the HTTP layer returns them in 400 bodies.
const (
	MsgTitleRequired       = "Title is required"
	MsgTitleTooShort       = "Title must be at least 5 characters"
	MsgDescriptionRequired = "Description is required"
	MsgDescriptionTooShort = "Description must be at least 10 characters"
	MsgInvalidStatus       = "Invalid status"
	MsgInvalidPriority     = "Invalid priority"
)

// Candidate is a bug as submitted, before any defaulting. Status and
// Priority are raw strings so that unknown values can be rejected
// rather than coerced; empty means "not supplied, use the default".
type Candidate struct {
	Title       string
	Description string
	Priority    string
	Status      string
}

// Result carries every violation found; nothing short-circuits, so a
// submission with a short title and a bad priority reports both.
type Result struct {
	Valid       bool
	FieldErrors map[string]string
}

// fieldOrder fixes the order in which PrimaryError picks a message.
var fieldOrder = []string{"title", "description", "priority", "status"}

// Validate applies the field rules shared by the console's pre-submit
// check and the server's authoritative persistence-time check.
func Validate(c Candidate) Result {
	fieldErrors := make(map[string]string)

	title := strings.TrimSpace(c.Title)
	switch {
	case title == "":
		fieldErrors["title"] = MsgTitleRequired
	case len([]rune(title)) < TitleMinLen:
		fieldErrors["title"] = MsgTitleTooShort
	}

	description := strings.TrimSpace(c.Description)
	switch {
	case description == "":
		fieldErrors["description"] = MsgDescriptionRequired
	case len([]rune(description)) < DescriptionMinLen:
		fieldErrors["description"] = MsgDescriptionTooShort
	}

	if c.Priority != "" && !Priority(c.Priority).Valid() {
		fieldErrors["priority"] = MsgInvalidPriority
	}
	if c.Status != "" && !Status(c.Status).Valid() {
		fieldErrors["status"] = MsgInvalidStatus
	}

	return Result{
		Valid:       len(fieldErrors) == 0,
		FieldErrors: fieldErrors,
	}
}

// Err converts a failed result into a *ValidationError. It returns
// either nil (valid result) or a *ValidationError, never another
// error type.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return &ValidationError{FieldErrors: r.FieldErrors}
}
