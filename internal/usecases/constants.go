package usecases

// Client-facing messages.
const (
	MsgAllFieldsRequired = "All fields are required."
	MsgInvalidEmail      = "Invalid email format."
	MsgMemberExists      = "A member with this username or email already exists."
	MsgMemberNotFound    = "Member not found"
	MsgInvalidSortColumn = "Invalid sortColumn."
	MsgInvalidSortOrder  = "Invalid sortOrder."
)
