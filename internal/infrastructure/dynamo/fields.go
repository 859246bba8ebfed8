package dynamo

// DynamoDB attribute and index names shared by the repos and Bootstrap.
const (
	fieldUserID     = "user_id"
	fieldBookmarkID = "bookmark_id"
	fieldEmail      = "email"
	fieldUsername   = "username"

	indexEmail    = "email-index"
	indexUsername = "username-index"

	// Prefixes of the marker items that reserve a unique email or username in
	// the users table. Markers carry only user_id and owner, so they stay out
	// of both GSIs.
	markerEmail    = "email#"
	markerUsername = "username#"
	fieldOwner     = "owner_id"
)
