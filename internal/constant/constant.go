package constant

// SessionWord lifecycle status values. Stored as integers so the ordering
// queries stay trivial and the API stays compatible with existing clients.
const (
	SessionWordPending   = 0
	SessionWordCompleted = 1
	SessionWordSkipped   = -1
)

// Word mastery categories derived from the continuous confidence score.
const (
	WordStatusMastered      = "Mastered"
	WordStatusReviewing     = "Reviewing"
	WordStatusLearning      = "Learning"
	WordStatusNeedsRevision = "Needs Revision"
)

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"
	ChatMessageRoleTool      = "tool"
)
