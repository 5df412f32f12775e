package models

// APIResponse is a generic API response wrapper
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Data:    data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(message string) APIResponse {
	return APIResponse{
		Success: false,
		Error:   message,
	}
}

// StatsResponse is the ops API view of the moderation engine since process
// start. Counters reset on restart; history is deliberately not persisted.
type StatsResponse struct {
	TrackedUsers  int              `json:"tracked_users"`
	MessagesSeen  int64            `json:"messages_seen"`
	ActionsByKind map[string]int64 `json:"actions_by_kind"`
	CTANotices    int64            `json:"cta_notices"`
}
