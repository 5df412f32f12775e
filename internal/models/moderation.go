package models

import "time"

// MessageRecord is one entry in a user's recent-message window. Records are
// owned by the rate tracker and discarded once they age out of the window.
type MessageRecord struct {
	Content   string
	Timestamp time.Time
}

// ActionKind tags the moderation decision for a single message.
type ActionKind string

const (
	ActionNone          ActionKind = "none"
	ActionDeleteAndWarn ActionKind = "delete_and_warn"
	ActionDeleteAndMute ActionKind = "delete_and_mute"
)

// ModerationAction is the engine's verdict for one message. Produced once,
// consumed once by the executor, never persisted.
type ModerationAction struct {
	Kind         ActionKind
	Reason       string
	MuteDuration time.Duration
}

func NoAction() ModerationAction {
	return ModerationAction{Kind: ActionNone}
}

func DeleteAndWarn(reason string) ModerationAction {
	return ModerationAction{Kind: ActionDeleteAndWarn, Reason: reason}
}

func DeleteAndMute(reason string, d time.Duration) ModerationAction {
	return ModerationAction{Kind: ActionDeleteAndMute, Reason: reason, MuteDuration: d}
}
