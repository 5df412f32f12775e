package services

import (
	"log"
	"sync"
	"time"

	"github.com/halalhustle/gatekeeper/internal/models"
)

// MessageInput is everything the engine needs to judge one inbound message.
type MessageInput struct {
	UserID    string
	ChannelID string
	Content   string
	FromBot   bool
	RoleIDs   []string
}

// Verdict is the engine's complete output for one message: the punitive
// action (possibly none) and whether a promotional call-to-action notice
// should be posted alongside it. Skipped marks trusted traffic the engine
// never judged at all, as opposed to a message judged clean — downstream
// checks (attachment scanning) must not touch skipped traffic.
type Verdict struct {
	Action    models.ModerationAction
	CTANotice bool
	Skipped   bool
}

// ModerationEngine composes the rate tracker and the text classifiers into
// one decision per message. Evaluate is pure in-memory work; it performs no
// I/O, so the verdict for message N is complete before message N+1 from the
// same user can observe the tracker.
type ModerationEngine struct {
	tracker *RateWindowTracker

	monitoredChannel string
	allowlist        map[string]bool

	maxMessages  int
	maxLength    int
	muteDuration time.Duration

	// Punitive prohibited-phrase handling is off unless explicitly enabled;
	// the upstream policy for it was never settled.
	deleteOnProhibitedPhrase bool

	mu           sync.Mutex
	messagesSeen int64
	actionCounts map[models.ActionKind]int64
	ctaNotices   int64
}

type ModerationEngineConfig struct {
	MonitoredChannelID       string
	AllowlistedRoleIDs       []string
	MaxMessages              int
	MaxLength                int
	MuteDuration             time.Duration
	DeleteOnProhibitedPhrase bool
}

func NewModerationEngine(tracker *RateWindowTracker, cfg ModerationEngineConfig) *ModerationEngine {
	allow := make(map[string]bool, len(cfg.AllowlistedRoleIDs))
	for _, id := range cfg.AllowlistedRoleIDs {
		allow[id] = true
	}
	return &ModerationEngine{
		tracker:                  tracker,
		monitoredChannel:         cfg.MonitoredChannelID,
		allowlist:                allow,
		maxMessages:              cfg.MaxMessages,
		maxLength:                cfg.MaxLength,
		muteDuration:             cfg.MuteDuration,
		deleteOnProhibitedPhrase: cfg.DeleteOnProhibitedPhrase,
		actionCounts:             make(map[models.ActionKind]int64),
	}
}

// Evaluate judges one message. Trusted traffic (the bot itself, other
// channels, allow-listed roles) is skipped without consuming a tracker slot
// so it never distorts the flood math. A message is judged exactly once;
// executor failures downstream never re-enter the engine.
func (e *ModerationEngine) Evaluate(in MessageInput) Verdict {
	if in.FromBot || in.ChannelID != e.monitoredChannel || e.holdsAllowlistedRole(in.RoleIDs) {
		return Verdict{Action: models.NoAction(), Skipped: true}
	}

	e.count(func() { e.messagesSeen++ })

	// A single link post is punished regardless of burst context; the
	// message is already gone, so it never enters the window.
	if ContainsLink(in.Content) {
		return e.verdict(models.DeleteAndWarn("posting links is not allowed"), false)
	}

	if e.deleteOnProhibitedPhrase && ContainsProhibitedPhrase(in.Content) {
		return e.verdict(models.DeleteAndWarn("solicitation is not allowed"), false)
	}

	// Non-punitive: the notice rides along with whatever the flood checks
	// decide below.
	cta := ContainsCallToAction(in.Content)
	if cta {
		e.count(func() { e.ctaNotices++ })
	}

	window := e.tracker.Record(in.UserID, in.Content)

	oversized := IsOversized(in.Content, e.maxLength)
	repeated := IsDuplicateWithinWindow(in.Content, window)
	flooding := len(window) >= e.maxMessages

	if oversized || repeated || flooding {
		// Clear the burst so the residue cannot retrigger on the next
		// message after the mute.
		e.tracker.Reset(in.UserID)
		log.Printf("[moderation] spam trigger user=%s oversized=%v repeated=%v flooding=%v window=%d",
			in.UserID, oversized, repeated, flooding, len(window))
		return e.verdict(models.DeleteAndMute("Spam / Flooding detected", e.muteDuration), cta)
	}

	return e.verdict(models.NoAction(), cta)
}

// Stats snapshots the engine counters for the ops API.
func (e *ModerationEngine) Stats() models.StatsResponse {
	e.mu.Lock()
	defer e.mu.Unlock()
	byKind := make(map[string]int64, len(e.actionCounts))
	for k, v := range e.actionCounts {
		byKind[string(k)] = v
	}
	return models.StatsResponse{
		TrackedUsers:  e.tracker.TrackedUsers(),
		MessagesSeen:  e.messagesSeen,
		ActionsByKind: byKind,
		CTANotices:    e.ctaNotices,
	}
}

func (e *ModerationEngine) holdsAllowlistedRole(roleIDs []string) bool {
	for _, id := range roleIDs {
		if e.allowlist[id] {
			return true
		}
	}
	return false
}

func (e *ModerationEngine) verdict(action models.ModerationAction, cta bool) Verdict {
	e.count(func() { e.actionCounts[action.Kind]++ })
	return Verdict{Action: action, CTANotice: cta}
}

func (e *ModerationEngine) count(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn()
}
