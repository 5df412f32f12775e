package services

import (
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/halalhustle/gatekeeper/internal/models"
)

// ModerationSession is the slice of the Discord session the executor needs.
// *discordgo.Session satisfies it.
type ModerationSession interface {
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	GuildMemberTimeout(guildID, userID string, until *time.Time, options ...discordgo.RequestOption) error
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
}

// MessageRef locates the message a verdict applies to.
type MessageRef struct {
	GuildID   string
	ChannelID string
	MessageID string
	UserID    string
}

// ModerationActions executes verdicts against the platform. Every call here
// is best-effort: a failed delete or mute is logged and swallowed, never
// escalated back into the engine — the message was judged once and that
// judgement stands.
type ModerationActions struct {
	session              ModerationSession
	freeSessionChannelID string
	now                  func() time.Time
}

func NewModerationActions(session ModerationSession, freeSessionChannelID string) *ModerationActions {
	return &ModerationActions{
		session:              session,
		freeSessionChannelID: freeSessionChannelID,
		now:                  time.Now,
	}
}

// Apply performs the side effects a verdict calls for.
func (m *ModerationActions) Apply(ref MessageRef, v Verdict) {
	if v.CTANotice {
		m.sendChannel(ref.ChannelID,
			fmt.Sprintf("🚀 Join the free live session → <#%s>", m.freeSessionChannelID))
	}

	switch v.Action.Kind {
	case models.ActionNone:
		return

	case models.ActionDeleteAndWarn:
		m.deleteMessage(ref)
		m.sendChannel(ref.ChannelID,
			fmt.Sprintf("<@%s>, %s here!", ref.UserID, v.Action.Reason))

	case models.ActionDeleteAndMute:
		m.deleteMessage(ref)
		m.timeout(ref, v.Action.Reason, v.Action.MuteDuration)
		m.directMessage(ref.UserID, fmt.Sprintf(
			"⚠️ You've been temporarily muted for %d minutes due to spam or flooding.",
			int(v.Action.MuteDuration.Minutes())))
	}
}

func (m *ModerationActions) deleteMessage(ref MessageRef) {
	if err := m.session.ChannelMessageDelete(ref.ChannelID, ref.MessageID); err != nil {
		log.Printf("[moderation] delete failed channel=%s message=%s err=%v", ref.ChannelID, ref.MessageID, err)
	}
}

func (m *ModerationActions) timeout(ref MessageRef, reason string, d time.Duration) {
	until := m.now().Add(d)
	if err := m.session.GuildMemberTimeout(ref.GuildID, ref.UserID, &until); err != nil {
		log.Printf("[moderation] timeout failed user=%s reason=%q err=%v", ref.UserID, reason, err)
	}
}

func (m *ModerationActions) sendChannel(channelID, content string) {
	if _, err := m.session.ChannelMessageSend(channelID, content); err != nil {
		log.Printf("[moderation] channel send failed channel=%s err=%v", channelID, err)
	}
}

func (m *ModerationActions) directMessage(userID, content string) {
	dm, err := m.session.UserChannelCreate(userID)
	if err != nil {
		// Closed DMs are common; nothing to do.
		log.Printf("[moderation] dm channel failed user=%s err=%v", userID, err)
		return
	}
	m.sendChannel(dm.ID, content)
}
