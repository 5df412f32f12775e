package handlers

import (
	"context"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/halalhustle/gatekeeper/internal/config"
	"github.com/halalhustle/gatekeeper/internal/models"
	"github.com/halalhustle/gatekeeper/internal/services"
)

const verifyButtonCommand = "!send_verify_button"

// MessageHandler routes inbound guild messages: the admin verify-button
// command first, everything else through the moderation engine.
type MessageHandler struct {
	cfg     *config.Config
	engine  *services.ModerationEngine
	actions *services.ModerationActions
	// scanner is nil unless attachment SafeSearch is enabled.
	scanner *services.AttachmentScanner
}

func NewMessageHandler(cfg *config.Config, engine *services.ModerationEngine, actions *services.ModerationActions, scanner *services.AttachmentScanner) *MessageHandler {
	return &MessageHandler{cfg: cfg, engine: engine, actions: actions, scanner: scanner}
}

func (h *MessageHandler) HandleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	defer recoverPanic("message")

	if m.GuildID != h.cfg.GuildID {
		return
	}

	// Only an administrator actually executes the command; anyone else
	// typing the same string is ordinary traffic and is judged below, so
	// the command text cannot be used to slip past the flood math.
	if m.Content == verifyButtonCommand && m.Author != nil && !m.Author.Bot && h.isAdministrator(s, m) {
		h.handleVerifyButtonCommand(s, m)
		return
	}

	input := services.MessageInput{
		UserID:    m.Author.ID,
		ChannelID: m.ChannelID,
		Content:   m.Content,
		FromBot:   s.State.User != nil && m.Author.ID == s.State.User.ID,
	}
	if m.Member != nil {
		input.RoleIDs = m.Member.Roles
	}

	// The verdict is complete before any network call happens.
	verdict := h.engine.Evaluate(input)

	ref := services.MessageRef{
		GuildID:   m.GuildID,
		ChannelID: m.ChannelID,
		MessageID: m.ID,
		UserID:    m.Author.ID,
	}
	h.actions.Apply(ref, verdict)

	// Attachment scanning applies only to messages the engine judged and
	// left alone; skipped traffic (allow-listed roles, other channels) is
	// exempt from moderation entirely.
	if h.scanner != nil && !verdict.Skipped && verdict.Action.Kind == models.ActionNone && len(m.Attachments) > 0 {
		urls := make([]string, 0, len(m.Attachments))
		for _, a := range m.Attachments {
			urls = append(urls, a.URL)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		h.scanner.Scan(ctx, ref, urls)
	}
}

func (h *MessageHandler) isAdministrator(s *discordgo.Session, m *discordgo.MessageCreate) bool {
	perms, err := s.State.UserChannelPermissions(m.Author.ID, m.ChannelID)
	if err != nil {
		log.Printf("[command] permission lookup failed user=%s err=%v", m.Author.ID, err)
		return false
	}
	return perms&discordgo.PermissionAdministrator != 0
}

// handleVerifyButtonCommand deletes the trigger message and posts the
// verification embed with its Verify button.
func (h *MessageHandler) handleVerifyButtonCommand(s *discordgo.Session, m *discordgo.MessageCreate) {
	if err := s.ChannelMessageDelete(m.ChannelID, m.ID); err != nil {
		log.Printf("[command] trigger delete failed message=%s err=%v", m.ID, err)
	}

	embed := &discordgo.MessageEmbed{
		Color: 0x2b6df3,
		Title: "✅ Verify Your Account",
		Description: "To get verified, please fill out the form including your **Name**, " +
			"**Email**, **Phone Number**, and **Country**.\n\nClick the **Verify** button below to begin.",
		Footer:    &discordgo.MessageEmbedFooter{Text: "Halal Ecom • Secure & Fast"},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	_, err := s.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						CustomID: verifyButtonID,
						Label:    "Verify",
						Style:    discordgo.SuccessButton,
					},
				},
			},
		},
	})
	if err != nil {
		log.Printf("[command] verify embed send failed channel=%s err=%v", m.ChannelID, err)
	}
}
