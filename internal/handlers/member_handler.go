package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/halalhustle/gatekeeper/internal/config"
	"github.com/halalhustle/gatekeeper/internal/services"
)

// MemberHandler puts new members behind the unverified role and points them
// at the verification channel.
type MemberHandler struct {
	cfg   *config.Config
	roles *services.RoleGrantGuard
}

func NewMemberHandler(cfg *config.Config, roles *services.RoleGrantGuard) *MemberHandler {
	return &MemberHandler{cfg: cfg, roles: roles}
}

func (h *MemberHandler) HandleGuildMemberAdd(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	defer recoverPanic("member")

	if m.GuildID != h.cfg.GuildID {
		return
	}

	if err := h.roles.AssignUnverified(context.Background(), m.User.ID); err != nil {
		log.Printf("[member] unverified role failed user=%s err=%v", m.User.ID, err)
	}

	welcome := fmt.Sprintf(`👋 Welcome to Halal Hustle
🔓 Unlock full access in 30 seconds
Complete the quick verification below.
👉 Verify now: <#%s>
✅ Instant access to all channels + free value
🔒 Verification keeps the community safe
⚠️ We never DM for payments or passwords`, h.cfg.FreeChannelID)

	dm, err := s.UserChannelCreate(m.User.ID)
	if err != nil {
		// Closed DMs are the user's choice, not an error worth surfacing.
		log.Printf("[member] dm channel failed user=%s err=%v", m.User.ID, err)
		return
	}
	if _, err := s.ChannelMessageSend(dm.ID, welcome); err != nil {
		log.Printf("[member] welcome dm failed user=%s err=%v", m.User.ID, err)
	}
}
