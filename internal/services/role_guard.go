package services

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
)

// RoleSession is the slice of the Discord session the role guard needs.
// *discordgo.Session satisfies it.
type RoleSession interface {
	GuildMemberRoleAdd(guildID, userID, roleID string, options ...discordgo.RequestOption) error
	GuildMemberRoleRemove(guildID, userID, roleID string, options ...discordgo.RequestOption) error
}

// RoleGrantGuard is the only component allowed to mutate verification roles.
// Callers invoke Grant exactly when the external submission reported
// success; a Grant error must surface to the user as a failed outcome, never
// be swallowed into a success reply.
type RoleGrantGuard struct {
	session          RoleSession
	guildID          string
	verifyRoleID     string
	unverifiedRoleID string
}

func NewRoleGrantGuard(session RoleSession, guildID, verifyRoleID, unverifiedRoleID string) *RoleGrantGuard {
	return &RoleGrantGuard{
		session:          session,
		guildID:          guildID,
		verifyRoleID:     verifyRoleID,
		unverifiedRoleID: unverifiedRoleID,
	}
}

// Grant adds the verified role and removes the unverified role (when one is
// configured). Both calls are idempotent on the platform side, so a retry
// on the user's next attempt is safe.
func (g *RoleGrantGuard) Grant(ctx context.Context, userID string) error {
	if err := g.session.GuildMemberRoleAdd(g.guildID, userID, g.verifyRoleID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("role guard: add verified: %w", err)
	}
	if g.unverifiedRoleID != "" {
		if err := g.session.GuildMemberRoleRemove(g.guildID, userID, g.unverifiedRoleID, discordgo.WithContext(ctx)); err != nil {
			return fmt.Errorf("role guard: remove unverified: %w", err)
		}
	}
	log.Printf("[verify] roles updated user=%s", userID)
	return nil
}

// AssignUnverified puts the default restrictive role on a new member.
func (g *RoleGrantGuard) AssignUnverified(ctx context.Context, userID string) error {
	if g.unverifiedRoleID == "" {
		return nil
	}
	if err := g.session.GuildMemberRoleAdd(g.guildID, userID, g.unverifiedRoleID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("role guard: add unverified: %w", err)
	}
	return nil
}
