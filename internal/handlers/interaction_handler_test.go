package handlers

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"

	"github.com/halalhustle/gatekeeper/internal/config"
	"github.com/halalhustle/gatekeeper/internal/models"
)

func TestModalValue(t *testing.T) {
	data := discordgo.ModalSubmitInteractionData{
		CustomID: verifyFormID,
		Components: []discordgo.MessageComponent{
			&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				&discordgo.TextInput{CustomID: "name", Value: "Jane Doe"},
			}},
			&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				&discordgo.TextInput{CustomID: "email", Value: "jane@example.com"},
			}},
		},
	}

	assert.Equal(t, "Jane Doe", modalValue(data, "name"))
	assert.Equal(t, "jane@example.com", modalValue(data, "email"))
	assert.Equal(t, "", modalValue(data, "missing"))
}

func TestInteractionUserPrefersGuildMember(t *testing.T) {
	member := &discordgo.Member{User: &discordgo.User{ID: "u-guild"}}
	i := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Member: member,
		User:   &discordgo.User{ID: "u-dm"},
	}}
	assert.Equal(t, "u-guild", interactionUser(i).ID)

	i.Member = nil
	assert.Equal(t, "u-dm", interactionUser(i).ID)
}

func TestReplyForCoversEveryOutcome(t *testing.T) {
	h := NewInteractionHandler(&config.Config{FreeSessionChannelID: "c-promo"}, nil)

	assert.Contains(t, h.replyFor(models.VerificationOutcome{Kind: models.OutcomeRoleGranted}), "<#c-promo>")
	assert.Contains(t, h.replyFor(models.VerificationOutcome{
		Kind: models.OutcomeValidationFailed, Field: "email",
	}), "Invalid email")
	assert.Contains(t, h.replyFor(models.VerificationOutcome{
		Kind: models.OutcomeValidationFailed, Field: "phone",
	}), "Invalid phone")
	assert.Contains(t, h.replyFor(models.VerificationOutcome{
		Kind: models.OutcomeValidationFailed, Field: "country",
	}), "Invalid country")
	assert.Contains(t, h.replyFor(models.VerificationOutcome{
		Kind: models.OutcomeExternalSubmissionFailed,
	}), "no role has been assigned")
	assert.Contains(t, h.replyFor(models.VerificationOutcome{
		Kind: models.OutcomeRoleGrantFailed,
	}), "contact a moderator")
}
