package handlers

import (
	"context"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"github.com/halalhustle/gatekeeper/internal/config"
	"github.com/halalhustle/gatekeeper/internal/models"
	"github.com/halalhustle/gatekeeper/internal/services"
)

const (
	verifyButtonID = "verify_button"
	verifyFormID   = "verify_form"
)

// InteractionHandler drives the verification workflow: the Verify button
// opens the modal form, the modal submission runs the pipeline and sends
// the single ephemeral reply.
type InteractionHandler struct {
	cfg      *config.Config
	workflow *services.VerificationWorkflow
}

func NewInteractionHandler(cfg *config.Config, workflow *services.VerificationWorkflow) *InteractionHandler {
	return &InteractionHandler{cfg: cfg, workflow: workflow}
}

func (h *InteractionHandler) HandleInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	defer recoverPanic("interaction")

	switch i.Type {
	case discordgo.InteractionMessageComponent:
		if i.MessageComponentData().CustomID == verifyButtonID {
			h.showForm(s, i)
		}
	case discordgo.InteractionModalSubmit:
		if i.ModalSubmitData().CustomID == verifyFormID {
			h.handleFormSubmit(s, i)
		}
	}
}

func (h *InteractionHandler) showForm(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: verifyFormID,
			Title:    "Verification Form",
			Components: []discordgo.MessageComponent{
				textInputRow("name", "Full Name", "Enter your full name", true),
				textInputRow("email", "Email Address", "example@email.com", true),
				textInputRow("phone", "Phone Number", "+1 234 567 890", true),
				textInputRow("country", "Country", "Your country", true),
				textInputRow("ecom", "Investment budget (optional)", "$0-$500 / $500-$2500 / $2500-$5000 / $5000-$10000+", false),
			},
		},
	})
	if err != nil {
		log.Printf("[verify] show modal failed user=%s err=%v", interactionUserID(i), err)
	}
}

func (h *InteractionHandler) handleFormSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	// Defer first: the pipeline makes up to three network calls and the
	// interaction token only waits a few seconds for an initial response.
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	})
	if err != nil {
		log.Printf("[verify] defer failed user=%s err=%v", interactionUserID(i), err)
		return
	}

	data := i.ModalSubmitData()
	user := interactionUser(i)
	sub := models.VerificationSubmission{
		TraceID:        uuid.New().String(),
		Name:           modalValue(data, "name"),
		Email:          modalValue(data, "email"),
		Phone:          modalValue(data, "phone"),
		Country:        modalValue(data, "country"),
		IncomeBand:     modalValue(data, "ecom"),
		DiscordUserTag: user.String(),
		DiscordUserID:  user.ID,
		SubmittedAt:    time.Now().UTC(),
	}

	outcome := h.workflow.Run(context.Background(), sub)

	// The role mutation (if any) has already completed; only now does the
	// user hear about the result.
	content := h.replyFor(outcome)
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &content}); err != nil {
		log.Printf("[verify] reply edit failed trace=%s err=%v", sub.TraceID, err)
	}
}

func (h *InteractionHandler) replyFor(outcome models.VerificationOutcome) string {
	switch outcome.Kind {
	case models.OutcomeRoleGranted:
		return "✅ Success! Don't miss the <#" + h.cfg.FreeSessionChannelID + ">"
	case models.OutcomeValidationFailed:
		switch outcome.Field {
		case "email":
			return "❌ Invalid email address. Please try again using a valid email format."
		case "phone":
			return "❌ Invalid phone number. Please try again with your full number."
		default:
			return "❌ Invalid " + outcome.Field + ". Please press Verify and try again."
		}
	case models.OutcomeRoleGrantFailed:
		return "⚠️ Your form was received but we couldn't update your roles. Please contact a moderator."
	default:
		return "⚠️ Could not submit your form. Please try again later — no role has been assigned."
	}
}

func textInputRow(id, label, placeholder string, required bool) discordgo.ActionsRow {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.TextInput{
				CustomID:    id,
				Label:       label,
				Style:       discordgo.TextInputShort,
				Placeholder: placeholder,
				Required:    required,
			},
		},
	}
}

// modalValue extracts a text input's value from the submitted modal rows.
func modalValue(data discordgo.ModalSubmitInteractionData, customID string) string {
	for _, row := range data.Components {
		ar, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, c := range ar.Components {
			if ti, ok := c.(*discordgo.TextInput); ok && ti.CustomID == customID {
				return ti.Value
			}
		}
	}
	return ""
}

// interactionUser handles both guild interactions (Member set) and DM
// interactions (User set).
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if u := interactionUser(i); u != nil {
		return u.ID
	}
	return ""
}
