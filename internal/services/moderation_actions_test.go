package services

import (
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/mock"

	"github.com/halalhustle/gatekeeper/internal/models"
)

type mockSession struct{ mock.Mock }

func (m *mockSession) ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error {
	return m.Called(channelID, messageID).Error(0)
}

func (m *mockSession) ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(channelID, content)
	if msg, _ := args.Get(0).(*discordgo.Message); msg != nil {
		return msg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSession) GuildMemberTimeout(guildID, userID string, until *time.Time, options ...discordgo.RequestOption) error {
	return m.Called(guildID, userID, until).Error(0)
}

func (m *mockSession) UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	args := m.Called(recipientID)
	if ch, _ := args.Get(0).(*discordgo.Channel); ch != nil {
		return ch, args.Error(1)
	}
	return nil, args.Error(1)
}

func testRef() MessageRef {
	return MessageRef{GuildID: "g1", ChannelID: "c1", MessageID: "m1", UserID: "u1"}
}

func TestApplyNoneDoesNothing(t *testing.T) {
	session := &mockSession{}
	a := NewModerationActions(session, "c-promo")

	a.Apply(testRef(), Verdict{Action: models.NoAction()})

	session.AssertNotCalled(t, "ChannelMessageDelete")
	session.AssertNotCalled(t, "ChannelMessageSend")
}

func TestApplyDeleteAndWarn(t *testing.T) {
	session := &mockSession{}
	a := NewModerationActions(session, "c-promo")

	session.On("ChannelMessageDelete", "c1", "m1").Return(nil)
	session.On("ChannelMessageSend", "c1", "<@u1>, posting links is not allowed here!").
		Return(&discordgo.Message{}, nil)

	a.Apply(testRef(), Verdict{Action: models.DeleteAndWarn("posting links is not allowed")})

	session.AssertExpectations(t)
	session.AssertNotCalled(t, "GuildMemberTimeout")
}

func TestApplyDeleteAndMute(t *testing.T) {
	session := &mockSession{}
	a := NewModerationActions(session, "c-promo")
	now := time.Unix(1_700_000_000, 0)
	a.now = func() time.Time { return now }

	session.On("ChannelMessageDelete", "c1", "m1").Return(nil)
	session.On("GuildMemberTimeout", "g1", "u1", mock.MatchedBy(func(until *time.Time) bool {
		return until.Equal(now.Add(15 * time.Minute))
	})).Return(nil)
	session.On("UserChannelCreate", "u1").Return(&discordgo.Channel{ID: "dm1"}, nil)
	session.On("ChannelMessageSend", "dm1", mock.Anything).Return(&discordgo.Message{}, nil)

	a.Apply(testRef(), Verdict{Action: models.DeleteAndMute("Spam / Flooding detected", 15*time.Minute)})

	session.AssertExpectations(t)
}

func TestApplyCTANoticeAlone(t *testing.T) {
	session := &mockSession{}
	a := NewModerationActions(session, "c-promo")

	session.On("ChannelMessageSend", "c1", "🚀 Join the free live session → <#c-promo>").
		Return(&discordgo.Message{}, nil)

	a.Apply(testRef(), Verdict{Action: models.NoAction(), CTANotice: true})

	session.AssertExpectations(t)
	session.AssertNotCalled(t, "ChannelMessageDelete")
}

func TestApplySwallowsPlatformErrors(t *testing.T) {
	session := &mockSession{}
	a := NewModerationActions(session, "c-promo")

	session.On("ChannelMessageDelete", "c1", "m1").Return(errors.New("missing permission"))
	session.On("GuildMemberTimeout", "g1", "u1", mock.Anything).Return(errors.New("hierarchy"))
	session.On("UserChannelCreate", "u1").Return(nil, errors.New("dms closed"))

	// Must not panic and must attempt every step despite failures.
	a.Apply(testRef(), Verdict{Action: models.DeleteAndMute("Spam / Flooding detected", time.Minute)})

	session.AssertExpectations(t)
}
