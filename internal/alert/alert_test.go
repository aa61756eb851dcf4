package alert

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	slackapi "github.com/slack-go/slack"
	"github.com/zulandar/attendant/internal/models"
)

type mockSlackClient struct {
	channels []string
	err      error
}

func (m *mockSlackClient) PostMessageContext(_ context.Context, channelID string, _ ...slackapi.MsgOption) (string, string, error) {
	m.channels = append(m.channels, channelID)
	return channelID, "123.456", m.err
}

type mockDiscordSession struct {
	embeds []*discordgo.MessageEmbed
	err    error
}

func (m *mockDiscordSession) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.embeds = append(m.embeds, embed)
	if m.err != nil {
		return nil, m.err
	}
	return &discordgo.Message{ChannelID: channelID}, nil
}

func sampleEscalation() Escalation {
	return Escalation{
		ConversationID: "3b241101-e2bb-4255-8caf-4136c566a962",
		UserNumber:     "+5511999990001",
		Domain:         "pharmacy",
		Sentiment:      "NEGATIVO",
		Score:          -0.7,
		Reason:         "negative sentiment",
	}
}

func TestFormat(t *testing.T) {
	text := Format(sampleEscalation())
	for _, want := range []string{"+5511999990001", "pharmacy", "NEGATIVO (-0.70)", "negative sentiment"} {
		if !strings.Contains(text, want) {
			t.Errorf("Format missing %q:\n%s", want, text)
		}
	}
}

func TestFormat_NoSentiment(t *testing.T) {
	e := sampleEscalation()
	e.Sentiment = ""
	if strings.Contains(Format(e), "Sentiment:") {
		t.Error("Format should omit sentiment line when unset")
	}
}

func TestSlackNotifier(t *testing.T) {
	client := &mockSlackClient{}
	n, err := NewSlack(SlackOpts{Client: client, ChannelID: "C123"})
	if err != nil {
		t.Fatalf("NewSlack: %v", err)
	}
	if err := n.Escalate(context.Background(), sampleEscalation()); err != nil {
		t.Fatalf("Escalate: %v", err)
	}
	if len(client.channels) != 1 || client.channels[0] != "C123" {
		t.Errorf("posted channels = %v", client.channels)
	}
}

func TestSlackNotifier_Validation(t *testing.T) {
	if _, err := NewSlack(SlackOpts{ChannelID: "C123"}); err == nil {
		t.Error("expected error for missing token")
	}
	if _, err := NewSlack(SlackOpts{Client: &mockSlackClient{}}); err == nil {
		t.Error("expected error for missing channel")
	}
}

func TestDiscordNotifier(t *testing.T) {
	sess := &mockDiscordSession{}
	n, err := NewDiscord(DiscordOpts{Session: sess, ChannelID: "987"})
	if err != nil {
		t.Fatalf("NewDiscord: %v", err)
	}
	if err := n.Escalate(context.Background(), sampleEscalation()); err != nil {
		t.Fatalf("Escalate: %v", err)
	}
	if len(sess.embeds) != 1 {
		t.Fatalf("embeds sent = %d, want 1", len(sess.embeds))
	}
	if !strings.Contains(sess.embeds[0].Description, "+5511999990001") {
		t.Errorf("embed description = %q", sess.embeds[0].Description)
	}
}

func TestMulti_DeliversToAllAndReturnsFirstError(t *testing.T) {
	failing := &mockSlackClient{err: fmt.Errorf("slack down")}
	sNotifier, _ := NewSlack(SlackOpts{Client: failing, ChannelID: "C1"})
	dSess := &mockDiscordSession{}
	dNotifier, _ := NewDiscord(DiscordOpts{Session: dSess, ChannelID: "987"})

	m := Multi{sNotifier, dNotifier}
	err := m.Escalate(context.Background(), sampleEscalation())
	if err == nil {
		t.Fatal("expected first error to propagate")
	}
	if len(dSess.embeds) != 1 {
		t.Error("discord delivery should still happen after slack failure")
	}
}

func TestFromConversation(t *testing.T) {
	sentiment := models.SentimentNegative
	score := -0.9
	conv := &models.Conversation{
		ID:             "id-1",
		UserNumber:     "+5511988887777",
		Domain:         "mechanic",
		Sentiment:      &sentiment,
		SentimentScore: &score,
	}
	e := FromConversation(conv, "escalation phrase in reply")
	if e.Sentiment != models.SentimentNegative || e.Score != -0.9 {
		t.Errorf("escalation = %+v", e)
	}
	if e.Reason != "escalation phrase in reply" {
		t.Errorf("reason = %q", e.Reason)
	}
}
