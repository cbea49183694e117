package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
)

type mockDiscordSession struct {
	err    error
	embeds []*discordgo.MessageEmbed
}

func (m *mockDiscordSession) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.embeds = append(m.embeds, embed)
	return &discordgo.Message{}, m.err
}

func TestNewDiscord_RequiresToken(t *testing.T) {
	if _, err := NewDiscord(DiscordOpts{ChannelID: "123"}); err == nil {
		t.Fatal("expected error for missing token")
	}
}

func TestDiscord_Announce(t *testing.T) {
	sess := &mockDiscordSession{}
	d, err := NewDiscord(DiscordOpts{ChannelID: "123", Session: sess})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ev := RegistrationEvent("alpha", "Java", "Ann", "https://github.com/o/alpha")
	if err := d.Announce(context.Background(), ev); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sess.embeds) != 1 {
		t.Fatalf("embeds = %d, want 1", len(sess.embeds))
	}
	if len(sess.embeds[0].Fields) != 3 {
		t.Errorf("embed fields = %d, want 3", len(sess.embeds[0].Fields))
	}
}

func TestDiscord_AnnounceError(t *testing.T) {
	sess := &mockDiscordSession{err: errors.New("forbidden")}
	d, _ := NewDiscord(DiscordOpts{ChannelID: "123", Session: sess})

	if err := d.Announce(context.Background(), Event{Title: "x"}); err == nil {
		t.Fatal("expected error")
	}
}
