package discord

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/shelterplus/shelterplus-api/internal/service"
)

// Notifier drives the Discord side channel. With no bot token it runs in
// offline mode: posts are dropped with a log line and voice lookups return
// empty, so the service stays fully usable for web-only games.
type Notifier struct {
	session *discordgo.Session
}

// New connects a bot session, or returns an offline notifier when token is
// empty.
func New(token string) (*Notifier, error) {
	if token == "" {
		log.Printf("WARN [discord] no bot token configured, running in offline mode")
		return &Notifier{}, nil
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildVoiceStates | discordgo.IntentsGuildMembers

	if err := session.Open(); err != nil {
		return nil, fmt.Errorf("failed to open discord session: %w", err)
	}
	return &Notifier{session: session}, nil
}

// Close shuts down the bot session.
func (n *Notifier) Close() error {
	if n.session == nil {
		return nil
	}
	return n.session.Close()
}

func (n *Notifier) PostToChannel(ctx context.Context, channelID, content string) error {
	if n.session == nil {
		log.Printf("WARN [discord] offline, dropping message to channel %s", channelID)
		return nil
	}
	_, err := n.session.ChannelMessageSend(channelID, content, discordgo.WithContext(ctx))
	return err
}

func (n *Notifier) SendDirectMessage(ctx context.Context, discordUserID, content string) error {
	if n.session == nil {
		log.Printf("WARN [discord] offline, dropping DM to user %s", discordUserID)
		return nil
	}

	channel, err := n.session.UserChannelCreate(discordUserID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to open DM channel: %w", err)
	}
	_, err = n.session.ChannelMessageSend(channel.ID, content, discordgo.WithContext(ctx))
	return err
}

// FetchVoiceParticipants lists the members currently in a voice channel.
// Nicknames prefer the guild nick over the account username.
func (n *Notifier) FetchVoiceParticipants(ctx context.Context, voiceChannelID string) ([]service.VoiceParticipant, error) {
	if n.session == nil {
		return nil, nil
	}

	channel, err := n.session.Channel(voiceChannelID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve voice channel: %w", err)
	}

	guild, err := n.session.State.Guild(channel.GuildID)
	if err != nil {
		guild, err = n.session.Guild(channel.GuildID, discordgo.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to resolve guild: %w", err)
		}
	}

	var participants []service.VoiceParticipant
	for _, vs := range guild.VoiceStates {
		if vs.ChannelID != voiceChannelID {
			continue
		}
		participants = append(participants, service.VoiceParticipant{
			ID:       vs.UserID,
			Nickname: n.memberNickname(ctx, channel.GuildID, vs.UserID),
		})
	}
	return participants, nil
}

func (n *Notifier) memberNickname(ctx context.Context, guildID, userID string) string {
	member, err := n.session.GuildMember(guildID, userID, discordgo.WithContext(ctx))
	if err != nil {
		log.Printf("WARN [discord] failed to fetch member %s: %v", userID, err)
		return userID
	}
	if member.Nick != "" {
		return member.Nick
	}
	if member.User != nil {
		return member.User.Username
	}
	return userID
}
