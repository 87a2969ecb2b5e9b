package testutil

import (
	"context"
	"sync"

	"github.com/shelterplus/shelterplus-api/internal/service"
)

// FakeNotifier records Discord calls instead of sending them. FailAll makes
// every call error, for exercising best-effort paths.
type FakeNotifier struct {
	mu                sync.Mutex
	ChannelMessages   []RecordedMessage
	DirectMessages    []RecordedMessage
	VoiceParticipants []service.VoiceParticipant
	FailAll           bool
}

type RecordedMessage struct {
	Target  string
	Content string
}

func NewFakeNotifier() *FakeNotifier {
	return &FakeNotifier{}
}

func (f *FakeNotifier) PostToChannel(ctx context.Context, channelID, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailAll {
		return errNotifierDown
	}
	f.ChannelMessages = append(f.ChannelMessages, RecordedMessage{Target: channelID, Content: content})
	return nil
}

func (f *FakeNotifier) SendDirectMessage(ctx context.Context, discordUserID, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailAll {
		return errNotifierDown
	}
	f.DirectMessages = append(f.DirectMessages, RecordedMessage{Target: discordUserID, Content: content})
	return nil
}

func (f *FakeNotifier) FetchVoiceParticipants(ctx context.Context, voiceChannelID string) ([]service.VoiceParticipant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailAll {
		return nil, errNotifierDown
	}
	return f.VoiceParticipants, nil
}

// ChannelMessageCount returns how many channel posts were recorded.
func (f *FakeNotifier) ChannelMessageCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.ChannelMessages)
}

// FakeBroadcaster records realtime emits.
type FakeBroadcaster struct {
	mu     sync.Mutex
	Events []RecordedEvent
}

type RecordedEvent struct {
	GameID  string
	Event   string
	Payload interface{}
}

func NewFakeBroadcaster() *FakeBroadcaster {
	return &FakeBroadcaster{}
}

func (f *FakeBroadcaster) Emit(gameID, event string, payload interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Events = append(f.Events, RecordedEvent{GameID: gameID, Event: event, Payload: payload})
}

// EventNames returns the recorded event names in emit order.
func (f *FakeBroadcaster) EventNames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, 0, len(f.Events))
	for _, e := range f.Events {
		names = append(names, e.Event)
	}
	return names
}

// CountEvent returns how many times a named event was emitted.
func (f *FakeBroadcaster) CountEvent(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, e := range f.Events {
		if e.Event == name {
			count++
		}
	}
	return count
}
