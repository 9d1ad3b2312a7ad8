package music

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"github.com/ellavondegurechaff/hearth/hearth/handlers"
	domain "github.com/ellavondegurechaff/hearth/internal/domain/music"
	"github.com/ellavondegurechaff/hearth/internal/domain/music/mock"
	"go.uber.org/mock/gomock"
)

const (
	testGuild   = snowflake.ID(10)
	testText    = snowflake.ID(20)
	testVoice   = snowflake.ID(30)
	testUser    = snowflake.ID(40)
	otherMember = snowflake.ID(41)
)

type harness struct {
	router   *handlers.PrefixRouter
	resolver *mock.MockResolver
	voice    *mock.MockVoiceConnector
	manager  *domain.Manager
}

func newHarness(t *testing.T) *harness {
	ctrl := gomock.NewController(t)
	resolver := mock.NewMockResolver(ctrl)
	voice := mock.NewMockVoiceConnector(ctrl)
	output := mock.NewMockOutput(ctrl)
	output.EXPECT().Play(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	output.EXPECT().Stop().AnyTimes()
	output.EXPECT().Pause().AnyTimes()
	output.EXPECT().Resume().AnyTimes()
	voice.EXPECT().Output(testGuild).Return(output).AnyTimes()

	manager := domain.NewManager(resolver, voice, nil)
	locate := func(guildID, userID snowflake.ID) (snowflake.ID, bool) {
		if guildID == testGuild && userID == testUser {
			return testVoice, true
		}
		return 0, false
	}

	router := handlers.NewPrefixRouter("!")
	NewPrefixCommands(manager, locate).Register(router)
	return &harness{router: router, resolver: resolver, voice: voice, manager: manager}
}

func (h *harness) send(t *testing.T, author snowflake.ID, content string) []string {
	t.Helper()
	guild := testGuild
	var replies []string
	ok := h.router.Dispatch(context.Background(), handlers.Message{
		GuildID:   &guild,
		ChannelID: testText,
		Author:    discord.User{ID: author},
		Content:   content,
	}, func(s string) error {
		replies = append(replies, s)
		return nil
	})
	if !ok {
		t.Fatalf("%q was not dispatched", content)
	}
	return replies
}

func expectReplies(t *testing.T, got []string, want ...string) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("replies = %q, want %q", got, want)
	}
}

func TestPlayAndQueue(t *testing.T) {
	h := newHarness(t)
	h.voice.EXPECT().Channel(testGuild).Return(snowflake.ID(0), false)
	h.voice.EXPECT().Connect(gomock.Any(), testGuild, testVoice).Return(nil)
	h.voice.EXPECT().Channel(testGuild).Return(testVoice, true).AnyTimes()
	h.resolver.EXPECT().Resolve(gomock.Any(), "first song").Return(domain.Track{Title: "First"}, nil)
	h.resolver.EXPECT().Resolve(gomock.Any(), "second song").Return(domain.Track{Title: "Second"}, nil)

	expectReplies(t, h.send(t, testUser, "!play first song"),
		"Searching for the song...", "Now playing: **First**")
	expectReplies(t, h.send(t, testUser, "!play second song"),
		"Searching for the song...", "**Second** has been added to the queue.")
	expectReplies(t, h.send(t, testUser, "!queue"), "**Current Queue:**\n1. Second")

	expectReplies(t, h.send(t, testUser, "!pause"), "Music paused.")
	expectReplies(t, h.send(t, testUser, "!pause"), "No music is playing to pause.")
	expectReplies(t, h.send(t, testUser, "!resume"), "Music resumed.")
	expectReplies(t, h.send(t, testUser, "!resume"), "No music is paused.")

	expectReplies(t, h.send(t, testUser, "!stop"), "Stopped the current track. The queue is preserved.")
	expectReplies(t, h.send(t, testUser, "!stop"), "No music is playing.")
	expectReplies(t, h.send(t, testUser, "!skip"), "No track is playing.")
	expectReplies(t, h.send(t, testUser, "!queue"), "**Current Queue:**\n1. Second")

	expectReplies(t, h.send(t, testUser, "!clearqueue"), "The music queue has been cleared.")
	expectReplies(t, h.send(t, testUser, "!queue"), "The queue is empty.")
}

func TestSkipPlaysNext(t *testing.T) {
	h := newHarness(t)
	h.voice.EXPECT().Channel(testGuild).Return(testVoice, true).AnyTimes()
	h.resolver.EXPECT().Resolve(gomock.Any(), "a").Return(domain.Track{Title: "A"}, nil)
	h.resolver.EXPECT().Resolve(gomock.Any(), "b").Return(domain.Track{Title: "B"}, nil)

	h.send(t, testUser, "!play a")
	h.send(t, testUser, "!play b")
	expectReplies(t, h.send(t, testUser, "!skip"), "Skipped the current track.")

	current, ok := h.manager.Player(testGuild).Current()
	if !ok || current.Title != "B" {
		t.Errorf("current = %+v, want B", current)
	}
	if q := h.manager.Player(testGuild).Queue(); len(q) != 0 {
		t.Errorf("queue = %v, want empty", q)
	}
}

func TestPlayRequiresVoice(t *testing.T) {
	h := newHarness(t)
	expectReplies(t, h.send(t, otherMember, "!play anything"), "Please join a voice channel first.")
	expectReplies(t, h.send(t, otherMember, "!join"), "You need to join a voice channel first.")
}

func TestPlayResolveFailure(t *testing.T) {
	h := newHarness(t)
	h.voice.EXPECT().Channel(testGuild).Return(testVoice, true).AnyTimes()
	h.resolver.EXPECT().Resolve(gomock.Any(), "nope").Return(domain.Track{}, errors.New("no results"))

	expectReplies(t, h.send(t, testUser, "!play nope"),
		"Searching for the song...", "An error occurred while processing the song.")
	if state := h.manager.Player(testGuild).State(); state != domain.StateIdle {
		t.Errorf("state = %v, want idle", state)
	}
}

func TestJoinAndLeave(t *testing.T) {
	h := newHarness(t)
	h.voice.EXPECT().Channel(testGuild).Return(snowflake.ID(0), false)
	expectReplies(t, h.send(t, testUser, "!disc"), "I'm not in a voice channel.")

	h.voice.EXPECT().Channel(testGuild).Return(snowflake.ID(0), false)
	h.voice.EXPECT().Connect(gomock.Any(), testGuild, testVoice).Return(nil)
	expectReplies(t, h.send(t, testUser, "!join"))

	h.voice.EXPECT().Channel(testGuild).Return(testVoice, true)
	expectReplies(t, h.send(t, testUser, "!join"), "I'm already in your voice channel.")

	h.voice.EXPECT().Channel(testGuild).Return(testVoice, true)
	h.voice.EXPECT().Disconnect(gomock.Any(), testGuild).Return(nil)
	expectReplies(t, h.send(t, testUser, "!leave"))
}

func TestGuildOnly(t *testing.T) {
	h := newHarness(t)
	var replies []string
	h.router.Dispatch(context.Background(), handlers.Message{
		ChannelID: testText,
		Author:    discord.User{ID: testUser},
		Content:   "!queue",
	}, func(s string) error {
		replies = append(replies, s)
		return nil
	})
	expectReplies(t, replies, guildOnlyReply)
}

func TestQueuePage(t *testing.T) {
	tracks := make([]domain.Track, 12)
	for i := range tracks {
		tracks[i] = domain.Track{Title: string(rune('a' + i))}
	}

	if got := PageCount(len(tracks), 10); got != 2 {
		t.Errorf("PageCount() = %d, want 2", got)
	}
	if got := PageCount(0, 10); got != 1 {
		t.Errorf("PageCount(0) = %d, want 1", got)
	}
	if got := QueuePage(tracks, 1, 10); got != "11. k\n12. l" {
		t.Errorf("QueuePage() = %q", got)
	}
	if got := QueuePage(tracks, 5, 10); got != "" {
		t.Errorf("QueuePage() past the end = %q", got)
	}
}
