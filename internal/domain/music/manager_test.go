package music_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/ellavondegurechaff/hearth/internal/domain/music"
	"github.com/ellavondegurechaff/hearth/internal/domain/music/mock"
	"go.uber.org/mock/gomock"
)

const voiceChannelID = snowflake.ID(300)

func TestManager_Play(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver := mock.NewMockResolver(ctrl)
	voice := mock.NewMockVoiceConnector(ctrl)
	out := &fakeOutput{}

	voice.EXPECT().Channel(guildID).Return(snowflake.ID(0), false)
	voice.EXPECT().Connect(gomock.Any(), guildID, voiceChannelID).Return(nil)
	voice.EXPECT().Channel(guildID).Return(voiceChannelID, true).AnyTimes()
	voice.EXPECT().Output(guildID).Return(out)

	resolver.EXPECT().Resolve(gomock.Any(), "first song").Return(track("first"), nil)
	resolver.EXPECT().Resolve(gomock.Any(), "second song").Return(track("second"), nil)

	m := music.NewManager(resolver, voice, nil)
	req := music.PlayRequest{GuildID: guildID, TextChannelID: channelID, VoiceChannelID: voiceChannelID}

	req.Query = "  first song "
	res, err := m.Play(context.Background(), req)
	if err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if !res.Started || res.Track.Title != "first" {
		t.Errorf("Play() = %+v, want first started", res)
	}

	req.Query = "second song"
	res, err = m.Play(context.Background(), req)
	if err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if res.Started {
		t.Error("second Play() started, want queued")
	}
	if got := titles(m.Player(guildID).Queue()); !reflect.DeepEqual(got, []string{"second"}) {
		t.Errorf("queue = %v, want [second]", got)
	}
}

func TestManager_PlayErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver := mock.NewMockResolver(ctrl)
	voice := mock.NewMockVoiceConnector(ctrl)
	m := music.NewManager(resolver, voice, nil)
	ctx := context.Background()

	if _, err := m.Play(ctx, music.PlayRequest{GuildID: guildID, Query: "song"}); !errors.Is(err, music.ErrNotInVoice) {
		t.Errorf("Play() without voice error = %v, want ErrNotInVoice", err)
	}
	if _, err := m.Play(ctx, music.PlayRequest{GuildID: guildID, VoiceChannelID: voiceChannelID, Query: " "}); !errors.Is(err, music.ErrEmptyQuery) {
		t.Errorf("Play() with empty query error = %v, want ErrEmptyQuery", err)
	}

	voice.EXPECT().Channel(guildID).Return(voiceChannelID, true)
	resolver.EXPECT().Resolve(gomock.Any(), "missing").Return(music.Track{}, errors.New("no results"))

	_, err := m.Play(ctx, music.PlayRequest{GuildID: guildID, VoiceChannelID: voiceChannelID, Query: "missing"})
	if !errors.Is(err, music.ErrResolve) {
		t.Errorf("Play() resolve failure error = %v, want ErrResolve", err)
	}
}

func TestManager_JoinLeave(t *testing.T) {
	ctrl := gomock.NewController(t)
	voice := mock.NewMockVoiceConnector(ctrl)
	m := music.NewManager(mock.NewMockResolver(ctrl), voice, nil)
	ctx := context.Background()

	if err := m.Join(ctx, guildID, 0); !errors.Is(err, music.ErrNotInVoice) {
		t.Errorf("Join() without voice error = %v", err)
	}

	voice.EXPECT().Channel(guildID).Return(voiceChannelID, true)
	if err := m.Join(ctx, guildID, voiceChannelID); !errors.Is(err, music.ErrAlreadyConnected) {
		t.Errorf("Join() same channel error = %v", err)
	}

	other := snowflake.ID(301)
	voice.EXPECT().Channel(guildID).Return(voiceChannelID, true)
	voice.EXPECT().Connect(gomock.Any(), guildID, other).Return(nil)
	if err := m.Join(ctx, guildID, other); err != nil {
		t.Errorf("Join() other channel error = %v", err)
	}

	voice.EXPECT().Channel(guildID).Return(snowflake.ID(0), false)
	if err := m.Leave(ctx, guildID); !errors.Is(err, music.ErrNotConnected) {
		t.Errorf("Leave() when disconnected error = %v", err)
	}

	out := &fakeOutput{}
	voice.EXPECT().Output(guildID).Return(out)
	p := m.Player(guildID)
	if _, err := p.Enqueue(track("a")); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Enqueue(track("b")); err != nil {
		t.Fatal(err)
	}

	voice.EXPECT().Channel(guildID).Return(other, true)
	voice.EXPECT().Disconnect(gomock.Any(), guildID).Return(nil)
	if err := m.Leave(ctx, guildID); err != nil {
		t.Fatalf("Leave() error = %v", err)
	}
	if p.State() != music.StateIdle {
		t.Errorf("state after leave = %v, want idle", p.State())
	}
	if got := titles(p.Queue()); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("queue after leave = %v, want [b]", got)
	}
}

func TestManager_PlayAfterLostConnection(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver := mock.NewMockResolver(ctrl)
	voice := mock.NewMockVoiceConnector(ctrl)
	out := &fakeOutput{}
	voice.EXPECT().Output(guildID).Return(out)

	m := music.NewManager(resolver, voice, nil)
	ctx := context.Background()
	req := music.PlayRequest{GuildID: guildID, TextChannelID: channelID, VoiceChannelID: voiceChannelID}

	voice.EXPECT().Channel(guildID).Return(snowflake.ID(0), false)
	voice.EXPECT().Connect(gomock.Any(), guildID, voiceChannelID).Return(nil)
	resolver.EXPECT().Resolve(gomock.Any(), "a").Return(track("a"), nil)
	req.Query = "a"
	if _, err := m.Play(ctx, req); err != nil {
		t.Fatalf("Play(a) error = %v", err)
	}

	// the connection dropped without the stream reporting an end
	voice.EXPECT().Channel(guildID).Return(snowflake.ID(0), false)
	voice.EXPECT().Connect(gomock.Any(), guildID, voiceChannelID).Return(nil)
	resolver.EXPECT().Resolve(gomock.Any(), "b").Return(track("b"), nil)
	req.Query = "b"
	res, err := m.Play(ctx, req)
	if err != nil {
		t.Fatalf("Play(b) error = %v", err)
	}
	if !res.Started {
		t.Errorf("Play(b) queued behind a dead stream, want started")
	}
	if got := out.playedTitles(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("played = %v, want [a b]", got)
	}

	// a late completion from the first stream must not advance anything
	out.finish(0)
	if cur, ok := m.Player(guildID).Current(); !ok || cur.Title != "b" {
		t.Errorf("current = %+v, want b", cur)
	}
}

func TestManager_JoinOtherChannelHaltsPlayback(t *testing.T) {
	ctrl := gomock.NewController(t)
	voice := mock.NewMockVoiceConnector(ctrl)
	m := music.NewManager(mock.NewMockResolver(ctrl), voice, nil)

	out := &fakeOutput{}
	voice.EXPECT().Output(guildID).Return(out)
	p := m.Player(guildID)
	for _, title := range []string{"a", "b"} {
		if _, err := p.Enqueue(track(title)); err != nil {
			t.Fatal(err)
		}
	}

	other := snowflake.ID(301)
	voice.EXPECT().Channel(guildID).Return(voiceChannelID, true)
	voice.EXPECT().Connect(gomock.Any(), guildID, other).Return(nil)
	if err := m.Join(context.Background(), guildID, other); err != nil {
		t.Fatalf("Join() error = %v", err)
	}
	if p.State() != music.StateIdle {
		t.Errorf("state after move = %v, want idle", p.State())
	}
	if got := titles(p.Queue()); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("queue after move = %v, want [b]", got)
	}
}

func TestManager_DisconnectedWithoutPlayer(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := music.NewManager(mock.NewMockResolver(ctrl), mock.NewMockVoiceConnector(ctrl), nil)
	// no Output expectation: an unknown guild must not create a player
	m.Disconnected(guildID)
}

func TestManager_Close(t *testing.T) {
	ctrl := gomock.NewController(t)
	voice := mock.NewMockVoiceConnector(ctrl)
	m := music.NewManager(mock.NewMockResolver(ctrl), voice, nil)

	out := &fakeOutput{}
	voice.EXPECT().Output(guildID).Return(out)
	p := m.Player(guildID)
	if _, err := p.Enqueue(track("a")); err != nil {
		t.Fatal(err)
	}

	voice.EXPECT().Channel(guildID).Return(voiceChannelID, true)
	voice.EXPECT().Disconnect(gomock.Any(), guildID).Return(errors.New("gateway closed"))
	if err := m.Close(context.Background()); err == nil {
		t.Error("Close() error = nil, want disconnect failure")
	}
	if p.State() != music.StateIdle {
		t.Errorf("state after close = %v, want idle", p.State())
	}
}

func TestFormatQueue(t *testing.T) {
	if got := music.FormatQueue(nil); got != "The queue is empty." {
		t.Errorf("FormatQueue(nil) = %q", got)
	}
	want := "**Current Queue:**\n1. a\n2. b"
	if got := music.FormatQueue([]music.Track{track("a"), track("b")}); got != want {
		t.Errorf("FormatQueue() = %q, want %q", got, want)
	}
}

func TestTrack_Label(t *testing.T) {
	tests := []struct {
		track music.Track
		want  string
	}{
		{music.Track{Title: "live"}, "live"},
		{music.Track{Title: "short", Duration: 95 * time.Second}, "short (1:35)"},
		{music.Track{Title: "long", Duration: time.Hour + 2*time.Minute + 3*time.Second}, "long (1:02:03)"},
	}
	for _, tt := range tests {
		if got := tt.track.Label(); got != tt.want {
			t.Errorf("Label() = %q, want %q", got, tt.want)
		}
	}
}
