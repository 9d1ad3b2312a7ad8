package welcome_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/json"
	"github.com/disgoorg/snowflake/v2"
	"github.com/ellavondegurechaff/hearth/hearth/welcome"
	"github.com/ellavondegurechaff/hearth/hearth/welcome/mock"
	"go.uber.org/mock/gomock"
)

const (
	guildID  = snowflake.ID(1)
	memberID = snowflake.ID(2)
)

func textChannel(t *testing.T, id snowflake.ID, name string, position int) discord.GuildChannel {
	t.Helper()
	data, _ := json.Marshal(map[string]any{
		"id":       id.String(),
		"type":     discord.ChannelTypeGuildText,
		"guild_id": guildID.String(),
		"name":     name,
		"position": position,
	})
	var ch discord.GuildTextChannel
	if err := json.Unmarshal(data, &ch); err != nil {
		t.Fatalf("failed to build channel: %v", err)
	}
	return ch
}

func member() discord.Member {
	return discord.Member{User: discord.User{ID: memberID, Username: "newcomer"}}
}

func TestGreet(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock.NewMockGuildAPI(ctrl)

	api.EXPECT().GetGuildChannels(guildID, gomock.Any()).Return([]discord.GuildChannel{
		textChannel(t, 10, "general", 0),
		textChannel(t, 11, "welcome", 1),
	}, nil)
	api.EXPECT().CreateMessage(snowflake.ID(11), discord.MessageCreate{Content: "Hi <@2>, enjoy!"}, gomock.Any()).
		Return(&discord.Message{}, nil)
	api.EXPECT().GetRoles(guildID, gomock.Any()).Return([]discord.Role{
		{ID: 20, Name: "Admins"},
		{ID: 21, Name: "Members"},
	}, nil)
	api.EXPECT().AddMemberRole(guildID, memberID, snowflake.ID(21), gomock.Any(), gomock.Any()).Return(nil)

	w := welcome.NewWelcomer(welcome.Config{Message: "Hi {member}, enjoy!", Channel: "welcome", RoleName: "Members"})
	got := w.Greet(context.Background(), api, guildID, member())

	want := welcome.Result{MessageSent: true, RoleAssigned: true}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Greet() = %+v, want %+v", got, want)
	}
}

func TestGreetContinuesAfterFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock.NewMockGuildAPI(ctrl)

	api.EXPECT().GetGuildChannels(guildID, gomock.Any()).Return([]discord.GuildChannel{
		textChannel(t, 11, "welcome", 0),
	}, nil)
	api.EXPECT().CreateMessage(snowflake.ID(11), gomock.Any(), gomock.Any()).Return(nil, errors.New("missing access"))
	api.EXPECT().GetRoles(guildID, gomock.Any()).Return([]discord.Role{{ID: 21, Name: "Members"}}, nil)
	api.EXPECT().AddMemberRole(guildID, memberID, snowflake.ID(21), gomock.Any(), gomock.Any()).Return(errors.New("missing permissions"))

	got := welcome.NewWelcomer(welcome.DefaultConfig()).Greet(context.Background(), api, guildID, member())
	if got.MessageSent || got.RoleAssigned {
		t.Errorf("Greet() = %+v, want nothing done", got)
	}
}

func TestGreetMissingChannelAndRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock.NewMockGuildAPI(ctrl)

	api.EXPECT().GetGuildChannels(guildID, gomock.Any()).Return([]discord.GuildChannel{
		textChannel(t, 10, "general", 0),
	}, nil)
	api.EXPECT().GetRoles(guildID, gomock.Any()).Return([]discord.Role{{ID: 20, Name: "Admins"}}, nil)

	got := welcome.NewWelcomer(welcome.DefaultConfig()).Greet(context.Background(), api, guildID, member())
	if got != (welcome.Result{}) {
		t.Errorf("Greet() = %+v, want zero result", got)
	}
}

func TestFormat(t *testing.T) {
	w := welcome.NewWelcomer(welcome.DefaultConfig())
	if got := w.Format(member()); got != "Welcome to the server, <@2>!" {
		t.Errorf("Format() = %q", got)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	if got := welcome.LoadConfig(filepath.Join(dir, "missing.json")); got != welcome.DefaultConfig() {
		t.Errorf("missing file = %+v, want defaults", got)
	}

	partial := filepath.Join(dir, "partial.json")
	if err := os.WriteFile(partial, []byte(`{"welcome_channel": "lobby"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	want := welcome.DefaultConfig()
	want.Channel = "lobby"
	if got := welcome.LoadConfig(partial); got != want {
		t.Errorf("partial file = %+v, want %+v", got, want)
	}

	broken := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(broken, []byte(`{"welcome_channel":`), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := welcome.LoadConfig(broken); got != welcome.DefaultConfig() {
		t.Errorf("broken file = %+v, want defaults", got)
	}
}
