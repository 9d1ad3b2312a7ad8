package utils

import (
	"reflect"
	"testing"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/ellavondegurechaff/hearth/hearth/config"
)

type recorder struct {
	got []discord.MessageCreate
}

func (r *recorder) CreateMessage(m discord.MessageCreate, _ ...rest.RequestOpt) error {
	r.got = append(r.got, m)
	return nil
}

func TestResponseHandler(t *testing.T) {
	r := &recorder{}

	if err := EH.Ephemeral(r, "❌ Could not find that reminder."); err != nil {
		t.Fatal(err)
	}
	if err := EH.CreateUserError(r, "Please select both options."); err != nil {
		t.Fatal(err)
	}

	want := []discord.MessageCreate{
		{Content: "❌ Could not find that reminder.", Flags: discord.MessageFlagEphemeral},
		{
			Embeds: []discord.Embed{{Description: "⚠️ Please select both options.", Color: config.WarningColor}},
			Flags:  discord.MessageFlagEphemeral,
		},
	}
	if !reflect.DeepEqual(r.got, want) {
		t.Errorf("messages = %+v, want %+v", r.got, want)
	}
}

func TestPtr(t *testing.T) {
	p := Ptr("x")
	if *p != "x" {
		t.Errorf("Ptr() = %q", *p)
	}
}
