package picbot_test

import (
	"context"
	"testing"

	"github.com/aretw0/picbot"
	"github.com/aretw0/picbot/internal/adapters/memory"
	"github.com/aretw0/picbot/internal/flows"
	"github.com/aretw0/picbot/pkg/dialog"
	"github.com/aretw0/picbot/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresChannel(t *testing.T) {
	_, err := picbot.New()
	assert.Error(t, err)
}

func TestNew_RegistersBuiltinDialogs(t *testing.T) {
	bot, err := picbot.New(picbot.WithChannel(memory.NewChannel()))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{flows.MainDialogName, flows.SearchDialogName}, bot.Dialogs())
}

func TestNew_RejectsDuplicateExtraDialog(t *testing.T) {
	_, err := picbot.New(
		picbot.WithChannel(memory.NewChannel()),
		picbot.WithDialog(dialog.NewWaterfall(flows.MainDialogName)),
	)
	assert.Error(t, err)
}

func TestBot_HandleActivity(t *testing.T) {
	channel := memory.NewChannel()
	bot, err := picbot.New(picbot.WithChannel(channel))
	require.NoError(t, err)

	act := domain.Activity{
		Kind:           domain.ActivityMessage,
		Utterance:      "hello",
		ConversationID: "conv-1",
	}
	require.NoError(t, bot.HandleActivity(context.Background(), act))
	assert.Equal(t, []string{flows.WelcomeMessage, flows.HelpMessage}, channel.Texts())

	// State is queryable through the session manager.
	conv, err := bot.Sessions().Load(context.Background(), "conv-1")
	require.NoError(t, err)
	assert.True(t, conv.State.Greeted)
}
