/*
Package picbot is a conversational turn-router.

Given an inbound user message and a small persisted per-conversation record,
it decides which dialog is active, advances that dialog by one step, and
produces zero or more outbound replies. The orchestration core is a
stack-based state machine that multiplexes named waterfall flows, persists
progress between turns, and routes each turn to an intent handler that may
itself push a new dialog.

The Bot type is the high-level entry point. It wires the dialog registry,
the session manager, and the external collaborators (state store, intent
classifier, search index, output channel) behind functional options:

	bot, err := picbot.New(
		picbot.WithChannel(channel),
		picbot.WithClassifier(classifier),
		picbot.WithSearcher(searcher),
	)
	if err != nil {
		// ...
	}
	err = bot.HandleActivity(ctx, domain.Activity{
		Kind:           domain.ActivityMessage,
		Utterance:      "search for cats",
		ConversationID: "conv-1",
	})

Turns for the same conversation are strictly serialized; different
conversations are processed independently and concurrently.
*/
package picbot
