/*
Package dialog defines the building blocks of multi-turn conversation flows.

A Waterfall is a named, ordered sequence of Steps. Each Step receives the
current TurnContext and returns exactly one Result directive: advance to the
next step, end the dialog, begin a nested dialog, or send a prompt and
suspend until the next inbound message. The runtime interprets these
directives against the persisted dialog stack.
*/
package dialog
