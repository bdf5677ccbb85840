package domain

import "errors"

// ErrConversationNotFound is returned when a conversation ID cannot be found
// in the store.
var ErrConversationNotFound = errors.New("conversation not found")

// ErrDialogNotRegistered is returned when a stack frame references a dialog
// name that is not registered. This is a configuration error and aborts the
// turn rather than silently doing nothing.
var ErrDialogNotRegistered = errors.New("dialog not registered")
