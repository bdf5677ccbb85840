/*
Package domain contains the core data model of the PicBot engine.

It defines the persisted per-conversation record (ConversationState plus the
DialogStack of active dialog invocations), the inbound Activity and outbound
Reply shapes, and the closed set of recognized intents. The types here carry
no behavior beyond construction and stack manipulation; all orchestration
logic lives in the runtime.
*/
package domain
