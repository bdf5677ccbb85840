/*
Package ports defines the driven ports (interfaces) for the PicBot engine.

These interfaces decouple the orchestration core from external collaborators:
the state store, the intent classifier, the search index, and the outbound
message channel. The core treats all of them as blocking, fallible calls and
carries no retry or timeout policy of its own; that belongs to the adapters.

# Key Interfaces

  - StateStore: persists the per-conversation record (state + dialog stack).
  - Classifier: maps a raw utterance to a ranked intent with entities.
  - Searcher: maps a query string to an ordered result list.
  - OutputChannel: delivers outbound replies, fire-and-forget.
  - DistributedLocker: serializes turns per conversation across replicas.
*/
package ports
