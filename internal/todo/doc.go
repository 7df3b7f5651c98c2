// Package todo holds the ordered task list and its filtered views.
//
// A Store owns the authoritative sequence of tasks. Its order is chosen by
// the user (newest tasks are inserted at the head, drag gestures rearrange
// them) and is never derived from a sort. The persisted form is a JSON array:
//
//	[
//	  {"id": 7, "text": "Buy milk", "completed": false},
//	  {"id": 1, "text": "Complete online JavaScript course", "completed": true}
//	]
//
// # Identity
//
// Ids are positive integers assigned from a counter that only moves forward
// during a session. When a store is built from persisted tasks the counter is
// recomputed as max(id)+1, or 1 for an empty list.
//
// # Mutations
//
// Add, Toggle, Remove, ClearCompleted and SetOrder are the only mutating
// operations. Each effective mutation is written through the store's Saver
// before observers are notified. Operations that change nothing (empty text,
// unknown id) neither save nor notify.
//
// # Filters
//
// Filter is a closed set of views: all, active and completed. Apply derives a
// view from a snapshot without touching the store.
package todo
