// The notes package contains a client for a small REST backend managing notes and action items (the /notes/ and
// /action-items/ resources). At the time of writing the only consumer is the command line interface in the
// cmd/notes subdirectory.
//
// There are three layers. Transport performs one JSON request per call and turns failures into a *NetworkError,
// *HTTPError or *DecodeError. NoteClient and ActionItemClient are stateless, typed operations on one resource
// each. NoteStore and ActionItemStore own the client-side copy of each collection.
//
// The stores never change their collections ahead of the server: every mutating method makes its remote call
// first, and only on success appends the returned entity (creation) or replaces the entity with the same id by
// the server's copy (update, completion). On failure the collection is left as it was, the error is returned
// unchanged, and it is also kept in the store's error slot (Err) for display. There are no retries.
//
// Methods that query the data, e.g., NoteStore.Notes or ActionItemStore.SearchActionItems, use the local copy
// and make no remote calls.
package notes // import "github.com/nicolagi/notes"
