// The notes program is a command-line front end to the notes server (see the notes package for the API it talks to).
//
// The server is expected at http://localhost:8000 unless NOTES_API_BASE_URL or the --api flag say otherwise.
// Setting NOTES_WIRE_LOG (or --wire-log) to a file name appends every request and response to that file, one JSON
// object per line. The dark-mode preference lives in lib/notes/prefs.yaml within the user's home directory, or
// wherever NOTES_PREFS_FILE points.
//
// The --filter flag of the list commands takes a local search expression. Example arguments: All notes mentioning
// "budget":  budget.  Notes mentioning "budget" but not "draft":  budget:-draft.  Open action items about the
// bank:  +open:bank.  Completed action items:  +done.
//
// So, in summary, prepending minus negates a condition; the colon combines conditions (i.e., represents the
// boolean AND); for action items, +open and +done select on completion, while the default condition looks for a
// substring (in title or content for notes, in the description for action items).
package main // import "github.com/nicolagi/notes/cmd/notes"
