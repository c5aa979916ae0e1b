package notes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

const notesPath = "/notes/"

// Note is a note as the server returns it. The id is assigned by the server on creation and never changes.
type Note struct {
	ID      ID     `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NoteFields holds what the client may set on a note, both for creating and for (fully) updating one.
type NoteFields struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NoteClient is bound to the /notes/ resource. It holds no notes itself; see NoteStore for that.
type NoteClient struct {
	t *Transport
}

func NewNoteClient(t *Transport) *NoteClient {
	return &NoteClient{t: t}
}

func (c *NoteClient) List(ctx context.Context) ([]Note, error) {
	var notes []Note
	if err := c.t.Request(ctx, notesPath, RequestOptions{}, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// Search asks the server for notes whose title or content contains query. An empty query matches everything.
func (c *NoteClient) Search(ctx context.Context, query string) ([]Note, error) {
	var notes []Note
	endpoint := notesPath + "search/?q=" + url.QueryEscape(query)
	if err := c.t.Request(ctx, endpoint, RequestOptions{}, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// Get fetches a single note.
func (c *NoteClient) Get(ctx context.Context, id ID) (Note, error) {
	var note Note
	if err := c.t.Request(ctx, notesPath+id.String(), RequestOptions{}, &note); err != nil {
		return Note{}, err
	}
	return note, nil
}

func (c *NoteClient) Create(ctx context.Context, fields NoteFields) (Note, error) {
	return c.send(ctx, http.MethodPost, notesPath, fields)
}

// Update replaces title and content of the note and returns the server's copy.
func (c *NoteClient) Update(ctx context.Context, id ID, fields NoteFields) (Note, error) {
	return c.send(ctx, http.MethodPut, notesPath+id.String(), fields)
}

func (c *NoteClient) Delete(ctx context.Context, id ID) error {
	return c.t.Request(ctx, notesPath+id.String(), RequestOptions{Method: http.MethodDelete}, nil)
}

// Extract has the server derive action items from the note's content. The returned items have already been
// created server side.
func (c *NoteClient) Extract(ctx context.Context, id ID) ([]ActionItem, error) {
	var items []ActionItem
	opts := RequestOptions{Method: http.MethodPost}
	if err := c.t.Request(ctx, notesPath+id.String()+"/extract", opts, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *NoteClient) send(ctx context.Context, method, endpoint string, fields NoteFields) (Note, error) {
	b, err := json.Marshal(fields)
	if err != nil {
		return Note{}, err
	}
	var note Note
	if err := c.t.Request(ctx, endpoint, RequestOptions{Method: method, Body: b}, &note); err != nil {
		return Note{}, err
	}
	return note, nil
}
