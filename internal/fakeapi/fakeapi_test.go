package fakeapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractActionItems(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"no tasks", "just a thought\nanother one", nil},
		{"exclamation", "- ship it!\nrelax", []string{"ship it!"}},
		{"todo prefix", "TODO: call mom\n  todo: buy milk  ", []string{"TODO: call mom", "todo: buy milk"}},
		{"crlf", "fix the build!\r\nok\r\n", []string{"fix the build!"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ExtractActionItems(tt.in))
		})
	}
}

func TestBackend_NotesLifecycle(t *testing.T) {
	b := New()
	h := b.Handler()

	// create
	{
		req := httptest.NewRequest(http.MethodPost, "/notes/", bytes.NewBufferString(`{"title":"t","content":"c"}`))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		require.Equal(t, http.StatusCreated, rr.Code)
		var got Note
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		require.Equal(t, Note{ID: 1, Title: "t", Content: "c"}, got)
	}

	// validation
	{
		req := httptest.NewRequest(http.MethodPost, "/notes/", bytes.NewBufferString(`{"title":"","content":"c"}`))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	}

	// update
	{
		req := httptest.NewRequest(http.MethodPut, "/notes/1", bytes.NewBufferString(`{"title":"t2","content":"c2"}`))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
		require.Equal(t, []Note{{ID: 1, Title: "t2", Content: "c2"}}, b.Notes())
	}

	// update missing
	{
		req := httptest.NewRequest(http.MethodPut, "/notes/99", bytes.NewBufferString(`{"title":"t","content":"c"}`))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		require.Equal(t, http.StatusNotFound, rr.Code)
	}

	// search is case insensitive
	{
		req := httptest.NewRequest(http.MethodGet, "/notes/search/?q=T2", nil)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
		var got []Note
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		require.Len(t, got, 1)
	}

	// delete
	{
		req := httptest.NewRequest(http.MethodDelete, "/notes/1", nil)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		require.Equal(t, http.StatusNoContent, rr.Code)
		require.Empty(t, b.Notes())
	}
}

func TestBackend_ExtractAndComplete(t *testing.T) {
	b := New()
	noteID := b.AddNote("plan", "todo: write tests\nthink\ndeploy!")
	h := b.Handler()

	req := httptest.NewRequest(http.MethodPost, "/notes/1/extract", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, int64(1), noteID)
	require.Equal(t, http.StatusOK, rr.Code)
	var got []ActionItem
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	require.Equal(t, []ActionItem{
		{ID: 2, Description: "todo: write tests"},
		{ID: 3, Description: "deploy!"},
	}, got)

	req = httptest.NewRequest(http.MethodPut, "/action-items/2/complete", nil)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, b.ActionItems()[0].Completed)
	require.False(t, b.ActionItems()[1].Completed)
}

func TestBackend_FailureModes(t *testing.T) {
	b := New()
	h := b.Handler()

	b.Fail(http.StatusServiceUnavailable, "try later")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/notes/", nil))
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	require.Equal(t, "try later", rr.Body.String())

	b.Recover()
	b.Garble()
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/notes/", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.False(t, json.Valid(rr.Body.Bytes()))

	b.Recover()
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/notes/", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, b.Requests(), 3)
}
