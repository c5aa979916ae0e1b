package notes

import (
	"context"
	"encoding/json"
	"net/http"
)

const actionItemsPath = "/action-items/"

// ActionItem is a task, typically extracted from a note. Completed only ever goes from false to true through
// Complete; Update may set it either way.
type ActionItem struct {
	ID          ID     `json:"id"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// ActionItemFields is the full client-settable representation, sent by Update.
type ActionItemFields struct {
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// Creation only takes a description; new items always start out not completed.
type actionItemCreate struct {
	Description string `json:"description"`
}

// ActionItemClient is bound to the /action-items/ resource.
type ActionItemClient struct {
	t *Transport
}

func NewActionItemClient(t *Transport) *ActionItemClient {
	return &ActionItemClient{t: t}
}

func (c *ActionItemClient) List(ctx context.Context) ([]ActionItem, error) {
	var items []ActionItem
	if err := c.t.Request(ctx, actionItemsPath, RequestOptions{}, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *ActionItemClient) Create(ctx context.Context, description string) (ActionItem, error) {
	return c.send(ctx, http.MethodPost, actionItemsPath, actionItemCreate{Description: description})
}

func (c *ActionItemClient) Update(ctx context.Context, id ID, fields ActionItemFields) (ActionItem, error) {
	return c.send(ctx, http.MethodPut, actionItemsPath+id.String(), fields)
}

// Complete marks the item done. It sends no body.
func (c *ActionItemClient) Complete(ctx context.Context, id ID) (ActionItem, error) {
	var item ActionItem
	opts := RequestOptions{Method: http.MethodPut}
	if err := c.t.Request(ctx, actionItemsPath+id.String()+"/complete", opts, &item); err != nil {
		return ActionItem{}, err
	}
	return item, nil
}

func (c *ActionItemClient) send(ctx context.Context, method, endpoint string, args interface{}) (ActionItem, error) {
	b, err := json.Marshal(args)
	if err != nil {
		return ActionItem{}, err
	}
	var item ActionItem
	if err := c.t.Request(ctx, endpoint, RequestOptions{Method: method, Body: b}, &item); err != nil {
		return ActionItem{}, err
	}
	return item, nil
}
