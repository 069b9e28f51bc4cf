package llm

import (
	"context"
	"fmt"
	"sort"

	openaisdk "github.com/openai/openai-go"
	contractx "github.com/tanpawarit/statlingua/agent/contract"
)

type ModelInfo struct {
	ID      string `json:"id"`
	OwnedBy string `json:"owned_by,omitempty"`
}

// ListModels returns the models the endpoint serves, sorted by id.
func ListModels(ctx context.Context, client *openaisdk.Client) ([]ModelInfo, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: openai client is nil", contractx.ErrValidation)
	}

	var out []ModelInfo
	iter := client.Models.ListAutoPaging(ctx)
	for iter.Next() {
		m := iter.Current()
		out = append(out, ModelInfo{ID: m.ID, OwnedBy: m.OwnedBy})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("%w: list models: %w", contractx.ErrModelInvoke, err)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
