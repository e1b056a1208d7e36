package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryDatabasePagination(t *testing.T) {
	var bodies []QueryRequest
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/databases/db-abc/query", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req QueryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		bodies = append(bodies, req)

		if req.StartCursor == "" {
			fmt.Fprint(w, `{"results": [{"id": "p1"}], "has_more": true, "next_cursor": "cur-2"}`)
			return
		}
		fmt.Fprint(w, `{"results": [{"id": "p2"}], "has_more": false, "next_cursor": null}`)
	}))

	ctx := context.Background()

	first, err := c.QueryDatabase(ctx, "db-abc", QueryRequest{PageSize: 100})
	require.NoError(t, err)
	require.True(t, first.HasMore)
	require.NotNil(t, first.NextCursor)

	second, err := c.QueryDatabase(ctx, "db-abc", QueryRequest{PageSize: 100, StartCursor: *first.NextCursor})
	require.NoError(t, err)
	assert.False(t, second.HasMore)

	require.Len(t, bodies, 2)
	assert.Equal(t, "", bodies[0].StartCursor)
	assert.Equal(t, "cur-2", bodies[1].StartCursor)
	assert.Equal(t, "p1", first.Results[0].ID)
	assert.Equal(t, "p2", second.Results[0].ID)
}

func TestFilterShapes(t *testing.T) {
	at := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	single, err := json.Marshal(LastEditedOnOrAfter("Última edición", at))
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"property": "Última edición", "last_edited_time": {"on_or_after": "2024-03-10T00:00:00Z"}}`,
		string(single))

	conj, err := json.Marshal(And(
		LastEditedOnOrAfter("Editado", at),
		LastEditedOnOrBefore("Editado", at.AddDate(0, 0, 7)),
	))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"and": [
			{"property": "Editado", "last_edited_time": {"on_or_after": "2024-03-10T00:00:00Z"}},
			{"property": "Editado", "last_edited_time": {"on_or_before": "2024-03-17T00:00:00Z"}}
		]
	}`, string(conj))
}

func TestAndCollapses(t *testing.T) {
	at := time.Now()
	f := LastEditedOnOrAfter("Editado", at)

	assert.Nil(t, And(nil, nil))
	assert.Equal(t, f, And(f, nil))
}
