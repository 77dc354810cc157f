package gin

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMindmapHandler_Unauthenticated(t *testing.T) {
	router, f := createRouter(t)
	defer f()

	var tts = []struct {
		method string
		path   string
		body   interface{}
	}{
		{method: "GET", path: "/api/mindmaps/list"},
		{method: "GET", path: "/api/mindmap/1"},
		{method: "POST", path: "/api/mindmap", body: map[string]interface{}{"data": map[string]interface{}{}}},
		{method: "DELETE", path: "/api/mindmap/1"},
	}

	badCookie := []*http.Cookie{{Name: "mindmap_session", Value: "not.a.token"}}

	for _, tt := range tts {
		code, body, _ := request(t, router, tt.method, tt.path, tt.body, nil)
		assert.Equal(t, 401, code, "%s %s without token (body: %v)", tt.method, tt.path, body)

		code, body, _ = request(t, router, tt.method, tt.path, tt.body, badCookie)
		assert.Equal(t, 401, code, "%s %s with a garbage token (body: %v)", tt.method, tt.path, body)
	}
}

// TestMindmapHandler_Lifecycle runs the save/get/delete round trip.
func TestMindmapHandler_Lifecycle(t *testing.T) {
	router, f := createRouter(t)
	defer f()

	cookies := login(t, router, "admin", "admin123")

	code, body, _ := request(t, router, "GET", "/api/mindmaps/list", nil, cookies)
	require.Equal(t, 200, code)
	assert.Empty(t, body["maps"])

	code, body, _ = request(t, router, "POST", "/api/mindmap", map[string]interface{}{
		"name": "Trip Plan",
		"data": map[string]interface{}{"nodes": []interface{}{}},
	}, cookies)
	require.Equal(t, 200, code, "body: %v", body)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, "Trip Plan", body["name"])

	code, body, _ = request(t, router, "GET", "/api/mindmap/1", nil, cookies)
	require.Equal(t, 200, code)
	assert.Equal(t, "Trip Plan", body["map_name"])
	assert.Equal(t, float64(1), body["map_id"])
	assert.Equal(t, []interface{}{}, body["nodes"])

	code, body, _ = request(t, router, "GET", "/api/mindmaps/list", nil, cookies)
	require.Equal(t, 200, code)
	maps := body["maps"].([]interface{})
	require.Len(t, maps, 1)
	entry := maps[0].(map[string]interface{})
	assert.Equal(t, float64(1), entry["id"])
	assert.Equal(t, "Trip Plan", entry["name"])
	assert.NotEmpty(t, entry["updated_at"])

	code, body, _ = request(t, router, "DELETE", "/api/mindmap/1", nil, cookies)
	require.Equal(t, 200, code)
	assert.Equal(t, "success", body["status"])

	code, _, _ = request(t, router, "GET", "/api/mindmap/1", nil, cookies)
	assert.Equal(t, 404, code)
	code, _, _ = request(t, router, "DELETE", "/api/mindmap/1", nil, cookies)
	assert.Equal(t, 404, code)
}

func TestMindmapHandler_Save(t *testing.T) {
	router, f := createRouter(t)
	defer f()

	cookies := login(t, router, "admin", "admin123")

	// Missing data.
	code, body, _ := request(t, router, "POST", "/api/mindmap", map[string]interface{}{
		"name": "No data",
	}, cookies)
	assert.Equal(t, 400, code, "body: %v", body)

	// Name defaults.
	code, body, _ = request(t, router, "POST", "/api/mindmap", map[string]interface{}{
		"data": map[string]interface{}{},
	}, cookies)
	require.Equal(t, 200, code, "body: %v", body)
	assert.Equal(t, "Untitled Map", body["name"])

	// Duplicate name.
	code, body, _ = request(t, router, "POST", "/api/mindmap", map[string]interface{}{
		"name": "Trip Plan",
		"data": map[string]interface{}{"v": 1},
	}, cookies)
	require.Equal(t, 200, code, "body: %v", body)
	id := body["id"]

	code, body, _ = request(t, router, "POST", "/api/mindmap", map[string]interface{}{
		"name": "Trip Plan",
		"data": map[string]interface{}{"v": 2},
	}, cookies)
	assert.Equal(t, 400, code, "body: %v", body)

	// Update in place: same id, new payload.
	code, body, _ = request(t, router, "POST", "/api/mindmap", map[string]interface{}{
		"id":   id,
		"name": "Trip Plan",
		"data": map[string]interface{}{"v": 2},
	}, cookies)
	require.Equal(t, 200, code, "body: %v", body)
	assert.Equal(t, id, body["id"])

	code, body, _ = request(t, router, "GET", fmt.Sprintf("/api/mindmap/%v", id), nil, cookies)
	require.Equal(t, 200, code)
	assert.Equal(t, float64(2), body["v"])

	// Updating an id that does not exist.
	code, body, _ = request(t, router, "POST", "/api/mindmap", map[string]interface{}{
		"id":   4242,
		"name": "Ghost",
		"data": map[string]interface{}{},
	}, cookies)
	assert.Equal(t, 404, code, "body: %v", body)
}

func TestMindmapHandler_OwnerScoping(t *testing.T) {
	router, f := createRouter(t)
	defer f()

	adminCookies := login(t, router, "admin", "admin123")
	aliceCookies := login(t, router, "alice", "wonderland")

	code, body, _ := request(t, router, "POST", "/api/mindmap", map[string]interface{}{
		"name": "Admin only",
		"data": map[string]interface{}{"secret": true},
	}, adminCookies)
	require.Equal(t, 200, code, "body: %v", body)
	rawID := body["id"]
	id := fmt.Sprintf("%v", rawID)

	// Alice cannot see, update, nor delete admin's map: everything is a 404,
	// indistinguishable from a map that does not exist.
	code, body, _ = request(t, router, "GET", "/api/mindmap/"+id, nil, aliceCookies)
	assert.Equal(t, 404, code, "body: %v", body)

	code, body, _ = request(t, router, "POST", "/api/mindmap", map[string]interface{}{
		"id":   rawID,
		"name": "Hijacked",
		"data": map[string]interface{}{},
	}, aliceCookies)
	assert.Equal(t, 404, code, "body: %v", body)

	code, body, _ = request(t, router, "DELETE", "/api/mindmap/"+id, nil, aliceCookies)
	assert.Equal(t, 404, code, "body: %v", body)

	// Alice's own list stays empty.
	code, body, _ = request(t, router, "GET", "/api/mindmaps/list", nil, aliceCookies)
	require.Equal(t, 200, code)
	assert.Empty(t, body["maps"])

	// Admin still sees the map, untouched.
	code, body, _ = request(t, router, "GET", "/api/mindmap/"+id, nil, adminCookies)
	require.Equal(t, 200, code)
	assert.Equal(t, "Admin only", body["map_name"])
	assert.Equal(t, true, body["secret"])
}

func TestMindmapHandler_ListOrdering(t *testing.T) {
	router, f := createRouter(t)
	defer f()

	cookies := login(t, router, "admin", "admin123")

	ids := make(map[string]interface{})
	for _, name := range []string{"first", "second", "third"} {
		code, body, _ := request(t, router, "POST", "/api/mindmap", map[string]interface{}{
			"name": name,
			"data": map[string]interface{}{},
		}, cookies)
		require.Equal(t, 200, code, "body: %v", body)
		ids[name] = body["id"]
	}

	// Touch "first": it becomes the most recently updated.
	code, body, _ := request(t, router, "POST", "/api/mindmap", map[string]interface{}{
		"id":   ids["first"],
		"name": "first",
		"data": map[string]interface{}{"touched": true},
	}, cookies)
	require.Equal(t, 200, code, "body: %v", body)

	code, body, _ = request(t, router, "GET", "/api/mindmaps/list", nil, cookies)
	require.Equal(t, 200, code)
	maps := body["maps"].([]interface{})
	require.Len(t, maps, 3)

	names := make([]string, len(maps))
	for i, m := range maps {
		names[i] = m.(map[string]interface{})["name"].(string)
	}
	assert.Equal(t, "first", names[0], "most recently updated map should come first: %v", names)
}
