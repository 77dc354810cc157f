package gin

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/onokeee/mindmap/auth"
	"github.com/onokeee/mindmap/bolt"
)

func createRouter(t *testing.T) (http.Handler, func()) {
	tmpFile, err := os.CreateTemp("", "")
	if err != nil {
		t.Fatal("could not create tmp file:", err)
	}

	filename := tmpFile.Name()
	driver := &bolt.Driver{}
	if err := driver.Open(filename); err != nil {
		os.Remove(filename)
		t.Fatalf("could not open bolt on file %s: %v", filename, err)
	}

	authService := auth.NewService(&bolt.UserStore{Driver: driver}, "test-signing-key")
	for username, password := range map[string]string{
		"admin": "admin123",
		"alice": "wonderland",
	} {
		if _, err := authService.Create(username, password); err != nil {
			t.Fatal("could not create user:", err)
		}
	}

	router, err := New(&bolt.MindmapStore{Driver: driver}, authService)
	if err != nil {
		t.Fatal("could not create router:", err)
	}

	return router, func() {
		driver.Close()
		os.Remove(filename)
	}
}

// request performs an HTTP call against the router and decodes the JSON
// response body into a generic map.
func request(t *testing.T, router http.Handler, method, path string, body interface{}, cookies []*http.Cookie) (int, map[string]interface{}, []*http.Cookie) {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	var decoded map[string]interface{}
	if resp.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &decoded), "body: %s", resp.Body.String())
	}

	return resp.Code, decoded, resp.Result().Cookies()
}

// login authenticates and returns the session cookies to replay on the next
// requests.
func login(t *testing.T, router http.Handler, username, password string) []*http.Cookie {
	code, body, cookies := request(t, router, "POST", "/api/login", map[string]string{
		"username": username,
		"password": password,
	}, nil)
	require.Equal(t, 200, code, "login should succeed: %v", body)
	require.NotEmpty(t, cookies)
	return cookies
}
