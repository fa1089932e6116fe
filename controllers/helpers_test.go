package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/postline/api-go/types"
)

type response struct {
	Success    bool                  `json:"success"`
	Data       json.RawMessage       `json:"data"`
	Pagination *types.PaginationMeta `json:"pagination"`
	Error      string                `json:"error"`
}

func get(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postForm(t *testing.T, r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response {
	t.Helper()
	var resp response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response body %q: %v", w.Body.String(), err)
	}
	return resp
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, into interface{}) response {
	t.Helper()
	resp := decode(t, w)
	if err := json.Unmarshal(resp.Data, into); err != nil {
		t.Fatalf("decoding data %q: %v", string(resp.Data), err)
	}
	return resp
}

func wantStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d (body %q)", w.Code, want, w.Body.String())
	}
}

func wantRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	wantStatus(t, w, http.StatusFound)
	if got := w.Header().Get("Location"); got != location {
		t.Fatalf("redirect location = %q, want %q", got, location)
	}
}
