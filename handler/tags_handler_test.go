package handler

import (
	"fmt"
	"net/http"
	"testing"

	"main/dto"

	"github.com/gin-gonic/gin"
)

func TestTagLifecycle(t *testing.T) {
	srv := newTestServer(t)
	userID, token := srv.registerAndLogin(t, "alice@example.com")
	base := "/api/users/" + userID + "/tags"

	w := srv.do(t, http.MethodPost, base, token, gin.H{"name": "work", "color": "#FF5733"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status %d, body %s", w.Code, w.Body.String())
	}
	var tag dto.TagResponse
	decodeData(t, w, &tag)
	if tag.Name != "work" || tag.Color != "#FF5733" {
		t.Fatalf("tag: %+v", tag)
	}

	// Default color applies when none is sent
	w = srv.do(t, http.MethodPost, base, token, gin.H{"name": "home"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create without color: status %d", w.Code)
	}
	var plain dto.TagResponse
	decodeData(t, w, &plain)
	if plain.Color == "" {
		t.Fatal("color should default")
	}

	w = srv.do(t, http.MethodGet, base, token, nil)
	var list dto.TagListResponse
	decodeData(t, w, &list)
	if list.Count != 2 {
		t.Fatalf("count = %d, want 2", list.Count)
	}

	w = srv.do(t, http.MethodPut, fmt.Sprintf("%s/%d", base, tag.ID), token, gin.H{"color": "#00FF00"})
	if w.Code != http.StatusOK {
		t.Fatalf("update: status %d, body %s", w.Code, w.Body.String())
	}

	w = srv.do(t, http.MethodDelete, fmt.Sprintf("%s/%d", base, tag.ID), token, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: status %d", w.Code)
	}
	w = srv.do(t, http.MethodGet, fmt.Sprintf("%s/%d", base, tag.ID), token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("get after delete: status %d, want 404", w.Code)
	}
}

func TestTagNameConflictAcrossUsers(t *testing.T) {
	srv := newTestServer(t)
	aliceID, aliceToken := srv.registerAndLogin(t, "alice@example.com")
	bobID, bobToken := srv.registerAndLogin(t, "bob@example.com")

	w := srv.do(t, http.MethodPost, "/api/users/"+aliceID+"/tags", aliceToken, gin.H{"name": "shared"})
	if w.Code != http.StatusCreated {
		t.Fatalf("alice create: status %d", w.Code)
	}

	w = srv.do(t, http.MethodPost, "/api/users/"+bobID+"/tags", bobToken, gin.H{"name": "shared"})
	if w.Code != http.StatusConflict {
		t.Fatalf("bob create: status %d, want 409", w.Code)
	}
}

func TestTagRejectsBadColor(t *testing.T) {
	srv := newTestServer(t)
	userID, token := srv.registerAndLogin(t, "alice@example.com")

	cases := []string{"red", "#FFF", "FF5733", "#GGGGGG"}
	for _, color := range cases {
		w := srv.do(t, http.MethodPost, "/api/users/"+userID+"/tags", token, gin.H{"name": "c" + color, "color": color})
		if w.Code != http.StatusBadRequest {
			t.Errorf("color %q: status %d, want 400", color, w.Code)
		}
	}
}
