package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"talentradar/internal/db"
	"talentradar/internal/middleware"
	"talentradar/internal/models"
	"talentradar/internal/router"
	"talentradar/internal/services"
	"talentradar/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestServer wires a fresh sqlite database and a full route table, the
// same way main does minus CORS.
func setupTestServer(t *testing.T) *gin.Engine {
	t.Helper()

	g, err := db.Open("sqlite://" + filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.Migrate(g); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	db.DB = g

	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("talentradar_session", store))
	r.Use(middleware.LoadUser())
	router.RegisterRoutes(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, sessionCookie string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if sessionCookie != "" {
		req.Header.Set("Cookie", sessionCookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// signupTestUser registers through the API and returns the session cookie.
func signupTestUser(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/auth/signup", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("signup status = %d, body = %s", w.Code, w.Body.String())
	}
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("signup set no session cookie")
	}
	return cookies[0].Name + "=" + cookies[0].Value
}

func seedPlayerWithComment(t *testing.T) (*models.Player, *models.Comment) {
	t.Helper()

	author := models.User{Username: "author", Email: "author@example.com", Password: "x"}
	if err := db.DB.Create(&author).Error; err != nil {
		t.Fatalf("seed author: %v", err)
	}
	player := models.Player{Slug: utils.RandStringBytesMaskImpr(8), Name: "Test Striker", Position: "FW"}
	if err := db.DB.Create(&player).Error; err != nil {
		t.Fatalf("seed player: %v", err)
	}
	comment := models.Comment{Cid: utils.RandStringBytesMaskImpr(8), PlayerID: player.ID, UserID: author.ID, Content: "class act"}
	if err := db.DB.Create(&comment).Error; err != nil {
		t.Fatalf("seed comment: %v", err)
	}
	return &player, &comment
}

type voteResponse struct {
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
	MyVote    int `json:"my_vote"`
}

func TestVoteCommentEndpointLifecycle(t *testing.T) {
	r := setupTestServer(t)
	session := signupTestUser(t, r, "voter")
	_, comment := seedPlayerWithComment(t)
	path := fmt.Sprintf("/api/votes/comments/%d", comment.ID)

	// Upvote
	w := doJSON(t, r, http.MethodPost, path, gin.H{"value": 1}, session)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp voteResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Upvotes != 1 || resp.Downvotes != 0 || resp.MyVote != 1 {
		t.Errorf("after upvote: %+v, want 1/0 my_vote 1", resp)
	}

	// Flip
	w = doJSON(t, r, http.MethodPost, path, gin.H{"value": -1}, session)
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Upvotes != 0 || resp.Downvotes != 1 || resp.MyVote != -1 {
		t.Errorf("after flip: %+v, want 0/1 my_vote -1", resp)
	}

	// Toggle off
	w = doJSON(t, r, http.MethodPost, path, gin.H{"value": -1}, session)
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Upvotes != 0 || resp.Downvotes != 0 || resp.MyVote != 0 {
		t.Errorf("after toggle: %+v, want 0/0 my_vote 0", resp)
	}
}

func TestVoteCommentRequiresAuth(t *testing.T) {
	r := setupTestServer(t)
	_, comment := seedPlayerWithComment(t)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/votes/comments/%d", comment.ID), gin.H{"value": 1}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestVoteCommentRejectsBadValue(t *testing.T) {
	r := setupTestServer(t)
	session := signupTestUser(t, r, "voter")
	_, comment := seedPlayerWithComment(t)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/votes/comments/%d", comment.ID), gin.H{"value": 5}, session)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestVoteReplyLockedThreadConflict(t *testing.T) {
	r := setupTestServer(t)
	session := signupTestUser(t, r, "voter")

	author := models.User{Username: "op", Email: "op@example.com", Password: "x"}
	db.DB.Create(&author)
	thread := models.Thread{Tid: utils.RandStringBytesMaskImpr(8), UserID: author.ID, Title: "locked topic", Locked: true}
	db.DB.Create(&thread)
	reply := models.Reply{ThreadID: thread.ID, UserID: author.ID, Content: "last word"}
	db.DB.Create(&reply)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/votes/replies/%d", reply.ID), gin.H{"value": 1}, session)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409, body = %s", w.Code, w.Body.String())
	}
}

func TestRatePlayerEndpoint(t *testing.T) {
	r := setupTestServer(t)
	session := signupTestUser(t, r, "rater")
	player, _ := seedPlayerWithComment(t)
	path := "/api/players/" + player.Slug + "/rating"

	w := doJSON(t, r, http.MethodPut, path, gin.H{"score": 8}, session)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		AvgRating   float64 `json:"avg_rating"`
		RatingCount int     `json:"rating_count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.AvgRating != 8 || resp.RatingCount != 1 {
		t.Errorf("aggregates = %f/%d, want 8/1", resp.AvgRating, resp.RatingCount)
	}

	// Out-of-range scores never reach the service
	w = doJSON(t, r, http.MethodPut, path, gin.H{"score": 99}, session)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestRatePlayerRepOnlyOnFirstRating(t *testing.T) {
	r := setupTestServer(t)
	session := signupTestUser(t, r, "rerater")
	player, _ := seedPlayerWithComment(t)
	path := "/api/players/" + player.Slug + "/rating"

	for _, score := range []int{8, 3, 9} {
		w := doJSON(t, r, http.MethodPut, path, gin.H{"score": score}, session)
		if w.Code != http.StatusOK {
			t.Fatalf("score %d: status = %d, body = %s", score, w.Code, w.Body.String())
		}
	}

	var user models.User
	if err := db.DB.Where("username = ?", "rerater").First(&user).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	var entries int64
	db.DB.Model(&models.ReputationLog{}).
		Where("user_id = ? AND action = ?", user.ID, services.ActionRatingCast).
		Count(&entries)
	if entries != 1 {
		t.Errorf("rating_cast ledger entries = %d, want 1 across re-rates", entries)
	}
	if user.Reputation != services.RepRatingCast {
		t.Errorf("reputation = %d, want %d", user.Reputation, services.RepRatingCast)
	}
}

func TestMeEndpoint(t *testing.T) {
	r := setupTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/api/auth/me", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous status = %d, want 401", w.Code)
	}

	session := signupTestUser(t, r, "somefan")
	w = doJSON(t, r, http.MethodGet, "/api/auth/me", nil, session)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Level string `json:"level"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Level != "Matchday Fan" {
		t.Errorf("level = %q, want Matchday Fan", resp.Level)
	}
}

func TestAdminRoutesForbiddenForRegulars(t *testing.T) {
	r := setupTestServer(t)
	session := signupTestUser(t, r, "regular")

	w := doJSON(t, r, http.MethodPost, "/api/admin/players", gin.H{
		"name": "New Signing", "position": "MF",
	}, session)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}
