package initialize

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"feedgate/backend/app/cache"
	"feedgate/backend/app/dto"
	"feedgate/backend/app/payment"
	"feedgate/backend/app/services"
	"feedgate/backend/config"
	"feedgate/backend/global"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	services.BcryptCost = bcrypt.MinCost
	os.Exit(m.Run())
}

type testApp struct {
	t       *testing.T
	app     *App
	sandbox *payment.Sandbox
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		DB:   config.DB{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "feed.db")},
		JWT:  config.JWT{Secret: "test-secret", Issuer: "feedgate", ExpMin: 5, Header: "authToken"},
		Feed: config.Feed{DefaultLimit: 5, MaxLimit: 100},
		Payment: config.Payment{
			AmountCents: 500, Currency: "usd", Description: "Feed Content Payment",
			FailureThreshold: 5, OpenTimeout: time.Minute, LockTTL: time.Minute,
		},
	}
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	cfg := testConfig(t)
	sb := payment.NewSandbox()
	app, err := Build(cfg, Options{Processor: sb, Cache: cache.NewMemory()})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })
	return &testApp{t: t, app: app, sandbox: sb}
}

func (a *testApp) do(method, path, token, body string) *httptest.ResponseRecorder {
	a.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("authToken", token)
	}
	rec := httptest.NewRecorder()
	a.app.Router.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) expect(rec *httptest.ResponseRecorder, want int) {
	a.t.Helper()
	if rec.Code != want {
		a.t.Fatalf("status = %d, want %d; body %s", rec.Code, want, rec.Body.String())
	}
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
	return v
}

func userBody(name string) string {
	return `{"email":"` + name + `@gmail.com","password":"` + name + `00","firstName":"Abdul","lastName":"Moiz","userName":"` + name + `"}`
}

// signup registers and logs in a user, returning the token and id.
func (a *testApp) signup(name string) (string, string) {
	a.t.Helper()
	a.expect(a.do(http.MethodPost, "/auth/register", "", userBody(name)), http.StatusOK)
	rec := a.do(http.MethodGet, "/auth/login", "", `{"email":"`+name+`@gmail.com","password":"`+name+`00"}`)
	a.expect(rec, http.StatusOK)
	token := rec.Header().Get("authToken")
	if token == "" {
		a.t.Fatal("login did not set authToken header")
	}
	return token, decode[dto.UserLoginResponse](a.t, rec).User.UserID
}

func (a *testApp) moderator(email string) string {
	a.t.Helper()
	body := `{"email":"` + email + `","password":"moiz0300","firstName":"Mod","lastName":"Erator"}`
	a.expect(a.do(http.MethodPost, "/moderator/auth/register", "", body), http.StatusOK)
	rec := a.do(http.MethodPost, "/moderator/auth/login", "", `{"email":"`+email+`","password":"moiz0300"}`)
	a.expect(rec, http.StatusOK)
	return rec.Header().Get("authToken")
}

func (a *testApp) createPost(token, title string) string {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/post", token, `{"title":"`+title+`","description":"Description Testing"}`)
	a.expect(rec, http.StatusOK)
	return decode[dto.PostResponse](a.t, rec).Post.PostID
}

func TestRegistrationAndLogin(t *testing.T) {
	a := newTestApp(t)

	rec := a.do(http.MethodPost, "/auth/register", "", userBody("moiz3"))
	a.expect(rec, http.StatusOK)
	reg := decode[dto.RegisterUserResponse](t, rec)
	if reg.UserData.UserName != "moiz3" || reg.UserData.Email != "moiz3@gmail.com" {
		t.Errorf("userData = %+v", reg.UserData)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Error("registration response leaks the password")
	}

	a.expect(a.do(http.MethodPost, "/auth/register", "", userBody("moiz3")), http.StatusConflict)
	a.expect(a.do(http.MethodPost, "/auth/register", "", `"moiz3"`), http.StatusUnprocessableEntity)
	long := `{"email":"long@gmail.com","password":"` + strings.Repeat("é", 40) + `","firstName":"A","lastName":"B","userName":"long1"}`
	a.expect(a.do(http.MethodPost, "/auth/register", "", long), http.StatusUnprocessableEntity)

	rec = a.do(http.MethodPost, "/auth/login", "", `{"email":"moiz3@gmail.com","password":"moiz300"}`)
	a.expect(rec, http.StatusOK)
	if rec.Header().Get("authToken") == "" {
		t.Error("missing token header")
	}
	a.expect(a.do(http.MethodGet, "/auth/login", "", `{"email":"moiz3@gmail.com","password":"wrongpass"}`), http.StatusUnauthorized)
	a.expect(a.do(http.MethodGet, "/auth/login", "", `{"email":"nobody@gmail.com","password":"moiz300"}`), http.StatusUnauthorized)
	a.expect(a.do(http.MethodGet, "/auth/login", "", `{"email":"moiz3@gmail.com"}`), http.StatusUnprocessableEntity)
}

func TestModeratorRegistrationAndScopes(t *testing.T) {
	a := newTestApp(t)
	modToken := a.moderator("maaz030@gmail.com")
	a.expect(a.do(http.MethodPost, "/moderator/auth/register", "", `{"email":"maaz030@gmail.com","password":"moiz0300","firstName":"M","lastName":"E"}`), http.StatusConflict)
	a.expect(a.do(http.MethodGet, "/moderator/auth/login", "", `{"email":"maaz030@gmail.com","password":"nope0000"}`), http.StatusUnauthorized)

	userToken, _ := a.signup("moiz3")

	// tokens do not cross scopes
	a.expect(a.do(http.MethodGet, "/moderator/feed", userToken, ""), http.StatusUnauthorized)
	a.expect(a.do(http.MethodGet, "/user/moiz3", modToken, ""), http.StatusUnauthorized)
	// moderators cannot create posts
	a.expect(a.do(http.MethodPost, "/post", modToken, `{"title":"t","description":"d"}`), http.StatusUnauthorized)
	a.expect(a.do(http.MethodGet, "/user/moiz3", "", ""), http.StatusUnauthorized)

	rec := a.do(http.MethodPut, "/moderator", modToken, `{"firstName":"Maaz"}`)
	a.expect(rec, http.StatusOK)
	if got := decode[dto.UpdateModeratorResponse](t, rec).Moderator.FirstName; got != "Maaz" {
		t.Errorf("firstName = %q", got)
	}

	a.expect(a.do(http.MethodDelete, "/moderator", modToken, ""), http.StatusOK)
	// the token dies with the account
	a.expect(a.do(http.MethodGet, "/moderator/feed", modToken, ""), http.StatusUnauthorized)
}

func TestGetUser(t *testing.T) {
	a := newTestApp(t)
	token, id := a.signup("moiz3")

	rec := a.do(http.MethodGet, "/user/moiz3", token, "")
	a.expect(rec, http.StatusOK)
	body := rec.Body.String()
	if strings.Contains(body, "password") || strings.Contains(body, id) {
		t.Errorf("getUser leaks password or id: %s", body)
	}
	got := decode[dto.GetUserResponse](t, rec).User
	if got.UserName != "moiz3" || got.FirstName != "Abdul" {
		t.Errorf("user = %+v", got)
	}

	a.expect(a.do(http.MethodGet, "/user/moiz31", token, ""), http.StatusNotFound)
	a.expect(a.do(http.MethodGet, "/user/moiz3", token, `"moiz3"`), http.StatusUnprocessableEntity)
}

func TestFollowUnfollow(t *testing.T) {
	a := newTestApp(t)
	token, _ := a.signup("maaz3")
	a.signup("moiz3")

	rec := a.do(http.MethodPut, "/user/moiz3/follow", token, "")
	a.expect(rec, http.StatusOK)
	data := decode[dto.FollowResponse](t, rec).Data
	if data.UserName != "maaz3" || data.FollowingTo != "moiz3" {
		t.Errorf("follow data = %+v", data)
	}
	a.expect(a.do(http.MethodPut, "/user/moiz3/follow", token, ""), http.StatusBadRequest)
	a.expect(a.do(http.MethodPut, "/user/maaz3/follow", token, ""), http.StatusBadRequest)
	a.expect(a.do(http.MethodPut, "/user/ghost/follow", token, ""), http.StatusBadRequest)
	a.expect(a.do(http.MethodPut, "/user/moiz3/follow", token, `"abc"`), http.StatusUnprocessableEntity)

	rec = a.do(http.MethodGet, "/user/maaz3/followings", token, "")
	a.expect(rec, http.StatusOK)
	if f := decode[dto.FollowingsResponse](t, rec).Followings; len(f) != 1 || f[0] != "moiz3" {
		t.Errorf("followings = %v", f)
	}

	rec = a.do(http.MethodPut, "/user/moiz3/unfollow", token, "")
	a.expect(rec, http.StatusOK)
	if got := decode[dto.UnfollowResponse](t, rec).Data.UnfollowingTo; got != "moiz3" {
		t.Errorf("unfollowing_to = %q", got)
	}
	a.expect(a.do(http.MethodPut, "/user/moiz3/unfollow", token, ""), http.StatusBadRequest)
}

func TestUpdateUser(t *testing.T) {
	a := newTestApp(t)
	token, _ := a.signup("maaz3")
	a.signup("moiz3")

	rec := a.do(http.MethodPut, "/user/", token, `{"email":"maaz03@gmail.com","password":"maaz03"}`)
	a.expect(rec, http.StatusOK)
	u := decode[dto.UpdateUserResponse](t, rec).User
	if u.Email != "maaz03@gmail.com" || u.UserName != "maaz3" || u.Subscribed {
		t.Errorf("user = %+v", u)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Error("update response leaks password")
	}
	a.expect(a.do(http.MethodGet, "/auth/login", "", `{"email":"maaz03@gmail.com","password":"maaz03"}`), http.StatusOK)

	a.expect(a.do(http.MethodPut, "/user", token, `{"email":"moiz3@gmail.com"}`), http.StatusConflict)
	a.expect(a.do(http.MethodPut, "/user", token, `{"userName":"moiz3"}`), http.StatusConflict)
	a.expect(a.do(http.MethodPut, "/user", token, `"maaz03@gmail.com"`), http.StatusUnprocessableEntity)
}

func TestDeleteUserCascades(t *testing.T) {
	a := newTestApp(t)
	token, id := a.signup("moiz3")
	reader, _ := a.signup("maaz3")
	a.expect(a.do(http.MethodPut, "/user/moiz3/follow", reader, ""), http.StatusOK)
	postID := a.createPost(token, "Post Testing")
	modToken := a.moderator("mod@gmail.com")

	a.expect(a.do(http.MethodDelete, "/user", token, `"abc"`), http.StatusUnprocessableEntity)
	rec := a.do(http.MethodDelete, "/user", token, "")
	a.expect(rec, http.StatusOK)
	if got := decode[dto.DeleteUserResponse](t, rec).UserID; got != id {
		t.Errorf("userId = %q, want %q", got, id)
	}

	a.expect(a.do(http.MethodGet, "/moderator/post/"+postID, modToken, ""), http.StatusNotFound)
	a.expect(a.do(http.MethodGet, "/user/moiz3", reader, ""), http.StatusNotFound)
	a.expect(a.do(http.MethodGet, "/user/moiz3", token, ""), http.StatusUnauthorized)

	rec = a.do(http.MethodGet, "/user/maaz3/followings", reader, "")
	a.expect(rec, http.StatusOK)
	if f := decode[dto.FollowingsResponse](t, rec).Followings; len(f) != 0 {
		t.Errorf("deleted user still in followings: %v", f)
	}
}

func TestPostOwnership(t *testing.T) {
	a := newTestApp(t)
	owner, ownerID := a.signup("moiz3")
	other, _ := a.signup("maaz3")
	modToken := a.moderator("mod@gmail.com")
	postID := a.createPost(owner, "Post Testing")
	missing := "/post/0b7c6f3e-8f7a-4a59-9a57-2f0f3c1b9e11"

	rec := a.do(http.MethodGet, "/post/"+postID, other, "")
	a.expect(rec, http.StatusOK)
	p := decode[dto.PostResponse](t, rec).Post
	if p.UserID != ownerID || p.UserName != "moiz3" || p.Date.IsZero() {
		t.Errorf("post = %+v", p)
	}
	a.expect(a.do(http.MethodGet, missing, owner, ""), http.StatusNotFound)
	a.expect(a.do(http.MethodGet, "/post/62f9e643040fcef62a1398b3", owner, ""), http.StatusUnprocessableEntity)

	a.expect(a.do(http.MethodPut, "/post/"+postID, other, `{"title":"Change"}`), http.StatusForbidden)
	a.expect(a.do(http.MethodPut, missing, owner, `{"title":"Change"}`), http.StatusNotFound)
	a.expect(a.do(http.MethodPut, missing, other, `{"title":"Change"}`), http.StatusNotFound)
	a.expect(a.do(http.MethodPut, "/post/"+postID, owner, `"Change"`), http.StatusUnprocessableEntity)
	rec = a.do(http.MethodPut, "/post/"+postID, owner, `{"title":"Change"}`)
	a.expect(rec, http.StatusOK)
	if got := decode[dto.PostRefResponse](t, rec).Post.PostID; got != postID {
		t.Errorf("postId = %q", got)
	}

	a.expect(a.do(http.MethodPut, "/moderator/post/"+postID, modToken, `{"description":"moderated"}`), http.StatusOK)
	rec = a.do(http.MethodGet, "/moderator/post/"+postID, modToken, "")
	a.expect(rec, http.StatusOK)
	if got := decode[dto.PostResponse](t, rec).Post; got.Title != "Change" || got.Description != "moderated" {
		t.Errorf("post after edits = %+v", got)
	}

	a.expect(a.do(http.MethodDelete, "/post/"+postID, other, ""), http.StatusForbidden)
	a.expect(a.do(http.MethodDelete, "/moderator"+missing, modToken, ""), http.StatusNotFound)
	a.expect(a.do(http.MethodDelete, "/moderator/post/"+postID, modToken, ""), http.StatusOK)
	a.expect(a.do(http.MethodDelete, "/post/"+postID, owner, ""), http.StatusNotFound)
}

func TestFeedAndPayment(t *testing.T) {
	a := newTestApp(t)
	author, _ := a.signup("moiz3")
	reader, readerID := a.signup("maaz3")
	modToken := a.moderator("mod@gmail.com")
	a.expect(a.do(http.MethodPut, "/user/moiz3/follow", reader, ""), http.StatusOK)
	for _, title := range []string{"alpha", "beta", "gamma"} {
		a.createPost(author, title)
	}
	a.createPost(reader, "own post stays out of own feed")

	a.expect(a.do(http.MethodGet, "/feed", reader, ""), http.StatusUnauthorized)

	pay := func(card string) *httptest.ResponseRecorder {
		return a.do(http.MethodPost, "/payment", reader, `{"name":"Maaz","email":"maaz3@gmail.com","cardName":"Maaz","cardNumber":"`+card+`","expMonth":"12","expYear":"2034","cvc":"123"}`)
	}
	a.expect(a.do(http.MethodPost, "/payment", reader, `"`+readerID+`"`), http.StatusUnprocessableEntity)
	for _, month := range []string{"13", "00"} {
		body := `{"name":"Maaz","email":"maaz3@gmail.com","cardName":"Maaz","cardNumber":"4242424242424242","expMonth":"` + month + `","expYear":"2034","cvc":"123"}`
		a.expect(a.do(http.MethodPost, "/payment", reader, body), http.StatusUnprocessableEntity)
	}
	if n := len(a.sandbox.Charges()); n != 0 {
		t.Fatalf("invalid expMonth reached the processor: %d charges", n)
	}
	a.expect(pay("4000000000009995"), http.StatusPaymentRequired)
	a.expect(a.do(http.MethodGet, "/feed", reader, ""), http.StatusUnauthorized)

	rec := pay("4242424242424242")
	a.expect(rec, http.StatusOK)
	if got := decode[dto.PaymentResponse](t, rec).User.UserName; got != "maaz3" {
		t.Errorf("payment userName = %q", got)
	}
	a.expect(pay("4242424242424242"), http.StatusConflict)
	if n := len(a.sandbox.Charges()); n != 1 {
		t.Errorf("charges = %d, want 1", n)
	}

	rec = a.do(http.MethodGet, "/feed?page=1&limit=2&sort=title", reader, "")
	a.expect(rec, http.StatusOK)
	feed := decode[dto.FeedResponse](t, rec)
	if feed.Params != (dto.FeedQuery{Page: 1, Limit: 2, Sort: "title"}) {
		t.Errorf("params = %+v", feed.Params)
	}
	if len(feed.AllPosts) != 2 || feed.AllPosts[0].Title != "alpha" || feed.AllPosts[0].UserName != "moiz3" {
		t.Errorf("page 1 = %+v", feed.AllPosts)
	}
	if strings.Contains(rec.Body.String(), "userId") {
		t.Error("user feed leaks userId")
	}

	rec = a.do(http.MethodGet, "/feed?page=2&limit=2&sort=title", reader, "")
	a.expect(rec, http.StatusOK)
	if posts := decode[dto.FeedResponse](t, rec).AllPosts; len(posts) != 1 || posts[0].Title != "gamma" {
		t.Errorf("page 2 = %+v", posts)
	}
	a.expect(a.do(http.MethodGet, "/feed?page=abc", reader, ""), http.StatusUnprocessableEntity)

	rec = a.do(http.MethodGet, "/moderator/feed?limit=10", modToken, "")
	a.expect(rec, http.StatusOK)
	mfeed := decode[dto.FeedResponse](t, rec)
	if len(mfeed.AllPosts) != 4 {
		t.Errorf("moderator feed = %d posts, want 4", len(mfeed.AllPosts))
	}
	if body := rec.Body.String(); strings.Contains(body, "userId") || strings.Contains(body, "userName") {
		t.Errorf("moderator feed leaks author: %s", body)
	}
}

func TestOperationalRoutes(t *testing.T) {
	a := newTestApp(t)
	rec := a.do(http.MethodGet, "/ping", "", "")
	a.expect(rec, http.StatusOK)
	if rec.Body.String() != "pong" {
		t.Errorf("ping = %q", rec.Body.String())
	}

	a.do(http.MethodGet, "/auth/login", "", `{"email":"x@gmail.com","password":"xxxxxx"}`)
	rec = a.do(http.MethodGet, "/metrics", "", "")
	a.expect(rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "feedgate_login_total") {
		t.Error("metrics missing login counter")
	}

	a.expect(a.do(http.MethodGet, "/nowhere", "", ""), http.StatusNotFound)
}

func TestBuild_WarnsOnDevJWTSecret(t *testing.T) {
	prev := global.Logger
	t.Cleanup(func() { global.Logger = prev })

	for _, tt := range []struct {
		secret string
		warn   bool
	}{
		{config.DevJWTSecret, true},
		{"a-real-secret", false},
	} {
		var buf bytes.Buffer
		global.Logger = zerolog.New(&buf)
		cfg := testConfig(t)
		cfg.JWT.Secret = tt.secret
		app, err := Build(cfg, Options{Processor: payment.NewSandbox(), Cache: cache.NewMemory()})
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		_ = app.Close()
		if got := strings.Contains(buf.String(), "development secret"); got != tt.warn {
			t.Errorf("secret %q: warned = %v, want %v (%s)", tt.secret, got, tt.warn, buf.String())
		}
	}
}
