package router

import (
	"net/http"
	"time"

	"feedgate/backend/app/controllers"
	"feedgate/backend/app/dto"
	"feedgate/backend/app/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Controllers struct {
	HTTP      *controllers.HTTPController
	Auth      *controllers.AuthController
	Users     *controllers.UserController
	Moderator *controllers.ModeratorController
	Posts     *controllers.PostController
	Feed      *controllers.FeedController
	Payment   *controllers.PaymentController
}

type Options struct {
	CORSOrigins []string
	// AuthRateLimit is requests per minute per IP on the login and register
	// routes; 0 disables limiting.
	AuthRateLimit int
	Feed          middleware.FeedParams
}

func NewRouter(c Controllers, mw *middleware.Auth, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.StripSlashes)
	r.Use(middleware.Logging)
	r.Use(middleware.Instrument)
	r.Use(chimw.Recoverer)

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization", mw.TokenHeader()},
		ExposedHeaders: []string{mw.TokenHeader()},
		MaxAge:         300,
	}))

	r.NotFound(c.HTTP.NotFound)
	r.MethodNotAllowed(c.HTTP.MethodNotAllowed)

	// operational
	r.Get("/ping", c.HTTP.Ping)
	r.Handle("/metrics", promhttp.Handler())

	limited := func(r chi.Router) {
		if opts.AuthRateLimit > 0 {
			r.Use(httprate.LimitByIP(opts.AuthRateLimit, time.Minute))
		}
	}
	noBody := middleware.RejectNonObject
	postID := middleware.RequireUUIDParam("postId")

	// user auth
	r.Route("/auth", func(r chi.Router) {
		limited(r)
		r.With(middleware.BindJSON[dto.RegisterUserRequest]).Post("/register", c.Auth.RegisterUser)
		login := middleware.BindJSON[dto.LoginRequest](http.HandlerFunc(c.Auth.LoginUser))
		r.Method(http.MethodGet, "/login", login)
		r.Method(http.MethodPost, "/login", login)
	})

	// user scope
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireUser)

		r.With(middleware.BindJSON[dto.UpdateUserRequest]).Put("/user", c.Users.Update)
		r.With(noBody).Delete("/user", c.Users.Delete)
		r.With(noBody).Get("/user/{username}", c.Users.Get)
		r.With(noBody).Put("/user/{username}/follow", c.Users.Follow)
		r.With(noBody).Put("/user/{username}/unfollow", c.Users.Unfollow)
		r.With(noBody).Get("/user/{username}/followings", c.Users.Followings)

		r.With(middleware.BindJSON[dto.CreatePostRequest]).Post("/post", c.Posts.Create)
		r.With(postID, noBody).Get("/post/{postId}", c.Posts.Get)
		r.With(postID, middleware.BindJSON[dto.UpdatePostRequest]).Put("/post/{postId}", c.Posts.Update)
		r.With(postID, noBody).Delete("/post/{postId}", c.Posts.Delete)

		r.With(noBody, opts.Feed.Bind).Get("/feed", c.Feed.User)
		r.With(middleware.BindJSON[dto.PaymentRequest]).Post("/payment", c.Payment.Pay)
	})

	r.Route("/moderator", func(r chi.Router) {
		// moderator auth
		r.Route("/auth", func(r chi.Router) {
			limited(r)
			r.With(middleware.BindJSON[dto.RegisterModeratorRequest]).Post("/register", c.Auth.RegisterModerator)
			login := middleware.BindJSON[dto.LoginRequest](http.HandlerFunc(c.Auth.LoginModerator))
			r.Method(http.MethodGet, "/login", login)
			r.Method(http.MethodPost, "/login", login)
		})

		// moderator scope; moderators cannot create posts
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireModerator)

			r.With(middleware.BindJSON[dto.UpdateModeratorRequest]).Put("/", c.Moderator.Update)
			r.With(noBody).Delete("/", c.Moderator.Delete)

			r.With(postID, noBody).Get("/post/{postId}", c.Posts.Get)
			r.With(postID, middleware.BindJSON[dto.UpdatePostRequest]).Put("/post/{postId}", c.Posts.Update)
			r.With(postID, noBody).Delete("/post/{postId}", c.Posts.Delete)

			r.With(noBody, opts.Feed.Bind).Get("/feed", c.Feed.Moderator)
		})
	})

	return r
}
