package testutil

import "github.com/HerbHall/newsroom/internal/services"

func ptr(s string) *string { return &s }

// NewArticle returns a NewArticle that passes every schema constraint against
// the seeded dataset. Override individual fields with options.
func NewArticle(opts ...func(*services.NewArticle)) services.NewArticle {
	a := services.NewArticle{
		Title:  ptr("Living in the shadow of a great man"),
		Topic:  ptr("mitch"),
		Author: ptr("butter_bridge"),
		Body:   ptr("I find this existence challenging"),
	}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

// WithTitle sets the article title.
func WithTitle(title string) func(*services.NewArticle) {
	return func(a *services.NewArticle) { a.Title = ptr(title) }
}

// WithTopic sets the article topic.
func WithTopic(slug string) func(*services.NewArticle) {
	return func(a *services.NewArticle) { a.Topic = ptr(slug) }
}

// WithAuthor sets the article author.
func WithAuthor(username string) func(*services.NewArticle) {
	return func(a *services.NewArticle) { a.Author = ptr(username) }
}

// WithImage sets the article image URL.
func WithImage(url string) func(*services.NewArticle) {
	return func(a *services.NewArticle) { a.ArticleImgURL = ptr(url) }
}

// WithoutBody clears the body so the insert violates NOT NULL.
func WithoutBody() func(*services.NewArticle) {
	return func(a *services.NewArticle) { a.Body = nil }
}

// NewComment returns a valid NewComment by butter_bridge.
func NewComment(body string) services.NewComment {
	return services.NewComment{Username: ptr("butter_bridge"), Body: ptr(body)}
}
