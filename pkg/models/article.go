package models

import "time"

// DefaultArticleImageURL is stored when an article is created without an image.
const DefaultArticleImageURL = "https://images.pexels.com/photos/97050/pexels-photo-97050.jpeg?w=700&h=700"

// Article is a published piece belonging to one topic and written by one user.
// CommentCount is derived at query time and never stored.
type Article struct {
	ID            int       `json:"article_id"`
	Title         string    `json:"title"`
	Topic         string    `json:"topic"`
	Author        string    `json:"author"`
	Body          string    `json:"body"`
	Votes         int       `json:"votes"`
	ArticleImgURL string    `json:"article_img_url"`
	CreatedAt     time.Time `json:"created_at"`
	CommentCount  int       `json:"comment_count"`
}
