package entity

type Article struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source"`
	Author      string `json:"author,omitempty"`
	URL         string `json:"url"`
	PublishedAt string `json:"published_at"`
	Content     string `json:"content,omitempty"`
}
