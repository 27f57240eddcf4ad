package dto

// EverythingResponse はNewsAPI /everything のレスポンスです。
// エラー時は status が "error" になり message に詳細が入ります。
type EverythingResponse struct {
	Status   string    `json:"status"`
	Message  string    `json:"message"`
	Articles []Article `json:"articles"`
}

// Article は1記事です。
type Article struct {
	Source      Source `json:"source"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

// Source は記事の配信元です。
type Source struct {
	Name string `json:"name"`
}
