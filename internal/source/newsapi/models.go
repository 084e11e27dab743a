package newsapi

import "fmt"

// APIResponse is the top-headlines response body. Code and Message are set when Status is "error".
type APIResponse struct {
	Status       string       `json:"status"`
	TotalResults int          `json:"totalResults"`
	Articles     []APIArticle `json:"articles"`
	Code         string       `json:"code"`
	Message      string       `json:"message"`
}

type APIArticle struct {
	Source      *APISource `json:"source"`
	Author      *string    `json:"author"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	URL         string     `json:"url"`
	URLToImage  *string    `json:"urlToImage"`
	PublishedAt *string    `json:"publishedAt"`
	Content     *string    `json:"content"`
}

type APISource struct {
	ID   *string `json:"id"`
	Name string  `json:"name"`
}

// APIError is returned when the API answers with a non-2xx status or an "error" body.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	switch {
	case e.Code != "" && e.Message != "":
		return fmt.Sprintf("newsapi %s (status %d): %s", e.Code, e.StatusCode, e.Message)
	case e.Message != "":
		return fmt.Sprintf("newsapi status %d: %s", e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("newsapi unexpected status: %d", e.StatusCode)
	}
}
