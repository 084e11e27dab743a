package domain

// FetchStatus is the tag of a FetchResult.
type FetchStatus string

const (
	FetchLoading FetchStatus = "loading"
	FetchSuccess FetchStatus = "success"
	FetchFailure FetchStatus = "failure"
)

// FetchResult is the state of the last headline fetch.
// Articles is set only on success and Message only on failure.
type FetchResult struct {
	Status   FetchStatus
	Articles []Article
	Message  string
}

func Loading() FetchResult {
	return FetchResult{Status: FetchLoading}
}

func Success(articles []Article) FetchResult {
	return FetchResult{Status: FetchSuccess, Articles: articles}
}

func Failure(message string) FetchResult {
	return FetchResult{Status: FetchFailure, Message: message}
}
