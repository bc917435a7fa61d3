package types

// LiveDataSource identifies an externally sourced signal stream.
type LiveDataSource string

// Live data sources. None of these are wired to a real integration; the
// composition step accepts them as a stub input stream.
const (
	SourceSlack      LiveDataSource = "slack"
	SourceGitHub     LiveDataSource = "github"
	SourceNotion     LiveDataSource = "notion"
	SourceEmail      LiveDataSource = "email"
	SourceMarketNews LiveDataSource = "market_news"
)

// LiveData is one externally sourced signal fed into composition.
type LiveData struct {
	Source    LiveDataSource `json:"source"`
	Content   string         `json:"content"`
	Timestamp string         `json:"timestamp"`
}
