package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// ErrNoData is returned when the API answers successfully but carries no
// entry for the requested ISBN.
var ErrNoData = fmt.Errorf("openlibrary: no data for isbn")

// ErrUnavailable covers transport failures, non-2xx responses and
// unparseable bodies. Callers are expected to treat it as a single failed
// attempt; the client never retries.
var ErrUnavailable = fmt.Errorf("openlibrary: lookup failed")

const coverURLTemplate = "https://covers.openlibrary.org/b/isbn/%s-L.jpg"

type Client struct {
	httpClient *http.Client
	userAgent  string
	baseURL    string
	limiter    *rate.Limiter
}

func NewClient(baseURL, userAgent string, rps int) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		userAgent: userAgent,
		baseURL:   baseURL,
		limiter:   rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
	}
}

// BookData is the normalized record built from an api/books?jscmd=data entry.
// All fields default to the empty string when the source omits them; CoverURL
// is synthesized from the ISBN and never taken from the response.
type BookData struct {
	Title         string
	Publisher     string
	PublishedDate string
	Description   string
	CoverURL      string
}

// rawBookData matches the wire shape of a single bibkey entry. The
// description is either a plain string or an object with a "value" field.
type rawBookData struct {
	Title       string          `json:"title"`
	Publishers  []string        `json:"publishers"`
	PublishDate string          `json:"publish_date"`
	Description json.RawMessage `json:"description"`
}

// FetchByISBN looks up a single ISBN. It returns ErrNoData when the response
// parses but has no entry for the ISBN, and an ErrUnavailable-wrapped error
// for every transport or decoding failure.
func (c *Client) FetchByISBN(ctx context.Context, isbn string) (BookData, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return BookData{}, err
	}

	u := fmt.Sprintf("%s?bibkeys=ISBN:%s&format=json&jscmd=data", c.baseURL, url.QueryEscape(isbn))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return BookData{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return BookData{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return BookData{}, fmt.Errorf("%w: unexpected status code %d", ErrUnavailable, resp.StatusCode)
	}

	var envelope map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return BookData{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	entry, ok := envelope["ISBN:"+isbn]
	if !ok {
		return BookData{}, ErrNoData
	}

	var raw rawBookData
	if err := json.Unmarshal(entry, &raw); err != nil {
		return BookData{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if isEmptyObject(entry) {
		return BookData{}, ErrNoData
	}

	return normalize(isbn, raw), nil
}

func normalize(isbn string, raw rawBookData) BookData {
	data := BookData{
		Title:         raw.Title,
		PublishedDate: raw.PublishDate,
		Description:   formatDescription(raw.Description),
		CoverURL:      fmt.Sprintf(coverURLTemplate, isbn),
	}
	if len(raw.Publishers) > 0 {
		data.Publisher = raw.Publishers[0]
	}
	return data
}

// formatDescription handles the two shapes Open Library uses: a plain string
// or an object carrying the text under "value".
func formatDescription(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Value
	}
	return ""
}

func isEmptyObject(raw json.RawMessage) bool {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return false
	}
	return len(m) == 0
}
