package holidayapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"homeops-service/internal/domain/entity"
)

const baseURL = "https://date.nager.at/api/v3/PublicHolidays"

// Client fetches US public holidays from the date.nager.at API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a holiday API client with a bounded request timeout
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

// apiHoliday is the subset of the nager.at response we care about.
type apiHoliday struct {
	Date      string   `json:"date"`
	LocalName string   `json:"localName"`
	Name      string   `json:"name"`
	Types     []string `json:"types"`
}

// FetchYear returns the year's nationwide public holidays
func (c *Client) FetchYear(ctx context.Context, year int) ([]entity.Holiday, error) {
	url := fmt.Sprintf("%s/%d/US", c.baseURL, year)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("holiday API returned status %d", resp.StatusCode)
	}

	var raw []apiHoliday
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode holiday response: %w", err)
	}

	holidays := make([]entity.Holiday, 0, len(raw))
	for _, h := range raw {
		if !isPublic(h.Types) {
			continue
		}
		holidays = append(holidays, entity.Holiday{
			Date:         h.Date,
			Name:         h.Name,
			Year:         year,
			ObservedDate: h.Date,
		})
	}
	return holidays, nil
}

func isPublic(types []string) bool {
	if len(types) == 0 {
		return true
	}
	for _, t := range types {
		if t == "Public" {
			return true
		}
	}
	return false
}
