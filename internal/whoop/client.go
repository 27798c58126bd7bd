package whoop

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// ErrNoRecords is returned when the WHOOP API has no data for the user.
var ErrNoRecords = errors.New("whoop: no records")

const defaultTimeout = 15 * time.Second

// Client calls the WHOOP developer API on behalf of one user.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a Client. httpClient must already carry the user's
// OAuth credentials (see ClientFactory).
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Recovery is the subset of a WHOOP recovery record this service uses.
type Recovery struct {
	Score    float64
	HRVMilli float64
}

type recoveryResponse struct {
	Records []struct {
		Score *struct {
			RecoveryScore float64 `json:"recovery_score"`
			HRVRMSSDMilli float64 `json:"hrv_rmssd_milli"`
		} `json:"score"`
	} `json:"records"`
}

// LatestRecovery fetches the most recent recovery record.
func (c *Client) LatestRecovery(ctx context.Context) (Recovery, error) {
	var parsed recoveryResponse
	if err := c.get(ctx, "/v1/recovery", &parsed); err != nil {
		return Recovery{}, err
	}
	if len(parsed.Records) == 0 || parsed.Records[0].Score == nil {
		return Recovery{}, ErrNoRecords
	}
	score := parsed.Records[0].Score
	return Recovery{
		Score:    score.RecoveryScore,
		HRVMilli: score.HRVRMSSDMilli,
	}, nil
}

type sleepResponse struct {
	Records []struct {
		Score *struct {
			SleepPerformancePercentage float64 `json:"sleep_performance_percentage"`
		} `json:"score"`
	} `json:"records"`
}

// LatestSleepPerformance fetches the most recent sleep performance percentage.
func (c *Client) LatestSleepPerformance(ctx context.Context) (float64, error) {
	var parsed sleepResponse
	if err := c.get(ctx, "/v1/activity/sleep", &parsed); err != nil {
		return 0, err
	}
	if len(parsed.Records) == 0 || parsed.Records[0].Score == nil {
		return 0, ErrNoRecords
	}
	return parsed.Records[0].Score.SleepPerformancePercentage, nil
}

type cycleResponse struct {
	Records []struct {
		Score *struct {
			Strain float64 `json:"strain"`
		} `json:"score"`
	} `json:"records"`
}

// LatestStrain fetches the most recent physiological cycle strain (0-21).
func (c *Client) LatestStrain(ctx context.Context) (float64, error) {
	var parsed cycleResponse
	if err := c.get(ctx, "/v1/cycle", &parsed); err != nil {
		return 0, err
	}
	if len(parsed.Records) == 0 || parsed.Records[0].Score == nil {
		return 0, ErrNoRecords
	}
	return parsed.Records[0].Score.Strain, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("whoop request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("whoop status %d for %s", resp.StatusCode, path)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("whoop response parse: %w", err)
	}
	return nil
}

// ClientFactory builds per-session Clients whose HTTP transport refreshes
// expired tokens through the OAuth config.
type ClientFactory struct {
	BaseURL string
	OAuth   *oauth2.Config
	Timeout time.Duration
}

// ForToken returns a Client for the given token. onRefresh, if non-nil, is
// invoked whenever the underlying token source mints a new token.
func (f *ClientFactory) ForToken(token *oauth2.Token, onRefresh func(*oauth2.Token)) *Client {
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	var source oauth2.TokenSource = f.OAuth.TokenSource(context.Background(), token)
	if onRefresh != nil {
		source = &notifyingTokenSource{base: source, last: token, onRefresh: onRefresh}
	}

	httpClient := &http.Client{
		Transport: &oauth2.Transport{Source: source},
		Timeout:   timeout,
	}
	return NewClient(f.BaseURL, httpClient)
}

// notifyingTokenSource surfaces refreshed tokens so callers can persist them
// back to the session.
type notifyingTokenSource struct {
	mu        sync.Mutex
	base      oauth2.TokenSource
	last      *oauth2.Token
	onRefresh func(*oauth2.Token)
}

func (s *notifyingTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.base.Token()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	changed := s.last == nil || token.AccessToken != s.last.AccessToken
	if changed {
		s.last = token
	}
	s.mu.Unlock()
	if changed {
		s.onRefresh(token)
	}
	return token, nil
}
