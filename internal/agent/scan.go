package agent

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/retrohunt/retro-hunter/internal/metrics"
	"github.com/retrohunt/retro-hunter/pkg/platform"
	domain "github.com/retrohunt/retro-hunter/pkg/types"
)

const defaultScanPrompt = "Identify the video game in this photo. Respond with the exact game title and its platform."

// ScanResult is the outcome of identifying a game from a photo.
type ScanResult struct {
	Title    string
	Platform domain.PlatformID
	Listings []domain.Listing
	// Raw holds the backend's free-text answer when it could not produce
	// a structured identification.
	Raw string
}

// Identified reports whether the scan produced a usable game title.
func (r ScanResult) Identified() bool {
	return r.Title != ""
}

// Scan uploads a photo of a game to the agent backend and returns the
// identified title, platform and any eBay listings found for it.
func (c *Client) Scan(ctx context.Context, filename string, image io.Reader) (ScanResult, error) {
	if err := c.wait(ctx, "scan"); err != nil {
		return ScanResult{}, err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return ScanResult{}, fmt.Errorf("building upload: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return ScanResult{}, fmt.Errorf("reading image: %w", err)
	}
	if err := mw.WriteField("prompt", defaultScanPrompt); err != nil {
		return ScanResult{}, fmt.Errorf("building upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return ScanResult{}, fmt.Errorf("building upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/ask-agent-image-with-ebay", &buf)
	if err != nil {
		return ScanResult{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return ScanResult{}, fmt.Errorf("calling agent scan: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ScanResult{}, fmt.Errorf("reading scan response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return ScanResult{}, fmt.Errorf("agent scan returned status %d: %s", resp.StatusCode, body)
	}

	result := parseScan(gjson.ParseBytes(body))

	metrics.SearchesTotal.Inc()
	metrics.SearchDuration.Observe(time.Since(start).Seconds())
	c.log.Info("scan finished",
		"title", result.Title, "platform", result.Platform, "results", len(result.Listings))

	return result, nil
}

// parseScan handles the shapes the backend is known to return: a structured
// identification with "titulo"/"plataforma"/"ebay_results", a "games" array
// (multiple candidates, first one wins), "price_data" listings, or a bare
// "raw" answer when the model could not identify the game.
func parseScan(body gjson.Result) ScanResult {
	result := ScanResult{
		Title: body.Get("titulo").String(),
		Raw:   body.Get("raw").String(),
	}
	if result.Title == "" {
		result.Title = body.Get("title").String()
	}

	identified := body
	if result.Title == "" {
		if games := body.Get("games"); games.IsArray() && len(games.Array()) > 0 {
			identified = games.Array()[0]
			result.Title = identified.Get("titulo").String()
			if result.Title == "" {
				result.Title = identified.Get("title").String()
			}
		}
	}

	if p := identified.Get("plataforma").String(); p != "" {
		result.Platform = platform.Normalize(p)
	} else if p := identified.Get("platform").String(); p != "" {
		result.Platform = platform.Normalize(p)
	}

	for _, key := range []string{"ebay_results", "resultados", "price_data"} {
		if rows := identified.Get(key); rows.IsArray() {
			result.Listings = parseListings(rows)
			break
		}
	}

	return result
}
