// Package moonraker queries a Klipper/Moonraker HTTP API for printer
// telemetry.
package moonraker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mpetrik/skydeck/internal/domain"
)

const (
	defaultTimeout = 3 * time.Second

	// One query fetches print state plus both heater readings.
	queryPath = "/printer/objects/query?print_stats&extruder=target,temperature&heater_bed=target,temperature"
)

// envelope mirrors the Moonraker response. Sub-objects the printer
// does not report simply decode to zero values.
type envelope struct {
	Result struct {
		Status struct {
			PrintStats struct {
				State    string  `json:"state"`
				Progress float64 `json:"progress"`
			} `json:"print_stats"`
			Extruder struct {
				Temperature float64 `json:"temperature"`
				Target      float64 `json:"target"`
			} `json:"extruder"`
			HeaterBed struct {
				Temperature float64 `json:"temperature"`
				Target      float64 `json:"target"`
			} `json:"heater_bed"`
		} `json:"status"`
	} `json:"result"`
}

// Client is a Moonraker API client for a single printer.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for the printer at baseURL
// (e.g. "http://192.168.1.100:7125").
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// Query fetches one telemetry snapshot and normalizes it. An unknown
// or absent state maps to standby; absent numerics stay zero.
func (c *Client) Query(ctx context.Context) (domain.PrinterRecord, error) {
	reqURL := c.baseURL + queryPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return domain.PrinterRecord{}, fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug("moonraker request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.PrinterRecord{}, fmt.Errorf("moonraker request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.PrinterRecord{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return domain.PrinterRecord{}, fmt.Errorf("moonraker status %d", resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return domain.PrinterRecord{}, fmt.Errorf("failed to parse response: %w", err)
	}

	status := env.Result.Status
	state := status.PrintStats.State
	if state == "" {
		state = domain.PrinterStandby
	}

	return domain.PrinterRecord{
		State:        state,
		Progress:     status.PrintStats.Progress,
		HotendTemp:   status.Extruder.Temperature,
		HotendTarget: status.Extruder.Target,
		BedTemp:      status.HeaterBed.Temperature,
		BedTarget:    status.HeaterBed.Target,
	}, nil
}
