package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type WebhookMessage struct {
	Embeds []WebhookEmbed `json:"embeds"`
}

type WebhookEmbed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       int    `json:"color"`
}

const (
	colorRed    = 16711680
	colorGreen  = 65280
	colorYellow = 16776960
)

// Notifier posts batch summaries to a Discord compatible webhook.
type Notifier struct {
	URL    string
	Client *http.Client
}

func New(url string) *Notifier {
	return &Notifier{URL: url, Client: &http.Client{Timeout: 15 * time.Second}}
}

// BatchSummary sends the outcome of a conversion run. A nil or unconfigured
// notifier does nothing.
func (n *Notifier) BatchSummary(discovered, converted, failed, bands int, failures []string) error {
	if n == nil || n.URL == "" {
		return nil
	}
	embed := WebhookEmbed{
		Title: "✅ ASTER conversion finished",
		Description: fmt.Sprintf("%d files discovered, %d converted, %d failed, %d GeoTIFFs written.",
			discovered, converted, failed, bands),
		Color: colorGreen,
	}
	switch {
	case failed > 0 && converted == 0:
		embed.Title = "🚨 ASTER conversion failed"
		embed.Color = colorRed
	case failed > 0:
		embed.Title = "⚠️ ASTER conversion finished with failures"
		embed.Color = colorYellow
	}
	for _, f := range failures {
		embed.Description += "\n- " + f
	}
	return n.send(WebhookMessage{Embeds: []WebhookEmbed{embed}})
}

func (n *Notifier) send(message WebhookMessage) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return err
	}

	client := n.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Post(n.URL, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to send webhook notification, status code: %d", resp.StatusCode)
	}
	return nil
}
