package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"tradejournal/src/client"
)

// Importer bulk-loads journal entries from a JSON file (an array of trade
// payloads) through the HTTP API, so validation and P&L derivation run in
// one place.
type Importer struct{}

func (i *Importer) Start(ctx context.Context, file string) error {
	config := GetConfig()
	if file == "" {
		file = config.ImportFile
	}

	raw, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read import file: %w", err)
	}

	var payloads []json.RawMessage
	if err := json.Unmarshal(raw, &payloads); err != nil {
		return fmt.Errorf("import file must hold a JSON array of trades: %w", err)
	}

	api := client.New(config.APIBaseURL)

	imported := 0
	failed := 0
	for index, payload := range payloads {
		trade, err := api.CreateTrade(ctx, payload)
		if err != nil {
			failed++
			logrus.WithFields(map[string]interface{}{
				"index": index,
			}).WithError(err).Error("Failed to import trade")
			continue
		}

		imported++
		logrus.WithFields(map[string]interface{}{
			"trade_id": trade.ID,
			"symbol":   trade.Symbol,
			"pnl":      trade.Pnl,
		}).Info("Trade imported")
	}

	logrus.WithFields(map[string]interface{}{
		"file":     file,
		"imported": imported,
		"failed":   failed,
	}).Info("Import finished")

	if failed > 0 {
		return fmt.Errorf("%d of %d trades failed to import", failed, len(payloads))
	}

	return nil
}
