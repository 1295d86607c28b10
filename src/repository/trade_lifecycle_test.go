package repository

import (
	"context"
	"encoding/json"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tradejournal/src/dto"
	"tradejournal/src/mapper"
	"tradejournal/src/model"
)

// helper to create a new in memory gorm DB and migrate schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in memory db: %v", err)
	}

	if err := db.AutoMigrate(&model.Trade{}); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}

	return db
}

func decodeInput(t *testing.T, body string) dto.TradeInput {
	t.Helper()
	var in dto.TradeInput
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		t.Fatalf("failed to decode input: %v", err)
	}
	return in
}

// Full create, read, partial-update, delete cycle through the mapper and the
// repository against a real (in memory) database.
func TestTradeLifecycle(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := (&TradeRepository{}).WithDB(db)

	created, err := mapper.NewTradeFromInput(decodeInput(t, `{
		"symbol":"BTC/USDT","tradeType":"LONG",
		"entryPrice":100,"exitPrice":110,"quantity":2,
		"tags":["breakout"],"notes":"first entry"
	}`))
	if err != nil {
		t.Fatalf("failed to map create payload: %v", err)
	}

	if err := repo.Create(ctx, created); err != nil {
		t.Fatalf("failed to create trade: %v", err)
	}

	loaded, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("failed to load trade: %v", err)
	}
	if loaded == nil {
		t.Fatal("created trade not found")
	}
	if loaded.Pnl != 20 || loaded.PnlPercentage != 10 {
		t.Fatalf("unexpected derived values: pnl=%v pct=%v", loaded.Pnl, loaded.PnlPercentage)
	}

	// partial update touching only the notes must not disturb the P&L
	if _, err := mapper.ApplyUpdate(loaded, decodeInput(t, `{"notes":"revised"}`)); err != nil {
		t.Fatalf("failed to apply update: %v", err)
	}
	if err := repo.Save(ctx, loaded); err != nil {
		t.Fatalf("failed to save trade: %v", err)
	}

	reloaded, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("failed to reload trade: %v", err)
	}
	if reloaded.Pnl != 20 || reloaded.EntryPrice != 100 {
		t.Fatalf("partial update disturbed stored values: %+v", reloaded)
	}
	if reloaded.Notes == nil || *reloaded.Notes != "revised" {
		t.Fatalf("notes not updated: %+v", reloaded.Notes)
	}
	if reloaded.Tags == nil || *reloaded.Tags != "breakout" {
		t.Fatalf("tags must survive an unrelated update: %+v", reloaded.Tags)
	}

	// updating the exit price recomputes the derived columns from the
	// previously stored entry price, quantity and direction
	if _, err := mapper.ApplyUpdate(reloaded, decodeInput(t, `{"exitPrice":90}`)); err != nil {
		t.Fatalf("failed to apply price update: %v", err)
	}
	if err := repo.Save(ctx, reloaded); err != nil {
		t.Fatalf("failed to save price update: %v", err)
	}

	repriced, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("failed to reload trade: %v", err)
	}
	if repriced.Pnl != -20 || repriced.PnlPercentage != -10 {
		t.Fatalf("derived values not recomputed: pnl=%v pct=%v", repriced.Pnl, repriced.PnlPercentage)
	}

	deleted, err := repo.DeleteByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("failed to delete trade: %v", err)
	}
	if !deleted {
		t.Fatal("expected deletion to be reported")
	}

	gone, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error after delete: %v", err)
	}
	if gone != nil {
		t.Fatalf("trade still present after delete: %+v", gone)
	}

	deletedAgain, err := repo.DeleteByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error deleting twice: %v", err)
	}
	if deletedAgain {
		t.Fatal("deleting an unknown id must not report success")
	}
}
