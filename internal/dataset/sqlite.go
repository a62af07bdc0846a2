package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/angelcm/campaign-insight-go/internal/models"
)

// SQLiteLoader reads campaign records from a campaigns table. Every
// user-derived value is bound as a placeholder; predicates are never built
// by string interpolation.
type SQLiteLoader struct {
	db *sql.DB
}

const campaignsSchema = `
CREATE TABLE IF NOT EXISTS campaigns (
	campaign_id TEXT NOT NULL,
	date        TEXT NOT NULL,
	channel     TEXT NOT NULL,
	impressions INTEGER NOT NULL DEFAULT 0,
	clicks      INTEGER NOT NULL DEFAULT 0,
	conversions INTEGER NOT NULL DEFAULT 0,
	spend       REAL NOT NULL DEFAULT 0,
	revenue     REAL NOT NULL DEFAULT 0,
	tenant      TEXT NOT NULL
)`

func OpenSQLite(path string) (*SQLiteLoader, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	if _, err := db.Exec(campaignsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	return &SQLiteLoader{db: db}, nil
}

func (l *SQLiteLoader) Close() error { return l.db.Close() }

func (l *SQLiteLoader) Load(ctx context.Context, tenant string) ([]models.CampaignRecord, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT campaign_id, date, channel, impressions, clicks, conversions, spend, revenue, tenant
		FROM campaigns
		WHERE tenant = ?
		ORDER BY date, channel, campaign_id`, tenant)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	defer rows.Close()

	var out []models.CampaignRecord
	for rows.Next() {
		var r models.CampaignRecord
		var ds string
		if err := rows.Scan(&r.CampaignID, &ds, &r.Channel, &r.Impressions, &r.Clicks, &r.Conversions, &r.Spend, &r.Revenue, &r.Tenant); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
		}
		d, err := time.Parse("2006-01-02", ds)
		if err != nil {
			continue
		}
		r.Date = dayUTC(d)
		r.Impressions = max0(r.Impressions)
		r.Clicks = max0(r.Clicks)
		r.Conversions = max0(r.Conversions)
		r.Spend = maxf(r.Spend)
		r.Revenue = maxf(r.Revenue)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	return out, nil
}

// Insert is used by tests and seed tooling.
func (l *SQLiteLoader) Insert(ctx context.Context, recs ...models.CampaignRecord) error {
	stmt, err := l.db.PrepareContext(ctx, `
		INSERT INTO campaigns (campaign_id, date, channel, impressions, clicks, conversions, spend, revenue, tenant)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, r := range recs {
		if _, err := stmt.ExecContext(ctx, r.CampaignID, r.Date.Format("2006-01-02"), r.Channel,
			r.Impressions, r.Clicks, r.Conversions, r.Spend, r.Revenue, r.Tenant); err != nil {
			return err
		}
	}
	return nil
}
