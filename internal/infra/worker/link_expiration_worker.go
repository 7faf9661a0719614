package worker

import (
	"context"
	"database/sql"
	"log"
	"time"
)

// LinkExpirationWorker sweeps deals whose payment link was never paid.
// A link older than the window is considered dead and the deal is marked
// EXPIRED so the analytics don't count it as an open opportunity forever.
type LinkExpirationWorker struct {
	db               *sql.DB
	expirationWindow time.Duration
	tickInterval     time.Duration
}

func NewLinkExpirationWorker(db *sql.DB) *LinkExpirationWorker {
	return &LinkExpirationWorker{
		db:               db,
		expirationWindow: 7 * 24 * time.Hour,
		tickInterval:     1 * time.Hour,
	}
}

func (w *LinkExpirationWorker) Start(ctx context.Context) {
	log.Println("link expiration worker started (7 day window)")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.expireStaleLinks(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("link expiration worker stopped")
			return
		case <-ticker.C:
			w.expireStaleLinks(ctx)
		}
	}
}

func (w *LinkExpirationWorker) expireStaleLinks(ctx context.Context) {
	query := `
		UPDATE deals
		SET
			status = 'EXPIRED',
			updated_at = NOW()
		WHERE
			status = 'PENDING'
			AND created_at < NOW() - INTERVAL '7 days'
		RETURNING id, lead_id, created_at
	`

	rows, err := w.db.QueryContext(ctx, query)
	if err != nil {
		log.Printf("failed to sweep stale payment links: %v", err)
		return
	}
	defer rows.Close()

	expiredCount := 0
	for rows.Next() {
		var dealID, leadID string
		var createdAt time.Time

		if err := rows.Scan(&dealID, &leadID, &createdAt); err != nil {
			log.Printf("failed to scan expired deal: %v", err)
			continue
		}

		log.Printf("payment link expired: deal=%s lead=%s age=%s",
			dealID, leadID, time.Since(createdAt).Round(time.Hour))
		expiredCount++
	}

	if expiredCount > 0 {
		log.Printf("%d deal(s) marked as EXPIRED", expiredCount)
	}
}
