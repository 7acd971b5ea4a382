package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/EldritchWeaver/MatchPoint/live"
	"github.com/EldritchWeaver/MatchPoint/models"
	"github.com/EldritchWeaver/MatchPoint/storage"
)

// Broadcaster pushes a message to every live client subscribed to a room.
// Implemented by live.Hub; nil disables broadcasting.
type Broadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

func tournamentRoom(tournamentID int) string {
	return live.TournamentRoom(tournamentID)
}

// runInTx runs fn inside a transaction, committing on success and rolling
// back on error. The single-connection pool makes the check-then-write
// sequences inside fn serialize against concurrent writers.
func runInTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func populateTeamCrestURL(team *models.Team, uploader storage.FileUploader) {
	if team == nil || uploader == nil || team.CrestKey == nil || *team.CrestKey == "" {
		return
	}
	if url := uploader.GetPublicURL(*team.CrestKey); url != "" {
		team.CrestURL = &url
	}
}

func populateTournamentBannerURL(tournament *models.Tournament, uploader storage.FileUploader) {
	if tournament == nil || uploader == nil || tournament.BannerKey == nil || *tournament.BannerKey == "" {
		return
	}
	if url := uploader.GetPublicURL(*tournament.BannerKey); url != "" {
		tournament.BannerURL = &url
	}
}

func extensionForContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, contentType)
	}
}
