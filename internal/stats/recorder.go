package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ScoreAppender stores score records.
type ScoreAppender interface {
	AppendScore(ctx context.Context, s Score) error
}

// WinInput identifies a game that has just been won.
type WinInput struct {
	UserID   string
	UserName string
	GameID   string
	Misses   int
}

// Recorder turns finished games into score records and aggregate updates.
type Recorder struct {
	scores ScoreAppender
	agg    *Aggregator
	now    func() time.Time
}

// NewRecorder wires a Recorder.
func NewRecorder(scores ScoreAppender, agg *Aggregator) *Recorder {
	return &Recorder{scores: scores, agg: agg, now: time.Now}
}

// RecordWin stores the score for a won game and updates the owner's aggregates.
func (r *Recorder) RecordWin(ctx context.Context, in WinInput) (Score, error) {
	s := Score{
		ID:       uuid.NewString(),
		UserID:   in.UserID,
		UserName: in.UserName,
		GameID:   in.GameID,
		Date:     r.now().UTC(),
		Won:      true,
		Misses:   in.Misses,
	}
	if err := r.scores.AppendScore(ctx, s); err != nil {
		return Score{}, fmt.Errorf("append score for game %s: %w", in.GameID, err)
	}
	if err := r.agg.RecordOutcome(ctx, in.UserID, true, in.Misses); err != nil {
		return Score{}, err
	}
	return s, nil
}

// RecordLoss updates aggregates for a lost or cancelled game. No score is kept.
func (r *Recorder) RecordLoss(ctx context.Context, userID string, misses int) error {
	return r.agg.RecordOutcome(ctx, userID, false, misses)
}
