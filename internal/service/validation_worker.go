package service

import (
	"context"
	"log"
	"time"

	"github.com/goroti11/trutube-sub003/internal/model"
	"github.com/goroti11/trutube-sub003/internal/repository"
)

// ValidationWorker is the periodic job that turns closed watch sessions
// into validated views. Each tick it drains the unvalidated backlog,
// applies the session validator, checks the user's recent window for
// bot-like patterns, refreshes the affected videos' aggregate scores, and
// hands trust deltas to the TrustWorker.
type ValidationWorker struct {
	sessions    *repository.SessionRepo
	videos      *repository.VideoRepo
	sessionSvc  *SessionService
	abuseSvc    *AbuseService
	aggregateSvc *AggregateService
	trustWorker *TrustWorker
	interval    time.Duration
	batchSize   int
	stopCh      chan struct{}
}

// NewValidationWorker creates a worker that ticks every interval.
func NewValidationWorker(
	sessions *repository.SessionRepo,
	videos *repository.VideoRepo,
	sessionSvc *SessionService,
	abuseSvc *AbuseService,
	aggregateSvc *AggregateService,
	trustWorker *TrustWorker,
	interval time.Duration,
) *ValidationWorker {
	return &ValidationWorker{
		sessions:     sessions,
		videos:       videos,
		sessionSvc:   sessionSvc,
		abuseSvc:     abuseSvc,
		aggregateSvc: aggregateSvc,
		trustWorker:  trustWorker,
		interval:     interval,
		batchSize:    200,
		stopCh:       make(chan struct{}),
	}
}

// Start begins the periodic validation loop. Runs one tick immediately,
// then every interval.
func (w *ValidationWorker) Start(ctx context.Context) {
	log.Printf("validation-worker: starting (interval=%s)", w.interval)

	w.tick(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.tick(ctx)
		case <-ctx.Done():
			log.Println("validation-worker: stopping (context cancelled)")
			return
		case <-w.stopCh:
			log.Println("validation-worker: stopping (stop signal)")
			return
		}
	}
}

// Stop signals the worker to stop.
func (w *ValidationWorker) Stop() {
	close(w.stopCh)
}

// tick runs one cycle over the unvalidated backlog.
func (w *ValidationWorker) tick(ctx context.Context) {
	start := time.Now()

	sessions, err := w.sessions.ListClosedUnvalidated(ctx, w.batchSize)
	if err != nil {
		log.Printf("validation-worker: list error: %v", err)
		return
	}
	if len(sessions) == 0 {
		return
	}

	validated, rejected, flagged := 0, 0, 0
	touchedVideos := make(map[string]struct{})

	for _, sess := range sessions {
		video, err := w.videos.FindByID(ctx, sess.VideoID)
		if err != nil {
			log.Printf("validation-worker: video lookup error for session %s: %v", sess.ID, err)
			continue
		}

		ok := w.sessionSvc.Validate(&sess, video, model.DefaultValidationRules)
		if err := w.sessions.MarkValidated(ctx, sess.ID, ok, sess.TrustScore); err != nil {
			log.Printf("validation-worker: mark error for session %s: %v", sess.ID, err)
			continue
		}
		if ok {
			validated++
		} else {
			rejected++
		}
		touchedVideos[sess.VideoID] = struct{}{}

		if sess.UserID == nil {
			continue
		}

		deltas := model.TrustDeltas{}
		if ok {
			deltas.ValidatedViews = 1
		}

		recent, err := w.sessions.ListRecentByUser(ctx, *sess.UserID, 10)
		if err != nil {
			log.Printf("validation-worker: recent sessions error for user %s: %v", *sess.UserID, err)
		} else if w.abuseSvc.DetectSuspiciousPattern(recent) {
			deltas.SuspiciousActions = 1
			flagged++
			if _, err := w.videos.IncrementSuspiciousPatterns(ctx, sess.VideoID); err != nil {
				log.Printf("validation-worker: suspicious counter error for video %s: %v", sess.VideoID, err)
			}
		}

		w.trustWorker.Enqueue(*sess.UserID, deltas)
	}

	for videoID := range touchedVideos {
		if err := w.refreshAggregates(ctx, videoID); err != nil {
			log.Printf("validation-worker: aggregate refresh error for video %s: %v", videoID, err)
		}
	}

	elapsed := time.Since(start)
	log.Printf("validation-worker: tick complete — %d validated, %d rejected, %d flagged, %d videos refreshed (%s)",
		validated, rejected, flagged, len(touchedVideos), elapsed.Round(time.Millisecond))
}

// refreshAggregates recomputes and persists a video's authenticity and
// quality scores from its session population.
func (w *ValidationWorker) refreshAggregates(ctx context.Context, videoID string) error {
	video, err := w.videos.FindByID(ctx, videoID)
	if err != nil {
		return err
	}

	total, validatedCount, err := w.sessions.CountViews(ctx, videoID)
	if err != nil {
		return err
	}

	suspicious, err := w.videos.GetSuspiciousPatterns(ctx, videoID)
	if err != nil {
		return err
	}

	validatedSessions, err := w.sessions.ListValidatedByVideo(ctx, videoID, 1000)
	if err != nil {
		return err
	}

	authenticity := w.aggregateSvc.AuthenticityScore(total, validatedCount, suspicious)
	quality := w.aggregateSvc.QualityScore(video, validatedSessions)

	return w.videos.UpdateAggregateScores(ctx, videoID, quality, authenticity)
}
