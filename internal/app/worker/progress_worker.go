package worker

import (
	"context"
	"edu_platform/internal/common"
	"edu_platform/internal/domain/model"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Recomputer is the part of the progress service the worker drives.
type Recomputer interface {
	Recompute(ctx context.Context, userID, courseID int) (*model.UserProgress, error)
}

// Queue is the part of *redis.Client the worker uses.
type Queue interface {
	redis.Scripter
	BRPop(ctx context.Context, timeout time.Duration, keys ...string) *redis.StringSliceCmd
	LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

type ProgressWorker struct {
	rdb        Queue
	queueName  string
	lockPrefix string
	lockTTL    time.Duration
	progress   Recomputer
	popTimeout time.Duration
}

func NewProgressWorker(rdb Queue, queueName, lockPrefix string, lockTTL time.Duration, progress Recomputer) *ProgressWorker {
	return &ProgressWorker{
		rdb:        rdb,
		queueName:  queueName,
		lockPrefix: lockPrefix,
		lockTTL:    lockTTL,
		progress:   progress,
		popTimeout: 5 * time.Second,
	}
}

// releaseLockScript deletes the lock only if we still own it.
var releaseLockScript = redis.NewScript(`
    if redis.call("get", KEYS[1]) == ARGV[1] then
        return redis.call("del", KEYS[1])
    else
        return 0
    end
`)

func (w *ProgressWorker) Start(ctx context.Context) {
	log.Println("INFO: Progress worker started, listening to queue:", w.queueName)
	for {
		select {
		case <-ctx.Done():
			log.Println("INFO: Progress worker stopping...")
			return
		default:
		}

		// Blocking pop; the timeout lets the loop notice cancellation.
		popped, err := w.rdb.BRPop(ctx, w.popTimeout, w.queueName).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				continue
			}
			log.Printf("ERROR: Failed to BRPop from Redis queue '%s': %v", w.queueName, err)
			sleepCtx(ctx, 5*time.Second)
			continue
		}

		// popped is [queueName, value]
		if len(popped) < 2 || popped[1] == "" {
			log.Println("WARN: BRPop returned an empty progress job.")
			continue
		}
		w.handle(ctx, popped[1])
	}
}

func (w *ProgressWorker) handle(ctx context.Context, payload string) {
	var job model.ProgressJob
	if err := json.Unmarshal([]byte(payload), &job); err != nil {
		log.Printf("ERROR: Dropping malformed progress job %q: %v", payload, err)
		return
	}

	err := w.processWithLock(ctx, &job)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrLockNotHeld):
		log.Printf("INFO: Progress for user %d course %d is locked, re-queueing job %s.", job.UserID, job.CourseID, job.ID)
		if err := w.rdb.LPush(ctx, w.queueName, payload).Err(); err != nil {
			log.Printf("ERROR: Failed to re-queue job %s: %v", job.ID, err)
		}
	case errors.Is(err, common.ErrNotFound):
		log.Printf("WARN: Dropping progress job %s: %v", job.ID, err)
	default:
		log.Printf("ERROR: Progress job %s failed: %v", job.ID, err)
	}
}

func (w *ProgressWorker) lockKey(job *model.ProgressJob) string {
	return fmt.Sprintf("%s:%d:%d", w.lockPrefix, job.UserID, job.CourseID)
}

func (w *ProgressWorker) processWithLock(ctx context.Context, job *model.ProgressJob) error {
	key := w.lockKey(job)
	lockValue := uuid.NewString()

	ok, err := w.rdb.SetNX(ctx, key, lockValue, w.lockTTL).Result()
	if err != nil {
		return fmt.Errorf("acquire lock %s: %w", key, err)
	}
	if !ok {
		return common.ErrLockNotHeld
	}
	defer func() {
		deleted, err := releaseLockScript.Run(ctx, w.rdb, []string{key}, lockValue).Int64()
		if err != nil {
			log.Printf("ERROR: Failed to release lock %s (job %s): %v", key, job.ID, err)
		} else if deleted == 0 {
			log.Printf("WARN: Lock %s expired before job %s finished.", key, job.ID)
		}
	}()

	p, err := w.progress.Recompute(ctx, job.UserID, job.CourseID)
	if err != nil {
		return err
	}
	log.Printf("INFO: Job %s (%s): user %d course %d at %d%%.", job.ID, job.Reason, job.UserID, job.CourseID, p.Progress)
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
