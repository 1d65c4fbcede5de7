package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"mfin-backend/internal/config"
	"mfin-backend/internal/metrics"
	"mfin-backend/internal/store"
	"mfin-backend/internal/timeutil"
)

// BackupService periodically snapshots every collection document into one
// JSON object and uploads it to S3-compatible storage (an R2-style endpoint).
// Disabled unless the backup section of the config is filled in.
type BackupService struct {
	cfg   config.BackupConfig
	store store.CollectionStore

	mu     sync.Mutex
	ticker *time.Ticker
	stop   chan bool
}

func NewBackupService(cfg config.BackupConfig, s store.CollectionStore) *BackupService {
	return &BackupService{cfg: cfg, store: s}
}

// Start launches the backup scheduler. The first backup runs immediately.
func (b *BackupService) Start() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.cfg.Enabled {
		log.Println("[Backup] Disabled, scheduler not started")
		return
	}
	if b.ticker != nil {
		return // already running
	}

	interval := b.cfg.Interval
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	b.ticker = time.NewTicker(interval)
	b.stop = make(chan bool)

	go func() {
		log.Println("[Backup] Starting collection backup scheduler")
		b.runOnce()

		for {
			select {
			case <-b.ticker.C:
				b.runOnce()
			case <-b.stop:
				log.Println("[Backup] Scheduler stopped")
				return
			}
		}
	}()

	log.Printf("[Backup] Scheduler started (interval: %v)", interval)
}

// Stop halts the scheduler
func (b *BackupService) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ticker != nil {
		b.ticker.Stop()
		b.stop <- true
		b.ticker = nil
	}
}

func (b *BackupService) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	log.Println("[Backup] Starting backup...")

	snapshot, err := b.snapshot(ctx)
	if err != nil {
		log.Printf("[Backup] Failed to snapshot collections: %v", err)
		metrics.BackupRuns.WithLabelValues("failure").Inc()
		return
	}

	client, err := b.client(ctx)
	if err != nil {
		log.Printf("[Backup] Failed to configure storage client: %v", err)
		metrics.BackupRuns.WithLabelValues("failure").Inc()
		return
	}

	key := fmt.Sprintf("collections/mfin_%s.json", timeutil.Now().Format("20060102_150405"))
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(snapshot),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		log.Printf("[Backup] Failed to upload: %v", err)
		metrics.BackupRuns.WithLabelValues("failure").Inc()
		return
	}

	metrics.BackupRuns.WithLabelValues("success").Inc()
	log.Printf("[Backup] Success: %s (%d bytes)", key, len(snapshot))
}

// snapshot gathers every collection document into one keyed JSON object.
// A collection that has never been written appears as null.
func (b *BackupService) snapshot(ctx context.Context) ([]byte, error) {
	out := make(map[string]json.RawMessage, len(store.Names))
	for _, name := range store.Names {
		data, err := b.store.Load(ctx, name)
		if err != nil {
			if errors.Is(err, store.ErrCollectionMissing) {
				out[name] = json.RawMessage("null")
				continue
			}
			return nil, fmt.Errorf("load %s: %w", name, err)
		}
		out[name] = json.RawMessage(data)
	}
	return json.Marshal(out)
}

func (b *BackupService) client(ctx context.Context) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			b.cfg.AccessKey,
			b.cfg.SecretKey,
			"",
		)),
		awsconfig.WithRegion(b.cfg.Region),
	)
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(b.cfg.Endpoint)
	}), nil
}
