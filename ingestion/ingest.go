package ingestion

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/bsm/redislock"
	"github.com/go-sql-driver/mysql"
	"github.com/quickcart/recon_backend/config"
	"github.com/quickcart/recon_backend/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrIngestLocked means another ingest run currently holds the feed lock.
var ErrIngestLocked = errors.New("another ingest run is in progress")

const ingestLockKey = "Lock:RawLogIngest"

type Ingester struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewIngester(db *gorm.DB, logger *logrus.Logger) *Ingester {
	return &Ingester{db: db, logger: logger}
}

// Run cleans the stream, archives the accepted events verbatim, then inserts
// the cleaned rows one at a time, so one bad row fails alone instead of
// aborting the batch.
func (ing *Ingester) Run(ctx context.Context, r io.Reader) (*Stats, error) {
	logs, stats := Clean(ctx, r, ing.logger)
	if len(logs) == 0 {
		return stats, nil
	}

	ing.archive(ctx, logs, stats)

	ing.logger.WithFields(logrus.Fields{"rows": len(logs)}).Info("inserting standardized data")

	for i := range logs {
		if err := ing.db.WithContext(ctx).Create(&logs[i].Row).Error; err != nil {
			stats.Failed++
			ing.logger.WithFields(logrus.Fields{
				"event_id": logs[i].Row.EventId,
			}).Warnf("failed to insert: %v", err)
			continue
		}
		stats.Inserted++
	}

	ing.logger.WithFields(logrus.Fields{
		"inserted": stats.Inserted,
		"failed":   stats.Failed,
	}).Info("insertion complete")

	return stats, nil
}

// archive stores each accepted event's original payload before the cleaned
// insert, so history survives later cleaning-rule changes. Replayed feeds
// land on the event_id unique index and count as duplicates, not failures;
// any other archival error is logged and must not block the cleaned insert.
func (ing *Ingester) archive(ctx context.Context, logs []CleanedLog, stats *Stats) {
	ing.logger.WithFields(logrus.Fields{"rows": len(logs)}).Info("archiving raw logs")

	for i := range logs {
		rec := models.RawEventArchive{
			EventId: logs[i].Row.EventId,
			Payload: logs[i].Raw,
		}
		if err := ing.db.WithContext(ctx).Create(&rec).Error; err != nil {
			if isDuplicateKeyErr(err) {
				stats.Duplicates++
				ing.logger.WithFields(logrus.Fields{
					"event_id": rec.EventId,
				}).Debug("duplicate event_id, already archived")
				continue
			}
			stats.ArchiveFailed++
			ing.logger.WithFields(logrus.Fields{
				"event_id": rec.EventId,
			}).Warnf("failed to archive: %v", err)
			continue
		}
		stats.Archived++
	}

	ing.logger.WithFields(logrus.Fields{
		"archived":   stats.Archived,
		"duplicates": stats.Duplicates,
		"failed":     stats.ArchiveFailed,
	}).Info("archival complete")
}

func isDuplicateKeyErr(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// RunLocked wraps Run in a redis lock so two ingest runs cannot double-insert
// the same feed file. Without redis configured it degrades to a plain Run.
func (ing *Ingester) RunLocked(ctx context.Context, r io.Reader) (*Stats, error) {
	locker := config.GetRedisLock()
	if locker == nil {
		return ing.Run(ctx, r)
	}

	lock, err := locker.Obtain(ctx, ingestLockKey, 10*time.Minute, nil)
	if err != nil {
		if errors.Is(err, redislock.ErrNotObtained) {
			return nil, ErrIngestLocked
		}
		return nil, err
	}
	defer lock.Release(context.WithoutCancel(ctx))

	return ing.Run(ctx, r)
}

// IngestFile runs a locked ingest over one JSONL file.
func (ing *Ingester) IngestFile(ctx context.Context, path string) (*Stats, error) {
	ing.logger.WithFields(logrus.Fields{"file": path}).Info("processing raw logs")

	f, err := os.Open(path)
	if err != nil {
		config.LogError(ing.logger, "ingestion", "IngestFile", "open feed file", path, err)
		return nil, err
	}
	defer f.Close()

	return ing.RunLocked(ctx, f)
}
