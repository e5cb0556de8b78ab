package email

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/newsletter-server/internal/logger"
	"github.com/dtroode/newsletter-server/internal/model"
)

var _ model.EmailSender = (*ArchivingSender)(nil)

// ArchivingSender stores a copy of every successfully sent email in object
// storage. Archiving is best effort and never fails a send.
type ArchivingSender struct {
	next    model.EmailSender
	storage model.Storage
	from    string
	prefix  string
	logger  *logger.Logger
	now     func() time.Time
}

func NewArchivingSender(next model.EmailSender, storage model.Storage, from, prefix string, logger *logger.Logger) *ArchivingSender {
	return &ArchivingSender{
		next:    next,
		storage: storage,
		from:    from,
		prefix:  prefix,
		logger:  logger,
		now:     time.Now,
	}
}

func (a *ArchivingSender) Send(ctx context.Context, e model.Email) error {
	if err := a.next.Send(ctx, e); err != nil {
		return err
	}

	now := a.now().UTC()
	key := archiveKey(a.prefix, now, uuid.NewString())
	log := a.logger.WithContext(ctx)

	msg, err := Render(a.from, e, now)
	if err != nil {
		log.Warn("Email archive: failed to render message", "key", key, "error", err.Error())
		return nil
	}
	if err := a.storage.Upload(ctx, key, bytes.NewReader(msg)); err != nil {
		log.Warn("Email archive: failed to upload message", "key", key, "error", err.Error())
		return nil
	}

	log.Debug("Email archive: message stored", "key", key)
	return nil
}

func archiveKey(prefix string, t time.Time, id string) string {
	return path.Join(prefix, t.Format("2006/01/02"), fmt.Sprintf("%s.eml", id))
}
