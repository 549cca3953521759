package repo

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fintrack/whatsapp-finance-extractor/pkg/common"
	"github.com/fintrack/whatsapp-finance-extractor/pkg/database"
)

type Postgres struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) (*Postgres, error) {
	m := gormigrate.New(db, &gormigrate.Options{
		TableName:                 "gorm_migrations",
		IDColumnName:              "id",
		IDColumnSize:              255,
		UseTransaction:            false,
		ValidateUnknownMigrations: false,
	}, getMigrations())

	if err := m.Migrate(); err != nil {
		return nil, errors.Wrap(err, "failed to migrate")
	}

	return &Postgres{
		db: db,
	}, nil
}

func (p *Postgres) AddMessage(ctx context.Context, message database.Message) error {
	err := p.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&message).Error

	return errors.Wrap(err, "failed to insert message")
}

func (p *Postgres) GetMessage(ctx context.Context, id string) (*database.Message, error) {
	var message database.Message

	err := p.db.WithContext(ctx).
		Where("id = ?", id).
		First(&message).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrapf(common.ErrNotFound, "message %s", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch message")
	}

	return &message, nil
}

func (p *Postgres) MarkProcessed(ctx context.Context, id string, reply string) error {
	err := p.db.WithContext(ctx).
		Model(&database.Message{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_processed": true,
			"processed_at": time.Now().UTC(),
			"reply":        reply,
		}).Error

	return errors.Wrap(err, "failed to mark message processed")
}

// AddTransaction inserts the transaction unless one already exists for the
// same inbound message. The unique index on message_id makes this the
// at-most-once guard; the bool reports whether this call created the row.
func (p *Postgres) AddTransaction(ctx context.Context, tx database.Transaction) (bool, error) {
	res := p.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "message_id"}},
			DoNothing: true,
		}).
		Create(&tx)
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "failed to insert transaction")
	}

	return res.RowsAffected == 1, nil
}

func (p *Postgres) GetTransactionByMessage(
	ctx context.Context,
	messageID string,
) (*database.Transaction, error) {
	var tx database.Transaction

	err := p.db.WithContext(ctx).
		Where("message_id = ?", messageID).
		First(&tx).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrapf(common.ErrNotFound, "transaction for message %s", messageID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch transaction")
	}

	return &tx, nil
}

func (p *Postgres) ListTransactions(
	ctx context.Context,
	ownerID string,
	since time.Time,
) ([]*database.Transaction, error) {
	var transactions []*database.Transaction

	err := p.db.WithContext(ctx).
		Where("owner_id = ? and created_at >= ?", ownerID, since).
		Order("created_at asc").
		Find(&transactions).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list transactions")
	}

	return transactions, nil
}
