package repo

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func getMigrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "2026_08_12_Initial",
			Migrate: func(db *gorm.DB) error {
				return db.Exec(`create table if not exists messages
(
    id           text not null
        constraint messages_pk
            primary key,
    sender       text not null,
    content      text not null,
    media_url    text,
    created_at   timestamp not null,
    processed_at timestamp,
    is_processed boolean not null default false,
    reply        text
);
`).Error
			},
		},
		{
			ID: "2026_08_12_Transactions",
			Migrate: func(db *gorm.DB) error {
				return db.Exec(`create table if not exists transactions
(
    id          text not null
        constraint transactions_pk
            primary key,
    owner_id    text not null,
    type        text not null,
    amount      decimal not null,
    category    text not null,
    description text,
    created_at  timestamp not null,
    source      text not null,
    message_id  text not null
        constraint transactions_message_id_uk
            unique
        references messages (id)
);
`).Error
			},
		},
		{
			ID: "2026_08_20_OwnerCreatedIndex",
			Migrate: func(db *gorm.DB) error {
				return db.Exec(`create index if not exists transactions_owner_created_idx
    on transactions (owner_id, created_at);
`).Error
			},
		},
	}
}
