package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/domain"
	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/ports"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type inboxRepository struct {
	db *gorm.DB
}

func (r *inboxRepository) AppendMessage(ctx context.Context, msg domain.Message, sender, recipient domain.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sentAt := msg.SentAt.UTC()
		rec := messageModel{
			MessageID:       msg.MessageID,
			ConversationKey: domain.ConversationKey(msg.SenderID, msg.RecipientID),
			SenderID:        msg.SenderID,
			RecipientID:     msg.RecipientID,
			Body:            msg.Text,
			SentAt:          sentAt,
		}
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		if err := upsertContact(tx, sender.UserID, recipient, msg.Text, &sentAt, 0); err != nil {
			return err
		}
		return upsertContact(tx, recipient.UserID, sender, msg.Text, &sentAt, 1)
	})
}

// upsertContact refreshes the owner's row for other and adds unreadDelta to
// its unread count.
func upsertContact(tx *gorm.DB, ownerID string, other domain.User, text string, at *time.Time, unreadDelta int) error {
	rec := contactModel{
		OwnerID:       ownerID,
		ContactID:     other.UserID,
		ContactName:   other.Name,
		ContactType:   string(other.Type),
		LastMessage:   text,
		LastMessageAt: at,
		Unread:        unreadDelta,
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "owner_id"}, {Name: "contact_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"contact_name":    other.Name,
			"contact_type":    string(other.Type),
			"last_message":    text,
			"last_message_at": at,
			"unread":          gorm.Expr("inbox_contacts.unread + ?", unreadDelta),
		}),
	}).Create(&rec).Error
}

func (r *inboxRepository) ListMessages(ctx context.Context, userID, contactID string) ([]domain.Message, error) {
	var rows []messageModel
	if err := r.db.WithContext(ctx).
		Where("conversation_key = ?", domain.ConversationKey(userID, contactID)).
		Order("sent_at asc, message_id asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Message, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainMessage(row))
	}
	return out, nil
}

func (r *inboxRepository) ListContacts(ctx context.Context, ownerID string) ([]domain.Contact, error) {
	var rows []contactModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("last_message_at desc, contact_id asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Contact, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainContact(row))
	}
	return out, nil
}

func (r *inboxRepository) GetContact(ctx context.Context, ownerID, contactID string) (domain.Contact, error) {
	return getContact(r.db.WithContext(ctx), ownerID, contactID)
}

func (r *inboxRepository) MarkRead(ctx context.Context, ownerID, contactID string) error {
	res := r.db.WithContext(ctx).Model(&contactModel{}).
		Where("owner_id = ? AND contact_id = ?", ownerID, contactID).
		Update("unread", 0)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *inboxRepository) SetFavorite(ctx context.Context, ownerID, contactID string, favorite bool) (domain.Contact, error) {
	var out domain.Contact
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&contactModel{}).
			Where("owner_id = ? AND contact_id = ?", ownerID, contactID).
			Update("favorite", favorite)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		c, err := getContact(tx, ownerID, contactID)
		out = c
		return err
	})
	return out, err
}

func getContact(db *gorm.DB, ownerID, contactID string) (domain.Contact, error) {
	var rec contactModel
	if err := db.Where("owner_id = ? AND contact_id = ?", ownerID, contactID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Contact{}, domain.ErrNotFound
		}
		return domain.Contact{}, err
	}
	return toDomainContact(rec), nil
}

var _ ports.InboxRepository = (*inboxRepository)(nil)
