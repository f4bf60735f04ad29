package application

import (
	"context"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/domain"
)

func (s *Service) SendMessage(ctx context.Context, actor Actor, recipientID, text string) (_ MessageView, err error) {
	ctx, span := s.startSpan(ctx, "SendMessage", actor)
	defer func() { endSpan(span, err) }()

	if strings.TrimSpace(actor.SubjectID) == "" {
		return MessageView{}, domain.ErrUnauthorized
	}
	recipientID = strings.TrimSpace(recipientID)
	text = strings.TrimSpace(text)
	fields := domain.FieldErrors{}
	switch {
	case recipientID == "":
		fields["recipient_id"] = "is required"
	case recipientID == actor.SubjectID:
		fields["recipient_id"] = "must not be the sender"
	}
	switch {
	case text == "":
		fields["text"] = "is required"
	case utf8.RuneCountInString(text) > s.cfg.MaxMessageLength:
		fields["text"] = "must be at most " + strconv.Itoa(s.cfg.MaxMessageLength) + " characters"
	}
	if len(fields) > 0 {
		return MessageView{}, fields
	}

	recipient, err := s.users.GetByID(ctx, recipientID)
	if err != nil {
		return MessageView{}, err
	}
	sender := domain.User{UserID: actor.SubjectID, Name: actor.Name, Type: domain.UserType(actor.Role)}
	msg := domain.Message{
		MessageID:   uuid.NewString(),
		SenderID:    sender.UserID,
		RecipientID: recipient.UserID,
		Text:        text,
		SentAt:      s.nowFn(),
	}
	if err := s.inbox.AppendMessage(ctx, msg, sender, recipient); err != nil {
		return MessageView{}, err
	}
	return toMessageView(msg), nil
}

// OpenConversation returns the thread with contactID, oldest first, and
// clears the actor's unread count for it.
func (s *Service) OpenConversation(ctx context.Context, actor Actor, contactID string) ([]MessageView, error) {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return nil, domain.ErrUnauthorized
	}
	contactID = strings.TrimSpace(contactID)
	if _, err := s.inbox.GetContact(ctx, actor.SubjectID, contactID); err != nil {
		return nil, err
	}
	msgs, err := s.inbox.ListMessages(ctx, actor.SubjectID, contactID)
	if err != nil {
		return nil, err
	}
	if err := s.inbox.MarkRead(ctx, actor.SubjectID, contactID); err != nil {
		return nil, err
	}
	out := make([]MessageView, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessageView(m))
	}
	return out, nil
}

// ListContacts filters the actor's contacts. UnreadTotal covers every
// contact, not only the filtered ones.
func (s *Service) ListContacts(ctx context.Context, actor Actor, filter ContactFilter) (ContactsView, error) {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return ContactsView{}, domain.ErrUnauthorized
	}
	tab, err := domain.ParseContactTab(filter.Tab)
	if err != nil {
		return ContactsView{}, err
	}
	contacts, err := s.inbox.ListContacts(ctx, actor.SubjectID)
	if err != nil {
		return ContactsView{}, err
	}
	matched := domain.FilterContacts(contacts, filter.Query, tab)
	out := ContactsView{Items: make([]ContactView, 0, len(matched)), UnreadTotal: domain.UnreadTotal(contacts)}
	for _, c := range matched {
		out.Items = append(out.Items, toContactView(c))
	}
	return out, nil
}

func (s *Service) ToggleFavorite(ctx context.Context, actor Actor, contactID string) (ContactView, error) {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return ContactView{}, domain.ErrUnauthorized
	}
	contactID = strings.TrimSpace(contactID)
	current, err := s.inbox.GetContact(ctx, actor.SubjectID, contactID)
	if err != nil {
		return ContactView{}, err
	}
	updated, err := s.inbox.SetFavorite(ctx, actor.SubjectID, contactID, !current.Favorite)
	if err != nil {
		return ContactView{}, err
	}
	return toContactView(updated), nil
}
