package domain

import (
	"fmt"
	"strings"
	"time"
)

type ContactTab string

const (
	ContactTabAll         ContactTab = "all"
	ContactTabBrands      ContactTab = "brands"
	ContactTabInfluencers ContactTab = "influencers"
	ContactTabFavorites   ContactTab = "favorites"
	ContactTabUnread      ContactTab = "unread"
)

func ParseContactTab(v string) (ContactTab, error) {
	switch t := ContactTab(strings.ToLower(strings.TrimSpace(v))); t {
	case "":
		return ContactTabAll, nil
	case ContactTabAll, ContactTabBrands, ContactTabInfluencers, ContactTabFavorites, ContactTabUnread:
		return t, nil
	default:
		return "", fmt.Errorf("%w: unknown contact tab %q", ErrInvalidInput, v)
	}
}

type Message struct {
	MessageID   string
	SenderID    string
	RecipientID string
	Text        string
	SentAt      time.Time
}

// Contact is one participant's view of a conversation.
type Contact struct {
	OwnerID       string
	ContactID     string
	ContactName   string
	ContactType   UserType
	LastMessage   string
	LastMessageAt time.Time
	Unread        int
	Favorite      bool
}

// ConversationKey identifies the message thread between two users regardless
// of who sent first.
func ConversationKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + ":" + b
}

func FilterContacts(contacts []Contact, query string, tab ContactTab) []Contact {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]Contact, 0, len(contacts))
	for _, c := range contacts {
		if query != "" && !strings.Contains(strings.ToLower(c.ContactName), query) {
			continue
		}
		switch tab {
		case ContactTabBrands:
			if c.ContactType != UserTypeBrand {
				continue
			}
		case ContactTabInfluencers:
			if c.ContactType != UserTypeInfluencer {
				continue
			}
		case ContactTabFavorites:
			if !c.Favorite {
				continue
			}
		case ContactTabUnread:
			if c.Unread == 0 {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

func UnreadTotal(contacts []Contact) int {
	total := 0
	for _, c := range contacts {
		total += c.Unread
	}
	return total
}
