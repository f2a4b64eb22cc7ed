package domain

import "context"

const (
	EntityVenue    = "venue"
	EntityArtist   = "artist"
	EntityShow     = "show"
	EntityQuestion = "question"

	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ChangeNotifier is told about every committed mutation.
type ChangeNotifier interface {
	NotifyChange(ctx context.Context, entity, action string, id uint)
}

type NopNotifier struct{}

func (NopNotifier) NotifyChange(context.Context, string, string, uint) {}

func notifierOrNop(n ChangeNotifier) ChangeNotifier {
	if n == nil {
		return NopNotifier{}
	}
	return n
}
