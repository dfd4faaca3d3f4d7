package infra

import "context"

type ChangeAnnouncer interface {
	Announce(ctx context.Context, collection string)
}

var _ ChangeAnnouncer = (*ChangeFeed)(nil)
