package activity

import "context"

type ActivityRepository interface {
	Insert(ctx context.Context, e Entry) error
}
