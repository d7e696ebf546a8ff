package customer

import "context"

type Repository interface {
	Save(ctx context.Context, c *Customer) error
	Get(ctx context.Context, id string) (*Customer, error)
	Delete(ctx context.Context, id string) error
}
