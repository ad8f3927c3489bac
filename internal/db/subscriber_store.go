// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package db

import (
	"context"

	"github.com/google/uuid"

	"github.com/quixsi/glossa/internal/model"
)

type SubscriberStore interface {
	CreateSubscriber(context.Context, *model.Subscriber) (uuid.UUID, error)
	DeleteSubscriber(context.Context, uuid.UUID) error
	ListSubscribers(context.Context) ([]*model.Subscriber, error)
}
