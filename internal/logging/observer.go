package logging

import (
	"go.uber.org/zap"

	"github.com/lojhan/hashbench/internal/store"
)

type Observer struct {
	logger *zap.Logger
}

var _ store.Observer = (*Observer)(nil)

func NewObserver(logger *zap.Logger, fields ...zap.Field) *Observer {
	return &Observer{logger: logger.With(fields...)}
}

func (o *Observer) Collision(index uint64, key string) {
	o.logger.Debug("collision", zap.Uint64("index", index), zap.String("key", key))
}

func (o *Observer) Rehash(oldCapacity, newCapacity uint64) {
	o.logger.Debug("rehash", zap.Uint64("old_capacity", oldCapacity), zap.Uint64("new_capacity", newCapacity))
}
