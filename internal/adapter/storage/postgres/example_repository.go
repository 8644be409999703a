package postgres

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seu-repo/genie-bridge/internal/domain"
	"github.com/seu-repo/genie-bridge/internal/ports"
)

// exampleRecord is the storage shape of a canonical example.
type exampleRecord struct {
	ID         int64  `gorm:"primaryKey;column:id"`
	Language   string `gorm:"column:language;index:idx_examples_intent,priority:1"`
	Device     string `gorm:"column:device;index:idx_examples_intent,priority:2"`
	Name       string `gorm:"column:name;index:idx_examples_intent,priority:3"`
	TargetCode string `gorm:"column:target_code"`
}

func (exampleRecord) TableName() string { return "examples" }

type ExampleRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewExampleRepository(db *gorm.DB, log *zap.Logger) ports.ExampleRepository {
	return &ExampleRepository{
		db:  db,
		log: log,
	}
}

// GetByIntentName returns the canonical example for the triple, or
// (nil, nil) when none is stored.
func (r *ExampleRepository) GetByIntentName(ctx context.Context, language, device, name string) (*domain.CanonicalExample, error) {
	var rec exampleRecord
	err := r.db.WithContext(ctx).First(&rec, "language = ? AND device = ? AND name = ?", language, device, name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &domain.CanonicalExample{
		ID:         rec.ID,
		Language:   rec.Language,
		Device:     rec.Device,
		Name:       rec.Name,
		TargetCode: rec.TargetCode,
	}, nil
}
