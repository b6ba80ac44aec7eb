package countries

import (
	"context"
	"errors"
	"fmt"

	"github.com/zjoart/paises/pkg/logger"
	"gorm.io/gorm"
)

// GormStore is the gorm implementation of Store, used for Postgres
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Close closes the pool behind the gorm handle
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// EnsureTables migrates the paises table with its unique indexes
func (s *GormStore) EnsureTables(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&Country{}); err != nil {
		logger.Error("gorm: migration failed", logger.WithError(err))
		return err
	}
	return nil
}

func (s *GormStore) DropTables(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Migrator().DropTable(&Country{}); err != nil {
		logger.Error("gorm: drop paises table failed", logger.WithError(err))
		return err
	}
	logger.Info("gorm: DropTables complete")
	return nil
}

func (s *GormStore) List(ctx context.Context) ([]Country, error) {
	out := []Country{}
	if err := s.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		logger.Error("gorm: List failed", logger.WithError(err))
		return nil, err
	}
	return out, nil
}

func (s *GormStore) FindByID(ctx context.Context, id int64) (*Country, error) {
	var c Country
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Error("gorm: FindByID failed", logger.Fields{"id": id}, logger.WithError(err))
		return nil, err
	}
	return &c, nil
}

func (s *GormStore) FindOne(ctx context.Context, field Field, value string) (*Country, error) {
	if !field.Valid() {
		return nil, fmt.Errorf("unknown field %q", field)
	}
	var c Country
	err := s.db.WithContext(ctx).Where(string(field)+" = ?", value).Order("id").Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Error("gorm: FindOne failed", logger.Fields{"field": field}, logger.WithError(err))
		return nil, err
	}
	return &c, nil
}

func (s *GormStore) Exists(ctx context.Context, field Field, value string) (bool, error) {
	if !field.Valid() {
		return false, fmt.Errorf("unknown field %q", field)
	}
	var n int64
	if err := s.db.WithContext(ctx).Model(&Country{}).Where(string(field)+" = ?", value).Count(&n).Error; err != nil {
		logger.Error("gorm: Exists failed", logger.Fields{"field": field}, logger.WithError(err))
		return false, err
	}
	return n > 0, nil
}

func (s *GormStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&Country{}).Where("id = ?", id).Count(&n).Error; err != nil {
		logger.Error("gorm: ExistsByID failed", logger.Fields{"id": id}, logger.WithError(err))
		return false, err
	}
	return n > 0, nil
}

func (s *GormStore) Insert(ctx context.Context, c *Country) error {
	c.ID = 0
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		err = duplicateError(err)
		logger.Error("gorm: Insert failed", logger.Fields{"country": c.Name}, logger.WithError(err))
		return err
	}
	return nil
}

func (s *GormStore) Update(ctx context.Context, c *Country) error {
	res := s.db.WithContext(ctx).Model(&Country{}).Where("id = ?", c.ID).Updates(map[string]interface{}{
		"nombre":     c.Name,
		"capital":    c.Capital,
		"continente": c.Continent,
		"idioma":     c.Language,
		"codigo":     c.Code,
	})
	if res.Error != nil {
		err := duplicateError(res.Error)
		logger.Error("gorm: Update failed", logger.Fields{"id": c.ID}, logger.WithError(err))
		return err
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) DeleteByID(ctx context.Context, id int64) (bool, error) {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&Country{})
	if res.Error != nil {
		logger.Error("gorm: DeleteByID failed", logger.Fields{"id": id}, logger.WithError(res.Error))
		return false, res.Error
	}
	logger.Info("gorm: DeleteByID result", logger.Fields{"id": id, "deleted": res.RowsAffected > 0})
	return res.RowsAffected > 0, nil
}

func (s *GormStore) DeleteByName(ctx context.Context, name string) (int64, error) {
	res := s.db.WithContext(ctx).Where("nombre = ?", name).Delete(&Country{})
	if res.Error != nil {
		logger.Error("gorm: DeleteByName failed", logger.Fields{"name": name}, logger.WithError(res.Error))
		return 0, res.Error
	}
	logger.Info("gorm: DeleteByName result", logger.Fields{"name": name, "deleted": res.RowsAffected})
	return res.RowsAffected, nil
}

func (s *GormStore) DeleteByContinent(ctx context.Context, continent string) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("continente = ?", continent).Delete(&Country{})
		if res.Error != nil {
			return res.Error
		}
		n = res.RowsAffected
		return nil
	})
	if err != nil {
		logger.Error("gorm: DeleteByContinent failed", logger.Fields{"continent": continent}, logger.WithError(err))
		return 0, err
	}
	return n, nil
}

func (s *GormStore) Summary(ctx context.Context) (*Summary, error) {
	var rows []struct {
		Continente *string
		N          int64
	}
	err := s.db.WithContext(ctx).Model(&Country{}).
		Select("continente, COUNT(*) AS n").
		Group("continente").
		Scan(&rows).Error
	if err != nil {
		logger.Error("gorm: Summary failed", logger.WithError(err))
		return nil, err
	}

	sum := &Summary{PerContinent: map[string]int64{}}
	for _, r := range rows {
		key := NoContinent
		if r.Continente != nil {
			key = *r.Continente
		}
		sum.PerContinent[key] += r.N
		sum.Total += r.N
	}
	return sum, nil
}
