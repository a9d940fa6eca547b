package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// SnapshotModel records one published run.
type SnapshotModel struct {
	RunID         string    `gorm:"column:run_id;primaryKey;size:36"`
	Username      string    `gorm:"column:username;size:255"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	Games         int       `gorm:"column:games"`
	Entities      int       `gorm:"column:entities"`
	Relationships int       `gorm:"column:relationships"`
}

func (SnapshotModel) TableName() string { return "snapshots" }

// GameModel is a game row of a run.
type GameModel struct {
	ID            uint   `gorm:"column:id;primaryKey;autoIncrement"`
	RunID         string `gorm:"column:run_id;size:36;index"`
	GameID        int    `gorm:"column:game_id"`
	BggID         string `gorm:"column:bgg_id;size:32"`
	Title         string `gorm:"column:title;size:512"`
	YearPublished string `gorm:"column:year_published;size:16"`
	Thumbnail     string `gorm:"column:thumbnail;size:1024"`
	Description   string `gorm:"column:description;type:text"`
	Own           bool   `gorm:"column:own"`
	WantToBuy     bool   `gorm:"column:want_to_buy"`
	PrevOwned     bool   `gorm:"column:prev_owned"`
	ForTrade      bool   `gorm:"column:for_trade"`
}

func (GameModel) TableName() string { return "games" }

// EntityModel is an entity row of a run.
type EntityModel struct {
	ID       uint   `gorm:"column:id;primaryKey;autoIncrement"`
	RunID    string `gorm:"column:run_id;size:36;index"`
	EntityID int    `gorm:"column:entity_id"`
	BggID    string `gorm:"column:bgg_id;size:32"`
	Name     string `gorm:"column:name;size:512"`
}

func (EntityModel) TableName() string { return "entities" }

// RelationshipModel is a relationship row of a run.
type RelationshipModel struct {
	ID               uint   `gorm:"column:id;primaryKey;autoIncrement"`
	RunID            string `gorm:"column:run_id;size:36;index"`
	GameID           int    `gorm:"column:game_id"`
	EntityID         int    `gorm:"column:entity_id"`
	RelationshipType string `gorm:"column:relationship_type;size:32"`
}

func (RelationshipModel) TableName() string { return "relationships" }

const insertBatchSize = 200

// DatabaseSink stores every run in relational tables keyed by run id.
type DatabaseSink struct {
	db *gorm.DB
}

// NewDatabaseSink writes through db. Call Migrate once before the first Write.
func NewDatabaseSink(db *gorm.DB) *DatabaseSink {
	return &DatabaseSink{db: db}
}

func (s *DatabaseSink) Name() string { return "database" }

// Migrate creates or updates the snapshot tables.
func (s *DatabaseSink) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&SnapshotModel{}, &GameModel{}, &EntityModel{}, &RelationshipModel{}); err != nil {
		return fmt.Errorf("migrate snapshot tables: %w", err)
	}
	return nil
}

// Write inserts the run in a single transaction.
func (s *DatabaseSink) Write(ctx context.Context, run Run) error {
	ds := run.Dataset

	games := make([]GameModel, 0, len(ds.GameData))
	for _, g := range ds.GameData {
		games = append(games, GameModel{
			RunID: run.ID, GameID: g.ID, BggID: g.BggID, Title: g.Title,
			YearPublished: g.YearPublished, Thumbnail: g.Thumbnail, Description: g.Description,
			Own: g.GameOwn, WantToBuy: g.GameWantToBuy, PrevOwned: g.GamePrevOwned, ForTrade: g.GameForTrade,
		})
	}
	entities := make([]EntityModel, 0, len(ds.EntityData))
	for _, e := range ds.EntityData {
		entities = append(entities, EntityModel{RunID: run.ID, EntityID: e.ID, BggID: e.BggID, Name: e.Name})
	}
	relationships := make([]RelationshipModel, 0, len(ds.RelationshipData))
	for _, r := range ds.RelationshipData {
		relationships = append(relationships, RelationshipModel{
			RunID: run.ID, GameID: r.GameID, EntityID: r.EntityID, RelationshipType: r.RelationshipType,
		})
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&SnapshotModel{
			RunID:         run.ID,
			Username:      run.Username,
			CreatedAt:     run.CreatedAt,
			Games:         len(games),
			Entities:      len(entities),
			Relationships: len(relationships),
		}).Error; err != nil {
			return fmt.Errorf("insert snapshot: %w", err)
		}
		if len(games) > 0 {
			if err := tx.CreateInBatches(&games, insertBatchSize).Error; err != nil {
				return fmt.Errorf("insert games: %w", err)
			}
		}
		if len(entities) > 0 {
			if err := tx.CreateInBatches(&entities, insertBatchSize).Error; err != nil {
				return fmt.Errorf("insert entities: %w", err)
			}
		}
		if len(relationships) > 0 {
			if err := tx.CreateInBatches(&relationships, insertBatchSize).Error; err != nil {
				return fmt.Errorf("insert relationships: %w", err)
			}
		}
		return nil
	})
}

// Load rebuilds the dataset of the most recent run.
func (s *DatabaseSink) Load(ctx context.Context) (Dataset, error) {
	db := s.db.WithContext(ctx)

	var snap SnapshotModel
	if err := db.Order("created_at DESC").First(&snap).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Dataset{}, ErrNoSnapshot
		}
		return Dataset{}, fmt.Errorf("load latest snapshot: %w", err)
	}

	var (
		games         []GameModel
		entities      []EntityModel
		relationships []RelationshipModel
	)
	if err := db.Where("run_id = ?", snap.RunID).Order("game_id").Find(&games).Error; err != nil {
		return Dataset{}, fmt.Errorf("load games: %w", err)
	}
	if err := db.Where("run_id = ?", snap.RunID).Order("entity_id").Find(&entities).Error; err != nil {
		return Dataset{}, fmt.Errorf("load entities: %w", err)
	}
	if err := db.Where("run_id = ?", snap.RunID).Order("id").Find(&relationships).Error; err != nil {
		return Dataset{}, fmt.Errorf("load relationships: %w", err)
	}

	ds := Dataset{
		EntityData:       make([]EntityRow, 0, len(entities)),
		GameData:         make([]GameRow, 0, len(games)),
		RelationshipData: make([]RelationshipRow, 0, len(relationships)),
	}
	for _, g := range games {
		ds.GameData = append(ds.GameData, GameRow{
			ID: g.GameID, BggID: g.BggID, Title: g.Title, YearPublished: g.YearPublished,
			Thumbnail: g.Thumbnail, Description: g.Description,
			GameOwn: g.Own, GameWantToBuy: g.WantToBuy, GamePrevOwned: g.PrevOwned, GameForTrade: g.ForTrade,
		})
	}
	for _, e := range entities {
		ds.EntityData = append(ds.EntityData, EntityRow{ID: e.EntityID, BggID: e.BggID, Name: e.Name})
	}
	for _, r := range relationships {
		ds.RelationshipData = append(ds.RelationshipData, RelationshipRow{
			GameID: r.GameID, EntityID: r.EntityID, RelationshipType: r.RelationshipType,
		})
	}
	return ds, nil
}
