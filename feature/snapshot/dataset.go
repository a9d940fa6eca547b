package snapshot

import (
	"encoding/json"
	"fmt"
	"time"

	"collection-prep/feature/collection"

	"github.com/google/uuid"
)

// EntityRow is a published entity.
type EntityRow struct {
	ID    int    `json:"id"`
	BggID string `json:"bggid"`
	Name  string `json:"name"`
}

// GameRow is a published game.
type GameRow struct {
	ID            int    `json:"id"`
	BggID         string `json:"bggid"`
	Title         string `json:"title"`
	YearPublished string `json:"yearpublished"`
	Thumbnail     string `json:"thumbnail"`
	Description   string `json:"description"`
	GameOwn       bool   `json:"gameown"`
	GameWantToBuy bool   `json:"gamewanttobuy"`
	GamePrevOwned bool   `json:"gameprevowned"`
	GameForTrade  bool   `json:"gamefortrade"`
}

// RelationshipRow is a published game to entity edge.
type RelationshipRow struct {
	GameID           int    `json:"gameid"`
	EntityID         int    `json:"entityid"`
	RelationshipType string `json:"relationshiptype"`
}

// Dataset is the document consumed by the collection site.
type Dataset struct {
	EntityData       []EntityRow       `json:"entitydata"`
	GameData         []GameRow         `json:"gamedata"`
	RelationshipData []RelationshipRow `json:"relationshipdata"`
}

// NewDataset converts a pipeline result into its published shape.
func NewDataset(result *collection.Result) Dataset {
	ds := Dataset{
		EntityData:       make([]EntityRow, 0, len(result.Entities)),
		GameData:         make([]GameRow, 0, len(result.Games)),
		RelationshipData: make([]RelationshipRow, 0, len(result.Relationships)),
	}
	for _, e := range result.Entities {
		ds.EntityData = append(ds.EntityData, EntityRow{ID: e.InternalID, BggID: e.ExternalID, Name: e.Name})
	}
	for _, g := range result.Games {
		ds.GameData = append(ds.GameData, GameRow{
			ID:            g.InternalID,
			BggID:         g.ExternalID,
			Title:         g.Title,
			YearPublished: g.YearPublished,
			Thumbnail:     g.Thumbnail,
			Description:   g.Description,
			GameOwn:       g.Own,
			GameWantToBuy: g.WantToBuy,
			GamePrevOwned: g.PrevOwned,
			GameForTrade:  g.ForTrade,
		})
	}
	for _, r := range result.Relationships {
		ds.RelationshipData = append(ds.RelationshipData, RelationshipRow{
			GameID:           r.GameInternalID,
			EntityID:         r.EntityInternalID,
			RelationshipType: string(r.Kind),
		})
	}
	return ds
}

// Encode returns the indented JSON document.
func (d Dataset) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode dataset: %w", err)
	}
	return data, nil
}

// DecodeDataset parses a published document.
func DecodeDataset(data []byte) (Dataset, error) {
	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return Dataset{}, fmt.Errorf("decode dataset: %w", err)
	}
	return ds, nil
}

// Run is one publishable snapshot.
type Run struct {
	ID        string
	Username  string
	CreatedAt time.Time
	Dataset   Dataset
}

// NewRun wraps ds with a fresh run id.
func NewRun(username string, ds Dataset) Run {
	return Run{
		ID:        uuid.NewString(),
		Username:  username,
		CreatedAt: time.Now().UTC(),
		Dataset:   ds,
	}
}
