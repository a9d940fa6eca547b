package collection

// Sequencer hands out internal ids for games and entities alike.
// It starts at 1 and never skips or reuses a value. It is not safe for concurrent use.
type Sequencer struct {
	last int
}

// NewSequencer returns a sequencer whose first id is 1.
func NewSequencer() *Sequencer {
	return &Sequencer{}
}

// Next returns the next id.
func (s *Sequencer) Next() int {
	s.last++
	return s.last
}

// Last returns the most recently issued id, or 0 if none was issued.
func (s *Sequencer) Last() int {
	return s.last
}

// EntityIndex deduplicates entities by external id for the lifetime of a run.
type EntityIndex struct {
	seq     *Sequencer
	byKey   map[string]int // external id -> position in records
	records []EntityRecord
}

// NewEntityIndex creates an empty index drawing ids from seq.
func NewEntityIndex(seq *Sequencer) *EntityIndex {
	return &EntityIndex{
		seq:   seq,
		byKey: make(map[string]int),
	}
}

// Resolve returns the internal id for externalID, creating the entity on first sight.
// A known external id seen with a different name yields a *ConflictError and leaves
// the index unchanged.
func (x *EntityIndex) Resolve(externalID, name string) (int, error) {
	if pos, ok := x.byKey[externalID]; ok {
		existing := x.records[pos]
		if existing.Name != name {
			return 0, &ConflictError{
				ExternalID:   externalID,
				ExistingName: existing.Name,
				IncomingName: name,
			}
		}
		return existing.InternalID, nil
	}

	record := EntityRecord{
		InternalID: x.seq.Next(),
		ExternalID: externalID,
		Name:       name,
	}
	x.byKey[externalID] = len(x.records)
	x.records = append(x.records, record)
	return record.InternalID, nil
}

// Len returns the number of distinct entities seen so far.
func (x *EntityIndex) Len() int {
	return len(x.records)
}

// Snapshot returns a copy of the entities in first-encounter order.
func (x *EntityIndex) Snapshot() []EntityRecord {
	out := make([]EntityRecord, len(x.records))
	copy(out, x.records)
	return out
}

// RelationshipBuilder turns entity references of a game into relationship edges.
type RelationshipBuilder struct {
	index *EntityIndex
}

// NewRelationshipBuilder creates a builder resolving through index.
func NewRelationshipBuilder(index *EntityIndex) *RelationshipBuilder {
	return &RelationshipBuilder{index: index}
}

// Link resolves every reference and returns one edge per reference, in order.
// Repeated references produce repeated edges; only entities are deduplicated.
func (b *RelationshipBuilder) Link(gameID int, refs References, kind Kind) ([]RelationshipRecord, error) {
	if len(refs) == 0 {
		return nil, nil
	}

	edges := make([]RelationshipRecord, 0, len(refs))
	for _, ref := range refs {
		entityID, err := b.index.Resolve(ref.ExternalID, ref.Name)
		if err != nil {
			return nil, err
		}
		edges = append(edges, RelationshipRecord{
			GameInternalID:   gameID,
			EntityInternalID: entityID,
			Kind:             kind,
		})
	}
	return edges, nil
}
