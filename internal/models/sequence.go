package models

// CodeSequence backs order-code auto-generation. The value is bumped with a
// single atomic UPDATE inside the order-creation transaction, so concurrent
// creations cannot hand out the same code.
type CodeSequence struct {
	Name  string `gorm:"size:40;primaryKey" json:"name"`
	Value int64  `gorm:"not null;default:0" json:"value"`
}

func (CodeSequence) TableName() string { return "code_sequences" }
