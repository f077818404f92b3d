package entities

// IDSequence remembers the highest ID handed out for a table, so IDs are never reused.
type IDSequence struct {
	Name string `gorm:"primaryKey;size:32"`
	Last int64
}

func (IDSequence) TableName() string {
	return "id_sequences"
}
