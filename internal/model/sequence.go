package model

import "time"

// SequenceAssetCode names the counter that backs asset code generation
const SequenceAssetCode = "asset_code"

// CodeSequence is a named monotonic counter. The asset code generator reads
// it under a row lock and only ever increments it, so issued codes are never
// reused even after the asset they belonged to is deleted.
type CodeSequence struct {
	Name      string    `gorm:"type:varchar(50);primaryKey" json:"name"`
	Value     int64     `gorm:"type:bigint;not null;default:0" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
