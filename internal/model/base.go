package model

import "time"

type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// KVEntry 是 SQL 存储中的一条键值记录，值为 JSON 文本
type KVEntry struct {
	BaseModel
	Key   string `gorm:"primaryKey;type:varchar(128)" json:"key"`
	Value string `gorm:"type:text;not null" json:"value"`
}

// TableName 指定表名
func (KVEntry) TableName() string {
	return "kv_entries"
}
