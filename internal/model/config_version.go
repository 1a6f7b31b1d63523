package model

import (
	"time"

	"gorm.io/datatypes"
)

// ConfigVersion 配置版本快照，创建后不可变
// Version 单调递增、从 1 起、无空洞、永不复用
type ConfigVersion struct {
	ID      int64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Version int64 `gorm:"column:version;not null;uniqueIndex" json:"version"`

	// 写入前的完整配置深拷贝
	Config datatypes.JSONMap `gorm:"type:json;not null" json:"config"`
	// 相对于前一份在线状态的顶层字段变更（稀疏）
	Changes datatypes.JSON `gorm:"type:json" json:"changes"`

	// 触发快照的操作者
	ActorID    int    `gorm:"not null;default:0" json:"actorId"`
	ActorName  string `gorm:"type:varchar(255)" json:"actorName"`
	ActorEmail string `gorm:"type:varchar(255)" json:"actorEmail"`

	Description string                      `gorm:"type:varchar(512)" json:"description"`
	Tags        datatypes.JSONSlice[string] `gorm:"type:json" json:"tags"`

	CreatedAt time.Time `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP;index" json:"createdAt"`
}

// TableName 指定表名
func (ConfigVersion) TableName() string {
	return "config_versions"
}

// Well-known version tags
const (
	VersionTagRestore = "restore"
	VersionTagImport  = "import"
	VersionTagManual  = "manual"
)
