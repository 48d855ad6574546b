package models

import "gorm.io/gorm"

type Floor struct {
	Name string `gorm:"uniqueIndex;not null"`

	Tables []Table `gorm:"foreignKey:FloorID"`

	gorm.Model
}

type Table struct {
	TableName  string `gorm:"type:varchar(50);not null"`
	StartTime  string `gorm:"type:varchar(5);default:'00:00'"`
	EndTime    string `gorm:"type:varchar(5);default:'00:00'"`
	SeatsCount int    `gorm:"not null"`
	Capacity   int    `gorm:"not null"`
	FloorID    uint   `gorm:"index;not null"`
	IsReady    bool   // no gorm default tag, an explicit false must survive the insert

	gorm.Model
}
