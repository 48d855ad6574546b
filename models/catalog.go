package models

import "gorm.io/gorm"

type Category struct {
	Name string `gorm:"uniqueIndex;not null"`

	Dishes []Dish `gorm:"foreignKey:CategoryID"`

	gorm.Model
}

type Dish struct {
	Name        string `gorm:"not null"`
	Description string
	Image       string  `gorm:"default:'default_dish_image.jpg'"`
	Price       float64 `gorm:"type:decimal(6,2);not null"`
	CategoryID  uint    `gorm:"index;not null"`

	Variants []DishVariant `gorm:"foreignKey:DishID"`

	gorm.Model
}

type DishVariant struct {
	DishID uint   `gorm:"index;not null"`
	Name   string `gorm:"not null"`

	gorm.Model
}
