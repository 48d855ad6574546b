package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restro-backend/config"
	"restro-backend/models"
	"restro-backend/utils"
)

type CategoryInput struct {
	Name string `json:"name" binding:"required"`
}

func CreateCategory(c *gin.Context) {
	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	category := models.Category{Name: input.Name}
	if err := config.DB.Create(&category).Error; err != nil {
		utils.RespondWithError(c, http.StatusConflict, "Category already exists")
		return
	}
	c.JSON(http.StatusCreated, category)
}

func GetCategories(c *gin.Context) {
	var categories []models.Category
	query := config.DB.Order("name")
	if search := c.Query("search"); search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}
	if err := query.Find(&categories).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

func UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var category models.Category
	if err := config.DB.First(&category, id).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Category not found")
		return
	}

	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	category.Name = input.Name
	if err := config.DB.Save(&category).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update category")
		return
	}
	c.JSON(http.StatusOK, category)
}

func DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := config.DB.Delete(&models.Category{}, id).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete category")
		return
	}
	c.Status(http.StatusNoContent)
}

type DishInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price" binding:"required,min=0"`
	CategoryID  uint    `json:"category" binding:"required"`
}

func CreateDish(c *gin.Context) {
	var input DishInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var category models.Category
	if err := config.DB.First(&category, input.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Category not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	dish := models.Dish{
		Name:        input.Name,
		Description: input.Description,
		Image:       input.Image,
		Price:       input.Price,
		CategoryID:  input.CategoryID,
	}
	if err := config.DB.Create(&dish).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create dish")
		return
	}
	c.JSON(http.StatusCreated, dish)
}

func GetDishes(c *gin.Context) {
	query := config.DB.Preload("Variants").Order("price DESC")
	if category := c.Query("category"); category != "" {
		query = query.Where("category_id = ?", category)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name ILIKE ? OR description ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var dishes []models.Dish
	if err := query.Find(&dishes).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve dishes")
		return
	}
	c.JSON(http.StatusOK, dishes)
}

func GetDish(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var dish models.Dish
	if err := config.DB.Preload("Variants").First(&dish, id).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Dish not found")
		return
	}
	c.JSON(http.StatusOK, dish)
}

func UpdateDish(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var dish models.Dish
	if err := config.DB.First(&dish, id).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Dish not found")
		return
	}

	var input DishInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	dish.Name = input.Name
	dish.Description = input.Description
	if input.Image != "" {
		dish.Image = input.Image
	}
	dish.Price = input.Price
	dish.CategoryID = input.CategoryID
	if err := config.DB.Save(&dish).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update dish")
		return
	}
	c.JSON(http.StatusOK, dish)
}

func DeleteDish(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := config.DB.Delete(&models.Dish{}, id).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete dish")
		return
	}
	c.Status(http.StatusNoContent)
}

// SearchDishes backs the search endpoint used by the order screen.
func SearchDishes(c *gin.Context) {
	query := c.Query("search")
	if query == "" {
		c.JSON(http.StatusOK, gin.H{"results": []models.Dish{}})
		return
	}

	var dishes []models.Dish
	if err := config.DB.Where("name ILIKE ?", "%"+query+"%").Find(&dishes).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to search dishes")
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": dishes})
}

type DishVariantInput struct {
	DishID uint   `json:"dish" binding:"required"`
	Name   string `json:"name" binding:"required"`
}

func CreateDishVariant(c *gin.Context) {
	var input DishVariantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var dish models.Dish
	if err := config.DB.First(&dish, input.DishID).Error; err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Dish not found")
		return
	}

	variant := models.DishVariant{DishID: input.DishID, Name: input.Name}
	if err := config.DB.Create(&variant).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create variant")
		return
	}
	c.JSON(http.StatusCreated, variant)
}

func GetDishVariants(c *gin.Context) {
	query := config.DB
	if dishID := c.Query("dish_id"); dishID != "" {
		query = query.Where("dish_id = ?", dishID)
	}

	var variants []models.DishVariant
	if err := query.Find(&variants).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve variants")
		return
	}
	c.JSON(http.StatusOK, variants)
}

func DeleteDishVariant(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := config.DB.Delete(&models.DishVariant{}, id).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete variant")
		return
	}
	c.Status(http.StatusNoContent)
}
