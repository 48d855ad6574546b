// controllers/table.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"restro-backend/config"
	"restro-backend/models"
	"restro-backend/utils"
)

type FloorInput struct {
	Name string `json:"name" binding:"required"`
}

type TableInput struct {
	TableName  string `json:"table_name" binding:"required"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	SeatsCount int    `json:"seats_count" binding:"required"`
	Capacity   int    `json:"capacity" binding:"required"`
	FloorID    uint   `json:"floor" binding:"required"`
	IsReady    *bool  `json:"is_ready"`
}

// GetFloors returns the floor names.
func GetFloors(c *gin.Context) {
	var floors []models.Floor
	if err := config.DB.Order("name").Find(&floors).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve floors")
		return
	}

	names := make([]string, 0, len(floors))
	for _, floor := range floors {
		names = append(names, floor.Name)
	}
	c.JSON(http.StatusOK, names)
}

func CreateFloor(c *gin.Context) {
	var input FloorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	floor := models.Floor{Name: input.Name}
	if err := config.DB.Create(&floor).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create floor")
		return
	}
	c.JSON(http.StatusCreated, floor)
}

func DeleteFloor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := config.DB.Delete(&models.Floor{}, id).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete floor")
		return
	}
	c.Status(http.StatusNoContent)
}

// GetTables lists tables, optionally filtered by floor.
func GetTables(c *gin.Context) {
	query := config.DB.Order("table_name")
	if floorID := c.Query("floor"); floorID != "" {
		query = query.Where("floor_id = ?", floorID)
	}

	var tables []models.Table
	if err := query.Find(&tables).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve tables")
		return
	}
	c.JSON(http.StatusOK, tables)
}

func CreateTable(c *gin.Context) {
	var input TableInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	table := models.Table{
		TableName:  input.TableName,
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
		SeatsCount: input.SeatsCount,
		Capacity:   input.Capacity,
		FloorID:    input.FloorID,
		IsReady:    true,
	}
	if input.IsReady != nil {
		table.IsReady = *input.IsReady
	}

	if err := config.DB.Create(&table).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create table")
		return
	}
	c.JSON(http.StatusCreated, table)
}

func UpdateTable(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var table models.Table
	if err := config.DB.First(&table, id).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Table not found")
		return
	}

	var input TableInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	table.TableName = input.TableName
	table.StartTime = input.StartTime
	table.EndTime = input.EndTime
	table.SeatsCount = input.SeatsCount
	table.Capacity = input.Capacity
	table.FloorID = input.FloorID
	if input.IsReady != nil {
		table.IsReady = *input.IsReady
	}

	if err := config.DB.Save(&table).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update table")
		return
	}
	c.JSON(http.StatusOK, table)
}

func DeleteTable(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := config.DB.Delete(&models.Table{}, id).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete table")
		return
	}
	c.Status(http.StatusNoContent)
}
