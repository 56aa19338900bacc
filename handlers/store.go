package handlers

import (
	"github.com/gin-gonic/gin"
	"buybuddysave/database"
	"buybuddysave/models"
	"buybuddysave/utils"
)

func GetStores(c *gin.Context) {
	stores := database.DB.Stores()
	if stores == nil {
		stores = []models.Store{}
	}
	utils.Success(c, stores)
}

func GetDeals(c *gin.Context) {
	deals := database.DB.Deals()
	if deals == nil {
		deals = []models.Deal{}
	}
	utils.Success(c, deals)
}

func GetShoppingLists(c *gin.Context) {
	lists := database.DB.ShoppingLists()
	if lists == nil {
		lists = []models.ShoppingList{}
	}
	utils.Success(c, lists)
}

func CreateShoppingList(c *gin.Context) {
	var list models.ShoppingList
	if err := c.ShouldBindJSON(&list); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	list.ID = utils.GenerateUUID()
	if list.Deals == nil {
		list.Deals = []string{}
	}

	database.DB.AddShoppingList(list)
	utils.Success(c, list)
}

func UpdateShoppingList(c *gin.Context) {
	id := c.Param("id")

	var list models.ShoppingList
	if err := c.ShouldBindJSON(&list); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	list.ID = id
	if list.Deals == nil {
		list.Deals = []string{}
	}

	if !database.DB.ReplaceShoppingList(list) {
		utils.NotFound(c, "shopping list not found")
		return
	}

	utils.Success(c, list)
}
