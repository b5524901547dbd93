package controllers

import (
	"github.com/gin-gonic/gin"
	"net/http"

	"carconvo/internal/models/request_models"
	"carconvo/internal/services"
	"carconvo/pkg/utils"
)

type CarsController struct {
	matchService services.MatchServiceInterface
}

func NewCarsController(matchService services.MatchServiceInterface) *CarsController {
	return &CarsController{matchService: matchService}
}

func (cc *CarsController) GetCarHandler(c *gin.Context) {
	vehicle, err := cc.matchService.GetVehicleByID(c.Param("carId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, vehicle, "")
}

func (cc *CarsController) CompareHandler(c *gin.Context) {
	var req request_models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	if len(req.CarIDs) == 0 {
		utils.RespondError(c, http.StatusBadRequest, "car_ids is required")
		return
	}

	comparison, err := cc.matchService.CompareVehicles(req.CarIDs)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, comparison, "")
}

func (cc *CarsController) EstimateHandler(c *gin.Context) {
	var req request_models.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	estimate, err := cc.matchService.EstimateCosts(
		c.Param("carId"), req.TradeInValue, req.DownPayment, req.LoanTermMonths)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, estimate, "")
}
