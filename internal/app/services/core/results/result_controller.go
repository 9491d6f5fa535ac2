package results

import (
	"context"
	"labtrail-service/internal/app/contracts"
	"labtrail-service/internal/pkg/constvars"
	"labtrail-service/internal/pkg/dto/requests"
	"labtrail-service/internal/pkg/exceptions"
	"labtrail-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type ResultController struct {
	Log           *zap.Logger
	ResultUsecase contracts.ResultUsecase
}

func NewResultController(logger *zap.Logger, resultUsecase contracts.ResultUsecase) *ResultController {
	return &ResultController{
		Log:           logger,
		ResultUsecase: resultUsecase,
	}
}

func (ctrl *ResultController) SubmitResult(w http.ResponseWriter, r *http.Request) {
	session, err := utils.SessionFromContext(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	specimenID := chi.URLParam(r, "specimenID")

	request := new(requests.SubmitResult)
	err = json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.ResultUsecase.SubmitResult(ctx, session, specimenID, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.SubmitResultSuccessMessage, response)
}
