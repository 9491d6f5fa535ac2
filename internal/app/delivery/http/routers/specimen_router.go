package routers

import (
	"labtrail-service/internal/app/config"
	"labtrail-service/internal/app/delivery/http/middlewares"
	"labtrail-service/internal/app/services/core/results"
	"labtrail-service/internal/app/services/core/specimens"
	"labtrail-service/internal/pkg/constvars"
	"time"

	"github.com/go-chi/chi/v5"
)

func attachSpecimenRoutes(
	router chi.Router,
	internalConfig *config.InternalConfig,
	mw *middlewares.Middlewares,
	specimenController *specimens.SpecimenController,
	resultController *results.ResultController,
) {
	// The open endpoint takes an accession code plus secret, so it gets its
	// own tighter limiter with temporary blocking on top of the global one.
	openLimiter := middlewares.NewRateLimiter(
		internalConfig.App.OpenMaxRequests,
		time.Second,
		time.Duration(internalConfig.App.OpenBlockTimeInMinute)*time.Minute,
	)

	router.Use(mw.Authenticate)

	router.With(mw.RequireRoles(constvars.RoleTechnician, constvars.RoleSupervisor)).
		Post("/", specimenController.RegisterSpecimen)
	router.With(mw.RequireRoles(constvars.RoleTechnician, constvars.RoleSupervisor), openLimiter.Limit).
		Post("/open", specimenController.OpenSpecimen)

	router.With(mw.RequireRoles(constvars.RoleSupervisor)).
		Get("/", specimenController.ListSpecimens)
	router.Get("/mine", specimenController.ListOpenedByMe)
	router.Get("/{specimenID}", specimenController.GetSpecimenByID)

	router.With(mw.RequireRoles(constvars.RoleTechnician, constvars.RoleSupervisor)).
		Put("/{specimenID}/status", specimenController.UpdateSpecimenStatus)
	router.With(mw.RequireRoles(constvars.RoleTechnician, constvars.RoleSupervisor)).
		Post("/{specimenID}/results", resultController.SubmitResult)
}
