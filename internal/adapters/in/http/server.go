// Package http exposes the fulfillment workflow over a JSON API.
// It coordinates between HTTP handlers and application use cases, translating
// the domain error taxonomy into status codes: validation failures map to 400,
// missing entities to 404, lost version races to 409, and rejected state
// transitions or stock shortages to 422.
package http

import (
	"errors"
	"net/http"

	"relief/internal/core/application/usecases/commands"
	"relief/internal/core/application/usecases/queries"
	"relief/internal/core/domain/model/inventory"
	"relief/internal/core/domain/model/kernel"
	"relief/internal/core/domain/model/reliefpkg"
	"relief/internal/core/domain/model/request"
	"relief/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server handles HTTP requests for the relief fulfillment workflow.
type Server struct {
	// Command handlers
	reviewRequestHandler commands.ReviewRequestCommandHandler
	createPackageHandler commands.CreatePackageCommandHandler
	dispatchHandler      commands.DispatchPackageCommandHandler
	recordIntakeHandler  commands.RecordIntakeCommandHandler

	// Query handlers
	getPackagesHandler queries.GetPackagesQueryHandler
	getLowStockHandler queries.GetLowStockQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	reviewRequestHandler commands.ReviewRequestCommandHandler,
	createPackageHandler commands.CreatePackageCommandHandler,
	dispatchHandler commands.DispatchPackageCommandHandler,
	recordIntakeHandler commands.RecordIntakeCommandHandler,
	getPackagesHandler queries.GetPackagesQueryHandler,
	getLowStockHandler queries.GetLowStockQueryHandler,
) *Server {
	return &Server{
		reviewRequestHandler: reviewRequestHandler,
		createPackageHandler: createPackageHandler,
		dispatchHandler:      dispatchHandler,
		recordIntakeHandler:  recordIntakeHandler,
		getPackagesHandler:   getPackagesHandler,
		getLowStockHandler:   getLowStockHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/requests/:requestId/review", s.ReviewRequest)
	api.POST("/packages", s.CreatePackage)
	api.POST("/packages/:packageId/dispatch", s.DispatchPackage)
	api.POST("/packages/:packageId/intake", s.RecordIntake)
	api.GET("/packages", s.GetPackages)
	api.GET("/inventories/low-stock", s.GetLowStock)
}

// ReviewRequest handles POST /api/v1/requests/:requestId/review - approves or
// rejects a submitted relief request.
func (s *Server) ReviewRequest(ctx echo.Context) error {
	requestID, err := kernel.UUIDFromString(ctx.Param("requestId"))
	if err != nil {
		return badRequest(ctx, "Invalid request ID: "+err.Error())
	}

	var body ReviewRequestRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewReviewRequestCommand(requestID, body.Reviewer, body.Approve)
	if err != nil {
		return badRequest(ctx, "Invalid review data: "+err.Error())
	}

	if err = s.reviewRequestHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreatePackage handles POST /api/v1/packages - assembles a package for an
// approved request, reserving stock at the source warehouse.
func (s *Server) CreatePackage(ctx echo.Context) error {
	var body CreatePackageRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	requestID, err := kernel.UUIDFromString(body.RequestID)
	if err != nil {
		return badRequest(ctx, "Invalid request ID: "+err.Error())
	}
	fromWarehouseID, err := kernel.UUIDFromString(body.FromWarehouseID)
	if err != nil {
		return badRequest(ctx, "Invalid source warehouse ID: "+err.Error())
	}
	toWarehouseID, err := kernel.UUIDFromString(body.ToWarehouseID)
	if err != nil {
		return badRequest(ctx, "Invalid destination warehouse ID: "+err.Error())
	}

	lines := make([]commands.PackageLine, 0, len(body.Lines))
	for _, l := range body.Lines {
		itemID, lineErr := kernel.UUIDFromString(l.ItemID)
		if lineErr != nil {
			return badRequest(ctx, "Invalid item ID: "+lineErr.Error())
		}
		qty, lineErr := kernel.QuantityFromString(l.Qty)
		if lineErr != nil {
			return badRequest(ctx, "Invalid quantity: "+lineErr.Error())
		}
		line, lineErr := commands.NewPackageLine(itemID, qty)
		if lineErr != nil {
			return badRequest(ctx, "Invalid line: "+lineErr.Error())
		}
		lines = append(lines, line)
	}

	packageID := kernel.NewUUID()
	cmd, err := commands.NewCreatePackageCommand(packageID, requestID, fromWarehouseID, toWarehouseID, lines)
	if err != nil {
		return badRequest(ctx, "Invalid package data: "+err.Error())
	}

	if err = s.createPackageHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatePackageResponse{PackageID: packageID.String()})
}

// DispatchPackage handles POST /api/v1/packages/:packageId/dispatch - hands a
// pending package to transport.
func (s *Server) DispatchPackage(ctx echo.Context) error {
	packageID, err := kernel.UUIDFromString(ctx.Param("packageId"))
	if err != nil {
		return badRequest(ctx, "Invalid package ID: "+err.Error())
	}

	cmd, err := commands.NewDispatchPackageCommand(packageID)
	if err != nil {
		return badRequest(ctx, "Invalid dispatch data: "+err.Error())
	}

	if err = s.dispatchHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecordIntake handles POST /api/v1/packages/:packageId/intake - records the
// goods received for a dispatched package, split by condition.
func (s *Server) RecordIntake(ctx echo.Context) error {
	packageID, err := kernel.UUIDFromString(ctx.Param("packageId"))
	if err != nil {
		return badRequest(ctx, "Invalid package ID: "+err.Error())
	}

	var body RecordIntakeRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	lines := make([]commands.IntakeLine, 0, len(body.Lines))
	for _, l := range body.Lines {
		line, lineErr := bindIntakeLine(l)
		if lineErr != nil {
			return badRequest(ctx, "Invalid line: "+lineErr.Error())
		}
		lines = append(lines, line)
	}

	cmd, err := commands.NewRecordIntakeCommand(packageID, lines)
	if err != nil {
		return badRequest(ctx, "Invalid intake data: "+err.Error())
	}

	if err = s.recordIntakeHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetPackages handles GET /api/v1/packages - lists packages, optionally
// filtered by the status query parameter.
func (s *Server) GetPackages(ctx echo.Context) error {
	var query queries.GetPackagesQuery
	if statusParam := ctx.QueryParam("status"); statusParam != "" {
		status, ok := packageStatusFromString(statusParam)
		if !ok {
			return badRequest(ctx, "Unknown package status: "+statusParam)
		}
		var err error
		query, err = queries.NewGetPackagesQueryForStatus(status)
		if err != nil {
			return badRequest(ctx, "Invalid status filter: "+err.Error())
		}
	} else {
		query = queries.NewGetPackagesQuery()
	}

	packages, err := s.getPackagesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]Package, len(packages))
	for i, pkg := range packages {
		response[i] = Package{
			ID:            pkg.ID.String(),
			RequestID:     pkg.RequestID.String(),
			ToInventoryID: pkg.ToInventoryID.String(),
			Status:        pkg.Status.String(),
			DispatchedAt:  pkg.DispatchedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetLowStock handles GET /api/v1/inventories/low-stock - lists active
// inventory records with usable stock below the threshold query parameter.
func (s *Server) GetLowStock(ctx echo.Context) error {
	threshold, err := kernel.QuantityFromString(ctx.QueryParam("threshold"))
	if err != nil {
		return badRequest(ctx, "Invalid threshold: "+err.Error())
	}

	query, err := queries.NewGetLowStockQuery(threshold)
	if err != nil {
		return badRequest(ctx, "Invalid threshold: "+err.Error())
	}

	records, err := s.getLowStockHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]LowStockRecord, len(records))
	for i, record := range records {
		response[i] = LowStockRecord{
			InventoryID: record.InventoryID.String(),
			WarehouseID: record.WarehouseID.String(),
			ItemID:      record.ItemID.String(),
			Usable:      record.Usable.String(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func bindIntakeLine(l IntakeLineRequest) (commands.IntakeLine, error) {
	itemID, err := kernel.UUIDFromString(l.ItemID)
	if err != nil {
		return commands.IntakeLine{}, err
	}
	usable, err := kernel.QuantityFromString(l.Usable)
	if err != nil {
		return commands.IntakeLine{}, err
	}
	defective, err := kernel.QuantityFromString(l.Defective)
	if err != nil {
		return commands.IntakeLine{}, err
	}
	expired, err := kernel.QuantityFromString(l.Expired)
	if err != nil {
		return commands.IntakeLine{}, err
	}

	usableLoc, err := bindLocation(l.UsableLocationID)
	if err != nil {
		return commands.IntakeLine{}, err
	}
	defectiveLoc, err := bindLocation(l.DefectiveLocationID)
	if err != nil {
		return commands.IntakeLine{}, err
	}
	expiredLoc, err := bindLocation(l.ExpiredLocationID)
	if err != nil {
		return commands.IntakeLine{}, err
	}

	return commands.NewIntakeLine(itemID, usable, defective, expired, usableLoc, defectiveLoc, expiredLoc)
}

func bindLocation(raw *string) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func packageStatusFromString(s string) (reliefpkg.Status, bool) {
	for _, status := range []reliefpkg.Status{reliefpkg.Pending, reliefpkg.Dispatched, reliefpkg.Completed} {
		if status.String() == s {
			return status, true
		}
	}
	return reliefpkg.Unknown, false
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps a failed use case to its HTTP status. Conflicts from lost
// version races get 409 so clients know the operation is retryable.
func writeError(ctx echo.Context, err error) error {
	status := statusFor(err)
	return ctx.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrStaleVersion):
		return http.StatusConflict
	case errors.Is(err, inventory.ErrInsufficientStock),
		errors.Is(err, inventory.ErrInsufficientReserved),
		errors.Is(err, inventory.ErrInventoryIsNotActive),
		errors.Is(err, reliefpkg.ErrEmptyPackage),
		errors.Is(err, reliefpkg.ErrPackageNotPending),
		errors.Is(err, reliefpkg.ErrPackageNotDispatched),
		errors.Is(err, request.ErrRequestAlreadyReviewed),
		errors.Is(err, request.ErrRequestNotOpenForFulfillment),
		errors.Is(err, request.ErrItemNotInRequest),
		errors.Is(err, request.ErrQuantityExceedsRemaining),
		errors.Is(err, commands.ErrNoActiveInventory),
		errors.Is(err, commands.ErrItemNotStocked),
		errors.Is(err, commands.ErrIntakeDoesNotMatchDispatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
