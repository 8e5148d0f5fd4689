package cmd

import (
	"relief/internal/adapters/out/postgres"
	"relief/internal/core/application/usecases/commands"
	"relief/internal/core/application/usecases/queries"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

func (c *CompositionRoot) CreateReviewRequestCommandHandler() commands.ReviewRequestCommandHandler {
	var f commands.ReviewUoWFactory = FuncReviewUoWFactory(func() commands.ReviewUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReviewRequestCommandHandler(f)
}

func (c *CompositionRoot) CreateCreatePackageCommandHandler() commands.CreatePackageCommandHandler {
	var f commands.FulfillmentUoWFactory = FuncFulfillmentUoWFactory(func() commands.FulfillmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreatePackageCommandHandler(f)
}

func (c *CompositionRoot) CreateDispatchPackageCommandHandler() commands.DispatchPackageCommandHandler {
	var f commands.PackageUoWFactory = FuncPackageUoWFactory(func() commands.PackageUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchPackageCommandHandler(f)
}

func (c *CompositionRoot) CreateRecordIntakeCommandHandler() commands.RecordIntakeCommandHandler {
	var f commands.IntakeUoWFactory = FuncIntakeUoWFactory(func() commands.IntakeUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordIntakeCommandHandler(f)
}

func (c *CompositionRoot) CreateGetPackagesQueryHandler() queries.GetPackagesQueryHandler {
	return queries.NewGetPackagesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetLowStockQueryHandler() queries.GetLowStockQueryHandler {
	return queries.NewGetLowStockQueryHandler(c.gormDB)
}

type FuncReviewUoWFactory func() commands.ReviewUoW

func (f FuncReviewUoWFactory) Create() commands.ReviewUoW {
	return f()
}

type FuncFulfillmentUoWFactory func() commands.FulfillmentUoW

func (f FuncFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	return f()
}

type FuncPackageUoWFactory func() commands.PackageUoW

func (f FuncPackageUoWFactory) Create() commands.PackageUoW {
	return f()
}

type FuncIntakeUoWFactory func() commands.IntakeUoW

func (f FuncIntakeUoWFactory) Create() commands.IntakeUoW {
	return f()
}
