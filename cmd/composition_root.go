package cmd

import (
	"log/slog"
	"strconv"
	"time"

	"parcels/internal/adapters/out/postgres"
	"parcels/internal/adapters/out/redis/statuscache"
	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/application/usecases/queries"
	"parcels/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB      *gorm.DB
	uowFactory  postgres.GormUnitOfWorkFactory
	statusCache *statuscache.RedisStatusCache
	logger      *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, redisClient *redis.Client, logger *slog.Logger) CompositionRoot {
	var cache *statuscache.RedisStatusCache
	if redisClient != nil {
		ttl := time.Duration(0)
		if secs, err := strconv.Atoi(config.StatusCacheTTLSecs); err == nil {
			ttl = time.Duration(secs) * time.Second
		}
		cache = statuscache.NewRedisStatusCache(redisClient, ttl)
	}

	return CompositionRoot{
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		statusCache: cache,
		logger:      logger,
	}
}

func (c *CompositionRoot) CreateRegisterParcelCommandHandler() commands.RegisterParcelCommandHandler {
	var f commands.RegisterParcelUoWFactory = FuncRegisterParcelUoWFactory(func() commands.RegisterParcelUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterParcelCommandHandler(f)
}

func (c *CompositionRoot) CreateIngestScanEventCommandHandler() commands.IngestScanEventCommandHandler {
	var f commands.IngestScanEventUoWFactory = FuncIngestScanEventUoWFactory(func() commands.IngestScanEventUoW {
		return c.uowFactory.Create()
	})
	return commands.NewIngestScanEventCommandHandler(f)
}

func (c *CompositionRoot) CreateAssignRouteCommandHandler() commands.AssignRouteCommandHandler {
	return commands.NewAssignRouteCommandHandler(c.assignmentUoWFactory())
}

func (c *CompositionRoot) CreateDeactivateAssignmentCommandHandler() commands.DeactivateAssignmentCommandHandler {
	return commands.NewDeactivateAssignmentCommandHandler(c.assignmentUoWFactory())
}

func (c *CompositionRoot) CreateSubmitProofCommandHandler() commands.SubmitProofCommandHandler {
	var f commands.ProofUoWFactory = FuncProofUoWFactory(func() commands.ProofUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitProofCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateRouteCommandHandler() commands.CreateRouteCommandHandler {
	return commands.NewCreateRouteCommandHandler(c.routeUoWFactory())
}

func (c *CompositionRoot) CreateStartRouteCommandHandler() commands.StartRouteCommandHandler {
	return commands.NewStartRouteCommandHandler(c.routeUoWFactory())
}

func (c *CompositionRoot) CreateCompleteRouteCommandHandler() commands.CompleteRouteCommandHandler {
	return commands.NewCompleteRouteCommandHandler(c.routeUoWFactory())
}

func (c *CompositionRoot) CreateCancelRouteCommandHandler() commands.CancelRouteCommandHandler {
	return commands.NewCancelRouteCommandHandler(c.routeUoWFactory())
}

func (c *CompositionRoot) CreateGetParcelQueryHandler() queries.GetParcelQueryHandler {
	if c.statusCache != nil {
		return queries.NewGetParcelQueryHandler(c.gormDB, c.statusCache)
	}
	return queries.NewGetParcelQueryHandler(c.gormDB, nil)
}

func (c *CompositionRoot) CreateGetScanEventsQueryHandler() queries.GetScanEventsQueryHandler {
	return queries.NewGetScanEventsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveAssignmentQueryHandler() queries.GetActiveAssignmentQueryHandler {
	return queries.NewGetActiveAssignmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOverdueParcelsQueryHandler() queries.GetOverdueParcelsQueryHandler {
	return queries.NewGetOverdueParcelsQueryHandler(c.gormDB)
}

// StatusCache returns the redis-backed cache, or nil when redis is not
// configured.
func (c *CompositionRoot) StatusCache() *statuscache.RedisStatusCache {
	return c.statusCache
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateGetOverdueParcelsQueryHandler(), c.logger)
}

func (c *CompositionRoot) assignmentUoWFactory() commands.AssignmentUoWFactory {
	return FuncAssignmentUoWFactory(func() commands.AssignmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) routeUoWFactory() commands.RouteUoWFactory {
	return FuncRouteUoWFactory(func() commands.RouteUoW {
		return c.uowFactory.Create()
	})
}

type FuncRegisterParcelUoWFactory func() commands.RegisterParcelUoW

func (f FuncRegisterParcelUoWFactory) Create() commands.RegisterParcelUoW {
	return f()
}

type FuncIngestScanEventUoWFactory func() commands.IngestScanEventUoW

func (f FuncIngestScanEventUoWFactory) Create() commands.IngestScanEventUoW {
	return f()
}

type FuncAssignmentUoWFactory func() commands.AssignmentUoW

func (f FuncAssignmentUoWFactory) Create() commands.AssignmentUoW {
	return f()
}

type FuncProofUoWFactory func() commands.ProofUoW

func (f FuncProofUoWFactory) Create() commands.ProofUoW {
	return f()
}

type FuncRouteUoWFactory func() commands.RouteUoW

func (f FuncRouteUoWFactory) Create() commands.RouteUoW {
	return f()
}
