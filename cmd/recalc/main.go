// Command recalc rebuilds stored price matrices from the command line.
//
//	recalc -package 7
//	recalc -all
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/Edonabdullahu1/city-sub003/internal/cache"
	"github.com/Edonabdullahu1/city-sub003/internal/config"
	"github.com/Edonabdullahu1/city-sub003/internal/database"
	"github.com/Edonabdullahu1/city-sub003/internal/logger"
	"github.com/Edonabdullahu1/city-sub003/internal/queue"
	"github.com/Edonabdullahu1/city-sub003/internal/repository"
	"github.com/Edonabdullahu1/city-sub003/internal/service"
)

func main() {
	pkgID := flag.Uint64("package", 0, "id of the package to recalculate")
	all := flag.Bool("all", false, "recalculate every active package")
	flag.Parse()
	if (*pkgID == 0) == !*all {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	log := logger.New(cfg.Env, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg)
	if err != nil {
		log.WithError(err).Fatal("database unavailable")
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb != nil {
		defer rdb.Close()
	}

	svc := service.NewPriceService(
		repository.NewPackageRepo(db),
		repository.NewFlightRepo(db),
		repository.NewHotelRepo(db),
		repository.NewPackagePriceRepo(db),
		cache.New(rdb, config.LoadCacheConfig().MatrixTTL),
		queue.NewPublisher(cfg.RabbitURL, log),
		log,
		cfg.Pricing,
	)

	if !*all {
		sum, err := svc.Recalculate(ctx, *pkgID)
		if err != nil {
			log.WithError(err).WithField("package_id", *pkgID).Fatal("recalculation failed")
		}
		report(log, *sum)
		return
	}

	sums, err := svc.RecalculateAll(ctx)
	for _, s := range sums {
		report(log, s)
	}
	if err != nil {
		log.WithError(err).Error("some packages failed")
		os.Exit(1)
	}
	log.WithField("packages", len(sums)).Info("done")
}

func report(log logrus.FieldLogger, s service.RecalcSummary) {
	log.WithFields(logrus.Fields{
		"package_id": s.PackageID,
		"rows":       s.Rows,
		"skipped":    len(s.Skipped),
		"fallback":   s.Fallback,
	}).Info("recalculated")
	for _, sk := range s.Skipped {
		log.WithField("package_id", s.PackageID).Debugf("skipped: %+v", sk)
	}
}
