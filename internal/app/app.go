package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/ledgerbook/internal/config"
	"github.com/fsdevblog/ledgerbook/internal/events"
	eventskafka "github.com/fsdevblog/ledgerbook/internal/events/kafka"
	"github.com/fsdevblog/ledgerbook/internal/repository/pgrepo"
	"github.com/fsdevblog/ledgerbook/internal/repository/repoargs"
	"github.com/fsdevblog/ledgerbook/internal/service"
	"github.com/fsdevblog/ledgerbook/internal/service/psswd"
	"github.com/fsdevblog/ledgerbook/internal/transport/api"
	"github.com/fsdevblog/ledgerbook/pkg/uow"

	// driver for migration applying postgres.
	_ "github.com/golang-migrate/migrate/v4/database/postgres" //nolint:revive
	// driver to get migrations from files (*.sql in our case).
	_ "github.com/golang-migrate/migrate/v4/source/file" //nolint:revive
)

type App struct {
	Config *config.Config
	Logger *logrus.Logger
}

func New(conf *config.Config, l *logrus.Logger) *App {
	return &App{
		Config: conf,
		Logger: l,
	}
}

func (a *App) Run() error {
	notifyCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Logger.Infof("Starting app on %s", a.Config.RunAddress)
	conn, connErr := pgrepo.Connect(notifyCtx, a.Config.MigrationsDir, a.Config.DatabaseDSN, a.Logger)
	if connErr != nil {
		return fmt.Errorf("app run: %s", connErr.Error())
	}
	defer conn.Close()

	unitOfWork, uowErr := initUOW(conn)
	if uowErr != nil {
		return fmt.Errorf("app run: %s", uowErr.Error())
	}

	publisher := a.initPublisher()
	defer func() {
		if closeErr := publisher.Close(); closeErr != nil {
			a.Logger.WithError(closeErr).Error("closing events publisher")
		}
	}()

	services, sErr := service.Factory(service.FactoryArgs{
		UOW:       unitOfWork,
		JWTSecret: []byte(a.Config.JWTUserSecret),
		Hasher:    psswd.New(),
		Publisher: publisher,
		Logger:    a.Logger,
	})
	if sErr != nil {
		return fmt.Errorf("app run: %s", sErr.Error())
	}

	router := api.New(api.RouterArgs{
		Logger:             a.Logger,
		UserService:        services.UserService,
		CustomerService:    services.CustomerService,
		TransactionService: services.TransactionService,
		JWTSecretKey:       []byte(a.Config.JWTUserSecret),
	})

	errChan := make(chan error, 1)
	go func() {
		if runErr := router.Run(a.Config.RunAddress); runErr != nil {
			errChan <- runErr
		}
	}()

	select {
	case <-notifyCtx.Done():
		return notifyCtx.Err() //nolint:wrapcheck
	case err := <-errChan:
		return err
	}
}

// initPublisher picks kafka when a broker is configured and a noop otherwise.
func (a *App) initPublisher() service.EventPublisher {
	if a.Config.KafkaBroker == "" {
		a.Logger.Info("no kafka broker configured, transaction events disabled")
		return events.NoopPublisher{}
	}
	return eventskafka.NewPublisher(a.Config.KafkaBroker, a.Config.KafkaTopic)
}

func initUOW(conn *pgxpool.Pool) (*uow.UnitOfWork, error) {
	unitOfWork := uow.NewUnitOfWork(conn)

	repositories := map[repoargs.RepositoryName]uow.RepositoryFactory{
		repoargs.UserRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewUserRepository(dbtx)
		},
		repoargs.CustomerRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewCustomerRepository(dbtx)
		},
		repoargs.TransactionRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewTransactionRepository(dbtx)
		},
	}

	for name, factory := range repositories {
		if regErr := unitOfWork.Register(uow.RepositoryName(name), factory); regErr != nil {
			return nil, fmt.Errorf("init UOW: %s", regErr.Error())
		}
	}
	return unitOfWork, nil
}
